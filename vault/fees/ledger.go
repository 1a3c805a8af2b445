// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fees accrues the protocol fee as virtual shares.
//
// The fee is simple interest on the current share supply at the current rate.
// Accrual is lazy: it is brought up to date by Advance, which must run before
// the share supply or the rate changes.
package fees

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	safemath "github.com/luxfi/vault/utils/math"
)

const (
	// BIPS is 100% in basis points.
	BIPS uint16 = 10_000

	// Day in milliseconds.
	Day uint64 = 86_400_000

	// Year is 365.25 days in milliseconds.
	Year uint64 = Day * 36_525 / 100
)

var ErrInvalidPercent = errors.New("percentage must be below 10000 basis points")

// Ledger tracks the share supply and the fee owed to the protocol.
type Ledger struct {
	// SharesMinted is the share token supply issued by the vault.
	SharesMinted uint256.Int `serialize:"true"`
	// SharesVirtual is accrued fee not yet minted.
	SharesVirtual uint256.Int `serialize:"true"`
	// FeePercentage is the annual fee in basis points.
	FeePercentage uint16 `serialize:"true"`
	// LastUpdate is the unix millisecond time of the last Advance.
	LastUpdate uint64 `serialize:"true"`
}

// NewLedger returns an empty ledger accruing from now.
func NewLedger(feePercentage uint16, now uint64) (*Ledger, error) {
	if feePercentage >= BIPS {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPercent, feePercentage)
	}
	return &Ledger{
		FeePercentage: feePercentage,
		LastUpdate:    now,
	}, nil
}

// accrued returns the virtual shares earned between LastUpdate and now. A
// timestamp at or before LastUpdate earns nothing.
func (l *Ledger) accrued(now uint64) (*uint256.Int, error) {
	if now <= l.LastUpdate {
		return new(uint256.Int), nil
	}
	elapsed := now - l.LastUpdate

	base, err := safemath.Add256(&l.SharesMinted, &l.SharesVirtual)
	if err != nil {
		return nil, err
	}
	annual, err := safemath.ProRataUint64(base, uint64(l.FeePercentage), uint64(BIPS))
	if err != nil {
		return nil, err
	}
	return safemath.ProRataUint64(annual, elapsed, Year)
}

// Advance adds the fee accrued up to now to SharesVirtual.
func (l *Ledger) Advance(now uint64) error {
	if now <= l.LastUpdate {
		return nil
	}
	accrued, err := l.accrued(now)
	if err != nil {
		return err
	}
	virtual, err := safemath.Add256(&l.SharesVirtual, accrued)
	if err != nil {
		return err
	}
	l.SharesVirtual = *virtual
	l.LastUpdate = now
	return nil
}

// VirtualSharesAt returns what SharesVirtual would be after Advance(now),
// without modifying the ledger.
func (l *Ledger) VirtualSharesAt(now uint64) (*uint256.Int, error) {
	accrued, err := l.accrued(now)
	if err != nil {
		return nil, err
	}
	return safemath.Add256(&l.SharesVirtual, accrued)
}

// TotalSharesAt returns minted plus virtual shares as of now.
func (l *Ledger) TotalSharesAt(now uint64) (*uint256.Int, error) {
	virtual, err := l.VirtualSharesAt(now)
	if err != nil {
		return nil, err
	}
	return safemath.Add256(&l.SharesMinted, virtual)
}

// Mint records newly issued shares.
func (l *Ledger) Mint(shares *uint256.Int) error {
	minted, err := safemath.Add256(&l.SharesMinted, shares)
	if err != nil {
		return err
	}
	l.SharesMinted = *minted
	return nil
}

// Burn records destroyed shares.
func (l *Ledger) Burn(shares *uint256.Int) error {
	minted, err := safemath.Sub256(&l.SharesMinted, shares)
	if err != nil {
		return err
	}
	l.SharesMinted = *minted
	return nil
}

// Claim advances to now, converts all virtual shares into minted shares and
// returns the amount converted.
func (l *Ledger) Claim(now uint64) (*uint256.Int, error) {
	if err := l.Advance(now); err != nil {
		return nil, err
	}
	claimed := l.SharesVirtual.Clone()
	if err := l.Mint(claimed); err != nil {
		return nil, err
	}
	l.SharesVirtual.Clear()
	return claimed, nil
}

// SetFee advances at the old rate and then switches to feePercentage.
func (l *Ledger) SetFee(now uint64, feePercentage uint16) error {
	if feePercentage >= BIPS {
		return fmt.Errorf("%w: %d", ErrInvalidPercent, feePercentage)
	}
	if err := l.Advance(now); err != nil {
		return err
	}
	l.FeePercentage = feePercentage
	return nil
}
