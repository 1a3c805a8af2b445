// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"

	"github.com/luxfi/vault/vault/fees"
)

// WithdrawFees mints every accrued virtual share to the fee recipient. Only
// the fee recipient may call it. It returns the shares minted.
func (e *Engine) WithdrawFees(ctx context.Context, caller ids.ShortID) (*uint256.Int, error) {
	var shares *uint256.Int
	err := e.execute(ctx, "withdrawFees", func(t *tx) error {
		if caller != t.vault.RoleFeeTo {
			return ErrInvalidPermissions
		}

		claimed, err := t.vault.Fees.Claim(t.now)
		if err != nil {
			return err
		}
		if err := e.token.Mint(t.ctx, caller, claimed); err != nil {
			return tokenErr(err)
		}

		t.emit(&FeesWithdrawn{
			Shares: claimed.Clone(),
		})
		shares = claimed
		return nil
	})
	return shares, err
}

// AdjustFee accrues fees at the current rate and then changes the rate.
func (e *Engine) AdjustFee(ctx context.Context, caller ids.ShortID, newFee uint16) error {
	return e.execute(ctx, "adjustFee", func(t *tx) error {
		switch {
		case caller != t.vault.RoleAdjustFee:
			return ErrInvalidPermissions
		case newFee == t.vault.Fees.FeePercentage:
			return ErrNoChange
		case newFee >= fees.BIPS:
			return ErrInvalidPercent
		}

		if err := t.vault.Fees.SetFee(t.now, newFee); err != nil {
			return err
		}
		t.emit(&FeesAdjusted{
			NewFee:        newFee,
			VirtualShares: t.vault.Fees.SharesVirtual.Clone(),
		})
		return nil
	})
}

// AdjustIncentive changes the compound incentive. It requires the adjust fee
// role.
func (e *Engine) AdjustIncentive(ctx context.Context, caller ids.ShortID, newIncentive uint16) error {
	return e.execute(ctx, "adjustIncentive", func(t *tx) error {
		switch {
		case caller != t.vault.RoleAdjustFee:
			return ErrInvalidPermissions
		case newIncentive == t.vault.IncentivePercentage:
			return ErrNoChange
		case newIncentive >= fees.BIPS:
			return ErrInvalidPercent
		}

		t.vault.IncentivePercentage = newIncentive
		t.emit(&IncentiveAdjusted{
			NewIncentive: newIncentive,
		})
		return nil
	})
}

func (e *Engine) TransferRoleAdjustFee(ctx context.Context, caller ids.ShortID, newAccount ids.ShortID) error {
	return e.execute(ctx, "transferRoleAdjustFee", func(t *tx) error {
		if err := transferRole(&t.vault.RoleAdjustFee, caller, newAccount); err != nil {
			return err
		}
		t.emit(&RoleAdjustFeeTransferred{
			NewAccount: newAccount,
		})
		return nil
	})
}

func (e *Engine) TransferRoleFeeTo(ctx context.Context, caller ids.ShortID, newAccount ids.ShortID) error {
	return e.execute(ctx, "transferRoleFeeTo", func(t *tx) error {
		if err := transferRole(&t.vault.RoleFeeTo, caller, newAccount); err != nil {
			return err
		}
		t.emit(&RoleFeeToTransferred{
			NewAccount: newAccount,
		})
		return nil
	})
}

func (e *Engine) TransferRoleSetCode(ctx context.Context, caller ids.ShortID, newAccount ids.ShortID) error {
	return e.execute(ctx, "transferRoleSetCode", func(t *tx) error {
		if !t.vault.SetCodeEnabled {
			return ErrInvalidPermissions
		}
		if err := transferRole(&t.vault.RoleSetCode, caller, newAccount); err != nil {
			return err
		}
		t.emit(&RoleSetCodeTransferred{
			NewAccount: newAccount,
		})
		return nil
	})
}

func transferRole(role *ids.ShortID, caller ids.ShortID, newAccount ids.ShortID) error {
	switch {
	case caller != *role:
		return ErrInvalidPermissions
	case newAccount == *role:
		return ErrNoChange
	}
	*role = newAccount
	return nil
}

// SetCode records the code hash the host should upgrade the vault to. It
// requires the set code role.
func (e *Engine) SetCode(ctx context.Context, caller ids.ShortID, codeHash ids.ID) error {
	return e.execute(ctx, "setCode", func(t *tx) error {
		if !t.vault.SetCodeEnabled || caller != t.vault.RoleSetCode {
			return ErrInvalidPermissions
		}

		t.vault.CodeHash = codeHash
		t.emit(&NewHash{
			CodeHash: codeHash,
		})
		return nil
	})
}

// DisableSetCode permanently removes the set code role.
func (e *Engine) DisableSetCode(ctx context.Context, caller ids.ShortID) error {
	return e.execute(ctx, "disableSetCode", func(t *tx) error {
		switch {
		case !t.vault.SetCodeEnabled:
			return ErrNoChange
		case caller != t.vault.RoleSetCode:
			return ErrInvalidPermissions
		}

		t.vault.SetCodeEnabled = false
		t.vault.RoleSetCode = ids.ShortEmpty
		t.emit(&SetHashDisabled{})
		return nil
	})
}
