// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"errors"
	"fmt"

	"github.com/luxfi/vault/vault/allocation"
	"github.com/luxfi/vault/vault/fees"
	"github.com/luxfi/vault/vault/unlock"
)

var (
	ErrInvalidPermissions = errors.New("invalid permissions")
	ErrNoChange           = errors.New("no change")
	ErrMinimumStake       = errors.New("below minimum stake")
	ErrZeroCompounding    = errors.New("nothing to compound")

	ErrInvalidPercent           = fees.ErrInvalidPercent
	ErrInvalidUserUnlockRequest = unlock.ErrInvalidRequest
	ErrCooldownPeriod           = unlock.ErrCooldown

	ErrZeroTotalWeight   = allocation.ErrZeroTotalWeight
	ErrZeroDepositing    = allocation.ErrZeroDepositing
	ErrZeroUnbonding     = allocation.ErrZeroUnbonding
	ErrInsufficientStake = allocation.ErrInsufficientStake

	// ErrInternal wraps failures of the registry or of a staking agent.
	ErrInternal = errors.New("staking agent call failed")
	// ErrToken wraps failures of the share token.
	ErrToken = errors.New("share token call failed")
	// ErrTransfer wraps failures moving the base asset.
	ErrTransfer = errors.New("base asset transfer failed")

	// ErrNothingToWithdraw is returned by a staking agent with no unbonded
	// funds. The withdraw sweep skips such agents.
	ErrNothingToWithdraw = errors.New("nothing to withdraw")
)

func internalErr(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

func tokenErr(err error) error {
	return fmt.Errorf("%w: %w", ErrToken, err)
}

func transferErr(err error) error {
	return fmt.Errorf("%w: %w", ErrTransfer, err)
}
