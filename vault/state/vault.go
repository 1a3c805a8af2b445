// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/ids"

	"github.com/luxfi/vault/vault/fees"
)

// Vault is the singleton vault record.
//
// It is a plain value: assigning a Vault copies every field, which the engine
// relies on to stage changes.
type Vault struct {
	RoleAdjustFee ids.ShortID `serialize:"true"`
	RoleFeeTo     ids.ShortID `serialize:"true"`
	RoleSetCode   ids.ShortID `serialize:"true"`
	// SetCodeEnabled is false once the set code role has been disabled.
	SetCodeEnabled bool   `serialize:"true"`
	CodeHash       ids.ID `serialize:"true"`

	// TotalPooled is the base asset staked across all agents, excluding
	// funds that are unbonding.
	TotalPooled uint256.Int `serialize:"true"`
	Fees        fees.Ledger `serialize:"true"`

	IncentivePercentage uint16 `serialize:"true"`
	// CooldownPeriod is in milliseconds.
	CooldownPeriod uint64 `serialize:"true"`

	ShareToken ids.ShortID `serialize:"true"`
	Registry   ids.ShortID `serialize:"true"`

	// PendingUnlocks is the number of unlock requests not yet redeemed.
	PendingUnlocks uint64 `serialize:"true"`
}
