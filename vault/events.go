// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
)

var (
	_ Event = (*Staked)(nil)
	_ Event = (*Referral)(nil)
	_ Event = (*Compounded)(nil)
	_ Event = (*UnlockRequested)(nil)
	_ Event = (*UnlockRedeemed)(nil)
	_ Event = (*FeesWithdrawn)(nil)
	_ Event = (*FeesAdjusted)(nil)
	_ Event = (*IncentiveAdjusted)(nil)
	_ Event = (*RoleAdjustFeeTransferred)(nil)
	_ Event = (*RoleFeeToTransferred)(nil)
	_ Event = (*RoleSetCodeTransferred)(nil)
	_ Event = (*NewHash)(nil)
	_ Event = (*SetHashDisabled)(nil)

	_ EventSink = (*LogSink)(nil)
)

// Event is emitted once the operation that produced it has committed.
type Event interface {
	EventName() string
}

type EventSink interface {
	Emit(Event)
}

// LogSink writes every event to a logger.
type LogSink struct {
	Log log.Logger
}

func (s *LogSink) Emit(e Event) {
	s.Log.Info("vault event",
		log.String("event", e.EventName()),
		log.Reflect("data", e),
	)
}

type Staked struct {
	Staker        ids.ShortID  `json:"staker"`
	Azero         *uint256.Int `json:"azero"`
	NewShares     *uint256.Int `json:"newShares"`
	VirtualShares *uint256.Int `json:"virtualShares"`
}

func (*Staked) EventName() string { return "Staked" }

type Referral struct {
	ReferralID ids.ShortID  `json:"referralID"`
	Staker     ids.ShortID  `json:"staker"`
	Azero      *uint256.Int `json:"azero"`
}

func (*Referral) EventName() string { return "Referral" }

type Compounded struct {
	Caller        ids.ShortID  `json:"caller"`
	Azero         *uint256.Int `json:"azero"`
	Incentive     *uint256.Int `json:"incentive"`
	VirtualShares *uint256.Int `json:"virtualShares"`
}

func (*Compounded) EventName() string { return "Compounded" }

type UnlockRequested struct {
	Staker        ids.ShortID  `json:"staker"`
	UnlockID      uint64       `json:"unlockID"`
	Shares        *uint256.Int `json:"shares"`
	Azero         *uint256.Int `json:"azero"`
	VirtualShares *uint256.Int `json:"virtualShares"`
}

func (*UnlockRequested) EventName() string { return "UnlockRequested" }

type UnlockRedeemed struct {
	Staker   ids.ShortID  `json:"staker"`
	Azero    *uint256.Int `json:"azero"`
	UnlockID uint64       `json:"unlockID"`
}

func (*UnlockRedeemed) EventName() string { return "UnlockRedeemed" }

type FeesWithdrawn struct {
	Shares *uint256.Int `json:"shares"`
}

func (*FeesWithdrawn) EventName() string { return "FeesWithdrawn" }

type FeesAdjusted struct {
	NewFee        uint16       `json:"newFee"`
	VirtualShares *uint256.Int `json:"virtualShares"`
}

func (*FeesAdjusted) EventName() string { return "FeesAdjusted" }

type IncentiveAdjusted struct {
	NewIncentive uint16 `json:"newIncentive"`
}

func (*IncentiveAdjusted) EventName() string { return "IncentiveAdjusted" }

type RoleAdjustFeeTransferred struct {
	NewAccount ids.ShortID `json:"newAccount"`
}

func (*RoleAdjustFeeTransferred) EventName() string { return "RoleAdjustFeeTransferred" }

type RoleFeeToTransferred struct {
	NewAccount ids.ShortID `json:"newAccount"`
}

func (*RoleFeeToTransferred) EventName() string { return "RoleFeeToTransferred" }

type RoleSetCodeTransferred struct {
	NewAccount ids.ShortID `json:"newAccount"`
}

func (*RoleSetCodeTransferred) EventName() string { return "RoleSetCodeTransferred" }

type NewHash struct {
	CodeHash ids.ID `json:"codeHash"`
}

func (*NewHash) EventName() string { return "NewHash" }

type SetHashDisabled struct{}

func (*SetHashDisabled) EventName() string { return "SetHashDisabled" }
