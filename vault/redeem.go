// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"

	safemath "github.com/luxfi/vault/utils/math"
)

// RequestUnlock takes shares from caller, records the base asset they are
// worth as an unlock request and starts unbonding that amount. It returns the
// unlock id of the request.
func (e *Engine) RequestUnlock(ctx context.Context, caller ids.ShortID, shares *uint256.Int) (uint64, error) {
	var unlockID uint64
	err := e.execute(ctx, "requestUnlock", func(t *tx) error {
		if err := e.token.TransferFrom(t.ctx, caller, e.account, shares); err != nil {
			return tokenErr(err)
		}

		// the ratio must include fees accrued up to now
		if err := t.vault.Fees.Advance(t.now); err != nil {
			return err
		}
		azero, err := azeroFromShares(&t.vault, t.now, shares)
		if err != nil {
			return err
		}

		queue, err := e.state.GetUnlockQueue(caller)
		if err != nil {
			return err
		}
		unlockID = queue.Push(t.now, azero)
		e.state.PutUnlockQueue(caller, queue)
		pending, err := safemath.Add(t.vault.PendingUnlocks, 1)
		if err != nil {
			return err
		}
		t.vault.PendingUnlocks = pending

		if err := e.delegateUnbonding(t, azero); err != nil {
			return err
		}
		if err := e.burnShares(t, shares); err != nil {
			return err
		}

		t.emit(&UnlockRequested{
			Staker:        caller,
			UnlockID:      unlockID,
			Shares:        shares.Clone(),
			Azero:         azero,
			VirtualShares: t.vault.Fees.SharesVirtual.Clone(),
		})
		return nil
	})
	return unlockID, err
}

// DelegateWithdrawUnbonded moves every agent's fully unbonded funds back into
// the vault. Agents with nothing to withdraw are skipped.
func (e *Engine) DelegateWithdrawUnbonded(ctx context.Context) error {
	return e.execute(ctx, "delegateWithdrawUnbonded", e.withdrawUnbonded)
}

func (e *Engine) withdrawUnbonded(t *tx) error {
	_, agents, err := e.getAgents(t.ctx)
	if err != nil {
		return err
	}
	for _, agent := range agents {
		err := e.staking.WithdrawUnbonded(t.ctx, agent.Address)
		if err != nil && !errors.Is(err, ErrNothingToWithdraw) {
			return internalErr(fmt.Errorf("withdraw from %s: %w", agent.Address, err))
		}
	}
	return nil
}

// Redeem pays user the base asset of their unlock request unlockID once the
// cooldown period has elapsed. Anyone may call Redeem on behalf of user.
//
// Redeeming removes the request, so the ids of the user's later requests
// decrease by one.
func (e *Engine) Redeem(ctx context.Context, user ids.ShortID, unlockID uint64) error {
	return e.execute(ctx, "redeem", func(t *tx) error {
		return e.redeem(t, user, unlockID)
	})
}

// RedeemWithWithdraw withdraws unbonded funds from every agent and then
// redeems. It is used when the vault does not yet hold the funds owed.
func (e *Engine) RedeemWithWithdraw(ctx context.Context, user ids.ShortID, unlockID uint64) error {
	return e.execute(ctx, "redeemWithWithdraw", func(t *tx) error {
		if err := e.withdrawUnbonded(t); err != nil {
			return err
		}
		return e.redeem(t, user, unlockID)
	})
}

func (e *Engine) redeem(t *tx, user ids.ShortID, unlockID uint64) error {
	queue, err := e.state.GetUnlockQueue(user)
	if err != nil {
		return err
	}
	azero, err := queue.Pop(unlockID, t.now, t.vault.CooldownPeriod)
	if err != nil {
		return err
	}
	e.state.PutUnlockQueue(user, queue)
	pending, err := safemath.Sub(t.vault.PendingUnlocks, 1)
	if err != nil {
		return err
	}
	t.vault.PendingUnlocks = pending

	if err := e.treasury.Transfer(t.ctx, user, azero); err != nil {
		return transferErr(err)
	}

	t.emit(&UnlockRedeemed{
		Staker:   user,
		Azero:    azero,
		UnlockID: unlockID,
	})
	return nil
}
