// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"

	"github.com/luxfi/vault/vault/allocation"

	safemath "github.com/luxfi/vault/utils/math"
)

// Stake collects amount of the base asset from caller, mints the caller
// shares at the current ratio and delegates amount across the agents. It
// returns the shares minted.
func (e *Engine) Stake(ctx context.Context, caller ids.ShortID, amount *uint256.Int) (*uint256.Int, error) {
	var shares *uint256.Int
	err := e.execute(ctx, "stake", func(t *tx) error {
		var err error
		shares, err = e.stake(t, caller, amount)
		return err
	})
	return shares, err
}

// StakeWithReferral is Stake that also credits referral.
func (e *Engine) StakeWithReferral(ctx context.Context, caller ids.ShortID, referral ids.ShortID, amount *uint256.Int) (*uint256.Int, error) {
	var shares *uint256.Int
	err := e.execute(ctx, "stakeWithReferral", func(t *tx) error {
		var err error
		shares, err = e.stake(t, caller, amount)
		if err != nil {
			return err
		}
		t.emit(&Referral{
			ReferralID: referral,
			Staker:     caller,
			Azero:      amount.Clone(),
		})
		return nil
	})
	return shares, err
}

func (e *Engine) stake(t *tx, caller ids.ShortID, amount *uint256.Int) (*uint256.Int, error) {
	if amount.Lt(e.minStake) {
		return nil, fmt.Errorf("%w: %s < %s", ErrMinimumStake, amount.Dec(), e.minStake.Dec())
	}
	if err := e.treasury.Collect(t.ctx, caller, amount); err != nil {
		return nil, transferErr(err)
	}

	// the ratio must include fees accrued up to now
	if err := t.vault.Fees.Advance(t.now); err != nil {
		return nil, err
	}
	shares, err := sharesFromAzero(&t.vault, t.now, amount)
	if err != nil {
		return nil, err
	}
	if err := e.mintShares(t, caller, shares); err != nil {
		return nil, err
	}
	if err := e.delegateBonding(t, amount); err != nil {
		return nil, err
	}

	t.emit(&Staked{
		Staker:        caller,
		Azero:         amount.Clone(),
		NewShares:     shares.Clone(),
		VirtualShares: t.vault.Fees.SharesVirtual.Clone(),
	})
	return shares, nil
}

func (e *Engine) mintShares(t *tx, to ids.ShortID, shares *uint256.Int) error {
	if err := e.token.Mint(t.ctx, to, shares); err != nil {
		return tokenErr(err)
	}
	return t.vault.Fees.Mint(shares)
}

func (e *Engine) burnShares(t *tx, shares *uint256.Int) error {
	if err := e.token.Burn(t.ctx, e.account, shares); err != nil {
		return tokenErr(err)
	}
	return t.vault.Fees.Burn(shares)
}

// delegateBonding deposits azero across the agents and adds it to the pool.
func (e *Engine) delegateBonding(t *tx, azero *uint256.Int) error {
	totalWeight, agents, err := e.getAgents(t.ctx)
	if err != nil {
		return err
	}
	if totalWeight == 0 {
		return ErrZeroTotalWeight
	}
	stakes, err := e.getStakes(t.ctx, agents)
	if err != nil {
		return err
	}

	amounts, err := allocation.PlanDeposit(agents, totalWeight, stakes, &t.vault.TotalPooled, azero)
	if err != nil {
		return err
	}
	for i, agent := range agents {
		if amounts[i].IsZero() {
			continue
		}
		if err := e.staking.Deposit(t.ctx, agent.Address, amounts[i]); err != nil {
			return internalErr(fmt.Errorf("deposit to %s: %w", agent.Address, err))
		}
	}

	totalPooled, err := safemath.Add256(&t.vault.TotalPooled, azero)
	if err != nil {
		return err
	}
	t.vault.TotalPooled = *totalPooled
	return nil
}

// delegateUnbonding unbonds azero across the agents and removes it from the
// pool.
func (e *Engine) delegateUnbonding(t *tx, azero *uint256.Int) error {
	totalWeight, agents, err := e.getAgents(t.ctx)
	if err != nil {
		return err
	}
	stakes, err := e.getStakes(t.ctx, agents)
	if err != nil {
		return err
	}

	amounts, err := allocation.PlanWithdrawal(agents, totalWeight, stakes, &t.vault.TotalPooled, azero)
	if err != nil {
		return err
	}
	for i, agent := range agents {
		if amounts[i].IsZero() {
			continue
		}
		if err := e.staking.Unbond(t.ctx, agent.Address, amounts[i]); err != nil {
			return internalErr(fmt.Errorf("unbond from %s: %w", agent.Address, err))
		}
	}

	totalPooled, err := safemath.Sub256(&t.vault.TotalPooled, azero)
	if err != nil {
		return err
	}
	t.vault.TotalPooled = *totalPooled
	return nil
}
