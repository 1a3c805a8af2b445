// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"

	safemath "github.com/luxfi/vault/utils/math"
)

// Compound bonds every agent's rewards and pays the compound incentive to
// caller. Anyone may call Compound. It returns the incentive paid.
func (e *Engine) Compound(ctx context.Context, caller ids.ShortID) (*uint256.Int, error) {
	var incentive *uint256.Int
	err := e.execute(ctx, "compound", func(t *tx) error {
		compounded, totalIncentive, err := e.delegateCompound(t)
		if err != nil {
			return err
		}
		if !totalIncentive.IsZero() {
			if err := e.treasury.Transfer(t.ctx, caller, totalIncentive); err != nil {
				return transferErr(err)
			}
		}

		virtualShares, err := t.vault.Fees.VirtualSharesAt(t.now)
		if err != nil {
			return err
		}
		t.emit(&Compounded{
			Caller:        caller,
			Azero:         compounded,
			Incentive:     totalIncentive,
			VirtualShares: virtualShares,
		})
		t.onCommit = append(t.onCommit, func() {
			e.metrics.AddCompounded(compounded, totalIncentive)
		})
		incentive = totalIncentive
		return nil
	})
	return incentive, err
}

// delegateCompound compounds every agent at the current incentive and adds the
// compounded amount to the pool.
func (e *Engine) delegateCompound(t *tx) (*uint256.Int, *uint256.Int, error) {
	_, agents, err := e.getAgents(t.ctx)
	if err != nil {
		return nil, nil, err
	}

	var (
		totalCompounded = new(uint256.Int)
		totalIncentive  = new(uint256.Int)
	)
	for _, agent := range agents {
		compounded, incentive, err := e.staking.Compound(t.ctx, agent.Address, t.vault.IncentivePercentage)
		if err != nil {
			return nil, nil, internalErr(fmt.Errorf("compound %s: %w", agent.Address, err))
		}
		if totalCompounded, err = safemath.Add256(totalCompounded, compounded); err != nil {
			return nil, nil, err
		}
		if totalIncentive, err = safemath.Add256(totalIncentive, incentive); err != nil {
			return nil, nil, err
		}
	}
	if totalCompounded.IsZero() {
		return nil, nil, ErrZeroCompounding
	}

	totalPooled, err := safemath.Add256(&t.vault.TotalPooled, totalCompounded)
	if err != nil {
		return nil, nil, err
	}
	t.vault.TotalPooled = *totalPooled
	return totalCompounded, totalIncentive, nil
}
