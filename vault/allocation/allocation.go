// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package allocation splits deposits and withdrawals of pooled capital across
// weighted staking agents.
//
// Both planners work in two phases. The first phase corrects existing
// imbalances: deposits go to under-allocated agents, withdrawals come from
// over-allocated agents. The second phase splits the remainder by weight for
// deposits and by remaining stake for withdrawals. Rounding dust is assigned to
// specific agents so that the planned amounts always sum to the request.
package allocation

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"

	safemath "github.com/luxfi/vault/utils/math"
)

var (
	ErrZeroTotalWeight   = errors.New("total agent weight is zero")
	ErrZeroDepositing    = errors.New("nothing to deposit")
	ErrZeroUnbonding     = errors.New("nothing to unbond")
	ErrInsufficientStake = errors.New("insufficient agent stake")
	ErrStakesMismatch    = errors.New("stakes do not match agents")
)

// Agent is a staking venue as reported by the registry.
type Agent struct {
	Address ids.ShortID `json:"address"`
	Weight  uint64      `json:"weight"`
}

// Report compares every agent's current stake with its weight-implied target.
type Report struct {
	TotalWeight uint64
	Agents      []Agent
	// PosDiff is the total over-allocation.
	PosDiff *uint256.Int
	// NegDiff is the total under-allocation.
	NegDiff *uint256.Int
	// Stakes are the current stakes, in agent order.
	Stakes []*uint256.Int
	// Imbalances are stake minus target, in agent order. Positive values mark
	// over-allocated agents.
	Imbalances []*big.Int

	over  []*uint256.Int
	under []*uint256.Int
}

// Imbalances measures each agent's stake against its share of totalPooled.
// Every target is zero when totalWeight is zero.
func Imbalances(
	agents []Agent,
	totalWeight uint64,
	stakes []*uint256.Int,
	totalPooled *uint256.Int,
) (*Report, error) {
	if len(agents) != len(stakes) {
		return nil, fmt.Errorf("%w: %d agents, %d stakes", ErrStakesMismatch, len(agents), len(stakes))
	}

	r := &Report{
		TotalWeight: totalWeight,
		Agents:      agents,
		PosDiff:     new(uint256.Int),
		NegDiff:     new(uint256.Int),
		Stakes:      make([]*uint256.Int, len(agents)),
		Imbalances:  make([]*big.Int, len(agents)),
		over:        make([]*uint256.Int, len(agents)),
		under:       make([]*uint256.Int, len(agents)),
	}
	for i, agent := range agents {
		target := new(uint256.Int)
		if totalWeight > 0 {
			var err error
			target, err = safemath.ProRata(uint256.NewInt(agent.Weight), totalPooled, uint256.NewInt(totalWeight))
			if err != nil {
				return nil, err
			}
		}

		stake := stakes[i].Clone()
		r.Stakes[i] = stake
		r.over[i] = new(uint256.Int)
		r.under[i] = new(uint256.Int)
		switch stake.Cmp(target) {
		case 1:
			r.over[i].Sub(stake, target)
			if _, overflow := r.PosDiff.AddOverflow(r.PosDiff, r.over[i]); overflow {
				return nil, safemath.ErrOverflow
			}
		case -1:
			r.under[i].Sub(target, stake)
			if _, overflow := r.NegDiff.AddOverflow(r.NegDiff, r.under[i]); overflow {
				return nil, safemath.ErrOverflow
			}
		}
		r.Imbalances[i] = new(big.Int).Sub(r.over[i].ToBig(), r.under[i].ToBig())
	}
	return r, nil
}

// PlanDeposit splits delta across agents and returns the amount for each agent,
// in agent order. The amounts sum to delta.
//
// Under-allocated agents are filled first in proportion to their shortfall.
// Whatever remains is split by weight. Rounding dust goes to the first agent
// receiving a nonzero amount.
func PlanDeposit(
	agents []Agent,
	totalWeight uint64,
	stakes []*uint256.Int,
	totalPooled *uint256.Int,
	delta *uint256.Int,
) ([]*uint256.Int, error) {
	if totalWeight == 0 {
		return nil, ErrZeroTotalWeight
	}

	newTotal, err := safemath.Add256(totalPooled, delta)
	if err != nil {
		return nil, err
	}
	report, err := Imbalances(agents, totalWeight, stakes, newTotal)
	if err != nil {
		return nil, err
	}

	phase1 := safemath.Min256(delta, report.NegDiff)
	phase2 := new(uint256.Int).Sub(delta, phase1)

	var (
		amounts = make([]*uint256.Int, len(agents))
		sum     = new(uint256.Int)
	)
	for i, agent := range agents {
		amount := new(uint256.Int)
		if !report.under[i].IsZero() {
			share, err := safemath.ProRata(phase1, report.under[i], report.NegDiff)
			if err != nil {
				return nil, err
			}
			amount.Add(amount, share)
		}
		if !phase2.IsZero() {
			share, err := safemath.ProRataUint64(phase2, agent.Weight, totalWeight)
			if err != nil {
				return nil, err
			}
			amount.Add(amount, share)
		}
		amounts[i] = amount
		sum.Add(sum, amount)
	}
	if sum.IsZero() {
		return nil, ErrZeroDepositing
	}

	dust := new(uint256.Int).Sub(delta, sum)
	if !dust.IsZero() {
		for _, amount := range amounts {
			if !amount.IsZero() {
				amount.Add(amount, dust)
				break
			}
		}
	}
	return amounts, nil
}

// PlanWithdrawal splits delta across agents and returns the amount to unbond
// from each agent, in agent order. The amounts sum to delta and no amount
// exceeds the agent's stake.
//
// Over-allocated agents are drained first in proportion to their surplus.
// Whatever remains is split by the stake left after the first phase. Rounding
// dust is taken in agent order from agents that still hold stake, carrying to
// the next agent when one agent's remaining stake is smaller than the dust.
func PlanWithdrawal(
	agents []Agent,
	totalWeight uint64,
	stakes []*uint256.Int,
	totalPooled *uint256.Int,
	delta *uint256.Int,
) ([]*uint256.Int, error) {
	newTotal, err := safemath.Sub256(totalPooled, delta)
	if err != nil {
		return nil, fmt.Errorf("%w: unbonding %s of %s", ErrInsufficientStake, delta.Dec(), totalPooled.Dec())
	}
	report, err := Imbalances(agents, totalWeight, stakes, newTotal)
	if err != nil {
		return nil, err
	}

	phase1 := safemath.Min256(delta, report.PosDiff)
	phase2 := new(uint256.Int).Sub(delta, phase1)
	remaining := new(uint256.Int).Sub(totalPooled, phase1)

	var (
		amounts = make([]*uint256.Int, len(agents))
		sum     = new(uint256.Int)
	)
	for i := range agents {
		amount := new(uint256.Int)
		if !report.over[i].IsZero() {
			share, err := safemath.ProRata(phase1, report.over[i], report.PosDiff)
			if err != nil {
				return nil, err
			}
			amount.Add(amount, share)
		}
		if !phase2.IsZero() {
			left, err := safemath.Sub256(report.Stakes[i], amount)
			if err != nil {
				return nil, err
			}
			share, err := safemath.ProRata(phase2, left, remaining)
			if err != nil {
				return nil, err
			}
			amount.Add(amount, share)
		}
		amounts[i] = amount
		sum.Add(sum, amount)
	}
	if sum.IsZero() {
		return nil, ErrZeroUnbonding
	}

	dust, err := safemath.Sub256(delta, sum)
	if err != nil {
		return nil, err
	}
	for i, amount := range amounts {
		if dust.IsZero() {
			break
		}
		if !report.Stakes[i].Gt(amount) {
			continue
		}
		surplus := new(uint256.Int).Sub(report.Stakes[i], amount)
		take := safemath.Min256(dust, surplus)
		amount.Add(amount, take)
		dust.Sub(dust, take)
	}
	if !dust.IsZero() {
		return nil, fmt.Errorf("%w: %s left unallocated", ErrInsufficientStake, dust.Dec())
	}
	return amounts, nil
}
