// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simnet

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"

	"github.com/luxfi/vault/vault"
)

var (
	_ vault.Registry   = (*registry)(nil)
	_ vault.ShareToken = (*Token)(nil)
	_ vault.Staking    = (*staking)(nil)
	_ vault.Treasury   = (*treasury)(nil)

	_ vault.Reverter = (*registry)(nil)
	_ vault.Reverter = (*Token)(nil)
	_ vault.Reverter = (*staking)(nil)
	_ vault.Reverter = (*treasury)(nil)
)

type registry Network

func (r *registry) Address() ids.ShortID {
	return r.registryAddress
}

func (r *registry) GetAgents(context.Context) (uint64, []vault.Agent, error) {
	n := (*Network)(r)
	n.lock.Lock()
	defer n.lock.Unlock()

	agents := make([]vault.Agent, len(n.w.agents))
	for i, addr := range n.w.agents {
		agents[i] = vault.Agent{
			Address: addr,
			Weight:  n.w.agentStates[addr].weight,
		}
	}
	return n.w.totalWeight, agents, nil
}

func (r *registry) Snapshot() int           { return (*Network)(r).Snapshot() }
func (r *registry) RevertToSnapshot(id int) { (*Network)(r).RevertToSnapshot(id) }
func (r *registry) DiscardSnapshot(id int)  { (*Network)(r).DiscardSnapshot(id) }

// Token is the share token. Only the vault account may spend allowances.
type Token Network

func (t *Token) Address() ids.ShortID {
	return t.tokenAddress
}

func (t *Token) Mint(_ context.Context, to ids.ShortID, amount *uint256.Int) error {
	n := (*Network)(t)
	n.lock.Lock()
	defer n.lock.Unlock()

	n.credit(n.w.shares, to, amount)
	n.w.shareSupply.Add(&n.w.shareSupply, amount)
	return nil
}

func (t *Token) Burn(_ context.Context, from ids.ShortID, amount *uint256.Int) error {
	n := (*Network)(t)
	n.lock.Lock()
	defer n.lock.Unlock()

	if err := n.debit(n.w.shares, from, amount); err != nil {
		return err
	}
	n.w.shareSupply.Sub(&n.w.shareSupply, amount)
	return nil
}

// TransferFrom moves shares out of from on behalf of the vault account. It
// consumes the allowance from granted to the vault account.
func (t *Token) TransferFrom(_ context.Context, from ids.ShortID, to ids.ShortID, amount *uint256.Int) error {
	n := (*Network)(t)
	n.lock.Lock()
	defer n.lock.Unlock()

	key := allowanceKey{owner: from, spender: n.vault}
	allowance := n.w.allowances[key]
	if allowance.Lt(amount) {
		return fmt.Errorf("%w: %s allows %s, needs %s", ErrInsufficientAllowance, from, allowance.Dec(), amount.Dec())
	}
	if err := n.debit(n.w.shares, from, amount); err != nil {
		return err
	}
	n.credit(n.w.shares, to, amount)
	allowance.Sub(&allowance, amount)
	n.w.allowances[key] = allowance
	return nil
}

func (t *Token) BalanceOf(_ context.Context, account ids.ShortID) (*uint256.Int, error) {
	n := (*Network)(t)
	n.lock.Lock()
	defer n.lock.Unlock()

	b := n.w.shares[account]
	return &b, nil
}

// Approve sets the allowance owner grants spender.
func (t *Token) Approve(owner ids.ShortID, spender ids.ShortID, amount *uint256.Int) {
	n := (*Network)(t)
	n.lock.Lock()
	defer n.lock.Unlock()

	n.w.allowances[allowanceKey{owner: owner, spender: spender}] = *amount
}

// Transfer moves shares between holders.
func (t *Token) Transfer(from ids.ShortID, to ids.ShortID, amount *uint256.Int) error {
	n := (*Network)(t)
	n.lock.Lock()
	defer n.lock.Unlock()

	if err := n.debit(n.w.shares, from, amount); err != nil {
		return err
	}
	n.credit(n.w.shares, to, amount)
	return nil
}

func (t *Token) TotalSupply() *uint256.Int {
	n := (*Network)(t)
	n.lock.Lock()
	defer n.lock.Unlock()

	return n.w.shareSupply.Clone()
}

func (t *Token) Snapshot() int           { return (*Network)(t).Snapshot() }
func (t *Token) RevertToSnapshot(id int) { (*Network)(t).RevertToSnapshot(id) }
func (t *Token) DiscardSnapshot(id int)  { (*Network)(t).DiscardSnapshot(id) }

type staking Network

func (s *staking) agent(agent ids.ShortID) (*agentState, error) {
	a, ok := s.w.agentStates[agent]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, agent)
	}
	return a, nil
}

func (s *staking) Deposit(_ context.Context, agent ids.ShortID, amount *uint256.Int) error {
	n := (*Network)(s)
	n.lock.Lock()
	defer n.lock.Unlock()

	if err := n.injected("deposit", agent); err != nil {
		return err
	}
	a, err := s.agent(agent)
	if err != nil {
		return err
	}
	if err := n.debit(n.w.balances, n.vault, amount); err != nil {
		return err
	}
	a.staked.Add(&a.staked, amount)
	return nil
}

func (s *staking) Unbond(_ context.Context, agent ids.ShortID, amount *uint256.Int) error {
	n := (*Network)(s)
	n.lock.Lock()
	defer n.lock.Unlock()

	if err := n.injected("unbond", agent); err != nil {
		return err
	}
	a, err := s.agent(agent)
	if err != nil {
		return err
	}
	if a.staked.Lt(amount) {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientStake, agent, a.staked.Dec(), amount.Dec())
	}
	a.staked.Sub(&a.staked, amount)

	readyAt := n.clock.UnixMilli() + n.unbondingPeriod
	a.unbonding = append(a.unbonding, unbonding{
		amount:  *amount,
		readyAt: readyAt,
	})
	return nil
}

func (s *staking) WithdrawUnbonded(_ context.Context, agent ids.ShortID) error {
	n := (*Network)(s)
	n.lock.Lock()
	defer n.lock.Unlock()

	if err := n.injected("withdrawUnbonded", agent); err != nil {
		return err
	}
	a, err := s.agent(agent)
	if err != nil {
		return err
	}

	var (
		now       = n.clock.UnixMilli()
		withdrawn = new(uint256.Int)
		pending   = a.unbonding[:0]
	)
	for _, u := range a.unbonding {
		if u.readyAt <= now {
			withdrawn.Add(withdrawn, &u.amount)
			continue
		}
		pending = append(pending, u)
	}
	a.unbonding = pending
	if withdrawn.IsZero() {
		return vault.ErrNothingToWithdraw
	}
	n.credit(n.w.balances, n.vault, withdrawn)
	return nil
}

func (s *staking) Compound(_ context.Context, agent ids.ShortID, incentivePercentage uint16) (*uint256.Int, *uint256.Int, error) {
	n := (*Network)(s)
	n.lock.Lock()
	defer n.lock.Unlock()

	if err := n.injected("compound", agent); err != nil {
		return nil, nil, err
	}
	a, err := s.agent(agent)
	if err != nil {
		return nil, nil, err
	}

	incentive, err := incentiveOf(&a.rewards, incentivePercentage)
	if err != nil {
		return nil, nil, err
	}
	compounded := new(uint256.Int).Sub(&a.rewards, incentive)
	a.rewards.Clear()
	a.staked.Add(&a.staked, compounded)
	n.credit(n.w.balances, n.vault, incentive)
	return compounded, incentive, nil
}

func (s *staking) GetStakedValue(_ context.Context, agent ids.ShortID) (*uint256.Int, error) {
	n := (*Network)(s)
	n.lock.Lock()
	defer n.lock.Unlock()

	a, err := s.agent(agent)
	if err != nil {
		return nil, err
	}
	return a.staked.Clone(), nil
}

func (s *staking) Snapshot() int           { return (*Network)(s).Snapshot() }
func (s *staking) RevertToSnapshot(id int) { (*Network)(s).RevertToSnapshot(id) }
func (s *staking) DiscardSnapshot(id int)  { (*Network)(s).DiscardSnapshot(id) }

type treasury Network

func (t *treasury) Collect(_ context.Context, from ids.ShortID, amount *uint256.Int) error {
	n := (*Network)(t)
	n.lock.Lock()
	defer n.lock.Unlock()

	if err := n.debit(n.w.balances, from, amount); err != nil {
		return err
	}
	n.credit(n.w.balances, n.vault, amount)
	return nil
}

func (t *treasury) Transfer(_ context.Context, to ids.ShortID, amount *uint256.Int) error {
	n := (*Network)(t)
	n.lock.Lock()
	defer n.lock.Unlock()

	if err := n.debit(n.w.balances, n.vault, amount); err != nil {
		return err
	}
	n.credit(n.w.balances, to, amount)
	return nil
}

func (t *treasury) Snapshot() int           { return (*Network)(t).Snapshot() }
func (t *treasury) RevertToSnapshot(id int) { (*Network)(t).RevertToSnapshot(id) }
func (t *treasury) DiscardSnapshot(id int)  { (*Network)(t).DiscardSnapshot(id) }
