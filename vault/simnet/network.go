// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package simnet is an in-memory host chain for a vault.
//
// A Network holds native balances, the share token, the agent registry and
// every agent's bonded, unbonding and reward balances. Its Registry, Token,
// Staking and Treasury views satisfy the vault's collaborator interfaces and
// support snapshot and revert, so a failed vault operation leaves the network
// untouched.
package simnet

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"

	"github.com/luxfi/vault/utils/timer/mockable"
	"github.com/luxfi/vault/vault"
	"github.com/luxfi/vault/vault/fees"

	safemath "github.com/luxfi/vault/utils/math"
)

// MaxAgents is the maximum number of registered agents.
const MaxAgents = 30

var (
	ErrDuplication           = errors.New("agent already registered")
	ErrTooManyAgents         = errors.New("too many agents")
	ErrAgentNotFound         = errors.New("agent not found")
	ErrActiveAgent           = errors.New("agent has weight or funds")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrInsufficientStake     = errors.New("insufficient stake")
	ErrUnknownSnapshot       = errors.New("unknown snapshot")
	ErrInjectedFailure       = errors.New("injected failure")
)

type unbonding struct {
	amount  uint256.Int
	readyAt uint64
}

type agentState struct {
	weight    uint64
	staked    uint256.Int
	rewards   uint256.Int
	unbonding []unbonding
}

type allowanceKey struct {
	owner   ids.ShortID
	spender ids.ShortID
}

// world is everything a snapshot captures.
type world struct {
	balances    map[ids.ShortID]uint256.Int
	shares      map[ids.ShortID]uint256.Int
	allowances  map[allowanceKey]uint256.Int
	shareSupply uint256.Int

	// agents in registry order
	agents      []ids.ShortID
	agentStates map[ids.ShortID]*agentState
	totalWeight uint64

	// failures maps an operation name to the agent it fails for
	failures map[string]ids.ShortID
}

func (w *world) clone() world {
	c := world{
		balances:    maps.Clone(w.balances),
		shares:      maps.Clone(w.shares),
		allowances:  maps.Clone(w.allowances),
		shareSupply: w.shareSupply,
		agents:      slices.Clone(w.agents),
		agentStates: make(map[ids.ShortID]*agentState, len(w.agentStates)),
		totalWeight: w.totalWeight,
		failures:    maps.Clone(w.failures),
	}
	for addr, a := range w.agentStates {
		c.agentStates[addr] = &agentState{
			weight:    a.weight,
			staked:    a.staked,
			rewards:   a.rewards,
			unbonding: slices.Clone(a.unbonding),
		}
	}
	return c
}

// Network is an in-memory host chain. It is safe for concurrent use.
type Network struct {
	lock  sync.Mutex
	clock *mockable.Clock

	vault           ids.ShortID
	registryAddress ids.ShortID
	tokenAddress    ids.ShortID
	// unbondingPeriod is in milliseconds
	unbondingPeriod uint64

	w         world
	snapshots []world
}

// New returns an empty network whose staking agents pay out unbonded funds
// unbondingPeriod milliseconds after unbonding starts.
func New(clock *mockable.Clock, vaultAccount ids.ShortID, unbondingPeriod uint64) *Network {
	return &Network{
		clock:           clock,
		vault:           vaultAccount,
		registryAddress: ids.GenerateTestShortID(),
		tokenAddress:    ids.GenerateTestShortID(),
		unbondingPeriod: unbondingPeriod,
		w: world{
			balances:    make(map[ids.ShortID]uint256.Int),
			shares:      make(map[ids.ShortID]uint256.Int),
			allowances:  make(map[allowanceKey]uint256.Int),
			agentStates: make(map[ids.ShortID]*agentState),
			failures:    make(map[string]ids.ShortID),
		},
	}
}

func (n *Network) VaultAccount() ids.ShortID {
	return n.vault
}

func (n *Network) Registry() vault.Registry {
	return (*registry)(n)
}

func (n *Network) Token() *Token {
	return (*Token)(n)
}

func (n *Network) Staking() vault.Staking {
	return (*staking)(n)
}

func (n *Network) Treasury() vault.Treasury {
	return (*treasury)(n)
}

// Snapshot captures the network and returns an id for RevertToSnapshot.
func (n *Network) Snapshot() int {
	n.lock.Lock()
	defer n.lock.Unlock()

	n.snapshots = append(n.snapshots, n.w.clone())
	return len(n.snapshots) - 1
}

// RevertToSnapshot restores the network captured by id and drops id and
// every later snapshot.
func (n *Network) RevertToSnapshot(id int) {
	n.lock.Lock()
	defer n.lock.Unlock()

	if id < 0 || id >= len(n.snapshots) {
		panic(fmt.Errorf("%w: %d", ErrUnknownSnapshot, id))
	}
	n.w = n.snapshots[id]
	n.snapshots = n.snapshots[:id]
}

// DiscardSnapshot drops id and every later snapshot.
func (n *Network) DiscardSnapshot(id int) {
	n.lock.Lock()
	defer n.lock.Unlock()

	if id < 0 || id >= len(n.snapshots) {
		panic(fmt.Errorf("%w: %d", ErrUnknownSnapshot, id))
	}
	n.snapshots = n.snapshots[:id]
}

// Fund credits account with amount of the base asset.
func (n *Network) Fund(account ids.ShortID, amount *uint256.Int) {
	n.lock.Lock()
	defer n.lock.Unlock()

	n.credit(n.w.balances, account, amount)
}

// Balance returns the base asset held by account.
func (n *Network) Balance(account ids.ShortID) *uint256.Int {
	n.lock.Lock()
	defer n.lock.Unlock()

	b := n.w.balances[account]
	return &b
}

// AddAgent registers a new agent with weight 0.
func (n *Network) AddAgent(agent ids.ShortID) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	if _, ok := n.w.agentStates[agent]; ok {
		return fmt.Errorf("%w: %s", ErrDuplication, agent)
	}
	if len(n.w.agents) >= MaxAgents {
		return ErrTooManyAgents
	}
	n.w.agents = append(n.w.agents, agent)
	n.w.agentStates[agent] = &agentState{}
	return nil
}

// UpdateAgent sets the weight of a registered agent.
func (n *Network) UpdateAgent(agent ids.ShortID, weight uint64) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	a, ok := n.w.agentStates[agent]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, agent)
	}
	totalWeight, err := safemath.Sub(n.w.totalWeight, a.weight)
	if err != nil {
		return err
	}
	totalWeight, err = safemath.Add(totalWeight, weight)
	if err != nil {
		return err
	}
	n.w.totalWeight = totalWeight
	a.weight = weight
	return nil
}

// RemoveAgent deregisters a retired agent with no bonded or unbonding funds.
func (n *Network) RemoveAgent(agent ids.ShortID) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	a, ok := n.w.agentStates[agent]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, agent)
	}
	if a.weight != 0 || !a.staked.IsZero() || len(a.unbonding) > 0 {
		return fmt.Errorf("%w: %s", ErrActiveAgent, agent)
	}
	delete(n.w.agentStates, agent)
	n.w.agents = slices.DeleteFunc(n.w.agents, func(addr ids.ShortID) bool {
		return addr == agent
	})
	return nil
}

// AddRewards credits an agent with staking rewards to be compounded.
func (n *Network) AddRewards(agent ids.ShortID, amount *uint256.Int) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	a, ok := n.w.agentStates[agent]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, agent)
	}
	a.rewards.Add(&a.rewards, amount)
	return nil
}

// UnbondingValue returns the funds an agent is unbonding or holds unbonded.
func (n *Network) UnbondingValue(agent ids.ShortID) *uint256.Int {
	n.lock.Lock()
	defer n.lock.Unlock()

	total := new(uint256.Int)
	if a, ok := n.w.agentStates[agent]; ok {
		for _, u := range a.unbonding {
			total.Add(total, &u.amount)
		}
	}
	return total
}

// FailNext makes the named staking operation ("deposit", "unbond",
// "withdrawUnbonded", "compound") fail for agent until cleared with
// ClearFailures. Failures are part of the snapshot state.
func (n *Network) FailNext(operation string, agent ids.ShortID) {
	n.lock.Lock()
	defer n.lock.Unlock()

	n.w.failures[operation] = agent
}

func (n *Network) ClearFailures() {
	n.lock.Lock()
	defer n.lock.Unlock()

	clear(n.w.failures)
}

func (n *Network) injected(operation string, agent ids.ShortID) error {
	if failing, ok := n.w.failures[operation]; ok && failing == agent {
		return fmt.Errorf("%w: %s of %s", ErrInjectedFailure, operation, agent)
	}
	return nil
}

func (*Network) credit(balances map[ids.ShortID]uint256.Int, account ids.ShortID, amount *uint256.Int) {
	b := balances[account]
	b.Add(&b, amount)
	balances[account] = b
}

func (*Network) debit(balances map[ids.ShortID]uint256.Int, account ids.ShortID, amount *uint256.Int) error {
	b := balances[account]
	if b.Lt(amount) {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientBalance, account, b.Dec(), amount.Dec())
	}
	b.Sub(&b, amount)
	balances[account] = b
	return nil
}

func incentiveOf(rewards *uint256.Int, incentivePercentage uint16) (*uint256.Int, error) {
	return safemath.ProRataUint64(rewards, uint64(incentivePercentage), uint64(fees.BIPS))
}
