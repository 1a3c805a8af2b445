// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"

	"github.com/luxfi/vault/vault/allocation"
)

// Agent is a staking venue and its weight.
type Agent = allocation.Agent

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE}mock -destination=${GOPACKAGE}mock/registry.go -mock_names=Registry=Registry . Registry
//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE}mock -destination=${GOPACKAGE}mock/share_token.go -mock_names=ShareToken=ShareToken . ShareToken
//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE}mock -destination=${GOPACKAGE}mock/staking.go -mock_names=Staking=Staking . Staking
//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE}mock -destination=${GOPACKAGE}mock/treasury.go -mock_names=Treasury=Treasury . Treasury

// Registry lists the staking agents. Weight 0 marks a retired agent.
type Registry interface {
	Address() ids.ShortID
	// GetAgents returns the sum of all weights and the agents in registry
	// order.
	GetAgents(ctx context.Context) (uint64, []Agent, error)
}

// ShareToken is the fungible receipt token issued to stakers.
type ShareToken interface {
	Address() ids.ShortID
	Mint(ctx context.Context, to ids.ShortID, amount *uint256.Int) error
	Burn(ctx context.Context, from ids.ShortID, amount *uint256.Int) error
	TransferFrom(ctx context.Context, from ids.ShortID, to ids.ShortID, amount *uint256.Int) error
	BalanceOf(ctx context.Context, account ids.ShortID) (*uint256.Int, error)
}

// Staking delegates the vault's funds through an agent.
type Staking interface {
	// Deposit moves amount from the vault to the agent and bonds it.
	Deposit(ctx context.Context, agent ids.ShortID, amount *uint256.Int) error
	// Unbond starts unbonding amount of the agent's stake.
	Unbond(ctx context.Context, agent ids.ShortID, amount *uint256.Int) error
	// WithdrawUnbonded returns the agent's fully unbonded funds to the vault.
	// It returns ErrNothingToWithdraw when there are none.
	WithdrawUnbonded(ctx context.Context, agent ids.ShortID) error
	// Compound bonds the agent's rewards and returns the amount bonded and
	// the incentive sent to the vault. The incentive is incentivePercentage
	// basis points of the rewards.
	Compound(ctx context.Context, agent ids.ShortID, incentivePercentage uint16) (*uint256.Int, *uint256.Int, error)
	// GetStakedValue returns the agent's bonded stake.
	GetStakedValue(ctx context.Context, agent ids.ShortID) (*uint256.Int, error)
}

// Treasury moves the base asset in and out of the vault's account.
type Treasury interface {
	// Collect moves amount from an account into the vault.
	Collect(ctx context.Context, from ids.ShortID, amount *uint256.Int) error
	// Transfer moves amount from the vault to an account.
	Transfer(ctx context.Context, to ids.ShortID, amount *uint256.Int) error
}

// Reverter is implemented by collaborators that can undo their own effects.
//
// RevertToSnapshot restores the state captured by Snapshot and drops every
// later snapshot. DiscardSnapshot drops the snapshot and every later one
// without changing state.
type Reverter interface {
	Snapshot() int
	RevertToSnapshot(id int)
	DiscardSnapshot(id int)
}
