// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simnet

import (
	"context"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/vault/utils/timer/mockable"
	"github.com/luxfi/vault/vault"
)

const testUnbondingPeriod = 1_000

func newTestNetwork() (*Network, *mockable.Clock) {
	clock := &mockable.Clock{}
	clock.Set(time.UnixMilli(1_700_000_000_000))
	return New(clock, ids.GenerateTestShortID(), testUnbondingPeriod), clock
}

func TestRegistryAgents(t *testing.T) {
	require := require.New(t)

	n, _ := newTestNetwork()
	a0, a1 := ids.GenerateTestShortID(), ids.GenerateTestShortID()
	require.NoError(n.AddAgent(a0))
	require.NoError(n.AddAgent(a1))
	require.ErrorIs(n.AddAgent(a0), ErrDuplication)

	require.NoError(n.UpdateAgent(a0, 100))
	require.NoError(n.UpdateAgent(a1, 300))
	require.NoError(n.UpdateAgent(a0, 200))
	require.ErrorIs(n.UpdateAgent(ids.GenerateTestShortID(), 1), ErrAgentNotFound)

	totalWeight, agents, err := n.Registry().GetAgents(context.Background())
	require.NoError(err)
	require.Equal(uint64(500), totalWeight)
	require.Equal([]vault.Agent{
		{Address: a0, Weight: 200},
		{Address: a1, Weight: 300},
	}, agents)

	require.ErrorIs(n.RemoveAgent(a0), ErrActiveAgent)
	require.NoError(n.UpdateAgent(a0, 0))
	require.NoError(n.RemoveAgent(a0))
	totalWeight, agents, err = n.Registry().GetAgents(context.Background())
	require.NoError(err)
	require.Equal(uint64(300), totalWeight)
	require.Len(agents, 1)
}

func TestRegistryBound(t *testing.T) {
	require := require.New(t)

	n, _ := newTestNetwork()
	for range MaxAgents {
		require.NoError(n.AddAgent(ids.GenerateTestShortID()))
	}
	require.ErrorIs(n.AddAgent(ids.GenerateTestShortID()), ErrTooManyAgents)
}

func TestRemoveActiveAgent(t *testing.T) {
	require := require.New(t)

	n, _ := newTestNetwork()
	agent := ids.GenerateTestShortID()
	require.NoError(n.AddAgent(agent))
	n.Fund(n.VaultAccount(), uint256.NewInt(10))
	require.NoError(n.Staking().Deposit(context.Background(), agent, uint256.NewInt(10)))

	require.ErrorIs(n.RemoveAgent(agent), ErrActiveAgent)
}

func TestStakingUnbondingLifecycle(t *testing.T) {
	require := require.New(t)

	ctx := context.Background()
	n, clock := newTestNetwork()
	agent := ids.GenerateTestShortID()
	require.NoError(n.AddAgent(agent))
	n.Fund(n.VaultAccount(), uint256.NewInt(1_000))

	staking := n.Staking()
	require.NoError(staking.Deposit(ctx, agent, uint256.NewInt(600)))
	require.Equal(uint256.NewInt(400), n.Balance(n.VaultAccount()))

	err := staking.Deposit(ctx, agent, uint256.NewInt(401))
	require.ErrorIs(err, ErrInsufficientBalance)

	require.NoError(staking.Unbond(ctx, agent, uint256.NewInt(100)))
	err = staking.Unbond(ctx, agent, uint256.NewInt(501))
	require.ErrorIs(err, ErrInsufficientStake)

	staked, err := staking.GetStakedValue(ctx, agent)
	require.NoError(err)
	require.Equal(uint256.NewInt(500), staked)
	require.Equal(uint256.NewInt(100), n.UnbondingValue(agent))

	err = staking.WithdrawUnbonded(ctx, agent)
	require.ErrorIs(err, vault.ErrNothingToWithdraw)

	clock.Advance(testUnbondingPeriod * time.Millisecond)
	require.NoError(staking.WithdrawUnbonded(ctx, agent))
	require.Equal(uint256.NewInt(500), n.Balance(n.VaultAccount()))
	require.True(n.UnbondingValue(agent).IsZero())
}

func TestStakingCompound(t *testing.T) {
	require := require.New(t)

	ctx := context.Background()
	n, _ := newTestNetwork()
	agent := ids.GenerateTestShortID()
	require.NoError(n.AddAgent(agent))

	compounded, incentive, err := n.Staking().Compound(ctx, agent, 500)
	require.NoError(err)
	require.True(compounded.IsZero())
	require.True(incentive.IsZero())

	require.NoError(n.AddRewards(agent, uint256.NewInt(1_000)))
	compounded, incentive, err = n.Staking().Compound(ctx, agent, 500)
	require.NoError(err)
	require.Equal(uint256.NewInt(950), compounded)
	require.Equal(uint256.NewInt(50), incentive)
	require.Equal(uint256.NewInt(50), n.Balance(n.VaultAccount()))

	staked, err := n.Staking().GetStakedValue(ctx, agent)
	require.NoError(err)
	require.Equal(uint256.NewInt(950), staked)
}

func TestTokenAllowance(t *testing.T) {
	require := require.New(t)

	ctx := context.Background()
	n, _ := newTestNetwork()
	user := ids.GenerateTestShortID()
	token := n.Token()

	require.NoError(token.Mint(ctx, user, uint256.NewInt(100)))
	err := token.TransferFrom(ctx, user, n.VaultAccount(), uint256.NewInt(10))
	require.ErrorIs(err, ErrInsufficientAllowance)

	token.Approve(user, n.VaultAccount(), uint256.NewInt(30))
	require.NoError(token.TransferFrom(ctx, user, n.VaultAccount(), uint256.NewInt(10)))
	require.NoError(token.Burn(ctx, n.VaultAccount(), uint256.NewInt(10)))

	balance, err := token.BalanceOf(ctx, user)
	require.NoError(err)
	require.Equal(uint256.NewInt(90), balance)
	require.Equal(uint256.NewInt(90), token.TotalSupply())

	err = token.TransferFrom(ctx, user, n.VaultAccount(), uint256.NewInt(21))
	require.ErrorIs(err, ErrInsufficientAllowance)
}

func TestSnapshotRevert(t *testing.T) {
	require := require.New(t)

	ctx := context.Background()
	n, _ := newTestNetwork()
	user := ids.GenerateTestShortID()
	agent := ids.GenerateTestShortID()
	require.NoError(n.AddAgent(agent))
	n.Fund(user, uint256.NewInt(100))

	outer := n.Snapshot()
	require.NoError(n.Treasury().Collect(ctx, user, uint256.NewInt(60)))
	require.NoError(n.Staking().Deposit(ctx, agent, uint256.NewInt(60)))

	inner := n.Snapshot()
	require.NoError(n.Token().Mint(ctx, user, uint256.NewInt(5)))
	n.DiscardSnapshot(inner)

	n.RevertToSnapshot(outer)
	require.Equal(uint256.NewInt(100), n.Balance(user))
	require.True(n.Balance(n.VaultAccount()).IsZero())
	require.True(n.Token().TotalSupply().IsZero())
	staked, err := n.Staking().GetStakedValue(ctx, agent)
	require.NoError(err)
	require.True(staked.IsZero())

	require.Panics(func() {
		n.RevertToSnapshot(outer)
	})
}

func TestInjectedFailure(t *testing.T) {
	require := require.New(t)

	ctx := context.Background()
	n, _ := newTestNetwork()
	agent := ids.GenerateTestShortID()
	require.NoError(n.AddAgent(agent))
	n.Fund(n.VaultAccount(), uint256.NewInt(10))

	n.FailNext("deposit", agent)
	err := n.Staking().Deposit(ctx, agent, uint256.NewInt(10))
	require.ErrorIs(err, ErrInjectedFailure)

	n.ClearFailures()
	require.NoError(n.Staking().Deposit(ctx, agent, uint256.NewInt(10)))
}
