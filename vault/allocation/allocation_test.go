// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package allocation

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func newAgents(weights ...uint64) ([]Agent, uint64) {
	agents := make([]Agent, len(weights))
	var total uint64
	for i, w := range weights {
		agents[i] = Agent{
			Address: ids.GenerateTestShortID(),
			Weight:  w,
		}
		total += w
	}
	return agents, total
}

func u256s(values ...uint64) []*uint256.Int {
	out := make([]*uint256.Int, len(values))
	for i, v := range values {
		out[i] = uint256.NewInt(v)
	}
	return out
}

func sum(amounts []*uint256.Int) *uint256.Int {
	total := new(uint256.Int)
	for _, a := range amounts {
		total.Add(total, a)
	}
	return total
}

func TestImbalances(t *testing.T) {
	require := require.New(t)

	agents, totalWeight := newAgents(100, 100, 200)
	report, err := Imbalances(agents, totalWeight, u256s(50, 10, 140), uint256.NewInt(200))
	require.NoError(err)

	// targets are 50, 50, 100
	require.Equal(uint256.NewInt(40), report.PosDiff)
	require.Equal(uint256.NewInt(40), report.NegDiff)
	for i, expected := range []int64{0, -40, 40} {
		require.Zero(big.NewInt(expected).Cmp(report.Imbalances[i]))
	}
	require.Equal(u256s(50, 10, 140), report.Stakes)
}

func TestImbalancesZeroWeight(t *testing.T) {
	require := require.New(t)

	agents, _ := newAgents(0, 0)
	report, err := Imbalances(agents, 0, u256s(3, 0), uint256.NewInt(3))
	require.NoError(err)
	require.Equal(uint256.NewInt(3), report.PosDiff)
	require.True(report.NegDiff.IsZero())
}

func TestImbalancesMismatch(t *testing.T) {
	agents, totalWeight := newAgents(1, 1)
	_, err := Imbalances(agents, totalWeight, u256s(1), uint256.NewInt(1))
	require.ErrorIs(t, err, ErrStakesMismatch)
}

func TestPlanDeposit(t *testing.T) {
	tests := []struct {
		name        string
		weights     []uint64
		stakes      []uint64
		delta       uint64
		expected    []uint64
		expectedErr error
	}{
		{
			name:     "balanced equal weights",
			weights:  []uint64{100, 100},
			stakes:   []uint64{0, 0},
			delta:    10_000_000,
			expected: []uint64{5_000_000, 5_000_000},
		},
		{
			name:     "new agent is filled first",
			weights:  []uint64{100, 100, 100},
			stakes:   []uint64{5_000_000, 5_000_000, 0},
			delta:    10_000_000,
			expected: []uint64{1_666_668, 1_666_666, 6_666_666},
		},
		{
			name:     "imbalance larger than deposit",
			weights:  []uint64{1, 1},
			stakes:   []uint64{100, 0},
			delta:    10,
			expected: []uint64{0, 10},
		},
		{
			name:     "dust goes to first funded agent",
			weights:  []uint64{0, 1, 1, 1},
			stakes:   []uint64{0, 0, 0, 0},
			delta:    10,
			expected: []uint64{0, 4, 3, 3},
		},
		{
			name:        "no weight",
			weights:     []uint64{0, 0},
			stakes:      []uint64{0, 0},
			delta:       10,
			expectedErr: ErrZeroTotalWeight,
		},
		{
			name:        "no agents",
			weights:     nil,
			stakes:      nil,
			delta:       10,
			expectedErr: ErrZeroTotalWeight,
		},
		{
			name:        "amount rounds to zero everywhere",
			weights:     []uint64{1, 1, 1},
			stakes:      []uint64{0, 0, 0},
			delta:       2,
			expectedErr: ErrZeroDepositing,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			agents, totalWeight := newAgents(test.weights...)
			stakes := u256s(test.stakes...)
			amounts, err := PlanDeposit(agents, totalWeight, stakes, sum(stakes), uint256.NewInt(test.delta))
			require.ErrorIs(err, test.expectedErr)
			if test.expectedErr != nil {
				return
			}
			require.Equal(u256s(test.expected...), amounts)
		})
	}
}

func TestPlanDepositZeroDepositingWithRegistryWeight(t *testing.T) {
	// The registry reports weight while returning no agents.
	_, err := PlanDeposit(nil, 100, nil, uint256.NewInt(0), uint256.NewInt(10))
	require.ErrorIs(t, err, ErrZeroDepositing)
}

func TestPlanWithdrawal(t *testing.T) {
	tests := []struct {
		name        string
		weights     []uint64
		stakes      []uint64
		delta       uint64
		expected    []uint64
		expectedErr error
	}{
		{
			name:     "balanced equal weights",
			weights:  []uint64{100, 100},
			stakes:   []uint64{5_000_000, 5_000_000},
			delta:    4_000_000,
			expected: []uint64{2_000_000, 2_000_000},
		},
		{
			name:     "dust to first agent with surplus",
			weights:  []uint64{1, 1, 1},
			stakes:   []uint64{100, 100, 100},
			delta:    100,
			expected: []uint64{34, 33, 33},
		},
		{
			name:     "dust carries across agents",
			weights:  []uint64{1, 1, 1},
			stakes:   []uint64{3, 3, 3},
			delta:    8,
			expected: []uint64{3, 3, 2},
		},
		{
			name:     "over allocated agent drained first",
			weights:  []uint64{1, 1},
			stakes:   []uint64{80, 20},
			delta:    40,
			expected: []uint64{40, 0},
		},
		{
			name:     "retired agent drained",
			weights:  []uint64{1, 0},
			stakes:   []uint64{50, 50},
			delta:    100,
			expected: []uint64{50, 50},
		},
		{
			name:        "amount rounds to zero everywhere",
			weights:     []uint64{1, 1, 1},
			stakes:      []uint64{10, 10, 10},
			delta:       2,
			expectedErr: ErrZeroUnbonding,
		},
		{
			name:        "more than pooled",
			weights:     []uint64{1},
			stakes:      []uint64{10},
			delta:       11,
			expectedErr: ErrInsufficientStake,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			agents, totalWeight := newAgents(test.weights...)
			stakes := u256s(test.stakes...)
			amounts, err := PlanWithdrawal(agents, totalWeight, stakes, sum(stakes), uint256.NewInt(test.delta))
			require.ErrorIs(err, test.expectedErr)
			if test.expectedErr != nil {
				return
			}
			require.Equal(u256s(test.expected...), amounts)
		})
	}
}

func TestPlanConservesDelta(t *testing.T) {
	rng := rand.New(rand.NewSource(1)) // #nosec G404

	for i := 0; i < 500; i++ {
		n := 1 + rng.Intn(30)
		weights := make([]uint64, n)
		stakeValues := make([]uint64, n)
		for j := range weights {
			weights[j] = uint64(rng.Intn(1_000))
			stakeValues[j] = uint64(rng.Int63n(1_000_000_000))
		}
		weights[0]++

		agents, totalWeight := newAgents(weights...)
		stakes := u256s(stakeValues...)
		pooled := sum(stakes)

		deposit := uint256.NewInt(1 + uint64(rng.Int63n(1_000_000_000)))
		amounts, err := PlanDeposit(agents, totalWeight, stakes, pooled, deposit)
		if err == nil {
			require.Equal(t, deposit, sum(amounts))
		} else {
			require.ErrorIs(t, err, ErrZeroDepositing)
		}

		if pooled.IsZero() {
			continue
		}
		withdrawal := uint256.NewInt(1 + rng.Uint64()%pooled.Uint64())
		amounts, err = PlanWithdrawal(agents, totalWeight, stakes, pooled, withdrawal)
		if err != nil {
			require.ErrorIs(t, err, ErrZeroUnbonding)
			continue
		}
		require.Equal(t, withdrawal, sum(amounts))
		for j, amount := range amounts {
			require.False(t, amount.Gt(stakes[j]))
		}
	}
}
