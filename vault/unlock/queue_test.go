// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package unlock

import (
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

const cooldown = 1_000

func TestPushReturnsIndex(t *testing.T) {
	require := require.New(t)

	var q Queue
	require.Equal(uint64(0), q.Push(10, uint256.NewInt(1)))
	require.Equal(uint64(1), q.Push(20, uint256.NewInt(2)))
	require.Equal(2, q.Len())
}

func TestPushCopiesAmount(t *testing.T) {
	require := require.New(t)

	var q Queue
	amount := uint256.NewInt(5)
	q.Push(0, amount)
	amount.SetUint64(6)
	require.Equal(uint256.NewInt(5), &q.Requests[0].Azero)
}

func TestPop(t *testing.T) {
	tests := []struct {
		name        string
		index       uint64
		now         uint64
		expected    uint64
		expectedErr error
		remaining   []uint64
	}{
		{
			name:        "index out of range",
			index:       3,
			now:         10_000,
			expectedErr: ErrInvalidRequest,
			remaining:   []uint64{100, 200, 300},
		},
		{
			name:        "cooldown not elapsed",
			index:       1,
			now:         cooldown + 1,
			expectedErr: ErrCooldown,
			remaining:   []uint64{100, 200, 300},
		},
		{
			name:      "exactly at cooldown",
			index:     1,
			now:       cooldown + 2,
			expected:  200,
			remaining: []uint64{100, 300},
		},
		{
			name:      "first",
			index:     0,
			now:       10_000,
			expected:  100,
			remaining: []uint64{200, 300},
		},
		{
			name:      "last",
			index:     2,
			now:       10_000,
			expected:  300,
			remaining: []uint64{100, 200},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			var q Queue
			q.Push(1, uint256.NewInt(100))
			q.Push(2, uint256.NewInt(200))
			q.Push(3, uint256.NewInt(300))

			azero, err := q.Pop(test.index, test.now, cooldown)
			require.ErrorIs(err, test.expectedErr)
			if test.expectedErr == nil {
				require.Equal(uint256.NewInt(test.expected), azero)
			}

			remaining := make([]uint64, q.Len())
			for i, r := range q.Requests {
				remaining[i] = r.Azero.Uint64()
			}
			require.Equal(test.remaining, remaining)
		})
	}
}

func TestReadyAtSaturates(t *testing.T) {
	r := Request{CreationTime: math.MaxUint64 - 1}
	require.Equal(t, uint64(math.MaxUint64), r.ReadyAt(cooldown))
}

func TestPopReturnsIndependentAmount(t *testing.T) {
	require := require.New(t)

	var q Queue
	q.Push(0, uint256.NewInt(1))
	q.Push(0, uint256.NewInt(2))

	azero, err := q.Pop(0, cooldown, cooldown)
	require.NoError(err)
	require.Equal(uint256.NewInt(1), azero)
	require.Equal(uint256.NewInt(2), &q.Requests[0].Azero)
}
