// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mockable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClockSetAndAdvance(t *testing.T) {
	require := require.New(t)

	var clk Clock
	clk.Set(time.UnixMilli(1_000))
	require.Equal(uint64(1_000), clk.UnixMilli())

	clk.Advance(time.Second)
	require.Equal(uint64(2_000), clk.UnixMilli())
	require.Equal(time.UnixMilli(2_000), clk.Time())
}

func TestClockBeforeEpoch(t *testing.T) {
	var clk Clock
	clk.Set(time.UnixMilli(-5))
	require.Zero(t, clk.UnixMilli())
}

func TestClockSync(t *testing.T) {
	require := require.New(t)

	var clk Clock
	clk.Set(time.Unix(0, 0))
	clk.Sync()
	require.WithinDuration(time.Now(), clk.Time(), time.Minute)
}
