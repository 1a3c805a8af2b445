// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrictest

import (
	"testing"

	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	require := require.New(t)

	registry := metric.NewRegistry()
	counter := metric.NewCounterVec(
		metric.CounterOpts{
			Name: "calls",
			Help: "Number of calls",
		},
		[]string{"method"},
	)
	require.NoError(registry.Register(metric.AsCollector(counter)))
	counter.With(metric.Labels{"method": "a"}).Inc()
	counter.With(metric.Labels{"method": "b"}).Add(2)

	value, err := Value(registry, "calls", metric.Labels{"method": "b"})
	require.NoError(err)
	require.InDelta(2, value, 0)

	_, err = Value(registry, "calls", metric.Labels{"method": "c"})
	require.ErrorIs(err, ErrNotFound)

	count, err := Count(registry, "calls")
	require.NoError(err)
	require.Equal(2, count)

	count, err = Count(registry, "missing")
	require.NoError(err)
	require.Zero(count)
}
