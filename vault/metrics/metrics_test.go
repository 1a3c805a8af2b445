// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/vault/utils/metrictest"
	"github.com/luxfi/vault/vault/state"
)

func TestMetrics(t *testing.T) {
	require := require.New(t)

	registry := metric.NewRegistry()
	m, err := New("vault", registry)
	require.NoError(err)

	value := func(name string, labels metric.Labels) float64 {
		v, err := metrictest.Value(registry, name, labels)
		require.NoError(err)
		return v
	}

	m.MarkOperation("stake", nil)
	m.MarkOperation("stake", nil)
	m.MarkOperation("stake", errors.New("boom"))
	require.InDelta(2, value("vault_operations", metric.Labels{
		OperationLabel: "stake",
		ResultLabel:    successResult,
	}), 0)
	require.InDelta(1, value("vault_operations", metric.Labels{
		OperationLabel: "stake",
		ResultLabel:    failureResult,
	}), 0)

	v := state.Vault{
		TotalPooled:    *uint256.NewInt(100),
		PendingUnlocks: 4,
	}
	v.Fees.SharesMinted = *uint256.NewInt(90)
	v.Fees.SharesVirtual = *uint256.NewInt(3)
	m.SetVault(&v)
	require.InDelta(100, value("vault_total_pooled", nil), 0)
	require.InDelta(90, value("vault_shares_minted", nil), 0)
	require.InDelta(3, value("vault_shares_virtual", nil), 0)
	require.InDelta(4, value("vault_pending_unlocks", nil), 0)

	v.PendingUnlocks = 1
	m.SetVault(&v)
	require.InDelta(1, value("vault_pending_unlocks", nil), 0)

	m.AddCompounded(uint256.NewInt(50), uint256.NewInt(1))
	m.AddCompounded(uint256.NewInt(50), uint256.NewInt(1))
	require.InDelta(100, value("vault_compounded", nil), 0)
	require.InDelta(2, value("vault_incentives_paid", nil), 0)
}

func TestDuplicateRegistration(t *testing.T) {
	registry := metric.NewRegistry()
	_, err := New("vault", registry)
	require.NoError(t, err)

	_, err = New("vault", registry)
	require.Error(t, err)
}
