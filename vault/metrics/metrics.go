// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/metric"

	"github.com/luxfi/vault/vault/state"
)

const (
	OperationLabel = "operation"
	ResultLabel    = "result"

	successResult = "success"
	failureResult = "failure"
)

var _ Metrics = (*metrics)(nil)

type Metrics interface {
	// Mark that an operation committed, or failed with err.
	MarkOperation(operation string, err error)

	// Mark the pool totals and the number of pending unlock requests of a
	// committed vault record.
	SetVault(v *state.Vault)

	// Mark the base asset compounded into agents and the incentive paid out.
	AddCompounded(compounded, incentive *uint256.Int)
}

func New(namespace string, registerer metric.Registerer) (Metrics, error) {
	m := &metrics{
		operations: metric.NewCounterVec(
			metric.CounterOpts{
				Name: namespace + "_operations",
				Help: "Number of vault operations by outcome",
			},
			[]string{OperationLabel, ResultLabel},
		),
		totalPooled: metric.NewGauge(metric.GaugeOpts{
			Name: namespace + "_total_pooled",
			Help: "Base asset (in base units) staked across all agents",
		}),
		sharesMinted: metric.NewGauge(metric.GaugeOpts{
			Name: namespace + "_shares_minted",
			Help: "Share token supply issued by the vault",
		}),
		sharesVirtual: metric.NewGauge(metric.GaugeOpts{
			Name: namespace + "_shares_virtual",
			Help: "Accrued protocol fee shares not yet minted",
		}),
		pendingUnlocks: metric.NewGauge(metric.GaugeOpts{
			Name: namespace + "_pending_unlocks",
			Help: "Number of unlock requests awaiting redemption",
		}),
		compounded: metric.NewCounter(metric.CounterOpts{
			Name: namespace + "_compounded",
			Help: "Cumulative base asset (in base units) compounded into agents",
		}),
		incentives: metric.NewCounter(metric.CounterOpts{
			Name: namespace + "_incentives_paid",
			Help: "Cumulative base asset (in base units) paid to compound callers",
		}),
	}

	err := errors.Join(
		registerer.Register(metric.AsCollector(m.operations)),
		registerer.Register(metric.AsCollector(m.totalPooled)),
		registerer.Register(metric.AsCollector(m.sharesMinted)),
		registerer.Register(metric.AsCollector(m.sharesVirtual)),
		registerer.Register(metric.AsCollector(m.pendingUnlocks)),
		registerer.Register(metric.AsCollector(m.compounded)),
		registerer.Register(metric.AsCollector(m.incentives)),
	)
	return m, err
}

type metrics struct {
	operations metric.CounterVec

	totalPooled    metric.Gauge
	sharesMinted   metric.Gauge
	sharesVirtual  metric.Gauge
	pendingUnlocks metric.Gauge

	compounded metric.Counter
	incentives metric.Counter
}

func (m *metrics) MarkOperation(operation string, err error) {
	result := successResult
	if err != nil {
		result = failureResult
	}
	m.operations.With(metric.Labels{
		OperationLabel: operation,
		ResultLabel:    result,
	}).Inc()
}

func (m *metrics) SetVault(v *state.Vault) {
	m.totalPooled.Set(toFloat(&v.TotalPooled))
	m.sharesMinted.Set(toFloat(&v.Fees.SharesMinted))
	m.sharesVirtual.Set(toFloat(&v.Fees.SharesVirtual))
	m.pendingUnlocks.Set(float64(v.PendingUnlocks))
}

func (m *metrics) AddCompounded(compounded, incentive *uint256.Int) {
	m.compounded.Add(toFloat(compounded))
	m.incentives.Add(toFloat(incentive))
}

func toFloat(x *uint256.Int) float64 {
	f, _ := new(big.Float).SetInt(x.ToBig()).Float64()
	return f
}
