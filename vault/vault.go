// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vault implements a liquid staking vault.
//
// Users stake the base asset and receive shares, a pro rata claim on the base
// asset pooled across weighted staking agents. Unstaking is a two step
// process: an unlock request fixes the amount owed and starts unbonding, and a
// redemption pays it out once the cooldown period has elapsed. A protocol fee
// accrues continuously as virtual shares that the fee recipient can mint.
//
// Every mutating operation is atomic. When an operation fails, the vault
// record, the unlock queues, and every collaborator implementing Reverter are
// restored, and no events are emitted.
package vault

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/luxfi/vault/utils/timer/mockable"
	"github.com/luxfi/vault/vault/config"
	"github.com/luxfi/vault/vault/fees"
	"github.com/luxfi/vault/vault/metrics"
	"github.com/luxfi/vault/vault/state"

	safemath "github.com/luxfi/vault/utils/math"
)

const metricsNamespace = "vault"

var errMissingCollaborator = errors.New("missing collaborator")

// Params are the dependencies of an Engine.
type Params struct {
	Config config.Config
	DB     database.Database

	// Admin holds every role of a newly created vault.
	Admin ids.ShortID
	// Account is the vault's own account on the host chain.
	Account ids.ShortID

	Registry Registry
	Token    ShareToken
	Staking  Staking
	Treasury Treasury

	// Optional. Events default to a LogSink, the clock to wall time, the
	// logger to a no-op logger and the registerer to a private registry.
	Events     EventSink
	Clock      *mockable.Clock
	Log        log.Logger
	Registerer metric.Registerer
}

type Engine struct {
	log     log.Logger
	metrics metrics.Metrics
	clock   *mockable.Clock
	events  EventSink
	state   state.State

	account  ids.ShortID
	minStake *uint256.Int

	registry  Registry
	token     ShareToken
	staking   Staking
	treasury  Treasury
	reverters []Reverter

	lock sync.Mutex
	// vault is the committed vault record
	vault state.Vault
}

func New(p Params) (*Engine, error) {
	if err := p.Config.Verify(); err != nil {
		return nil, err
	}
	if p.Registry == nil || p.Token == nil || p.Staking == nil || p.Treasury == nil {
		return nil, errMissingCollaborator
	}

	if p.Log == nil {
		p.Log = log.NewNoOpLogger()
	}
	if p.Clock == nil {
		p.Clock = &mockable.Clock{}
	}
	if p.Events == nil {
		p.Events = &LogSink{Log: p.Log}
	}
	if p.Registerer == nil {
		p.Registerer = metric.NewRegistry()
	}

	m, err := metrics.New(metricsNamespace, p.Registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	e := &Engine{
		log:      p.Log,
		metrics:  m,
		clock:    p.Clock,
		events:   p.Events,
		state:    state.New(p.DB),
		account:  p.Account,
		minStake: uint256.NewInt(p.Config.MinStake),
		registry: p.Registry,
		token:    p.Token,
		staking:  p.Staking,
		treasury: p.Treasury,
	}
	for _, c := range []any{p.Registry, p.Token, p.Staking, p.Treasury} {
		if r, ok := c.(Reverter); ok {
			e.reverters = append(e.reverters, r)
		}
	}

	v, err := e.state.GetVault()
	switch {
	case errors.Is(err, state.ErrNotInitialized):
		v, err = e.genesis(p)
		if err != nil {
			return nil, err
		}
		e.state.PutVault(v)
		if err := e.state.Commit(); err != nil {
			return nil, fmt.Errorf("failed to write genesis vault: %w", err)
		}
		e.log.Info("created vault",
			log.Stringer("account", p.Account),
			log.Stringer("admin", p.Admin),
			log.Stringer("shareToken", v.ShareToken),
			log.Stringer("registry", v.Registry),
		)
	case err != nil:
		return nil, err
	default:
		e.log.Info("loaded vault",
			log.Stringer("account", p.Account),
			log.String("totalPooled", v.TotalPooled.Dec()),
		)
	}
	e.vault = v
	e.metrics.SetVault(&v)
	return e, nil
}

func (e *Engine) genesis(p Params) (state.Vault, error) {
	cooldown, err := p.Config.CooldownPeriod()
	if err != nil {
		return state.Vault{}, err
	}
	ledger, err := fees.NewLedger(p.Config.FeePercentage, e.clock.UnixMilli())
	if err != nil {
		return state.Vault{}, err
	}
	return state.Vault{
		RoleAdjustFee:       p.Admin,
		RoleFeeTo:           p.Admin,
		RoleSetCode:         p.Admin,
		SetCodeEnabled:      true,
		Fees:                *ledger,
		IncentivePercentage: p.Config.IncentivePercentage,
		CooldownPeriod:      cooldown,
		ShareToken:          p.Token.Address(),
		Registry:            p.Registry.Address(),
	}, nil
}

// tx is the unit of work of one operation.
type tx struct {
	ctx context.Context
	now uint64
	// vault is the staged copy of the vault record
	vault    state.Vault
	events   []Event
	onCommit []func()
}

func (t *tx) emit(e Event) {
	t.events = append(t.events, e)
}

// execute runs fn as a single atomic operation.
func (e *Engine) execute(ctx context.Context, operation string, fn func(*tx) error) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	t := &tx{
		ctx:   ctx,
		now:   e.clock.UnixMilli(),
		vault: e.vault,
	}
	snapshots := make([]int, len(e.reverters))
	for i, r := range e.reverters {
		snapshots[i] = r.Snapshot()
	}

	err := fn(t)
	if err == nil {
		e.state.PutVault(t.vault)
		err = e.state.Commit()
	}
	e.metrics.MarkOperation(operation, err)
	if err != nil {
		e.state.Abort()
		for i := len(e.reverters) - 1; i >= 0; i-- {
			e.reverters[i].RevertToSnapshot(snapshots[i])
		}
		e.log.Debug("vault operation failed",
			log.String("operation", operation),
			log.Err(err),
		)
		return err
	}

	for i := len(e.reverters) - 1; i >= 0; i-- {
		e.reverters[i].DiscardSnapshot(snapshots[i])
	}
	e.vault = t.vault
	e.metrics.SetVault(&t.vault)
	for _, f := range t.onCommit {
		f()
	}
	for _, event := range t.events {
		e.events.Emit(event)
	}
	e.log.Debug("vault operation committed",
		log.String("operation", operation),
		log.Uint64("time", t.now),
	)
	return nil
}

func (e *Engine) getAgents(ctx context.Context) (uint64, []Agent, error) {
	totalWeight, agents, err := e.registry.GetAgents(ctx)
	if err != nil {
		return 0, nil, internalErr(err)
	}
	return totalWeight, agents, nil
}

func (e *Engine) getStakes(ctx context.Context, agents []Agent) ([]*uint256.Int, error) {
	stakes := make([]*uint256.Int, len(agents))
	for i, agent := range agents {
		staked, err := e.staking.GetStakedValue(ctx, agent.Address)
		if err != nil {
			return nil, internalErr(fmt.Errorf("staked value of %s: %w", agent.Address, err))
		}
		stakes[i] = staked
	}
	return stakes, nil
}

// sharesFromAzero converts base asset into shares at the ratio as of now. An
// empty pool converts 1:1.
func sharesFromAzero(v *state.Vault, now uint64, azero *uint256.Int) (*uint256.Int, error) {
	if v.TotalPooled.IsZero() {
		return azero.Clone(), nil
	}
	totalShares, err := v.Fees.TotalSharesAt(now)
	if err != nil {
		return nil, err
	}
	return safemath.ProRata(azero, totalShares, &v.TotalPooled)
}

// azeroFromShares converts shares into base asset at the ratio as of now.
func azeroFromShares(v *state.Vault, now uint64, shares *uint256.Int) (*uint256.Int, error) {
	totalShares, err := v.Fees.TotalSharesAt(now)
	if err != nil {
		return nil, err
	}
	if totalShares.IsZero() {
		return new(uint256.Int), nil
	}
	return safemath.ProRata(shares, &v.TotalPooled, totalShares)
}
