// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package devnet runs a vault on an in-memory network.
package devnet

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/luxfi/vault/utils/timer/mockable"
	"github.com/luxfi/vault/vault"
	"github.com/luxfi/vault/vault/config"
	"github.com/luxfi/vault/vault/simnet"
)

type Config struct {
	Vault config.Config
	// AgentWeights registers one agent per weight.
	AgentWeights []uint64
}

type Devnet struct {
	Clock   *mockable.Clock
	Network *simnet.Network
	Engine  *vault.Engine

	Admin  ids.ShortID
	Agents []ids.ShortID
}

// New creates a network whose agents unbond over the vault's cooldown period
// and a vault on top of it administered by a new account.
func New(
	cfg Config,
	db database.Database,
	clock *mockable.Clock,
	logger log.Logger,
	registerer metric.Registerer,
) (*Devnet, error) {
	cooldown, err := cfg.Vault.CooldownPeriod()
	if err != nil {
		return nil, err
	}

	d := &Devnet{
		Clock:   clock,
		Network: simnet.New(clock, ids.GenerateTestShortID(), cooldown),
		Admin:   ids.GenerateTestShortID(),
	}
	for _, weight := range cfg.AgentWeights {
		agent := ids.GenerateTestShortID()
		if err := d.AddAgent(agent, weight); err != nil {
			return nil, err
		}
	}

	d.Engine, err = vault.New(vault.Params{
		Config:     cfg.Vault,
		DB:         db,
		Admin:      d.Admin,
		Account:    d.Network.VaultAccount(),
		Registry:   d.Network.Registry(),
		Token:      d.Network.Token(),
		Staking:    d.Network.Staking(),
		Treasury:   d.Network.Treasury(),
		Clock:      clock,
		Log:        logger,
		Registerer: registerer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vault: %w", err)
	}

	logger.Info("created devnet",
		log.Stringer("vault", d.Network.VaultAccount()),
		log.Stringer("admin", d.Admin),
		log.Reflect("agents", d.Agents),
	)
	return d, nil
}

// AddAgent registers agent with weight.
func (d *Devnet) AddAgent(agent ids.ShortID, weight uint64) error {
	if err := d.Network.AddAgent(agent); err != nil {
		return err
	}
	if err := d.Network.UpdateAgent(agent, weight); err != nil {
		return err
	}
	d.Agents = append(d.Agents, agent)
	return nil
}

// CheckPool returns an error unless the vault's pool equals the stake bonded
// with its agents.
func (d *Devnet) CheckPool(ctx context.Context) error {
	staking := d.Network.Staking()
	bonded := new(uint256.Int)
	for _, agent := range d.Agents {
		staked, err := staking.GetStakedValue(ctx, agent)
		if err != nil {
			return err
		}
		bonded.Add(bonded, staked)
	}

	if pooled := d.Engine.GetTotalPooled(); !pooled.Eq(bonded) {
		return fmt.Errorf("pooled %s does not match bonded %s", pooled.Dec(), bonded.Dec())
	}
	return nil
}
