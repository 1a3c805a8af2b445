// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simulate

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/luxfi/vault/cmd/vault/devnet"
	"github.com/luxfi/vault/utils/timer/mockable"
	"github.com/luxfi/vault/utils/units"
	"github.com/luxfi/vault/vault"
	"github.com/luxfi/vault/vault/fees"

	safemath "github.com/luxfi/vault/utils/math"
)

const (
	// maxStake bounds a single simulated deposit
	maxStake = 1_000 * units.Azero
	// initialBalance of every simulated user
	initialBalance = 1_000_000 * units.Azero
	// feeWithdrawalEras is how often the fee recipient mints its fees
	feeWithdrawalEras = 30
)

// Result summarizes a simulation.
type Result struct {
	Stakes         uint64
	Unlocks        uint64
	Redemptions    uint64
	Incentives     *uint256.Int
	FeesWithdrawn  *uint256.Int
	TotalPooled    *uint256.Int
	TotalShares    *uint256.Int
	Rate           *uint256.Int
	FinalTimestamp uint64
}

type simulation struct {
	config *Config
	log    log.Logger
	rng    *rand.Rand
	devnet *devnet.Devnet
	era    time.Duration
	users  []ids.ShortID
	result Result
}

// Run stakes, compounds, unlocks and redeems on a devnet for the configured
// number of eras, then redeems every outstanding request. The vault's pool is
// checked against the agents' bonded stake after every era.
func Run(ctx context.Context, config *Config, logger log.Logger) (*Result, error) {
	clock := &mockable.Clock{}
	clock.Set(time.Now().Truncate(time.Millisecond))
	d, err := devnet.New(config.Devnet, memdb.New(), clock, logger, metric.NewRegistry())
	if err != nil {
		return nil, err
	}

	s := &simulation{
		config: config,
		log:    logger,
		rng:    rand.New(rand.NewPCG(config.Seed, config.Seed)),
		devnet: d,
		era:    config.Devnet.Vault.Era,
		result: Result{
			Incentives:    new(uint256.Int),
			FeesWithdrawn: new(uint256.Int),
		},
	}
	for range config.Users {
		user := ids.GenerateTestShortID()
		d.Network.Fund(user, uint256.NewInt(initialBalance))
		s.users = append(s.users, user)
	}

	for era := uint64(1); era <= config.Eras; era++ {
		if err := s.step(ctx, era); err != nil {
			return nil, fmt.Errorf("era %d: %w", era, err)
		}
	}
	if err := s.drain(ctx); err != nil {
		return nil, err
	}
	return s.finish()
}

func (s *simulation) step(ctx context.Context, era uint64) error {
	engine := s.devnet.Engine
	for _, user := range s.users {
		if s.rng.IntN(2) == 0 {
			continue
		}
		amount := uint256.NewInt(units.MinStake + s.rng.Uint64N(maxStake))
		if _, err := engine.Stake(ctx, user, amount); err != nil {
			return err
		}
		s.result.Stakes++
	}

	if err := s.payRewards(ctx); err != nil {
		return err
	}
	caller := s.users[s.rng.IntN(len(s.users))]
	incentive, err := engine.Compound(ctx, caller)
	switch {
	case errors.Is(err, vault.ErrZeroCompounding):
	case err != nil:
		return err
	default:
		s.result.Incentives.Add(s.result.Incentives, incentive)
	}

	for _, user := range s.users {
		if s.rng.IntN(4) != 0 {
			continue
		}
		if err := s.requestUnlock(ctx, user); err != nil {
			return err
		}
	}
	if err := s.redeemReady(ctx); err != nil {
		return err
	}

	if era%feeWithdrawalEras == 0 {
		shares, err := engine.WithdrawFees(ctx, s.devnet.Admin)
		if err != nil {
			return err
		}
		s.result.FeesWithdrawn.Add(s.result.FeesWithdrawn, shares)
	}

	if err := s.devnet.CheckPool(ctx); err != nil {
		return err
	}
	s.devnet.Clock.Advance(s.era)
	return nil
}

// payRewards credits every agent with one era of rewards on its stake.
func (s *simulation) payRewards(ctx context.Context) error {
	staking := s.devnet.Network.Staking()
	eraMillis := uint64(s.era.Milliseconds())
	for _, agent := range s.devnet.Agents {
		staked, err := staking.GetStakedValue(ctx, agent)
		if err != nil {
			return err
		}
		annual, err := safemath.ProRataUint64(staked, uint64(s.config.RewardRate), uint64(fees.BIPS))
		if err != nil {
			return err
		}
		reward, err := safemath.ProRataUint64(annual, eraMillis, fees.Year)
		if err != nil {
			return err
		}
		if err := s.devnet.Network.AddRewards(agent, reward); err != nil {
			return err
		}
	}
	return nil
}

// requestUnlock unlocks between 1% and 100% of the user's shares.
func (s *simulation) requestUnlock(ctx context.Context, user ids.ShortID) error {
	token := s.devnet.Network.Token()
	balance, err := token.BalanceOf(ctx, user)
	if err != nil {
		return err
	}
	shares, err := safemath.ProRataUint64(balance, 1+s.rng.Uint64N(100), 100)
	if err != nil {
		return err
	}
	if shares.IsZero() {
		return nil
	}

	token.Approve(user, s.devnet.Network.VaultAccount(), shares)
	if _, err := s.devnet.Engine.RequestUnlock(ctx, user, shares); err != nil {
		return err
	}
	s.result.Unlocks++
	return nil
}

// redeemReady redeems every request whose cooldown has elapsed. Requests are
// ready in creation order.
func (s *simulation) redeemReady(ctx context.Context) error {
	engine := s.devnet.Engine
	cooldown := engine.GetCooldownPeriod()
	now := s.devnet.Clock.UnixMilli()
	for _, user := range s.users {
		requests, err := engine.GetUnlockRequests(user)
		if err != nil {
			return err
		}
		for _, request := range requests {
			if request.ReadyAt(cooldown) > now {
				break
			}
			if err := engine.RedeemWithWithdraw(ctx, user, 0); err != nil {
				return err
			}
			s.result.Redemptions++
		}
	}
	return nil
}

func (s *simulation) drain(ctx context.Context) error {
	cooldown := time.Duration(s.devnet.Engine.GetCooldownPeriod()) * time.Millisecond
	s.devnet.Clock.Advance(cooldown)
	return s.redeemReady(ctx)
}

func (s *simulation) finish() (*Result, error) {
	engine := s.devnet.Engine
	totalShares, err := engine.GetTotalShares()
	if err != nil {
		return nil, err
	}
	rate, err := engine.GetRate()
	if err != nil {
		return nil, err
	}

	s.result.TotalPooled = engine.GetTotalPooled()
	s.result.TotalShares = totalShares
	s.result.Rate = rate
	s.result.FinalTimestamp = s.devnet.Clock.UnixMilli()
	return &s.result, nil
}
