// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simulate

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/luxfi/vault/cmd/vault/devnet"
)

const (
	SeedKey       = "seed"
	ErasKey       = "eras"
	UsersKey      = "users"
	RewardRateKey = "reward-rate"
)

var errNoUsers = errors.New("at least one user is required")

func AddFlags(flags *pflag.FlagSet) {
	devnet.AddFlags(flags)
	flags.Uint64(SeedKey, 1, "Seed of the simulated user behaviour")
	flags.Uint64(ErasKey, 60, "Number of eras to simulate")
	flags.Int(UsersKey, 8, "Number of simulated users")
	flags.Uint16(RewardRateKey, 1_000, "Annual staking reward in basis points")
}

type Config struct {
	Devnet devnet.Config
	Seed   uint64
	Eras   uint64
	Users  int
	// RewardRate is in basis points per year
	RewardRate uint16
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	devnetConfig, err := devnet.ParseFlags(flags)
	if err != nil {
		return nil, err
	}

	seed, err := flags.GetUint64(SeedKey)
	if err != nil {
		return nil, err
	}

	eras, err := flags.GetUint64(ErasKey)
	if err != nil {
		return nil, err
	}

	users, err := flags.GetInt(UsersKey)
	if err != nil {
		return nil, err
	}
	if users <= 0 {
		return nil, errNoUsers
	}

	rewardRate, err := flags.GetUint16(RewardRateKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		Devnet:     devnetConfig,
		Seed:       seed,
		Eras:       eras,
		Users:      users,
		RewardRate: rewardRate,
	}, nil
}
