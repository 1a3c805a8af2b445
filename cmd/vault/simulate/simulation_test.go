// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simulate

import (
	"testing"

	"github.com/luxfi/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/vault/cmd/vault/devnet"
	"github.com/luxfi/vault/vault/config"
)

func TestRunRedeemsEveryUnlock(t *testing.T) {
	require := require.New(t)

	result, err := Run(t.Context(), &Config{
		Devnet: devnet.Config{
			Vault:        config.DefaultConfig(),
			AgentWeights: []uint64{100, 200, 300},
		},
		Seed:       7,
		Eras:       45,
		Users:      4,
		RewardRate: 1_000,
	}, log.NewNoOpLogger())
	require.NoError(err)

	require.Positive(result.Stakes)
	require.Equal(result.Unlocks, result.Redemptions)
	require.False(result.FeesWithdrawn.IsZero())
	require.False(result.TotalPooled.IsZero())
}

func TestParseFlags(t *testing.T) {
	require := require.New(t)

	flags := pflag.NewFlagSet("simulate", pflag.ContinueOnError)
	AddFlags(flags)
	cfg, err := ParseFlags(flags, []string{"--" + ErasKey, "3", "--" + UsersKey, "2"})
	require.NoError(err)
	require.Equal(uint64(3), cfg.Eras)
	require.Equal(2, cfg.Users)
	require.Equal(uint64(1), cfg.Seed)
	require.Equal(uint16(1_000), cfg.RewardRate)

	flags = pflag.NewFlagSet("simulate", pflag.ContinueOnError)
	AddFlags(flags)
	_, err = ParseFlags(flags, []string{"--" + UsersKey, "0"})
	require.ErrorIs(err, errNoUsers)
}
