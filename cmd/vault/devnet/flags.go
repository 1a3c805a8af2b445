// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package devnet

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/luxfi/vault/vault/config"
)

const (
	ConfigFileKey    = "config-file"
	ConfigContentKey = "config-content"
	AgentWeightsKey  = "agent-weights"
)

// AddFlags adds the flags that describe a devnet.
func AddFlags(flags *pflag.FlagSet) {
	flags.String(ConfigFileKey, "", "Path to the JSON vault config. Unset fields take their defaults")
	flags.String(ConfigContentKey, "", "JSON vault config. Takes precedence over "+ConfigFileKey)
	flags.UintSlice(AgentWeightsKey, []uint{100, 100, 100}, "Weight of each staking agent to register")
}

// ParseFlags reads the devnet config from flags that were added by AddFlags
// and already parsed.
func ParseFlags(flags *pflag.FlagSet) (Config, error) {
	configFile, err := flags.GetString(ConfigFileKey)
	if err != nil {
		return Config{}, err
	}
	configContent, err := flags.GetString(ConfigContentKey)
	if err != nil {
		return Config{}, err
	}

	configBytes := []byte(configContent)
	if len(configBytes) == 0 && configFile != "" {
		configBytes, err = os.ReadFile(configFile)
		if err != nil {
			return Config{}, err
		}
	}
	vaultConfig, err := config.Parse(configBytes)
	if err != nil {
		return Config{}, err
	}

	weights, err := flags.GetUintSlice(AgentWeightsKey)
	if err != nil {
		return Config{}, err
	}
	agentWeights := make([]uint64, len(weights))
	for i, weight := range weights {
		agentWeights[i] = uint64(weight)
	}

	return Config{
		Vault:        vaultConfig,
		AgentWeights: agentWeights,
	}, nil
}
