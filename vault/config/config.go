// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines configuration types for the vault engine.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/luxfi/vault/utils/units"
	"github.com/luxfi/vault/vault/fees"

	safemath "github.com/luxfi/vault/utils/math"
)

var (
	ErrInvalidPercent   = errors.New("percentage must be below 10000 basis points")
	ErrZeroEra          = errors.New("era must be at least one millisecond")
	ErrZeroMinStake     = errors.New("minimum stake must be positive")
	ErrCooldownOverflow = errors.New("cooldown period overflows")
)

// Config contains the parameters a vault is created with.
type Config struct {
	// MinStake is the smallest accepted deposit in base units
	MinStake uint64 `json:"minStake"`

	// FeePercentage is the initial annual protocol fee in basis points (200 = 2%)
	FeePercentage uint16 `json:"feePercentage"`
	// IncentivePercentage is the initial compound incentive in basis points
	IncentivePercentage uint16 `json:"incentivePercentage"`

	// Era is the staking era length of the host chain
	Era time.Duration `json:"era"`
	// CooldownEras is the number of eras between an unlock request and its
	// redemption
	CooldownEras uint64 `json:"cooldownEras"`
}

// DefaultConfig returns the default configuration for the vault.
func DefaultConfig() Config {
	return Config{
		MinStake:            units.MinStake,
		FeePercentage:       200, // 2%
		IncentivePercentage: 5,   // 0.05%
		Era:                 24 * time.Hour,
		CooldownEras:        14,
	}
}

// Parse overlays the JSON in b onto DefaultConfig and verifies the result.
// Empty input yields the defaults.
func Parse(b []byte) (Config, error) {
	config := DefaultConfig()
	if len(b) > 0 {
		if err := json.Unmarshal(b, &config); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal vault config: %w", err)
		}
	}
	return config, config.Verify()
}

func (c Config) Verify() error {
	switch {
	case c.FeePercentage >= fees.BIPS:
		return fmt.Errorf("%w: fee %d", ErrInvalidPercent, c.FeePercentage)
	case c.IncentivePercentage >= fees.BIPS:
		return fmt.Errorf("%w: incentive %d", ErrInvalidPercent, c.IncentivePercentage)
	case c.Era < time.Millisecond:
		return ErrZeroEra
	case c.MinStake == 0:
		return ErrZeroMinStake
	}
	_, err := c.CooldownPeriod()
	return err
}

// CooldownPeriod returns Era * CooldownEras in milliseconds.
func (c Config) CooldownPeriod() (uint64, error) {
	cooldown, err := safemath.Mul(uint64(c.Era.Milliseconds()), c.CooldownEras)
	if err != nil {
		return 0, fmt.Errorf("%w: %d eras of %s", ErrCooldownOverflow, c.CooldownEras, c.Era)
	}
	return cooldown, nil
}
