// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	require := require.New(t)

	c := DefaultConfig()
	require.NoError(c.Verify())

	cooldown, err := c.CooldownPeriod()
	require.NoError(err)
	require.Equal(uint64(14*86_400_000), cooldown)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		json        string
		expected    func() Config
		expectedErr error
	}{
		{
			name:     "empty",
			json:     "",
			expected: DefaultConfig,
		},
		{
			name: "overrides",
			json: `{"feePercentage":300,"era":3600000000000,"cooldownEras":2}`,
			expected: func() Config {
				c := DefaultConfig()
				c.FeePercentage = 300
				c.Era = time.Hour
				c.CooldownEras = 2
				return c
			},
		},
		{
			name:        "fee at 100%",
			json:        `{"feePercentage":10000}`,
			expectedErr: ErrInvalidPercent,
		},
		{
			name:        "incentive at 100%",
			json:        `{"incentivePercentage":10000}`,
			expectedErr: ErrInvalidPercent,
		},
		{
			name:        "zero era",
			json:        `{"era":0}`,
			expectedErr: ErrZeroEra,
		},
		{
			name:        "zero minimum stake",
			json:        `{"minStake":0}`,
			expectedErr: ErrZeroMinStake,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			c, err := Parse([]byte(test.json))
			require.ErrorIs(err, test.expectedErr)
			if test.expectedErr != nil {
				return
			}
			require.Equal(test.expected(), c)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("{"))
	require.Error(t, err)
}

func TestCooldownOverflow(t *testing.T) {
	c := DefaultConfig()
	c.CooldownEras = math.MaxUint64
	require.ErrorIs(t, c.Verify(), ErrCooldownOverflow)
}
