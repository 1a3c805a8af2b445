// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package units

// Denominations of the staked base asset and of the share token. Both use 12
// decimals.
const (
	Pico  uint64 = 1            // Base unit
	Nano  uint64 = 1000 * Pico  // 10^3 base units
	Micro uint64 = 1000 * Nano  // 10^6 base units
	Milli uint64 = 1000 * Micro // 10^9 base units
	Azero uint64 = 1000 * Milli // 1 whole coin = 10^12 base units
	Kilo  uint64 = 1000 * Azero // 1,000 whole coins

	// Share is one whole share token.
	Share = Azero

	// MinStake is the smallest deposit the vault accepts.
	MinStake = Micro
)
