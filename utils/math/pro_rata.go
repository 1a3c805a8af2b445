// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import "github.com/holiman/uint256"

// ProRata returns floor(a * b / c).
//
// The product a * b is held in 512 bits, so it never overflows. ErrOverflow is
// only returned when the quotient itself does not fit in 256 bits.
func ProRata(a, b, c *uint256.Int) (*uint256.Int, error) {
	if c.IsZero() {
		return nil, ErrDivideByZero
	}
	quo, overflow := new(uint256.Int).MulDivOverflow(a, b, c)
	if overflow {
		return nil, ErrOverflow
	}
	return quo, nil
}

// ProRataUint64 is ProRata with a machine word ratio b / c.
func ProRataUint64(a *uint256.Int, b, c uint64) (*uint256.Int, error) {
	return ProRata(a, uint256.NewInt(b), uint256.NewInt(c))
}
