// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package json provides string-encoded JSON numbers for the RPC surface that
// github.com/luxfi/utils/json does not cover.
package json

import (
	"strconv"

	"github.com/holiman/uint256"
)

const Null = "null"

func unquote(b []byte) string {
	str := string(b)
	if len(str) >= 2 {
		if lastIndex := len(str) - 1; str[0] == '"' && str[lastIndex] == '"' {
			str = str[1:lastIndex]
		}
	}
	return str
}

// Uint16 is a uint16 that can be JSON marshaled as a string.
type Uint16 uint16

func (u Uint16) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(u), 10) + `"`), nil
}

func (u *Uint16) UnmarshalJSON(b []byte) error {
	if string(b) == Null {
		return nil
	}
	val, err := strconv.ParseUint(unquote(b), 10, 16)
	*u = Uint16(val)
	return err
}

// Uint256 is a 256-bit amount JSON marshaled as a base 10 string.
type Uint256 uint256.Int

// NewUint256 copies x.
func NewUint256(x *uint256.Int) Uint256 {
	return Uint256(*x)
}

// Int returns a copy of u as a uint256.Int.
func (u Uint256) Int() *uint256.Int {
	i := uint256.Int(u)
	return &i
}

func (u Uint256) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.Int().Dec() + `"`), nil
}

func (u *Uint256) UnmarshalJSON(b []byte) error {
	if string(b) == Null {
		return nil
	}
	val, err := uint256.FromDecimal(unquote(b))
	if err != nil {
		return err
	}
	*u = Uint256(*val)
	return nil
}
