// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"errors"

	"github.com/holiman/uint256"
)

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

var (
	ErrOverflow     = errors.New("overflow")
	ErrUnderflow    = errors.New("underflow")
	ErrDivideByZero = errors.New("divide by zero")
)

// MaxUint returns the maximum value of an unsigned integer of type T.
func MaxUint[T Unsigned]() T {
	return ^T(0)
}

// Add returns:
// 1) a + b
// 2) If there is overflow, an error
func Add[T Unsigned](a, b T) (T, error) {
	if a > MaxUint[T]()-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// Sub returns:
// 1) a - b
// 2) If there is underflow, an error
func Sub[T Unsigned](a, b T) (T, error) {
	if a < b {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

// Mul returns:
// 1) a * b
// 2) If there is overflow, an error
func Mul[T Unsigned](a, b T) (T, error) {
	if b != 0 && a > MaxUint[T]()/b {
		return 0, ErrOverflow
	}
	return a * b, nil
}

// Add256 returns a + b as a new value, or ErrOverflow.
func Add256(a, b *uint256.Int) (*uint256.Int, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}
	return sum, nil
}

// Sub256 returns a - b as a new value, or ErrUnderflow.
func Sub256(a, b *uint256.Int) (*uint256.Int, error) {
	if a.Lt(b) {
		return nil, ErrUnderflow
	}
	return new(uint256.Int).Sub(a, b), nil
}

// Min256 returns the smaller of a and b.
func Min256(a, b *uint256.Int) *uint256.Int {
	if a.Lt(b) {
		return a
	}
	return b
}
