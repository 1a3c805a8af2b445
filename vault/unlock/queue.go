// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package unlock

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	safemath "github.com/luxfi/vault/utils/math"
)

var (
	ErrInvalidRequest = errors.New("invalid unlock request")
	ErrCooldown       = errors.New("cooldown period has not elapsed")
)

// Request is a pending redemption. Azero is fixed when the request is created.
type Request struct {
	CreationTime uint64      `serialize:"true"`
	Azero        uint256.Int `serialize:"true"`
}

// ReadyAt returns the first time at which the request can be redeemed.
func (r *Request) ReadyAt(cooldown uint64) uint64 {
	readyAt, err := safemath.Add(r.CreationTime, cooldown)
	if err != nil {
		return safemath.MaxUint[uint64]()
	}
	return readyAt
}

// Queue is one user's pending redemptions in creation order.
//
// Requests are addressed by their index at call time. Popping a request shifts
// every later request down by one.
type Queue struct {
	Requests []Request `serialize:"true"`
}

func (q *Queue) Len() int {
	return len(q.Requests)
}

// Push appends a request and returns its index.
func (q *Queue) Push(now uint64, azero *uint256.Int) uint64 {
	q.Requests = append(q.Requests, Request{
		CreationTime: now,
		Azero:        *azero,
	})
	return uint64(len(q.Requests) - 1)
}

// Pop removes the request at index once its cooldown has elapsed and returns
// the amount owed.
func (q *Queue) Pop(index uint64, now uint64, cooldown uint64) (*uint256.Int, error) {
	if index >= uint64(len(q.Requests)) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrInvalidRequest, index, len(q.Requests))
	}
	request := q.Requests[index]
	if readyAt := request.ReadyAt(cooldown); now < readyAt {
		return nil, fmt.Errorf("%w: ready at %d, now %d", ErrCooldown, readyAt, now)
	}

	q.Requests = append(q.Requests[:index], q.Requests[index+1:]...)
	return &request.Azero, nil
}
