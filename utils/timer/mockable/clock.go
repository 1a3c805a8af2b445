// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mockable

import (
	"sync"
	"time"
)

// Clock acts as a thin wrapper around global time that allows for easy testing.
// It is safe for concurrent use.
type Clock struct {
	mu    sync.RWMutex
	faked bool
	time  time.Time
}

// Set the time on the clock
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faked = true
	c.time = t
}

// Advance moves a faked clock forward by d. A clock following global time is
// first pinned to the current time.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.faked {
		c.faked = true
		c.time = time.Now()
	}
	c.time = c.time.Add(d)
}

// Sync this clock with global time
func (c *Clock) Sync() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faked = false
}

// Time returns the time on this clock
func (c *Clock) Time() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.faked {
		return c.time
	}
	return time.Now()
}

// UnixMilli returns the unix timestamp of this clock in milliseconds. Times
// before the epoch are reported as 0.
func (c *Clock) UnixMilli() uint64 {
	ms := max(c.Time().UnixMilli(), 0)
	return uint64(ms)
}
