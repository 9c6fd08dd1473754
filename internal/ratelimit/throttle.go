// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ratelimit throttles how fast a node creates files.
package ratelimit

import (
	"context"
	"math"

	"golang.org/x/time/rate"
)

// A simple interface for limiting the rate of some event.
//
// Safe for concurrent access.
type Throttle interface {
	// Return the maximum number of tokens that can be requested in a call to
	// Wait.
	Capacity() (c uint64)

	// Acquire the given number of tokens from the underlying token bucket, then
	// sleep until when it says to wake. If the context is cancelled before then,
	// return early with an error.
	//
	// REQUIRES: tokens <= capacity
	Wait(ctx context.Context, tokens uint64) (err error)
}

type limiter struct {
	*rate.Limiter
}

// NewThrottle returns a throttle that lets rateHz events per second through,
// with bursts of up to capacity events. A non-positive or infinite rate
// never blocks.
func NewThrottle(
	rateHz float64,
	capacity int) (t Throttle) {
	if rateHz <= 0 || math.IsInf(rateHz, 1) {
		return &unlimited{}
	}

	typed := &limiter{rate.NewLimiter(rate.Limit(rateHz), max(capacity, 1))}
	t = typed
	return
}

func (l *limiter) Capacity() (c uint64) {
	return uint64(l.Burst())
}

func (l *limiter) Wait(
	ctx context.Context,
	tokens uint64) (err error) {
	return l.WaitN(ctx, int(tokens))
}

type unlimited struct{}

func (*unlimited) Capacity() (c uint64) {
	return math.MaxUint64
}

func (*unlimited) Wait(ctx context.Context, tokens uint64) (err error) {
	return ctx.Err()
}
