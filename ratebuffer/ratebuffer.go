// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratebuffer implements spec §4.A: a bounded FIFO of recent
// submission timestamps per masternode, the sliding window the
// trigger rate limiter (§4.F) reads from.
package ratebuffer

import "sync"

// Capacity is the fixed number of timestamps a Buffer remembers,
// matching the "~5" the spec calls for.
const Capacity = 5

// Buffer is a capacity-bounded FIFO of Unix timestamps, in seconds,
// for a single masternode's trigger submissions.
type Buffer struct {
	lock sync.Mutex
	ts   []int64
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{ts: make([]int64, 0, Capacity)}
}

// Add appends ts, dropping the oldest entry once Capacity is
// exceeded.
func (b *Buffer) Add(ts int64) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.ts = append(b.ts, ts)
	if len(b.ts) > Capacity {
		b.ts = b.ts[len(b.ts)-Capacity:]
	}
}

// Rate returns count / (newest - oldest), or 0 when fewer than two
// timestamps have been recorded.
func (b *Buffer) Rate() float64 {
	b.lock.Lock()
	defer b.lock.Unlock()
	return rate(b.ts)
}

// RateWith returns the rate the buffer would report if ts were
// appended, without mutating the buffer. This realizes §4.F step 5,
// which must evaluate "the rate of the existing window with the new
// timestamp appended" before deciding whether to commit it.
func (b *Buffer) RateWith(ts int64) float64 {
	b.lock.Lock()
	defer b.lock.Unlock()

	window := append(append([]int64{}, b.ts...), ts)
	if len(window) > Capacity {
		window = window[len(window)-Capacity:]
	}
	return rate(window)
}

func rate(ts []int64) float64 {
	if len(ts) < 2 {
		return 0
	}
	span := ts[len(ts)-1] - ts[0]
	if span <= 0 {
		return 0
	}
	return float64(len(ts)) / float64(span)
}

// Size returns the number of timestamps currently buffered.
func (b *Buffer) Size() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return len(b.ts)
}
