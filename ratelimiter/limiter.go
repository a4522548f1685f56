// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimiter

import (
	"sync"
	"time"

	"github.com/dashpay/govd/constants"
	"github.com/dashpay/govd/govobject"
	"github.com/dashpay/govd/ratebuffer"
)

// superblockCycleSeconds is the denominator of the absolute trigger
// rate threshold (spec §4.F step 5): RateLimiterMaxTriggerRate /
// superblockCycleSeconds. Dash's superblock cycle is 30 days on
// mainnet; a test chain may override it via SetSuperblockCycle.
var superblockCycleSeconds = float64(30 * 24 * 60 * 60)

// SetSuperblockCycle overrides the cycle length used to compute the
// absolute rate threshold, for chains with a shorter cycle.
func SetSuperblockCycle(seconds float64) {
	superblockCycleSeconds = seconds
}

// SuperblockCycle returns the cycle length currently in effect, for
// callers outside this package that derive a retention window from
// it (orphanqueue's Erased-map TTL, invariant 6).
func SuperblockCycle() float64 {
	return superblockCycleSeconds
}

func maxRate() float64 {
	return constants.RateLimiterMaxTriggerRate / superblockCycleSeconds
}

// Limiter tracks one ratebuffer.Buffer per masternode outpoint.
type Limiter struct {
	lock     sync.Mutex
	buffers  map[string]*ratebuffer.Buffer
	disabled int // nesting counter for DisableScope
}

func New() *Limiter {
	return &Limiter{buffers: make(map[string]*ratebuffer.Buffer)}
}

func (l *Limiter) bufferFor(key string) *ratebuffer.Buffer {
	l.lock.Lock()
	defer l.lock.Unlock()
	b, ok := l.buffers[key]
	if !ok {
		b = ratebuffer.New()
		l.buffers[key] = b
	}
	return b
}

// DisableScope suspends rate checking until the returned func is
// called, for use while replaying a locally-persisted backup (spec
// §9 Open Question: a toggle scoped to the call site that enabled it,
// not a bare package-level boolean, so concurrent/nested replays
// can't leave the limiter permanently off).
func (l *Limiter) DisableScope() func() {
	l.lock.Lock()
	l.disabled++
	l.lock.Unlock()

	return func() {
		l.lock.Lock()
		l.disabled--
		l.lock.Unlock()
	}
}

func (l *Limiter) isDisabled() bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.disabled > 0
}

// Seed re-primes the rate buffer for obj's masternode with a past
// timestamp without evaluating the limit, for restoring rate-history
// state from a persisted snapshot (spec §6 "Persistence") rather than
// re-deriving it from scratch after a restart.
func (l *Limiter) Seed(obj *govobject.GovernanceObject, timestamp int64) {
	if obj.ObjectType != govobject.Trigger {
		return
	}
	l.bufferFor(obj.MasternodeOut.Key()).Add(timestamp)
}

// Check implements spec §4.F's trigger rate check:
//
//  1. non-Trigger objects are never rate limited.
//  2. while DisableScope is held, every check passes outright
//     (no forced recheck is ever needed for this branch).
//  3. reject outright a timestamp older than 2·SuperblockCycleSeconds
//     or more than MaxTimeFutureDeviation ahead of now.
//  4. the pre-check evaluates the rate the window WOULD report with
//     this timestamp appended, without committing it (ratebuffer.RateWith).
//  5. if that rate is within the limit, the timestamp is committed and
//     the check passes outright.
//  6. if it is over the limit, the call passes only as a bypass: once
//     for a pending signature verification to complete (force=false),
//     permanently rejected on the forced recheck (force=true) that
//     follows a successful verification, unless updateFailStatus is
//     false (a read-only probe that must not itself be the rejection
//     of record).
func (l *Limiter) Check(obj *govobject.GovernanceObject, now int64, updateFailStatus bool, force bool) (ok bool, bypassed bool) {
	if obj.ObjectType != govobject.Trigger {
		return true, false
	}
	if l.isDisabled() {
		return true, false
	}

	nowUnix := time.Now().Unix()
	tooOld := nowUnix - 2*int64(superblockCycleSeconds)
	tooFuture := nowUnix + int64(constants.MaxTimeFutureDeviation/time.Second)
	if now < tooOld || now > tooFuture {
		return false, false
	}

	key := obj.MasternodeOut.Key()
	buf := l.bufferFor(key)

	if buf.RateWith(now) <= maxRate() {
		buf.Add(now)
		return true, false
	}

	if !force {
		// first pass: let the caller finish verifying the signature
		// before the rate decision is made final.
		return true, true
	}

	if updateFailStatus {
		return false, false
	}
	return false, true
}
