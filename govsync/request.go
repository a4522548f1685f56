// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package govsync

import (
	"sync"
	"time"

	"github.com/dashpay/govd/constants"
	"github.com/dashpay/govd/fault"
)

// askRecord remembers which peers have already been asked for a
// given hash and when, enforcing the "≤ MaxPeersAskedPerHashWindow
// peers per hash per AskAgainDelay" fanout cap spec §4.G's vote pull
// names.
type askRecord struct {
	askedAt map[string]time.Time // peer id -> last ask time
}

// RequestTracker is the single-shot request bookkeeping behind
// requested_objects/requested_votes: a hash is asked for at most
// MaxPeersAskedPerHashWindow times across any AskAgainDelay window,
// spread across distinct peers.
type RequestTracker struct {
	lock    sync.Mutex
	records map[string]*askRecord
}

func NewRequestTracker() *RequestTracker {
	return &RequestTracker{records: make(map[string]*askRecord)}
}

// ShouldAsk reports whether peer may be asked for hash right now,
// and if so records the attempt. force=false callers get
// fault.ErrAlreadyRequested back once the window's fanout budget is
// exhausted; the caller is expected to try the next hash rather than
// block.
func (t *RequestTracker) ShouldAsk(hash, peer string) error {
	now := time.Now()

	t.lock.Lock()
	defer t.lock.Unlock()

	rec, ok := t.records[hash]
	if !ok {
		rec = &askRecord{askedAt: make(map[string]time.Time)}
		t.records[hash] = rec
	}

	// prune entries outside the current window so long-lived hashes
	// don't permanently exhaust their fanout budget.
	for p, at := range rec.askedAt {
		if now.Sub(at) > constants.AskAgainDelay {
			delete(rec.askedAt, p)
		}
	}

	if _, asked := rec.askedAt[peer]; asked {
		return fault.ErrAlreadyRequested
	}
	if len(rec.askedAt) >= constants.MaxPeersAskedPerHashWindow {
		return fault.ErrAlreadyRequested
	}

	rec.askedAt[peer] = now
	return nil
}

// Forget drops all bookkeeping for hash, called once it has been
// received and processed.
func (t *RequestTracker) Forget(hash string) {
	t.lock.Lock()
	defer t.lock.Unlock()
	delete(t.records, hash)
}

// Requested reports whether this node has a live outstanding ask for
// hash, the gate spec §4.G/§8 requires before an inbound GOVOBJ/
// GOVOBJVOTE push is admitted: handle_object(h) returns without
// admission unless a prior confirm_inventory_request(INV(OBJECT,h))
// returned true.
func (t *RequestTracker) Requested(hash string) bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	_, ok := t.records[hash]
	return ok
}
