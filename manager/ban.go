// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manager

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/dashpay/govd/govsync"
)

// banThreshold is the accumulated misbehavior score at which a peer
// is dropped outright (spec §6's ban(peer_id, score); §4.G's "REJECT
// (obsolete)" and "misbehavior score of 20" are both expressed as
// calls into this tracker).
const banThreshold = 100

// banTracker accumulates per-peer misbehavior scores against the
// governance gossipsub host itself — the host already is this
// manager's connection manager (see govsync.Host's doc comment), so
// banning disconnects through it directly rather than routing
// through a separate external ConnectionManager dependency.
type banTracker struct {
	host *govsync.Host
	log  *logger.L

	lock   sync.Mutex
	scores map[string]int
}

func newBanTracker(host *govsync.Host, log *logger.L) *banTracker {
	return &banTracker{host: host, log: log, scores: make(map[string]int)}
}

func (b *banTracker) add(peer string, score int) {
	if score <= 0 {
		return
	}

	b.lock.Lock()
	b.scores[peer] += score
	total := b.scores[peer]
	b.lock.Unlock()

	b.log.Warnf("peer %s misbehavior score now %d (+%d)", peer, total, score)
	if total >= banThreshold {
		if err := b.host.Disconnect(peer); err != nil {
			b.log.Errorf("disconnecting banned peer %s: %s", peer, err)
		}
	}
}
