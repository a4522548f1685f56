// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainreactor

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/dashpay/govd/govobject"
	"github.com/dashpay/govd/ingest"
)

// Reactor is the background.Processor the manager starts to react to
// chain-tip notifications (spec §4.J).
type Reactor struct {
	Locker      sync.Locker
	Pipeline    *ingest.Pipeline
	Chain       ChainClient
	Relay       Relay
	Masternodes MasternodeKeys
	Log         *logger.L

	lastTip time.Time
}

func (r *Reactor) Run(args interface{}, shutdown <-chan struct{}) {
	r.Log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case height, ok := <-r.Chain.Tips():
			if !ok {
				break loop
			}
			r.handleTip(height)
		}
	}

	r.Log.Info("stopped")
}

func (r *Reactor) handleTip(height uint64) {
	r.Locker.Lock()
	defer r.Locker.Unlock()

	since := r.lastTip
	r.lastTip = time.Now()

	purged := r.invalidateKeyDependentValidity(height)
	retried := r.retryPostponed()
	relayed := r.republishRecent(since)

	if r.Chain.IsSuperblockHeight(height) {
		r.executeSuperblock(height)
	}

	r.Log.Infof("chain tip %d: purged-votes=%d retried=%d relayed=%d", height, purged, retried, relayed)
}

// invalidateKeyDependentValidity purges every vote cast by a
// masternode whose voting key rotated since the last tip (spec §4.J
// step 2 / testable Scenario 5): the vote index, each parent object's
// VoteFile, and the request set all drop the hash so a relayed copy
// signed under the old key is never re-admitted. A RECORD's votes are
// only purged while the chain hasn't yet reached its
// CollateralNextSuperblock height.
func (r *Reactor) invalidateKeyDependentValidity(height uint64) int {
	rotated := r.Masternodes.KeyRotated()
	if len(rotated) == 0 {
		return 0
	}

	purged := 0
	for _, mn := range rotated {
		for _, v := range r.Pipeline.Votes.VotesByVoter(mn) {
			parent := r.Pipeline.Store.Find(v.ParentHash)
			if parent != nil && parent.ObjectType == govobject.Record && height >= parent.CollateralNextSuperblock {
				continue // carve-out: this RECORD hasn't reached its due superblock yet
			}

			r.Pipeline.Votes.PurgeVote(v)
			if parent != nil {
				parent.VoteFile.RemoveVoter(mn)
			}
			r.Relay.ForgetRequest(v.Hash().String())
			purged++
		}
	}
	return purged
}

// retryPostponed re-admits every postponed object now that the chain
// has advanced, the handler-level half of spec §4.J's
// CheckPostponedObjects (the periodic half lives in maintenance).
func (r *Reactor) retryPostponed() int {
	retried := 0
	for _, obj := range r.Pipeline.Orphans.PostponedObjects() {
		if err := r.Pipeline.HandleObject(obj); err == nil {
			r.Pipeline.Orphans.Unpostpone(obj.Hash())
			retried++
		}
	}
	return retried
}

// republishRecent re-announces every object created since the last
// tip that is also in the additional-relay set, covering masternodes
// that missed the original gossip round due to a reorg or downtime.
func (r *Reactor) republishRecent(since time.Time) int {
	relayed := 0
	for _, obj := range r.Pipeline.Store.AllNewerThan(since.Unix()) {
		if !r.Pipeline.Orphans.RelayHas(obj.Hash().String()) {
			continue
		}
		if err := r.Relay.Republish(obj); err == nil {
			relayed++
		}
	}
	return relayed
}

// executeSuperblock picks the Trigger object with the highest net
// funding-vote tally (yes minus no) among currently valid triggers
// and delegates its execution to the chain. A trigger with a
// non-positive net tally is never executed.
func (r *Reactor) executeSuperblock(height uint64) {
	var winner *govobject.GovernanceObject
	var winnerScore int

	r.Pipeline.Store.Each(func(_ govobject.Hash, obj *govobject.GovernanceObject) {
		if obj.ObjectType != govobject.Trigger || !obj.IsValid() {
			return
		}
		score := fundingScore(obj)
		if score > 0 && (winner == nil || score > winnerScore) {
			winner = obj
			winnerScore = score
		}
	})

	if winner == nil {
		return
	}
	if err := r.Chain.ExecuteSuperblock(height, winner); err != nil {
		r.Log.Errorf("superblock execution at height %d failed: %s", height, err)
	}
}

func fundingScore(obj *govobject.GovernanceObject) int {
	score := 0
	for _, v := range obj.VoteFile.Votes {
		if v.Signal != govobject.Funding {
			continue
		}
		switch v.Outcome {
		case govobject.Yes:
			score++
		case govobject.No:
			score--
		}
	}
	return score
}
