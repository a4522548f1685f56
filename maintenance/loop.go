// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package maintenance

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/gammazero/workerpool"

	"github.com/dashpay/govd/constants"
	"github.com/dashpay/govd/govobject"
	"github.com/dashpay/govd/ingest"
)

// Processor runs the spec §4.I maintenance cycle as a
// background.Processor. Every cycle takes Locker — the manager's
// single cs — for its whole duration, the same way the teacher's
// reservoir expiry loop holds globalData's lock across one sweep.
type Processor struct {
	Locker   sync.Locker
	Pipeline *ingest.Pipeline
	Log      *logger.L
}

func (p *Processor) Run(args interface{}, shutdown <-chan struct{}) {
	p.Log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(constants.MaintenanceInterval):
			p.cycle()
		}
	}

	p.Log.Info("stopped")
}

// cycle runs the six ordered steps spec §4.I names, in the same
// order every time so a step's output is always visible to the
// steps after it within a single pass.
func (p *Processor) cycle() {
	p.Locker.Lock()
	defer p.Locker.Unlock()

	retried := p.recheckOrphanObjects()
	expiredVotes := p.expireOrphanVotes()
	erased := p.expireStaleObjects()
	unpostponed := p.retryPostponed()
	prunedErased := p.Pipeline.Orphans.PruneErased()

	p.Log.Infof("maintenance: retried=%d expired-orphan-votes=%d erased=%d unpostponed=%d pruned-erased=%d store=%d live-votes=%d",
		retried, expiredVotes, erased, unpostponed, prunedErased, p.Pipeline.Store.Size(), p.Pipeline.Votes.LiveSize())
}

// recheckOrphanObjects re-attempts admission for every object still
// waiting on its masternode, in case the masternode list has since
// caught up (spec §4.I step 1). Each retry is independent — keyed by
// its own submitting masternode — so they run concurrently on a
// bounded worker pool rather than one at a time.
func (p *Processor) recheckOrphanObjects() int {
	wp := workerpool.New(constants.MaintenanceWorkerPoolSize)

	var lock sync.Mutex
	retried := 0

	for _, obj := range p.Pipeline.Orphans.OrphanObjects() {
		obj := obj
		wp.Submit(func() {
			if time.Since(obj.CreationTime) > constants.GovernanceOrphanExpirationTime {
				p.Pipeline.Orphans.RemoveOrphanObject(obj.Hash(), obj.MasternodeOut.Key())
				return
			}
			if err := p.Pipeline.HandleObject(obj); err == nil {
				lock.Lock()
				retried++
				lock.Unlock()
			}
		})
	}

	wp.StopWait()
	return retried
}

// expireOrphanVotes drops any vote still parked in the voteindex
// orphan multimap whose TTL pool entry has aged out (spec §4.I
// step 2).
func (p *Processor) expireOrphanVotes() int {
	expired := 0
	for _, parentHex := range p.Pipeline.Votes.OrphanParents() {
		parent, err := govobject.HashFromHex(parentHex)
		if err != nil {
			continue
		}
		for _, v := range p.Pipeline.Votes.PeekOrphans(parent) {
			if p.Pipeline.Orphans.OrphanVoteExpired(v.Hash().String()) {
				p.Pipeline.Votes.DropOrphan(v)
				expired++
			}
		}
	}
	return expired
}

// expireStaleObjects finalizes deletion of any object whose
// cached_delete/expired flag has outlived GovernanceDeletionDelay,
// purging its votes and tombstoning its hash (spec §4.I step 3,
// invariant 5).
func (p *Processor) expireStaleObjects() int {
	erased := 0
	var toErase []*govobject.GovernanceObject

	p.Pipeline.Store.Each(func(hash govobject.Hash, obj *govobject.GovernanceObject) {
		if !obj.CachedDelete && !obj.Expired {
			return
		}
		if obj.DeletionTime.IsZero() || time.Since(obj.DeletionTime) < constants.GovernanceDeletionDelay {
			return
		}
		if obj.ObjectType == govobject.Record && obj.PermLocked && obj.RecordLocked {
			return
		}
		toErase = append(toErase, obj)
	})

	for _, obj := range toErase {
		hash := obj.Hash()
		p.Pipeline.Store.Erase(hash)
		p.Pipeline.Votes.PurgeByParent(hash)
		p.Pipeline.Orphans.MarkErased(hash, obj.ObjectType, obj.CreationTime)
		erased++
	}
	return erased
}

// retryPostponed re-admits every postponed object, letting whatever
// condition postponed it (a pending confirmation, a rate-limit
// bypass awaiting its forced recheck) resolve naturally (spec §4.I
// step 5 / §4.J's CheckPostponedObjects).
func (p *Processor) retryPostponed() int {
	unpostponed := 0
	for _, obj := range p.Pipeline.Orphans.PostponedObjects() {
		if err := p.Pipeline.HandleObject(obj); err == nil {
			p.Pipeline.Orphans.Unpostpone(obj.Hash())
			unpostponed++
		}
	}
	return unpostponed
}
