// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package orphanqueue

import (
	"sync"
	"time"

	"github.com/dashpay/govd/cache"
	"github.com/dashpay/govd/constants"
	"github.com/dashpay/govd/fault"
	"github.com/dashpay/govd/govobject"
	"github.com/dashpay/govd/limitedset"
	"github.com/dashpay/govd/ratelimiter"
)

// Queue groups the orphan/postponed bookkeeping of spec §4.E: the
// object and vote TTL pools (held in cache.Pool), the per-masternode
// orphan-object backlog counter, and the additional-relay set of
// hashes re-broadcast after a chain-tip update.
type Queue struct {
	lock          sync.Mutex
	orphanCounter map[string]int // masternode outpoint key -> backlog size

	// relay is the additional-relay set spec §4.J's chain-tip handler
	// re-announces, grounded on the teacher's LimitedSet FIFO idiom.
	relay *limitedset.LimitedSet
}

func New() *Queue {
	return &Queue{
		orphanCounter: make(map[string]int),
		relay:         limitedset.New(constants.MaxCacheSize),
	}
}

// AddOrphanObject parks obj, keyed by its hash, until its submitting
// masternode's outpoint becomes resolvable, subject to the
// per-masternode backlog cap (invariant: §4.E).
func (q *Queue) AddOrphanObject(obj *govobject.GovernanceObject) error {
	outpoint := obj.MasternodeOut.Key()

	q.lock.Lock()
	if q.orphanCounter[outpoint] >= constants.MaxOrphanObjectsPerMasternode {
		q.lock.Unlock()
		return fault.ErrTooManyOrphans
	}
	q.orphanCounter[outpoint]++
	q.lock.Unlock()

	cache.Pool.Orphans.Put(obj.Hash().String(), obj, constants.GovernanceOrphanExpirationTime)
	return nil
}

// RemoveOrphanObject drops hash from the backlog, whether it is being
// promoted into the object store or simply expiring.
func (q *Queue) RemoveOrphanObject(hash govobject.Hash, outpoint string) {
	cache.Pool.Orphans.Delete(hash.String())

	q.lock.Lock()
	defer q.lock.Unlock()
	if q.orphanCounter[outpoint] > 0 {
		q.orphanCounter[outpoint]--
		if q.orphanCounter[outpoint] == 0 {
			delete(q.orphanCounter, outpoint)
		}
	}
}

// OrphanObjects snapshots every object still waiting on its
// masternode, the set the maintenance loop (§4.I step 2) re-checks
// each cycle.
func (q *Queue) OrphanObjects() []*govobject.GovernanceObject {
	items := cache.Pool.Orphans.Items()
	result := make([]*govobject.GovernanceObject, 0, len(items))
	for _, v := range items {
		if obj, ok := v.(*govobject.GovernanceObject); ok {
			result = append(result, obj)
		}
	}
	return result
}

// AddOrphanVote records that voteHash is waiting on parentHash, for
// TTL purposes only — the vote payload itself lives in the
// voteindex orphan multimap; this pool just tracks when the wait
// should be abandoned.
func (q *Queue) AddOrphanVote(voteHash, parentHash string) {
	cache.Pool.OrphanVotes.Put(voteHash, parentHash, constants.VoteOrphanExpirationTime)
}

// OrphanVoteExpired reports whether voteHash's wait has exceeded
// VoteOrphanExpirationTime (the entry aged out of the TTL pool).
func (q *Queue) OrphanVoteExpired(voteHash string) bool {
	_, found := cache.Pool.OrphanVotes.Get(voteHash)
	return !found
}

func (q *Queue) ForgetOrphanVote(voteHash string) {
	cache.Pool.OrphanVotes.Delete(voteHash)
}

// Postpone parks obj for GovernanceDeletionDelay, the holding area a
// temporarily-failing validation check uses before a final decision
// (spec §4.H "postponed" outcome).
func (q *Queue) Postpone(obj *govobject.GovernanceObject) {
	cache.Pool.Postponed.Put(obj.Hash().String(), obj, constants.GovernanceDeletionDelay)
}

func (q *Queue) Unpostpone(hash govobject.Hash) {
	cache.Pool.Postponed.Delete(hash.String())
}

// PostponedObjects snapshots every currently postponed object, the
// set spec §4.J's CheckPostponedObjects re-evaluates on every chain
// tip.
func (q *Queue) PostponedObjects() []*govobject.GovernanceObject {
	items := cache.Pool.Postponed.Items()
	result := make([]*govobject.GovernanceObject, 0, len(items))
	for _, v := range items {
		if obj, ok := v.(*govobject.GovernanceObject); ok {
			result = append(result, obj)
		}
	}
	return result
}

// MarkErased tombstones hash so a relayed copy of a deleted object is
// never reprocessed. Invariant (6): a PROPOSAL or RECORD is retained
// forever (erase_until = infinity, no TTL); any other type is
// retained only until creationTime + 2·SuperblockCycleSeconds +
// GOVERNANCE_DELETION_DELAY.
func (q *Queue) MarkErased(hash govobject.Hash, objType govobject.ObjectType, creationTime time.Time) {
	if objType == govobject.Proposal || objType == govobject.Record {
		cache.Pool.Erased.Put(hash.String(), struct{}{}, 0)
		return
	}

	cycle := time.Duration(2*ratelimiter.SuperblockCycle()) * time.Second
	ttl := creationTime.Add(cycle).Add(constants.GovernanceDeletionDelay).Sub(time.Now())
	if ttl <= 0 {
		ttl = 10 * time.Millisecond
	}
	cache.Pool.Erased.Put(hash.String(), struct{}{}, ttl)
}

func (q *Queue) IsErased(hash govobject.Hash) bool {
	_, found := cache.Pool.Erased.Get(hash.String())
	return found
}

// PruneErased drops every tombstone whose bounded retention window
// (invariant 6) has elapsed, the maintenance cycle's step for spec
// §4.I.f. It returns how many entries were removed.
func (q *Queue) PruneErased() int {
	before := cache.Pool.Erased.Size()
	cache.Pool.Erased.DeleteExpired()
	return before - cache.Pool.Erased.Size()
}

// RelayAdd records hash as eligible for additional relay.
func (q *Queue) RelayAdd(hash string) { q.relay.Add(hash) }

// RelayHas reports whether hash was recently added to the relay set.
func (q *Queue) RelayHas(hash string) bool { return q.relay.Exists(hash) }
