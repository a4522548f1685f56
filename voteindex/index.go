// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package voteindex

import (
	"github.com/dashpay/govd/cappedmap"
	"github.com/dashpay/govd/constants"
	"github.com/dashpay/govd/govobject"
)

// Index holds the three vote containers spec §4.D names, each capped
// at constants.MaxCacheSize.
type Index struct {
	// live holds votes accepted against a known, non-expired parent.
	live *cappedmap.Map

	// invalid holds the hash of every vote permanently rejected, so a
	// relayed duplicate is dropped without re-running validation.
	invalid *cappedmap.Map

	// orphans holds votes whose parent object is not yet known,
	// keyed by parent hash so a later arrival of the parent can pull
	// every waiting vote at once.
	orphans *cappedmap.Multimap
}

func New() *Index {
	return &Index{
		live:    cappedmap.NewMap(constants.MaxCacheSize),
		invalid: cappedmap.NewMap(constants.MaxCacheSize),
		orphans: cappedmap.NewMultimap(constants.MaxCacheSize),
	}
}

func (idx *Index) AddLive(v govobject.GovernanceVote) {
	idx.live.Insert(v.Hash().String(), v)
}

func (idx *Index) Live(hash govobject.Hash) (govobject.GovernanceVote, bool) {
	val, ok := idx.live.Get(hash.String())
	if !ok {
		return govobject.GovernanceVote{}, false
	}
	return val.(govobject.GovernanceVote), true
}

func (idx *Index) IsLive(hash govobject.Hash) bool { return idx.live.HasKey(hash.String()) }

func (idx *Index) MarkInvalid(hash govobject.Hash) {
	idx.invalid.Insert(hash.String(), struct{}{})
}

func (idx *Index) IsInvalid(hash govobject.Hash) bool { return idx.invalid.HasKey(hash.String()) }

// AddOrphan parks v under its parent's hash until that object is
// known.
func (idx *Index) AddOrphan(v govobject.GovernanceVote) {
	idx.orphans.Insert(v.ParentHash.String(), v.Hash().String(), v)
}

// PullOrphans removes and returns every vote parked under parent,
// the set an arriving object immediately replays through the normal
// vote pipeline (spec §4.H).
func (idx *Index) PullOrphans(parent govobject.Hash) []govobject.GovernanceVote {
	values := idx.orphans.Get(parent.String())
	if len(values) == 0 {
		return nil
	}
	idx.orphans.Erase(parent.String())

	votes := make([]govobject.GovernanceVote, 0, len(values))
	for _, v := range values {
		votes = append(votes, v.(govobject.GovernanceVote))
	}
	return votes
}

// PurgeByParent performs the eviction-linear-scan spec §4.D requires
// when an object is itself evicted from the object store: every live
// vote whose parent is that hash is no longer reachable from any
// object and must be dropped from the live index too. The scan is
// O(n) in the live set's size, acceptable because it only runs on an
// object eviction, not on the vote hot path.
func (idx *Index) PurgeByParent(parent govobject.Hash) int {
	purged := 0
	for _, key := range idx.live.GetItemList() {
		val, ok := idx.live.Get(key)
		if !ok {
			continue
		}
		if v, ok := val.(govobject.GovernanceVote); ok && v.ParentHash == parent {
			idx.live.Erase(key)
			purged++
		}
	}
	idx.orphans.Erase(parent.String())
	return purged
}

// VotesByVoter returns every live or orphaned vote cast by voter
// without removing any of them, so a caller can apply extra
// per-vote filtering (the RECORD CollateralNextSuperblock carve-out,
// spec §4.J step 2) before deciding which to purge with PurgeVote.
func (idx *Index) VotesByVoter(voter govobject.Outpoint) []govobject.GovernanceVote {
	var found []govobject.GovernanceVote

	for _, key := range idx.live.GetItemList() {
		val, ok := idx.live.Get(key)
		if !ok {
			continue
		}
		if v, ok := val.(govobject.GovernanceVote); ok && v.Voter == voter {
			found = append(found, v)
		}
	}

	for _, parentKey := range idx.orphans.GetItemList() {
		for _, val := range idx.orphans.Get(parentKey) {
			if v, ok := val.(govobject.GovernanceVote); ok && v.Voter == voter {
				found = append(found, v)
			}
		}
	}

	return found
}

// PurgeVote drops v from whichever container currently holds it: the
// live index (marked invalid, so a relayed copy is never re-admitted)
// or the orphan multimap under its parent.
func (idx *Index) PurgeVote(v govobject.GovernanceVote) {
	key := v.Hash().String()
	if idx.live.HasKey(key) {
		idx.live.Erase(key)
		idx.invalid.Insert(key, struct{}{})
		return
	}
	idx.orphans.EraseValue(v.ParentHash.String(), key)
}

// OrphanParents lists the hex parent hashes currently holding orphan
// votes, the set the maintenance loop walks each cycle.
func (idx *Index) OrphanParents() []string { return idx.orphans.GetItemList() }

// PeekOrphans returns the votes parked under parent without removing
// them, for the maintenance loop's read-only expiry scan.
func (idx *Index) PeekOrphans(parent govobject.Hash) []govobject.GovernanceVote {
	values := idx.orphans.Get(parent.String())
	votes := make([]govobject.GovernanceVote, 0, len(values))
	for _, v := range values {
		votes = append(votes, v.(govobject.GovernanceVote))
	}
	return votes
}

// DropOrphan removes a single expired vote from the orphan multimap
// without disturbing any other vote still waiting on the same parent.
func (idx *Index) DropOrphan(v govobject.GovernanceVote) {
	idx.orphans.EraseValue(v.ParentHash.String(), v.Hash().String())
}

func (idx *Index) LiveSize() int    { return idx.live.Size() }
func (idx *Index) InvalidSize() int { return idx.invalid.Size() }
func (idx *Index) OrphanSize() int  { return idx.orphans.Size() }
