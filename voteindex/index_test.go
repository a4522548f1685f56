// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package voteindex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dashpay/govd/govobject"
)

func vote(t *testing.T, parent govobject.Hash, voterIdx uint32) govobject.GovernanceVote {
	v, err := govobject.NewVote(govobject.Outpoint{Index: voterIdx}, parent, govobject.Funding, govobject.Yes, time.Unix(100+int64(voterIdx), 0), []byte("sig"))
	assert.NoError(t, err)
	return *v
}

func TestOrphanVotesPulledByParent(t *testing.T) {
	idx := New()
	var parent govobject.Hash
	parent[0] = 7

	idx.AddOrphan(vote(t, parent, 1))
	idx.AddOrphan(vote(t, parent, 2))
	assert.Equal(t, 1, idx.OrphanSize())

	pulled := idx.PullOrphans(parent)
	assert.Len(t, pulled, 2)
	assert.Equal(t, 0, idx.OrphanSize())
}

func TestMarkInvalidSuppressesReprocessing(t *testing.T) {
	idx := New()
	v := vote(t, govobject.Hash{}, 1)
	idx.MarkInvalid(v.Hash())
	assert.True(t, idx.IsInvalid(v.Hash()))
}

func TestVotesByVoterFindsLiveAndOrphanVotes(t *testing.T) {
	idx := New()
	var parentA, parentB govobject.Hash
	parentA[0] = 1
	parentB[0] = 2

	rotated := vote(t, parentA, 5)
	idx.AddLive(rotated)

	orphaned := vote(t, parentB, 5)
	idx.AddOrphan(orphaned)

	other := vote(t, parentA, 6)
	idx.AddLive(other)

	found := idx.VotesByVoter(govobject.Outpoint{Index: 5})
	assert.Len(t, found, 2)

	for _, v := range found {
		idx.PurgeVote(v)
	}
	assert.False(t, idx.IsLive(rotated.Hash()))
	assert.True(t, idx.IsInvalid(rotated.Hash()))
	assert.Equal(t, 0, idx.OrphanSize())
	assert.True(t, idx.IsLive(other.Hash()), "a vote from an unrelated voter must survive the purge")
}

func TestPurgeByParentRemovesLiveVotes(t *testing.T) {
	idx := New()
	var parent govobject.Hash
	parent[0] = 9

	v1 := vote(t, parent, 1)
	v2 := vote(t, parent, 2)
	idx.AddLive(v1)
	idx.AddLive(v2)
	assert.Equal(t, 2, idx.LiveSize())

	purged := idx.PurgeByParent(parent)
	assert.Equal(t, 2, purged)
	assert.Equal(t, 0, idx.LiveSize())
}
