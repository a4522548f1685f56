// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dashpay/govd/cache"
	"github.com/dashpay/govd/govobject"
	"github.com/dashpay/govd/objectstore"
	"github.com/dashpay/govd/orphanqueue"
	"github.com/dashpay/govd/ratelimiter"
	"github.com/dashpay/govd/voteindex"
)

func TestMain(m *testing.M) {
	if err := cache.Initialise(); err != nil {
		panic(err)
	}
	defer cache.Finalise()
	m.Run()
}

type fakeMasternodeList struct {
	known     map[string]bool
	confirmed map[string]bool
}

func (f *fakeMasternodeList) Lookup(outpoint govobject.Outpoint) (bool, bool) {
	key := outpoint.Key()
	return f.confirmed[key], f.known[key]
}

func (f *fakeMasternodeList) VerifySignature(govobject.Outpoint, []byte, []byte) bool { return true }

type fakeBus struct {
	objects []*govobject.GovernanceObject
	votes   []govobject.GovernanceVote
}

func (b *fakeBus) NotifyGovernanceObject(obj *govobject.GovernanceObject) {
	b.objects = append(b.objects, obj)
}

func (b *fakeBus) NotifyGovernanceVote(v govobject.GovernanceVote) {
	b.votes = append(b.votes, v)
}

func newPipeline(known, confirmed map[string]bool) (*Pipeline, *fakeBus) {
	bus := &fakeBus{}
	return &Pipeline{
		Store:   objectstore.New(),
		Votes:   voteindex.New(),
		Orphans: orphanqueue.New(),
		Limiter: ratelimiter.New(),
		Masternode: &fakeMasternodeList{
			known:     known,
			confirmed: confirmed,
		},
		Bus: bus,
	}, bus
}

func TestHandleObjectOrphansUnknownMasternode(t *testing.T) {
	p, bus := newPipeline(nil, nil)
	obj, err := govobject.New(govobject.Proposal, []byte(`{}`), govobject.Outpoint{Index: 1}, [32]byte{}, time.Unix(1000, 0), []byte("sig"))
	assert.NoError(t, err)

	err = p.HandleObject(obj)
	assert.Error(t, err)
	assert.Empty(t, bus.objects)
}

func TestHandleObjectAcceptsKnownConfirmedMasternode(t *testing.T) {
	outpoint := govobject.Outpoint{Index: 2}
	known := map[string]bool{outpoint.Key(): true}
	confirmed := map[string]bool{outpoint.Key(): true}

	p, bus := newPipeline(known, confirmed)
	obj, err := govobject.New(govobject.Proposal, []byte(`{}`), outpoint, [32]byte{}, time.Unix(1000, 0), []byte("sig"))
	assert.NoError(t, err)

	assert.NoError(t, p.HandleObject(obj))
	assert.Len(t, bus.objects, 1)
	assert.NotNil(t, p.Store.Find(obj.Hash()))
}

func TestHandleVoteOrphansUnknownParent(t *testing.T) {
	p, bus := newPipeline(nil, nil)
	v, err := govobject.NewVote(govobject.Outpoint{Index: 3}, govobject.Hash{9}, govobject.Funding, govobject.Yes, time.Unix(2000, 0), []byte("sig"))
	assert.NoError(t, err)

	err = p.HandleVote(*v)
	assert.Error(t, err)
	assert.Empty(t, bus.votes)
}

func TestHandleVoteAcceptedAgainstKnownParent(t *testing.T) {
	mnOutpoint := govobject.Outpoint{Index: 4}
	voterOutpoint := govobject.Outpoint{Index: 5}
	known := map[string]bool{mnOutpoint.Key(): true, voterOutpoint.Key(): true}
	confirmed := map[string]bool{mnOutpoint.Key(): true, voterOutpoint.Key(): true}

	p, bus := newPipeline(known, confirmed)
	obj, err := govobject.New(govobject.Proposal, []byte(`{}`), mnOutpoint, [32]byte{}, time.Unix(1000, 0), []byte("sig"))
	assert.NoError(t, err)
	assert.NoError(t, p.HandleObject(obj))

	v, err := govobject.NewVote(voterOutpoint, obj.Hash(), govobject.Funding, govobject.Yes, time.Unix(2000, 0), []byte("sig"))
	assert.NoError(t, err)
	assert.NoError(t, p.HandleVote(*v))
	assert.Len(t, bus.votes, 1)
	assert.True(t, p.Votes.IsLive(v.Hash()))
}

func TestHandleObjectTriggerRateLimitRejectsOverBudget(t *testing.T) {
	outpoint := govobject.Outpoint{Index: 8}
	known := map[string]bool{outpoint.Key(): true}
	confirmed := map[string]bool{outpoint.Key(): true}

	p, bus := newPipeline(known, confirmed)

	// burn through this masternode's trigger budget with an object that
	// still clears the limiter outright, then confirm the next trigger
	// from the same masternode is rejected rather than silently admitted.
	base := time.Now().Unix()
	first, err := govobject.New(govobject.Trigger, []byte(`{"n":1}`), outpoint, [32]byte{}, time.Unix(base, 0), []byte("sig"))
	assert.NoError(t, err)
	assert.NoError(t, p.HandleObject(first))

	for i := 0; i < 50; i++ {
		p.Limiter.Seed(first, base+int64(i))
	}

	second, err := govobject.New(govobject.Trigger, []byte(`{"n":2}`), outpoint, [32]byte{}, time.Unix(base+50, 0), []byte("sig"))
	assert.NoError(t, err)
	err = p.HandleObject(second)
	assert.Error(t, err)
	assert.Nil(t, p.Store.Find(second.Hash()))
	assert.Len(t, bus.objects, 1)
}

func TestOrphanVoteReplayedOnParentArrival(t *testing.T) {
	mnOutpoint := govobject.Outpoint{Index: 6}
	voterOutpoint := govobject.Outpoint{Index: 7}
	known := map[string]bool{mnOutpoint.Key(): true, voterOutpoint.Key(): true}
	confirmed := map[string]bool{mnOutpoint.Key(): true, voterOutpoint.Key(): true}

	p, _ := newPipeline(known, confirmed)

	obj, err := govobject.New(govobject.Proposal, []byte(`{}`), mnOutpoint, [32]byte{}, time.Unix(1000, 0), []byte("sig"))
	assert.NoError(t, err)
	parentHash := obj.Hash()

	v, err := govobject.NewVote(voterOutpoint, parentHash, govobject.Funding, govobject.Yes, time.Unix(2000, 0), []byte("sig"))
	assert.NoError(t, err)

	// vote arrives first, parks as an orphan
	assert.Error(t, p.HandleVote(*v))
	assert.Equal(t, 1, p.Votes.OrphanSize())

	// object arrives, replaying the parked vote
	assert.NoError(t, p.HandleObject(obj))
	assert.True(t, p.Votes.IsLive(v.Hash()))
	assert.Equal(t, 0, p.Votes.OrphanSize())
}
