// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainreactor

import (
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/dashpay/govd/cache"
	"github.com/dashpay/govd/govobject"
	"github.com/dashpay/govd/ingest"
	"github.com/dashpay/govd/objectstore"
	"github.com/dashpay/govd/orphanqueue"
	"github.com/dashpay/govd/ratelimiter"
	"github.com/dashpay/govd/voteindex"
)

type stubMasternodes struct {
	rotated []govobject.Outpoint
}

func (stubMasternodes) Lookup(govobject.Outpoint) (bool, bool)                 { return true, true }
func (stubMasternodes) VerifySignature(govobject.Outpoint, []byte, []byte) bool { return true }
func (s stubMasternodes) KeyRotated() []govobject.Outpoint                     { return s.rotated }

type stubBus struct{}

func (stubBus) NotifyGovernanceObject(*govobject.GovernanceObject) {}
func (stubBus) NotifyGovernanceVote(govobject.GovernanceVote)       {}

type stubChain struct {
	superblockHeight uint64
	executed         *govobject.GovernanceObject
}

func (c *stubChain) Tips() <-chan uint64                   { return nil }
func (c *stubChain) IsSuperblockHeight(h uint64) bool       { return h == c.superblockHeight }
func (c *stubChain) ExecuteSuperblock(h uint64, obj *govobject.GovernanceObject) error {
	c.executed = obj
	return nil
}

type stubRelay struct {
	published []*govobject.GovernanceObject
	forgotten []string
}

func (r *stubRelay) Republish(obj *govobject.GovernanceObject) error {
	r.published = append(r.published, obj)
	return nil
}

func (r *stubRelay) ForgetRequest(hash string) {
	r.forgotten = append(r.forgotten, hash)
}

func TestMain(m *testing.M) {
	if err := cache.Initialise(); err != nil {
		panic(err)
	}
	defer cache.Finalise()
	m.Run()
}

func TestExecuteSuperblockPicksHighestNetScore(t *testing.T) {
	pipeline := &ingest.Pipeline{
		Store:      objectstore.New(),
		Votes:      voteindex.New(),
		Orphans:    orphanqueue.New(),
		Limiter:    ratelimiter.New(),
		Masternode: stubMasternodes{},
		Bus:        stubBus{},
	}
	chain := &stubChain{superblockHeight: 100}
	r := &Reactor{Locker: &sync.Mutex{}, Pipeline: pipeline, Chain: chain, Relay: &stubRelay{}, Masternodes: stubMasternodes{}, Log: logger.New("chainreactor-test")}

	trigger, err := govobject.New(govobject.Trigger, []byte(`{}`), govobject.Outpoint{Index: 1}, [32]byte{}, time.Now(), []byte("sig"))
	assert.NoError(t, err)
	assert.NoError(t, pipeline.HandleObject(trigger))

	stored := pipeline.Store.Find(trigger.Hash())
	v, err := govobject.NewVote(govobject.Outpoint{Index: 2}, stored.Hash(), govobject.Funding, govobject.Yes, time.Unix(1100, 0), []byte("sig"))
	assert.NoError(t, err)
	stored.VoteFile.AddVote(*v)

	r.executeSuperblock(100)
	assert.NotNil(t, chain.executed)
	assert.Equal(t, stored.Hash(), chain.executed.Hash())
}

func TestInvalidateKeyDependentValidityPurgesRotatedVoter(t *testing.T) {
	pipeline := &ingest.Pipeline{
		Store:      objectstore.New(),
		Votes:      voteindex.New(),
		Orphans:    orphanqueue.New(),
		Limiter:    ratelimiter.New(),
		Masternode: stubMasternodes{},
		Bus:        stubBus{},
	}

	obj, err := govobject.New(govobject.Proposal, []byte(`{}`), govobject.Outpoint{Index: 10}, [32]byte{}, time.Now(), []byte("sig"))
	assert.NoError(t, err)
	assert.NoError(t, pipeline.HandleObject(obj))
	stored := pipeline.Store.Find(obj.Hash())

	rotatedVoter := govobject.Outpoint{Index: 11}
	v, err := govobject.NewVote(rotatedVoter, stored.Hash(), govobject.Funding, govobject.Yes, time.Now(), []byte("sig"))
	assert.NoError(t, err)
	assert.NoError(t, pipeline.HandleVote(*v))
	assert.True(t, pipeline.Votes.IsLive(v.Hash()))

	relay := &stubRelay{}
	r := &Reactor{
		Locker:      &sync.Mutex{},
		Pipeline:    pipeline,
		Chain:       &stubChain{},
		Relay:       relay,
		Masternodes: stubMasternodes{rotated: []govobject.Outpoint{rotatedVoter}},
		Log:         logger.New("chainreactor-test"),
	}

	purged := r.invalidateKeyDependentValidity(1)
	assert.Equal(t, 1, purged)
	assert.False(t, pipeline.Votes.IsLive(v.Hash()))
	assert.True(t, pipeline.Votes.IsInvalid(v.Hash()))
	assert.Equal(t, 0, stored.VoteFile.Count())
	assert.Equal(t, []string{v.Hash().String()}, relay.forgotten)
}

func TestInvalidateKeyDependentValidityHonoursRecordCarveOut(t *testing.T) {
	pipeline := &ingest.Pipeline{
		Store:      objectstore.New(),
		Votes:      voteindex.New(),
		Orphans:    orphanqueue.New(),
		Limiter:    ratelimiter.New(),
		Masternode: stubMasternodes{},
		Bus:        stubBus{},
	}

	obj, err := govobject.New(govobject.Record, []byte(`{}`), govobject.Outpoint{Index: 20}, [32]byte{}, time.Now(), []byte("sig"))
	assert.NoError(t, err)
	obj.CollateralNextSuperblock = 100
	assert.NoError(t, pipeline.HandleObject(obj))
	stored := pipeline.Store.Find(obj.Hash())

	rotatedVoter := govobject.Outpoint{Index: 21}
	v, err := govobject.NewVote(rotatedVoter, stored.Hash(), govobject.Funding, govobject.Yes, time.Now(), []byte("sig"))
	assert.NoError(t, err)
	assert.NoError(t, pipeline.HandleVote(*v))

	r := &Reactor{
		Locker:      &sync.Mutex{},
		Pipeline:    pipeline,
		Chain:       &stubChain{},
		Relay:       &stubRelay{},
		Masternodes: stubMasternodes{rotated: []govobject.Outpoint{rotatedVoter}},
		Log:         logger.New("chainreactor-test"),
	}

	// tip height 50 is still below the RECORD's CollateralNextSuperblock (100):
	// the carve-out means this rotation must not purge its votes yet.
	purged := r.invalidateKeyDependentValidity(50)
	assert.Equal(t, 0, purged)
	assert.True(t, pipeline.Votes.IsLive(v.Hash()))
	assert.Equal(t, 1, stored.VoteFile.Count())
}
