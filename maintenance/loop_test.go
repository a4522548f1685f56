// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package maintenance

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

type alwaysKnownMasternodes struct{}

func (alwaysKnownMasternodes) Lookup(govobject.Outpoint) (bool, bool) { return true, true }
func (alwaysKnownMasternodes) VerifySignature(govobject.Outpoint, []byte, []byte) bool {
	return true
}

type noopBus struct{}

func (noopBus) NotifyGovernanceObject(*govobject.GovernanceObject) {}
func (noopBus) NotifyGovernanceVote(govobject.GovernanceVote)       {}

func TestMain(m *testing.M) {
	if err := cache.Initialise(); err != nil {
		panic(err)
	}
	defer cache.Finalise()
	m.Run()
}

func TestExpireStaleObjectsErasesPastDeletionDelay(t *testing.T) {
	pipeline := &ingest.Pipeline{
		Store:      objectstore.New(),
		Votes:      voteindex.New(),
		Orphans:    orphanqueue.New(),
		Limiter:    ratelimiter.New(),
		Masternode: alwaysKnownMasternodes{},
		Bus:        noopBus{},
	}
	p := &Processor{Locker: &sync.Mutex{}, Pipeline: pipeline, Log: logger.New("maintenance-test")}

	obj, err := govobject.New(govobject.Proposal, []byte(`{}`), govobject.Outpoint{Index: 1}, [32]byte{}, time.Unix(1000, 0), []byte("sig"))
	assert.NoError(t, err)
	assert.NoError(t, pipeline.HandleObject(obj))

	stored := pipeline.Store.Find(obj.Hash())
	stored.CachedDelete = true
	stored.DeletionTime = time.Now().Add(-2 * 11 * time.Minute)

	erased := p.expireStaleObjects()
	assert.Equal(t, 1, erased)
	assert.Nil(t, pipeline.Store.Find(obj.Hash()))
}
