// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manager

import (
	"context"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/dashpay/govd/background"
	"github.com/dashpay/govd/cache"
	"github.com/dashpay/govd/chainreactor"
	"github.com/dashpay/govd/fault"
	"github.com/dashpay/govd/govobject"
	"github.com/dashpay/govd/govsync"
	"github.com/dashpay/govd/ingest"
	"github.com/dashpay/govd/maintenance"
	"github.com/dashpay/govd/objectstore"
	"github.com/dashpay/govd/orphanqueue"
	"github.com/dashpay/govd/ratelimiter"
	"github.com/dashpay/govd/voteindex"
)

// globalDataType is the manager's single set of stores and indexes,
// guarded by one non-recursive critical section (embedded Mutex) —
// the same shape as the teacher's reservoir globalDataType, scaled up
// from one mutex protecting two maps to one mutex protecting the
// whole governance object graph.
type globalDataType struct {
	sync.Mutex

	log     *logger.L
	enabled bool

	cfg      Config
	pipeline *ingest.Pipeline

	host *govsync.Host
	sync *govsync.Sync
	bans *banTracker

	background *background.T
}

var globalData globalDataType

// Initialise wires every governance component behind the manager's
// cs and starts its background processors: the maintenance sweep
// (§4.I), the chain-tip reactor (§4.J) and the gossipsub receive loop
// (§4.G). It mirrors reservoir.Initialise's shape: validate the
// logger, build the tables, flip enabled, start the background set.
func Initialise(cfg Config) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.enabled {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("manager")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.log.Info("starting…")

	if err := cache.Initialise(); err != nil {
		return err
	}

	if cfg.SuperblockCycleSeconds > 0 {
		ratelimiter.SetSuperblockCycle(cfg.SuperblockCycleSeconds)
	}

	globalData.cfg = cfg
	bus := &notifyBus{bus: cfg.Bus, content: cfg.Content, log: globalData.log}

	globalData.pipeline = &ingest.Pipeline{
		Store:      objectstore.New(),
		Votes:      voteindex.New(),
		Orphans:    orphanqueue.New(),
		Limiter:    ratelimiter.New(),
		Masternode: cfg.Masternodes,
		Bus:        bus,
	}

	privKey, err := govsync.DecodePeerKey(cfg.PeerKeyHex)
	if err != nil {
		return err
	}

	ctx := context.Background()
	host, err := govsync.NewHost(ctx, cfg.ListenAddrs, privKey, logger.New("govsync"))
	if err != nil {
		return err
	}
	globalData.host = host
	globalData.sync = govsync.NewSync(host, syncBackend{})
	globalData.bans = newBanTracker(host, logger.New("ban"))

	processes := background.Processes{
		&maintenance.Processor{
			Locker:   &globalData,
			Pipeline: globalData.pipeline,
			Log:      logger.New("maintenance"),
		},
		&chainreactor.Reactor{
			Locker:      &globalData,
			Pipeline:    globalData.pipeline,
			Chain:       cfg.Chain,
			Relay:       bus,
			Masternodes: cfg.Masternodes,
			Log:         logger.New("chainreactor"),
		},
		&syncRunner{sync: globalData.sync, log: logger.New("govsync")},
		&govsync.DNSSeeder{Host: host, Domain: cfg.SeedDomain, Log: logger.New("dnsseed")},
	}
	globalData.background = background.Start(processes, nil)

	globalData.enabled = true
	globalData.log.Info("started")
	return nil
}

// Finalise stops every background processor and tears down the
// gossipsub host.
func Finalise() error {
	globalData.log.Info("shutting down…")

	globalData.background.Stop()
	if err := globalData.host.Close(); err != nil {
		globalData.log.Errorf("closing governance host: %s", err)
	}
	cache.Finalise()

	globalData.Lock()
	globalData.enabled = false
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

// SubmitObject admits a locally-originated governance object (spec
// §4.H's add_object, entered from outside the network — e.g. a local
// RPC call rather than a gossipsub message) and, on success, relays
// it on the overlay.
func SubmitObject(obj *govobject.GovernanceObject) error {
	globalData.Lock()
	err := globalData.pipeline.HandleObject(obj)
	globalData.Unlock()
	if err != nil {
		return err
	}

	return globalData.host.Publish(context.Background(), append([]byte{byte(govsync.KindGovObject)}, mustMarshalGovObject(obj)...))
}

// SubmitVote is SubmitObject's vote counterpart.
func SubmitVote(v govobject.GovernanceVote) error {
	globalData.Lock()
	err := globalData.pipeline.HandleVote(v)
	globalData.Unlock()
	if err != nil {
		return err
	}

	return globalData.host.Publish(context.Background(), append([]byte{byte(govsync.KindGovVote)}, mustMarshalGovVote(v)...))
}

// Find returns the stored object for hash, or nil.
func Find(hash govobject.Hash) *govobject.GovernanceObject {
	globalData.Lock()
	defer globalData.Unlock()
	return globalData.pipeline.Store.Find(hash)
}

func mustMarshalGovObject(obj *govobject.GovernanceObject) []byte {
	msg := &govsync.GovObjectMsg{Encoded: EncodeObject(obj)}
	b, _ := msg.Marshal()
	return b
}

func mustMarshalGovVote(v govobject.GovernanceVote) []byte {
	msg := &govsync.GovVoteMsg{Encoded: EncodeVote(&v)}
	b, _ := msg.Marshal()
	return b
}
