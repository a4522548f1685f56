// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

import "time"

// the wire-contract constants named in spec §6.
const (
	MaxTimeFutureDeviation  = 3600 * time.Second
	ReliablePropagationTime = 60 * time.Second

	// GovernanceOrphanExpirationTime bounds how long an object
	// waits for its submitting masternode to appear before the
	// orphan entry is dropped.
	GovernanceOrphanExpirationTime = 10 * time.Minute

	// GovernanceDeletionDelay is how long a cached_delete/expired
	// object stays in the live store before eviction (invariant 5).
	GovernanceDeletionDelay = 10 * time.Minute

	// GovernanceFilterFPRate is the target false-positive rate for
	// the bloom filters exchanged during vote sync (§4.G).
	GovernanceFilterFPRate = 0.001

	// MaxCacheSize is the shared capacity of every capped container
	// (§4.B): the Vote Index, the Invalid-Vote cache and the
	// Orphan-Vote multimap.
	MaxCacheSize = 1000000

	// MaxOrphanObjectsPerMasternode bounds per-outpoint orphan
	// object backlog (§4.E).
	MaxOrphanObjectsPerMasternode = 10

	// MinGovernancePeerProtoVersion rejects peers below this with
	// REJECT(obsolete) (§4.G).
	MinGovernancePeerProtoVersion = 70213

	// GovernanceFilterProtoVersion is the first protocol version
	// from which bloom filters in MNGOVERNANCESYNC are honoured.
	GovernanceFilterProtoVersion = 70215

	// LocalGovernanceProtoVersion is the protocol version this node
	// advertises on every outbound MNGOVERNANCESYNC request.
	LocalGovernanceProtoVersion = GovernanceFilterProtoVersion

	// VoteOrphanExpirationTime is how long an orphan vote is kept
	// waiting for its parent object before being dropped.
	VoteOrphanExpirationTime = 10 * time.Minute

	// MainnetVoteFanout is the number of peers asked per vote hash
	// on mainnet (§4.G "Vote pull").
	MainnetVoteFanout = 3

	// AskAgainDelay bounds how often the same peer is re-asked for
	// the same hash.
	AskAgainDelay = 60 * 60 * time.Second

	// MaxPeersAskedPerHashWindow is the "≤3 peers per hash within
	// 60·60 s" cap from §4.G.
	MaxPeersAskedPerHashWindow = 3

	// ContentStorePinSizeLimit is the maximum total recursively
	// reported size a CID may have before the pinner (§4.K) refuses
	// to pin it.
	ContentStorePinSizeLimit = 10 * 1024 * 1024 // 10 MiB

	// MaintenanceInterval is the period of the maintenance loop
	// background.Processor (§4.I).
	MaintenanceInterval = 60 * time.Second

	// PersistenceVersion is the wire-format tag the manager is
	// serialized under (§6 "Persistence").
	PersistenceVersion = "CGovernanceManager-Version-15"

	// MaintenanceWorkerPoolSize bounds how many orphan-object retries
	// the maintenance sweep (§4.I step 1) runs concurrently; each
	// retry is independent (keyed by its own masternode outpoint) so
	// nothing beyond this cap is gained by running them serially.
	MaintenanceWorkerPoolSize = 8

	// PeerMessageRateLimit and PeerMessageBurst bound how many
	// governance wire messages a single gossipsub peer may deliver
	// per second before Sync starts dropping them — transport-level
	// protection against a noisy or hostile peer, independent of the
	// domain-specific trigger rate limiter in package ratelimiter.
	PeerMessageRateLimit = 20
	PeerMessageBurst     = 40
)

// RateLimiterMaxTriggerRate is the numerator of the max trigger
// submission rate (§4.F step 5): the absolute threshold is
// RateLimiterMaxTriggerRate / float64(superblockCycleSeconds).
const RateLimiterMaxTriggerRate = 2 * 1.1
