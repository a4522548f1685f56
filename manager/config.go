// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manager

import (
	ma "github.com/multiformats/go-multiaddr"
)

// Config collects every external dependency and tunable Initialise
// needs to wire the governance manager (spec §6's external
// interfaces plus the network/persistence knobs the manager itself
// owns).
type Config struct {
	Masternodes MasternodeListProvider
	Chain       ChainClient
	Peers       ConnectionManager
	Content     ContentStore
	Bus         SignalBus
	Persist     Persister

	ListenAddrs []ma.Multiaddr
	PeerKeyHex  string

	// SeedDomain, if set, is resolved periodically for TXT-record
	// governance peer multiaddrs (spec §6's peer discovery, left
	// unspecified beyond "some connection manager" supplies initial
	// peers).
	SeedDomain string

	// SuperblockCycleSeconds overrides the default 30-day mainnet
	// cycle used to compute the trigger rate limiter's absolute
	// threshold (spec §4.F step 5); zero keeps the default.
	SuperblockCycleSeconds float64
}
