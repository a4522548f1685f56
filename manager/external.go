// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manager

import (
	ma "github.com/multiformats/go-multiaddr"

	"github.com/dashpay/govd/govobject"
)

// MasternodeListProvider is spec §6's external masternode view: proof
// of an outpoint's confirmation status and the key to verify its
// signatures with. It is the superset manager.MasternodeList
// implements to satisfy both ingest.MasternodeList and any future
// caller needing the richer List method.
type MasternodeListProvider interface {
	Lookup(outpoint govobject.Outpoint) (confirmed bool, found bool)
	VerifySignature(outpoint govobject.Outpoint, digest []byte, sig []byte) bool

	// List enumerates every currently known masternode outpoint, the
	// walk Snapshot and full-resync use to decide which masternodes'
	// orphan backlogs are worth retrying.
	List() []govobject.Outpoint

	// KeyRotated reports every masternode outpoint whose keyIDVoting or
	// pubKeyOperator changed since the last call (spec §6's
	// build_diff(other) → {updated_mns, removed_mns}, trimmed to the
	// single outcome the chain-tip reactor acts on: which masternodes'
	// existing votes must be purged because they were signed under a
	// key that is no longer current). The provider owns remembering
	// the previous snapshot; each call diffs against it and remembers
	// the new one for next time.
	KeyRotated() []govobject.Outpoint
}

// ChainClient is spec §6's external chain view: tip notifications and
// superblock execution, handed straight through to chainreactor.
type ChainClient interface {
	Tips() <-chan uint64
	IsSuperblockHeight(height uint64) bool
	ExecuteSuperblock(height uint64, trigger *govobject.GovernanceObject) error
}

// ConnectionManager is spec §6's external peer view: the set of
// currently connected peer identities govsync's fanout and inv
// handling address by.
type ConnectionManager interface {
	ConnectedPeers() []string
	ListenAddrs() []ma.Multiaddr
}

// ContentStore is spec §6's external pinning surface, satisfied by
// *pinner.Client.
type ContentStore interface {
	Pin(cid string) error
	Unpin(cid string) error
	List() ([]string, error)
}

// SignalBus is spec §6's external notification sink: the manager's
// own ingest-facing methods adapt to this, and the manager in turn
// adapts it to chainreactor.Relay via Republish.
type SignalBus interface {
	NotifyGovernanceObject(obj *govobject.GovernanceObject)
	NotifyGovernanceVote(v govobject.GovernanceVote)
	Republish(obj *govobject.GovernanceObject) error
}

// Persister is spec §6's external persistence surface: where the
// manager's serialized snapshot is written and read back from, kept
// as an interface so a test can swap in an in-memory implementation
// without touching disk.
type Persister interface {
	Save(data []byte) error
	Load() ([]byte, error)
}
