// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ingest

import "github.com/dashpay/govd/govobject"

// MasternodeList is the subset of the manager's
// MasternodeListProvider (spec §6) the ingest pipeline needs: proof
// that an outpoint is a currently-known, sufficiently-confirmed
// masternode, and the key to verify its signatures with.
type MasternodeList interface {
	// Lookup reports whether outpoint is a known masternode, and if
	// so whether its collateral has matured enough confirmations to
	// vote/submit (spec §4.H step 2-3).
	Lookup(outpoint govobject.Outpoint) (confirmed bool, found bool)

	// VerifySignature checks sig over digest against outpoint's
	// current voting/operator key.
	VerifySignature(outpoint govobject.Outpoint, digest []byte, sig []byte) bool
}

// SignalBus is the subset of the manager's SignalBus (spec §6) the
// ingest pipeline publishes to once an object or vote is accepted.
type SignalBus interface {
	NotifyGovernanceObject(obj *govobject.GovernanceObject)
	NotifyGovernanceVote(v govobject.GovernanceVote)
}
