// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainreactor

import "github.com/dashpay/govd/govobject"

// ChainClient is the manager's ChainClient external interface (spec
// §6) trimmed to what the chain-tip handler needs: notification of a
// new tip, and the ability to execute the trigger a superblock
// height calls for.
type ChainClient interface {
	// Tips delivers a height each time the local chain's tip moves.
	// The channel is owned by the implementation; the reactor never
	// closes it.
	Tips() <-chan uint64

	// IsSuperblockHeight reports whether height is one at which a
	// qualifying Trigger object should be executed.
	IsSuperblockHeight(height uint64) bool

	// ExecuteSuperblock hands the winning trigger's payload to the
	// chain for execution (spec §4.J "superblock execution
	// delegation" — the manager decides which trigger wins; this
	// package only identifies candidates and defers the actual
	// execution to the chain).
	ExecuteSuperblock(height uint64, trigger *govobject.GovernanceObject) error
}

// Relay is the manager's SignalBus trimmed to the one call the
// chain-tip handler needs: re-announcing the additional-relay set
// after a reorg or a long gap since the last tip.
type Relay interface {
	Republish(obj *govobject.GovernanceObject) error

	// ForgetRequest drops hash from the request set (spec §4.J step 2
	// / Scenario 5's "...and from the request set"), so a vote purged
	// for a rotated masternode key can be freely re-requested if a
	// legitimate copy ever arrives.
	ForgetRequest(hash string)
}

// MasternodeKeys is the manager's MasternodeListProvider trimmed to
// the one call the chain-tip handler needs to act on spec §4.J step 2
// / testable Scenario 5: which masternodes rotated their voting key
// since the last tip, so their existing votes can be purged.
type MasternodeKeys interface {
	KeyRotated() []govobject.Outpoint
}
