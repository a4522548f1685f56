// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package govobject

import (
	"time"

	"github.com/dashpay/govd/fault"
)

// GovernanceVote is a single masternode's signed statement about one
// signal/outcome pair on a parent object (spec §3).
type GovernanceVote struct {
	Voter      Outpoint
	ParentHash Hash
	Signal     Signal
	Outcome    Outcome
	Timestamp  time.Time
	Signature  []byte
}

// NewVote validates the immutable fields of a vote.
func NewVote(voter Outpoint, parent Hash, signal Signal, outcome Outcome, ts time.Time, sig []byte) (*GovernanceVote, error) {
	if len(sig) == 0 {
		return nil, fault.ErrVoteSignatureMissing
	}
	return &GovernanceVote{
		Voter:      voter,
		ParentHash: parent,
		Signal:     signal,
		Outcome:    outcome,
		Timestamp:  ts,
		Signature:  sig,
	}, nil
}
