// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package govobject

import (
	"time"

	"github.com/dashpay/govd/fault"
)

// VoteFile is the per-object vote ledger embedded in GovernanceObject
// (spec §3: "each object carries the votes cast against it"). The
// index packages (voteindex, objectstore) read and write it under the
// manager's single critical section; VoteFile itself holds no lock.
type VoteFile struct {
	Votes map[string]GovernanceVote // keyed by vote hash hex
}

func NewVoteFile() VoteFile {
	return VoteFile{Votes: make(map[string]GovernanceVote)}
}

func (vf *VoteFile) AddVote(v GovernanceVote) {
	if vf.Votes == nil {
		vf.Votes = make(map[string]GovernanceVote)
	}
	vf.Votes[v.Hash().String()] = v
}

func (vf VoteFile) Count() int { return len(vf.Votes) }

// RemoveVoter drops every vote in vf cast by voter, the per-object
// half of purging a masternode's votes after its voting key rotates
// (spec §4.J step 2). It returns how many votes were removed.
func (vf *VoteFile) RemoveVoter(voter Outpoint) int {
	removed := 0
	for hash, v := range vf.Votes {
		if v.Voter == voter {
			delete(vf.Votes, hash)
			removed++
		}
	}
	return removed
}

// GovernanceObject is the immutable-payload, mutable-cache record
// spec §3 names. The Outpoint/CollateralHash/CreationTime/Payload/
// Signature fields are fixed at construction and feed Hash(); every
// other field is cache state the manager (under cs) mutates as the
// object ages.
type GovernanceObject struct {
	ObjectType     ObjectType
	Payload        []byte // opaque UTF-8 JSON payload, spec §3
	MasternodeOut  Outpoint
	CollateralHash [32]byte
	CreationTime   time.Time
	Signature      []byte

	// cache state, mutated only while holding the manager's cs.
	DirtyCache    bool
	CachedDelete  bool
	Expired       bool
	RecordLocked  bool
	PermLocked    bool
	DeletionTime  time.Time
	LocalValidity error // nil means currently considered valid

	// CollateralNextSuperblock is the RECORD-only carve-out spec
	// §4.J step 2 names: a masternode key rotation invalidates a
	// RECORD's votes only while tip.height < this value. Zero for
	// every other object type.
	CollateralNextSuperblock uint64

	VoteFile VoteFile
}

// New validates the immutable fields and returns a GovernanceObject
// ready for hashing and storage. It does not evaluate local validity
// rules beyond basic shape (spec §4.C defers the rest to the object
// store's validation pass).
func New(objType ObjectType, payload []byte, mn Outpoint, collateral [32]byte, created time.Time, sig []byte) (*GovernanceObject, error) {
	if objType == Unknown {
		return nil, fault.ErrUnknownObjectType
	}
	if len(payload) == 0 {
		return nil, fault.ErrObjectPayloadEmpty
	}
	if len(sig) == 0 {
		return nil, fault.ErrObjectSignatureMissing
	}
	return &GovernanceObject{
		ObjectType:     objType,
		Payload:        payload,
		MasternodeOut:  mn,
		CollateralHash: collateral,
		CreationTime:   created,
		Signature:      sig,
		VoteFile:       NewVoteFile(),
	}, nil
}

// IsValid reports whether the cached validity state permits the
// object to participate in sync and trigger execution (invariant 5).
func (o *GovernanceObject) IsValid() bool {
	return !o.Expired && !o.PermLocked && o.LocalValidity == nil
}
