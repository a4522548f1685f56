// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ingest

import (
	"github.com/dashpay/govd/fault"
	"github.com/dashpay/govd/govobject"
	"github.com/dashpay/govd/objectstore"
	"github.com/dashpay/govd/orphanqueue"
	"github.com/dashpay/govd/ratelimiter"
	"github.com/dashpay/govd/voteindex"
)

// Pipeline wires the per-message validation/acceptance steps spec
// §4.H names against the manager's stores and indexes. It holds no
// lock of its own: the manager calls every method here from under
// its single cs, the same ordering discipline that protects the
// teacher's reservoir against concurrent mutation from cs_main and
// the RPC surface at once.
type Pipeline struct {
	Store      *objectstore.Store
	Votes      *voteindex.Index
	Orphans    *orphanqueue.Queue
	Limiter    *ratelimiter.Limiter
	Masternode MasternodeList
	Bus        SignalBus
}

// HandleObject runs spec §4.H's add_object pipeline: dedupe against
// the store and the erased tombstones, confirm the submitting
// masternode, apply the trigger rate limit, then admit the object
// and replay any votes that were orphaned waiting for it.
func (p *Pipeline) HandleObject(obj *govobject.GovernanceObject) error {
	hash := obj.Hash()

	if p.Orphans.IsErased(hash) {
		return fault.ErrObjectExpiredOrDeleted
	}
	if p.Store.Find(hash) != nil {
		return fault.ErrObjectAlreadyKnown
	}

	confirmed, found := p.Masternode.Lookup(obj.MasternodeOut)
	if !found {
		if err := p.Orphans.AddOrphanObject(obj); err != nil {
			return err
		}
		return fault.ErrOrphanObject
	}
	if !confirmed {
		// known masternode, fee confirmations still pending: parked
		// rather than rejected outright (spec §4.H step 6) — the
		// maintenance cycle's retryPostponed re-attempts admission
		// once the confirmations catch up.
		p.Orphans.Postpone(obj)
		return fault.ErrMissingConfirmations
	}

	// Pre-check the trigger rate before paying for signature
	// verification: force=false never rejects outright, it only
	// reports whether this object is riding a temporary bypass that
	// a forced recheck must settle once the signature is known good.
	_, bypassed := p.Limiter.Check(obj, obj.CreationTime.Unix(), true, false)

	if !p.Masternode.VerifySignature(obj.MasternodeOut, obj.SignaturePreimage(), obj.Signature) {
		return fault.ErrInvalidSignature
	}

	if bypassed {
		ok, stillBypassed := p.Limiter.Check(obj, obj.CreationTime.Unix(), true, true)
		if !ok {
			return fault.ErrRateLimited
		}
		bypassed = stillBypassed
	}
	obj.DirtyCache = bypassed

	stored, inserted := p.Store.EmplaceUnique(obj)
	if !inserted {
		return fault.ErrObjectAlreadyKnown
	}

	p.Orphans.RemoveOrphanObject(hash, obj.MasternodeOut.Key())
	p.Orphans.RelayAdd(hash.String())

	for _, v := range p.Votes.PullOrphans(hash) {
		_ = p.HandleVote(v) // orphans replay best-effort; a vote that fails revalidation is simply dropped
	}

	p.Bus.NotifyGovernanceObject(stored)
	return nil
}

// HandleVote runs spec §4.H's handle_vote pipeline: reject anything
// already known to be permanently invalid or already accepted, park
// votes whose parent object is not yet known, otherwise validate the
// voter and admit the vote into the live index.
func (p *Pipeline) HandleVote(v govobject.GovernanceVote) error {
	hash := v.Hash()

	if p.Votes.IsInvalid(hash) {
		return fault.ErrVotePermanentlyInvalid
	}
	if p.Votes.IsLive(hash) {
		return fault.ErrVoteAlreadyKnown
	}

	parent := p.Store.Find(v.ParentHash)
	if parent == nil {
		p.Votes.AddOrphan(v)
		p.Orphans.AddOrphanVote(hash.String(), v.ParentHash.String())
		return fault.ErrOrphanVote
	}
	if !parent.IsValid() {
		return fault.ErrObjectExpiredOrDeleted
	}

	confirmed, found := p.Masternode.Lookup(v.Voter)
	if !found {
		p.Votes.MarkInvalid(hash)
		return fault.ErrIneligibleVoter
	}
	if !confirmed {
		return fault.ErrMissingConfirmations
	}
	if !p.Masternode.VerifySignature(v.Voter, v.SignaturePreimage(), v.Signature) {
		p.Votes.MarkInvalid(hash)
		return fault.ErrInvalidSignature
	}

	p.Votes.AddLive(v)
	parent.VoteFile.AddVote(v)
	p.Orphans.ForgetOrphanVote(hash.String())

	p.Bus.NotifyGovernanceVote(v)
	return nil
}
