// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package govsync

import (
	"context"
	"encoding/hex"
	"sync"

	"golang.org/x/time/rate"

	"github.com/dashpay/govd/constants"
	"github.com/dashpay/govd/fault"
	"github.com/dashpay/govd/govobject"
)

// Backend is the slice of the manager govsync needs: enough to turn
// an incoming wire message into a store/index mutation, and an
// outgoing store/index entry into a wire message, without govsync
// importing the manager package itself.
type Backend interface {
	EncodeObject(hash govobject.Hash) ([]byte, bool)
	EncodeVote(hash govobject.Hash) ([]byte, bool)
	IngestObject(encoded []byte) (govobject.Hash, error)
	IngestVote(encoded []byte) (govobject.Hash, error)

	// DecodeObjectHash/DecodeVoteHash compute a pushed payload's hash
	// without admitting it, so dispatch can check the request tracker
	// before IngestObject/IngestVote touches the store.
	DecodeObjectHash(encoded []byte) (govobject.Hash, error)
	DecodeVoteHash(encoded []byte) (govobject.Hash, error)
	ObjectHashesNewerThan(since int64) []govobject.Hash
	VoteHashesForObject(parent govobject.Hash) []govobject.Hash
	HasObject(hash govobject.Hash) bool
	HasVote(hash govobject.Hash) bool

	// Ban reports peer misbehavior with score (spec §4.G/§7's
	// Misbehaving(peer, score)); a no-op connection manager may
	// ignore it, but the call site always fires.
	Ban(peer string, score int)
}

// Sync drives the governance overlay: it frames/unframes wire
// messages over a Host and feeds decoded payloads to a Backend.
type Sync struct {
	host    *Host
	backend Backend
	tracker *RequestTracker

	limitersLock sync.Mutex
	limiters     map[string]*rate.Limiter

	fullSyncLock      sync.Mutex
	fullSyncRequested map[string]bool
}

func NewSync(host *Host, backend Backend) *Sync {
	return &Sync{
		host:              host,
		backend:           backend,
		tracker:           NewRequestTracker(),
		limiters:          make(map[string]*rate.Limiter),
		fullSyncRequested: make(map[string]bool),
	}
}

// allowOutbound reports whether peer is still within its budget for
// causing this node to do outbound work — a GovSync reply (full sync
// or single-object vote sync) or a vote-pull fanout round — creating
// its token bucket on first contact. This is the outer gate named
// alongside the sliding-window trigger limiter: it bounds the ambient
// network chatter a single peer can provoke, not any governance
// invariant, which is why it sits in front of handleGovSync/handleInv
// rather than gating KindGovObject/KindGovVote ingestion directly.
func (s *Sync) allowOutbound(peer string) bool {
	s.limitersLock.Lock()
	lim, ok := s.limiters[peer]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(constants.PeerMessageRateLimit), constants.PeerMessageBurst)
		s.limiters[peer] = lim
	}
	s.limitersLock.Unlock()
	return lim.Allow()
}

// Forget drops hash from the request tracker, the "request set" a
// masternode key-rotation vote purge (spec §4.J step 2) must also
// clear so a legitimate replacement vote isn't mistaken for an
// unsolicited push.
func (s *Sync) Forget(hash string) {
	s.tracker.Forget(hash)
}

func envelope(kind MessageKind, payload []byte) []byte {
	return append([]byte{byte(kind)}, payload...)
}

// Serve runs the receive loop until ctx is cancelled, the
// background.Processor body the manager starts this under.
func (s *Sync) Serve(ctx context.Context) error {
	for {
		peer, data, err := s.host.Next(ctx)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			continue
		}
		if err := s.dispatch(ctx, peer, MessageKind(data[0]), data[1:]); err != nil {
			s.host.log.Warnf("governance message from %s rejected: %s", peer, err)
		}
	}
}

func (s *Sync) dispatch(ctx context.Context, peer string, kind MessageKind, body []byte) error {
	switch kind {
	case KindGovSync:
		msg := &GovSync{}
		if err := msg.Unmarshal(body); err != nil {
			return err
		}
		if !s.allowOutbound(peer) {
			s.host.log.Debugf("sync request from %s dropped: over reply budget", peer)
			return nil
		}
		return s.handleGovSync(ctx, peer, msg)
	case KindGovObject:
		msg := &GovObjectMsg{}
		if err := msg.Unmarshal(body); err != nil {
			return err
		}
		hash, err := s.backend.DecodeObjectHash(msg.Encoded)
		if err != nil {
			return err
		}
		if !s.tracker.Requested(hash.String()) {
			s.host.log.Debugf("unsolicited governance object %s from %s dropped", hash, peer)
			return nil
		}
		if _, err := s.backend.IngestObject(msg.Encoded); err != nil {
			if score := fault.Penalty(err); score > 0 {
				s.backend.Ban(peer, score)
			}
			return err
		}
		s.tracker.Forget(hash.String())
		return nil
	case KindGovVote:
		msg := &GovVoteMsg{}
		if err := msg.Unmarshal(body); err != nil {
			return err
		}
		hash, err := s.backend.DecodeVoteHash(msg.Encoded)
		if err != nil {
			return err
		}
		if !s.tracker.Requested(hash.String()) {
			s.host.log.Debugf("unsolicited governance vote %s from %s dropped", hash, peer)
			return nil
		}
		if _, err := s.backend.IngestVote(msg.Encoded); err != nil {
			if score := fault.Penalty(err); score > 0 {
				s.backend.Ban(peer, score)
			}
			return err
		}
		s.tracker.Forget(hash.String())
		return nil
	case KindInv:
		msg := &Inv{}
		if err := msg.Unmarshal(body); err != nil {
			return err
		}
		if !s.allowOutbound(peer) {
			s.host.log.Debugf("inv from %s dropped: over reply budget", peer)
			return nil
		}
		return s.handleInv(ctx, peer, msg)
	case KindSyncStatusCount:
		return nil // accounting only, nothing to act on beyond logging
	default:
		return fault.ErrTruncatedMessage
	}
}

// handleGovSync answers a sync request: a zero-length ParentHash
// means "send every known object newer than none" (a full resync);
// a non-empty one means "send the votes for this one object" (spec
// §4.G's distinction between full-sync and single-object sync).
func (s *Sync) handleGovSync(ctx context.Context, peer string, req *GovSync) error {
	filterCapable, err := CheckPeerVersion(req.ProtoVersion)
	if err != nil {
		s.backend.Ban(peer, 10)
		s.host.log.Warnf("sync request from %s rejected: %s", peer, err)
		return nil
	}

	var filter *Filter
	if filterCapable && len(req.Filter) > 0 {
		f, err := ParseFilter(req.Filter)
		if err == nil {
			filter = f
		}
	}

	if len(req.ParentHash) == 0 {
		s.fullSyncLock.Lock()
		already := s.fullSyncRequested[peer]
		s.fullSyncRequested[peer] = true
		s.fullSyncLock.Unlock()

		if already {
			s.backend.Ban(peer, 20)
			s.host.log.Warnf("peer %s requested a second full governance sync this session", peer)
			return nil
		}
		return s.sendFullSync(ctx, filter)
	}

	parent, err := govobject.HashFromHex(hex.EncodeToString(req.ParentHash))
	if err != nil {
		return err
	}
	return s.sendObjectVotes(ctx, parent, filter)
}

func (s *Sync) sendFullSync(ctx context.Context, filter *Filter) error {
	hashes := s.backend.ObjectHashesNewerThan(0)
	var sent uint64
	for _, h := range hashes {
		if filter != nil && filter.Has(h[:]) {
			continue
		}
		encoded, ok := s.backend.EncodeObject(h)
		if !ok {
			continue
		}
		if err := s.host.Publish(ctx, envelope(KindGovObject, mustMarshal(&GovObjectMsg{Encoded: encoded}))); err != nil {
			return err
		}
		sent++
	}
	status := &SyncStatusCount{Objects: sent}
	return s.host.Publish(ctx, envelope(KindSyncStatusCount, mustMarshal(status)))
}

func (s *Sync) sendObjectVotes(ctx context.Context, parent govobject.Hash, filter *Filter) error {
	votes := s.backend.VoteHashesForObject(parent)
	var sent uint64
	for _, h := range votes {
		if filter != nil && filter.Has(h[:]) {
			continue
		}
		encoded, ok := s.backend.EncodeVote(h)
		if !ok {
			continue
		}
		if err := s.host.Publish(ctx, envelope(KindGovVote, mustMarshal(&GovVoteMsg{Encoded: encoded}))); err != nil {
			return err
		}
		sent++
	}
	status := &SyncStatusCount{Votes: sent}
	return s.host.Publish(ctx, envelope(KindSyncStatusCount, mustMarshal(status)))
}

// handleInv requests every advertised hash this node does not
// already have, subject to the per-hash peer fanout cap.
func (s *Sync) handleInv(ctx context.Context, peer string, inv *Inv) error {
	for _, raw := range inv.ObjectHashes {
		hash, err := govobject.HashFromHex(hex.EncodeToString(raw))
		if err != nil || s.backend.HasObject(hash) {
			continue
		}
		if s.tracker.ShouldAsk(hash.String(), peer) == nil {
			req := &GovSync{ParentHash: raw, ProtoVersion: constants.LocalGovernanceProtoVersion}
			if err := s.host.Publish(ctx, envelope(KindGovSync, mustMarshal(req))); err != nil {
				return err
			}
		}
	}
	return s.PullVotes(ctx, []string{peer}, inv.VoteHashes)
}

func mustMarshal(m interface{ Marshal() ([]byte, error) }) []byte {
	b, _ := m.Marshal()
	return b
}
