// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package govsync

import (
	"context"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/dashpay/govd/constants"
	"github.com/dashpay/govd/fault"
	"github.com/dashpay/govd/govobject"
	"github.com/dashpay/govd/govsync/mocks"
)

func newTestSync() *Sync {
	return &Sync{tracker: NewRequestTracker(), limiters: make(map[string]*rate.Limiter)}
}

type fakeBackend struct {
	ingestedObjects [][]byte
	ingestedVotes   [][]byte
	banned          map[string]int
}

func (b *fakeBackend) EncodeObject(govobject.Hash) ([]byte, bool) { return nil, false }
func (b *fakeBackend) EncodeVote(govobject.Hash) ([]byte, bool)   { return nil, false }

func (b *fakeBackend) DecodeObjectHash(encoded []byte) (govobject.Hash, error) {
	var h govobject.Hash
	copy(h[:], encoded)
	return h, nil
}

func (b *fakeBackend) DecodeVoteHash(encoded []byte) (govobject.Hash, error) {
	var h govobject.Hash
	copy(h[:], encoded)
	return h, nil
}

func (b *fakeBackend) IngestObject(encoded []byte) (govobject.Hash, error) {
	b.ingestedObjects = append(b.ingestedObjects, encoded)
	h, _ := b.DecodeObjectHash(encoded)
	return h, nil
}

func (b *fakeBackend) IngestVote(encoded []byte) (govobject.Hash, error) {
	b.ingestedVotes = append(b.ingestedVotes, encoded)
	h, _ := b.DecodeVoteHash(encoded)
	return h, nil
}

func (b *fakeBackend) ObjectHashesNewerThan(int64) []govobject.Hash       { return nil }
func (b *fakeBackend) VoteHashesForObject(govobject.Hash) []govobject.Hash { return nil }
func (b *fakeBackend) HasObject(govobject.Hash) bool                      { return false }
func (b *fakeBackend) HasVote(govobject.Hash) bool                        { return false }

func (b *fakeBackend) Ban(peer string, score int) {
	if b.banned == nil {
		b.banned = make(map[string]int)
	}
	b.banned[peer] += score
}

func newTestSyncWithBackend(backend Backend) *Sync {
	return &Sync{
		host:    &Host{log: logger.New("govsync-test")},
		backend: backend,
		tracker: NewRequestTracker(),
	}
}

func TestDispatchDropsUnsolicitedObject(t *testing.T) {
	backend := &fakeBackend{}
	s := newTestSyncWithBackend(backend)

	msg := &GovObjectMsg{Encoded: []byte("obj-a")}
	body, err := msg.Marshal()
	assert.NoError(t, err)

	assert.NoError(t, s.dispatch(context.Background(), "peer1", KindGovObject, body))
	assert.Empty(t, backend.ingestedObjects)
}

func TestDispatchAdmitsRequestedObjectAndForgetsIt(t *testing.T) {
	backend := &fakeBackend{}
	s := newTestSyncWithBackend(backend)

	encoded := []byte("obj-b")
	hash, err := backend.DecodeObjectHash(encoded)
	assert.NoError(t, err)
	assert.NoError(t, s.tracker.ShouldAsk(hash.String(), "peer1"))

	msg := &GovObjectMsg{Encoded: encoded}
	body, err := msg.Marshal()
	assert.NoError(t, err)

	assert.NoError(t, s.dispatch(context.Background(), "peer1", KindGovObject, body))
	assert.Len(t, backend.ingestedObjects, 1)
	assert.False(t, s.tracker.Requested(hash.String()))
}

func TestDispatchBansPeerOnPermanentIngestError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	var hash govobject.Hash
	hash[0] = 7
	encoded := hash[:]

	backend := mocks.NewMockBackend(ctl)
	backend.EXPECT().DecodeObjectHash(gomock.Eq(encoded)).Return(hash, nil).Times(1)
	backend.EXPECT().IngestObject(gomock.Eq(encoded)).Return(govobject.Hash{}, fault.ErrInvalidSignature).Times(1)
	backend.EXPECT().Ban(gomock.Eq("peer1"), gomock.Eq(20)).Times(1)

	s := newTestSyncWithBackend(backend)
	assert.NoError(t, s.tracker.ShouldAsk(hash.String(), "peer1"))

	msg := &GovObjectMsg{Encoded: encoded}
	body, err := msg.Marshal()
	assert.NoError(t, err)

	err = s.dispatch(context.Background(), "peer1", KindGovObject, body)
	assert.Equal(t, fault.ErrInvalidSignature, err)
}

func TestHandleGovSyncRejectsObsoletePeerVersion(t *testing.T) {
	backend := &fakeBackend{}
	s := newTestSyncWithBackend(backend)

	err := s.handleGovSync(context.Background(), "peer1", &GovSync{ProtoVersion: constants.MinGovernancePeerProtoVersion - 1})
	assert.NoError(t, err)
	assert.Equal(t, 10, backend.banned["peer1"])
}

func TestAllowOutboundCapsBurstThenRecovers(t *testing.T) {
	s := newTestSync()

	for i := 0; i < constants.PeerMessageBurst; i++ {
		assert.True(t, s.allowOutbound("peer1"), "burst token %d should be allowed", i)
	}
	assert.False(t, s.allowOutbound("peer1"), "burst exhausted, next request should be dropped")
}

func TestAllowOutboundIsPerPeer(t *testing.T) {
	s := newTestSync()

	for i := 0; i < constants.PeerMessageBurst; i++ {
		assert.True(t, s.allowOutbound("peer1"))
	}
	assert.False(t, s.allowOutbound("peer1"))

	// a distinct peer has its own untouched bucket.
	assert.True(t, s.allowOutbound("peer2"))
}
