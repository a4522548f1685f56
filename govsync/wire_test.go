// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package govsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGovSyncRoundTrip(t *testing.T) {
	want := &GovSync{ParentHash: []byte("parent"), Filter: []byte("filter-bytes"), ProtoVersion: 70215}
	encoded, err := want.Marshal()
	assert.NoError(t, err)

	got := &GovSync{}
	assert.NoError(t, got.Unmarshal(encoded))
	assert.Equal(t, want.ParentHash, got.ParentHash)
	assert.Equal(t, want.Filter, got.Filter)
	assert.Equal(t, want.ProtoVersion, got.ProtoVersion)
}

func TestInvRoundTrip(t *testing.T) {
	want := &Inv{
		ObjectHashes: [][]byte{[]byte("h1"), []byte("h2")},
		VoteHashes:   [][]byte{[]byte("v1")},
	}
	encoded, err := want.Marshal()
	assert.NoError(t, err)

	got := &Inv{}
	assert.NoError(t, got.Unmarshal(encoded))
	assert.Equal(t, want.ObjectHashes, got.ObjectHashes)
	assert.Equal(t, want.VoteHashes, got.VoteHashes)
}

func TestSyncStatusCountRoundTrip(t *testing.T) {
	want := &SyncStatusCount{Objects: 42, Votes: 7}
	encoded, err := want.Marshal()
	assert.NoError(t, err)

	got := &SyncStatusCount{}
	assert.NoError(t, got.Unmarshal(encoded))
	assert.Equal(t, want.Objects, got.Objects)
	assert.Equal(t, want.Votes, got.Votes)
}
