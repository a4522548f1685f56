// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package govobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func makeObject(t *testing.T, payload string) *GovernanceObject {
	o, err := New(Proposal, []byte(payload), Outpoint{Index: 0}, [32]byte{1}, time.Unix(1000, 0), []byte("sig"))
	assert.NoError(t, err)
	return o
}

func TestNewObjectRejectsEmptyPayload(t *testing.T) {
	_, err := New(Proposal, nil, Outpoint{}, [32]byte{}, time.Now(), []byte("sig"))
	assert.Error(t, err)
}

func TestNewObjectRejectsUnknownType(t *testing.T) {
	_, err := New(Unknown, []byte("x"), Outpoint{}, [32]byte{}, time.Now(), []byte("sig"))
	assert.Error(t, err)
}

func TestObjectHashIsStableAndDistinguishing(t *testing.T) {
	a := makeObject(t, `{"name":"a"}`)
	b := makeObject(t, `{"name":"b"}`)

	assert.Equal(t, a.Hash(), a.Hash())
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestObjectHashIgnoresCacheState(t *testing.T) {
	a := makeObject(t, `{"name":"a"}`)
	before := a.Hash()
	a.DirtyCache = true
	a.Expired = true
	a.DeletionTime = time.Now()
	assert.Equal(t, before, a.Hash())
}

func TestVoteHashDistinguishesSignalAndOutcome(t *testing.T) {
	parent := makeObject(t, `{"name":"a"}`).Hash()
	v1, err := NewVote(Outpoint{Index: 1}, parent, Funding, Yes, time.Unix(2000, 0), []byte("sig"))
	assert.NoError(t, err)
	v2, err := NewVote(Outpoint{Index: 1}, parent, Funding, No, time.Unix(2000, 0), []byte("sig"))
	assert.NoError(t, err)

	assert.NotEqual(t, v1.Hash(), v2.Hash())
}

func TestVoteFileAddVote(t *testing.T) {
	parent := makeObject(t, `{"name":"a"}`).Hash()
	v, err := NewVote(Outpoint{Index: 1}, parent, Funding, Yes, time.Unix(2000, 0), []byte("sig"))
	assert.NoError(t, err)

	vf := NewVoteFile()
	vf.AddVote(*v)
	assert.Equal(t, 1, vf.Count())
}

func TestObjectTypeTextRoundTrip(t *testing.T) {
	var got ObjectType
	assert.NoError(t, got.UnmarshalText([]byte("TRIGGER")))
	assert.Equal(t, Trigger, got)

	assert.Error(t, got.UnmarshalText([]byte("NOT-A-TYPE")))
}

func TestSignalUnknownDefaultsToNone(t *testing.T) {
	var s Signal
	assert.NoError(t, s.UnmarshalText([]byte("garbage")))
	assert.Equal(t, SignalNone, s)
}
