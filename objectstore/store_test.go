// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dashpay/govd/govobject"
)

func mustObject(t *testing.T, payload string, when int64) *govobject.GovernanceObject {
	o, err := govobject.New(govobject.Proposal, []byte(payload), govobject.Outpoint{}, [32]byte{}, time.Unix(when, 0), []byte("sig"))
	assert.NoError(t, err)
	return o
}

func TestEmplaceUniqueRejectsDuplicateHash(t *testing.T) {
	s := New()
	a := mustObject(t, `{"n":1}`, 100)
	b := mustObject(t, `{"n":1}`, 100) // identical immutable fields -> identical hash

	_, inserted := s.EmplaceUnique(a)
	assert.True(t, inserted)

	got, inserted := s.EmplaceUnique(b)
	assert.False(t, inserted)
	assert.Same(t, a, got)
	assert.Equal(t, 1, s.Size())
}

func TestFindAndErase(t *testing.T) {
	s := New()
	a := mustObject(t, `{"n":1}`, 100)
	s.EmplaceUnique(a)

	assert.NotNil(t, s.Find(a.Hash()))
	assert.True(t, s.Erase(a.Hash()))
	assert.Nil(t, s.Find(a.Hash()))
	assert.False(t, s.Erase(a.Hash()))
}

func TestAllNewerThan(t *testing.T) {
	s := New()
	old := mustObject(t, `{"n":"old"}`, 100)
	recent := mustObject(t, `{"n":"recent"}`, 500)
	s.EmplaceUnique(old)
	s.EmplaceUnique(recent)

	got := s.AllNewerThan(300)
	assert.Len(t, got, 1)
	assert.Equal(t, recent.Hash(), got[0].Hash())
}
