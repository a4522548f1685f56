// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package govsync

import (
	"math"

	"github.com/AndreasBriese/bbloom"

	"github.com/dashpay/govd/constants"
)

// Filter wraps a bbloom.Bloom sized for an expected population, the
// membership test a GovSync.Filter carries so the responder can skip
// hashes the requester almost certainly already has (spec §4.G).
type Filter struct {
	bloom *bbloom.Bloom
}

// NewFilter sizes a filter for n expected entries at
// constants.GovernanceFilterFPRate, following the standard m/k
// bloom-filter sizing formulas bbloom expects its caller to have
// already applied.
func NewFilter(n int) *Filter {
	if n < 1 {
		n = 1
	}
	m := -float64(n) * math.Log(constants.GovernanceFilterFPRate) / (math.Ln2 * math.Ln2)
	k := m / float64(n) * math.Ln2
	bloom := bbloom.New(m, k)
	return &Filter{bloom: &bloom}
}

func (f *Filter) Add(hash []byte)        { f.bloom.Add(hash) }
func (f *Filter) Has(hash []byte) bool   { return f.bloom.Has(hash) }
func (f *Filter) Marshal() []byte        { return f.bloom.JSONMarshal() }

// ParseFilter reconstructs a Filter a peer sent in GovSync.Filter.
func ParseFilter(encoded []byte) (*Filter, error) {
	bloom := bbloom.JSONUnmarshal(encoded)
	return &Filter{bloom: &bloom}, nil
}
