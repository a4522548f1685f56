// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cappedmap

import (
	"container/ring"
	"sync"
)

// Multimap is a fixed-capacity key -> many-values store, used for
// the Orphan-Vote multimap (spec §4.D/§4.E): parent_hash -> many
// (vote, expiration) entries. Capacity bounds the number of distinct
// keys, not the total value count; inserting a new key into a full
// Multimap evicts the oldest-inserted key and every value under it,
// the same ring+hash eviction order as the teacher's
// limitedset.LimitedSet, generalized to hold a value set per slot.
type Multimap struct {
	lock   sync.Mutex
	ring   *ring.Ring
	slots  map[string]*ring.Ring
	values map[string]map[string]interface{}
}

// NewMultimap builds a Multimap with room for capacity distinct keys.
func NewMultimap(capacity int) *Multimap {
	return &Multimap{
		ring:   ring.New(capacity),
		slots:  make(map[string]*ring.Ring),
		values: make(map[string]map[string]interface{}),
	}
}

// Insert adds value under (key, valueKey). A brand new key may evict
// the oldest key and all of its values; inserting into an existing
// key never evicts.
func (m *Multimap) Insert(key, valueKey string, value interface{}) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.slots[key]; !ok {
		if oldKey, ok := m.ring.Value.(string); ok {
			delete(m.slots, oldKey)
			delete(m.values, oldKey)
		}
		m.ring.Value = key
		m.slots[key] = m.ring
		m.ring = m.ring.Next()
	}
	if m.values[key] == nil {
		m.values[key] = make(map[string]interface{})
	}
	m.values[key][valueKey] = value
}

// Erase drops every value under key.
func (m *Multimap) Erase(key string) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.eraseKey(key)
}

func (m *Multimap) eraseKey(key string) {
	r, ok := m.slots[key]
	if !ok {
		return
	}
	r.Value = nil
	delete(m.slots, key)
	delete(m.values, key)
}

// EraseValue drops a single (key, valueKey) entry, and the key
// itself once its last value is gone.
func (m *Multimap) EraseValue(key, valueKey string) {
	m.lock.Lock()
	defer m.lock.Unlock()

	vs, ok := m.values[key]
	if !ok {
		return
	}
	delete(vs, valueKey)
	if len(vs) == 0 {
		m.eraseKey(key)
	}
}

// Get returns every value currently stored under key.
func (m *Multimap) Get(key string) map[string]interface{} {
	m.lock.Lock()
	defer m.lock.Unlock()

	vs, ok := m.values[key]
	if !ok {
		return nil
	}
	out := make(map[string]interface{}, len(vs))
	for k, v := range vs {
		out[k] = v
	}
	return out
}

// HasKey reports whether key has at least one value.
func (m *Multimap) HasKey(key string) bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	_, ok := m.slots[key]
	return ok
}

// Size returns the number of distinct keys currently stored.
func (m *Multimap) Size() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.slots)
}

// GetItemList returns every key currently stored.
func (m *Multimap) GetItemList() []string {
	m.lock.Lock()
	defer m.lock.Unlock()
	out := make([]string, 0, len(m.slots))
	for k := range m.slots {
		out = append(out, k)
	}
	return out
}

// Clear empties the multimap, preserving its capacity.
func (m *Multimap) Clear() {
	m.lock.Lock()
	defer m.lock.Unlock()
	capacity := m.ring.Len()
	m.ring = ring.New(capacity)
	m.slots = make(map[string]*ring.Ring)
	m.values = make(map[string]map[string]interface{})
}
