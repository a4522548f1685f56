// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cappedmap

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// Map is a fixed-capacity key -> single value store. Inserting into
// a full Map evicts the oldest-inserted key still present, matching
// invariant (7) of spec §3.
type Map struct {
	lock sync.Mutex
	c    *lru.Cache
}

// NewMap builds a Map with room for capacity keys.
func NewMap(capacity int) *Map {
	c, err := lru.New(capacity)
	if err != nil {
		// capacity <= 0 is a programmer error, not a runtime condition
		panic(err)
	}
	return &Map{c: c}
}

// Insert adds or overwrites key, possibly evicting the oldest entry.
func (m *Map) Insert(key string, value interface{}) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.c.Add(key, value)
}

// Erase removes key if present.
func (m *Map) Erase(key string) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.c.Remove(key)
}

// Get returns the value stored under key, if any.
func (m *Map) Get(key string) (interface{}, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.c.Get(key)
}

// HasKey reports presence without promoting key in the eviction
// order (lru.Cache.Contains does not touch recency).
func (m *Map) HasKey(key string) bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.c.Contains(key)
}

// Size returns the current number of keys.
func (m *Map) Size() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.c.Len()
}

// GetItemList returns every key currently stored, oldest first.
func (m *Map) GetItemList() []string {
	m.lock.Lock()
	defer m.lock.Unlock()
	keys := m.c.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.(string)
	}
	return out
}

// Clear empties the map.
func (m *Map) Clear() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.c.Purge()
}
