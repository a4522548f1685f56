// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectstore

import (
	"sync"

	"github.com/dashpay/govd/govobject"
)

// Store is the hash→object table spec §4.C names. It is safe for
// concurrent use on its own, but the manager always calls it from
// under its single cs, the same call-ordering discipline the teacher
// applies to its storage packages through cs_main.
type Store struct {
	lock    sync.RWMutex
	objects map[govobject.Hash]*govobject.GovernanceObject
}

func New() *Store {
	return &Store{objects: make(map[govobject.Hash]*govobject.GovernanceObject)}
}

// Find returns the object for hash, or nil if it is not known.
func (s *Store) Find(hash govobject.Hash) *govobject.GovernanceObject {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.objects[hash]
}

// EmplaceUnique inserts obj keyed by its own hash unless an object
// with that hash is already present, mirroring the original's
// emplace_unique: the bool return tells the caller whether its copy
// became the canonical one or was rejected in favour of the existing
// entry.
func (s *Store) EmplaceUnique(obj *govobject.GovernanceObject) (*govobject.GovernanceObject, bool) {
	hash := obj.Hash()

	s.lock.Lock()
	defer s.lock.Unlock()

	if existing, ok := s.objects[hash]; ok {
		return existing, false
	}
	s.objects[hash] = obj
	return obj, true
}

// Erase removes the object for hash, reporting whether it was present.
func (s *Store) Erase(hash govobject.Hash) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.objects[hash]; !ok {
		return false
	}
	delete(s.objects, hash)
	return true
}

// Size returns the number of objects currently stored.
func (s *Store) Size() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.objects)
}

// AllNewerThan returns every object created at or after since, the
// basis for the additional-relay set (spec §4.J) and for
// Snapshot/SnapshotJSON.
func (s *Store) AllNewerThan(since int64) []*govobject.GovernanceObject {
	s.lock.RLock()
	defer s.lock.RUnlock()

	result := make([]*govobject.GovernanceObject, 0)
	for _, obj := range s.objects {
		if obj.CreationTime.Unix() >= since {
			result = append(result, obj)
		}
	}
	return result
}

// Each calls fn for every stored object while holding the read lock,
// the "locked iteration" spec §4.C requires for maintenance sweeps
// that must see a consistent snapshot of the table.
func (s *Store) Each(fn func(hash govobject.Hash, obj *govobject.GovernanceObject)) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	for hash, obj := range s.objects {
		fn(hash, obj)
	}
}
