// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manager

import (
	"github.com/dashpay/govd/govobject"
)

// syncBackend implements govsync.Backend against the manager's own
// store and index, taking cs for every call the same way every other
// entry point into the manager does.
type syncBackend struct{}

func (syncBackend) EncodeObject(hash govobject.Hash) ([]byte, bool) {
	globalData.Lock()
	defer globalData.Unlock()

	obj := globalData.pipeline.Store.Find(hash)
	if obj == nil {
		return nil, false
	}
	return EncodeObject(obj), true
}

func (syncBackend) EncodeVote(hash govobject.Hash) ([]byte, bool) {
	globalData.Lock()
	defer globalData.Unlock()

	v, ok := globalData.pipeline.Votes.Live(hash)
	if !ok {
		return nil, false
	}
	return EncodeVote(&v), true
}

func (syncBackend) DecodeObjectHash(encoded []byte) (govobject.Hash, error) {
	obj, err := DecodeObject(encoded)
	if err != nil {
		return govobject.Hash{}, err
	}
	return obj.Hash(), nil
}

func (syncBackend) DecodeVoteHash(encoded []byte) (govobject.Hash, error) {
	v, err := DecodeVote(encoded)
	if err != nil {
		return govobject.Hash{}, err
	}
	return v.Hash(), nil
}

func (syncBackend) IngestObject(encoded []byte) (govobject.Hash, error) {
	obj, err := DecodeObject(encoded)
	if err != nil {
		return govobject.Hash{}, err
	}

	globalData.Lock()
	defer globalData.Unlock()

	if err := globalData.pipeline.HandleObject(obj); err != nil {
		return obj.Hash(), err
	}
	return obj.Hash(), nil
}

func (syncBackend) IngestVote(encoded []byte) (govobject.Hash, error) {
	v, err := DecodeVote(encoded)
	if err != nil {
		return govobject.Hash{}, err
	}

	globalData.Lock()
	defer globalData.Unlock()

	if err := globalData.pipeline.HandleVote(*v); err != nil {
		return v.Hash(), err
	}
	return v.Hash(), nil
}

func (syncBackend) ObjectHashesNewerThan(since int64) []govobject.Hash {
	globalData.Lock()
	defer globalData.Unlock()

	objs := globalData.pipeline.Store.AllNewerThan(since)
	hashes := make([]govobject.Hash, 0, len(objs))
	for _, obj := range objs {
		hashes = append(hashes, obj.Hash())
	}
	return hashes
}

func (syncBackend) VoteHashesForObject(parent govobject.Hash) []govobject.Hash {
	globalData.Lock()
	defer globalData.Unlock()

	obj := globalData.pipeline.Store.Find(parent)
	if obj == nil {
		return nil
	}
	hashes := make([]govobject.Hash, 0, obj.VoteFile.Count())
	for _, v := range obj.VoteFile.Votes {
		hashes = append(hashes, v.Hash())
	}
	return hashes
}

func (syncBackend) HasObject(hash govobject.Hash) bool {
	globalData.Lock()
	defer globalData.Unlock()
	return globalData.pipeline.Store.Find(hash) != nil
}

func (syncBackend) HasVote(hash govobject.Hash) bool {
	globalData.Lock()
	defer globalData.Unlock()
	return globalData.pipeline.Votes.IsLive(hash) || globalData.pipeline.Votes.IsInvalid(hash)
}

// Ban forwards to the manager's own ban tracker, outside cs: a ban is
// a policy decision about the peer connection itself, not a mutation
// of any governance store (see ban.go).
func (syncBackend) Ban(peer string, score int) {
	globalData.bans.add(peer, score)
}
