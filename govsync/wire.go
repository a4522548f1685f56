// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package govsync

import (
	"github.com/gogo/protobuf/proto"

	"github.com/dashpay/govd/fault"
	"github.com/dashpay/govd/util"
)

// MessageKind identifies which of the five governance wire messages
// spec §6 names a framed payload carries.
type MessageKind byte

const (
	KindGovSync MessageKind = iota + 1
	KindGovObject
	KindGovVote
	KindInv
	KindSyncStatusCount
)

// field/readField give every message below the same canonical
// length-prefixed framing govobject.hash uses, so wire messages and
// hash preimages share one encoding idiom across the module.
func field(buf []byte, b []byte) []byte {
	buf = append(buf, util.ToVarint64(uint64(len(b)))...)
	return append(buf, b...)
}

func readField(buf []byte) (value []byte, rest []byte, err error) {
	n, used := util.FromVarint64(buf)
	if used == 0 {
		return nil, nil, fault.ErrTruncatedMessage
	}
	buf = buf[used:]
	if uint64(len(buf)) < n {
		return nil, nil, fault.ErrTruncatedMessage
	}
	return buf[:n], buf[n:], nil
}

// GovSync is MNGOVERNANCESYNC: a peer's request to begin a full or
// filtered governance sync.
type GovSync struct {
	ParentHash   []byte // zero-length means "full sync"
	Filter       []byte // serialized bbloom filter, honoured from GovernanceFilterProtoVersion
	ProtoVersion uint32 // sender's governance protocol version, spec §4.G's version gate
}

func (m *GovSync) Reset()         { *m = GovSync{} }
func (m *GovSync) String() string { return "GovSync" }
func (*GovSync) ProtoMessage()    {}

func (m *GovSync) Marshal() ([]byte, error) {
	buf := field(nil, m.ParentHash)
	buf = field(buf, m.Filter)
	buf = append(buf, util.ToVarint64(uint64(m.ProtoVersion))...)
	return buf, nil
}

func (m *GovSync) Unmarshal(data []byte) error {
	parent, rest, err := readField(data)
	if err != nil {
		return err
	}
	filter, rest, err := readField(rest)
	if err != nil {
		return err
	}
	version, _ := util.FromVarint64(rest)
	m.ParentHash = parent
	m.Filter = filter
	m.ProtoVersion = uint32(version)
	return nil
}

// GovObjectMsg is MNGOVERNANCEOBJECT: a full object payload.
type GovObjectMsg struct {
	Encoded []byte // the object, serialized by the caller (govobject has no wire codec of its own)
}

func (m *GovObjectMsg) Reset()         { *m = GovObjectMsg{} }
func (m *GovObjectMsg) String() string { return "GovObjectMsg" }
func (*GovObjectMsg) ProtoMessage()    {}

func (m *GovObjectMsg) Marshal() ([]byte, error) { return field(nil, m.Encoded), nil }

func (m *GovObjectMsg) Unmarshal(data []byte) error {
	encoded, _, err := readField(data)
	if err != nil {
		return err
	}
	m.Encoded = encoded
	return nil
}

// GovVoteMsg is MNGOVERNANCEOBJECTVOTE: a single vote payload.
type GovVoteMsg struct {
	Encoded []byte
}

func (m *GovVoteMsg) Reset()         { *m = GovVoteMsg{} }
func (m *GovVoteMsg) String() string { return "GovVoteMsg" }
func (*GovVoteMsg) ProtoMessage()    {}

func (m *GovVoteMsg) Marshal() ([]byte, error) { return field(nil, m.Encoded), nil }

func (m *GovVoteMsg) Unmarshal(data []byte) error {
	encoded, _, err := readField(data)
	if err != nil {
		return err
	}
	m.Encoded = encoded
	return nil
}

// Inv announces hashes available for pull, tagged with whether each
// one names an object or a vote.
type Inv struct {
	ObjectHashes [][]byte
	VoteHashes   [][]byte
}

func (m *Inv) Reset()         { *m = Inv{} }
func (m *Inv) String() string { return "Inv" }
func (*Inv) ProtoMessage()    {}

func (m *Inv) Marshal() ([]byte, error) {
	buf := util.ToVarint64(uint64(len(m.ObjectHashes)))
	for _, h := range m.ObjectHashes {
		buf = field(buf, h)
	}
	buf = append(buf, util.ToVarint64(uint64(len(m.VoteHashes)))...)
	for _, h := range m.VoteHashes {
		buf = field(buf, h)
	}
	return buf, nil
}

func (m *Inv) Unmarshal(data []byte) error {
	n, used := util.FromVarint64(data)
	if used == 0 {
		return fault.ErrTruncatedMessage
	}
	data = data[used:]
	objects := make([][]byte, 0, n)
	for i := uint64(0); i < n; i++ {
		h, rest, err := readField(data)
		if err != nil {
			return err
		}
		objects = append(objects, h)
		data = rest
	}

	n, used = util.FromVarint64(data)
	if used == 0 {
		return fault.ErrTruncatedMessage
	}
	data = data[used:]
	votes := make([][]byte, 0, n)
	for i := uint64(0); i < n; i++ {
		h, rest, err := readField(data)
		if err != nil {
			return err
		}
		votes = append(votes, h)
		data = rest
	}

	m.ObjectHashes = objects
	m.VoteHashes = votes
	return nil
}

// SyncStatusCount reports the number of objects/votes a peer sent
// during the sync that just completed, letting the requester detect
// a truncated sync.
type SyncStatusCount struct {
	Objects uint64
	Votes   uint64
}

func (m *SyncStatusCount) Reset()         { *m = SyncStatusCount{} }
func (m *SyncStatusCount) String() string { return "SyncStatusCount" }
func (*SyncStatusCount) ProtoMessage()    {}

func (m *SyncStatusCount) Marshal() ([]byte, error) {
	buf := util.ToVarint64(m.Objects)
	return append(buf, util.ToVarint64(m.Votes)...), nil
}

func (m *SyncStatusCount) Unmarshal(data []byte) error {
	objects, used := util.FromVarint64(data)
	if used == 0 {
		return fault.ErrTruncatedMessage
	}
	data = data[used:]
	votes, used := util.FromVarint64(data)
	if used == 0 {
		return fault.ErrTruncatedMessage
	}
	m.Objects = objects
	m.Votes = votes
	return nil
}

var _ proto.Message = (*GovSync)(nil)
var _ proto.Message = (*GovObjectMsg)(nil)
var _ proto.Message = (*GovVoteMsg)(nil)
var _ proto.Message = (*Inv)(nil)
var _ proto.Message = (*SyncStatusCount)(nil)
