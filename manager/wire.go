// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manager

import (
	"time"

	"github.com/dashpay/govd/fault"
	"github.com/dashpay/govd/govobject"
	"github.com/dashpay/govd/util"
)

// field and readField are the same length-prefixed encoding govsync's
// wire messages use (util.ToVarint64-counted byte strings), applied
// here to the object/vote bodies carried inside a GovObjectMsg's or
// GovVoteMsg's Encoded field.
func field(buf []byte, b []byte) []byte {
	buf = append(buf, util.ToVarint64(uint64(len(b)))...)
	return append(buf, b...)
}

func readField(buf []byte) (field []byte, rest []byte, err error) {
	n, used := util.FromVarint64(buf)
	if used == 0 || uint64(len(buf)-used) < n {
		return nil, nil, fault.ErrTruncatedMessage
	}
	start := used
	end := used + int(n)
	return buf[start:end], buf[end:], nil
}

// EncodeObject serializes every wire-relevant field of obj (its
// immutable identity plus the signature it was submitted with) for
// transmission inside a GovObjectMsg. Cache-state fields never cross
// the wire: a peer receiving this always re-derives its own validity
// state rather than trusting the sender's.
func EncodeObject(obj *govobject.GovernanceObject) []byte {
	buf := make([]byte, 0, len(obj.Payload)+len(obj.Signature)+64)
	buf = append(buf, byte(obj.ObjectType))
	buf = field(buf, obj.Payload)
	buf = field(buf, obj.CollateralHash[:])
	buf = field(buf, obj.MasternodeOut.TxHash[:])
	buf = append(buf, util.ToVarint64(uint64(obj.MasternodeOut.Index))...)
	buf = append(buf, util.ToVarint64(uint64(obj.CreationTime.Unix()))...)
	buf = field(buf, obj.Signature)
	return buf
}

// DecodeObject is EncodeObject's inverse, routed through
// govobject.New so the same construction-time validation applies to
// network-sourced objects as to locally-submitted ones.
func DecodeObject(buf []byte) (*govobject.GovernanceObject, error) {
	if len(buf) < 1 {
		return nil, fault.ErrTruncatedMessage
	}
	objType := govobject.ObjectType(buf[0])
	buf = buf[1:]

	payload, buf, err := readField(buf)
	if err != nil {
		return nil, err
	}
	collateral, buf, err := readField(buf)
	if err != nil {
		return nil, err
	}
	if len(collateral) != 32 {
		return nil, fault.ErrTruncatedMessage
	}
	txHash, buf, err := readField(buf)
	if err != nil {
		return nil, err
	}
	if len(txHash) != 32 {
		return nil, fault.ErrTruncatedMessage
	}
	index, used := util.FromVarint64(buf)
	if used == 0 {
		return nil, fault.ErrTruncatedMessage
	}
	buf = buf[used:]
	created, used := util.FromVarint64(buf)
	if used == 0 {
		return nil, fault.ErrTruncatedMessage
	}
	buf = buf[used:]
	sig, _, err := readField(buf)
	if err != nil {
		return nil, err
	}

	var collateralHash [32]byte
	copy(collateralHash[:], collateral)
	var mn govobject.Outpoint
	copy(mn.TxHash[:], txHash)
	mn.Index = uint32(index)

	return govobject.New(objType, payload, mn, collateralHash, time.Unix(int64(created), 0), sig)
}

// EncodeVote and DecodeVote are EncodeObject/DecodeObject's vote
// counterparts, carried inside a GovVoteMsg.
func EncodeVote(v *govobject.GovernanceVote) []byte {
	buf := make([]byte, 0, len(v.Signature)+96)
	buf = field(buf, v.Voter.TxHash[:])
	buf = append(buf, util.ToVarint64(uint64(v.Voter.Index))...)
	buf = append(buf, v.ParentHash[:]...)
	buf = append(buf, byte(v.Signal), byte(v.Outcome))
	buf = append(buf, util.ToVarint64(uint64(v.Timestamp.Unix()))...)
	buf = field(buf, v.Signature)
	return buf
}

func DecodeVote(buf []byte) (*govobject.GovernanceVote, error) {
	txHash, buf, err := readField(buf)
	if err != nil {
		return nil, err
	}
	if len(txHash) != 32 {
		return nil, fault.ErrTruncatedMessage
	}
	index, used := util.FromVarint64(buf)
	if used == 0 {
		return nil, fault.ErrTruncatedMessage
	}
	buf = buf[used:]

	if len(buf) < 34 {
		return nil, fault.ErrTruncatedMessage
	}
	var parent govobject.Hash
	copy(parent[:], buf[:32])
	signal := govobject.Signal(buf[32])
	outcome := govobject.Outcome(buf[33])
	buf = buf[34:]

	ts, used := util.FromVarint64(buf)
	if used == 0 {
		return nil, fault.ErrTruncatedMessage
	}
	buf = buf[used:]
	sig, _, err := readField(buf)
	if err != nil {
		return nil, err
	}

	var voter govobject.Outpoint
	copy(voter.TxHash[:], txHash)
	voter.Index = uint32(index)

	return govobject.NewVote(voter, parent, signal, outcome, time.Unix(int64(ts), 0), sig)
}
