// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package govobject

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/dashpay/govd/util"
)

// Hash is a sha3-256 digest identifying an object or a vote, the
// value every index (objectstore, voteindex) and wire message (§6)
// keys on.
type Hash [32]byte

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

func (h Hash) IsZero() bool { return h == Hash{} }

// HashFromHex parses the hex form Hash.String produces.
func HashFromHex(s string) (Hash, error) {
	var h Hash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, err
	}
	if len(b) != len(h) {
		return h, hex.ErrLength
	}
	copy(h[:], b)
	return h, nil
}

// field writes a length-prefixed field into buf, the length encoded
// with the same Varint64 the wire messages use (util.ToVarint64),
// so the serialization below has no ambiguity at field boundaries.
func field(buf []byte, b []byte) []byte {
	buf = append(buf, util.ToVarint64(uint64(len(b)))...)
	return append(buf, b...)
}

// serializeForHash canonically encodes the immutable fields of o:
// payload, collateral hash, submitting outpoint, creation time and
// signature, in that fixed order, each length-prefixed. This is the
// byte string spec §3's "hash = H(payload ‖ collateral ‖ outpoint ‖
// creation_time ‖ signature)" names.
func (o *GovernanceObject) serializeForHash() []byte {
	buf := make([]byte, 0, len(o.Payload)+len(o.Signature)+64)
	buf = append(buf, byte(o.ObjectType))
	buf = field(buf, o.Payload)
	buf = field(buf, o.CollateralHash[:])
	buf = field(buf, []byte(o.MasternodeOut.String()))
	buf = append(buf, util.ToVarint64(uint64(o.CreationTime.Unix()))...)
	buf = field(buf, o.Signature)
	return buf
}

// Hash returns the object's canonical identity, recomputed from its
// immutable fields rather than cached, so mutating the cache-state
// fields never changes it.
func (o *GovernanceObject) Hash() Hash {
	return sha3.Sum256(o.serializeForHash())
}

// SignaturePreimage is what MasternodeOut's key signs: every
// immutable field except the signature itself, so verification never
// has to peel the signature back out of serializeForHash's output.
func (o *GovernanceObject) SignaturePreimage() []byte {
	buf := make([]byte, 0, len(o.Payload)+64)
	buf = append(buf, byte(o.ObjectType))
	buf = field(buf, o.Payload)
	buf = field(buf, o.CollateralHash[:])
	buf = field(buf, []byte(o.MasternodeOut.String()))
	buf = append(buf, util.ToVarint64(uint64(o.CreationTime.Unix()))...)
	return buf
}

// serializeForHash canonically encodes a vote's immutable fields:
// voter outpoint, parent object hash, signal, outcome, timestamp and
// signature, the byte string spec §3's "hash = H(outpoint ‖ parent ‖
// signal ‖ outcome ‖ timestamp ‖ signature)" names.
func (v *GovernanceVote) serializeForHash() []byte {
	buf := make([]byte, 0, len(v.Signature)+64)
	buf = field(buf, []byte(v.Voter.String()))
	buf = append(buf, v.ParentHash[:]...)
	buf = append(buf, byte(v.Signal), byte(v.Outcome))
	buf = append(buf, util.ToVarint64(uint64(v.Timestamp.Unix()))...)
	buf = field(buf, v.Signature)
	return buf
}

func (v *GovernanceVote) Hash() Hash {
	return sha3.Sum256(v.serializeForHash())
}

// SignaturePreimage is what Voter's key signs: every immutable field
// except the signature itself.
func (v *GovernanceVote) SignaturePreimage() []byte {
	buf := make([]byte, 0, 64)
	buf = field(buf, []byte(v.Voter.String()))
	buf = append(buf, v.ParentHash[:]...)
	buf = append(buf, byte(v.Signal), byte(v.Outcome))
	buf = append(buf, util.ToVarint64(uint64(v.Timestamp.Unix()))...)
	return buf
}
