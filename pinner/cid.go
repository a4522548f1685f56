// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pinner

import (
	"strings"

	"github.com/mr-tron/base58"

	"github.com/dashpay/govd/fault"
)

// cidAlphabet is the base58 (bitcoin) alphabet every CIDv0 is encoded
// with; mr-tron/base58 validates against this same table internally,
// but the explicit check here lets ValidateCID reject malformed
// input before paying for a decode.
const cidAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// cidLength and cidPrefix are CIDv0's fixed shape: a 34-byte
// multihash (sha2-256, DAG-PB) base58-encodes to exactly 46
// characters and always starts "Qm". The original implementation
// also carried a legacy fallback check, but that branch's condition
// can never be satisfied by any 46-character "Qm"-prefixed string —
// see DESIGN.md's Open Questions — so it is not reproduced here.
const (
	cidLength = 46
	cidPrefix = "Qm"
)

// ValidateCID applies spec §4.K's strict CIDv0 shape check: exact
// length, exact prefix, and every character drawn from the base58
// alphabet, then confirms it actually decodes.
func ValidateCID(cid string) error {
	if len(cid) != cidLength || !strings.HasPrefix(cid, cidPrefix) {
		return fault.ErrInvalidCID
	}
	for _, c := range cid {
		if !strings.ContainsRune(cidAlphabet, c) {
			return fault.ErrInvalidCID
		}
	}
	if _, err := base58.Decode(cid); err != nil {
		return fault.ErrInvalidCID
	}
	return nil
}

// ExtractCID scans a governance object's payload for the first
// substring that passes ValidateCID — proposals and triggers carry
// their CID embedded in otherwise free-form JSON, so this is a scan
// rather than a fixed-field read.
func ExtractCID(payload []byte) (string, bool) {
	s := string(payload)
	for i := 0; i+cidLength <= len(s); i++ {
		candidate := s[i : i+cidLength]
		if ValidateCID(candidate) == nil {
			return candidate, true
		}
	}
	return "", false
}
