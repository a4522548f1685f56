// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package govsync

import (
	"context"
	"encoding/hex"

	"github.com/dashpay/govd/constants"
	"github.com/dashpay/govd/govobject"
)

// PullVotes asks up to MainnetVoteFanout distinct peers (tracked via
// the shared RequestTracker's per-hash window) for each vote hash
// announced in an Inv message that this node doesn't already hold,
// spec §4.G's "vote pull" fanout.
func (s *Sync) PullVotes(ctx context.Context, peers []string, voteHashes [][]byte) error {
	for _, raw := range voteHashes {
		hash, err := govobject.HashFromHex(hex.EncodeToString(raw))
		if err != nil || s.backend.HasVote(hash) {
			continue
		}

		asked := 0
		for _, peer := range peers {
			if asked >= constants.MainnetVoteFanout {
				break
			}
			if s.tracker.ShouldAsk(hash.String(), peer) != nil {
				continue
			}
			req := &GovSync{ParentHash: raw, ProtoVersion: constants.LocalGovernanceProtoVersion}
			if err := s.host.Publish(ctx, envelope(KindGovSync, mustMarshal(req))); err != nil {
				return err
			}
			asked++
		}
	}
	return nil
}
