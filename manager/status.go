// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manager

import (
	"encoding/json"
	"fmt"

	"github.com/dashpay/govd/cache"
	"github.com/dashpay/govd/govobject"
)

// Status is spec §6's introspection snapshot: counts per object
// type, plus the erased and vote totals, the governance analogue of
// the teacher's own peer/rpc "info" summaries.
type Status struct {
	Proposals int `json:"proposals"`
	Records   int `json:"records"`
	Triggers  int `json:"triggers"`
	Other     int `json:"other"`

	Votes   int `json:"votes"`
	Orphans int `json:"orphans"`
	Erased  int `json:"erased"`
	Peers   int `json:"peers"`
}

// ToJSON builds the Status snapshot under cs and marshals it.
func ToJSON() ([]byte, error) {
	return json.Marshal(snapshotStatus())
}

// ToString is ToJSON's human-readable counterpart.
func ToString() string {
	s := snapshotStatus()
	return fmt.Sprintf(
		"objects: proposals=%d records=%d triggers=%d other=%d votes=%d orphans=%d erased=%d peers=%d, pools: %s",
		s.Proposals, s.Records, s.Triggers, s.Other, s.Votes, s.Orphans, s.Erased, s.Peers, cache.Pool,
	)
}

func snapshotStatus() Status {
	globalData.Lock()
	defer globalData.Unlock()

	var s Status
	globalData.pipeline.Store.Each(func(_ govobject.Hash, obj *govobject.GovernanceObject) {
		switch obj.ObjectType {
		case govobject.Proposal:
			s.Proposals++
		case govobject.Record:
			s.Records++
		case govobject.Trigger:
			s.Triggers++
		default:
			s.Other++
		}
	})
	s.Votes = globalData.pipeline.Votes.LiveSize()
	s.Orphans = globalData.pipeline.Votes.OrphanSize()
	s.Erased = cache.Pool.Erased.Size()
	if globalData.cfg.Peers != nil {
		s.Peers = len(globalData.cfg.Peers.ConnectedPeers())
	} else {
		s.Peers = len(globalData.host.Peers())
	}
	return s
}
