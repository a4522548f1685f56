// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manager

import (
	"github.com/bitmark-inc/logger"

	"github.com/dashpay/govd/govobject"
	"github.com/dashpay/govd/pinner"
)

// notifyBus sits between the ingest pipeline / chain reactor and the
// configured external SignalBus: it adds the one side effect neither
// of those packages knows about (spec §4.K — pin any CID a newly
// accepted object's payload embeds) before forwarding every call
// straight through.
type notifyBus struct {
	bus     SignalBus
	content ContentStore
	log     *logger.L
}

func (n *notifyBus) NotifyGovernanceObject(obj *govobject.GovernanceObject) {
	if cid, ok := pinner.ExtractCID(obj.Payload); ok {
		if err := n.content.Pin(cid); err != nil {
			n.log.Warnf("pin %s for object %s failed: %s", cid, obj.Hash(), err)
		}
	}
	n.bus.NotifyGovernanceObject(obj)
}

func (n *notifyBus) NotifyGovernanceVote(v govobject.GovernanceVote) {
	n.bus.NotifyGovernanceVote(v)
}

func (n *notifyBus) Republish(obj *govobject.GovernanceObject) error {
	return n.bus.Republish(obj)
}

// ForgetRequest implements chainreactor.Relay.ForgetRequest by
// clearing the hash from govsync's own request tracker.
func (n *notifyBus) ForgetRequest(hash string) {
	globalData.sync.Forget(hash)
}
