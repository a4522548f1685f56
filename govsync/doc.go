// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package govsync implements spec §4.G: the governance gossip
// overlay — wire messages, the libp2p/gossipsub transport, peer
// protocol-version gating, full and single-object sync, and the
// bloom-filtered vote pull fanout — grounded on the teacher's p2p
// package but built around the governance message set instead of
// the blockchain multicast one.
package govsync
