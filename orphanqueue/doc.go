// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package orphanqueue implements spec §4.E: the orphan-object,
// orphan-vote and postponed-object queues, the per-masternode orphan
// backlog counter, and the additional-relay set, all layered on the
// cache package's expiring pools.
package orphanqueue
