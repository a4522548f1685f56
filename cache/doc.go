// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cache maintains the expiring, in-memory pools that back
// the governance manager's orphan, postponed and erased bookkeeping
// (spec §3 OrphanObjectEntry / OrphanVoteEntry / ErasedEntry).
//
//  Pool            Key                 Value             Expiry
//  |___ Orphans     object hash         orphanObject      GOVERNANCE_ORPHAN_EXPIRATION_TIME
//  |___ OrphanVotes parent object hash  orphanVote (many) per-entry, cleaned by maintenance
//  |___ Postponed   object hash         object            none (explicit removal only)
//  |___ Erased      object hash         erase-until time  per-entry, possibly unbounded
//
// Each pool is a github.com/patrickmn/go-cache instance so expired
// entries are reaped by its own janitor instead of a hand-rolled
// sweep, while still exposing the same Put/Get/Delete/Items/Size
// surface the rest of the manager expects.
package cache
