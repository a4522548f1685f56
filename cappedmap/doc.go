// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cappedmap provides the two capped, insertion-ordered
// associative containers spec §4.B describes as the persistence
// substrate for the Vote Index (§4.D): a single-valued Map backed by
// github.com/hashicorp/golang-lru, and a many-valued Multimap adapted
// from the teacher's limitedset.LimitedSet ring for the Orphan-Vote
// multimap. Both evict the oldest-inserted key once full; neither
// ever grows past the capacity it was constructed with.
package cappedmap
