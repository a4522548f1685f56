// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimiter implements spec §4.F: the per-masternode
// trigger submission rate check layered on ratebuffer, including the
// two-phase bypass a pending signature verification is allowed and
// the scoped disable used while replaying a local backup.
package ratelimiter
