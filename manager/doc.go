// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package manager wires every governance component — objectstore,
// voteindex, orphanqueue, ratelimiter, ingest, govsync, maintenance,
// chainreactor, pinner — behind a single entry point guarded by one
// non-recursive critical section, the role bitmarkd's reservoir
// package plays for the transaction pool.
package manager
