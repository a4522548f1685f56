// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pinner implements spec §4.K: extracting and validating an
// IPFS CID from a governance object's payload, and pinning it
// through a local content-store daemon subject to the recursive
// size-limit gate.
package pinner
