// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package voteindex implements spec §4.D: the three capped vote
// containers the manager consults before accepting, rejecting or
// parking a vote — live, invalid and orphan — built on cappedmap.
package voteindex
