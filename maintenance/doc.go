// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package maintenance implements spec §4.I: the periodic sweep that
// re-checks orphans, expires aged objects and votes, and rebuilds
// the masternode rate-limiter state, running as a background.Processor
// the way the teacher's reservoir expiry loop does.
package maintenance
