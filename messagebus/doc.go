// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus queues governance events — accepted objects,
// accepted votes, re-announced objects — for anything outside the
// manager's critical section that wants to react to them (an RPC
// notification stream, a ZMQ publisher) without blocking the
// acceptance pipeline that raised them.
package messagebus
