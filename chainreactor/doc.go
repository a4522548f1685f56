// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainreactor implements spec §4.J: the chain-tip handler
// that invalidates cached key-dependent validity, retries postponed
// objects, re-announces the additional-relay set, and hands off
// trigger execution once a superblock height is reached.
package chainreactor
