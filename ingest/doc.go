// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ingest implements spec §4.H: the handle_object/add_object
// and handle_vote pipelines that turn a freshly received or locally
// submitted object/vote into object-store, vote-index and
// orphan-queue state, consulting the rate limiter and the external
// masternode/signature providers along the way.
package ingest
