// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package objectstore implements spec §4.C: the hash-keyed table of
// every governance object currently known to the manager, the
// equivalent of the teacher's reservoir item store but keyed by
// content hash rather than pay id.
package objectstore
