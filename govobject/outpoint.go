// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package govobject

import "fmt"

// Outpoint identifies a masternode by its collateral transaction
// output, the same identity the MasternodeListProvider external
// interface (spec §6) keys its entries on.
type Outpoint struct {
	TxHash [32]byte
	Index  uint32
}

func (o Outpoint) String() string {
	return fmt.Sprintf("%x-%d", o.TxHash, o.Index)
}

// Key returns the string form used as a map key throughout the
// manager (masternode rate records, orphan counters, ...).
func (o Outpoint) Key() string { return o.String() }
