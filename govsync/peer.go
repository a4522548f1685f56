// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package govsync

import (
	"github.com/dashpay/govd/constants"
	"github.com/dashpay/govd/fault"
)

// CheckPeerVersion rejects peers below MinGovernancePeerProtoVersion
// outright (spec §4.G "REJECT(obsolete)"), and reports whether this
// peer's version is new enough to honour a GovSync.Filter.
func CheckPeerVersion(protoVersion uint32) (filterCapable bool, err error) {
	if protoVersion < constants.MinGovernancePeerProtoVersion {
		return false, fault.ErrPeerTooOld
	}
	return protoVersion >= constants.GovernanceFilterProtoVersion, nil
}
