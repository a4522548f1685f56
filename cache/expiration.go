// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import "time"

const reportInterval = 5 * time.Minute

// reporter periodically logs pool occupancy; per-item expiry itself
// is handled by each pool's own go-cache janitor.
type reporter struct{}

func (r *reporter) Run(args interface{}, shutdown <-chan struct{}) {
	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = Pool.String()
		case <-shutdown:
			return
		}
	}
}
