// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration reads govd's TOML configuration file into a
// Configuration struct and, on request, watches it for changes so a
// running process can pick up tunables (cache sizes, filter false
// positive rate, rate-limiter toggles) without a restart.
package configuration
