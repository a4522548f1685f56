// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manager

import (
	"context"

	"github.com/bitmark-inc/logger"

	"github.com/dashpay/govd/govsync"
)

// syncRunner adapts govsync.Sync.Serve's ctx-cancellation shutdown
// into the background.Processor shutdown-channel convention the rest
// of the manager's long-lived goroutines use.
type syncRunner struct {
	sync *govsync.Sync
	log  *logger.L
}

func (r *syncRunner) Run(args interface{}, shutdown <-chan struct{}) {
	r.log.Info("starting…")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-shutdown
		cancel()
	}()

	if err := r.sync.Serve(ctx); err != nil && ctx.Err() == nil {
		r.log.Errorf("governance sync stopped unexpectedly: %s", err)
	}

	r.log.Info("stopped")
}
