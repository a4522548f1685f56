// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := writeSampleConfig(t)

	w, err := NewWatcher(path, logger.New("config-watch-test"))
	require.NoError(t, err)

	shutdown := make(chan struct{})
	var mu sync.Mutex
	var reloaded *Configuration

	var wg sync.WaitGroup
	wg.Add(1)
	once := false
	go w.Watch(shutdown, func(cfg *Configuration) {
		mu.Lock()
		reloaded = cfg
		if !once {
			once = true
			wg.Done()
		}
		mu.Unlock()
	})

	time.Sleep(200 * time.Millisecond)

	rewritten := sampleTOML + "\n# touch\n"
	require.NoError(t, ioutil.WriteFile(path, []byte(rewritten), 0600))

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	close(shutdown)

	mu.Lock()
	defer mu.Unlock()
	require.NotNil(t, reloaded)
}

func TestNewWatcherRejectsMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(os.TempDir(), "govd-does-not-exist", "govd.toml"), logger.New("config-watch-test"))
	require.Error(t, err)
}
