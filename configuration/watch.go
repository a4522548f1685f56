// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"
)

// Watcher reloads a configuration file on every write/rename and
// hands the freshly parsed Configuration to onChange, the same
// write-event-triggers-reload shape as the teacher's recorderd
// FileWatcherData, generalized from a bare change signal to a
// decoded Configuration.
type Watcher struct {
	fileName string
	watcher  *fsnotify.Watcher
	log      *logger.L
}

// NewWatcher opens an fsnotify watch on fileName's containing
// directory — watching the directory rather than the file itself
// survives editors that replace the file via rename-over rather than
// in-place write.
func NewWatcher(fileName string, log *logger.L) (*Watcher, error) {
	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(fileName)); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{fileName: fileName, watcher: fsw, log: log}, nil
}

// Watch runs until shutdown closes, re-parsing the configuration file
// and invoking onChange whenever fsnotify reports a write or a
// rename-over targeting it. Parse errors are logged and skipped —
// the previous, already-running configuration stays in effect rather
// than aborting the process over a transient half-written file.
func (w *Watcher) Watch(shutdown <-chan struct{}, onChange func(*Configuration)) {
	for {
		select {
		case <-shutdown:
			w.watcher.Close()
			return
		case event := <-w.watcher.Events:
			if filepath.Clean(event.Name) != w.fileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := ParseConfigurationFile(w.fileName)
			if err != nil {
				w.log.Errorf("reload %s: %s", w.fileName, err)
				continue
			}
			w.log.Info("configuration reloaded")
			onChange(cfg)
		case err := <-w.watcher.Errors:
			w.log.Errorf("watcher error: %s", err)
		}
	}
}
