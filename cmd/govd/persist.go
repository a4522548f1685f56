// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
)

// filePersister implements manager.Persister against a single flat
// file, the same on-disk backup shape the teacher's
// reservoir.ReservoirStore.Backup/Restore write and read, scaled down
// from a directory of per-pool JSON files to the one snapshot
// manager.Serialize already produces.
type filePersister struct {
	path string
}

func (p filePersister) Save(data []byte) error {
	tmp := p.path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}

func (p filePersister) Load() ([]byte, error) {
	return ioutil.ReadFile(p.path)
}
