// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
data_directory = "."
peer_key_file = "peer.key"
listen = ["0.0.0.0:9650"]

[content_store]
base_url = "http://127.0.0.1:5001"

[persistence]
file = "governance.dat"

[logging]
file = "govd.log"
`

func writeSampleConfig(t *testing.T) string {
	dir, err := ioutil.TempDir("", "govd-config-test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "govd.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte(sampleTOML), 0600))
	return path
}

func TestParseConfigurationFileResolvesAbsolutePaths(t *testing.T) {
	path := writeSampleConfig(t)
	dir := filepath.Dir(path)

	cfg, err := ParseConfigurationFile(path)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDirectory)
	assert.True(t, filepath.IsAbs(cfg.PeerKeyFile))
	assert.True(t, filepath.IsAbs(cfg.Persistence.File))
	assert.True(t, filepath.IsAbs(cfg.Logging.Directory))
	assert.True(t, filepath.IsAbs(cfg.Logging.File))
	assert.Equal(t, "http://127.0.0.1:5001", cfg.ContentStore.BaseURL)
	assert.Equal(t, []string{"0.0.0.0:9650"}, cfg.Listen)
}

func TestParseConfigurationFileRejectsMissingListenAddresses(t *testing.T) {
	dir, err := ioutil.TempDir("", "govd-config-test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "govd.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte(`data_directory = "."`), 0600))

	_, err = ParseConfigurationFile(path)
	assert.Error(t, err)
}

func TestParseConfigurationFileRejectsBlankDataDirectory(t *testing.T) {
	dir, err := ioutil.TempDir("", "govd-config-test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "govd.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte(`listen = ["0.0.0.0:9650"]`), 0600))

	_, err = ParseConfigurationFile(path)
	assert.Error(t, err)
}
