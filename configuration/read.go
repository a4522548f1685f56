// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"github.com/dashpay/govd/fault"
	"github.com/dashpay/govd/util"
)

// ParseConfigurationFile reads, decodes and normalizes the TOML
// configuration at fileName, the same role getConfiguration plays in
// the teacher's command/bitmarkd/configuration.go — absolute paths
// resolved against DataDirectory, directories created if missing.
func ParseConfigurationFile(fileName string) (*Configuration, error) {
	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if err != nil {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(fileName)

	data, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	options := defaultConfiguration()
	if err := toml.Unmarshal(data, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	switch options.DataDirectory {
	case "", "~":
		return nil, fault.ErrRequiredConfigDir
	case ".":
		options.DataDirectory = dataDirectory // same directory as the configuration file
	default:
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); err != nil {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fault.ErrConfigDirPath
	}

	// force all relevant items to be absolute paths
	mustBeAbsolute := []*string{
		&options.PeerKeyFile,
		&options.Persistence.File,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths, i.e. blank or an absolute path
	if options.PidFile != "" {
		options.PidFile = util.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}
	if options.LocalRPC.CertificateFileName != "" {
		options.LocalRPC.CertificateFileName = util.EnsureAbsolute(options.DataDirectory, options.LocalRPC.CertificateFileName)
	}
	if options.LocalRPC.KeyFileName != "" {
		options.LocalRPC.KeyFileName = util.EnsureAbsolute(options.DataDirectory, options.LocalRPC.KeyFileName)
	}

	// fail if this is not a simple file name; then add the
	// directory prefix
	if dir := filepath.Dir(options.Logging.File); dir != "" && dir != "." {
		return nil, fmt.Errorf("logging file: %q is not a plain name", options.Logging.File)
	}
	options.Logging.File = util.EnsureAbsolute(options.Logging.Directory, options.Logging.File)

	if err := os.MkdirAll(options.Logging.Directory, 0700); err != nil {
		return nil, err
	}

	if len(options.Listen) == 0 {
		return nil, fault.ErrNoListenAddrs
	}

	return options, nil
}
