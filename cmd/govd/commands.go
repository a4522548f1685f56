// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/dashpay/govd/util"
)

// peerKeyPassphraseFlag is the "--passphrase=..." form accepted after
// generate-identity's directory argument; GOVD_PEER_KEY_PASSPHRASE at
// daemon startup must match whatever this produced.
const peerKeyPassphraseFlag = "--passphrase="

const peerPrivateKeyFilename = "govd.peer.key"

// getFilenameWithDirectory mirrors the teacher's own helper: the
// first extra argument, if any, overrides the default filename, so
// `govd generate-identity /some/dir` writes there instead of the
// working directory.
func getFilenameWithDirectory(arguments []string, defaultFilename string) string {
	if len(arguments) == 0 {
		return defaultFilename
	}
	return filepath.Join(arguments[0], defaultFilename)
}

// processSetupCommand handles commands that need neither the
// configuration file nor a running manager — version/help output
// and peer-identity key generation (spec §6's PeerKeyHex, the key
// govsync's host signs its libp2p identity with). It returns true if
// it fully handled arguments and the caller should exit.
func processSetupCommand(program string, arguments []string) bool {
	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	case "generate-identity", "gen-peer-identity":
		passphrase := ""
		directoryArgs := arguments[:0]
		for _, a := range arguments {
			if len(a) > len(peerKeyPassphraseFlag) && a[:len(peerKeyPassphraseFlag)] == peerKeyPassphraseFlag {
				passphrase = a[len(peerKeyPassphraseFlag):]
				continue
			}
			directoryArgs = append(directoryArgs, a)
		}

		keyFilename := getFilenameWithDirectory(directoryArgs, peerPrivateKeyFilename)
		if util.EnsureFileExists(keyFilename) {
			fmt.Printf("%s: peer key already exists: %q\n", program, keyFilename)
			exitwithstatus.Exit(1)
		}

		key, err := util.MakeEd25519PeerKey()
		if err != nil {
			fmt.Printf("%s: generate peer key error: %s\n", program, err)
			exitwithstatus.Exit(1)
		}

		contents := key
		if passphrase != "" {
			contents, err = encryptPeerKey(key, passphrase)
			if err != nil {
				fmt.Printf("%s: encrypt peer key error: %s\n", program, err)
				exitwithstatus.Exit(1)
			}
		}

		if err := ioutil.WriteFile(keyFilename, []byte(contents), 0600); err != nil {
			os.Remove(keyFilename)
			fmt.Printf("%s: write peer key %q error: %s\n", program, keyFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated peer identity: %q\n", keyFilename)
		return true

	case "help", "h", "?":
		fmt.Printf("usage: %s --config-file=<file>\n", program)
		fmt.Printf("       %s generate-identity [directory]\n", program)
		fmt.Printf("       %s version\n", program)
		return true

	default:
		return false
	}
}
