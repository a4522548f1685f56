// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import "github.com/bitmark-inc/logger"

// basic defaults (directories and files are relative to the
// "DataDirectory" from the configuration file).
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file
	defaultPidFile       = "" // no PidFile by default

	defaultPeerKeyFile = "govd.peer.key"

	defaultLogDirectory = "log"
	defaultLogFile      = "govd.log"
	defaultLogCount     = 10          // number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when logfile exceeds this size

	defaultPersistenceFile = "governance.dat"
)

// LoglevelMap holds per-channel log level overrides.
type LoglevelMap map[string]string

var defaultLogLevels = LoglevelMap{
	logger.DefaultTag: "critical",
}

// ContentStoreType is the pinning daemon govd talks to (spec §4.K).
type ContentStoreType struct {
	BaseURL string `toml:"base_url" json:"base_url"`
}

// CoreRPCType names the external blockchain/masternode-list daemon
// govd's MasternodeListProvider and ChainClient adapters connect to
// (spec §1 "Out of scope ... consumed as interfaces" and §6's chain
// client / MN list provider), over the same JSON-RPC-over-TLS
// transport bitmark-cli's rpccalls.Client uses to reach bitmarkd.
type CoreRPCType struct {
	Connect string `toml:"connect" json:"connect"`
}

// PersistenceType names where the manager's serialized snapshot is
// written and read back from (spec §6 "Persistence").
type PersistenceType struct {
	File string `toml:"file" json:"file"`
}

// LocalRPCType configures govd's own control RPC surface: local
// tooling submits objects/votes and looks them up over TLS without
// going through gossipsub. A zero MaximumConnections or empty Listen
// disables it entirely.
type LocalRPCType struct {
	Listen              []string `toml:"listen" json:"listen"`
	MaximumConnections  int      `toml:"maximum_connections" json:"maximum_connections"`
	CertificateFileName string   `toml:"certificate" json:"certificate"`
	KeyFileName         string   `toml:"private_key" json:"private_key"`
}

// Configuration is the top-level TOML document govd is started with.
type Configuration struct {
	DataDirectory string `toml:"data_directory" json:"data_directory"`
	PidFile       string `toml:"pidfile" json:"pidfile"`

	// PeerKeyFile holds the hex-encoded ed25519 private key the
	// gossipsub host uses for its peer identity.
	PeerKeyFile string `toml:"peer_key_file" json:"peer_key_file"`

	// Listen is a list of "host:port" pairs, converted to libp2p
	// multiaddrs by util.IPPortToMultiAddr.
	Listen []string `toml:"listen" json:"listen"`

	// SeedDomain names a DNS TXT domain publishing known governance
	// peer multiaddrs, the bootstrap source govsync.DNSSeeder polls.
	// Empty disables seeding.
	SeedDomain string `toml:"seed_domain" json:"seed_domain"`

	// ZMQPublish, if set, is the ZMQ PUB endpoint ("tcp://*:port")
	// every accepted/republished governance event is broadcast on for
	// external subscribers. Empty disables it.
	ZMQPublish string `toml:"zmq_publish" json:"zmq_publish"`

	ContentStore ContentStoreType `toml:"content_store" json:"content_store"`
	CoreRPC      CoreRPCType      `toml:"core_rpc" json:"core_rpc"`
	LocalRPC     LocalRPCType     `toml:"local_rpc" json:"local_rpc"`
	Persistence  PersistenceType  `toml:"persistence" json:"persistence"`

	// SuperblockCycleSeconds overrides the trigger rate limiter's
	// mainnet 30-day cycle (spec §4.F step 5); zero keeps the
	// built-in default.
	SuperblockCycleSeconds float64 `toml:"superblock_cycle_seconds" json:"superblock_cycle_seconds"`

	Logging logger.Configuration `toml:"logging" json:"logging"`
}

// defaultConfiguration returns the Configuration a TOML document is
// unmarshalled on top of, the same role getConfiguration's literal
// gives the teacher's bitmarkd.Configuration.
func defaultConfiguration() *Configuration {
	return &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       defaultPidFile,
		PeerKeyFile:   defaultPeerKeyFile,

		Persistence: PersistenceType{
			File: defaultPersistenceFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}
}
