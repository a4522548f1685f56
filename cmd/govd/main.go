// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/dashpay/govd/configuration"
	"github.com/dashpay/govd/manager"
	"github.com/dashpay/govd/messagebus"
	"github.com/dashpay/govd/pinner"
	"github.com/dashpay/govd/util"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if err != nil {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}
	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if len(options["config-file"]) != 1 {
		exitwithstatus.Message("%s: exactly one --config-file option is required, %d were given", program, len(options["config-file"]))
	}

	cfg, err := configuration.ParseConfigurationFile(options["config-file"][0])
	if err != nil {
		exitwithstatus.Message("%s: failed to read configuration from: %q error: %s", program, options["config-file"][0], err)
	}

	if err := logger.Initialise(cfg.Logging); err != nil {
		exitwithstatus.Message("%s: logger setup failed: %s", program, err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)

	if cfg.PidFile != "" {
		lockFile, err := os.OpenFile(cfg.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file %q creation failed: %s", program, cfg.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(cfg.PidFile)
	}

	peerKeyBytes, err := ioutil.ReadFile(cfg.PeerKeyFile)
	if err != nil {
		log.Criticalf("reading peer key file %q: %s (run %q first)", cfg.PeerKeyFile, err, program+" generate-identity")
		exitwithstatus.Message("peer key missing: %s", err)
	}
	peerKeyHex := strings.TrimSpace(string(peerKeyBytes))

	if passphrase := os.Getenv("GOVD_PEER_KEY_PASSPHRASE"); passphrase != "" {
		decoded, err := decryptPeerKey(peerKeyHex, passphrase)
		if err != nil {
			log.Criticalf("decrypting peer key file %q: %s", cfg.PeerKeyFile, err)
			exitwithstatus.Message("peer key decrypt error: %s", err)
		}
		peerKeyHex = decoded
	}

	if cfg.CoreRPC.Connect == "" {
		exitwithstatus.Message("%s: configuration is missing [core_rpc] connect", program)
	}
	core, err := dialCore(cfg.CoreRPC.Connect, logger.New("core"))
	if err != nil {
		log.Criticalf("dialling core RPC at %q: %s", cfg.CoreRPC.Connect, err)
		exitwithstatus.Message("core RPC dial error: %s", err)
	}
	defer core.Close()

	mgrCfg := manager.Config{
		Masternodes:            core,
		Chain:                  core,
		Content:                pinner.NewClient(cfg.ContentStore.BaseURL),
		Bus:                    messagebus.Governance,
		Persist:                filePersister{path: cfg.Persistence.File},
		ListenAddrs:            util.IPPortToMultiAddr(cfg.Listen),
		PeerKeyHex:             peerKeyHex,
		SeedDomain:             cfg.SeedDomain,
		SuperblockCycleSeconds: cfg.SuperblockCycleSeconds,
	}

	log.Info("initialise governance manager")
	if err := manager.Initialise(mgrCfg); err != nil {
		log.Criticalf("manager initialise error: %s", err)
		exitwithstatus.Message("manager initialise error: %s", err)
	}
	defer manager.Finalise()

	if err := manager.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("governance snapshot reload failed: %s", err)
	}
	defer func() {
		if err := manager.Save(); err != nil {
			log.Errorf("governance snapshot save failed: %s", err)
		}
	}()

	rpcCfg := rpcServerConfig{
		Listen:              cfg.LocalRPC.Listen,
		MaximumConnections:  cfg.LocalRPC.MaximumConnections,
		CertificateFileName: cfg.LocalRPC.CertificateFileName,
		KeyFileName:         cfg.LocalRPC.KeyFileName,
	}
	localRPCServer, err := startLocalRPC(rpcCfg, logger.New("rpc"))
	if err != nil {
		log.Criticalf("control RPC setup failed: %s", err)
		exitwithstatus.Message("control RPC setup error: %s", err)
	}
	defer localRPCServer.stop()

	if pub, err := newZMQPublisher(cfg.ZMQPublish, logger.New("zmq")); err != nil {
		log.Criticalf("zmq publisher setup failed: %s", err)
		exitwithstatus.Message("zmq publisher setup error: %s", err)
	} else if pub != nil {
		shutdownZMQ := make(chan struct{})
		defer close(shutdownZMQ)
		go pub.Run(nil, shutdownZMQ)
	} else {
		go drainSignalBus(log)
	}

	if len(options["quiet"]) == 0 {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if len(options["quiet"]) == 0 {
		fmt.Printf("\nreceived signal: %v\nshutting down…\n", sig)
	}
	log.Info("shutting down…")
}

// drainSignalBus logs every governance event messagebus.Governance
// queues, standing in for the RPC/ZMQ publish surface spec §1 places
// out of scope — a real deployment wires this to one instead.
func drainSignalBus(log *logger.L) {
	for msg := range messagebus.Chan() {
		log.Debugf("governance event: %s", msg.Kind)
	}
}
