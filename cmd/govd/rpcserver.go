// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"encoding/hex"
	"io/ioutil"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/listener"
	"github.com/bitmark-inc/logger"

	"github.com/dashpay/govd/govobject"
	"github.com/dashpay/govd/manager"
)

// localRPC is govd's own control surface — the counterpart of
// coreClient's outbound connection to the external chain daemon. It
// lets local tooling (a CLI, a wallet, a test harness) submit
// governance objects/votes and look objects up without going through
// gossipsub, the same local-JSON-RPC-over-TLS role bitmarkd's own
// rpc/listeners.rpcListener plays for its block/transaction RPCs:
// fixed connection cap via a listener.Limiter, one goroutine per
// accepted connection running net/rpc's JSON codec.
type localRPC struct {
	log      *logger.L
	ml       *listener.MultiListener
	registry *rpc.Server
}

// rpcServerConfig names the TLS listen addresses and certificate
// pair govd's control RPC server binds to, mirroring CoreRPCType's
// shape for the daemon's outbound side.
type rpcServerConfig struct {
	Listen              []string `toml:"listen" json:"listen"`
	MaximumConnections  int      `toml:"maximum_connections" json:"maximum_connections"`
	CertificateFileName string   `toml:"certificate" json:"certificate"`
	KeyFileName         string   `toml:"private_key" json:"private_key"`
}

// governanceRPC is the net/rpc receiver exposing the manager's three
// entry points: Submit for objects, SubmitVote for votes, Find for
// lookup. Argument/reply shapes follow coreClient's outpointArg
// hex-encoding convention so the same client idiom works both
// directions.
type governanceRPC struct {
	log *logger.L
}

type submitObjectArg struct {
	Encoded []byte `json:"encoded"`
}

// SubmitObject decodes a wire-encoded governance object the same way
// govsync does and hands it to manager.SubmitObject, so a local
// submission takes exactly the add_object path spec §4.H describes
// for network-received objects, entering at the same admission gate.
func (g *governanceRPC) SubmitObject(arg submitObjectArg, reply *bool) error {
	obj, err := manager.DecodeObject(arg.Encoded)
	if err != nil {
		g.log.Warnf("rpc SubmitObject decode: %s", err)
		return err
	}
	if err := manager.SubmitObject(obj); err != nil {
		g.log.Warnf("rpc SubmitObject: %s", err)
		return err
	}
	*reply = true
	return nil
}

type submitVoteArg struct {
	Encoded []byte `json:"encoded"`
}

// SubmitVote is SubmitObject's vote counterpart.
func (g *governanceRPC) SubmitVote(arg submitVoteArg, reply *bool) error {
	v, err := manager.DecodeVote(arg.Encoded)
	if err != nil {
		g.log.Warnf("rpc SubmitVote decode: %s", err)
		return err
	}
	if err := manager.SubmitVote(*v); err != nil {
		g.log.Warnf("rpc SubmitVote: %s", err)
		return err
	}
	*reply = true
	return nil
}

type findArg struct {
	Hash string `json:"hash"`
}

type findReply struct {
	Found   bool   `json:"found"`
	Encoded []byte `json:"encoded"`
}

// Find looks an object up by its hex-encoded hash.
func (g *governanceRPC) Find(arg findArg, reply *findReply) error {
	raw, err := hex.DecodeString(arg.Hash)
	if err != nil || len(raw) != len(govobject.Hash{}) {
		return err
	}
	var h govobject.Hash
	copy(h[:], raw)

	obj := manager.Find(h)
	if obj == nil {
		reply.Found = false
		return nil
	}
	reply.Found = true
	reply.Encoded = manager.EncodeObject(obj)
	return nil
}

// rpcCallback is the listener.Callback bitmarkd's own stub-server.go
// shows: one connection, one codec, serve until the peer disconnects.
func (l *localRPC) rpcCallback(conn *listener.ClientConnection, argument interface{}) {
	codec := jsonrpc.NewServerCodec(conn)
	defer codec.Close()
	l.registry.ServeCodec(codec)
}

// ensureCertificate generates a self-signed certificate pair the
// first time the control RPC server is configured, the same
// makeSelfSignedCertificate flow certificates.go runs for bitmarkd's
// own RPC/peer listeners — local tooling only needs the connection
// encrypted, not externally validated.
func ensureCertificate(cfg rpcServerConfig, name string) error {
	if _, err := os.Stat(cfg.CertificateFileName); err == nil {
		return nil
	}
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(name, validUntil, false, []string{"localhost"})
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(cfg.CertificateFileName, cert, 0666); err != nil {
		return err
	}
	return ioutil.WriteFile(cfg.KeyFileName, key, 0600)
}

// startLocalRPC brings up govd's control RPC surface: load (or
// generate) the TLS keypair, cap concurrent connections with a
// listener.Limiter, and start a listener.MultiListener across every
// configured address, the same sequence verifyListen/NewMultiListener
// run in bitmarkd.go.
func startLocalRPC(cfg rpcServerConfig, log *logger.L) (*localRPC, error) {
	if len(cfg.Listen) == 0 || cfg.MaximumConnections <= 0 {
		return nil, nil
	}

	if err := ensureCertificate(cfg, "govd local control RPC"); err != nil {
		return nil, err
	}

	keyPair, err := tls.LoadX509KeyPair(cfg.CertificateFileName, cfg.KeyFileName)
	if err != nil {
		return nil, err
	}
	tlsConfig := &tls.Config{Certificates: []tls.Certificate{keyPair}}

	registry := rpc.NewServer()
	if err := registry.RegisterName("Governance", &governanceRPC{log: log}); err != nil {
		return nil, err
	}

	l := &localRPC{log: log, registry: registry}
	limiter := listener.NewLimiter(cfg.MaximumConnections)
	ml, err := listener.NewMultiListener("govd-rpc", cfg.Listen, tlsConfig, limiter, l.rpcCallback)
	if err != nil {
		return nil, err
	}
	l.ml = ml
	l.ml.Start(nil)
	log.Infof("control RPC listening on %v", cfg.Listen)
	return l, nil
}

func (l *localRPC) stop() {
	if l == nil || l.ml == nil {
		return
	}
	l.ml.Stop()
}
