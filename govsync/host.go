// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package govsync

import (
	"context"
	"fmt"

	libp2p "github.com/libp2p/go-libp2p"
	connmgr "github.com/libp2p/go-libp2p-connmgr"
	"github.com/libp2p/go-libp2p-core/crypto"
	"github.com/libp2p/go-libp2p-core/host"
	"github.com/libp2p/go-libp2p-core/peer"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	tls "github.com/libp2p/go-libp2p-tls"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/bitmark-inc/logger"

	"github.com/dashpay/govd/util"
)

// governanceTopic is the single gossipsub topic every governance
// object/vote/inv message is published on, analogous to the
// teacher's blockchain multicast topic.
const governanceTopic = "dash-governance/1"

// Host wraps the libp2p node the governance overlay runs over:
// gossipsub publish/subscribe on governanceTopic, bounded by a
// connection manager the way the teacher bounds its own multicast
// mesh.
type Host struct {
	host  host.Host
	topic *pubsub.Topic
	sub   *pubsub.Subscription
	log   *logger.L
}

// NewHost brings up a libp2p host listening on listenAddrs using
// privKey for its peer identity, joins governanceTopic, and returns
// the ready-to-use Host.
func NewHost(ctx context.Context, listenAddrs []ma.Multiaddr, privKey crypto.PrivKey, log *logger.L) (*Host, error) {
	cm := connmgr.NewConnManager(64, 256, 0)

	h, err := libp2p.New(ctx,
		libp2p.Identity(privKey),
		libp2p.Security(tls.ID, tls.New),
		libp2p.ListenAddrs(listenAddrs...),
		libp2p.ConnectionManager(cm),
	)
	if err != nil {
		return nil, err
	}

	ps, err := pubsub.NewGossipSub(ctx, h)
	if err != nil {
		return nil, err
	}

	topic, err := ps.Join(governanceTopic)
	if err != nil {
		return nil, err
	}
	sub, err := topic.Subscribe()
	if err != nil {
		return nil, err
	}

	for _, a := range h.Addrs() {
		log.Infof("governance host listening on %s/p2p/%s", a, h.ID())
	}

	return &Host{host: h, topic: topic, sub: sub, log: log}, nil
}

func (n *Host) ID() string { return n.host.ID().String() }

// Peers lists every peer currently in this host's gossipsub mesh, the
// manager's realization of spec §6's "connection manager" view —
// owned here rather than taken as an external dependency, since the
// libp2p host this package already builds is that connection manager.
func (n *Host) Peers() []string {
	ids := n.host.Network().Peers()
	peers := make([]string, len(ids))
	for i, id := range ids {
		peers[i] = id.String()
	}
	return peers
}

// ListenAddrs returns the multiaddrs this host is actually bound to.
func (n *Host) ListenAddrs() []ma.Multiaddr {
	return n.host.Addrs()
}

// Publish broadcasts an already-framed wire message to every peer in
// the gossipsub mesh.
func (n *Host) Publish(ctx context.Context, payload []byte) error {
	return n.topic.Publish(ctx, payload)
}

// Next blocks until the next gossipsub message arrives, skipping
// messages this host itself published.
func (n *Host) Next(ctx context.Context) (peer string, payload []byte, err error) {
	for {
		msg, err := n.sub.Next(ctx)
		if err != nil {
			return "", nil, err
		}
		if msg.ReceivedFrom == n.host.ID() {
			continue
		}
		return msg.ReceivedFrom.String(), msg.Data, nil
	}
}

// Connect dials addr (a full "/ip4/.../p2p/<id>" multiaddr) and adds
// it to this host's peerstore, the counterpart of Disconnect used by
// the DNS seeder to turn a discovered address into an active peer.
func (n *Host) Connect(ctx context.Context, addr ma.Multiaddr) error {
	info, err := peer.AddrInfoFromP2pAddr(addr)
	if err != nil {
		return err
	}
	return n.host.Connect(ctx, *info)
}

// Disconnect closes every connection this host holds to peerIDStr, a
// connection manager's response to a peer crossing its ban threshold
// (spec §6's ban(peer_id, score)).
func (n *Host) Disconnect(peerIDStr string) error {
	id, err := peer.Decode(peerIDStr)
	if err != nil {
		return err
	}
	return n.host.Network().ClosePeer(id)
}

func (n *Host) Close() error {
	n.sub.Cancel()
	return n.host.Close()
}

// DecodePeerKey parses the hex-encoded ed25519 private key a govd
// configuration file carries, the same form util.EncodePrivKeyToHex
// produces.
func DecodePeerKey(hexKey string) (crypto.PrivKey, error) {
	key, err := util.DecodePrivKeyFromHex(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode peer key: %w", err)
	}
	return key, nil
}
