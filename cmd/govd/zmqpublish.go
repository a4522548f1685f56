// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/dashpay/govd/messagebus"
)

// zmqPublisher drains messagebus.Governance's queue and republishes
// each event as a two-part ZMQ PUB message (kind, hash) — the role
// zmqutil.Client.Send's multipart SNDMORE pattern plays for
// bitmarkd's own block/transaction notification feed, generalized to
// whatever endpoint is configured rather than a fixed CURVE-secured
// one, since this is a local notification feed rather than a
// peer-facing transport.
type zmqPublisher struct {
	endpoint string
	log      *logger.L
	sock     *zmq.Socket
}

func newZMQPublisher(endpoint string, log *logger.L) (*zmqPublisher, error) {
	if endpoint == "" {
		return nil, nil
	}
	sock, err := zmq.NewSocket(zmq.PUB)
	if err != nil {
		return nil, err
	}
	if err := sock.Bind(endpoint); err != nil {
		sock.Close()
		return nil, err
	}
	return &zmqPublisher{endpoint: endpoint, log: log, sock: sock}, nil
}

// Run drains messagebus.Chan() until shutdown closes, the same
// Processor shape every other background component in the manager
// uses.
func (p *zmqPublisher) Run(args interface{}, shutdown <-chan struct{}) {
	defer p.sock.Close()
	for {
		select {
		case msg, ok := <-messagebus.Chan():
			if !ok {
				return
			}
			p.publish(msg)
		case <-shutdown:
			return
		}
	}
}

func (p *zmqPublisher) publish(msg messagebus.Message) {
	hash := ""
	switch msg.Kind {
	case messagebus.ObjectAccepted, messagebus.ObjectRepublished:
		if msg.Object != nil {
			hash = msg.Object.Hash().String()
		}
	case messagebus.VoteAccepted:
		hash = msg.Vote.Hash().String()
	}

	if _, err := p.sock.Send(msg.Kind.String(), zmq.SNDMORE); err != nil {
		p.log.Errorf("zmq publish kind: %s", err)
		return
	}
	if _, err := p.sock.Send(hash, 0); err != nil {
		p.log.Errorf("zmq publish hash: %s", err)
	}
}
