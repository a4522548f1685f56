// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package govsync

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/bitmark-inc/logger"
)

const dnsSeedDefaultInterval = 1 * time.Hour

// DNSSeeder periodically resolves Domain's TXT records into
// governance-peer multiaddrs and connects Host to whichever ones it
// is not already peered with, the same seed-domain bootstrap role
// announce.nodesLookup plays for the teacher's own peer set —
// background.Processor is the shape both share.
type DNSSeeder struct {
	Host   *Host
	Domain string
	Log    *logger.L
}

func (d *DNSSeeder) Run(args interface{}, shutdown <-chan struct{}) {
	if d.Domain == "" {
		return
	}
	d.seed()
	timer := time.After(d.refetchInterval())
	for {
		select {
		case <-timer:
			d.seed()
			timer = time.After(d.refetchInterval())
		case <-shutdown:
			return
		}
	}
}

// refetchInterval asks the seed domain's authoritative name server
// for its SOA TTL rather than polling on a fixed cadence, the same
// getIntervalTime lookup nodeslookup.go performs. Go's stdlib
// resolver has no SOA query, which is the one gap miekg/dns fills
// here; the TXT lookup itself still goes through net.LookupTXT.
func (d *DNSSeeder) refetchInterval() time.Duration {
	interval := dnsSeedDefaultInterval

	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(conf.Servers) == 0 {
		return interval
	}

	server := net.JoinHostPort(conf.Servers[0], conf.Port)
	c := dns.Client{}
	msg := dns.Msg{}
	msg.SetQuestion(d.Domain+".", dns.TypeSOA)

	r, _, err := c.Exchange(&msg, server)
	if err != nil || len(r.Ns) == 0 {
		return interval
	}
	for _, ns := range r.Ns {
		if soa, ok := ns.(*dns.SOA); ok && soa.Hdr.Ttl > 0 {
			if ttl := time.Duration(soa.Hdr.Ttl) * time.Second; ttl < interval {
				interval = ttl
			}
		}
	}
	return interval
}

// seed resolves Domain's TXT records, each expected to hold one
// libp2p multiaddr, and connects to whichever ones are new.
func (d *DNSSeeder) seed() {
	texts, err := net.LookupTXT(d.Domain)
	if err != nil {
		d.Log.Errorf("seed domain %s: TXT lookup failed: %s", d.Domain, err)
		return
	}

	for i, t := range texts {
		addr, err := ma.NewMultiaddr(strings.TrimSpace(t))
		if err != nil {
			d.Log.Debugf("seed domain %s: ignoring TXT[%d] %q: %s", d.Domain, i, t, err)
			continue
		}
		if err := d.Host.Connect(context.Background(), addr); err != nil {
			d.Log.Warnf("seed domain %s: connecting to %s failed: %s", d.Domain, addr, err)
			continue
		}
		d.Log.Infof("seed domain %s: connected to %s", d.Domain, addr)
	}
}
