// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"fmt"
	"reflect"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dashpay/govd/background"
)

type poolData struct {
	c *gocache.Cache
}

type pools struct {
	Orphans     *poolData
	OrphanVotes *poolData
	Postponed   *poolData
	Erased      *poolData
}

type globalDataType struct {
	background *background.T
}

// Pool is the interface to perform CRUD operations on the expiring
// governance object/vote pools.
var Pool pools
var globalData globalDataType

const cleanupInterval = 5 * time.Minute

// Initialise must be called before any operations on Pool.
func Initialise() error {
	poolType := reflect.TypeOf(Pool)
	poolValue := reflect.ValueOf(&Pool).Elem()

	for i := 0; i < poolType.NumField(); i++ {
		p := &poolData{c: gocache.New(gocache.NoExpiration, cleanupInterval)}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	processes := background.Processes{
		&reporter{},
	}
	globalData.background = background.Start(processes, nil)

	return nil
}

// Finalise stops the reporting process; each pool's own janitor
// goroutine stops when the process exits.
func Finalise() {
	globalData.background.Stop()
}

// Put inserts value under key. A zero ttl means the entry never
// expires on its own (spec §4.E Postponed queue, and the Erased map
// when invariant (6) calls for erase_until = infinity).
func (p *poolData) Put(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		p.c.Set(key, value, gocache.NoExpiration)
		return
	}
	p.c.Set(key, value, ttl)
}

func (p *poolData) Get(key string) (interface{}, bool) {
	return p.c.Get(key)
}

func (p *poolData) Delete(key string) {
	p.c.Delete(key)
}

func (p *poolData) Items() map[string]interface{} {
	items := p.c.Items()
	m := make(map[string]interface{}, len(items))
	for k, v := range items {
		m[k] = v.Object
	}
	return m
}

func (p *poolData) Size() int {
	return p.c.ItemCount()
}

// DeleteExpired drops every entry whose TTL has already elapsed,
// ahead of the janitor's own cleanupInterval sweep — the explicit
// step spec §4.I.f names for the Erased map.
func (p *poolData) DeleteExpired() {
	p.c.DeleteExpired()
}

func (p pools) String() string {
	return fmt.Sprintf("orphans=%d orphan-votes=%d postponed=%d erased=%d",
		Pool.Orphans.Size(), Pool.OrphanVotes.Size(), Pool.Postponed.Size(), Pool.Erased.Size())
}
