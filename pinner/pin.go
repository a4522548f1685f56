// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pinner

import (
	"fmt"
	"net/http"

	"github.com/dashpay/govd/constants"
	"github.com/dashpay/govd/fault"
	"github.com/dashpay/govd/util"
)

// statResponse mirrors the subset of an IPFS-compatible daemon's
// `/api/v0/object/stat?arg=<cid>` response this package needs.
type statResponse struct {
	CumulativeSize uint64 `json:"CumulativeSize"`
}

// pinResponse mirrors `/api/v0/pin/add` and `/api/v0/pin/rm`'s reply
// shape; both just echo back the pins they touched.
type pinResponse struct {
	Pins []string `json:"Pins"`
}

// Client talks to a local content-store daemon over its HTTP API,
// the same util.FetchJSON-based request/decode idiom the rest of the
// module uses for JSON-over-HTTP calls.
type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{http: &http.Client{}, baseURL: baseURL}
}

// Size returns the recursive size the daemon reports for cid.
func (c *Client) Size(cid string) (uint64, error) {
	var stat statResponse
	url := fmt.Sprintf("%s/api/v0/object/stat?arg=%s", c.baseURL, cid)
	if err := util.FetchJSON(c.http, url, &stat); err != nil {
		return 0, err
	}
	return stat.CumulativeSize, nil
}

// Pin validates cid's shape, checks its recursive size against
// constants.ContentStorePinSizeLimit, and only then asks the daemon
// to pin it recursively (spec §4.K invariant: nothing over the size
// limit is ever pinned).
func (c *Client) Pin(cid string) error {
	if err := ValidateCID(cid); err != nil {
		return err
	}

	size, err := c.Size(cid)
	if err != nil {
		return err
	}
	if size > constants.ContentStorePinSizeLimit {
		return fault.ErrContentTooLarge
	}

	var reply pinResponse
	url := fmt.Sprintf("%s/api/v0/pin/add?arg=%s&recursive=true", c.baseURL, cid)
	return util.FetchJSON(c.http, url, &reply)
}

// Unpin asks the daemon to drop cid from its pin set.
func (c *Client) Unpin(cid string) error {
	var reply pinResponse
	url := fmt.Sprintf("%s/api/v0/pin/rm?arg=%s&recursive=true", c.baseURL, cid)
	return util.FetchJSON(c.http, url, &reply)
}

// List returns every CID currently pinned.
func (c *Client) List() ([]string, error) {
	var reply struct {
		Keys map[string]struct{} `json:"Keys"`
	}
	url := fmt.Sprintf("%s/api/v0/pin/ls", c.baseURL)
	if err := util.FetchJSON(c.http, url, &reply); err != nil {
		return nil, err
	}
	cids := make([]string, 0, len(reply.Keys))
	for cid := range reply.Keys {
		cids = append(cids, cid)
	}
	return cids, nil
}
