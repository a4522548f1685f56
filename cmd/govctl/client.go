// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import "net/rpc"

// jsonrpcClient wraps the net/rpc client dialled against govd's
// local control RPC server (cmd/govd/rpcserver.go).
type jsonrpcClient struct {
	client *rpc.Client
}

func (c *jsonrpcClient) Close() error { return c.client.Close() }

// submitObjectArg/submitVoteArg/findArg/findReply mirror govd's own
// unexported RPC argument/reply shapes field-for-field: JSON-RPC
// matches by field name, not by Go type identity, so the two
// binaries only need to agree on the wire shape.
type submitObjectArg struct {
	Encoded []byte `json:"encoded"`
}

type submitVoteArg struct {
	Encoded []byte `json:"encoded"`
}

type findArg struct {
	Hash string `json:"hash"`
}

type findReply struct {
	Found   bool   `json:"found"`
	Encoded []byte `json:"encoded"`
}
