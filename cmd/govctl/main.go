// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command govctl is a thin client for govd's local control RPC
// server (cmd/govd's localRPC), the same companion-tool role
// command/bitmark-cli plays against bitmarkd's own RPC listener —
// one urfave/cli app, one subcommand per RPC method.
package main

import (
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"net/rpc/jsonrpc"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "govctl"
	app.Usage = "submit or look up governance objects against a running govd"
	app.HideVersion = true

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "connect, c",
			Value: "127.0.0.1:9650",
			Usage: "govd local control RPC `HOST:PORT`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "submit-object",
			Usage:     "submit a wire-encoded governance object from a file",
			ArgsUsage: "<encoded-file>",
			Action:    runSubmitObject,
		},
		{
			Name:      "submit-vote",
			Usage:     "submit a wire-encoded governance vote from a file",
			ArgsUsage: "<encoded-file>",
			Action:    runSubmitVote,
		},
		{
			Name:      "find",
			Usage:     "look up a governance object by its hex hash",
			ArgsUsage: "<hash-hex>",
			Action:    runFind,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "govctl: %s\n", err)
		os.Exit(1)
	}
}

func dial(c *cli.Context) (*jsonrpcClient, error) {
	conn, err := tls.Dial("tcp", c.GlobalString("connect"), &tls.Config{InsecureSkipVerify: true})
	if err != nil {
		return nil, err
	}
	return &jsonrpcClient{client: jsonrpc.NewClient(conn)}, nil
}

func runSubmitObject(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("exactly one <encoded-file> argument is required", 1)
	}
	encoded, err := ioutil.ReadFile(c.Args().Get(0))
	if err != nil {
		return err
	}
	rc, err := dial(c)
	if err != nil {
		return err
	}
	defer rc.Close()

	var ok bool
	if err := rc.client.Call("Governance.SubmitObject", submitObjectArg{Encoded: encoded}, &ok); err != nil {
		return err
	}
	fmt.Printf("submitted: %v\n", ok)
	return nil
}

func runSubmitVote(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("exactly one <encoded-file> argument is required", 1)
	}
	encoded, err := ioutil.ReadFile(c.Args().Get(0))
	if err != nil {
		return err
	}
	rc, err := dial(c)
	if err != nil {
		return err
	}
	defer rc.Close()

	var ok bool
	if err := rc.client.Call("Governance.SubmitVote", submitVoteArg{Encoded: encoded}, &ok); err != nil {
		return err
	}
	fmt.Printf("submitted: %v\n", ok)
	return nil
}

func runFind(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("exactly one <hash-hex> argument is required", 1)
	}
	rc, err := dial(c)
	if err != nil {
		return err
	}
	defer rc.Close()

	var reply findReply
	if err := rc.client.Call("Governance.Find", findArg{Hash: c.Args().Get(0)}, &reply); err != nil {
		return err
	}
	if !reply.Found {
		fmt.Println("not found")
		return nil
	}
	fmt.Println(hex.EncodeToString(reply.Encoded))
	return nil
}
