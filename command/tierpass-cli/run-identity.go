// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli"

	"github.com/tierpass/tierpassd/account"
)

// a key pair ready for printing
type rawKeyPair struct {
	Account    string `json:"account"`
	PrivateKey string `json:"private_key"`
}

func runGenerate(c *cli.Context) error {

	// generate does not read the configuration, so keys default to test
	testnet := true
	if m, ok := c.App.Metadata["config"].(*metadata); ok {
		testnet = m.testnet
	}

	privateKey, err := account.NewED25519(testnet)
	if nil != err {
		return err
	}

	pair := rawKeyPair{
		Account:    privateKey.Account().String(),
		PrivateKey: privateKey.String(),
	}
	return printJson(c.App.Writer, pair)
}

func runAdd(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := c.Args().Get(0)
	if "" == name {
		return fmt.Errorf("missing identity name argument")
	}

	description := c.String("description")
	if "" == description {
		return fmt.Errorf("missing description")
	}

	if c.Bool("account") {
		acc := c.String("base58")
		if "" == acc {
			return fmt.Errorf("missing base58 account for receive-only identity")
		}
		if err := m.identities.AddReceiveOnlyIdentity(name, description, acc); nil != err {
			return err
		}
		m.save = true
		return nil
	}

	password := c.GlobalString("password")
	if "" == password {
		var err error
		password, err = promptPasswordReader()
		if nil != err {
			return err
		}
	}

	var privateKey *account.PrivateKey
	var err error
	if key := c.String("privateKey"); "" != key {
		privateKey, err = account.PrivateKeyFromBase58(key)
	} else {
		privateKey, err = account.NewED25519(m.testnet)
	}
	if nil != err {
		return err
	}

	if err := m.identities.AddIdentity(name, description, privateKey, password); nil != err {
		return err
	}
	m.save = true

	if m.verbose {
		fmt.Fprintf(m.e, "identity: %s\n", name)
		fmt.Fprintf(m.e, "account: %s\n", privateKey.Account())
	}
	return nil
}

type identityLine struct {
	Name        string `json:"name"`
	Default     bool   `json:"default"`
	Account     string `json:"account"`
	HasKey      bool   `json:"has_key"`
	Description string `json:"description"`
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	names := make([]string, 0, len(m.identities.Identities))
	for name := range m.identities.Identities {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]identityLine, 0, len(names))
	for _, name := range names {
		id := m.identities.Identities[name]
		lines = append(lines, identityLine{
			Name:        name,
			Default:     name == m.identities.DefaultIdentity,
			Account:     id.Account,
			HasKey:      "" != id.Data,
			Description: id.Description,
		})
	}
	return printJson(c.App.Writer, lines)
}
