// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/tierpass/tierpassd/market"
)

func runSweep(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	return withSystem(m, func() error {

		by, err := m.accountOf(c, "")
		if nil != err {
			return err
		}

		to, err := m.accountOf(c, c.String("to"))
		if nil != err {
			return err
		}

		amount, err := market.Sweep(by, to, time.Now().Unix())
		if nil != err {
			return err
		}

		result := struct {
			To     string `json:"to"`
			Amount uint64 `json:"amount"`
		}{
			To:     to.String(),
			Amount: amount,
		}
		return printJson(m.w, result)
	})
}

func runWithdrawAux(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	amount := c.Uint64("amount")
	if 0 == amount {
		return fmt.Errorf("missing amount")
	}

	return withSystem(m, func() error {

		by, err := m.accountOf(c, "")
		if nil != err {
			return err
		}

		to, err := m.accountOf(c, c.String("to"))
		if nil != err {
			return err
		}

		if err := market.WithdrawAux(by, to, amount); nil != err {
			return err
		}

		result := struct {
			To     string `json:"to"`
			Amount uint64 `json:"amount"`
		}{
			To:     to.String(),
			Amount: amount,
		}
		return printJson(m.w, result)
	})
}
