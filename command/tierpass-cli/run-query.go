// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/tierpass/tierpassd/currency"
	"github.com/tierpass/tierpassd/funds"
	"github.com/tierpass/tierpassd/ledger"
	"github.com/tierpass/tierpassd/market"
	"github.com/tierpass/tierpassd/policy"
)

type ownedLine struct {
	PassNumber uint64 `json:"pass_number"`
	CardId     uint64 `json:"card_id"`
}

func runOwned(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	return withSystem(m, func() error {

		owner, err := m.accountOf(c, c.String("owner"))
		if nil != err {
			return err
		}

		passes, cards, err := ledger.PassesOf(owner)
		if nil != err {
			return err
		}

		lines := make([]ownedLine, len(passes))
		for i, passNumber := range passes {
			lines[i] = ownedLine{
				PassNumber: passNumber,
				CardId:     cards[i],
			}
		}

		result := struct {
			Owner  string      `json:"owner"`
			Count  uint64      `json:"count"`
			Passes []ownedLine `json:"passes"`
		}{
			Owner:  owner.String(),
			Count:  ledger.BalanceOf(owner),
			Passes: lines,
		}
		return printJson(m.w, result)
	})
}

type windowStatus struct {
	Start    int64 `json:"start"`
	End      int64 `json:"end"`
	Disabled bool  `json:"disabled"`
}

type accountStatus struct {
	Owner      string `json:"owner"`
	LastRefund uint64 `json:"last_refund"`
	Active     bool   `json:"active"`
	BoundCard  uint64 `json:"bound_card"`
}

func runStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	return withSystem(m, func() error {

		refund := policy.Refund()
		purchases := policy.PurchaseWindow()
		refunds := policy.RefundWindow()

		receiver := ""
		if acc := policy.Receiver(); nil != acc {
			receiver = acc.String()
		}

		custody := market.Custody()

		// account state is only shown when an owner was named
		var acct *accountStatus
		if name := c.String("owner"); "" != name {
			owner, err := m.accountOf(c, name)
			if nil != err {
				return err
			}
			s := market.StatusOf(owner)
			acct = &accountStatus{
				Owner:      owner.String(),
				LastRefund: s.LastRefund,
				Active:     s.Active,
				BoundCard:  s.BoundCard,
			}
		}

		result := struct {
			Custody        string         `json:"custody"`
			CustodyBalance uint64         `json:"custody_balance"`
			Receiver       string         `json:"receiver,omitempty"`
			Policy         interface{}    `json:"policy"`
			Purchases      windowStatus   `json:"purchases"`
			Refunds        windowStatus   `json:"refunds"`
			Account        *accountStatus `json:"account,omitempty"`
		}{
			Custody:        custody.String(),
			CustodyBalance: funds.Balance(currency.Native, custody),
			Receiver:       receiver,
			Policy:         refund,
			Purchases: windowStatus{
				Start:    purchases.Start,
				End:      purchases.End,
				Disabled: purchases.IsDisabled(),
			},
			Refunds: windowStatus{
				Start:    refunds.Start,
				End:      refunds.End,
				Disabled: refunds.IsDisabled(),
			},
			Account: acct,
		}
		return printJson(m.w, result)
	})
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	return withSystem(m, func() error {

		owner, err := m.accountOf(c, c.String("owner"))
		if nil != err {
			return err
		}

		result := struct {
			Owner  string `json:"owner"`
			Native uint64 `json:"native"`
			Aux    uint64 `json:"aux"`
		}{
			Owner:  owner.String(),
			Native: funds.Balance(currency.Native, owner),
			Aux:    funds.Balance(currency.Aux, owner),
		}
		return printJson(m.w, result)
	})
}

func runDeposit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	amount := c.Uint64("amount")
	if 0 == amount {
		return fmt.Errorf("missing amount")
	}

	cur, err := currency.FromString(c.String("currency"))
	if nil != err {
		return err
	}

	return withSystem(m, func() error {

		to, err := m.accountOf(c, c.String("owner"))
		if nil != err {
			return err
		}

		if err := funds.Deposit(cur, to, amount); nil != err {
			return err
		}

		result := struct {
			Owner   string `json:"owner"`
			Balance uint64 `json:"balance"`
		}{
			Owner:   to.String(),
			Balance: funds.Balance(cur, to),
		}
		return printJson(m.w, result)
	})
}
