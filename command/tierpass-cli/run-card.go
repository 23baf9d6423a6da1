// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/tierpass/tierpassd/fault"
	"github.com/tierpass/tierpassd/ledger"
	"github.com/tierpass/tierpassd/roles"
	"github.com/tierpass/tierpassd/storage"
)

func runAddCard(c *cli.Context) error {
	return runCardWrite(c, ledger.CreateCard)
}

func runUpdateCard(c *cli.Context) error {
	return runCardWrite(c, ledger.UpdateCard)
}

// shared body of add-card and update-card
func runCardWrite(c *cli.Context, write func(storage.Transaction, uint64, uint64, uint64, string) error) error {

	m := c.App.Metadata["config"].(*metadata)

	cardId := c.Uint64("card")
	level := c.Uint64("level")
	price := c.Uint64("price")
	metadata := c.String("metadata")

	if 0 == cardId {
		return fmt.Errorf("missing card id")
	}

	return withSystem(m, func() error {

		by, err := m.accountOf(c, "")
		if nil != err {
			return err
		}
		if !roles.Has(by, roles.Admin) {
			return fault.MissingCapability
		}

		trx, err := storage.NewDBTransaction()
		if nil != err {
			return err
		}
		if err := write(trx, cardId, level, price, metadata); nil != err {
			trx.Abort()
			return err
		}
		if err := trx.Commit(); nil != err {
			return err
		}

		if m.verbose {
			fmt.Fprintf(m.e, "card: %d level: %d price: %d\n", cardId, level, price)
		}
		return nil
	})
}

func runGrant(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	cardId := c.Uint64("card")
	count := c.Int("count")

	if 0 == cardId {
		return fmt.Errorf("missing card id")
	}
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	return withSystem(m, func() error {

		by, err := m.accountOf(c, "")
		if nil != err {
			return err
		}
		if !roles.Has(by, roles.Admin) {
			return fault.MissingCapability
		}

		to, err := m.accountOf(c, c.String("to"))
		if nil != err {
			return err
		}

		trx, err := storage.NewDBTransaction()
		if nil != err {
			return err
		}
		lastIssued, err := ledger.Issue(trx, to, cardId, count)
		if nil != err {
			trx.Abort()
			return err
		}
		if err := trx.Commit(); nil != err {
			return err
		}

		result := struct {
			Owner    string `json:"owner"`
			CardId   uint64 `json:"card_id"`
			Count    int    `json:"count"`
			LastPass uint64 `json:"last_pass"`
		}{
			Owner:    to.String(),
			CardId:   cardId,
			Count:    count,
			LastPass: lastIssued,
		}
		return printJson(m.w, result)
	})
}

type cardLine struct {
	CardId   uint64 `json:"card_id"`
	Level    uint64 `json:"level"`
	Price    uint64 `json:"price"`
	Issued   uint64 `json:"issued"`
	Metadata string `json:"metadata"`
}

func runCards(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	start := c.Uint64("start")
	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	return withSystem(m, func() error {

		cards, err := ledger.Cards(start, count)
		if nil != err {
			return err
		}

		lines := make([]cardLine, 0, len(cards))
		for _, item := range cards {
			lines = append(lines, cardLine{
				CardId:   item.CardId,
				Level:    item.Card.Level,
				Price:    item.Card.Price,
				Issued:   item.Card.Issued,
				Metadata: item.Card.Metadata,
			})
		}
		return printJson(m.w, lines)
	})
}
