// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/gate"
	"github.com/tierpass/tierpassd/market"
)

func runAuthorize(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	return withSystem(m, func() error {

		caller, err := m.accountOf(c, c.String("caller"))
		if nil != err {
			return err
		}

		// the acting identity must hold the signer capability for the
		// produced admission to verify
		signerKey, err := m.privateKeyOf(c, "")
		if nil != err {
			return err
		}

		digest, err := gate.Digest(caller)
		if nil != err {
			return err
		}
		signature := signerKey.Sign(digest)

		result := struct {
			Caller    string `json:"caller"`
			Signature string `json:"signature"`
		}{
			Caller:    caller.String(),
			Signature: hex.EncodeToString(signature),
		}
		return printJson(m.w, result)
	})
}

func runPurchase(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	cardId := c.Uint64("card")
	payment := c.Uint64("payment")
	signatureHex := c.String("signature")
	if "" == signatureHex {
		return fmt.Errorf("missing admission signature")
	}
	signatureBytes, err := hex.DecodeString(signatureHex)
	if nil != err {
		return fmt.Errorf("signature: %s", err)
	}

	return withSystem(m, func() error {

		callerKey, err := m.privateKeyOf(c, "")
		if nil != err {
			return err
		}
		caller := callerKey.Account()

		passNumber, err := market.Purchase(caller, cardId, payment, account.Signature(signatureBytes), time.Now().Unix())
		if nil != err {
			return err
		}

		result := struct {
			PassNumber uint64 `json:"pass_number"`
			CardId     uint64 `json:"card_id"`
			Owner      string `json:"owner"`
		}{
			PassNumber: passNumber,
			CardId:     cardId,
			Owner:      caller.String(),
		}
		return printJson(m.w, result)
	})
}

func runUpgrade(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	passNumber := c.Uint64("pass")
	toCardId := c.Uint64("card")
	payment := c.Uint64("payment")

	return withSystem(m, func() error {

		callerKey, err := m.privateKeyOf(c, "")
		if nil != err {
			return err
		}
		caller := callerKey.Account()

		err = market.Upgrade(caller, passNumber, toCardId, payment, time.Now().Unix())
		if nil != err {
			return err
		}

		result := struct {
			PassNumber uint64 `json:"pass_number"`
			CardId     uint64 `json:"card_id"`
		}{
			PassNumber: passNumber,
			CardId:     toCardId,
		}
		return printJson(m.w, result)
	})
}

func runEligibility(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	passNumber := c.Uint64("pass")

	return withSystem(m, func() error {

		caller, err := m.accountOf(c, "")
		if nil != err {
			return err
		}

		claimedOwner := caller
		if owner := c.String("owner"); "" != owner {
			claimedOwner, err = m.accountOf(c, owner)
			if nil != err {
				return err
			}
		}

		e := market.CheckEligibility(caller, passNumber, claimedOwner, time.Now().Unix())

		result := struct {
			Eligible bool   `json:"eligible"`
			Amount   uint64 `json:"amount"`
			TimeLeft uint64 `json:"time_left"`
			Reason   string `json:"reason,omitempty"`
		}{
			Eligible: e.Eligible,
			Amount:   e.Amount,
			TimeLeft: e.TimeLeft,
		}
		if nil != e.Reason {
			result.Reason = e.Reason.Error()
		}
		return printJson(m.w, result)
	})
}

func runRefund(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	passNumber := c.Uint64("pass")

	return withSystem(m, func() error {

		callerKey, err := m.privateKeyOf(c, "")
		if nil != err {
			return err
		}
		caller := callerKey.Account()

		amount, err := market.Refund(caller, passNumber, time.Now().Unix())
		if nil != err {
			return err
		}

		result := struct {
			PassNumber uint64 `json:"pass_number"`
			Amount     uint64 `json:"amount"`
		}{
			PassNumber: passNumber,
			Amount:     amount,
		}
		return printJson(m.w, result)
	})
}
