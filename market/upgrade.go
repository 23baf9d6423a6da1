// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/currency"
	"github.com/tierpass/tierpassd/fault"
	"github.com/tierpass/tierpassd/funds"
	"github.com/tierpass/tierpassd/ledger"
	"github.com/tierpass/tierpassd/mode"
	"github.com/tierpass/tierpassd/policy"
	"github.com/tierpass/tierpassd/storage"
)

// Upgrade - move an owned pass to a higher card
//
// the caller pays the price difference between the two cards; the
// purchase receipt keeps its original timestamp, so a later refund
// decays from the original acquisition but pays at the new price
func Upgrade(caller *account.Account, passNumber uint64, toCardId uint64, payment uint64, now int64) error {
	if err := enter(); nil != err {
		return err
	}
	defer leave()

	globalData.RLock()
	initialised := globalData.initialised
	custody := globalData.custody
	log := globalData.log
	globalData.RUnlock()

	if !initialised {
		return fault.NotInitialised
	}
	if mode.IsNot(mode.Normal) {
		return fault.Paused
	}
	if nil == caller || caller.IsZero() {
		return fault.ZeroAccount
	}

	if !ledger.CurrentlyOwns(caller, passNumber) {
		return fault.NotAPassOwner
	}

	currentCardId, err := ledger.CardOf(passNumber)
	if nil != err {
		return err
	}
	currentCard, err := ledger.CardInfo(currentCardId)
	if nil != err {
		return err
	}
	targetCard, err := ledger.CardInfo(toCardId)
	if nil != err {
		return err
	}

	// the difference must be strictly positive, a downgrade or equal
	// price must not wrap the subtraction
	if targetCard.Price <= currentCard.Price {
		return fault.InvalidPriceOrdering
	}
	priceDiff := targetCard.Price - currentCard.Price
	if payment < priceDiff {
		return fault.InsufficientPayment
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	// level ordering is the ledger's check
	if err := ledger.Retier(trx, passNumber, toCardId); nil != err {
		trx.Abort()
		return err
	}

	if err := funds.Send(trx, currency.Native, caller, custody, payment); nil != err {
		trx.Abort()
		return err
	}
	if receiver := policy.Receiver(); nil != receiver {
		if err := funds.Send(trx, currency.Native, custody, receiver, priceDiff); nil != err {
			trx.Abort()
			return err
		}
	}
	if err := funds.Send(trx, currency.Native, custody, caller, payment-priceDiff); nil != err {
		trx.Abort()
		return err
	}

	if err := trx.Commit(); nil != err {
		return err
	}

	log.Infof("upgrade: pass %d card %d → %d by %s for %d", passNumber, currentCardId, toCardId, caller, priceDiff)
	return nil
}
