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
	"github.com/tierpass/tierpassd/gate"
	"github.com/tierpass/tierpassd/ledger"
	"github.com/tierpass/tierpassd/mode"
	"github.com/tierpass/tierpassd/policy"
	"github.com/tierpass/tierpassd/storage"
)

// Purchase - buy one pass of a card
//
// payment is debited from the caller's native balance; the card price
// goes to the configured receiver, or stays in custody when none is
// set, and the exact overpayment comes straight back; returns the
// issued pass number
//
// preconditions run in a fixed order and the first failure wins
func Purchase(caller *account.Account, cardId uint64, payment uint64, signature account.Signature, now int64) (uint64, error) {
	if err := enter(); nil != err {
		return 0, err
	}
	defer leave()

	globalData.RLock()
	initialised := globalData.initialised
	custody := globalData.custody
	log := globalData.log
	globalData.RUnlock()

	if !initialised {
		return 0, fault.NotInitialised
	}
	if mode.IsNot(mode.Normal) {
		return 0, fault.Paused
	}
	if nil == caller || caller.IsZero() {
		return 0, fault.ZeroAccount
	}

	if !policy.PurchaseWindow().IsActive(now) {
		return 0, fault.PurchaseWindowClosed
	}
	if 0 != ledger.BalanceOf(caller) {
		return 0, fault.PassAlreadyHeld
	}

	state := fetchState(caller)
	if state.active {
		return 0, fault.SubscriptionActive
	}
	if 0 != state.boundCard && cardId != state.boundCard {
		return 0, fault.CardLocked
	}

	if err := gate.Authorize(caller, signature); nil != err {
		return 0, err
	}

	card, err := ledger.CardInfo(cardId)
	if nil != err {
		return 0, err
	}
	if 0 == card.Price {
		return 0, fault.PriceIsZero
	}
	if payment < card.Price {
		return 0, fault.InsufficientPayment
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	// effects first: stage all ledger writes before any value moves
	passNumber, err := ledger.Issue(trx, caller, cardId, 1)
	if nil != err {
		trx.Abort()
		return 0, err
	}
	trx.PutN(storage.Pool.PurchaseTimes, receiptKey(passNumber), uint64(now))

	state.active = true
	if 0 == state.boundCard {
		state.boundCard = cardId
	}
	storeState(trx, caller, state)

	// settlement: payment in, price routed, overpayment back; all
	// staged in the same transaction as the ledger writes
	if err := funds.Send(trx, currency.Native, caller, custody, payment); nil != err {
		trx.Abort()
		return 0, err
	}
	if receiver := policy.Receiver(); nil != receiver {
		if err := funds.Send(trx, currency.Native, custody, receiver, card.Price); nil != err {
			trx.Abort()
			return 0, err
		}
	}
	if err := funds.Send(trx, currency.Native, custody, caller, payment-card.Price); nil != err {
		trx.Abort()
		return 0, err
	}

	if err := trx.Commit(); nil != err {
		return 0, err
	}

	log.Infof("purchase: pass %d card %d to %s for %d", passNumber, cardId, caller, card.Price)
	return passNumber, nil
}
