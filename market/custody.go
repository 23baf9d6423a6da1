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
	"github.com/tierpass/tierpassd/policy"
	"github.com/tierpass/tierpassd/roles"
	"github.com/tierpass/tierpassd/storage"
)

// Sweep - move the retained native balance out of custody
//
// only once refunds can no longer be claimed: the refund window must
// be disabled or already past; returns the amount moved
func Sweep(by *account.Account, to *account.Account, now int64) (uint64, error) {
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
	if !roles.Has(by, roles.Admin) {
		return 0, fault.MissingCapability
	}
	if nil == to || to.IsZero() {
		return 0, fault.ZeroAccount
	}

	w := policy.RefundWindow()
	if !w.IsDisabled() && now <= w.End {
		return 0, fault.RefundWindowStillOpen
	}

	amount := funds.Balance(currency.Native, custody)
	if 0 == amount {
		return 0, nil
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}
	if err := funds.Send(trx, currency.Native, custody, to, amount); nil != err {
		trx.Abort()
		return 0, err
	}
	if err := trx.Commit(); nil != err {
		return 0, err
	}

	log.Infof("sweep: %d to %s by %s", amount, to, by)
	return amount, nil
}

// WithdrawAux - recover auxiliary assets sent to custody
//
// aux value plays no part in the market flows, anything here arrived
// by accident and the admin may pull it out at any time
func WithdrawAux(by *account.Account, to *account.Account, amount uint64) error {
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
	if !roles.Has(by, roles.Admin) {
		return fault.MissingCapability
	}
	if nil == to || to.IsZero() {
		return fault.ZeroAccount
	}
	if funds.Balance(currency.Aux, custody) < amount {
		return fault.InsufficientCustody
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	if err := funds.Send(trx, currency.Aux, custody, to, amount); nil != err {
		trx.Abort()
		return err
	}
	if err := trx.Commit(); nil != err {
		return err
	}

	log.Infof("withdraw aux: %d to %s by %s", amount, to, by)
	return nil
}
