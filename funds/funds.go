// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package funds - currency balance accounting
//
// each account carries one balance per currency, held in the funds
// storage pool; a transfer stages its debit and credit into the
// caller's storage transaction so it commits or aborts together with
// the rest of the call
//
// a receiving account may carry a hook that is notified inside the
// transfer; a hook error poisons the transfer and the caller must
// abort the transaction
package funds

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/currency"
	"github.com/tierpass/tierpassd/fault"
	"github.com/tierpass/tierpassd/storage"
)

// ReceiveHook - called after an account is credited, before commit
//
// runs inside the sender's transaction; returning an error rejects
// the transfer
type ReceiveHook func(c currency.Currency, from *account.Account, amount uint64) error

// globals
var globalData struct {
	sync.Mutex
	log *logger.L

	hooks map[string]ReceiveHook

	// set once during initialise
	initialised bool
}

// Initialise - set up hook registry
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("funds")
	globalData.log.Info("starting…")

	globalData.hooks = make(map[string]ReceiveHook)

	globalData.initialised = true
	return nil
}

// Finalise - tear down
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.hooks = nil
	globalData.initialised = false
	return nil
}

// balance pool key: currency ⧺ account
func poolKey(c currency.Currency, acc *account.Account) []byte {
	return append([]byte{byte(c.Uint64())}, acc.Bytes()...)
}

// Balance - current balance of an account in one currency
//
// reads through the storage cache so a pending transaction sees its
// own staged transfers
func Balance(c currency.Currency, acc *account.Account) uint64 {
	if nil == acc {
		return 0
	}
	balance, _ := storage.Pool.Funds.GetN(poolKey(c, acc))
	return balance
}

// Deposit - credit an account from outside the system
//
// opens and commits its own transaction, so it cannot run while
// another transaction is pending
func Deposit(c currency.Currency, to *account.Account, amount uint64) error {
	if nil == to || to.IsZero() {
		return fault.ZeroAccount
	}
	if currency.Nothing == c {
		return fault.InvalidCurrency
	}
	if 0 == amount {
		return nil
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	key := poolKey(c, to)
	balance, _ := trx.GetN(storage.Pool.Funds, key)
	trx.PutN(storage.Pool.Funds, key, balance+amount)
	return trx.Commit()
}

// Send - stage a transfer between accounts
//
// the receiver's hook runs after both balances are staged, so a
// re-entrant observer sees the moved value; a hook rejection returns
// fault.TransferFailed and the whole transaction must then be aborted
func Send(trx storage.Transaction, c currency.Currency, from *account.Account, to *account.Account, amount uint64) error {
	if nil == from || nil == to || to.IsZero() {
		return fault.ZeroAccount
	}
	if currency.Nothing == c {
		return fault.InvalidCurrency
	}
	if 0 == amount {
		return nil
	}

	globalData.Lock()
	if !globalData.initialised {
		globalData.Unlock()
		return fault.NotInitialised
	}
	hook := globalData.hooks[to.String()]
	log := globalData.log
	globalData.Unlock()

	fromKey := poolKey(c, from)
	toKey := poolKey(c, to)

	fromBalance, _ := trx.GetN(storage.Pool.Funds, fromKey)
	if fromBalance < amount {
		return fault.InsufficientFunds
	}
	toBalance, _ := trx.GetN(storage.Pool.Funds, toKey)

	trx.PutN(storage.Pool.Funds, fromKey, fromBalance-amount)
	trx.PutN(storage.Pool.Funds, toKey, toBalance+amount)

	if nil != hook {
		if err := hook(c, from, amount); nil != err {
			log.Warnf("transfer %d %s %s to %s rejected: %s", amount, c, from, to, err)
			return fault.TransferFailed
		}
	}

	return nil
}

// RegisterHook - attach a receive hook to an account
//
// a nil hook removes any existing one
func RegisterHook(acc *account.Account, hook ReceiveHook) error {
	if nil == acc {
		return fault.ZeroAccount
	}

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	if nil == hook {
		delete(globalData.hooks, acc.String())
	} else {
		globalData.hooks[acc.String()] = hook
	}
	return nil
}
