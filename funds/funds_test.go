// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package funds_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/currency"
	"github.com/tierpass/tierpassd/fault"
	"github.com/tierpass/tierpassd/funds"
	"github.com/tierpass/tierpassd/storage"
)

// test database file
const (
	databaseFileName = "test-funds.leveldb"
	loggerFileName   = "test-funds.log"
)

func removeFiles() {
	_ = os.RemoveAll(databaseFileName)
	_ = os.RemoveAll(loggerFileName)
}

func makeAccount() *account.Account {
	privateKey, err := account.NewED25519(true)
	if nil != err {
		panic(err)
	}
	return privateKey.Account()
}

func TestMain(m *testing.M) {
	removeFiles()

	_ = logger.Initialise(logger.Configuration{
		Directory: ".",
		File:      loggerFileName,
		Size:      50000,
		Count:     10,
	})

	if err := storage.Initialise(databaseFileName, storage.ReadWrite); nil != err {
		fmt.Printf("storage initialise error: %s\n", err)
		os.Exit(1)
	}
	if err := funds.Initialise(); nil != err {
		fmt.Printf("funds initialise error: %s\n", err)
		os.Exit(1)
	}

	result := m.Run()

	_ = funds.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
	os.Exit(result)
}

// run a transfer in its own transaction, aborting on error
func send(t *testing.T, c currency.Currency, from *account.Account, to *account.Account, amount uint64) error {
	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin must succeed")
	err = funds.Send(trx, c, from, to, amount)
	if nil != err {
		trx.Abort()
		return err
	}
	assert.Nil(t, trx.Commit(), "commit must succeed")
	return nil
}

func TestDepositAndBalance(t *testing.T) {
	alice := makeAccount()

	assert.Equal(t, uint64(0), funds.Balance(currency.Native, alice), "fresh account must be empty")

	err := funds.Deposit(currency.Native, alice, 250)
	assert.Nil(t, err, "deposit must succeed")
	err = funds.Deposit(currency.Native, alice, 50)
	assert.Nil(t, err, "second deposit must succeed")
	assert.Equal(t, uint64(300), funds.Balance(currency.Native, alice), "balance must accumulate deposits")

	// currencies are separate ledgers
	assert.Equal(t, uint64(0), funds.Balance(currency.Aux, alice), "other currency must stay empty")

	err = funds.Deposit(currency.Nothing, alice, 1)
	assert.Equal(t, fault.InvalidCurrency, err, "nothing currency must be rejected")
}

func TestSend(t *testing.T) {
	alice := makeAccount()
	bob := makeAccount()

	_ = funds.Deposit(currency.Native, alice, 100)

	err := send(t, currency.Native, alice, bob, 150)
	assert.Equal(t, fault.InsufficientFunds, err, "overdraft must be rejected")

	err = send(t, currency.Native, alice, bob, 60)
	assert.Nil(t, err, "send must succeed")
	assert.Equal(t, uint64(40), funds.Balance(currency.Native, alice), "sender must be debited")
	assert.Equal(t, uint64(60), funds.Balance(currency.Native, bob), "receiver must be credited")

	err = send(t, currency.Native, alice, bob, 0)
	assert.Nil(t, err, "zero send must be a no-op")
	assert.Equal(t, uint64(40), funds.Balance(currency.Native, alice), "zero send must not move funds")
}

func TestStagedVisibility(t *testing.T) {
	alice := makeAccount()
	bob := makeAccount()

	_ = funds.Deposit(currency.Native, alice, 100)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin must succeed")
	assert.Nil(t, funds.Send(trx, currency.Native, alice, bob, 70), "send must succeed")

	// before commit the staged transfer is already observable
	assert.Equal(t, uint64(30), funds.Balance(currency.Native, alice), "staged debit must be visible")
	assert.Equal(t, uint64(70), funds.Balance(currency.Native, bob), "staged credit must be visible")

	trx.Abort()

	assert.Equal(t, uint64(100), funds.Balance(currency.Native, alice), "abort must restore the sender")
	assert.Equal(t, uint64(0), funds.Balance(currency.Native, bob), "abort must restore the receiver")
}

func TestHookRejection(t *testing.T) {
	alice := makeAccount()
	picky := makeAccount()

	_ = funds.Deposit(currency.Native, alice, 100)

	calls := 0
	err := funds.RegisterHook(picky, func(c currency.Currency, from *account.Account, amount uint64) error {
		calls += 1
		if amount > 30 {
			return fault.InsufficientPayment
		}
		return nil
	})
	assert.Nil(t, err, "hook registration must succeed")
	defer func() {
		assert.Nil(t, funds.RegisterHook(picky, nil), "hook removal must succeed")
	}()

	err = send(t, currency.Native, alice, picky, 50)
	assert.Equal(t, fault.TransferFailed, err, "hook rejection must fail the send")
	assert.Equal(t, uint64(100), funds.Balance(currency.Native, alice), "aborted send must restore the sender")
	assert.Equal(t, uint64(0), funds.Balance(currency.Native, picky), "aborted send must leave the receiver empty")

	err = send(t, currency.Native, alice, picky, 20)
	assert.Nil(t, err, "accepted send must succeed")
	assert.Equal(t, uint64(20), funds.Balance(currency.Native, picky), "receiver must keep accepted funds")
	assert.Equal(t, 2, calls, "hook must run once per send")
}

func TestHookMayForward(t *testing.T) {
	alice := makeAccount()
	forwarder := makeAccount()
	sink := makeAccount()

	_ = funds.Deposit(currency.Native, alice, 100)

	// a hook that forwards everything it receives within the same
	// transaction
	err := funds.RegisterHook(forwarder, func(c currency.Currency, from *account.Account, amount uint64) error {
		trx := storage.PendingTransaction()
		return funds.Send(trx, c, forwarder, sink, amount)
	})
	assert.Nil(t, err, "hook registration must succeed")
	defer func() {
		assert.Nil(t, funds.RegisterHook(forwarder, nil), "hook removal must succeed")
	}()

	err = send(t, currency.Native, alice, forwarder, 70)
	assert.Nil(t, err, "forwarding hook must succeed")
	assert.Equal(t, uint64(0), funds.Balance(currency.Native, forwarder), "forwarder must pass funds on")
	assert.Equal(t, uint64(70), funds.Balance(currency.Native, sink), "sink must end with the funds")
}
