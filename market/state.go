// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/storage"
)

// account state flag bits
const flagActiveSubscription = 0x01

// packed account state: lastRefund ⧺ flags ⧺ boundCard
const stateLength = 8 + 1 + 8

// accountState - market bookkeeping for one account
//
// zero value is the state of an account that never purchased
type accountState struct {
	lastRefund uint64 // unix seconds, 0 means never refunded
	active     bool
	boundCard  uint64 // card locked in by the first purchase, 0 is unbound
}

// Status - externally visible market state of an account
type Status struct {
	LastRefund uint64 `json:"last_refund"`
	Active     bool   `json:"active"`
	BoundCard  uint64 `json:"bound_card"`
}

// StatusOf - report the market state of an account
//
// the zero Status describes an account that never purchased
func StatusOf(owner *account.Account) Status {
	if nil == owner || owner.IsZero() {
		return Status{}
	}
	state := fetchState(owner)
	return Status{
		LastRefund: state.lastRefund,
		Active:     state.active,
		BoundCard:  state.boundCard,
	}
}

func receiptKey(passNumber uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, passNumber)
	return key
}

// fetchState - read an account's market state
//
// reads through the storage cache so staged writes of the current
// transaction are visible
func fetchState(owner *account.Account) accountState {
	packed := storage.Pool.AccountStates.Get(owner.Bytes())
	if nil == packed {
		return accountState{}
	}
	if stateLength != len(packed) {
		logger.Panicf("market: corrupt account state for %s: %x", owner, packed)
	}
	return accountState{
		lastRefund: binary.BigEndian.Uint64(packed[0:8]),
		active:     0 != packed[8]&flagActiveSubscription,
		boundCard:  binary.BigEndian.Uint64(packed[9:17]),
	}
}

// storeState - stage an account's market state
func storeState(trx storage.Transaction, owner *account.Account, state accountState) {
	packed := make([]byte, stateLength)
	binary.BigEndian.PutUint64(packed[0:8], state.lastRefund)
	if state.active {
		packed[8] |= flagActiveSubscription
	}
	binary.BigEndian.PutUint64(packed[9:17], state.boundCard)
	trx.Put(storage.Pool.AccountStates, owner.Bytes(), packed)
}
