// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/logger"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/fault"
	"github.com/tierpass/tierpassd/storage"
)

// OwnerOf - find the owner of a pass
func OwnerOf(passNumber uint64) (*account.Account, error) {
	packed := storage.Pool.Passes.Get(passKey(passNumber))
	if nil == packed {
		return nil, fault.UnknownPass
	}
	_, owner, err := unpackPass(packed)
	return owner, err
}

// CardOf - find the card a pass is bound to
func CardOf(passNumber uint64) (uint64, error) {
	packed := storage.Pool.Passes.Get(passKey(passNumber))
	if nil == packed {
		return 0, fault.UnknownPass
	}
	cardId, _, err := unpackPass(packed)
	return cardId, err
}

// BalanceOf - number of passes currently held by an account
func BalanceOf(owner *account.Account) uint64 {
	count, _ := storage.Pool.OwnerCount.GetN(owner.Bytes())
	return count
}

// CurrentlyOwns - check that the account holds the pass
func CurrentlyOwns(owner *account.Account, passNumber uint64) bool {
	return storage.Pool.OwnerIndex.Has(indexKey(owner, passNumber))
}

// PassesOf - enumerate all passes of an owner
//
// returns paired sequences of pass numbers and their card ids in
// index order; swap-and-pop removal reorders the index so this is
// not creation order
func PassesOf(owner *account.Account) ([]uint64, []uint64, error) {

	count := BalanceOf(owner)

	passes := make([]uint64, 0, count)
	cards := make([]uint64, 0, count)

	for position := uint64(0); position < count; position += 1 {
		passNumber, ok := storage.Pool.OwnerList.GetN(listKey(owner, position))
		if !ok {
			logger.Criticalf("ledger.PassesOf: owner: %s  position: %d", owner, position)
			logger.Panic("ledger.PassesOf: OwnerList database corrupt")
		}
		cardId, err := CardOf(passNumber)
		if nil != err {
			logger.Criticalf("ledger.PassesOf: pass: %d error: %s", passNumber, err)
			logger.Panic("ledger.PassesOf: Passes database corrupt")
		}
		passes = append(passes, passNumber)
		cards = append(cards, cardId)
	}

	return passes, cards, nil
}
