// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/fault"
	"github.com/tierpass/tierpassd/storage"
)

// key of the persistent pass number counter
var nextPassKey = []byte{'N'}

// Issue - issue count passes of a card to an account
//
// pass numbers are allocated from a monotonic counter starting at 1;
// returns the number of the last pass issued
func Issue(trx storage.Transaction, to *account.Account, cardId uint64, count int) (uint64, error) {

	toLock.Lock()
	defer toLock.Unlock()

	if nil == to || to.IsZero() {
		return 0, fault.ZeroAccount
	}
	if count < 1 {
		return 0, fault.InvalidCount
	}

	c, err := fetchCard(trx, cardId)
	if nil != err {
		return 0, err
	}

	next, ok := trx.GetN(storage.Pool.NextPassNumber, nextPassKey)
	if !ok {
		next = 1
	}

	lastIssued := uint64(0)
	for i := 0; i < count; i += 1 {
		passNumber := next
		next += 1

		// bind pass → (card, owner)
		trx.Put(storage.Pool.Passes, passKey(passNumber), packPass(cardId, to))

		// enumerable index entry
		indexAppend(trx, to, passNumber)

		lastIssued = passNumber
	}

	c.Issued += uint64(count)
	storeCard(trx, cardId, c)

	trx.PutN(storage.Pool.NextPassNumber, nextPassKey, next)

	globalData.log.Infof("issued %d pass(es) of card %d to %s last: %d", count, cardId, to, lastIssued)

	return lastIssued, nil
}
