// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/logger"

	"github.com/tierpass/tierpassd/fault"
	"github.com/tierpass/tierpassd/storage"
)

// Revoke - destroy a pass
//
// decrements the card's issued count, removes the pass from its
// owner's index by swap-and-pop and deletes the pass record; the
// pass number is never reused
func Revoke(trx storage.Transaction, passNumber uint64) error {

	toLock.Lock()
	defer toLock.Unlock()

	packed := trx.Get(storage.Pool.Passes, passKey(passNumber))
	if nil == packed {
		return fault.UnknownPass
	}
	cardId, owner, err := unpackPass(packed)
	if nil != err {
		logger.Criticalf("ledger.Revoke: corrupt pass record for: %d error: %s", passNumber, err)
		logger.Panic("ledger.Revoke: Passes database corrupt")
	}

	c, err := fetchCard(trx, cardId)
	if nil != err {
		logger.Criticalf("ledger.Revoke: pass: %d bound to missing card: %d", passNumber, cardId)
		logger.Panic("ledger.Revoke: Cards database corrupt")
	}
	if 0 == c.Issued {
		logger.Criticalf("ledger.Revoke: card: %d issued count would underflow", cardId)
		logger.Panic("ledger.Revoke: Cards database corrupt")
	}
	c.Issued -= 1
	storeCard(trx, cardId, c)

	indexRemove(trx, owner, passNumber)

	trx.Delete(storage.Pool.Passes, passKey(passNumber))

	globalData.log.Infof("revoked pass %d of card %d from %s", passNumber, cardId, owner)

	return nil
}
