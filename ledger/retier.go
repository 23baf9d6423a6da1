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

// Retier - move a pass to a card of a strictly higher level
//
// downgrades and sideways moves are rejected; the issued counters of
// both cards are adjusted and the pass is rebound, the owner index is
// untouched
func Retier(trx storage.Transaction, passNumber uint64, toCardId uint64) error {

	toLock.Lock()
	defer toLock.Unlock()

	packed := trx.Get(storage.Pool.Passes, passKey(passNumber))
	if nil == packed {
		return fault.UnknownPass
	}
	currentCardId, owner, err := unpackPass(packed)
	if nil != err {
		logger.Criticalf("ledger.Retier: corrupt pass record for: %d error: %s", passNumber, err)
		logger.Panic("ledger.Retier: Passes database corrupt")
	}

	target, err := fetchCard(trx, toCardId)
	if nil != err {
		return err
	}

	current, err := fetchCard(trx, currentCardId)
	if nil != err {
		logger.Criticalf("ledger.Retier: pass: %d bound to missing card: %d", passNumber, currentCardId)
		logger.Panic("ledger.Retier: Cards database corrupt")
	}

	// upgrades must strictly increase the level
	if current.Level >= target.Level {
		return fault.InvalidLevelOrdering
	}

	if 0 == current.Issued {
		logger.Criticalf("ledger.Retier: card: %d issued count would underflow", currentCardId)
		logger.Panic("ledger.Retier: Cards database corrupt")
	}
	current.Issued -= 1
	target.Issued += 1

	storeCard(trx, currentCardId, current)
	storeCard(trx, toCardId, target)

	trx.Put(storage.Pool.Passes, passKey(passNumber), packPass(toCardId, owner))

	globalData.log.Infof("retier pass %d: card %d → %d", passNumber, currentCardId, toCardId)

	return nil
}
