// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/storage"
)

// the owner index is only ever mutated through these two primitives
// so the list, the position map and the count always change together

// passKey - pool key for a pass number
func passKey(passNumber uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, passNumber)
	return key
}

// key for an entry of the dense owner list
func listKey(owner *account.Account, position uint64) []byte {
	return append(owner.Bytes(), passKey(position)...)
}

// key for the reverse position map
func indexKey(owner *account.Account, passNumber uint64) []byte {
	return append(owner.Bytes(), passKey(passNumber)...)
}

// append a pass to the end of the owner's list
//
// must be called with the update lock held
func indexAppend(trx storage.Transaction, owner *account.Account, passNumber uint64) {

	ownerKey := owner.Bytes()
	count, _ := trx.GetN(storage.Pool.OwnerCount, ownerKey)

	trx.PutN(storage.Pool.OwnerList, listKey(owner, count), passNumber)
	trx.PutN(storage.Pool.OwnerIndex, indexKey(owner, passNumber), count)
	trx.PutN(storage.Pool.OwnerCount, ownerKey, count+1)
}

// remove a pass from the owner's list by swap-with-last-and-pop
//
// must be called with the update lock held
func indexRemove(trx storage.Transaction, owner *account.Account, passNumber uint64) {

	ownerKey := owner.Bytes()

	count, ok := trx.GetN(storage.Pool.OwnerCount, ownerKey)
	if !ok || 0 == count {
		logger.Criticalf("ledger.indexRemove: owner: %s  pass: %d", owner, passNumber)
		logger.Panic("ledger.indexRemove: OwnerCount database corrupt")
	}

	position, ok := trx.GetN(storage.Pool.OwnerIndex, indexKey(owner, passNumber))
	if !ok {
		logger.Criticalf("ledger.indexRemove: owner: %s  pass: %d", owner, passNumber)
		logger.Panic("ledger.indexRemove: OwnerIndex database corrupt")
	}

	lastPosition := count - 1

	if position != lastPosition {
		// move the last pass into the vacated slot and re-point
		// its reverse entry, all in the same transaction
		lastPass, ok := trx.GetN(storage.Pool.OwnerList, listKey(owner, lastPosition))
		if !ok {
			logger.Criticalf("ledger.indexRemove: owner: %s  position: %d", owner, lastPosition)
			logger.Panic("ledger.indexRemove: OwnerList database corrupt")
		}
		trx.PutN(storage.Pool.OwnerList, listKey(owner, position), lastPass)
		trx.PutN(storage.Pool.OwnerIndex, indexKey(owner, lastPass), position)
	}

	trx.Delete(storage.Pool.OwnerList, listKey(owner, lastPosition))
	trx.Delete(storage.Pool.OwnerIndex, indexKey(owner, passNumber))

	if 0 == lastPosition {
		trx.Delete(storage.Pool.OwnerCount, ownerKey)
	} else {
		trx.PutN(storage.Pool.OwnerCount, ownerKey, lastPosition)
	}
}
