// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/fault"
)

// structure of the pass record: cardId ⧺ owner bytes
const (
	passCardStart  = 0
	passCardFinish = passCardStart + 8
	passOwnerStart = passCardFinish

	minimumPassPackLength = passOwnerStart + 1
)

// pack a pass record
func packPass(cardId uint64, owner *account.Account) []byte {
	ownerBytes := owner.Bytes()
	packed := make([]byte, 8, 8+len(ownerBytes))
	binary.BigEndian.PutUint64(packed, cardId)
	return append(packed, ownerBytes...)
}

// unpack a pass record into card id and owner
func unpackPass(packed []byte) (uint64, *account.Account, error) {
	if len(packed) < minimumPassPackLength {
		return 0, nil, fault.NotPassPack
	}
	cardId := binary.BigEndian.Uint64(packed[passCardStart:passCardFinish])
	owner, err := account.AccountFromBytes(packed[passOwnerStart:])
	if nil != err {
		return 0, nil, err
	}
	return cardId, owner, nil
}
