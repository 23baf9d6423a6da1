// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/tierpass/tierpassd/card"
	"github.com/tierpass/tierpassd/fault"
	"github.com/tierpass/tierpassd/storage"
)

// CreateCard - add a new card to the catalog
//
// starts with zero issued passes
func CreateCard(trx storage.Transaction, cardId uint64, level uint64, price uint64, metadata string) error {

	toLock.Lock()
	defer toLock.Unlock()

	if 0 == cardId {
		return fault.ZeroCardId
	}

	key := card.Key(cardId)
	if trx.Has(storage.Pool.Cards, key) {
		return fault.DuplicateCard
	}

	c := card.Card{
		Level:    level,
		Price:    price,
		Issued:   0,
		Metadata: metadata,
	}
	trx.Put(storage.Pool.Cards, key, c.Pack())

	return nil
}

// UpdateCard - change level, price and metadata of an existing card
//
// the issued count is preserved
func UpdateCard(trx storage.Transaction, cardId uint64, level uint64, price uint64, metadata string) error {

	toLock.Lock()
	defer toLock.Unlock()

	current, err := fetchCard(trx, cardId)
	if nil != err {
		return err
	}

	c := card.Card{
		Level:    level,
		Price:    price,
		Issued:   current.Issued,
		Metadata: metadata,
	}
	trx.Put(storage.Pool.Cards, card.Key(cardId), c.Pack())

	return nil
}

// CardInfo - fetch a catalog entry
func CardInfo(cardId uint64) (*card.Card, error) {
	packed := storage.Pool.Cards.Get(card.Key(cardId))
	if nil == packed {
		return nil, fault.UnknownCard
	}
	return card.PackedCard(packed).Unpack()
}

// CardList - one catalog entry for enumeration
type CardList struct {
	CardId uint64
	Card   card.Card
}

// Cards - enumerate up to count catalog entries starting after startId
//
// iterates committed state only
func Cards(startId uint64, count int) ([]CardList, error) {

	cursor := storage.Pool.Cards.NewFetchCursor()
	if 0 != startId {
		cursor.Seek(card.Key(startId + 1))
	}

	elements, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	result := make([]CardList, 0, len(elements))
	for _, e := range elements {
		if 8 != len(e.Key) {
			logger.Panicf("ledger.Cards: corrupt card key: %x", e.Key)
		}
		c, err := card.PackedCard(e.Value).Unpack()
		if nil != err {
			return nil, err
		}
		result = append(result, CardList{
			CardId: binary.BigEndian.Uint64(e.Key),
			Card:   *c,
		})
	}
	return result, nil
}

// fetch and unpack a card inside a transaction
func fetchCard(trx storage.Transaction, cardId uint64) (*card.Card, error) {
	packed := trx.Get(storage.Pool.Cards, card.Key(cardId))
	if nil == packed {
		return nil, fault.UnknownCard
	}
	return card.PackedCard(packed).Unpack()
}

// write back a card record
func storeCard(trx storage.Transaction, cardId uint64, c *card.Card) {
	trx.Put(storage.Pool.Cards, card.Key(cardId), c.Pack())
}
