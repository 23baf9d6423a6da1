// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package card - the catalog of purchasable subscription tiers
//
// a card is identified by a nonzero id and carries an ordinal level,
// a price in native units, a count of currently issued passes and a
// metadata reference string
package card

import (
	"encoding/binary"

	"github.com/tierpass/tierpassd/fault"
)

const (
	uint64ByteSize = 8

	// structure of the packed card record
	levelStart  = 0
	levelFinish = levelStart + uint64ByteSize

	priceStart  = levelFinish
	priceFinish = priceStart + uint64ByteSize

	issuedStart  = priceFinish
	issuedFinish = issuedStart + uint64ByteSize

	metadataStart = issuedFinish

	// minimum length of the packed record
	minimumPackLength = metadataStart
)

// Card - catalog entry for one tier
type Card struct {
	Level    uint64
	Price    uint64
	Issued   uint64
	Metadata string
}

// PackedCard - packed data to store in the card pool
type PackedCard []byte

// Pack - pack a card to its byte form
func (card Card) Pack() PackedCard {

	packed := make(PackedCard, minimumPackLength, minimumPackLength+len(card.Metadata))

	binary.BigEndian.PutUint64(packed[levelStart:levelFinish], card.Level)
	binary.BigEndian.PutUint64(packed[priceStart:priceFinish], card.Price)
	binary.BigEndian.PutUint64(packed[issuedStart:issuedFinish], card.Issued)

	return append(packed, card.Metadata...)
}

// Unpack - unpack a stored record into a card
func (packed PackedCard) Unpack() (*Card, error) {
	if len(packed) < minimumPackLength {
		return nil, fault.NotCardPack
	}

	return &Card{
		Level:    binary.BigEndian.Uint64(packed[levelStart:levelFinish]),
		Price:    binary.BigEndian.Uint64(packed[priceStart:priceFinish]),
		Issued:   binary.BigEndian.Uint64(packed[issuedStart:issuedFinish]),
		Metadata: string(packed[metadataStart:]),
	}, nil
}

// Key - the pool key for a card id
func Key(cardId uint64) []byte {
	key := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(key, cardId)
	return key
}
