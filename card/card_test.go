// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package card_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tierpass/tierpassd/card"
	"github.com/tierpass/tierpassd/fault"
)

// pack and unpack a catalog entry
func TestPackUnpack(t *testing.T) {
	c := card.Card{
		Level:    3,
		Price:    15000,
		Issued:   7,
		Metadata: "ipfs://example-metadata",
	}

	unpacked, err := c.Pack().Unpack()
	assert.Nil(t, err, "unpack failed")
	assert.Equal(t, c, *unpacked, "round trip changed the card")

	// empty metadata is valid
	bare := card.Card{Level: 1, Price: 100}
	unpacked, err = bare.Pack().Unpack()
	assert.Nil(t, err, "unpack failed")
	assert.Equal(t, bare, *unpacked, "round trip changed the card")
}

// a truncated record must be rejected
func TestUnpackTruncated(t *testing.T) {
	packed := card.Card{Level: 1, Price: 100}.Pack()

	_, err := packed[:len(packed)-9].Unpack()
	assert.Equal(t, fault.NotCardPack, err, "truncated record must not unpack")

	_, err = card.PackedCard{}.Unpack()
	assert.Equal(t, fault.NotCardPack, err, "empty record must not unpack")
}
