// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/fault"
)

// test that a generated key pair signs and verifies
func TestSignAndVerify(t *testing.T) {
	privateKey, err := account.NewED25519(true)
	assert.Nil(t, err, "key generation failed")

	owner := privateKey.Account()
	assert.True(t, owner.IsTesting(), "expected a testing account")
	assert.False(t, owner.IsZero(), "generated account must not be zero")

	message := []byte("a message to authorise")
	signature := privateKey.Sign(message)

	err = owner.CheckSignature(message, signature)
	assert.Nil(t, err, "signature check failed")

	err = owner.CheckSignature([]byte("a different message"), signature)
	assert.Equal(t, fault.InvalidSignature, err, "tampered message must not verify")

	err = owner.CheckSignature(message, signature[:32])
	assert.Equal(t, fault.InvalidSignature, err, "truncated signature must not verify")
}

// test Base58 round trip of an account
func TestBase58RoundTrip(t *testing.T) {
	privateKey, err := account.NewED25519(true)
	assert.Nil(t, err, "key generation failed")

	owner := privateKey.Account()

	decoded, err := account.AccountFromBase58(owner.String())
	assert.Nil(t, err, "decode failed")
	assert.Equal(t, owner.Bytes(), decoded.Bytes(), "round trip changed the account")

	// the packed form used by the storage pools
	unpacked, err := account.AccountFromBytes(owner.Bytes())
	assert.Nil(t, err, "unpack failed")
	assert.Equal(t, owner.String(), unpacked.String(), "packed round trip changed the account")
}

// test that a corrupted encoding is rejected
func TestCorruptedEncoding(t *testing.T) {
	privateKey, err := account.NewED25519(true)
	assert.Nil(t, err, "key generation failed")

	encoded := privateKey.Account().String()

	// flip one character to break the checksum
	tail := encoded[len(encoded)-1]
	replacement := byte('2')
	if tail == replacement {
		replacement = '3'
	}
	corrupted := encoded[:len(encoded)-1] + string(replacement)

	_, err = account.AccountFromBase58(corrupted)
	assert.NotNil(t, err, "corrupted account must not decode")

	_, err = account.AccountFromBase58("")
	assert.Equal(t, fault.CannotDecodeAccount, err, "empty string must not decode")
}

// test private key Base58 round trip
func TestPrivateKeyRoundTrip(t *testing.T) {
	privateKey, err := account.NewED25519(false)
	assert.Nil(t, err, "key generation failed")

	decoded, err := account.PrivateKeyFromBase58(privateKey.String())
	assert.Nil(t, err, "decode failed")
	assert.Equal(t, privateKey.Bytes(), decoded.Bytes(), "round trip changed the key")
	assert.False(t, decoded.IsTesting(), "expected a live key")

	// a public key string must be rejected as a private key
	_, err = account.PrivateKeyFromBase58(privateKey.Account().String())
	assert.Equal(t, fault.NotPrivateKey, err, "public key must not decode as private")
}
