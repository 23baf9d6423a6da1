// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gate_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/chain"
	"github.com/tierpass/tierpassd/fault"
	"github.com/tierpass/tierpassd/gate"
	"github.com/tierpass/tierpassd/roles"
)

const loggerFileName = "test-gate.log"

var (
	admin     *account.Account
	signerKey *account.PrivateKey
)

func makeKey() *account.PrivateKey {
	privateKey, err := account.NewED25519(true)
	if nil != err {
		panic(err)
	}
	return privateKey
}

func TestMain(m *testing.M) {
	_ = logger.Initialise(logger.Configuration{
		Directory: ".",
		File:      loggerFileName,
		Size:      50000,
		Count:     10,
	})

	admin = makeKey().Account()
	if err := roles.Initialise(admin); nil != err {
		fmt.Printf("roles initialise error: %s\n", err)
		os.Exit(1)
	}

	signerKey = makeKey()
	if err := roles.Grant(admin, signerKey.Account(), roles.Signer); nil != err {
		fmt.Printf("grant error: %s\n", err)
		os.Exit(1)
	}

	if err := gate.Initialise(chain.TestingId, "gate-test"); nil != err {
		fmt.Printf("gate initialise error: %s\n", err)
		os.Exit(1)
	}

	result := m.Run()

	_ = gate.Finalise()
	_ = roles.Finalise()
	logger.Finalise()
	_ = os.RemoveAll(loggerFileName)
	os.Exit(result)
}

func TestAuthorize(t *testing.T) {
	caller := makeKey().Account()

	digest, err := gate.Digest(caller)
	assert.Nil(t, err, "digest must be computable")

	err = gate.Authorize(caller, signerKey.Sign(digest))
	assert.Nil(t, err, "signer admission must verify")
}

func TestRejectUnauthorisedSigner(t *testing.T) {
	caller := makeKey().Account()

	digest, err := gate.Digest(caller)
	assert.Nil(t, err, "digest must be computable")

	stranger := makeKey()
	err = gate.Authorize(caller, stranger.Sign(digest))
	assert.Equal(t, fault.InvalidSigner, err, "unknown signer must be rejected")
}

func TestRejectTransplantedSignature(t *testing.T) {
	caller := makeKey().Account()
	other := makeKey().Account()

	digest, err := gate.Digest(other)
	assert.Nil(t, err, "digest must be computable")

	// a valid signature for a different caller must not admit this one
	err = gate.Authorize(caller, signerKey.Sign(digest))
	assert.Equal(t, fault.InvalidSigner, err, "admission is bound to the caller")
}

func TestRejectCorruptSignature(t *testing.T) {
	caller := makeKey().Account()

	digest, err := gate.Digest(caller)
	assert.Nil(t, err, "digest must be computable")

	signature := signerKey.Sign(digest)
	signature[0] ^= 0xff
	err = gate.Authorize(caller, signature)
	assert.Equal(t, fault.InvalidSigner, err, "corrupt signature must be rejected")
}

func TestRevokedSignerIsRejected(t *testing.T) {
	caller := makeKey().Account()
	temporary := makeKey()

	assert.Nil(t, roles.Grant(admin, temporary.Account(), roles.Signer), "grant must succeed")

	digest, err := gate.Digest(caller)
	assert.Nil(t, err, "digest must be computable")

	signature := temporary.Sign(digest)
	assert.Nil(t, gate.Authorize(caller, signature), "granted signer must admit")

	assert.Nil(t, roles.Revoke(admin, temporary.Account(), roles.Signer), "revoke must succeed")
	err = gate.Authorize(caller, signature)
	assert.Equal(t, fault.InvalidSigner, err, "revoked signer must no longer admit")
}

func TestZeroCaller(t *testing.T) {
	_, err := gate.Digest(nil)
	assert.Equal(t, fault.ZeroAccount, err, "nil caller must be rejected")
}
