// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package roles_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/fault"
	"github.com/tierpass/tierpassd/roles"
)

const loggerFileName = "test-roles.log"

var admin *account.Account

func makeAccount() *account.Account {
	privateKey, err := account.NewED25519(true)
	if nil != err {
		panic(err)
	}
	return privateKey.Account()
}

func TestMain(m *testing.M) {
	_ = logger.Initialise(logger.Configuration{
		Directory: ".",
		File:      loggerFileName,
		Size:      50000,
		Count:     10,
	})

	admin = makeAccount()
	err := roles.Initialise(admin)
	if nil != err {
		fmt.Printf("roles initialise error: %s\n", err)
		os.Exit(1)
	}

	result := m.Run()

	_ = roles.Finalise()
	logger.Finalise()
	_ = os.RemoveAll(loggerFileName)
	os.Exit(result)
}

// the bootstrap account holds Admin and nothing else
func TestBootstrap(t *testing.T) {
	assert.True(t, roles.Has(admin, roles.Admin), "bootstrap account must hold admin")
	assert.False(t, roles.Has(admin, roles.Signer), "bootstrap account must not hold signer")
}

// grants require the admin capability
func TestGrantRequiresAdmin(t *testing.T) {
	stranger := makeAccount()
	target := makeAccount()

	err := roles.Grant(stranger, target, roles.Signer)
	assert.Equal(t, fault.MissingCapability, err, "grant by non-admin must fail")

	err = roles.Grant(admin, target, roles.Signer)
	assert.Nil(t, err, "grant by admin failed")
	assert.True(t, roles.Has(target, roles.Signer), "capability not granted")

	err = roles.Revoke(stranger, target, roles.Signer)
	assert.Equal(t, fault.MissingCapability, err, "revoke by non-admin must fail")

	err = roles.Revoke(admin, target, roles.Signer)
	assert.Nil(t, err, "revoke by admin failed")
	assert.False(t, roles.Has(target, roles.Signer), "capability not revoked")
}

// signer enumeration follows grants and revokes
func TestSignerAccounts(t *testing.T) {
	signer := makeAccount()

	err := roles.Grant(admin, signer, roles.Signer)
	assert.Nil(t, err, "grant failed")

	found := false
	for _, s := range roles.SignerAccounts() {
		if s.String() == signer.String() {
			found = true
		}
	}
	assert.True(t, found, "granted signer not enumerated")

	err = roles.Revoke(admin, signer, roles.Signer)
	assert.Nil(t, err, "revoke failed")

	for _, s := range roles.SignerAccounts() {
		assert.NotEqual(t, signer.String(), s.String(), "revoked signer still enumerated")
	}
}
