// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policy_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/fault"
	"github.com/tierpass/tierpassd/policy"
	"github.com/tierpass/tierpassd/roles"
)

const loggerFileName = "test-policy.log"

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
	if err := roles.Initialise(admin); nil != err {
		fmt.Printf("roles initialise error: %s\n", err)
		os.Exit(1)
	}
	if err := policy.Initialise(); nil != err {
		fmt.Printf("policy initialise error: %s\n", err)
		os.Exit(1)
	}

	result := m.Run()

	_ = policy.Finalise()
	_ = roles.Finalise()
	logger.Finalise()
	_ = os.RemoveAll(loggerFileName)
	os.Exit(result)
}

func TestInitialState(t *testing.T) {
	assert.True(t, policy.PurchaseWindow().IsDisabled(), "purchase window must start disabled")
	assert.True(t, policy.RefundWindow().IsDisabled(), "refund window must start disabled")
	assert.Nil(t, policy.Receiver(), "receiver must start unset")
	assert.Equal(t, uint64(0), policy.Refund().BaseRate, "base rate must start zero")
}

func TestRefundPolicyValidation(t *testing.T) {
	stranger := makeAccount()

	valid := policy.RefundPolicy{
		MaxHoldingSeconds: 30 * 86400,
		BaseRate:          80,
		DecayPerDay:       2,
		MinRate:           10,
		CooldownSeconds:   3600,
	}

	err := policy.SetRefundPolicy(stranger, valid)
	assert.Equal(t, fault.MissingCapability, err, "non-admin must be rejected")

	err = policy.SetRefundPolicy(admin, policy.RefundPolicy{BaseRate: 101})
	assert.Equal(t, fault.InvalidRefundRate, err, "base rate over 100 must be rejected")

	err = policy.SetRefundPolicy(admin, policy.RefundPolicy{BaseRate: 50, MinRate: 60})
	assert.Equal(t, fault.InvalidRefundRate, err, "floor above base must be rejected")

	err = policy.SetRefundPolicy(admin, valid)
	assert.Nil(t, err, "valid policy must be accepted")
	assert.Equal(t, valid, policy.Refund(), "stored policy must match")
}

func TestWindowSemantics(t *testing.T) {
	w := policy.Window{Start: 1000, End: 2000}
	assert.True(t, w.IsActive(1000), "start is inclusive")
	assert.True(t, w.IsActive(2000), "end is inclusive")
	assert.False(t, w.IsActive(999), "before start is closed")
	assert.False(t, w.IsActive(2001), "after end is closed")

	disabled := policy.Window{}
	assert.True(t, disabled.IsDisabled(), "zero window is disabled")
	assert.False(t, disabled.IsActive(0), "disabled window is never active")
}

func TestSetWindows(t *testing.T) {
	err := policy.SetPurchaseWindow(admin, policy.Window{Start: 500, End: 400})
	assert.Equal(t, fault.InvalidTimeWindow, err, "inverted window must be rejected")

	err = policy.SetPurchaseWindow(admin, policy.Window{Start: 500, End: 900})
	assert.Nil(t, err, "valid purchase window must be accepted")
	assert.True(t, policy.PurchaseWindow().IsActive(600), "stored window must be live")

	err = policy.SetRefundWindow(admin, policy.Window{Start: 500, End: 900})
	assert.Nil(t, err, "valid refund window must be accepted")

	err = policy.SetRefundWindow(admin, policy.Window{})
	assert.Nil(t, err, "zero window disables refunds")
	assert.True(t, policy.RefundWindow().IsDisabled(), "refund window must be disabled")
}

func TestSetReceiver(t *testing.T) {
	receiver := makeAccount()

	err := policy.SetReceiver(makeAccount(), receiver)
	assert.Equal(t, fault.MissingCapability, err, "non-admin must be rejected")

	err = policy.SetReceiver(admin, receiver)
	assert.Nil(t, err, "admin must be able to set receiver")
	assert.Equal(t, receiver, policy.Receiver(), "stored receiver must match")

	err = policy.SetReceiver(admin, nil)
	assert.Nil(t, err, "admin must be able to clear receiver")
	assert.Nil(t, policy.Receiver(), "receiver must be cleared")
}
