// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package policy - market configuration singletons
//
// the refund policy, the purchase and refund windows and the payment
// receiver; all values are read fresh by the market on every call and
// only change through the admin-gated setters here
package policy

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/fault"
	"github.com/tierpass/tierpassd/roles"
)

// rates are expressed at 100-scale: 80 means 80%
const maximumRate = 100

// RefundPolicy - parameters of the decaying refund
type RefundPolicy struct {
	MaxHoldingSeconds uint64 // 0 means unlimited holding
	BaseRate          uint64 // starting refund percentage, 0-100
	DecayPerDay       uint64 // percentage-of-percentage reduction per held day
	MinRate           uint64 // floor percentage, must not exceed BaseRate
	CooldownSeconds   uint64 // delay after a refund before the next attempt
}

// Window - a time interval during which an operation class is permitted
//
// start == end == 0 means disabled
type Window struct {
	Start int64 // unix seconds, inclusive
	End   int64 // unix seconds, inclusive
}

// IsActive - check the window is enabled and now falls inside it
func (w Window) IsActive(now int64) bool {
	return w.Start < w.End && now >= w.Start && now <= w.End
}

// IsDisabled - check for the zero window
func (w Window) IsDisabled() bool {
	return 0 == w.Start && 0 == w.End
}

// globals
var globalData struct {
	sync.RWMutex
	log *logger.L

	refund         RefundPolicy
	purchaseWindow Window
	refundWindow   Window
	receiver       *account.Account // nil means retain in custody

	// set once during initialise
	initialised bool
}

// Initialise - set up with everything disabled
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("policy")
	globalData.log.Info("starting…")

	globalData.refund = RefundPolicy{}
	globalData.purchaseWindow = Window{}
	globalData.refundWindow = Window{}
	globalData.receiver = nil

	globalData.initialised = true
	return nil
}

// Finalise - tear down
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false
	return nil
}

// SetRefundPolicy - replace the refund policy
//
// rate bounds are checked here, at update time, so the market can
// trust any stored policy
func SetRefundPolicy(by *account.Account, p RefundPolicy) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if !roles.Has(by, roles.Admin) {
		return fault.MissingCapability
	}
	if p.BaseRate > maximumRate || p.MinRate > p.BaseRate {
		return fault.InvalidRefundRate
	}

	globalData.refund = p
	globalData.log.Infof("refund policy: %+v by %s", p, by)
	return nil
}

// SetPurchaseWindow - replace the purchase window
func SetPurchaseWindow(by *account.Account, w Window) error {
	return setWindow(by, w, &globalData.purchaseWindow, "purchase")
}

// SetRefundWindow - replace the refund window
func SetRefundWindow(by *account.Account, w Window) error {
	return setWindow(by, w, &globalData.refundWindow, "refund")
}

func setWindow(by *account.Account, w Window, target *Window, name string) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if !roles.Has(by, roles.Admin) {
		return fault.MissingCapability
	}
	if !w.IsDisabled() && w.Start >= w.End {
		return fault.InvalidTimeWindow
	}

	*target = w
	globalData.log.Infof("%s window: [%d, %d] by %s", name, w.Start, w.End, by)
	return nil
}

// SetReceiver - configure where purchase payments are routed
//
// nil reverts to retaining payments in custody
func SetReceiver(by *account.Account, receiver *account.Account) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if !roles.Has(by, roles.Admin) {
		return fault.MissingCapability
	}
	if nil != receiver && receiver.IsZero() {
		return fault.ZeroAccount
	}

	globalData.receiver = receiver
	if nil == receiver {
		globalData.log.Infof("receiver cleared by %s", by)
	} else {
		globalData.log.Infof("receiver: %s by %s", receiver, by)
	}
	return nil
}

// Refund - current refund policy
func Refund() RefundPolicy {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.refund
}

// PurchaseWindow - current purchase window
func PurchaseWindow() Window {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.purchaseWindow
}

// RefundWindow - current refund window
func RefundWindow() Window {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.refundWindow
}

// Receiver - current payment receiver, nil when retaining in custody
func Receiver() *account.Account {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.receiver
}
