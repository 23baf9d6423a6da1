// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/counter"
	"github.com/tierpass/tierpassd/fault"
)

// globals
var globalData struct {
	sync.RWMutex
	log *logger.L

	custody *account.Account

	// depth of nested mutating calls, anything past 1 is re-entry
	entry counter.Counter

	// set once during initialise
	initialised bool
}

// Initialise - bind the engine to its custody account
//
// the custody account holds payments pending routing, refund payouts
// and the sweepable residue
func Initialise(custody *account.Account) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}
	if nil == custody || custody.IsZero() {
		return fault.ZeroAccount
	}

	globalData.log = logger.New("market")
	globalData.log.Infof("starting… custody: %s", custody)

	globalData.custody = custody

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

// Custody - the engine's custody account
func Custody() *account.Account {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.custody
}

// enter - claim the mutation critical section
//
// a receive hook that calls back into the engine lands here on the
// same goroutine, so this must be a counter and not a mutex
func enter() error {
	if 1 != globalData.entry.Increment() {
		globalData.entry.Decrement()
		return fault.ReentrancyDetected
	}
	return nil
}

// leave - release the critical section
func leave() {
	globalData.entry.Decrement()
}
