// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package roles - capability registry
//
// a flat mapping from account to capability bits; grant and revoke
// are the only mutators and both require the granting account to
// hold Admin
package roles

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/fault"
)

// Capability - a single capability tag
type Capability int

// all capabilities
const (
	Admin    Capability = iota // role administration, card catalog, custody sweep
	Signer   Capability = iota // authorises purchases
	Marketer Capability = iota // may drive market maintenance operations
	maximum  Capability = iota
)

// String - capability represented as a string
func (c Capability) String() string {
	switch c {
	case Admin:
		return "admin"
	case Signer:
		return "signer"
	case Marketer:
		return "marketer"
	default:
		return "*unknown*"
	}
}

type holder struct {
	account      *account.Account
	capabilities [maximum]bool
}

// globals
var globalData struct {
	sync.RWMutex
	log     *logger.L
	holders map[string]*holder

	// set once during initialise
	initialised bool
}

// Initialise - set up the registry granting Admin to the owner account
func Initialise(owner *account.Account) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	if nil == owner || owner.IsZero() {
		return fault.ZeroAccount
	}

	globalData.log = logger.New("roles")
	globalData.log.Info("starting…")

	globalData.holders = make(map[string]*holder)

	h := &holder{account: owner}
	h.capabilities[Admin] = true
	globalData.holders[owner.String()] = h

	globalData.log.Infof("bootstrap admin: %s", owner)

	globalData.initialised = true
	return nil
}

// Finalise - tear down the registry
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.holders = nil
	globalData.initialised = false
	return nil
}

// Grant - give a capability to an account
//
// the granting account must hold Admin
func Grant(by *account.Account, to *account.Account, capability Capability) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if capability < 0 || capability >= maximum {
		return fault.InvalidCapability
	}
	if nil == to || to.IsZero() {
		return fault.ZeroAccount
	}
	if !hasInternal(by, Admin) {
		return fault.MissingCapability
	}

	key := to.String()
	h, ok := globalData.holders[key]
	if !ok {
		h = &holder{account: to}
		globalData.holders[key] = h
	}
	h.capabilities[capability] = true

	globalData.log.Infof("grant %s to %s by %s", capability, to, by)
	return nil
}

// Revoke - remove a capability from an account
//
// the revoking account must hold Admin
func Revoke(by *account.Account, from *account.Account, capability Capability) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if capability < 0 || capability >= maximum {
		return fault.InvalidCapability
	}
	if !hasInternal(by, Admin) {
		return fault.MissingCapability
	}

	if nil == from {
		return fault.ZeroAccount
	}
	h, ok := globalData.holders[from.String()]
	if ok {
		h.capabilities[capability] = false
	}

	globalData.log.Infof("revoke %s from %s by %s", capability, from, by)
	return nil
}

// Has - check whether an account holds a capability
func Has(acc *account.Account, capability Capability) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return hasInternal(acc, capability)
}

// SignerAccounts - all accounts currently holding the Signer capability
func SignerAccounts() []*account.Account {
	globalData.RLock()
	defer globalData.RUnlock()

	signers := make([]*account.Account, 0, 1)
	for _, h := range globalData.holders {
		if h.capabilities[Signer] {
			signers = append(signers, h.account)
		}
	}
	return signers
}

// must hold at least a read lock before calling
func hasInternal(acc *account.Account, capability Capability) bool {
	if nil == acc || capability < 0 || capability >= maximum {
		return false
	}
	h, ok := globalData.holders[acc.String()]
	if !ok {
		return false
	}
	return h.capabilities[capability]
}
