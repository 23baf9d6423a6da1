// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bitmark-inc/logger"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/chain"
	"github.com/tierpass/tierpassd/configuration"
	"github.com/tierpass/tierpassd/fault"
	"github.com/tierpass/tierpassd/funds"
	"github.com/tierpass/tierpassd/gate"
	"github.com/tierpass/tierpassd/ledger"
	"github.com/tierpass/tierpassd/market"
	"github.com/tierpass/tierpassd/mode"
	"github.com/tierpass/tierpassd/policy"
	"github.com/tierpass/tierpassd/roles"
	"github.com/tierpass/tierpassd/storage"
)

const (
	secondsPerHour = 3600
	secondsPerDay  = 86400
)

// bring all subsystems up in dependency order and replay the
// configured roles and policy into the fresh in-memory state
func initialiseSystem(cfg *configuration.Configuration) error {

	if err := logger.Initialise(cfg.Logging); nil != err {
		return err
	}

	if err := mode.Initialise(cfg.Chain); nil != err {
		return err
	}

	if err := storage.Initialise(cfg.DatabasePath(), false); nil != err {
		return err
	}

	if err := ledger.Initialise(); nil != err {
		return err
	}

	admin, err := account.AccountFromBase58(cfg.Market.Admin)
	if nil != err {
		return fmt.Errorf("market.admin: %s", err)
	}
	if err := roles.Initialise(admin); nil != err {
		return err
	}
	for _, signer := range cfg.Market.Signers {
		acc, err := account.AccountFromBase58(signer)
		if nil != err {
			return fmt.Errorf("market.signers: %s", err)
		}
		if err := roles.Grant(admin, acc, roles.Signer); nil != err {
			return err
		}
	}

	if err := policy.Initialise(); nil != err {
		return err
	}
	if err := policy.SetRefundPolicy(admin, policy.RefundPolicy{
		MaxHoldingSeconds: cfg.Policy.MaxHoldingDays * secondsPerDay,
		BaseRate:          cfg.Policy.BaseRate,
		DecayPerDay:       cfg.Policy.DecayPerDay,
		MinRate:           cfg.Policy.MinRate,
		CooldownSeconds:   cfg.Policy.CooldownHours * secondsPerHour,
	}); nil != err {
		return err
	}
	if err := policy.SetPurchaseWindow(admin, policy.Window{
		Start: cfg.Purchases.Start,
		End:   cfg.Purchases.End,
	}); nil != err {
		return err
	}
	if err := policy.SetRefundWindow(admin, policy.Window{
		Start: cfg.Refunds.Start,
		End:   cfg.Refunds.End,
	}); nil != err {
		return err
	}
	if "" != cfg.Market.Receiver {
		receiver, err := account.AccountFromBase58(cfg.Market.Receiver)
		if nil != err {
			return fmt.Errorf("market.receiver: %s", err)
		}
		if err := policy.SetReceiver(admin, receiver); nil != err {
			return err
		}
	}

	if err := funds.Initialise(); nil != err {
		return err
	}

	if err := gate.Initialise(chain.Id(cfg.Chain), cfg.Market.Instance); nil != err {
		return err
	}

	custody, err := account.AccountFromBase58(cfg.Market.Custody)
	if nil != err {
		return fmt.Errorf("market.custody: %s", err)
	}
	if err := market.Initialise(custody); nil != err {
		return err
	}

	mode.Set(mode.Normal)

	return nil
}

// shut down in the reverse order of initialiseSystem
func finaliseSystem() {
	market.Finalise()
	gate.Finalise()
	funds.Finalise()
	policy.Finalise()
	roles.Finalise()
	ledger.Finalise()
	storage.Finalise()
	mode.Finalise()
	logger.Finalise()
}

// run a command body with the full system up
func withSystem(m *metadata, f func() error) error {
	if err := initialiseSystem(m.config); nil != err {
		return err
	}
	defer finaliseSystem()
	return f()
}

// resolve an identity name or base58 string to an account
//
// an empty name falls back to the global identity flag, then to the
// default identity of the identity file
func (m *metadata) accountOf(c contextGlobals, name string) (*account.Account, error) {
	if "" == name {
		name = c.GlobalString("identity")
		if "" == name {
			name = m.identities.DefaultIdentity
		}
	}
	if "" == name {
		return nil, fault.IdentityNotFound
	}

	if acc, err := m.identities.Account(name); nil == err {
		return acc, nil
	}
	return account.AccountFromBase58(name)
}

// resolve an identity to its decrypted private key, prompting for a
// password unless one was supplied with the global flag
func (m *metadata) privateKeyOf(c contextGlobals, name string) (*account.PrivateKey, error) {
	if "" == name {
		name = c.GlobalString("identity")
		if "" == name {
			name = m.identities.DefaultIdentity
		}
	}
	if "" == name {
		return nil, fault.IdentityNotFound
	}

	password := c.GlobalString("password")
	if "" == password {
		var err error
		password, err = promptCheckPasswordReader()
		if nil != err {
			return nil, err
		}
	}

	private, err := m.identities.Private(password, name)
	if nil != err {
		return nil, err
	}
	return private.PrivateKey, nil
}

// the subset of cli.Context used by the resolvers
type contextGlobals interface {
	GlobalString(name string) string
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}
