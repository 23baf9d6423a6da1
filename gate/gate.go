// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gate - signature admission for market operations
//
// a caller is admitted when it presents a signature by any account
// holding the signer capability over a digest binding the caller to
// this chain and this instance; authorisations therefore cannot be
// replayed across chains or deployments
package gate

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/fault"
	"github.com/tierpass/tierpassd/roles"
)

// prefix to stop cross-protocol digest reuse
const digestPrefix = "tierpass.gate.v1:"

// globals
var globalData struct {
	sync.RWMutex
	log *logger.L

	chainId  uint64
	instance string

	// set once during initialise
	initialised bool
}

// Initialise - bind the gate to one chain and one deployment instance
func Initialise(chainId uint64, instance string) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}
	if 0 == chainId {
		return fault.InvalidChain
	}

	globalData.log = logger.New("gate")
	globalData.log.Infof("starting… chain: %d  instance: %q", chainId, instance)

	globalData.chainId = chainId
	globalData.instance = instance

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

// Digest - the value a signer must sign to admit a caller
func Digest(caller *account.Account) ([]byte, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}
	if nil == caller || caller.IsZero() {
		return nil, fault.ZeroAccount
	}

	message := make([]byte, 0, len(digestPrefix)+len(caller.Bytes())+8+len(globalData.instance))
	message = append(message, digestPrefix...)
	message = append(message, caller.Bytes()...)

	chainId := make([]byte, 8)
	binary.BigEndian.PutUint64(chainId, globalData.chainId)
	message = append(message, chainId...)
	message = append(message, globalData.instance...)

	digest := sha3.Sum256(message)
	return digest[:], nil
}

// Authorize - check a caller's admission signature
//
// returns nil when the signature over Digest(caller) verifies against
// any account currently holding the signer capability
func Authorize(caller *account.Account, signature account.Signature) error {
	digest, err := Digest(caller)
	if nil != err {
		return err
	}

	for _, signer := range roles.SignerAccounts() {
		if nil == signer.CheckSignature(digest, signature) {
			return nil
		}
	}

	globalData.RLock()
	globalData.log.Warnf("rejected admission for %s", caller)
	globalData.RUnlock()
	return fault.InvalidSigner
}
