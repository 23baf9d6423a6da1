// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identities - the identity file of the command line tool
//
// a JSON file of named accounts; private keys are stored encrypted
// with a key derived from a per-identity password
package identities

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/fault"
)

// Store - identity file data format
type Store struct {
	DefaultIdentity string              `json:"default_identity"`
	TestNet         bool                `json:"testnet"`
	Identities      map[string]Identity `json:"identities"`
}

// Identity - mix of plain and encrypted data
type Identity struct {
	Description string `json:"description"`
	Account     string `json:"account"`
	Data        string `json:"data"` // encrypted private key, hex
	Salt        string `json:"salt"`
}

// Private - decrypted identity
type Private struct {
	PrivateKey  *account.PrivateKey
	Description string
}

// New - an empty store
func New(testnet bool) *Store {
	return &Store{
		TestNet:    testnet,
		Identities: make(map[string]Identity),
	}
}

// Load - read the identity file
func Load(fileName string) (*Store, error) {
	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	f, err := os.Open(fileName)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	store := &Store{}
	if err := json.NewDecoder(f).Decode(store); nil != err {
		return nil, err
	}
	if nil == store.Identities {
		store.Identities = make(map[string]Identity)
	}
	return store, nil
}

// Save - write the identity file, keeping the previous version
func Save(fileName string, store *Store) error {
	tempFile := fileName + ".new"
	previousFile := fileName + ".bk"

	_ = os.Remove(tempFile)

	data, err := json.MarshalIndent(store, "", "  ")
	if nil != err {
		return err
	}
	if err := ioutil.WriteFile(tempFile, append(data, '\n'), 0600); nil != err {
		return err
	}

	if err := os.Remove(previousFile); nil != err && !os.IsNotExist(err) {
		return err
	}
	if err := os.Rename(fileName, previousFile); nil != err && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tempFile, fileName)
}

// Identity - find identity for a given name
func (store *Store) Identity(name string) (*Identity, error) {
	id, ok := store.Identities[name]
	if !ok {
		return nil, fault.IdentityNotFound
	}
	return &id, nil
}

// Account - find identity for a given name and convert to an account
func (store *Store) Account(name string) (*account.Account, error) {
	id, err := store.Identity(name)
	if nil != err {
		return nil, err
	}
	return account.AccountFromBase58(id.Account)
}

// Private - find identity and decrypt its private key
func (store *Store) Private(password string, name string) (*Private, error) {
	id, err := store.Identity(name)
	if nil != err {
		return nil, err
	}
	return decryptIdentity(password, id)
}

// AddIdentity - store an encrypted identity, set it as default when first
func (store *Store) AddIdentity(name string, description string, privateKey *account.PrivateKey, password string) error {
	if _, ok := store.Identities[name]; ok {
		return fault.IdentityExists
	}

	salt, secretKey, err := hashPassword(password)
	if nil != err {
		return err
	}

	encrypted, err := encryptData(privateKey.String(), secretKey)
	if nil != err {
		return err
	}

	store.Identities[name] = Identity{
		Description: description,
		Account:     privateKey.Account().String(),
		Data:        encrypted,
		Salt:        salt.String(),
	}
	if "" == store.DefaultIdentity {
		store.DefaultIdentity = name
	}
	return nil
}

// AddReceiveOnlyIdentity - store a public-only identity
func (store *Store) AddReceiveOnlyIdentity(name string, description string, acc string) error {
	if _, ok := store.Identities[name]; ok {
		return fault.IdentityExists
	}

	if _, err := account.AccountFromBase58(acc); nil != err {
		return err
	}

	store.Identities[name] = Identity{
		Description: description,
		Account:     acc,
	}
	return nil
}
