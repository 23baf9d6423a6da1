// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"

	"github.com/tierpass/tierpassd/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Cards          *PoolHandle `prefix:"C"`
	Passes         *PoolHandle `prefix:"P"`
	PurchaseTimes  *PoolHandle `prefix:"T"`
	OwnerCount     *PoolHandle `prefix:"N"`
	OwnerList      *PoolHandle `prefix:"L"`
	OwnerIndex     *PoolHandle `prefix:"D"`
	AccountStates  *PoolHandle `prefix:"S"`
	Funds          *PoolHandle `prefix:"F"`
	NextPassNumber *PoolHandle `prefix:"X"`
	TestData       *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
	uint64ByteSize   = 8
)

// holds the database handle
var poolData struct {
	sync.Mutex
	db     *leveldb.DB
	access Access
	trx    Transaction
}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string, readOnly bool) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.db {
		return fault.AlreadyInitialised
	}

	ok := false
	defer func() {
		if !ok {
			dbClose()
		}
	}()

	db, version, err := getDB(database, readOnly)
	if nil != err {
		return err
	}
	poolData.db = db

	// ensure no database downgrade
	if version > currentDBVersion {
		logger.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return fault.DatabaseVersionTooNew
	}

	if 0 == version && !readOnly {
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			return err
		}
	}

	poolData.access = newDA(db, new(leveldb.Batch), newCache())
	poolData.trx = newTransaction(poolData.access)

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			logger.Panicf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix:     prefix,
			limit:      limit,
			dataAccess: poolData.access,
		}

		newPool := reflect.ValueOf(p)
		poolValue.Field(i).Set(newPool)
	}

	ok = true
	return nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()
	dbClose()
}

// NewDBTransaction - obtain the global transaction
//
// only one transaction can be pending at a time; the caller must
// finish with Commit or Abort
func NewDBTransaction() (Transaction, error) {
	if nil == poolData.trx {
		return nil, fault.NotInitialised
	}
	err := poolData.trx.Begin()
	if nil != err {
		return nil, fault.TransactionInUse
	}
	return poolData.trx, nil
}

// IsTransactionPending - check if a transaction is in progress
func IsTransactionPending() bool {
	if nil == poolData.trx {
		return false
	}
	return poolData.trx.InUse()
}

// PendingTransaction - the transaction currently in progress
//
// for code reached from inside a transaction that needs to stage
// further writes; nil when nothing is pending
func PendingTransaction() Transaction {
	if !IsTransactionPending() {
		return nil
	}
	return poolData.trx
}

// needs to be called with poolData locked
func dbClose() {
	if nil != poolData.db {
		if err := poolData.db.Close(); nil != err {
			logger.Criticalf("database close error: %s", err)
		}
		poolData.db = nil
		poolData.access = nil
		poolData.trx = nil
	}
}

// open the database and read its version tag
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		_ = db.Close()
		return nil, 0, err
	}

	if uint64ByteSize != len(versionValue) {
		_ = db.Close()
		return nil, 0, fault.WrongDatabaseVersion
	}

	version := int(binary.BigEndian.Uint64(versionValue))
	return db, version, nil
}

// write the version tag
func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(currentVersion, uint64(version))

	return db.Put(versionKey, currentVersion, nil)
}

// ClearTestData - wipe the test data pool, testing only
func ClearTestData() {
	if nil == poolData.db {
		return
	}
	iter := poolData.db.NewIterator(&ldb_util.Range{Start: []byte{'Z'}, Limit: []byte{'Z' + 1}}, nil)
	defer iter.Release()
	for iter.Next() {
		_ = poolData.db.Delete(iter.Key(), nil)
	}
}
