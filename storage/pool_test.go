// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	poolDBName = "test-pool.leveldb"
)

func TestMain(m *testing.M) {
	removeDir(poolDBName)
	err := Initialise(poolDBName, ReadWrite)
	if nil != err {
		fmt.Printf("storage initialise error: %s\n", err)
		os.Exit(1)
	}

	result := m.Run()

	Finalise()
	removeDir(poolDBName)
	os.Exit(result)
}

// write through a transaction, check read-back before and after commit
func TestPoolPutGet(t *testing.T) {
	key := []byte("put-get")
	value := []byte("some data")

	trx, err := NewDBTransaction()
	assert.Nil(t, err, "transaction begin failed")

	trx.Put(Pool.TestData, key, value)

	// pending write must already be visible through the pool
	assert.Equal(t, value, Pool.TestData.Get(key), "pending write not readable")

	err = trx.Commit()
	assert.Nil(t, err, "commit failed")

	assert.Equal(t, value, Pool.TestData.Get(key), "committed write not readable")
	assert.True(t, Pool.TestData.Has(key), "Has failed after commit")

	// clean up
	trx, err = NewDBTransaction()
	assert.Nil(t, err, "transaction begin failed")
	trx.Delete(Pool.TestData, key)
	err = trx.Commit()
	assert.Nil(t, err, "commit failed")

	assert.Nil(t, Pool.TestData.Get(key), "deleted key still present")
}

// a second transaction cannot start while one is pending
func TestOnlyOneTransaction(t *testing.T) {
	trx, err := NewDBTransaction()
	assert.Nil(t, err, "transaction begin failed")

	_, err = NewDBTransaction()
	assert.NotNil(t, err, "expected second transaction to fail")

	trx.Abort()

	trx, err = NewDBTransaction()
	assert.Nil(t, err, "transaction begin after abort failed")
	trx.Abort()
}

// numeric records round trip
func TestPoolGetN(t *testing.T) {
	key := []byte("counter")

	trx, err := NewDBTransaction()
	assert.Nil(t, err, "transaction begin failed")
	trx.PutN(Pool.TestData, key, 42)
	err = trx.Commit()
	assert.Nil(t, err, "commit failed")

	n, found := Pool.TestData.GetN(key)
	assert.True(t, found, "numeric record not found")
	assert.Equal(t, uint64(42), n, "wrong numeric value")

	_, found = Pool.TestData.GetN([]byte("no such key"))
	assert.False(t, found, "missing record reported as found")
}

// cursor iterates a prefix range in key order
func TestCursorFetch(t *testing.T) {
	ClearTestData()

	trx, err := NewDBTransaction()
	assert.Nil(t, err, "transaction begin failed")
	for i := 0; i < 5; i += 1 {
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, uint64(i))
		trx.Put(Pool.TestData, key, []byte{byte('a' + i)})
	}
	err = trx.Commit()
	assert.Nil(t, err, "commit failed")

	cursor := Pool.TestData.NewFetchCursor()

	first, err := cursor.Fetch(3)
	assert.Nil(t, err, "fetch failed")
	assert.Equal(t, 3, len(first), "wrong first batch size")

	rest, err := cursor.Fetch(10)
	assert.Nil(t, err, "fetch failed")
	assert.Equal(t, 2, len(rest), "wrong second batch size")

	assert.Equal(t, []byte{'a'}, first[0].Value, "wrong first element")
	assert.Equal(t, []byte{'e'}, rest[1].Value, "wrong last element")

	ClearTestData()
}
