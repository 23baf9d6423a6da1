// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/tierpass/tierpassd/storage/mocks"
)

const (
	accessDBName = "test-access.leveldb"
)

var (
	accessDB *leveldb.DB
)

func initialiseAccessDB(t *testing.T) {
	if nil == accessDB {
		db, err := leveldb.OpenFile(accessDBName, nil)
		if nil != err {
			t.Fatalf("cannot open test database: %s", err)
		}
		accessDB = db
	}
}

func removeDir(dirName string) {
	dirPath, _ := filepath.Abs(dirName)
	_ = os.RemoveAll(dirPath)
}

func teardownAccessDB() {
	if nil != accessDB {
		_ = accessDB.Close()
		accessDB = nil
	}
	removeDir(accessDBName)
}

func newMockCache(t *testing.T) (*mocks.MockCache, *gomock.Controller) {
	ctl := gomock.NewController(t)
	return mocks.NewMockCache(ctl), ctl
}

func setupDummyMockCache(t *testing.T) (*mocks.MockCache, *gomock.Controller) {
	mockCache, ctl := newMockCache(t)

	mockCache.EXPECT().Get(gomock.Any()).Return([]byte{}, false).AnyTimes()
	mockCache.EXPECT().IsSet(gomock.Any()).Return(false, false).AnyTimes()
	mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockCache.EXPECT().Clear().AnyTimes()

	return mockCache, ctl
}

func TestBeginShouldErrorWhenAlreadyInTransaction(t *testing.T) {
	initialiseAccessDB(t)
	defer teardownAccessDB()

	mc, ctl := setupDummyMockCache(t)
	defer ctl.Finish()
	da := newDA(accessDB, new(leveldb.Batch), mc)

	err := da.Begin()
	assert.Equal(t, nil, err, "first Begin should not error")

	err = da.Begin()
	assert.NotEqual(t, nil, err, "second Begin should return error")
}

func TestCommitReleasesTheBatch(t *testing.T) {
	initialiseAccessDB(t)
	defer teardownAccessDB()

	mc, ctl := setupDummyMockCache(t)
	defer ctl.Finish()
	da := newDA(accessDB, new(leveldb.Batch), mc)

	err := da.Begin()
	assert.Equal(t, nil, err, "Begin should not error")
	assert.True(t, da.InUse(), "transaction should be in use")

	da.Put([]byte("key"), []byte("value"))

	err = da.Commit()
	assert.Equal(t, nil, err, "Commit should not error")
	assert.False(t, da.InUse(), "transaction should be released")

	value, err := da.Get([]byte("key"))
	assert.Equal(t, nil, err, "Get should not error")
	assert.Equal(t, []byte("value"), value, "committed value not stored")
}

func TestAbortDiscardsPendingWrites(t *testing.T) {
	initialiseAccessDB(t)
	defer teardownAccessDB()

	mc, ctl := setupDummyMockCache(t)
	defer ctl.Finish()
	da := newDA(accessDB, new(leveldb.Batch), mc)

	err := da.Begin()
	assert.Equal(t, nil, err, "Begin should not error")

	da.Put([]byte("discarded"), []byte("value"))
	da.Abort()
	assert.False(t, da.InUse(), "transaction should be released")

	value, err := da.Get([]byte("discarded"))
	assert.Equal(t, nil, err, "Get should not error")
	assert.Nil(t, value, "aborted write must not be stored")
}

func TestGetReadsThroughCache(t *testing.T) {
	initialiseAccessDB(t)
	defer teardownAccessDB()

	mockCache, ctl := newMockCache(t)
	defer ctl.Finish()

	pending := []byte("pending value")
	mockCache.EXPECT().Set(dbPut, "key", pending).Times(1)
	mockCache.EXPECT().IsSet("key").Return(true, true).Times(1)
	mockCache.EXPECT().Get("key").Return(pending, true).Times(1)

	da := newDA(accessDB, new(leveldb.Batch), mockCache)

	da.Put([]byte("key"), pending)

	// value is batched, not yet in the database, cache must supply it
	value, err := da.Get([]byte("key"))
	assert.Equal(t, nil, err, "Get should not error")
	assert.Equal(t, pending, value, "pending write not visible")
}

func TestGetSeesStagedDelete(t *testing.T) {
	initialiseAccessDB(t)
	defer teardownAccessDB()

	da := newDA(accessDB, new(leveldb.Batch), newCache())

	err := da.Begin()
	assert.Equal(t, nil, err, "Begin should not error")
	da.Put([]byte("doomed"), []byte("value"))
	err = da.Commit()
	assert.Equal(t, nil, err, "Commit should not error")

	err = da.Begin()
	assert.Equal(t, nil, err, "Begin should not error")
	da.Delete([]byte("doomed"))

	// the delete is only batched, but a read inside the transaction
	// must not see the committed value
	value, err := da.Get([]byte("doomed"))
	assert.Equal(t, nil, err, "Get should not error")
	assert.Nil(t, value, "staged delete still readable")

	present, err := da.Has([]byte("doomed"))
	assert.Equal(t, nil, err, "Has should not error")
	assert.False(t, present, "staged delete still present")

	// abort restores the committed value
	da.Abort()
	value, err = da.Get([]byte("doomed"))
	assert.Equal(t, nil, err, "Get should not error")
	assert.Equal(t, []byte("value"), value, "aborted delete lost the value")
}
