// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Transaction - batched mutation of any number of pools
//
// every external call that mutates the store runs inside exactly one
// transaction; reads through the transaction observe its own pending
// writes, nothing reaches the database until Commit
type Transaction interface {
	Begin() error
	Abort()
	Commit() error
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	GetNB(*PoolHandle, []byte) (uint64, []byte)
	Has(*PoolHandle, []byte) bool
	InUse() bool
}

// TransactionImpl - concrete transaction over the shared data access
type TransactionImpl struct {
	dataAccess Access
}

func newTransaction(access Access) Transaction {
	return &TransactionImpl{
		dataAccess: access,
	}
}

// Begin - claim the shared batch
func (t *TransactionImpl) Begin() error {
	return t.dataAccess.Begin()
}

// Abort - discard all pending writes
func (t *TransactionImpl) Abort() {
	t.dataAccess.Abort()
}

// Commit - atomically write all pending writes
func (t *TransactionImpl) Commit() error {
	return t.dataAccess.Commit()
}

// Put - batch a put on a pool
func (t *TransactionImpl) Put(p *PoolHandle, key []byte, value []byte) {
	p.put(key, value)
}

// PutN - batch a big endian uint64 put on a pool
func (t *TransactionImpl) PutN(p *PoolHandle, key []byte, value uint64) {
	p.putN(key, value)
}

// Delete - batch a delete on a pool
func (t *TransactionImpl) Delete(p *PoolHandle, key []byte) {
	p.remove(key)
}

// Get - read through pending writes
func (t *TransactionImpl) Get(p *PoolHandle, key []byte) []byte {
	return p.Get(key)
}

// GetN - read a uint64 through pending writes
func (t *TransactionImpl) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	return p.GetN(key)
}

// GetNB - read a uint64 + bytes through pending writes
func (t *TransactionImpl) GetNB(p *PoolHandle, key []byte) (uint64, []byte) {
	return p.GetNB(key)
}

// Has - check presence through pending writes
func (t *TransactionImpl) Has(p *PoolHandle, key []byte) bool {
	return p.Has(key)
}

// InUse - check if the transaction has been begun and not finished
func (t *TransactionImpl) InUse() bool {
	return t.dataAccess.InUse()
}
