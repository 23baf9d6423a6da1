// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package market - sell, upgrade and refund passes
//
// the engine orchestrates the ledger, the gate, the policy singletons
// and the funds table; every mutating operation runs inside a single
// re-entry critical section and stages all of its ledger writes in one
// storage transaction so the call either fully happens or leaves no
// trace
//
// ordering discipline: all state writes are staged (and visible
// through the transaction cache) before any outbound value transfer
// runs; a failed transfer aborts the staged writes
//
// the market exclusively owns two pieces of state the ledger never
// reads: the purchase receipt timestamps and the per-account state
// (last refund time, active subscription flag, bound card)
package market
