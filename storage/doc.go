// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintains a single LevelDB database split into prefixed pools
//
// Pool layout:
//
//   C ⧺ cardId              - card catalog entry
//                             data: level ⧺ price ⧺ issued ⧺ metadata
//   P ⧺ passNumber          - pass record
//                             data: owner ⧺ cardId
//   T ⧺ passNumber          - purchase receipt
//                             data: unix seconds of acquisition
//   N ⧺ owner               - count of passes held by owner
//                             data: count
//   L ⧺ owner ⧺ position    - dense per-owner list of passes
//                             data: passNumber
//   D ⧺ owner ⧺ passNumber  - position in owner list, for swap-and-pop removal
//                             data: position
//   S ⧺ owner               - market account state
//                             data: lastRefund ⧺ flags ⧺ boundCard
//   F ⧺ currency ⧺ account  - native and aux value balances
//                             data: amount
//   X ⧺ 'N'                 - next pass number to allocate
//                             data: passNumber
//   Z ⧺ key                 - reserved for testing
//
// the N/L/D pools must stay mutually consistent: every pass in L has
// exactly one D entry pointing at its position and N is the length of
// the dense L list; all three are only mutated inside a single
// storage transaction
package storage
