// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - authoritative record of pass ownership
//
// maintains the card catalog and the pass records together with a per
// owner enumerable index:
//
//   OwnerCount  owner             - number of passes held
//   OwnerList   owner ⧺ position  - dense list of pass numbers
//   OwnerIndex  owner ⧺ pass      - position of pass in the list
//
// removal uses swap-with-last-and-pop so issue and revoke are both
// O(1); as a consequence the list order is not creation order and
// callers of PassesOf must not rely on any particular ordering -
// this is a documented contract, not a defect
//
// pass numbers are allocated from a persistent counter starting at 1
// and are never reused, even after revocation
package ledger
