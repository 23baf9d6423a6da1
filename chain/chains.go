// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	TierPass = "tierpass"
	Testing  = "testing"
	Local    = "local"
)

// numeric chain identifiers, bound into purchase authorizations
// so a signature for one chain cannot replay on another
const (
	TierPassId uint64 = 1
	TestingId  uint64 = 2
	LocalId    uint64 = 3
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case TierPass, Testing, Local:
		return true
	default:
		return false
	}
}

// Id - numeric identifier for a chain name
//
// returns zero for an invalid name
func Id(name string) uint64 {
	switch name {
	case TierPass:
		return TierPassId
	case Testing:
		return TestingId
	case Local:
		return LocalId
	default:
		return 0
	}
}
