// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"math/big"

	"github.com/tierpass/tierpassd/policy"
)

// internal fixed-point scale for the decay arithmetic
//
// decayPerDay is at 100-scale so a value like 33 means 0.33% per day;
// scaling before the divide keeps sub-integer daily decay from being
// truncated away
var fixedPointScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

var oneHundred = big.NewInt(100)

// decayedRate - refund percentage after a number of held days
//
// non-increasing in holdingDays, floored at the policy minimum,
// exactly the base rate at zero days
func decayedRate(p policy.RefundPolicy, holdingDays uint64) uint64 {
	if 0 == holdingDays {
		return p.BaseRate
	}

	rate := new(big.Int).SetUint64(p.BaseRate)
	rate.Mul(rate, fixedPointScale)

	reduction := new(big.Int).SetUint64(holdingDays)
	reduction.Mul(reduction, new(big.Int).SetUint64(p.DecayPerDay))
	reduction.Mul(reduction, fixedPointScale)
	reduction.Div(reduction, oneHundred)

	if reduction.Cmp(rate) >= 0 {
		return p.MinRate
	}

	rate.Sub(rate, reduction)
	rate.Div(rate, fixedPointScale)

	result := rate.Uint64()
	if result < p.MinRate {
		return p.MinRate
	}
	return result
}

// refundAmount - price scaled by a 100-scale rate
func refundAmount(price uint64, rate uint64) uint64 {
	amount := new(big.Int).SetUint64(price)
	amount.Mul(amount, new(big.Int).SetUint64(rate))
	amount.Div(amount, oneHundred)
	return amount.Uint64()
}
