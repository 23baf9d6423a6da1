// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"math"

	"github.com/tierpass/tierpassd/account"
	"github.com/tierpass/tierpassd/currency"
	"github.com/tierpass/tierpassd/fault"
	"github.com/tierpass/tierpassd/funds"
	"github.com/tierpass/tierpassd/ledger"
	"github.com/tierpass/tierpassd/mode"
	"github.com/tierpass/tierpassd/policy"
	"github.com/tierpass/tierpassd/storage"
)

const secondsPerDay = 86400

// Unbounded - TimeLeft value when the policy sets no holding limit
const Unbounded = uint64(math.MaxUint64)

// Eligibility - outcome of the refund pre-flight
type Eligibility struct {
	Eligible bool
	Amount   uint64 // native value a refund would pay now
	TimeLeft uint64 // seconds left in the holding window, Unbounded when unlimited
	Reason   error  // nil when eligible
}

func ineligible(reason error) Eligibility {
	return Eligibility{Reason: reason}
}

// CheckEligibility - evaluate the refund precondition chain
//
// a pure read: same state and same now give the same answer; checks
// run in a fixed order and the first failure becomes the reason
//
// the cooldown is keyed by the calling account while the one-lifetime
// refund is keyed by the claimed owner; these coincide when callers
// refund for themselves but they are distinct state keys
func CheckEligibility(caller *account.Account, passNumber uint64, claimedOwner *account.Account, now int64) Eligibility {
	if nil == caller || nil == claimedOwner {
		return ineligible(fault.ZeroAccount)
	}

	if !policy.RefundWindow().IsActive(now) {
		return ineligible(fault.RefundWindowClosed)
	}

	owner, err := ledger.OwnerOf(passNumber)
	if nil != err {
		return ineligible(fault.UnknownPass)
	}
	if owner.String() != claimedOwner.String() {
		return ineligible(fault.NotAPassOwner)
	}

	purchaseTime, ok := storage.Pool.PurchaseTimes.GetN(receiptKey(passNumber))
	if !ok {
		return ineligible(fault.MissingPurchaseTime)
	}

	p := policy.Refund()

	heldSeconds := uint64(0)
	if uint64(now) > purchaseTime {
		heldSeconds = uint64(now) - purchaseTime
	}

	timeLeft := Unbounded
	if 0 != p.MaxHoldingSeconds {
		if heldSeconds > p.MaxHoldingSeconds {
			return ineligible(fault.HoldingPeriodExceeded)
		}
		timeLeft = p.MaxHoldingSeconds - heldSeconds
	}

	callerState := fetchState(caller)
	if 0 != callerState.lastRefund && uint64(now) <= callerState.lastRefund+p.CooldownSeconds {
		return ineligible(fault.CooldownActive)
	}

	if 0 != fetchState(claimedOwner).lastRefund {
		return ineligible(fault.AlreadyRefunded)
	}

	cardId, err := ledger.CardOf(passNumber)
	if nil != err {
		return ineligible(err)
	}
	card, err := ledger.CardInfo(cardId)
	if nil != err {
		return ineligible(err)
	}

	rate := decayedRate(p, heldSeconds/secondsPerDay)
	return Eligibility{
		Eligible: true,
		Amount:   refundAmount(card.Price, rate),
		TimeLeft: timeLeft,
	}
}

// Refund - give back a pass for its decayed value
//
// eligibility is re-evaluated here, a stale pre-flight is never
// trusted; the refund time is recorded and the pass revoked before
// the payout leaves custody
func Refund(caller *account.Account, passNumber uint64, now int64) (uint64, error) {
	if err := enter(); nil != err {
		return 0, err
	}
	defer leave()

	globalData.RLock()
	initialised := globalData.initialised
	custody := globalData.custody
	log := globalData.log
	globalData.RUnlock()

	if !initialised {
		return 0, fault.NotInitialised
	}
	if mode.IsNot(mode.Normal) {
		return 0, fault.Paused
	}
	if nil == caller || caller.IsZero() {
		return 0, fault.ZeroAccount
	}

	e := CheckEligibility(caller, passNumber, caller, now)
	if !e.Eligible {
		return 0, e.Reason
	}

	if funds.Balance(currency.Native, custody) < e.Amount {
		return 0, fault.InsufficientCustody
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	// the lifetime refund is burned before any value moves; the
	// active flag stays set, a refunded account does not re-enter
	// the purchase path
	state := fetchState(caller)
	state.lastRefund = uint64(now)
	storeState(trx, caller, state)

	if err := ledger.Revoke(trx, passNumber); nil != err {
		trx.Abort()
		return 0, err
	}
	trx.Delete(storage.Pool.PurchaseTimes, receiptKey(passNumber))

	if err := funds.Send(trx, currency.Native, custody, caller, e.Amount); nil != err {
		trx.Abort()
		return 0, err
	}

	if err := trx.Commit(); nil != err {
		return 0, err
	}

	log.Infof("refund: pass %d to %s paid %d", passNumber, caller, e.Amount)
	return e.Amount, nil
}
