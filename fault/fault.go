// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised    = ProcessError("already initialised")
	AlreadyRefunded       = InvalidError("already used one-time refund chance")
	CannotDecodeAccount   = RecordError("cannot decode account")
	CannotDecodePrivate   = RecordError("cannot decode private key")
	CardLocked            = InvalidError("account is bound to a different card")
	ChecksumMismatch      = ProcessError("checksum mismatch")
	CooldownActive        = InvalidError("refund cooldown is active")
	CryptoFailed          = ProcessError("crypto failed")
	DatabaseVersionTooNew = ProcessError("database version too new")
	DuplicateCard         = ExistsError("duplicate card")
	HoldingPeriodExceeded = InvalidError("maximum holding period exceeded")
	IdentityExists        = ExistsError("identity name already exists")
	IdentityNotFound      = NotFoundError("identity name not found")
	InsufficientCustody   = InvalidError("insufficient custody balance")
	InsufficientFunds     = InvalidError("insufficient funds")
	InsufficientPayment   = InvalidError("insufficient payment")
	InvalidCapability     = InvalidError("invalid capability")
	InvalidChain          = InvalidError("invalid chain")
	InvalidCount          = InvalidError("invalid count")
	InvalidCurrency       = InvalidError("invalid currency")
	InvalidCursor         = InvalidError("invalid cursor")
	InvalidKeyLength      = InvalidError("invalid key length")
	InvalidKeyType        = InvalidError("invalid key type")
	InvalidLevelOrdering  = InvalidError("new card level must be higher")
	InvalidPasswordLength = InvalidError("invalid password length")
	InvalidPriceOrdering  = InvalidError("new card price must be higher")
	InvalidRefundRate     = InvalidError("refund rate is out of range")
	InvalidSignature      = InvalidError("invalid signature")
	InvalidSigner         = InvalidError("invalid signer")
	InvalidStructPointer  = InvalidError("invalid struct pointer")
	InvalidTimeWindow     = InvalidError("invalid time window")
	MissingCapability     = InvalidError("account lacks the required capability")
	MissingPurchaseTime   = NotFoundError("missing purchase timestamp")
	NotAPassOwner         = InvalidError("not the owner of this pass")
	NotCardPack           = RecordError("not a card pack record")
	NotInitialised        = ProcessError("not initialised")
	NotPassPack           = RecordError("not a pass pack record")
	NotPrivateKey         = RecordError("not a private key")
	NotPublicKey          = RecordError("not a public key")
	PassAlreadyHeld       = InvalidError("account already holds a pass")
	PasswordMismatch      = InvalidError("password mismatch")
	Paused                = ProcessError("market is paused")
	PriceIsZero           = InvalidError("card has no price")
	PurchaseWindowClosed  = InvalidError("purchase window is not active")
	ReentrancyDetected    = ProcessError("re-entrant market call")
	RefundWindowClosed    = InvalidError("refund window is not active")
	RefundWindowStillOpen = InvalidError("refund window is still open")
	SubscriptionActive    = InvalidError("account already has an active subscription")
	TransactionInUse      = ProcessError("transaction already in use")
	TransferFailed        = ProcessError("value transfer failed")
	UnknownCard           = NotFoundError("unknown card")
	UnknownPass           = NotFoundError("unknown pass")
	WrongDatabaseVersion  = ProcessError("wrong database version")
	WrongPassword         = InvalidError("wrong password")
	ZeroAccount           = InvalidError("account cannot be zero")
	ZeroCardId            = InvalidError("card id cannot be zero")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
