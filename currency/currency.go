// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/tierpass/tierpassd/fault"
)

// Currency - currency enumeration
//
// the market settles in Native; Aux is the single secondary asset
// that can accumulate in custody and only leaves via the sweep
type Currency uint64

// possible currency values
const (
	Nothing      Currency = iota // this must be the first value
	Native       Currency = iota
	Aux          Currency = iota
	maximumValue Currency = iota // this must be the last value
	First        Currency = Nothing + 1
	Last         Currency = maximumValue - 1
	Count        int      = int(Last) // count of currencies
)

// internal conversion
func toString(c Currency) ([]byte, error) {
	switch c {
	case Nothing:
		return []byte{}, nil
	case Native:
		return []byte("TPN"), nil
	case Aux:
		return []byte("AUX"), nil
	default:
		return []byte{}, fault.InvalidCurrency
	}
}

// convert a string to a currency
func fromString(in string) (Currency, error) {
	switch strings.ToLower(in) {
	case "":
		return Nothing, nil
	case "tpn", "native":
		return Native, nil
	case "aux":
		return Aux, nil
	default:
		return Nothing, fault.InvalidCurrency
	}
}

// FromString - convert a currency symbol to its enumeration
func FromString(in string) (Currency, error) {
	return fromString(in)
}

// FromUint64 - convert a stored numeric value to a currency
func FromUint64(n uint64) (Currency, error) {
	c := Currency(n)
	if c < First || c > Last {
		return Nothing, fault.InvalidCurrency
	}
	return c, nil
}

// Uint64 - convert a currency to its numeric value for storage
func (currency Currency) Uint64() uint64 {
	return uint64(currency)
}

// String - convert a currency to its string symbol
func (currency Currency) String() string {
	s, err := toString(currency)
	if nil != err {
		logger.Panicf("invalid currency enumeration: %d", currency)
	}
	return string(s)
}

// GoString - convert both enum value and symbol, for debugging
func (currency Currency) GoString() string {
	return fmt.Sprintf("<Currency#%d:%q>", currency, currency.String())
}

// MarshalText - convert currency to text
func (currency Currency) MarshalText() ([]byte, error) {
	s, err := toString(currency)
	if nil != err {
		return []byte{}, err
	}
	return s, nil
}

// UnmarshalText - convert text to a currency
func (currency *Currency) UnmarshalText(s []byte) error {
	c, err := fromString(string(s))
	if nil != err {
		return err
	}
	*currency = c
	return nil
}
