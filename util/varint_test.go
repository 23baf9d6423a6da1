// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/tierpass/tierpassd/util"
)

// boundary encodings, including both nine byte forms
var varintEncodings = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{0x7f, []byte{0x7f}},
	{0x80, []byte{0x80, 0x01}},
	{0x3fff, []byte{0xff, 0x7f}},
	{0x4000, []byte{0x80, 0x80, 0x01}},
	{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{0x8000000000000000, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

func TestVarint64Encoding(t *testing.T) {

	for i, item := range varintEncodings {
		encoded := util.ToVarint64(item.value)
		if !bytes.Equal(encoded, item.encoded) {
			t.Errorf("%d: encode %x -> %x  expected: %x", i, item.value, encoded, item.encoded)
		}

		decoded, count := util.FromVarint64(item.encoded)
		if decoded != item.value || len(item.encoded) != count {
			t.Errorf("%d: decode %x -> %d, %d  expected: %d, %d",
				i, item.encoded, decoded, count, item.value, len(item.encoded))
		}
	}
}

// decoding must stop at the value and leave trailing record bytes
// untouched, the way card unpacking consumes field by field
func TestVarint64LeavesSuffix(t *testing.T) {

	suffix := []byte{0x09, 0xf0, 0x33}

	for i, item := range varintEncodings {
		buffer := append(append([]byte{}, item.encoded...), suffix...)

		decoded, count := util.FromVarint64(buffer)
		if decoded != item.value {
			t.Errorf("%d: decode %x -> %d  expected: %d", i, buffer, decoded, item.value)
		}
		if !bytes.Equal(suffix, buffer[count:]) {
			t.Errorf("%d: suffix: %x  expected: %x", i, buffer[count:], suffix)
		}
	}
}

// every value must survive a round trip
func TestVarint64RoundTrip(t *testing.T) {

	for shift := uint(0); shift < 64; shift += 1 {
		value := uint64(1) << shift
		decoded, count := util.FromVarint64(util.ToVarint64(value))
		if decoded != value || 0 == count {
			t.Errorf("round trip %x -> %x", value, decoded)
		}
	}
}

func TestVarint64Truncated(t *testing.T) {

	truncated := [][]byte{
		{},
		{0x80},
		{0x80, 0x80},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	}

	for i, item := range truncated {
		decoded, count := util.FromVarint64(item)
		if 0 != decoded || 0 != count {
			t.Errorf("%d: decode %x -> %d, %d  expected: 0, 0", i, item, decoded, count)
		}
	}
}
