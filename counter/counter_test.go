// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"testing"

	"github.com/tierpass/tierpassd/counter"
)

// ensure the zero value is usable and Increment/Decrement are inverse
func TestCounterRoundTrip(t *testing.T) {

	var c counter.Counter

	if !c.IsZero() {
		t.Fatalf("counter is not zero at start: %d", c.Uint64())
	}

	for i := uint64(1); i <= 5; i += 1 {
		if n := c.Increment(); i != n {
			t.Errorf("increment returned: %d  expected: %d", n, i)
		}
	}

	if 5 != c.Uint64() {
		t.Errorf("counter is: %d  expected: 5", c.Uint64())
	}

	for i := uint64(4); i > 0; i -= 1 {
		if n := c.Decrement(); i != n {
			t.Errorf("decrement returned: %d  expected: %d", n, i)
		}
	}

	c.Decrement()
	if !c.IsZero() {
		t.Errorf("counter did not return to zero: %d", c.Uint64())
	}
}

// the nested-entry detection pattern: only the first increment sees 1
func TestCounterFirstEntry(t *testing.T) {

	var c counter.Counter

	if 1 != c.Increment() {
		t.Fatalf("first increment did not return 1")
	}
	if 1 == c.Increment() {
		t.Fatalf("second increment returned 1")
	}

	c.Decrement()
	c.Decrement()

	if 1 != c.Increment() {
		t.Errorf("counter cannot be re-entered after release")
	}
}

// decrementing past zero wraps to twos complement -1
func TestCounterUnderflow(t *testing.T) {

	var c counter.Counter

	c.Decrement()
	if ^uint64(0) != c.Uint64() {
		t.Errorf("counter did not underflow: %d", c.Uint64())
	}
}
