// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package optimap

import (
	"math/bits"
	"strings"
)

// Each slot in the table has a control byte with one of three states:
//
//	   empty: 1 0 0 0 0 0 0 0  (-128)
//	 deleted: 1 1 1 1 1 1 1 0  (-2)
//	occupied: 0 h h h h h h h  // h is the H2 portion of hash(key)
//
// The top bit distinguishes occupied slots (clear) from empty and
// deleted slots (set), which is what makes matchEmptyOrDeleted a
// single sign test per byte.
type ctrl int8

const (
	ctrlEmpty   ctrl = -128
	ctrlDeleted ctrl = -2
)

// bitset is the result of matching a 16-byte control group: bit i is
// set iff slot i of the group matched. It is consumed as an iterator
// of low-to-high set bits.
type bitset uint16

// first returns the index within the group of the lowest set bit.
// Returns groupWidth if the bitset is empty.
func (b bitset) first() uintptr {
	return uintptr(bits.TrailingZeros16(uint16(b)))
}

// removeFirst clears the lowest set bit.
func (b bitset) removeFirst() bitset {
	return b & (b - 1)
}

func (b bitset) String() string {
	var buf strings.Builder
	buf.Grow(groupWidth)
	for i := 0; i < groupWidth; i++ {
		if b&(1<<i) != 0 {
			buf.WriteString("1")
		} else {
			buf.WriteString("0")
		}
	}
	return buf.String()
}

// matchOccupied returns the set of slots in the group beginning at c
// that hold a live entry.
func (c *ctrl) matchOccupied() bitset {
	return ^c.matchEmptyOrDeleted() & 0xffff
}
