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

import "math/bits"

// Iterator is a forward iterator over a map's entries, a (map, slot
// index) pair. Iterators visit occupied slots left to right, skipping
// whole empty groups via the group occupancy bitmap, which makes a
// full traversal linear in the number of entries rather than the
// capacity.
//
// Two iterators over the same map compare equal with == iff they are
// positioned at the same slot; an exhausted iterator compares equal to
// the invalid iterator Find returns on a miss. Any mutation of the map
// other than Remove on the iterator itself invalidates outstanding
// iterators.
type Iterator[K comparable, V any] struct {
	m     *Map[K, V]
	index uintptr
}

// Iter returns an iterator positioned at the map's first entry.
func (m *Map[K, V]) Iter() Iterator[K, V] {
	it := Iterator[K, V]{m: m}
	it.skipToOccupied()
	return it
}

// Valid reports whether the iterator is positioned at an entry.
func (it Iterator[K, V]) Valid() bool {
	return it.m != nil && it.index < it.m.b.capacity
}

// Next advances the iterator to the following entry.
func (it *Iterator[K, V]) Next() {
	it.index++
	it.skipToOccupied()
}

// Key returns the key of the entry the iterator is positioned at.
func (it Iterator[K, V]) Key() K {
	return it.m.b.slots.At(it.index).key
}

// Value returns the value of the entry the iterator is positioned at.
func (it Iterator[K, V]) Value() V {
	return it.m.b.slots.At(it.index).value
}

// ValueRef returns a pointer to the value of the entry the iterator is
// positioned at. The pointer is invalidated by any growth of the map.
func (it Iterator[K, V]) ValueRef() *V {
	return &it.m.b.slots.At(it.index).value
}

// skipToOccupied advances the iterator to the first occupied slot at
// or after its current index, or to capacity if there is none. The
// group containing the index is scanned directly; all later groups are
// located through the occupancy bitmap, one trailing-zero count per
// 64 groups examined.
func (it *Iterator[K, V]) skipToOccupied() {
	b := &it.m.b
	n := b.capacity
	if it.index >= n {
		it.index = n
		return
	}

	base := it.index &^ (groupWidth - 1)
	occupied := b.ctrls.At(base).matchOccupied()
	occupied &= bitset(0xffff) << (it.index - base)
	if occupied != 0 {
		it.index = base + occupied.first()
		return
	}

	g := it.index/groupWidth + 1
	numGroups := n / groupWidth
	if g >= numGroups {
		it.index = n
		return
	}
	words := (numGroups + 63) / 64
	word := g >> 6
	w := *b.bitmap.At(word) & (^uint64(0) << (g & 63))
	for {
		if w != 0 {
			g = word<<6 + uintptr(bits.TrailingZeros64(w))
			base = g * groupWidth
			// An occupancy bit is only set while its group holds at
			// least one live entry, so the match below is non-empty.
			it.index = base + b.ctrls.At(base).matchOccupied().first()
			return
		}
		word++
		if word >= words {
			it.index = n
			return
		}
		w = *b.bitmap.At(word)
	}
}
