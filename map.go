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

// Package optimap is a Go implementation of Swiss Tables as described
// in https://abseil.io/about/design/swisstables. See also:
// https://faultlore.com/blah/hashbrown-tldr/.
//
// # Swiss Tables
//
// Swiss tables are open-addressed hash tables that map keys to values.
// The key design choice is a separate metadata array storing one
// "control byte" per slot: 7 bits of hash(key) for an occupied slot,
// and distinguished negative values for empty and deleted slots. The
// control bytes are consulted 16 at a time (one SIMD register) so a
// probe examines a whole group of candidate slots with two or three
// instructions before any key is compared.
//
// The layout is N slots where N is a power of two >= 16, and N+16
// control bytes. The [N:N+16] control bytes mirror the first 16 so
// that a group load starting near the end of the control array never
// needs a bounds check or a wrapping copy; the mirrored range is kept
// in sync by every control-byte write to the first group. A per-group
// occupancy bitmap (one bit per 16 slots) lets iteration skip runs of
// empty groups with a trailing-zero count instead of scanning their
// control bytes.
//
// Probing walks groups linearly: the group starting at slot
// hash&(N-1), then the group 16 slots later, and so on, wrapping at N.
// Within a group, candidate slots are those whose control byte equals
// the H2 of the sought key; a full key comparison confirms or rejects
// each candidate. A group containing an empty slot terminates the
// probe: the key cannot be stored beyond it. Deleted slots (tombstones)
// do not terminate the probe. The first tombstone in a group that has
// no empty slot is remembered as the insertion candidate so that
// re-inserted keys reuse holes close to their natural position;
// tombstones in the terminating group are not reused.
//
// Growth is triggered before an insert when the number of used slots
// plus tombstones reaches 7/8 of capacity. Counting tombstones keeps
// at least capacity/8 control bytes empty at all times, which is what
// guarantees probe termination even after long insert/delete churn.
// A rehash keeps the capacity when at least a third of it is
// recoverable from tombstones and doubles it otherwise, and re-places
// every live entry into the new backing by probing for the first empty
// slot; no keys are re-compared and all tombstones are reclaimed.
//
// A Map is NOT goroutine-safe, and any growth invalidates outstanding
// iterators and references into the table.
package optimap

import (
	"fmt"
	"math/bits"
	"math/rand/v2"
	"strings"
	"unsafe"
)

const (
	debug = false

	// groupWidth is the number of control bytes examined per probe
	// step, the width of one 128-bit SIMD register.
	groupWidth = 16
	// maxAvgGroupLoad caps the load factor at 14/16 = 7/8.
	maxAvgGroupLoad = 14
)

// noSlot marks an unset slot index during probing.
const noSlot = ^uintptr(0)

// Slot holds a key and value.
type Slot[K comparable, V any] struct {
	key   K
	value V
}

// Key returns the slot's key.
func (s *Slot[K, V]) Key() K { return s.key }

// Value returns the slot's value.
func (s *Slot[K, V]) Value() V { return s.value }

// backing owns the storage for one table generation: the control
// bytes including the 16-byte mirrored tail, the slot array, and the
// group occupancy bitmap. The three arrays are allocated together and
// released together; a resize constructs a complete new backing before
// the map is switched over to it, so a failed allocation leaves the
// old generation untouched.
type backing[K comparable, V any] struct {
	ctrls  unsafeSlice[ctrl]
	slots  unsafeSlice[Slot[K, V]]
	bitmap unsafeSlice[uint64]
	// The Go slices behind the unsafe views, retained so the storage
	// stays live for the garbage collector and so wholesale copies can
	// use the builtin copy.
	ctrlSlice   []ctrl
	slotSlice   []Slot[K, V]
	bitmapSlice []uint64
	// The number of slots, either 0 or a power of two >= groupWidth.
	// capacity-1 doubles as the index mask.
	capacity uintptr
}

// Map is an unordered map from keys to values with Insert, Get,
// Delete, and iteration operations, inspired by Google's Swiss Tables
// design as implemented in Abseil's flat_hash_map. By default a
// Map[K,V] hashes keys with the built-in strategy for K's kind (gxhash
// for scalar and string keys, dolthub/maphash for composite keys); a
// different hash function can be specified with the WithHash option.
//
// The zero value is not usable; construct with New.
type Map[K comparable, V any] struct {
	// hash maps a key and the per-map seed to a 64-bit digest.
	hash Hasher[K]
	seed uint64
	// allocator provides and reclaims the backing arrays.
	allocator Allocator[K, V]
	b         backing[K, V]
	// used counts live entries; tombstones counts deleted slots that
	// are still holding their place in probe chains.
	used       int
	tombstones int
}

// New constructs a Map with the given initial capacity. If
// initialCapacity is 0 the map defers allocation until the first
// insert; otherwise the backing is sized to the next power of two
// >= max(initialCapacity, 16).
func New[K comparable, V any](initialCapacity int, options ...Option[K, V]) *Map[K, V] {
	m := &Map[K, V]{
		hash:      defaultHasher[K](),
		seed:      rand.Uint64(),
		allocator: defaultAllocator[K, V]{},
	}
	for _, op := range options {
		op.apply(m)
	}
	if initialCapacity > 0 {
		m.grow(nextPow2(uintptr(max(initialCapacity, groupWidth))))
	}
	m.checkInvariants()
	return m
}

// Close releases the backing arrays to the map's allocator. It is
// unnecessary to close a map using the default allocator. The map is
// empty and usable afterwards; Close is idempotent.
func (m *Map[K, V]) Close() {
	m.release(m.b)
	m.b = backing[K, V]{}
	m.used = 0
	m.tombstones = 0
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return m.used
}

// Cap returns the map's slot capacity.
func (m *Map[K, V]) Cap() int {
	return int(m.b.capacity)
}

// Insert adds key to the map with the given value. It returns false,
// leaving the existing value in place, if the key is already present.
// Insert may grow the map.
func (m *Map[K, V]) Insert(key K, value V) bool {
	m.maybeGrow()
	h := m.hash(&key, m.seed)
	i, found := m.findSlot(key, h)
	if found {
		return false
	}
	m.insertAt(i, h, Slot[K, V]{key: key, value: value})
	m.checkInvariants()
	return true
}

// Get retrieves the value for key, returning ok=false if the key is
// not present.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	h := m.hash(&key, m.seed)
	i, found := m.findSlot(key, h)
	if !found {
		return value, false
	}
	return m.b.slots.At(i).value, true
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	h := m.hash(&key, m.seed)
	_, found := m.findSlot(key, h)
	return found
}

// At returns a pointer to the value for key, or ErrKeyNotFound if the
// key is absent. The pointer is invalidated by any growth of the map.
func (m *Map[K, V]) At(key K) (*V, error) {
	h := m.hash(&key, m.seed)
	i, found := m.findSlot(key, h)
	if !found {
		return nil, ErrKeyNotFound
	}
	return &m.b.slots.At(i).value, nil
}

// Ref returns a pointer to the value for key, inserting a zero value
// if the key is absent. Ref may grow the map; like At, the returned
// pointer is invalidated by any later growth.
func (m *Map[K, V]) Ref(key K) *V {
	m.maybeGrow()
	h := m.hash(&key, m.seed)
	i, found := m.findSlot(key, h)
	if !found {
		m.insertAt(i, h, Slot[K, V]{key: key})
		m.checkInvariants()
	}
	return &m.b.slots.At(i).value
}

// Find returns an iterator positioned at key, or an invalid (end)
// iterator if the key is absent.
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	h := m.hash(&key, m.seed)
	i, found := m.findSlot(key, h)
	if !found {
		return Iterator[K, V]{m: m, index: m.b.capacity}
	}
	return Iterator[K, V]{m: m, index: i}
}

// Delete removes key from the map, returning false if the key was not
// present. The slot becomes a tombstone: it keeps holding its place in
// probe chains and is reclaimed on the next rehash.
func (m *Map[K, V]) Delete(key K) bool {
	h := m.hash(&key, m.seed)
	i, found := m.findSlot(key, h)
	if !found {
		return false
	}
	m.deleteAt(i)
	m.checkInvariants()
	return true
}

// Remove deletes the entry the iterator is positioned at and returns
// an iterator to the next entry. Removing through the returned
// iterators is the one sanctioned way to erase during iteration.
func (m *Map[K, V]) Remove(it Iterator[K, V]) Iterator[K, V] {
	if !it.Valid() {
		return it
	}
	m.deleteAt(it.index)
	m.checkInvariants()
	it.index++
	it.skipToOccupied()
	return it
}

// Extract removes key and returns the detached entry as a Node. The
// node is empty if the key was absent.
func (m *Map[K, V]) Extract(key K) Node[K, V] {
	h := m.hash(&key, m.seed)
	i, found := m.findSlot(key, h)
	if !found {
		return Node[K, V]{}
	}
	n := Node[K, V]{slot: *m.b.slots.At(i), ok: true}
	m.deleteAt(i)
	m.checkInvariants()
	return n
}

// InsertNode inserts an entry previously detached with Extract,
// returning false if the node is empty or its key is already present.
func (m *Map[K, V]) InsertNode(n Node[K, V]) bool {
	if n.Empty() {
		return false
	}
	return m.Insert(n.slot.key, n.slot.value)
}

// Clear removes all entries. Capacity is preserved: every control byte
// (tombstones included) resets to empty.
func (m *Map[K, V]) Clear() {
	if m.b.capacity == 0 {
		return
	}
	for i := range m.b.ctrlSlice {
		m.b.ctrlSlice[i] = ctrlEmpty
	}
	clear(m.b.slotSlice)
	clear(m.b.bitmapSlice)
	m.used = 0
	m.tombstones = 0
	m.checkInvariants()
}

// Clone returns a deep copy of the map: a fresh backing of the same
// capacity holding copies of every live entry. The clone shares the
// hash function, seed, and allocator.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := &Map[K, V]{
		hash:       m.hash,
		seed:       m.seed,
		allocator:  m.allocator,
		used:       m.used,
		tombstones: m.tombstones,
	}
	if m.b.capacity > 0 {
		c.b = m.newBacking(m.b.capacity)
		copy(c.b.ctrlSlice, m.b.ctrlSlice)
		copy(c.b.slotSlice, m.b.slotSlice)
		copy(c.b.bitmapSlice, m.b.bitmapSlice)
	}
	c.checkInvariants()
	return c
}

// Move transfers the map's backing to a newly returned map, leaving
// the receiver valid and empty (capacity 0, ready for reuse).
func (m *Map[K, V]) Move() *Map[K, V] {
	c := &Map[K, V]{
		hash:       m.hash,
		seed:       m.seed,
		allocator:  m.allocator,
		b:          m.b,
		used:       m.used,
		tombstones: m.tombstones,
	}
	m.b = backing[K, V]{}
	m.used = 0
	m.tombstones = 0
	return c
}

// All calls yield for each key and value in the map until yield
// returns false. The backing is snapshotted before iterating, so the
// map may be mutated during the iteration, though mutations are not
// guaranteed to be visible to it.
func (m *Map[K, V]) All(yield func(key K, value V) bool) {
	b := m.b
	for i := uintptr(0); i < b.capacity; i++ {
		if *b.ctrls.At(i) >= 0 {
			s := b.slots.At(i)
			if !yield(s.key, s.value) {
				return
			}
		}
	}
}

// findSlot locates key in the table. It returns (index, true) when the
// key is present. When the key is absent it returns (candidate, false)
// where candidate is the slot an insertion of this key must use: the
// first tombstone in a group passed over for having no empty slot, or
// failing that the first empty slot of the terminating group.
// Tombstones in the terminating group itself are not considered.
func (m *Map[K, V]) findSlot(key K, h uint64) (uintptr, bool) {
	if m.b.capacity == 0 {
		return 0, false
	}
	tag := h2(h)
	mask := m.b.capacity - 1
	start := uintptr(h) & mask
	firstDeleted := noSlot
	if debug {
		fmt.Printf("find(%v): start=%d h2=%02x\n", key, start, uint8(tag))
	}

	for offset := uintptr(0); ; offset += groupWidth {
		base := (start + offset) & mask
		g := m.b.ctrls.At(base)

		// Candidate slots are those whose control byte equals the H2
		// tag. The 7-bit tag makes false positives rare (~1/128 per
		// examined slot), so spurious full key comparisons below average
		// well under one per find.
		match := g.matchTag(tag)
		for match != 0 {
			i := (base + match.first()) & mask
			if key == m.b.slots.At(i).key {
				return i, true
			}
			match = match.removeFirst()
		}

		// An empty slot terminates the probe: the key would have been
		// placed no later than this group.
		if empty := g.matchEmpty(); empty != 0 {
			if firstDeleted != noSlot {
				return firstDeleted, false
			}
			return (base + empty.first()) & mask, false
		}

		// No empty slot in this group. Remember the first tombstone
		// seen; it sits earlier in the probe sequence than any empty
		// slot and is therefore the preferred insertion point.
		if firstDeleted == noSlot {
			if d := g.matchEmptyOrDeleted(); d != 0 {
				firstDeleted = (base + d.first()) & mask
			}
		}

		if debug {
			fmt.Printf("find(skipping): base=%d\n", base)
		}
	}
}

// insertAt writes an entry known not to be in the table into slot i,
// which findSlot has returned as the insertion candidate for h.
func (m *Map[K, V]) insertAt(i uintptr, h uint64, s Slot[K, V]) {
	if *m.b.ctrls.At(i) == ctrlDeleted {
		m.tombstones--
	}
	*m.b.slots.At(i) = s
	m.b.setCtrl(i, h2(h))
	m.b.setGroupBit(i)
	m.used++
	if debug {
		fmt.Printf("insert(%v): index=%d used=%d tombstones=%d\n", s.key, i, m.used, m.tombstones)
	}
}

// deleteAt destructs the entry in slot i and turns the slot into a
// tombstone. If the slot's aligned group no longer holds any live
// entry, the group's occupancy bit is cleared.
func (m *Map[K, V]) deleteAt(i uintptr) {
	*m.b.slots.At(i) = Slot[K, V]{}
	m.b.setCtrl(i, ctrlDeleted)
	m.used--
	m.tombstones++

	base := i &^ (groupWidth - 1)
	if m.b.ctrls.At(base).matchOccupied() == 0 {
		m.b.clearGroupBit(i / groupWidth)
	}
	if debug {
		fmt.Printf("delete: index=%d used=%d tombstones=%d\n", i, m.used, m.tombstones)
	}
}

// maybeGrow rehashes before an insert that could violate the 7/8 load
// cap. Tombstones count against the cap: rehashing is the only point
// where they are reclaimed, and counting them keeps at least
// capacity/8 control bytes empty, which is what bounds probe sequences
// and guarantees their termination.
func (m *Map[K, V]) maybeGrow() {
	if m.b.capacity == 0 {
		m.grow(groupWidth)
		return
	}
	if uintptr(m.used+m.tombstones) < m.loadLimit() {
		return
	}
	// Rehash at the same capacity if doing so recovers at least a
	// third of it from tombstones; otherwise the capacity doubles,
	// even when live entries alone are below the load cap. Without the
	// same-capacity case,
	// insert/delete churn at a steady size would double the table
	// indefinitely.
	if recoverable := m.loadLimit() - uintptr(m.used); recoverable >= m.b.capacity/3 {
		m.grow(m.b.capacity)
	} else {
		m.grow(2 * m.b.capacity)
	}
}

func (m *Map[K, V]) loadLimit() uintptr {
	return m.b.capacity / groupWidth * maxAvgGroupLoad
}

// grow allocates a backing of newCapacity slots and re-places every
// live entry into it. Entries are moved by probing for the first empty
// slot from their natural group; no keys are compared and no deleted
// bookkeeping is needed because the target has no tombstones. The new
// backing is fully constructed before the switch-over, so an
// allocation failure leaves the map unchanged.
func (m *Map[K, V]) grow(newCapacity uintptr) {
	nb := m.newBacking(newCapacity)
	old := m.b

	for i := uintptr(0); i < old.capacity; i++ {
		if *old.ctrls.At(i) < 0 {
			continue
		}
		s := old.slots.At(i)
		h := m.hash(&s.key, m.seed)
		nb.uncheckedInsert(h, s)
	}

	m.b = nb
	m.tombstones = 0
	m.release(old)

	if debug {
		fmt.Printf("grow: capacity=%d->%d used=%d\n", old.capacity, newCapacity, m.used)
	}
	m.checkInvariants()
}

// uncheckedInsert places an entry known not to be present into the
// first empty slot along its probe sequence. Only valid on a backing
// with no tombstones.
func (b *backing[K, V]) uncheckedInsert(h uint64, s *Slot[K, V]) {
	mask := b.capacity - 1
	start := uintptr(h) & mask
	for offset := uintptr(0); ; offset += groupWidth {
		base := (start + offset) & mask
		if empty := b.ctrls.At(base).matchEmpty(); empty != 0 {
			i := (base + empty.first()) & mask
			*b.slots.At(i) = *s
			b.setCtrl(i, h2(h))
			b.setGroupBit(i)
			return
		}
	}
}

// newBacking allocates and initializes a backing of the given
// capacity, which must be a power of two >= groupWidth. The allocator
// contract is make-equivalent slices; short or nil returns from a
// custom allocator surface as ErrAllocation before any existing state
// is touched.
func (m *Map[K, V]) newBacking(capacity uintptr) backing[K, V] {
	words := int(capacity/groupWidth+63) / 64
	ctrls := unsafeConvertSlice[ctrl](m.allocator.AllocControls(int(capacity) + groupWidth))
	slots := m.allocator.AllocSlots(int(capacity))
	bitmap := m.allocator.AllocBitmap(words)
	if len(ctrls) < int(capacity)+groupWidth || len(slots) < int(capacity) || len(bitmap) < words {
		panic(ErrAllocation)
	}
	for i := range ctrls {
		ctrls[i] = ctrlEmpty
	}
	return backing[K, V]{
		ctrls:       makeUnsafeSlice(ctrls),
		slots:       makeUnsafeSlice(slots),
		bitmap:      makeUnsafeSlice(bitmap),
		ctrlSlice:   ctrls,
		slotSlice:   slots,
		bitmapSlice: bitmap,
		capacity:    capacity,
	}
}

func (m *Map[K, V]) release(b backing[K, V]) {
	if b.capacity == 0 {
		return
	}
	m.allocator.FreeControls(unsafeConvertSlice[int8](b.ctrlSlice))
	m.allocator.FreeSlots(b.slotSlice)
	m.allocator.FreeBitmap(b.bitmapSlice)
}

// setCtrl sets the control byte at index i, mirroring the write into
// the sentinel tail when i falls in the first group. The mirror is
// what lets group loads starting in the last 15 slots read past
// position capacity-1 and still observe the wrapped control bytes.
func (b *backing[K, V]) setCtrl(i uintptr, v ctrl) {
	*b.ctrls.At(i) = v
	if i < groupWidth {
		*b.ctrls.At(i + b.capacity) = v
	}
}

func (b *backing[K, V]) setGroupBit(i uintptr) {
	g := i / groupWidth
	*b.bitmap.At(g >> 6) |= 1 << (g & 63)
}

func (b *backing[K, V]) clearGroupBit(g uintptr) {
	*b.bitmap.At(g >> 6) &^= 1 << (g & 63)
}

// h2 extracts the tag stored in an occupied control byte: the top 7
// bits of the hash, a value in [0, 127].
func h2(h uint64) ctrl {
	return ctrl(h >> 57)
}

func nextPow2(v uintptr) uintptr {
	return uintptr(1) << bits.Len64(uint64(v-1))
}

func (m *Map[K, V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d used=%d tombstones=%d\n", m.b.capacity, m.used, m.tombstones)
	for i := uintptr(0); i < m.b.capacity+groupWidth; i++ {
		switch c := *m.b.ctrls.At(i); c {
		case ctrlEmpty:
			fmt.Fprintf(&buf, "  %4d: empty\n", i)
		case ctrlDeleted:
			fmt.Fprintf(&buf, "  %4d: deleted\n", i)
		default:
			if i < m.b.capacity {
				s := m.b.slots.At(i)
				h := m.hash(&s.key, m.seed)
				fmt.Fprintf(&buf, "  %4d: %v [ctrl=%02x h2=%02x]\n", i, s.key, uint8(c), uint8(h2(h)))
			} else {
				fmt.Fprintf(&buf, "  %4d: [ctrl=%02x]\n", i, uint8(c))
			}
		}
	}
	return buf.String()
}

func (m *Map[K, V]) checkInvariants() {
	if !invariants {
		return
	}
	if m.b.capacity > 0 {
		if m.b.capacity < groupWidth || m.b.capacity&(m.b.capacity-1) != 0 {
			panic(fmt.Sprintf("invariant failed: capacity %d is not a power of two >= %d",
				m.b.capacity, groupWidth))
		}
		// Verify the sentinel tail mirrors the first group.
		for i := uintptr(0); i < groupWidth; i++ {
			ci := *m.b.ctrls.At(i)
			cj := *m.b.ctrls.At(i + m.b.capacity)
			if ci != cj {
				panic(fmt.Sprintf("invariant failed: ctrl(%d)=%02x != ctrl(%d)=%02x\n%s",
					i, uint8(ci), i+m.b.capacity, uint8(cj), m.debugString()))
			}
		}
	}

	var used, tombstones int
	for i := uintptr(0); i < m.b.capacity; i++ {
		switch c := *m.b.ctrls.At(i); {
		case c == ctrlDeleted:
			tombstones++
		case c == ctrlEmpty:
		default:
			s := m.b.slots.At(i)
			h := m.hash(&s.key, m.seed)
			if h2(h) != c {
				panic(fmt.Sprintf("invariant failed: slot(%d): ctrl=%02x does not match h2=%02x\n%s",
					i, uint8(c), uint8(h2(h)), m.debugString()))
			}
			if _, ok := m.Get(s.key); !ok {
				panic(fmt.Sprintf("invariant failed: slot(%d): %v not found\n%s",
					i, s.key, m.debugString()))
			}
			used++
		}
		// The group occupancy bit must be set iff the aligned group
		// holds at least one live entry.
		if (i+1)%groupWidth == 0 {
			g := i / groupWidth
			occupied := m.b.ctrls.At(i &^ (groupWidth - 1)).matchOccupied() != 0
			bit := *m.b.bitmap.At(g>>6)&(1<<(g&63)) != 0
			if occupied != bit {
				panic(fmt.Sprintf("invariant failed: group(%d): occupied=%t bit=%t\n%s",
					g, occupied, bit, m.debugString()))
			}
		}
	}
	if used != m.used {
		panic(fmt.Sprintf("invariant failed: found %d used slots, but used count is %d\n%s",
			used, m.used, m.debugString()))
	}
	if tombstones != m.tombstones {
		panic(fmt.Sprintf("invariant failed: found %d tombstones, but count is %d\n%s",
			tombstones, m.tombstones, m.debugString()))
	}
	if m.b.capacity > 0 && uintptr(m.used) > m.loadLimit() {
		panic(fmt.Sprintf("invariant failed: used %d exceeds load limit %d\n%s",
			m.used, m.loadLimit(), m.debugString()))
	}
}

// Node is an entry detached from a map by Extract. A non-empty node
// owns its key and value and can be moved into a map with InsertNode.
type Node[K comparable, V any] struct {
	slot Slot[K, V]
	ok   bool
}

// Empty reports whether the node holds no entry.
func (n Node[K, V]) Empty() bool { return !n.ok }

// Key returns the detached entry's key.
func (n Node[K, V]) Key() K { return n.slot.key }

// Value returns the detached entry's value.
func (n Node[K, V]) Value() V { return n.slot.value }

// unsafeSlice provides semi-ergonomic limited slice-like functionality
// without bounds checking for fixed sized slices.
type unsafeSlice[T any] struct {
	ptr unsafe.Pointer
}

func makeUnsafeSlice[T any](s []T) unsafeSlice[T] {
	return unsafeSlice[T]{ptr: unsafe.Pointer(unsafe.SliceData(s))}
}

// At returns a pointer to the element at index i.
func (s unsafeSlice[T]) At(i uintptr) *T {
	var t T
	return (*T)(unsafe.Add(s.ptr, unsafe.Sizeof(t)*i))
}

func unsafeConvertSlice[Dest any, Src any](s []Src) []Dest {
	return unsafe.Slice((*Dest)(unsafe.Pointer(unsafe.SliceData(s))), len(s))
}
