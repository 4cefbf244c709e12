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

// Option configures a Map while it is being created.
type Option[K comparable, V any] interface {
	apply(m *Map[K, V])
}

type hashOption[K comparable, V any] struct {
	hash Hasher[K]
}

func (op hashOption[K, V]) apply(m *Map[K, V]) {
	m.hash = op.hash
}

// WithHash is an option to specify the hash function to use for a
// Map[K,V]. The function must be consistent with == on K.
func WithHash[K comparable, V any](hash Hasher[K]) Option[K, V] {
	return hashOption[K, V]{hash}
}

type seedOption[K comparable, V any] struct {
	seed uint64
}

func (op seedOption[K, V]) apply(m *Map[K, V]) {
	m.seed = op.seed
}

// WithSeed is an option to fix the hash seed of a Map[K,V] instead of
// drawing a random one, making probe layouts reproducible within a
// process. The default hasher for composite keys (structs, arrays)
// ignores this seed and uses maphash's own random one.
func WithSeed[K comparable, V any](seed uint64) Option[K, V] {
	return seedOption[K, V]{seed}
}

// Allocator specifies an interface for allocating and releasing the
// memory behind a Map: the control bytes (including the mirrored tail
// group), the slot array, and the group occupancy bitmap. The three
// arrays of one backing are always allocated together and freed
// together. The default allocator uses Go's builtin make() and lets
// the GC reclaim memory.
//
// If the allocator manages memory manually then Map.Close must be
// called to ensure the Free methods run. An allocator signals failure
// by returning a nil or short slice; the map reports that as
// ErrAllocation without having modified existing state.
type Allocator[K comparable, V any] interface {
	// AllocControls should return a slice equivalent to make([]ctrl, n).
	AllocControls(n int) []int8

	// AllocSlots should return a slice equivalent to make([]Slot[K,V], n).
	AllocSlots(n int) []Slot[K, V]

	// AllocBitmap should return a slice equivalent to make([]uint64, n).
	AllocBitmap(n int) []uint64

	// FreeControls may release memory returned by AllocControls.
	FreeControls(v []int8)

	// FreeSlots may release memory returned by AllocSlots.
	FreeSlots(v []Slot[K, V])

	// FreeBitmap may release memory returned by AllocBitmap.
	FreeBitmap(v []uint64)
}

type defaultAllocator[K comparable, V any] struct{}

func (defaultAllocator[K, V]) AllocControls(n int) []int8 {
	return make([]int8, n)
}

func (defaultAllocator[K, V]) AllocSlots(n int) []Slot[K, V] {
	return make([]Slot[K, V], n)
}

func (defaultAllocator[K, V]) AllocBitmap(n int) []uint64 {
	return make([]uint64, n)
}

func (defaultAllocator[K, V]) FreeControls(v []int8) {
}

func (defaultAllocator[K, V]) FreeSlots(v []Slot[K, V]) {
}

func (defaultAllocator[K, V]) FreeBitmap(v []uint64) {
}

type allocatorOption[K comparable, V any] struct {
	allocator Allocator[K, V]
}

func (op allocatorOption[K, V]) apply(m *Map[K, V]) {
	m.allocator = op.allocator
}

// WithAllocator is an option to specify the Allocator to use for a
// Map[K,V].
func WithAllocator[K comparable, V any](allocator Allocator[K, V]) Option[K, V] {
	return allocatorOption[K, V]{allocator}
}
