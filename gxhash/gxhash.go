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

// Package gxhash implements a fast, non-cryptographic hash of byte
// sequences to 64-bit digests with good avalanche behavior.
//
// Two implementations are selected once per process: an AES-NI
// accelerated path on x86-64 CPUs that support it, and a portable
// multiply/rotate path everywhere else. Both are deterministic for a
// given (input, seed) within a process, but the two paths do not
// produce the same digests as each other; callers must not persist
// digests or compare them across processes.
package gxhash

import "unsafe"

const (
	// prime1 is the 64-bit golden ratio, used both as the seed
	// perturbation constant and as the increment in Combine.
	prime1 = 0x9e3779b97f4a7c15
	prime2 = 0xc6a4a7935bd1e995

	mul1    = 0x9ddfea08eb382d69
	mulRot  = 0x3c79ac492ba7b653
	mul32   = 0x85ebca6b
	mulTail = 0x27d4eb2f165667c5
)

// Sum64 returns the 64-bit digest of b under the given seed. All
// empty inputs hash alike, independent of the selected path.
func Sum64(b []byte, seed uint64) uint64 {
	if len(b) == 0 {
		return avalanche(seed ^ prime1)
	}
	return sum64(b, seed)
}

// Sum64String returns the 64-bit digest of the bytes of s under the
// given seed, without copying the string.
func Sum64String(s string, seed uint64) uint64 {
	if len(s) == 0 {
		return avalanche(seed ^ prime1)
	}
	return sum64(unsafe.Slice(unsafe.StringData(s), len(s)), seed)
}

// Hash returns the 64-bit digest of the n bytes at p under the given
// seed. A nil p with n > 0 is a programmer error: it panics when built
// with the invariants tag and otherwise returns a deterministic mix of
// the seed and length.
func Hash(p unsafe.Pointer, n uintptr, seed uint64) uint64 {
	if n == 0 {
		return avalanche(seed ^ prime1)
	}
	if p == nil {
		if invariants {
			panic("gxhash: nil data with nonzero length")
		}
		return avalanche(seed ^ uint64(n)*prime1)
	}
	return sum64(unsafe.Slice((*byte)(p), n), seed)
}

// Combine folds the digest h into seed. It is the combining function
// used for composite keys (pairs, tuples, slices): fold each member's
// digest into a running seed and use the result as the key's digest.
func Combine(seed, h uint64) uint64 {
	return seed ^ (h + prime1 + seed<<6 + seed>>2)
}
