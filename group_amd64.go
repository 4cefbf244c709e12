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

//go:build amd64 && !nosimd

package optimap

import (
	"unsafe"

	"github.com/dolthub/swiss/simd"
)

// The SIMD kernel performs a 128-bit compare-equal-byte against the 16
// control bytes at c followed by a movemask. Group loads are unaligned:
// probing starts groups at arbitrary slot indices, and loads near the
// end of the control array run into the mirrored sentinel tail.

// matchTag returns the set of slots in the group beginning at c whose
// control byte equals tag. tag must be an occupied control byte
// (0..127).
func (c *ctrl) matchTag(tag ctrl) bitset {
	return bitset(simd.MatchMetadata((*[groupWidth]int8)(unsafe.Pointer(c)), int8(tag)))
}

// matchEmpty returns the set of empty slots in the group beginning at c.
func (c *ctrl) matchEmpty() bitset {
	return bitset(simd.MatchMetadata((*[groupWidth]int8)(unsafe.Pointer(c)), int8(ctrlEmpty)))
}

// matchEmptyOrDeleted returns the set of slots in the group beginning
// at c that are empty or deleted. Empty and deleted are the only two
// control states with the top bit set, so matching both exactly is
// equivalent to a sign test of every byte.
func (c *ctrl) matchEmptyOrDeleted() bitset {
	g := (*[groupWidth]int8)(unsafe.Pointer(c))
	return bitset(simd.MatchMetadata(g, int8(ctrlEmpty)) | simd.MatchMetadata(g, int8(ctrlDeleted)))
}
