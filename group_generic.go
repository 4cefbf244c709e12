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

//go:build !amd64 || nosimd

package optimap

import "unsafe"

// Scalar fallback for the group engine. Produces bit-identical masks
// to the SIMD path.

func (c *ctrl) matchTag(tag ctrl) bitset {
	g := (*[groupWidth]ctrl)(unsafe.Pointer(c))
	var b bitset
	for i := 0; i < groupWidth; i++ {
		if g[i] == tag {
			b |= 1 << i
		}
	}
	return b
}

func (c *ctrl) matchEmpty() bitset {
	g := (*[groupWidth]ctrl)(unsafe.Pointer(c))
	var b bitset
	for i := 0; i < groupWidth; i++ {
		if g[i] == ctrlEmpty {
			b |= 1 << i
		}
	}
	return b
}

func (c *ctrl) matchEmptyOrDeleted() bitset {
	g := (*[groupWidth]ctrl)(unsafe.Pointer(c))
	var b bitset
	for i := 0; i < groupWidth; i++ {
		if g[i] < 0 {
			b |= 1 << i
		}
	}
	return b
}
