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

package gxhash

import (
	"encoding/binary"
	"math/bits"
)

// portableSum is the pure-Go path. The structure is one wide mixing
// round per 16-byte chunk, then dedicated 8-, 4-, and 1..3-byte tail
// rounds. The 4- and 1..3-byte rounds each multiply by their own
// constant; the 8-byte round adds the word XOR prime1 and uses no
// multiply constant of its own.
func portableSum(b []byte, seed uint64) uint64 {
	state := seed ^ prime1
	n := uint64(len(b))

	for len(b) >= 16 {
		a := binary.LittleEndian.Uint64(b)
		c := binary.LittleEndian.Uint64(b[8:])
		state += a * mul1
		m := mix64(a^(bits.RotateLeft64(c, 23)+(state^(state>>41))), c^(state+prime1))
		state ^= m
		state = bits.RotateLeft64(state, 27) * mulRot
		b = b[16:]
	}
	if len(b) >= 8 {
		a := binary.LittleEndian.Uint64(b)
		state += a ^ prime1
		state = mix64(state, a)
		b = b[8:]
	}
	if len(b) >= 4 {
		a := uint64(binary.LittleEndian.Uint32(b))
		state += a * mul32
		state = mix64(state, a)
		b = b[4:]
	}
	if len(b) > 0 {
		var tail uint64
		for i, c := range b {
			tail |= uint64(c) << (8 * i)
		}
		state += tail * mulTail
		state = mix64(state, tail)
	}

	state ^= seed << 7
	state += n << 3
	return avalanche(state)
}

// mix64 is a splitmix-style combiner of two words.
func mix64(a, b uint64) uint64 {
	z := a ^ b
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// avalanche is the standard 64-bit finalizer: two multiply/shift/xor
// rounds flipping roughly half the output bits per input bit.
func avalanche(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}
