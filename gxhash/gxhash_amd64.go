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

//go:build amd64 && !purego

package gxhash

import "golang.org/x/sys/cpu"

// useAES is resolved once at startup. The choice is per-process: the
// AES and portable paths produce different digests for the same input.
var useAES = cpu.X86.HasAES

func sum64(b []byte, seed uint64) uint64 {
	if useAES {
		folded := aesFold(&b[0], uintptr(len(b)), seed)
		return avalanche(folded ^ seed ^ uint64(len(b))<<3)
	}
	return portableSum(b, seed)
}

// aesFold runs the AES accumulator over the n bytes at p and returns
// the XOR of the accumulator's two 64-bit lanes. Requires n > 0.
//
//go:noescape
func aesFold(p *byte, n uintptr, seed uint64) uint64
