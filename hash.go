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
	"math"
	"reflect"
	"unsafe"

	"github.com/dolthub/maphash"

	"github.com/colalb1/OptiMap/gxhash"
)

// Hasher maps a key and a seed to a 64-bit digest. A hasher must be
// consistent with == on K: equal keys must produce equal digests under
// the same seed. Custom hashers for composite keys can fold member
// digests with gxhash.Combine.
type Hasher[K any] func(key *K, seed uint64) uint64

// defaultHasher selects the built-in hash strategy for K's kind. The
// reflection runs once, at map construction; the returned closure does
// none.
func defaultHasher[K comparable]() Hasher[K] {
	t := reflect.TypeFor[K]()
	switch t.Kind() {
	case reflect.String:
		return func(key *K, seed uint64) uint64 {
			return gxhash.Sum64String(*(*string)(unsafe.Pointer(key)), seed)
		}
	case reflect.Float32:
		// +0 and -0 compare equal, so both must hash as integer 0.
		return func(key *K, seed uint64) uint64 {
			f := *(*float32)(unsafe.Pointer(key))
			b := math.Float32bits(f)
			if f == 0 {
				b = 0
			}
			return gxhash.Hash(unsafe.Pointer(&b), 4, seed)
		}
	case reflect.Float64:
		return func(key *K, seed uint64) uint64 {
			f := *(*float64)(unsafe.Pointer(key))
			b := math.Float64bits(f)
			if f == 0 {
				b = 0
			}
			return gxhash.Hash(unsafe.Pointer(&b), 8, seed)
		}
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		// Fixed-size keys with no padding and no interior pointers to
		// chase: hash the raw bytes. Pointers and channels hash their
		// address word, so nil hashes as 0.
		size := t.Size()
		return func(key *K, seed uint64) uint64 {
			return gxhash.Hash(unsafe.Pointer(key), size, seed)
		}
	default:
		// Structs, arrays, and other composite comparable kinds may
		// contain padding or nested strings, so raw bytes are not an
		// option. Delegate to the runtime-backed maphash, which walks
		// the type the way the builtin map does. Its seed is its own,
		// fixed at construction like the map's.
		h := maphash.NewHasher[K]()
		return func(key *K, _ uint64) uint64 {
			return h.Hash(*key)
		}
	}
}
