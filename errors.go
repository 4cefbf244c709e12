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

import "errors"

// ErrKeyNotFound is returned by At for a key that is not in the map.
var ErrKeyNotFound = errors.New("optimap: key not found")

// ErrAllocation is the panic value raised when a custom Allocator
// fails to provide the requested backing arrays. The map is left in
// its prior, valid state.
var ErrAllocation = errors.New("optimap: allocation failed")
