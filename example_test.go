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

package optimap_test

import (
	"fmt"
	"sort"

	optimap "github.com/colalb1/OptiMap"
)

func Example() {
	m := optimap.New[string, int](0)
	m.Insert("apple", 3)
	m.Insert("banana", 7)
	m.Insert("cherry", 1)

	if v, ok := m.Get("banana"); ok {
		fmt.Println("banana:", v)
	}

	*m.Ref("apple")++

	m.Delete("cherry")

	// Iteration order is unspecified; sort for stable output.
	var lines []string
	for it := m.Iter(); it.Valid(); it.Next() {
		lines = append(lines, fmt.Sprintf("%s=%d", it.Key(), it.Value()))
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Println(l)
	}
	fmt.Println("len:", m.Len())

	// Output:
	// banana: 7
	// apple=4
	// banana=7
	// len: 2
}

func ExampleMap_Extract() {
	src := optimap.New[string, int](0)
	dst := optimap.New[string, int](0)
	src.Insert("job", 42)

	if n := src.Extract("job"); !n.Empty() {
		dst.InsertNode(n)
	}
	fmt.Println(src.Len(), dst.Len())

	v, _ := dst.Get("job")
	fmt.Println(v)

	// Output:
	// 0 1
	// 42
}
