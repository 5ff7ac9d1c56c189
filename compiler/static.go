// Copyright 2025 The Rivaas Authors
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

package compiler

import "strings"

// RouteID indexes into the caller's own route table; the compiler
// package never looks inside it.
type RouteID int

// Static is the static-route bucket from spec.md §3's Collection
// Artifact: an exact literal_path → [route_id...] map, plus the
// literal_path_without_trailing_slash variant used for routes whose
// pattern ends in a slash.
//
// Grounded on compiler/static.go's LookupStatic in the teacher: a
// bloom filter rejects definite misses before the map is touched.
type Static struct {
	bloom             *bloomFilter
	routes            map[string][]RouteID
	withOptionalSlash map[string][]RouteID
}

// NewStatic creates an empty Static bucket sized for an expected
// number of static routes, with a bloom filter auto-sized from that
// count.
func NewStatic(expectedRoutes int) *Static {
	size := uint64(expectedRoutes * 10)
	if size < 128 {
		size = 128
	}
	return NewStaticWithBits(expectedRoutes, size)
}

// NewStaticWithBits is NewStatic with an explicit bloom filter bit
// count, for callers that want to trade memory for a lower
// false-positive rate on large static route tables.
func NewStaticWithBits(expectedRoutes int, bits uint64) *Static {
	return &Static{
		bloom:             newBloomFilter(bits, 3),
		routes:            make(map[string][]RouteID, expectedRoutes),
		withOptionalSlash: make(map[string][]RouteID),
	}
}

// Add installs a static route under its literal path, and — if the
// literal ends in '/' — under the trailing-slash-stripped form too.
func (s *Static) Add(literal string, id RouteID) {
	s.bloom.add(literal)
	s.routes[literal] = append(s.routes[literal], id)

	if strings.HasSuffix(literal, "/") && literal != "/" {
		stripped := literal[:len(literal)-1]
		s.withOptionalSlash[stripped] = append(s.withOptionalSlash[stripped], id)
	}
}

// Lookup returns the candidate route ids for an exact literal path.
func (s *Static) Lookup(path string) ([]RouteID, bool) {
	if !s.bloom.mayContain(path) {
		return nil, false
	}
	ids, ok := s.routes[path]
	return ids, ok
}

// LookupOptionalSlash returns candidates registered under the
// trailing-slash-stripped form of a pattern (spec.md §3
// static_with_optional_slash).
func (s *Static) LookupOptionalSlash(pathWithoutSlash string) ([]RouteID, bool) {
	ids, ok := s.withOptionalSlash[pathWithoutSlash]
	return ids, ok
}

// Len reports how many distinct literal paths are registered.
func (s *Static) Len() int {
	return len(s.routes)
}
