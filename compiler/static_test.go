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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_LookupHitAndMiss(t *testing.T) {
	s := NewStatic(4)
	s.Add("/a", 1)
	s.Add("/b", 2)

	ids, ok := s.Lookup("/a")
	require.True(t, ok)
	assert.Equal(t, []RouteID{1}, ids)

	_, ok = s.Lookup("/nope")
	assert.False(t, ok)
}

func TestStatic_MultipleMethodsSamePath(t *testing.T) {
	s := NewStatic(4)
	s.Add("/a", 1)
	s.Add("/a", 2)

	ids, ok := s.Lookup("/a")
	require.True(t, ok)
	assert.Equal(t, []RouteID{1, 2}, ids)
}

func TestStatic_OptionalSlashVariant(t *testing.T) {
	s := NewStatic(4)
	s.Add("/hello/", 1)

	_, ok := s.Lookup("/hello")
	assert.False(t, ok, "exact bucket should not contain the stripped form")

	ids, ok := s.LookupOptionalSlash("/hello")
	require.True(t, ok)
	assert.Equal(t, []RouteID{1}, ids)
}

func TestBloomFilter_NoFalseNegatives(t *testing.T) {
	b := newBloomFilter(256, 4)
	keys := []string{"/a", "/b/c", "/d/e/f", "/users/list"}
	for _, k := range keys {
		b.add(k)
	}
	for _, k := range keys {
		assert.True(t, b.mayContain(k))
	}
	assert.False(t, b.mayContain("/definitely/not/added"))
}
