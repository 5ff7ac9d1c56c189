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

func TestFuse_Empty(t *testing.T) {
	f, err := Fuse(nil)
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestFuse_PicksWinningBranchAndCaptures(t *testing.T) {
	entries := []DynamicEntry{
		{ID: 1, Pattern: "/users/{id:int}"},
		{ID: 2, Pattern: "/posts/{slug:alpha}"},
	}
	f, err := Fuse(entries)
	require.NoError(t, err)
	require.NotNil(t, f)

	id, vars, ok := f.Match("/users/42")
	require.True(t, ok)
	assert.Equal(t, RouteID(1), id)
	assert.Equal(t, map[string]string{"id": "42"}, vars)

	id, vars, ok = f.Match("/posts/hello")
	require.True(t, ok)
	assert.Equal(t, RouteID(2), id)
	assert.Equal(t, map[string]string{"slug": "hello"}, vars)

	_, _, ok = f.Match("/users/abc")
	assert.False(t, ok)

	_, _, ok = f.Match("/nope")
	assert.False(t, ok)
}

func TestFuse_SharedVariableNamesAcrossBranches(t *testing.T) {
	entries := []DynamicEntry{
		{ID: 1, Pattern: "/a/{id:int}"},
		{ID: 2, Pattern: "/b/{id:alpha}"},
	}
	f, err := Fuse(entries)
	require.NoError(t, err)

	id, vars, ok := f.Match("/b/xyz")
	require.True(t, ok)
	assert.Equal(t, RouteID(2), id)
	assert.Equal(t, "xyz", vars["id"])
}

func TestFuse_UserRegexWithGroupsDoesNotDesync(t *testing.T) {
	entries := []DynamicEntry{
		{ID: 1, Pattern: "/x/{a}", Constraints: map[string]string{"a": "(foo|bar)"}},
		{ID: 2, Pattern: "/y/{b:int}"},
	}
	f, err := Fuse(entries)
	require.NoError(t, err)

	id, vars, ok := f.Match("/y/7")
	require.True(t, ok)
	assert.Equal(t, RouteID(2), id)
	assert.Equal(t, "7", vars["b"])

	id, vars, ok = f.Match("/x/foo")
	require.True(t, ok)
	assert.Equal(t, RouteID(1), id)
	assert.Equal(t, "foo", vars["a"])
}

func TestFuse_OptionalVariableAbsent(t *testing.T) {
	entries := []DynamicEntry{
		{ID: 1, Pattern: "/[{lang:[a-z]{2}}/]hello"},
	}
	f, err := Fuse(entries)
	require.NoError(t, err)

	id, vars, ok := f.Match("/hello")
	require.True(t, ok)
	assert.Equal(t, RouteID(1), id)
	assert.Empty(t, vars)

	id, vars, ok = f.Match("/en/hello")
	require.True(t, ok)
	assert.Equal(t, RouteID(1), id)
	assert.Equal(t, "en", vars["lang"])
}

func TestFuse_RejectsStaticPattern(t *testing.T) {
	_, err := Fuse([]DynamicEntry{{ID: 1, Pattern: "/static"}})
	require.Error(t, err)
}
