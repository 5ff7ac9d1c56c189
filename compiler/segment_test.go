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

func TestCompile_Static(t *testing.T) {
	cp, err := Compile("/users", nil, nil)
	require.NoError(t, err)
	assert.True(t, cp.IsStatic)
	assert.Equal(t, "/users", cp.Literal)
	assert.Equal(t, "/users", cp.StaticPrefix)
	assert.Nil(t, cp.Regex)
}

func TestCompile_IntConstraint(t *testing.T) {
	cp, err := Compile("/users/{id:int}", nil, nil)
	require.NoError(t, err)
	require.False(t, cp.IsStatic)
	assert.Equal(t, "/users/", cp.StaticPrefix)
	require.Len(t, cp.Variables, 1)
	assert.Equal(t, "id", cp.Variables[0].Name)
	assert.False(t, cp.Variables[0].HasDefault)

	assert.True(t, cp.Regex.MatchString("/users/42"))
	assert.False(t, cp.Regex.MatchString("/users/abc"))

	m := cp.Regex.FindStringSubmatch("/users/42")
	require.NotNil(t, m)
	idx := cp.Regex.SubexpIndex("id")
	assert.Equal(t, "42", m[idx])
}

func TestCompile_RouteConstraintOverridesInline(t *testing.T) {
	cp, err := Compile("/files/{name:alpha}", nil, map[string]string{"name": `[a-z0-9_.-]+`})
	require.NoError(t, err)
	assert.True(t, cp.Regex.MatchString("/files/report_1.txt"))
}

func TestCompile_NestedOptional(t *testing.T) {
	cp, err := Compile("/[{a}/[{b}]]", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, cp.Regex)

	cases := map[string]map[string]string{
		"/":    {},
		"/x":   {"a": "x"},
		"/x/":  {"a": "x"},
		"/x/y": {"a": "x", "b": "y"},
	}
	for path, want := range cases {
		m := cp.Regex.FindStringSubmatch(path)
		require.NotNilf(t, m, "expected %q to match", path)
		got := map[string]string{}
		for i, name := range cp.Regex.SubexpNames() {
			if name != "" && m[i] != "" {
				got[name] = m[i]
			}
		}
		assert.Equal(t, want, got, "path %q", path)
	}
}

func TestCompile_TrailingSlashTolerance(t *testing.T) {
	cp, err := Compile("/users/{id}/", nil, nil)
	require.NoError(t, err)
	assert.True(t, cp.Regex.MatchString("/users/42"))
	assert.True(t, cp.Regex.MatchString("/users/42/"))
}

func TestCompile_VariableNameLengthBoundary(t *testing.T) {
	ok := "/" + "{" + repeat("a", 32) + "}"
	_, err := Compile(ok, nil, nil)
	require.NoError(t, err)

	bad := "/" + "{" + repeat("a", 33) + "}"
	_, err = Compile(bad, nil, nil)
	require.Error(t, err)
}

func TestCompile_Defaults(t *testing.T) {
	cp, err := Compile("/users/{id:int}[.{fmt=json}]", nil, nil)
	require.NoError(t, err)
	require.Len(t, cp.Variables, 2)
	assert.Equal(t, "fmt", cp.Variables[1].Name)
	assert.True(t, cp.Variables[1].HasDefault)
	assert.Equal(t, "json", cp.Variables[1].Default)

	assert.True(t, cp.Regex.MatchString("/users/7"))
	assert.True(t, cp.Regex.MatchString("/users/7.xml"))
}

func TestCompileHost_CaseInsensitive(t *testing.T) {
	cp, err := CompileHost("{sub}.example.com", nil, nil)
	require.NoError(t, err)
	assert.True(t, cp.Regex.MatchString("Foo.Example.com"))
}

func repeat(s string, n int) string {
	out := make([]byte, 0, n*len(s))
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
