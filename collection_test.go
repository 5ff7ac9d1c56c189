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

package wayfind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_AutoNamesRoutes(t *testing.T) {
	b := New()
	b.GET("/users/{id:int}", "h1")
	b.GET("/posts", "h2")

	col, err := b.Build()
	require.NoError(t, err)

	r, ok := col.RouteByName("GET_users_id_int")
	require.True(t, ok)
	assert.Equal(t, "/users/{id:int}", r.Path())
}

// Auto-naming only uppercases the method list (spec.md §4.G); the
// path-derived slug keeps whatever case the caller registered it with.
func TestBuild_AutoNamePreservesPathCase(t *testing.T) {
	b := New()
	b.GET("/Users/{ID}", "h1")

	col, err := b.Build()
	require.NoError(t, err)

	_, ok := col.RouteByName("GET_Users_ID")
	require.True(t, ok)
}

func TestBuild_DuplicateNameIsFatal(t *testing.T) {
	b := New()
	b.GET("/a", "h1").setName("dup")
	b.GET("/b", "h2").setName("dup")

	_, err := b.Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateRouteName))
}

func TestBuild_DuplicateRegistrationIsFatal(t *testing.T) {
	b := New()
	b.GET("/a", "h1")
	b.GET("/a", "h2")

	_, err := b.Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateRoute))
}

func TestBuild_IsIdempotent(t *testing.T) {
	b := New()
	b.GET("/a", "h1")

	col1, err := b.Build()
	require.NoError(t, err)
	col2, err := b.Build()
	require.NoError(t, err)
	assert.Same(t, col1, col2)
}

func TestGroup_PrefixAndNamePrefixCompose(t *testing.T) {
	b := New()
	api := b.Group("/api").SetNamePrefix("api.")
	v1 := api.Group("/v1").SetNamePrefix("v1.")
	v1.GET("/users", "list").setName("users")

	col, err := b.Build()
	require.NoError(t, err)

	r, ok := col.RouteByName("api.v1.users")
	require.True(t, ok)
	assert.Equal(t, "/api/v1/users", r.Path())
}

func TestGroup_AttributesInheritedByRoutes(t *testing.T) {
	b := New()
	g := b.Group("/admin").WherePattern("id", `\d+`).WithDefault("fmt", "json")
	g.GET("/users/{id}", "h")

	col, err := b.Build()
	require.NoError(t, err)

	m, err := col.Match(Request{Method: "GET", Path: "/admin/users/42"})
	require.NoError(t, err)
	assert.Equal(t, "42", m.Vars["id"])
}

// Group application is deferred until Build: a group mutation made
// after a route was registered through it, but before Build runs,
// still applies (spec.md §4.G: "mutated freely before freezing").
func TestGroup_MutationAfterRouteRegistrationStillApplies(t *testing.T) {
	b := New()
	g := b.Group("/admin")
	r := g.GET("/users/{id}[.{fmt}]", "h")
	g.WithDefault("fmt", "json")

	col, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "/admin/users/{id}[.{fmt}]", r.Path())

	m, err := col.Match(Request{Method: "GET", Path: "/admin/users/42"})
	require.NoError(t, err)
	assert.Equal(t, "json", m.Vars["fmt"])
}
