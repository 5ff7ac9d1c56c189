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

// Scenario 1: a single dynamic route matches and captures its variable.
func TestMatch_Scenario1_SimpleCapture(t *testing.T) {
	b := New()
	b.GET("/users/{id:int}", "H1")
	col, err := b.Build()
	require.NoError(t, err)

	m, err := col.Match(Request{Method: "GET", Path: "/users/42"})
	require.NoError(t, err)
	assert.Equal(t, "H1", m.Route.Handler())
	assert.Equal(t, map[string]string{"id": "42"}, m.Vars)
}

// Scenario 2: method mismatch on every path-matching candidate yields
// the union of their declared methods.
func TestMatch_Scenario2_MethodNotAllowedUnion(t *testing.T) {
	b := New()
	b.GET("/users/{id:int}", "H1")
	b.POST("/users/{id:int}", "H2")
	col, err := b.Build()
	require.NoError(t, err)

	_, err = col.Match(Request{Method: "DELETE", Path: "/users/42"})
	require.Error(t, err)
	var mna *MethodNotAllowedError
	require.True(t, errors.As(err, &mna))
	assert.ElementsMatch(t, []string{"GET", "POST"}, mna.Allowed)
}

// Scenario 3: the leading "[{lang}/]" optional region collapses
// cleanly when absent and captures when present.
func TestMatch_Scenario3_OptionalLeadingSegment(t *testing.T) {
	b := New()
	b.GET("/[{lang:[a-z]{2}}/]hello", "H3")
	col, err := b.Build()
	require.NoError(t, err)

	m, err := col.Match(Request{Method: "GET", Path: "/hello"})
	require.NoError(t, err)
	assert.Empty(t, m.Vars)

	m, err = col.Match(Request{Method: "GET", Path: "/en/hello"})
	require.NoError(t, err)
	assert.Equal(t, "en", m.Vars["lang"])
}

// Scenario 4: a scheme-restricted, host-matched route rejects the
// wrong scheme with UriConstraintViolation and matches the right one.
func TestMatch_Scenario4_SchemeConstraint(t *testing.T) {
	b := New()
	b.GET("/api", "H4").Host("{sub}.example.com").Scheme("https")
	col, err := b.Build()
	require.NoError(t, err)

	_, err = col.Match(Request{Method: "GET", Scheme: "http", Host: "foo.example.com", Path: "/api"})
	require.Error(t, err)
	var uv *UriConstraintViolationError
	require.True(t, errors.As(err, &uv))
	assert.Equal(t, []string{"https"}, uv.AllowedSchemes)

	m, err := col.Match(Request{Method: "GET", Scheme: "https", Host: "foo.example.com", Path: "/api"})
	require.NoError(t, err)
	assert.Equal(t, "foo", m.Vars["sub"])
}

// Scenario 5: a literal route always wins over a dynamic route that
// could also match the same path.
func TestMatch_Scenario5_StaticPrecedence(t *testing.T) {
	b := New()
	b.GET("/a", "static")
	b.GET("/{x}", "dynamic")
	col, err := b.Build()
	require.NoError(t, err)

	m, err := col.Match(Request{Method: "GET", Path: "/a"})
	require.NoError(t, err)
	assert.Equal(t, "static", m.Route.Handler())

	m, err = col.Match(Request{Method: "GET", Path: "/b"})
	require.NoError(t, err)
	assert.Equal(t, "dynamic", m.Route.Handler())
	assert.Equal(t, "b", m.Vars["x"])
}

func TestMatch_NotFound(t *testing.T) {
	b := New()
	b.GET("/a", "h")
	col, err := b.Build()
	require.NoError(t, err)

	_, err = col.Match(Request{Method: "GET", Path: "/nope"})
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestMatch_TrailingSlashTolerance(t *testing.T) {
	b := New()
	b.GET("/hello/", "slash")
	b.GET("/world", "noslash")
	col, err := b.Build()
	require.NoError(t, err)

	m, err := col.Match(Request{Method: "GET", Path: "/hello"})
	require.NoError(t, err)
	assert.Equal(t, "slash", m.Route.Handler())

	m, err = col.Match(Request{Method: "GET", Path: "/world/"})
	require.NoError(t, err)
	assert.Equal(t, "noslash", m.Route.Handler())
}

func TestMatch_TrailingSlashTolerance_Dynamic(t *testing.T) {
	b := New()
	b.GET("/users/{id:int}", "H1")
	col, err := b.Build()
	require.NoError(t, err)

	m, err := col.Match(Request{Method: "GET", Path: "/users/42/"})
	require.NoError(t, err)
	assert.Equal(t, "H1", m.Route.Handler())
	assert.Equal(t, "42", m.Vars["id"])
}

func TestMatch_Bind(t *testing.T) {
	b := New()
	b.GET("/users/{id:int}", "h")
	col, err := b.Build()
	require.NoError(t, err)

	m, err := col.Match(Request{Method: "GET", Path: "/users/42"})
	require.NoError(t, err)

	var dst struct {
		ID int `mapstructure:"id"`
	}
	require.NoError(t, m.Bind(&dst))
	assert.Equal(t, 42, dst.ID)
}
