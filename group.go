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

import "strings"

// groupAttrs is the cumulative set of attributes a Group applies to
// every route registered through it: path prefix, name prefix,
// default values, per-variable constraints, host/scheme restrictions
// and an inherited middleware chain. A Route only stores a pointer
// back to its owning Group at registration time; Builder.Build reads
// groupAttrs and merges it into each Route at freeze time, so a
// group's own attributes may be mutated freely up until Build runs,
// including after routes were registered through it. A nested group
// takes a copy of its parent's attributes when it is created (see
// Group.Group); changes made to the parent after that do not reach the
// nested group or its routes.
type groupAttrs struct {
	prefix     string
	namePrefix string
	defaults   map[string]string
	patterns   map[string]string
	hosts      []string
	schemes    []string
	middleware []any
}

// Group organizes related routes under a common path prefix, name
// prefix, and inherited attributes. Grounded on route/group.go in the
// teacher, generalized from middleware-only composition to the full
// set of group-level route attributes spec.md §4.G names.
type Group struct {
	b     *Builder
	attrs groupAttrs
}

// Use appends middleware to the group's inherited chain.
func (g *Group) Use(mw ...any) *Group {
	g.attrs.middleware = append(g.attrs.middleware, mw...)
	return g
}

// SetNamePrefix extends the group's route-name prefix.
func (g *Group) SetNamePrefix(prefix string) *Group {
	g.attrs.namePrefix += prefix
	return g
}

// WithDefault sets a default value inherited by every route added
// through this group.
func (g *Group) WithDefault(name, value string) *Group {
	if g.attrs.defaults == nil {
		g.attrs.defaults = make(map[string]string)
	}
	g.attrs.defaults[name] = value
	return g
}

// WherePattern sets a per-variable constraint inherited by every
// route added through this group.
func (g *Group) WherePattern(name, constraint string) *Group {
	if g.attrs.patterns == nil {
		g.attrs.patterns = make(map[string]string)
	}
	g.attrs.patterns[name] = constraint
	return g
}

// Host restricts every route added through this group to a host
// pattern.
func (g *Group) Host(pattern string) *Group {
	g.attrs.hosts = append(g.attrs.hosts, pattern)
	return g
}

// Scheme restricts every route added through this group to one or
// more schemes.
func (g *Group) Scheme(schemes ...string) *Group {
	for _, s := range schemes {
		g.attrs.schemes = append(g.attrs.schemes, lower(s))
	}
	return g
}

// Group creates a nested group under the current one, inheriting its
// prefix, name prefix, defaults, constraints, host/scheme
// restrictions and middleware as they stand at this call. Mutating the
// child never affects the parent, and later mutations of the parent do
// not affect the child.
func (g *Group) Group(prefix string) *Group {
	return &Group{
		b: g.b,
		attrs: groupAttrs{
			prefix:     joinPath(g.attrs.prefix, prefix),
			namePrefix: g.attrs.namePrefix,
			defaults:   cloneStrMap(g.attrs.defaults),
			patterns:   cloneStrMap(g.attrs.patterns),
			hosts:      append([]string(nil), g.attrs.hosts...),
			schemes:    append([]string(nil), g.attrs.schemes...),
			middleware: append([]any(nil), g.attrs.middleware...),
		},
	}
}

func (g *Group) GET(path string, handler any) *Route     { return g.Add([]string{"GET"}, path, handler) }
func (g *Group) POST(path string, handler any) *Route    { return g.Add([]string{"POST"}, path, handler) }
func (g *Group) PUT(path string, handler any) *Route     { return g.Add([]string{"PUT"}, path, handler) }
func (g *Group) PATCH(path string, handler any) *Route   { return g.Add([]string{"PATCH"}, path, handler) }
func (g *Group) DELETE(path string, handler any) *Route  { return g.Add([]string{"DELETE"}, path, handler) }
func (g *Group) HEAD(path string, handler any) *Route    { return g.Add([]string{"HEAD"}, path, handler) }
func (g *Group) OPTIONS(path string, handler any) *Route { return g.Add([]string{"OPTIONS"}, path, handler) }

// Any registers a route that matches any method.
func (g *Group) Any(path string, handler any) *Route { return g.Add(nil, path, handler) }

// Add registers a route for an explicit method list (nil/empty means
// "any method") under this group's attributes.
func (g *Group) Add(methods []string, path string, handler any) *Route {
	return g.b.addRoute(g, methods, path, handler)
}

func joinPath(prefix, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	}
	var sb strings.Builder
	sb.WriteString(strings.TrimSuffix(prefix, "/"))
	if !strings.HasPrefix(path, "/") {
		sb.WriteByte('/')
	}
	sb.WriteString(path)
	return sb.String()
}

func cloneStrMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
