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
	"github.com/wayfind-go/wayfind/compiler"
)

// Route is one registered route, per spec.md §3's CompiledRoute: a
// name, the compiled path and host patterns, the declared method,
// scheme and host constraints, and the opaque handler payload the
// caller attached.
//
// A Route is immutable once a Builder's Build has run: the frozen
// Collection hands out pointers to it from multiple goroutines
// without synchronization, so nothing after Build may mutate it.
// Unlike the teacher's Route, there is deliberately no per-request
// "arguments" bag living on this struct — captured variables live on
// the Match value Collection.Match returns, not on the shared route
// (see DESIGN.md, "Open Question: per-request state").
type Route struct {
	name       string // final name, assigned by Builder.Build
	namePrefix string // resolved from the owning group at Build time
	userName   string // explicit name set via setName, empty if auto-generated
	ownPath    string // pattern text as passed to Add, relative to the owning group's prefix
	path       string // resolved full pattern text, set at Build time
	handler    any

	group *Group // owning group; its attrs are deferred-applied at Build time

	methods map[string]bool // empty == any method

	// Route-level overrides, set directly via Where/Default/Scheme/Host
	// before Build runs. These are merged with the owning group's attrs
	// at Build time rather than copied in at registration, so a group
	// may be mutated right up until Build (spec.md §4.G: "Group
	// application is deferred until build time").
	ownSchemes     []string
	ownHosts       []string
	ownDefaults    map[string]string
	ownConstraints map[string]string

	// Resolved at Build time: group attrs merged with the own* overrides
	// above (route-level wins on key collisions).
	schemes     []string
	hosts       []string
	defaults    map[string]string
	constraints map[string]string
	middleware  []any

	compiledPath  *compiler.CompiledPattern
	compiledHosts []*compiler.CompiledPattern
	variables     []compiler.Variable // union of path + host variable tables, first-occurrence order
}

// Name returns the route's name (auto-generated if none was set
// explicitly before Build).
func (r *Route) Name() string { return r.name }

// Path returns the route's full pattern text, with any group prefix
// joined on; it is resolved by Build and empty before then.
func (r *Route) Path() string { return r.path }

// Handler returns the opaque handler payload attached at registration.
func (r *Route) Handler() any { return r.handler }

// Methods returns the route's declared methods, or nil if it accepts
// any method.
func (r *Route) Methods() []string {
	if len(r.methods) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.methods))
	for m := range r.methods {
		out = append(out, m)
	}
	return out
}

// Chain returns the ordered middleware chain inherited from enclosing
// groups followed by the route's own handler — the ordering contract
// spec.md §1 keeps in scope even though executing it is out of scope.
func (r *Route) Chain() []any {
	chain := make([]any, 0, len(r.middleware)+1)
	chain = append(chain, r.middleware...)
	return append(chain, r.handler)
}

// setName overrides the auto-generated name. Called by the fluent
// route API before Build runs.
func (r *Route) setName(name string) *Route {
	r.userName = name
	return r
}

// SetName is the exported form of setName, for callers building
// routes outside a Group's fluent chain.
func (r *Route) SetName(name string) *Route { return r.setName(name) }

// Where attaches a per-variable regex constraint, overriding any
// inline constraint written in the pattern text itself (spec.md
// §4.B: "a route-level constraint always wins over one written inline
// in the pattern") and any constraint inherited from the owning group.
func (r *Route) Where(name, constraint string) *Route {
	if r.ownConstraints == nil {
		r.ownConstraints = make(map[string]string)
	}
	r.ownConstraints[name] = constraint
	return r
}

// Default attaches a default value for a path or host variable,
// overriding any default inherited from the owning group.
func (r *Route) Default(name, value string) *Route {
	if r.ownDefaults == nil {
		r.ownDefaults = make(map[string]string)
	}
	r.ownDefaults[name] = value
	return r
}

// Scheme restricts the route to the given schemes (lower-cased), in
// addition to any schemes inherited from the owning group.
func (r *Route) Scheme(schemes ...string) *Route {
	for _, s := range schemes {
		r.ownSchemes = append(r.ownSchemes, lower(s))
	}
	return r
}

// Host restricts the route to a host pattern (same DSL as paths,
// matched case-insensitively, compiled without trailing-slash
// tolerance — spec.md §4.B "Host compilation"). Host may be called
// more than once to declare alternatives; the first to match wins.
// Hosts declared here come after any inherited from the owning group.
func (r *Route) Host(pattern string) *Route {
	r.ownHosts = append(r.ownHosts, pattern)
	return r
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
