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
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/wayfind-go/wayfind/compiler"
)

// Builder collects routes via its fluent API and, on Build, compiles
// them into an immutable Collection. Grounded on the teacher's
// Router/Registrar split (router/route/registrar.go), collapsed here
// into a single type since this package has no HTTP transport layer
// of its own to separate from the route table.
type Builder struct {
	cfg    config
	root   *Group
	routes []*Route

	built  *Collection
	frozen bool
}

// New creates an empty Builder.
func New(opts ...Option) *Builder {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	b := &Builder{cfg: cfg}
	b.root = &Group{b: b}
	return b
}

// Group creates a top-level route group with the given path prefix.
func (b *Builder) Group(prefix string) *Group { return b.root.Group(prefix) }

func (b *Builder) GET(path string, handler any) *Route     { return b.root.GET(path, handler) }
func (b *Builder) POST(path string, handler any) *Route    { return b.root.POST(path, handler) }
func (b *Builder) PUT(path string, handler any) *Route     { return b.root.PUT(path, handler) }
func (b *Builder) PATCH(path string, handler any) *Route   { return b.root.PATCH(path, handler) }
func (b *Builder) DELETE(path string, handler any) *Route  { return b.root.DELETE(path, handler) }
func (b *Builder) HEAD(path string, handler any) *Route    { return b.root.HEAD(path, handler) }
func (b *Builder) OPTIONS(path string, handler any) *Route { return b.root.OPTIONS(path, handler) }
func (b *Builder) Any(path string, handler any) *Route     { return b.root.Any(path, handler) }
func (b *Builder) Add(methods []string, path string, handler any) *Route {
	return b.root.Add(methods, path, handler)
}

// addRoute registers a route under group g. Per spec.md §4.G, group
// attributes are not copied in here: the route only remembers its
// owning group and its own registered path, and resolveRouteAttrs
// reads the group's (by-then-possibly-mutated) attrs during Build.
func (b *Builder) addRoute(g *Group, methods []string, path string, handler any) *Route {
	methodSet := make(map[string]bool, len(methods))
	for _, m := range methods {
		methodSet[strings.ToUpper(m)] = true
	}

	r := &Route{
		group:   g,
		ownPath: path,
		handler: handler,
		methods: methodSet,
	}
	b.routes = append(b.routes, r)
	b.cfg.emit("route_added", path, "")
	return r
}

// Collection is the frozen, concurrency-safe artifact a Builder
// produces: spec.md §3's Collection Artifact. Every field is set once
// by Build (or Load) and Match and Generate only read it, so a
// *Collection may be shared across goroutines without synchronization.
// The one mutator is SetHandler, which rewrites a route's handler
// without any locking.
type Collection struct {
	routes []*Route
	names  map[string]int
	static *compiler.Static
	fused  *compiler.Fused
}

// RouteByName returns a registered route by name, for introspection;
// Generate uses it to resolve the route it renders.
func (c *Collection) RouteByName(name string) (*Route, bool) {
	i, ok := c.names[name]
	if !ok {
		return nil, false
	}
	return c.routes[i], true
}

// Routes returns every route in build order (static-prefixed routes
// first, ties broken by path).
func (c *Collection) Routes() []*Route {
	return append([]*Route(nil), c.routes...)
}

// Build compiles every registered route into an immutable Collection.
// Calling Build again on the same Builder is a no-op that returns the
// already-built Collection (spec.md §8: "building an already-frozen
// collection").
func (b *Builder) Build() (*Collection, error) {
	if b.frozen {
		return b.built, nil
	}

	resolveRouteAttrs(b.routes)

	if err := assignNames(b.routes); err != nil {
		return nil, err
	}
	if err := checkDuplicateRegistrations(b.routes); err != nil {
		return nil, err
	}
	if err := compileRoutes(b.routes); err != nil {
		return nil, err
	}

	sort.SliceStable(b.routes, func(i, j int) bool {
		ri, rj := b.routes[i], b.routes[j]
		ei := ri.compiledPath.StaticPrefix == ""
		ej := rj.compiledPath.StaticPrefix == ""
		if ei != ej {
			return ej // ri has a static prefix (ei==false) -> sorts first
		}
		return ri.path < rj.path
	})

	static := compiler.NewStaticWithBits(len(b.routes), b.cfg.bloomSize)
	var dynEntries []compiler.DynamicEntry
	names := make(map[string]int, len(b.routes))

	for idx, r := range b.routes {
		id := compiler.RouteID(idx)
		names[r.name] = idx

		if r.compiledPath.IsStatic {
			static.Add(r.compiledPath.Literal, id)
			b.cfg.emit("static_route", r.name, r.compiledPath.Literal)
			continue
		}
		dynEntries = append(dynEntries, compiler.DynamicEntry{
			ID:          id,
			Pattern:     r.path,
			Defaults:    r.defaults,
			Constraints: r.constraints,
		})
		b.cfg.emit("dynamic_route", r.name, r.path)
	}

	fused, err := compiler.Fuse(dynEntries)
	if err != nil {
		return nil, err
	}

	b.built = &Collection{routes: b.routes, names: names, static: static, fused: fused}
	b.frozen = true
	b.cfg.emit("build_complete", "", fmt.Sprintf("%d routes", len(b.routes)))
	return b.built, nil
}

// resolveRouteAttrs applies each route's owning group's attrs, as they
// stand right now, merged with that route's own Where/Default/Scheme/
// Host overrides. This is the one place group attributes and a
// route's final path are computed, run once at the start of Build so
// that every prior group mutation — made in any order, any time before
// Build — is picked up (spec.md §4.G).
func resolveRouteAttrs(routes []*Route) {
	for _, r := range routes {
		g := r.group.attrs
		r.path = joinPath(g.prefix, r.ownPath)
		r.namePrefix = g.namePrefix
		r.defaults = mergeStrMap(g.defaults, r.ownDefaults)
		r.constraints = mergeStrMap(g.patterns, r.ownConstraints)
		r.schemes = append(append([]string(nil), g.schemes...), r.ownSchemes...)
		r.hosts = append(append([]string(nil), g.hosts...), r.ownHosts...)
		r.middleware = append([]any(nil), g.middleware...)
	}
}

// mergeStrMap combines a group-inherited map with a route's own
// overrides, the latter winning on key collisions.
func mergeStrMap(base, own map[string]string) map[string]string {
	if len(base) == 0 && len(own) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(own))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range own {
		out[k] = v
	}
	return out
}

// assignNames resolves each route's final name: namePrefix + either
// the explicit name set via setName, or an auto-generated one.
// Explicit duplicates are fatal; auto-generated collisions are
// disambiguated with a "_N" counter (spec.md §4.G).
func assignNames(routes []*Route) error {
	used := make(map[string]bool, len(routes))

	for _, r := range routes {
		if r.userName == "" {
			continue
		}
		full := r.namePrefix + r.userName
		if used[full] {
			return fmt.Errorf("%w: %q", ErrDuplicateRouteName, full)
		}
		used[full] = true
		r.name = full
	}

	for _, r := range routes {
		if r.userName != "" {
			continue
		}
		base := r.namePrefix + autoName(r)
		name := base
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		r.name = name
		used[name] = true
	}
	return nil
}

var nonIdentRE = regexp.MustCompile(`[^A-Za-z0-9]+`)

// autoName derives a route name from its methods and path per spec.md
// §4.G: methods joined by "_", then the path with separators and
// braces folded to "_", collapsing repeats.
func autoName(r *Route) string {
	methods := make([]string, 0, len(r.methods))
	for m := range r.methods {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	if len(methods) == 0 {
		methods = []string{"ANY"}
	}

	slug := nonIdentRE.ReplaceAllString(r.path, "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "root"
	}

	return strings.Join(methods, "_") + "_" + slug
}

func checkDuplicateRegistrations(routes []*Route) error {
	seen := make(map[string]bool, len(routes))
	for _, r := range routes {
		methods := make([]string, 0, len(r.methods))
		for m := range r.methods {
			methods = append(methods, m)
		}
		sort.Strings(methods)
		if len(methods) == 0 {
			methods = []string{""} // any method
		}
		for _, m := range methods {
			key := m + "\x00" + r.path
			if seen[key] {
				return fmt.Errorf("%w: %s %s", ErrDuplicateRoute, m, r.path)
			}
			seen[key] = true
		}
	}
	return nil
}

func compileRoutes(routes []*Route) error {
	for _, r := range routes {
		cp, err := compiler.Compile(r.path, r.defaults, r.constraints)
		if err != nil {
			return fmt.Errorf("route %q: %w", r.path, err)
		}
		r.compiledPath = cp

		variables := append([]compiler.Variable(nil), cp.Variables...)
		have := make(map[string]bool, len(variables))
		for _, v := range variables {
			have[v.Name] = true
		}

		for _, hostPattern := range r.hosts {
			chp, err := compiler.CompileHost(hostPattern, r.defaults, r.constraints)
			if err != nil {
				return fmt.Errorf("route %q: host %q: %w", r.path, hostPattern, err)
			}
			r.compiledHosts = append(r.compiledHosts, chp)
			for _, v := range chp.Variables {
				if !have[v.Name] {
					variables = append(variables, v)
					have[v.Name] = true
				}
			}
		}
		r.variables = variables
	}
	return nil
}
