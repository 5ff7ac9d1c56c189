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
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/wayfind-go/wayfind/compiler"
)

// Request is the inbound request data Collection.Match needs. Path
// must be percent-encoded as received from the wire; Match decodes it
// itself (spec.md §4.D step 1).
type Request struct {
	Method string
	Scheme string
	Host   string
	Port   uint16
	HasPort bool
	Path   string
}

// Match is the result of a successful Collection.Match: the winning
// route plus its bound variables, string-typed (spec.md §4.D: "the
// core returns strings plus a separate typed view when the caller
// requests it" — see Bind).
type Match struct {
	Route *Route
	Vars  map[string]string
}

// Bind decodes Vars into dst (a struct pointer or map) using
// mapstructure and its default "mapstructure" struct tag, giving
// callers a typed view without the core engine taking a dependency on
// any particular parameter type system.
func (m *Match) Bind(dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(m.Vars)
}

// Match resolves a request against the collection per spec.md §4.D:
// path lookup (static bucket, then fused dynamic regex), then a
// method → scheme → host filter pass over every path-matching
// candidate, in build order.
func (c *Collection) Match(req Request) (*Match, error) {
	path, err := url.PathUnescape(req.Path)
	if err != nil {
		path = req.Path
	}
	path = normalizePath(path)

	candidates, pathVars, ok := c.lookupPath(path)
	if !ok {
		return nil, &NotFoundError{Method: req.Method, Path: req.Path}
	}

	var (
		methodMismatch bool
		hostMismatch   bool
		allowedMethods = map[string]bool{}
		allowedSchemes = map[string]bool{}
	)

	candidateHost := req.Host
	if req.HasPort {
		candidateHost = req.Host + ":" + strconv.Itoa(int(req.Port))
	}

	for _, id := range candidates {
		r := c.routes[id]

		if len(r.methods) > 0 && !r.methods[strings.ToUpper(req.Method)] {
			methodMismatch = true
			for m := range r.methods {
				allowedMethods[m] = true
			}
			continue
		}

		if len(r.schemes) > 0 && !containsFold(r.schemes, req.Scheme) {
			hostMismatch = true
			for _, s := range r.schemes {
				allowedSchemes[s] = true
			}
			continue
		}

		if len(r.compiledHosts) == 0 {
			return buildMatch(r, pathVars, nil), nil
		}

		hostVars, matched := matchHost(r.compiledHosts, candidateHost)
		if !matched {
			hostMismatch = true
			continue
		}
		return buildMatch(r, pathVars, hostVars), nil
	}

	switch {
	case methodMismatch:
		return nil, &MethodNotAllowedError{Method: req.Method, Path: req.Path, Allowed: sortedKeys(allowedMethods)}
	case hostMismatch:
		return nil, &UriConstraintViolationError{
			Method: req.Method, Path: req.Path, Scheme: req.Scheme, Host: req.Host,
			AllowedSchemes: sortedKeys(allowedSchemes),
		}
	default:
		return nil, &NotFoundError{Method: req.Method, Path: req.Path}
	}
}

// normalizePath applies spec.md §4.D step 1's path canonicalization:
// strip a single trailing '/' unless the path is exactly "/". Applied
// once, before either the static or dynamic lookup, so a pattern's
// trailing-slash tolerance (static_with_optional_slash, or the fused
// regex's own "\/?" rendering for dynamic patterns — compiler/
// segment.go's renderSeq) only ever has to reconcile with one
// canonical request form instead of two.
func normalizePath(path string) string {
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		return path[:len(path)-1]
	}
	return path
}

// lookupPath resolves an already-normalized path against the static
// bucket, then the fused dynamic regex. Static routes carry no path
// variables (a literal pattern has none by definition); dynamic routes
// hand back whatever the fused regex captured.
func (c *Collection) lookupPath(path string) ([]compiler.RouteID, map[string]string, bool) {
	if ids, ok := c.static.Lookup(path); ok {
		return ids, nil, true
	}
	if ids, ok := c.static.LookupOptionalSlash(path); ok {
		return ids, nil, true
	}
	if c.fused != nil {
		if id, vars, ok := c.fused.Match(path); ok {
			ids := []compiler.RouteID{id}
			// The alternation reports only its first matching branch;
			// later dynamic routes declaring the same pattern (e.g. GET
			// and POST on one path) are candidates too.
			for i, r := range c.routes {
				if compiler.RouteID(i) != id && !r.compiledPath.IsStatic &&
					r.path == c.routes[id].path && r.compiledPath.Regex.MatchString(path) {
					ids = append(ids, compiler.RouteID(i))
				}
			}
			return ids, vars, true
		}
	}

	return nil, nil, false
}

func matchHost(hosts []*compiler.CompiledPattern, candidateHost string) (map[string]string, bool) {
	for _, hp := range hosts {
		if hp.IsStatic {
			if strings.EqualFold(hp.Literal, candidateHost) {
				return nil, true
			}
			continue
		}
		m := hp.Regex.FindStringSubmatch(candidateHost)
		if m == nil {
			continue
		}
		vars := make(map[string]string, len(hp.Variables))
		for i, name := range hp.Regex.SubexpNames() {
			if i == 0 || name == "" {
				continue
			}
			if m[i] != "" {
				vars[name] = m[i]
			}
		}
		return vars, true
	}
	return nil, false
}

// buildMatch applies spec.md §4.D's variable binding precedence: path
// capture, then host capture, then the route's declared default.
func buildMatch(r *Route, pathVars, hostVars map[string]string) *Match {
	vars := make(map[string]string, len(r.variables))
	for _, v := range r.variables {
		if val, ok := pathVars[v.Name]; ok {
			vars[v.Name] = val
			continue
		}
		if val, ok := hostVars[v.Name]; ok {
			vars[v.Name] = val
			continue
		}
		if v.HasDefault {
			vars[v.Name] = v.Default
		}
	}
	return &Match{Route: r, Vars: vars}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
