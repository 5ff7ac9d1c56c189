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
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/wayfind-go/wayfind/compiler"
)

// cacheVersion is bumped whenever the serialized layout changes.
// Load fails closed (ErrCacheVersionMismatch) on any other value
// rather than guessing at a foreign layout (spec.md §4.F).
const cacheVersion = 1

type routeSnapshot struct {
	Name        string
	Path        string
	Methods     []string
	Schemes     []string
	Hosts       []string
	Defaults    map[string]string
	Constraints map[string]string
	CompiledPath compiler.PatternSnapshot
	HostPats    []compiler.PatternSnapshot
	Variables   []compiler.Variable
}

type collectionSnapshot struct {
	Version int
	Routes  []routeSnapshot
	Static  compiler.StaticSnapshot
	Fused   compiler.FusedSnapshot
}

// SaveCache serializes the collection's compiled artifact to w. The
// route's handler payload is deliberately not serialized — handlers
// are arbitrary Go values (often closures) with no general encoding,
// so Load rebuilds routes with a nil Handler; callers re-attach
// handlers by name after loading (see SetHandler).
func (c *Collection) SaveCache(w io.Writer) error {
	snap := collectionSnapshot{
		Version: cacheVersion,
		Routes:  make([]routeSnapshot, len(c.routes)),
		Static:  c.static.Snapshot(),
		Fused:   c.fused.Snapshot(),
	}
	for i, r := range c.routes {
		hostPats := make([]compiler.PatternSnapshot, len(r.compiledHosts))
		for j, hp := range r.compiledHosts {
			hostPats[j] = hp.Snapshot()
		}
		snap.Routes[i] = routeSnapshot{
			Name:        r.name,
			Path:        r.path,
			Methods:     r.Methods(),
			Schemes:     r.schemes,
			Hosts:       r.hosts,
			Defaults:    r.defaults,
			Constraints: r.constraints,
			CompiledPath: r.compiledPath.Snapshot(),
			HostPats:    hostPats,
			Variables:   r.variables,
		}
	}
	return msgpack.NewEncoder(w).Encode(&snap)
}

// Load deserializes a Collection previously written by SaveCache.
// Unlike Build, Load does not re-run the pattern parser or re-render
// any regex bodies: it recompiles only the persisted regex source
// text (see compiler.PatternFromSnapshot), which is the cheapest a
// pure-Go cache can get without forking the regexp package.
func Load(r io.Reader) (*Collection, error) {
	var snap collectionSnapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("wayfind: decode cache: %w", err)
	}
	if snap.Version != cacheVersion {
		return nil, ErrCacheVersionMismatch
	}

	routes := make([]*Route, len(snap.Routes))
	names := make(map[string]int, len(snap.Routes))
	for i, rs := range snap.Routes {
		cp, err := compiler.PatternFromSnapshot(rs.CompiledPath)
		if err != nil {
			return nil, fmt.Errorf("wayfind: route %q: %w", rs.Name, err)
		}
		hostPats := make([]*compiler.CompiledPattern, len(rs.HostPats))
		for j, hps := range rs.HostPats {
			hp, err := compiler.PatternFromSnapshot(hps)
			if err != nil {
				return nil, fmt.Errorf("wayfind: route %q: host %d: %w", rs.Name, j, err)
			}
			hostPats[j] = hp
		}

		methodSet := make(map[string]bool, len(rs.Methods))
		for _, m := range rs.Methods {
			methodSet[m] = true
		}

		routes[i] = &Route{
			name:          rs.Name,
			path:          rs.Path,
			methods:       methodSet,
			schemes:       rs.Schemes,
			hosts:         rs.Hosts,
			defaults:      rs.Defaults,
			constraints:   rs.Constraints,
			compiledPath:  cp,
			compiledHosts: hostPats,
			variables:     rs.Variables,
		}
		names[rs.Name] = i
	}

	static := compiler.StaticFromSnapshot(snap.Static)
	fused, err := compiler.FusedFromSnapshot(snap.Fused)
	if err != nil {
		return nil, fmt.Errorf("wayfind: cache: %w", err)
	}

	return &Collection{routes: routes, names: names, static: static, fused: fused}, nil
}

// SetHandler rebinds the opaque handler payload for a named route
// after loading a Collection from cache.
func (c *Collection) SetHandler(name string, handler any) bool {
	i, ok := c.names[name]
	if !ok {
		return false
	}
	c.routes[i].handler = handler
	return true
}

// SaveCacheFile atomically writes the collection's cache artifact to
// path: encode to a temp file in the same directory, then rename,
// so a concurrent reader never observes a partial write (spec.md
// §4.F: "written atomically").
func (c *Collection) SaveCacheFile(path string) error {
	tmp, err := os.CreateTemp(dirOf(path), ".wayfind-cache-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := c.SaveCache(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// LoadCacheFile reads a Collection previously written by
// SaveCacheFile. On any error — missing file, version mismatch,
// corrupt encoding — the caller is expected to fall back to building
// fresh from a Builder (spec.md §4.F: "transparent rebuild fallback").
func LoadCacheFile(path string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			if i == 0 {
				return "/"
			}
			return path[:i]
		}
	}
	return "."
}
