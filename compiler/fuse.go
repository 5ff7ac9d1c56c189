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
	"fmt"
	"regexp"
	"strings"
)

// DynamicEntry is one dynamic route handed to Fuse.
type DynamicEntry struct {
	ID          RouteID
	Pattern     string
	Defaults    map[string]string
	Constraints map[string]string
}

// branch is one alternative of the fused regex.
type branch struct {
	id        RouteID
	markGroup int // outer capture group index that marks this branch as the winner
	variables []Variable
	varGroups []int // capture group index per variable, parallel to variables
}

// Fused is the fused dynamic regex from spec.md §3/§4.C: one
// alternation over every dynamic route's compiled body, with a
// positional-capture side table standing in for PCRE's MARK feature
// (Go's regexp has no MARK or branch reset, and resolves a group name
// shared by several branches only to the leftmost group, so the MARK
// is emulated with one outer, otherwise-unused capture group per
// branch — see spec.md §4.C and §9).
type Fused struct {
	Regex    *regexp.Regexp
	branches []branch
}

// Fuse compiles every dynamic route in entries (in the order given —
// callers are expected to have already applied spec.md §4.C's sort:
// routes with a static prefix before those without, ties broken by
// natural path order) into a single alternation.
//
// Returns (nil, nil) if entries is empty: an empty collection of
// dynamic routes has no fused regex at all (spec.md §3: dynamic_regex
// is "null if no dynamic routes").
func Fuse(entries []DynamicEntry) (*Fused, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString("^(?:")

	branches := make([]branch, 0, len(entries))
	groupCounter := 0

	for i, e := range entries {
		cp, body, err := compileCore(e.Pattern, e.Defaults, e.Constraints, false)
		if err != nil {
			return nil, fmt.Errorf("route %d: %w", e.ID, err)
		}
		if cp.IsStatic {
			return nil, fmt.Errorf("route %d: pattern %q has no variables; it belongs in the static bucket, not the fused regex", e.ID, e.Pattern)
		}

		if i > 0 {
			sb.WriteByte('|')
		}

		groupCounter++
		markGroup := groupCounter
		sb.WriteByte('(')
		sb.WriteString(body)
		sb.WriteByte(')')

		varGroups := make([]int, len(cp.Variables))
		for j := range cp.Variables {
			groupCounter++
			varGroups[j] = groupCounter
		}

		branches = append(branches, branch{
			id:        e.ID,
			markGroup: markGroup,
			variables: cp.Variables,
			varGroups: varGroups,
		})
	}

	sb.WriteString(")$")

	rx, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("fused dynamic regex: %w", err)
	}

	return &Fused{Regex: rx, branches: branches}, nil
}

// Match runs path against the fused regex and, on success, returns
// the winning route id plus its captured variables (present captures
// only — a variable whose group did not participate, as in an absent
// optional region, is left out of the map whether or not it declares
// a default; the caller applies spec.md §4.D's default/host/null
// precedence).
func (f *Fused) Match(path string) (RouteID, map[string]string, bool) {
	if f == nil {
		return 0, nil, false
	}

	idx := f.Regex.FindStringSubmatchIndex(path)
	if idx == nil {
		return 0, nil, false
	}

	for _, br := range f.branches {
		s, e := idx[2*br.markGroup], idx[2*br.markGroup+1]
		if s == -1 {
			continue
		}

		vars := make(map[string]string, len(br.variables))
		for i, v := range br.variables {
			g := br.varGroups[i]
			gs, ge := idx[2*g], idx[2*g+1]
			if gs == -1 {
				continue
			}
			vars[v.Name] = path[gs:ge]
		}
		return br.id, vars, true
	}

	// Unreachable: the alternation matched, so exactly one outer
	// group must have participated.
	return 0, nil, false
}

// Variables returns the declared variable table (including defaults)
// for one fused route, independent of whether it matched — used by
// the URI generator and by introspection.
func (f *Fused) Variables(id RouteID) ([]Variable, bool) {
	if f == nil {
		return nil, false
	}
	for _, br := range f.branches {
		if br.id == id {
			return br.variables, true
		}
	}
	return nil, false
}
