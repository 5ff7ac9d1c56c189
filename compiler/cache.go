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

import "regexp"

// Go's regexp package exposes no way to serialize a compiled RE2
// program; the *regexp.Regexp.String method is the only thing that
// survives a round trip. So the snapshot types below persist regex
// *source text* plus everything the compiler derived around it
// (static prefixes, variable tables, branch bookkeeping) and skip
// straight back to regexp.Compile on load — the parsing/tree-building/
// rendering work (segment.go, fuse.go) is what a cache saves; the
// final regexp.Compile call is unavoidable (spec.md §4.F, DESIGN.md
// "Cache serializer").

// PatternSnapshot is a CompiledPattern reduced to its serializable
// parts.
type PatternSnapshot struct {
	Source       string
	IsStatic     bool
	Literal      string
	StaticPrefix string
	RegexSource  string // empty when IsStatic
	Variables    []Variable
}

// Snapshot captures cp for serialization.
func (cp *CompiledPattern) Snapshot() PatternSnapshot {
	s := PatternSnapshot{
		Source:       cp.Source,
		IsStatic:     cp.IsStatic,
		Literal:      cp.Literal,
		StaticPrefix: cp.StaticPrefix,
		Variables:    cp.Variables,
	}
	if cp.Regex != nil {
		s.RegexSource = cp.Regex.String()
	}
	return s
}

// PatternFromSnapshot rebuilds a CompiledPattern from a snapshot,
// recompiling its regex (if any) without re-running the parser.
func PatternFromSnapshot(s PatternSnapshot) (*CompiledPattern, error) {
	cp := &CompiledPattern{
		Source:       s.Source,
		IsStatic:     s.IsStatic,
		Literal:      s.Literal,
		StaticPrefix: s.StaticPrefix,
		Variables:    s.Variables,
	}
	if !s.IsStatic {
		rx, err := regexp.Compile(s.RegexSource)
		if err != nil {
			return nil, err
		}
		cp.Regex = rx
	}
	return cp, nil
}

// StaticSnapshot is a Static bucket reduced to its serializable parts
// (the bloom filter itself is rebuilt from the route map on load —
// it's cheaper to recompute than to serialize).
type StaticSnapshot struct {
	Routes            map[string][]RouteID
	WithOptionalSlash map[string][]RouteID
}

// Snapshot captures s for serialization.
func (s *Static) Snapshot() StaticSnapshot {
	return StaticSnapshot{Routes: s.routes, WithOptionalSlash: s.withOptionalSlash}
}

// StaticFromSnapshot rebuilds a Static bucket from a snapshot.
func StaticFromSnapshot(snap StaticSnapshot) *Static {
	size := uint64(len(snap.Routes) * 10)
	if size < 128 {
		size = 128
	}
	st := &Static{
		bloom:             newBloomFilter(size, 3),
		routes:            snap.Routes,
		withOptionalSlash: snap.WithOptionalSlash,
	}
	if st.routes == nil {
		st.routes = make(map[string][]RouteID)
	}
	if st.withOptionalSlash == nil {
		st.withOptionalSlash = make(map[string][]RouteID)
	}
	for lit := range st.routes {
		st.bloom.add(lit)
	}
	return st
}

// BranchSnapshot is one Fused branch reduced to its serializable
// parts.
type BranchSnapshot struct {
	ID        RouteID
	MarkGroup int
	VarGroups []int
	Variables []Variable
}

// FusedSnapshot is a Fused regex reduced to its serializable parts.
type FusedSnapshot struct {
	RegexSource string // empty when there were no dynamic routes
	Branches    []BranchSnapshot
}

// Snapshot captures f for serialization. A nil Fused (no dynamic
// routes) snapshots to the zero value.
func (f *Fused) Snapshot() FusedSnapshot {
	if f == nil {
		return FusedSnapshot{}
	}
	branches := make([]BranchSnapshot, len(f.branches))
	for i, b := range f.branches {
		branches[i] = BranchSnapshot{
			ID:        b.id,
			MarkGroup: b.markGroup,
			VarGroups: append([]int(nil), b.varGroups...),
			Variables: b.variables,
		}
	}
	return FusedSnapshot{RegexSource: f.Regex.String(), Branches: branches}
}

// FusedFromSnapshot rebuilds a Fused regex from a snapshot, without
// re-running Fuse. Returns (nil, nil) for an empty snapshot, mirroring
// Fuse's own "no dynamic routes" convention.
func FusedFromSnapshot(s FusedSnapshot) (*Fused, error) {
	if s.RegexSource == "" {
		return nil, nil
	}
	rx, err := regexp.Compile(s.RegexSource)
	if err != nil {
		return nil, err
	}
	branches := make([]branch, len(s.Branches))
	for i, b := range s.Branches {
		branches[i] = branch{id: b.ID, markGroup: b.MarkGroup, varGroups: b.VarGroups, variables: b.Variables}
	}
	return &Fused{Regex: rx, branches: branches}, nil
}
