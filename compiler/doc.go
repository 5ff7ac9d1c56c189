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

// Package compiler turns parsed route patterns into the matching
// structures wayfind's dispatcher consults at request time.
//
// # Two tiers
//
// Routes split into two buckets at build time:
//
//   - Static routes (no `{...}` holes anywhere) go into Static, a
//     literal_path → route_id map guarded by a bloom filter so a
//     request for a path nobody registered never touches the map.
//   - Dynamic routes (one or more variables) go into Fused, a single
//     compiled regexp.Regexp built by alternating every dynamic
//     route's body together. Go's regexp has no PCRE-style MARK, and
//     when several groups share a name (as the same variable name in
//     two routes does) SubexpIndex resolves only the leftmost one, so
//     Fused does not look captures up by name. Instead it wraps each
//     alternative in its own outer capture group (the "MARK"), and
//     keeps a side table mapping
//     (branch, slot) → variable name, which is the positional-capture
//     strategy spec.md §4.C allows as an alternative to distinct
//     per-route names.
//
// # Package layering
//
//   - segment.go (component B): pattern text → CompiledPattern
//     (regex, static prefix, variable table).
//   - static.go / bloom.go (component C, static half): the literal
//     bucket.
//   - fuse.go (component C, dynamic half): the fused regex.
//
// This package has no notion of HTTP methods, hosts, or schemes — it
// only ever answers "does this path match, and what did the
// variables capture". Filtering by method/scheme/host and producing
// the dispatcher's tagged errors is the top-level package's job
// (match.go), once it has a path match in hand.
package compiler
