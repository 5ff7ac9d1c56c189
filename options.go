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

// Event is one diagnostic notification a Builder emits as routes are
// registered and during Build, when a caller supplies WithDiagnostics. Logging is explicitly out of
// scope for the core (spec.md §1), so rather than importing a logging
// library the core exposes a hook and leaves formatting to the
// caller — the same shape the teacher uses for its metrics/tracing
// seams (router/metrics.go, router/tracing.go), generalized to a
// single observer function instead of a dedicated collaborator
// interface per concern.
type Event struct {
	Kind    string // "route_added", "build_complete", "static_route", "dynamic_route"
	Route   string
	Message string
}

type config struct {
	bloomSize   uint64
	diagnostics func(Event)
}

func defaultConfig() config {
	return config{bloomSize: 1 << 14}
}

// Option configures a Builder at construction time.
type Option func(*config)

// WithBloomSize overrides the static bucket's bloom filter size (bit
// count). Larger values lower the false-positive rate for collections
// with many static routes at the cost of more memory.
func WithBloomSize(bits uint64) Option {
	return func(c *config) { c.bloomSize = bits }
}

// WithDiagnostics registers an observer called as routes are
// registered and as Build runs. The observer must not call back into
// the Builder.
func WithDiagnostics(fn func(Event)) Option {
	return func(c *config) { c.diagnostics = fn }
}

func (c *config) emit(kind, route, msg string) {
	if c.diagnostics == nil {
		return
	}
	c.diagnostics(Event{Kind: kind, Route: route, Message: msg})
}
