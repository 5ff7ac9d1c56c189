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

// Package wayfind is a Symfony-style HTTP route matcher and URI
// generator: register routes with a fluent Builder, compile them once
// into an immutable Collection, then match requests and generate URIs
// against that Collection from any number of goroutines without
// further synchronization.
//
//	b := wayfind.New()
//	b.GET("/users/{id:int}", showUser).SetName... // see Route.Where/Default for constraints
//	col, err := b.Build()
//	...
//	m, err := col.Match(wayfind.Request{Method: "GET", Path: "/users/42"})
//
// The package splits into three layers:
//
//   - pattern: the `{name:constraint=default}` / `[optional]` DSL
//     lexer and parser.
//   - compiler: turns parsed patterns into matching structures (a
//     static literal bucket and a single fused dynamic regex).
//   - wayfind (this package): the route collection API, the request
//     dispatcher, the URI generator, and the cache serializer — the
//     only layer that knows about HTTP methods, schemes and hosts.
package wayfind
