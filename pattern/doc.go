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

// Package pattern tokenizes the route pattern DSL used by wayfind.
//
// A pattern is made of three kinds of grammar:
//
//   - literal text, copied through as-is (after escaping in the
//     compiler);
//   - variable holes, `{name}`, `{name:constraint}`, `{name=default}`
//     or `{name:constraint=default}`;
//   - optional regions, `[...]`, which may nest.
//
// Host patterns use the same grammar, matched case-insensitively by
// the compiler. A scheme prefix (`https://`) in a host pattern is not
// recognized or stripped anywhere: it is read as literal text, and
// schemes are set through Route.Scheme and Group.Scheme instead.
//
// Parse (and its unexported lexer) never evaluates regex fragments
// itself — it hands
// constraint text through unchanged so the compiler package can decide
// between a named-type lookup (see constraint.go) and a raw fragment.
package pattern
