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

package pattern

// NamedConstraints is the fixed dictionary of built-in constraint
// names recognized in `{name:type}` holes. An entry here wins over an
// inline regex fragment with the same text, so these names are
// reserved: a route that needs the literal regex `int` as a
// constraint must write it some other way (it won't come up in
// practice, since `int` alone is not a meaningful regex fragment
// anyone would write deliberately).
var NamedConstraints = map[string]string{
	"int":   `\d+`,
	"lower": `[a-z]+`,
	"upper": `[A-Z]+`,
	"alpha": `[A-Za-z]+`,
	"alnum": `[A-Za-z0-9]+`,
	"year":  `[12][0-9]{3}`,
	"month": `0[1-9]|1[012]`,
	"day":   `0[1-9]|[12][0-9]|3[01]`,
	"uuid":  `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
}

// ResolveConstraint returns the regex fragment for a constraint token.
// Named types are looked up in NamedConstraints; anything else is
// treated as an inline regex fragment with anchors stripped.
func ResolveConstraint(raw string) string {
	if frag, ok := NamedConstraints[raw]; ok {
		return frag
	}
	return stripAnchors(raw)
}

// stripAnchors removes redundant `^`, `$`, `\A`, `\z` anchors from an
// inline fragment; the compiler supplies its own anchoring when it
// wraps the fragment in a named capture group.
func stripAnchors(frag string) string {
	for {
		switch {
		case hasPrefix(frag, `\A`):
			frag = frag[2:]
		case hasPrefix(frag, "^"):
			frag = frag[1:]
		default:
			goto trimEnd
		}
	}
trimEnd:
	for {
		switch {
		case hasSuffix(frag, `\z`):
			frag = frag[:len(frag)-2]
		case hasSuffix(frag, "$"):
			frag = frag[:len(frag)-1]
		default:
			return frag
		}
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
