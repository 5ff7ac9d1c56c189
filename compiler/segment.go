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

	"github.com/wayfind-go/wayfind/pattern"
)

// Variable is one entry of a CompiledPattern's variable table, in the
// order the variable first appears in the source pattern.
type Variable struct {
	Name       string
	HasDefault bool
	Default    string
}

// CompiledPattern is the output of compiling a single path or host
// pattern: spec.md §3's CompiledRoute.path_regex / host_regexes plus
// the static prefix used to prune dynamic candidates.
type CompiledPattern struct {
	Source       string // the original DSL pattern text
	IsStatic     bool   // true when the pattern has no variables at all
	Literal      string // canonical literal form, valid only when IsStatic
	StaticPrefix string // longest literal run before the first '{' or '['
	Regex        *regexp.Regexp
	Variables    []Variable
}

// node is one element of the tree built from a Token sequence: either
// a literal run, a variable hole, or a nested optional region.
type node interface{ isNode() }

type litNode string

func (litNode) isNode() {}

type varNode pattern.Token

func (varNode) isNode() {}

type optNode []node

func (optNode) isNode() {}

// Compile turns pattern source text into a CompiledPattern.
//
// defaults supplies group-level default values (spec.md §4.B
// "Variable table"); constraints supplies per-variable regex
// overrides declared on the route (these win over an inline
// constraint written directly in the pattern).
func Compile(src string, defaults, constraints map[string]string) (*CompiledPattern, error) {
	return compile(src, defaults, constraints, false)
}

// CompileHost compiles a host pattern. Host patterns use the same DSL
// as path patterns but are matched case-insensitively and have no
// trailing-slash tolerance (spec.md §4.B "Host compilation").
func CompileHost(src string, defaults, constraints map[string]string) (*CompiledPattern, error) {
	return compile(src, defaults, constraints, true)
}

func compile(src string, defaults, constraints map[string]string, host bool) (*CompiledPattern, error) {
	cp, body, err := compileCore(src, defaults, constraints, host)
	if err != nil {
		return nil, err
	}
	if cp.IsStatic {
		return cp, nil
	}

	flags := ""
	if host {
		flags = "(?i)"
	}
	full := "^" + flags + body + "$"
	rx, err := regexp.Compile(full)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: compiled to invalid regex: %w", src, err)
	}
	cp.Regex = rx

	return cp, nil
}

// compileCore does the src → (variables, static prefix, regex body)
// work shared by Compile/CompileHost and by the fuser (Fuse): the
// fuser needs the unanchored body text to splice several routes into
// one alternation, so it cannot go through the anchored, individually
// compiled regexp.Regexp Compile returns.
func compileCore(src string, defaults, constraints map[string]string, host bool) (*CompiledPattern, string, error) {
	tokens, err := pattern.Parse(src)
	if err != nil {
		return nil, "", err
	}

	seq, err := buildTree(tokens)
	if err != nil {
		return nil, "", err
	}

	cp := &CompiledPattern{Source: src}

	if !hasVariable(seq) {
		cp.IsStatic = true
		if host {
			cp.Literal = strings.ToLower(src)
		} else {
			cp.Literal = canonicalize(src)
		}
		cp.StaticPrefix = cp.Literal
		return cp, "", nil
	}

	var body strings.Builder
	var vars []Variable
	renderSeq(seq, !host, defaults, constraints, &body, &vars)

	cp.StaticPrefix = staticPrefix(seq)
	cp.Variables = vars

	return cp, body.String(), nil
}

// hasVariable reports whether seq (at any nesting depth) contains a
// variable hole.
func hasVariable(seq []node) bool {
	for _, n := range seq {
		switch v := n.(type) {
		case varNode:
			return true
		case optNode:
			if hasVariable([]node(v)) {
				return true
			}
		}
	}
	return false
}

// staticPrefix returns the longest literal run at the start of seq,
// stopping at the first variable or optional region — spec.md §4.B:
// "The longest character run from the start of the pattern up to the
// first {, [, or other DSL metacharacter."
func staticPrefix(seq []node) string {
	var sb strings.Builder
	for _, n := range seq {
		lit, ok := n.(litNode)
		if !ok {
			break
		}
		sb.WriteString(string(lit))
	}
	return sb.String()
}

// buildTree consumes a flat Token slice (with OptStart/OptEnd markers)
// into a nested node tree. The parser has already validated bracket
// balance, so mismatches here would be a logic error, not user input.
func buildTree(tokens []pattern.Token) ([]node, error) {
	pos := 0
	seq, err := buildSeq(tokens, &pos)
	if err != nil {
		return nil, err
	}
	if pos != len(tokens) {
		return nil, fmt.Errorf("internal error: leftover tokens after parse")
	}
	return seq, nil
}

func buildSeq(tokens []pattern.Token, pos *int) ([]node, error) {
	var seq []node
	for *pos < len(tokens) {
		tok := tokens[*pos]
		switch tok.Kind {
		case pattern.OptEnd:
			return seq, nil
		case pattern.OptStart:
			*pos++
			inner, err := buildSeq(tokens, pos)
			if err != nil {
				return nil, err
			}
			if *pos >= len(tokens) || tokens[*pos].Kind != pattern.OptEnd {
				return nil, fmt.Errorf("internal error: expected ']'")
			}
			*pos++
			seq = append(seq, optNode(inner))
		case pattern.Lit:
			seq = append(seq, litNode(tok.Literal))
			*pos++
		case pattern.Var:
			seq = append(seq, varNode(tok))
			*pos++
		}
	}
	return seq, nil
}

// renderSeq writes the regex body for seq into body, recording every
// variable it encounters (in first-occurrence order) into vars.
//
// top is true only for the outermost call: combined with the
// "literal slash immediately before an optional region" check below,
// it implements spec.md §4.B's two trailing-slash relaxations:
//   - "the trailing $ is preceded by a ? when the last grammar
//     character is a slash" (the end-of-pattern case, top==true)
//   - "a leading `[/` immediately after an outer `/` is handled as
//     `\/?(?:...)?`" (the nested-optional case, any depth)
// Both collapse to the same rule: a literal slash that immediately
// precedes an optional region, or ends the whole pattern, is rendered
// `\/?` instead of `\/`.
func renderSeq(seq []node, top bool, defaults, constraints map[string]string, body *strings.Builder, vars *[]Variable) {
	for i, n := range seq {
		isLastTop := top && i == len(seq)-1
		_, nextIsOptional := nextNode(seq, i)
		switch v := n.(type) {
		case litNode:
			lit := string(v)
			switch {
			case lit == "/" && (isLastTop || nextIsOptional):
				body.WriteString(`\/?`)
			case strings.HasSuffix(lit, "/") && (isLastTop || nextIsOptional):
				body.WriteString(escapeLiteral(lit[:len(lit)-1]))
				body.WriteString(`\/?`)
			default:
				body.WriteString(escapeLiteral(lit))
			}
		case varNode:
			renderVar(pattern.Token(v), constraints, body)
			*vars = append(*vars, variableFor(pattern.Token(v), defaults))
		case optNode:
			body.WriteString(`(?:`)
			renderSeq([]node(v), false, defaults, constraints, body, vars)
			body.WriteString(`)?`)
		}
	}
}

// nextNode returns seq[i+1] and whether it is an optional region.
func nextNode(seq []node, i int) (node, bool) {
	if i+1 >= len(seq) {
		return nil, false
	}
	n := seq[i+1]
	_, ok := n.(optNode)
	return n, ok
}

func renderVar(tok pattern.Token, constraints map[string]string, body *strings.Builder) {
	var frag string
	switch {
	case constraints[tok.Name] != "":
		frag = pattern.ResolveConstraint(constraints[tok.Name])
	case tok.Constraint != "":
		frag = pattern.ResolveConstraint(tok.Constraint)
	default:
		frag = `[^/]+`
	}
	body.WriteString(`(?P<`)
	body.WriteString(tok.Name)
	body.WriteString(`>`)
	body.WriteString(neutralizeGroups(frag))
	body.WriteString(`)`)
}

// neutralizeGroups rewrites any capturing group (plain or named) in a user-supplied
// regex fragment into a non-capturing one, so a variable hole always
// contributes exactly one capturing group to the compiled pattern —
// the fuser (fuse.go) relies on that to map positional submatches
// back to variable names without re-parsing the regex source.
func neutralizeGroups(frag string) string {
	var sb strings.Builder
	inClass := false
	for i := 0; i < len(frag); i++ {
		c := frag[i]
		switch {
		case c == '\\' && i+1 < len(frag):
			sb.WriteByte(c)
			sb.WriteByte(frag[i+1])
			i++
			continue
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '(' && !inClass:
			if i+1 < len(frag) && frag[i+1] == '?' {
				rest := frag[i+2:]
				if strings.HasPrefix(rest, "P<") || strings.HasPrefix(rest, "<") {
					// named capture: drop the name, keep the group
					if end := strings.IndexByte(rest, '>'); end >= 0 {
						sb.WriteString(`(?:`)
						i += 2 + end
						continue
					}
				}
				sb.WriteByte(c) // already non-capturing, or a flag group
				continue
			}
			sb.WriteString(`(?:`)
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func variableFor(tok pattern.Token, defaults map[string]string) Variable {
	if tok.HasDefault {
		return Variable{Name: tok.Name, HasDefault: true, Default: tok.Default}
	}
	if d, ok := defaults[tok.Name]; ok {
		return Variable{Name: tok.Name, HasDefault: true, Default: d}
	}
	return Variable{Name: tok.Name}
}

// escapeLiteral escapes a literal run for inclusion in a regex. Slash
// and dot are escaped explicitly per spec.md §4.B even though
// regexp.QuoteMeta already escapes '.'; '/' needs no escaping for RE2
// correctness but spec.md calls it out, so we do it for a
// byte-for-byte match with the documented algorithm.
func escapeLiteral(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '/':
			sb.WriteString(`\/`)
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return sb.String()
}

// canonicalize ensures a literal pattern begins with '/', per spec.md
// §3: "path: the compiled pattern string (canonicalized to begin with
// '/')."
func canonicalize(s string) string {
	if !strings.HasPrefix(s, "/") {
		return "/" + s
	}
	return s
}
