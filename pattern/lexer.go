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

import "strings"

// lexer walks a pattern string one rune of DSL metacharacter at a
// time. It has no notion of variables or optional-region nesting —
// that's the parser's job. The lexer only knows how to find the next
// metacharacter and hand back the literal run before it.
type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.src)
}

func (l *lexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

// nextLiteralRun consumes characters up to (but not including) the
// next `{`, `[` or `]`, returning them as a literal chunk. An empty
// string is a valid result (two metacharacters back to back).
func (l *lexer) nextLiteralRun() string {
	start := l.pos
	for !l.eof() {
		switch l.src[l.pos] {
		case '{', '[', ']':
			return l.src[start:l.pos]
		}
		l.pos++
	}
	return l.src[start:l.pos]
}

// readVarBody consumes up to and including the closing `}` of a
// variable hole whose opening `{` has already been consumed, and
// returns the text between the braces. Braces nested inside the body
// (a `{n}` repetition in a constraint) are balanced, not taken as the
// closing brace.
func (l *lexer) readVarBody() (string, error) {
	start := l.pos
	depth := 0
	for !l.eof() {
		switch l.src[l.pos] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				body := l.src[start:l.pos]
				l.pos++ // consume '}'
				return body, nil
			}
			depth--
		}
		l.pos++
	}
	return "", &ParseError{Pattern: l.src, Message: "unterminated variable, missing '}'"}
}

// splitVarBody splits `name[:constraint][=default]` into its parts.
// The constraint and default text are returned raw; validation and
// resolution happen in the parser / compiler.
func splitVarBody(body string) (name, constraint string, def string, hasDefault bool) {
	// Default comes after the (optional) constraint, so split on '='
	// first, then split the name/constraint half on the first ':'.
	namePart := body
	if eq := strings.IndexByte(body, '='); eq >= 0 {
		namePart = body[:eq]
		def = body[eq+1:]
		hasDefault = true
	}
	if colon := strings.IndexByte(namePart, ':'); colon >= 0 {
		name = namePart[:colon]
		constraint = namePart[colon+1:]
	} else {
		name = namePart
	}
	return name, constraint, def, hasDefault
}
