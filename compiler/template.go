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

import "github.com/wayfind-go/wayfind/pattern"

// TemplateKind identifies one element of a reverse Template.
type TemplateKind uint8

const (
	TplLit TemplateKind = iota
	TplVar
	TplOptional
)

// TemplateNode is one element of a reverse-generation template: the
// same tree the compiler walks to build a matching regex (segment.go),
// re-exported so the URI generator (component E) can walk it too,
// per spec.md §4.E step 2 ("re-walk the parser tokens emitting
// literals verbatim and emplacing placeholders for each variable").
type TemplateNode struct {
	Kind     TemplateKind
	Literal  string // TplLit
	VarName  string // TplVar
	Children []TemplateNode // TplOptional
}

// BuildTemplate parses src and returns its reverse-generation
// template. Grounded on route.ParseReversePattern in the teacher,
// generalized from a flat segment list to the full token tree so
// nested optional regions can be collapsed independently (spec.md
// §4.E step 5).
func BuildTemplate(src string) ([]TemplateNode, error) {
	tokens, err := pattern.Parse(src)
	if err != nil {
		return nil, err
	}
	seq, err := buildTree(tokens)
	if err != nil {
		return nil, err
	}
	return convertNodes(seq), nil
}

func convertNodes(seq []node) []TemplateNode {
	out := make([]TemplateNode, 0, len(seq))
	for _, n := range seq {
		switch v := n.(type) {
		case litNode:
			out = append(out, TemplateNode{Kind: TplLit, Literal: string(v)})
		case varNode:
			out = append(out, TemplateNode{Kind: TplVar, VarName: v.Name})
		case optNode:
			out = append(out, TemplateNode{Kind: TplOptional, Children: convertNodes([]node(v))})
		}
	}
	return out
}
