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

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/wayfind-go/wayfind/compiler"
)

// missingVariableError names the variable renderTemplate could not
// resolve; Generate unwraps it into a GenerationError.
type missingVariableError struct{ name string }

func (e *missingVariableError) Error() string { return "missing variable " + e.name }

// ReferenceType selects the form Collection.Generate renders, per
// spec.md §4.E.
type ReferenceType uint8

const (
	AbsoluteURL ReferenceType = iota
	AbsolutePath
	RelativePath
	NetworkPath
)

type genConfig struct {
	query    url.Values
	fragment string
	port     int
	hasPort  bool
	portErr  bool
}

// GenOption configures one call to Collection.Generate.
type GenOption func(*genConfig)

// WithQuery appends a query string built from values.
func WithQuery(values url.Values) GenOption {
	return func(c *genConfig) { c.query = values }
}

// WithFragment appends a "#fragment" to the generated URI.
func WithFragment(fragment string) GenOption {
	return func(c *genConfig) { c.fragment = fragment }
}

// WithPort supplies an explicit port for ABSOLUTE_URL/NETWORK_PATH
// references. Ports 80 and 443 are omitted regardless (spec.md §4.E
// step 8); a port outside 0..65535 is a generation error.
func WithPort(port int) GenOption {
	return func(c *genConfig) {
		if port < 0 || port > 65535 {
			c.portErr = true
			return
		}
		c.port = port
		c.hasPort = true
	}
}

const pathPreserved = "/?@:!;,*"

// queryPreserved is step 9's pass-through set: the same characters
// preserved in a path substitution (step 6) plus "=", since "=" is
// unambiguous once values are joined with "&" by encodeQuery rather
// than by net/url's QueryEscape-based Values.Encode.
const queryPreserved = pathPreserved + "="

// Generate renders a URI for the named route, substituting params
// into its reverse template (spec.md §4.E).
func (c *Collection) Generate(name string, params map[string]any, ref ReferenceType, opts ...GenOption) (string, error) {
	r, ok := c.RouteByName(name)
	if !ok {
		return "", &GenerationError{Route: name, Reason: ReasonUnknownRoute}
	}

	var cfg genConfig
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.portErr {
		return "", &GenerationError{Route: name, Reason: ReasonInvalidPort}
	}

	strParams := make(map[string]string, len(params))
	for k, v := range params {
		strParams[k] = fmt.Sprint(v)
	}
	resolve := resolver(strParams, r.variables)

	tpl, err := compiler.BuildTemplate(r.path)
	if err != nil {
		return "", err
	}
	body, err := renderTemplate(tpl, resolve, encodePathValue)
	if err != nil {
		var missing *missingVariableError
		if errors.As(err, &missing) {
			return "", &GenerationError{Route: name, Reason: ReasonMissingVariable, Variable: missing.name}
		}
		return "", err
	}

	var host string
	if len(r.hosts) > 0 {
		hostTpl, err := compiler.BuildTemplate(r.hosts[0])
		if err == nil {
			host, _ = renderTemplate(hostTpl, resolve, func(s string) string { return s })
		}
	}
	if cfg.hasPort && cfg.port != 80 && cfg.port != 443 {
		host += ":" + strconv.Itoa(cfg.port)
	}

	scheme := pickScheme(r.schemes)

	var sb strings.Builder
	switch ref {
	case AbsolutePath:
		sb.WriteString(body)
	case RelativePath:
		sb.WriteByte('.')
		sb.WriteString(body)
	case NetworkPath:
		sb.WriteString("//")
		sb.WriteString(host)
		sb.WriteString(body)
	default: // AbsoluteURL
		sb.WriteString(scheme)
		sb.WriteString("://")
		sb.WriteString(host)
		sb.WriteString(body)
	}

	if len(cfg.query) > 0 {
		sb.WriteByte('?')
		sb.WriteString(encodeQuery(cfg.query))
	}
	if cfg.fragment != "" {
		sb.WriteByte('#')
		sb.WriteString(cfg.fragment)
	}

	return sb.String(), nil
}

// pickScheme applies spec.md §4.E's tie-break: "https" if declared,
// else the last declared scheme, else "http".
func pickScheme(schemes []string) string {
	if len(schemes) == 0 {
		return "http"
	}
	for _, s := range schemes {
		if s == "https" {
			return "https"
		}
	}
	return schemes[len(schemes)-1]
}

// resolver returns a lookup function mapping a variable name to its
// substitution value: an explicit param wins, then the route's
// declared default. A variable resolves to (_, false) only when
// neither is available — spec.md §4.E's definition of "null".
func resolver(params map[string]string, vars []compiler.Variable) func(string) (string, bool) {
	defaults := make(map[string]string, len(vars))
	for _, v := range vars {
		if v.HasDefault {
			defaults[v.Name] = v.Default
		}
	}
	return func(name string) (string, bool) {
		if v, ok := params[name]; ok {
			return v, true
		}
		if v, ok := defaults[name]; ok {
			return v, true
		}
		return "", false
	}
}

// renderTemplate walks a reverse-generation template (spec.md §4.E
// steps 2-5), collapsing any optional region whose variables are all
// null and returning an error naming the first variable that is
// required (outside any collapsed region) but has no value.
func renderTemplate(nodes []compiler.TemplateNode, resolve func(string) (string, bool), encode func(string) string) (string, error) {
	var sb strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case compiler.TplLit:
			sb.WriteString(n.Literal)
		case compiler.TplVar:
			v, ok := resolve(n.VarName)
			if !ok {
				return "", &missingVariableError{name: n.VarName}
			}
			sb.WriteString(encode(v))
		case compiler.TplOptional:
			if allNull(n.Children, resolve) {
				continue
			}
			inner, err := renderTemplate(n.Children, resolve, encode)
			if err != nil {
				return "", err
			}
			sb.WriteString(inner)
		}
	}
	return sb.String(), nil
}

// allNull reports whether every variable inside nodes (recursively,
// through any nested optional region) has no resolvable value.
func allNull(nodes []compiler.TemplateNode, resolve func(string) (string, bool)) bool {
	for _, n := range nodes {
		switch n.Kind {
		case compiler.TplVar:
			if _, ok := resolve(n.VarName); ok {
				return false
			}
		case compiler.TplOptional:
			if !allNull(n.Children, resolve) {
				return false
			}
		}
	}
	return true
}

// encodePathValue percent-encodes a substituted variable value using
// the path's encoding rules (spec.md §4.E step 6): unreserved
// characters pass through verbatim, as do /?@:!;,* (a variable may
// itself hold a sub-path), everything else is escaped.
func encodePathValue(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || strings.IndexByte(pathPreserved, c) >= 0 {
			sb.WriteByte(c)
			continue
		}
		fmt.Fprintf(&sb, "%%%02X", c)
	}
	return sb.String()
}

// encodeQuery renders a query parameter bag per spec.md §4.E step 9:
// "&"-joined "key=value" pairs, percent-encoding each key and value
// with the queryPreserved pass-through set rather than net/url's
// QueryEscape (which escapes "/?@:!;,*" that step 9 requires left
// alone). Keys are sorted for deterministic output.
func encodeQuery(values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	first := true
	for _, k := range keys {
		for _, v := range values[k] {
			if !first {
				sb.WriteByte('&')
			}
			first = false
			sb.WriteString(encodeQueryValue(k))
			sb.WriteByte('=')
			sb.WriteString(encodeQueryValue(v))
		}
	}
	return sb.String()
}

func encodeQueryValue(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || strings.IndexByte(queryPreserved, c) >= 0 {
			sb.WriteByte(c)
			continue
		}
		fmt.Fprintf(&sb, "%%%02X", c)
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	default:
		return false
	}
}
