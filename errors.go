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
	"strings"
)

// Build-time sentinel errors. ErrDuplicateRouteName and
// ErrDuplicateRoute are returned (wrapped) from Builder.Build; callers
// compare with errors.Is.
var (
	// ErrDuplicateRouteName is returned when two routes share a name.
	ErrDuplicateRouteName = errors.New("wayfind: duplicate route name")
	// ErrDuplicateRoute is returned when two routes share the same
	// method and pattern text.
	ErrDuplicateRoute = errors.New("wayfind: duplicate method+pattern")
	// ErrFrozen names the error of mutating a Builder already consumed
	// by Build. No Builder method returns it: routes added after Build
	// are kept on the Builder but never reach the built Collection.
	ErrFrozen = errors.New("wayfind: builder already built")
)

// NotFoundError is returned by Collection.Match when no registered
// route matches the request path at all (spec.md §4.D, §7).
type NotFoundError struct {
	Method string
	Path   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("wayfind: no route matches %s %s", e.Method, e.Path)
}

// MethodNotAllowedError is returned when one or more routes match the
// path but none accept the request's method. Allowed carries the
// union of methods declared by every path-matching candidate,
// deduplicated and sorted.
type MethodNotAllowedError struct {
	Method  string
	Path    string
	Allowed []string
}

func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("wayfind: %s not allowed for %s (allowed: %s)", e.Method, e.Path, strings.Join(e.Allowed, ", "))
}

// UriConstraintViolationError is returned when a path-matching route
// exists but no candidate's scheme or host constraint accepts the
// request (spec.md §4.D).
type UriConstraintViolationError struct {
	Method         string
	Path           string
	Scheme         string
	Host           string
	AllowedSchemes []string
}

func (e *UriConstraintViolationError) Error() string {
	if len(e.AllowedSchemes) > 0 {
		return fmt.Sprintf("wayfind: %s://%s%s violates scheme/host constraints (allowed schemes: %s)", e.Scheme, e.Host, e.Path, strings.Join(e.AllowedSchemes, ", "))
	}
	return fmt.Sprintf("wayfind: %s://%s%s violates host constraints", e.Scheme, e.Host, e.Path)
}

// GenerationReason identifies why Collection.Generate failed.
type GenerationReason uint8

const (
	ReasonUnknownRoute GenerationReason = iota
	ReasonMissingVariable
	ReasonInvalidPort
)

// GenerationError is returned by Collection.Generate (spec.md §4.E).
type GenerationError struct {
	Route    string
	Reason   GenerationReason
	Variable string // set only when Reason == ReasonMissingVariable
}

func (e *GenerationError) Error() string {
	switch e.Reason {
	case ReasonUnknownRoute:
		return fmt.Sprintf("wayfind: no route named %q", e.Route)
	case ReasonMissingVariable:
		return fmt.Sprintf("wayfind: route %q: missing required variable %q", e.Route, e.Variable)
	case ReasonInvalidPort:
		return fmt.Sprintf("wayfind: route %q: port out of range", e.Route)
	default:
		return fmt.Sprintf("wayfind: route %q: generation failed", e.Route)
	}
}

// ErrCacheVersionMismatch is returned by Load when a serialized
// artifact was produced by an incompatible encoder version (spec.md
// §4.F: "fail closed, never attempt to interpret a foreign layout").
var ErrCacheVersionMismatch = errors.New("wayfind: cache artifact version mismatch")
