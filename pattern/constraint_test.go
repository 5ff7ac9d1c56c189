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

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// The uuid constraint's fixtures are generated with google/uuid rather
// than hand-typed, so the regex is exercised against the same
// canonical (8-4-4-4-12, lowercase, hyphenated) form the library
// actually produces.
func TestResolveConstraint_UUID(t *testing.T) {
	re := regexp.MustCompile(`^` + ResolveConstraint("uuid") + `$`)

	for i := 0; i < 5; i++ {
		assert.True(t, re.MatchString(uuid.New().String()))
	}

	assert.True(t, re.MatchString(uuid.Nil.String()))

	invalid := []string{
		"",
		"not-a-uuid",
		uuid.New().String() + "x",       // trailing garbage
		uuid.New().String()[:35],        // truncated
		"ffffffff-ffff-ffff-ffff-fffffffffffg", // non-hex digit
	}
	for _, v := range invalid {
		assert.False(t, re.MatchString(v), "expected %q to be rejected", v)
	}
}

func TestResolveConstraint_NamedVsInline(t *testing.T) {
	assert.Equal(t, NamedConstraints["int"], ResolveConstraint("int"))
	assert.Equal(t, "[a-z]+", ResolveConstraint("^[a-z]+$"))
	assert.Equal(t, "[a-z]+", ResolveConstraint(`\A[a-z]+\z`))
}
