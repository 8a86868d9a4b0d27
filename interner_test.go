// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternerInternDedups(t *testing.T) {
	in := NewInterner()
	a := in.Intern("IFCWALL")
	b := in.Intern("IFCWALL")
	assert.Equal(t, a, b)

	c := in.Intern("IFCSLAB")
	assert.NotEqual(t, a, c)
}

func TestInternerLookup(t *testing.T) {
	in := NewInterner()
	id := in.Intern("IFCWALL")
	s, ok := in.Lookup(id)
	assert.True(t, ok)
	assert.Equal(t, "IFCWALL", s)

	_, ok = in.Lookup(StringID(999))
	assert.False(t, ok)

	s, ok = in.Lookup(0)
	assert.True(t, ok)
	assert.Equal(t, "", s)
}

func TestInternerFindDoesNotGrow(t *testing.T) {
	in := NewInterner()
	before := in.Len()
	_, ok := in.Find("NEVERSEEN")
	assert.False(t, ok)
	assert.Equal(t, before, in.Len())

	id := in.Intern("SEEN")
	found, ok := in.Find("SEEN")
	assert.True(t, ok)
	assert.Equal(t, id, found)
}
