// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributesFlattensParentFirst(t *testing.T) {
	reg := NewSchemaRegistry(SchemaIFC4)
	attrs, ok := reg.Attributes("IFCPROJECT")
	require.True(t, ok)
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name
	}
	assert.Equal(t, []string{
		"GlobalId", "OwnerHistory", "Name", "Description",
		"ObjectType", "LongName", "Phase",
		"RepresentationContexts", "UnitsInContext",
	}, names)
}

func TestIsSubtypeOf(t *testing.T) {
	reg := NewSchemaRegistry(SchemaIFC4)
	assert.True(t, reg.IsSubtypeOf("IFCWALL", "IFCELEMENT"))
	assert.True(t, reg.IsSubtypeOf("IFCWALL", "IFCROOT"))
	assert.False(t, reg.IsSubtypeOf("IFCWALL", "IFCSPATIALSTRUCTUREELEMENT"))
	// An unregistered type (e.g. a type-object like IfcWallType) reports
	// false rather than panicking.
	assert.False(t, reg.IsSubtypeOf("IFCWALLTYPE", "IFCROOT"))
}

// TestConcurrentSchemaAccess exercises NewSchemaRegistry/Attributes under
// concurrent model opens, per §5 "a caller may open multiple model
// handles in parallel" — run with -race to catch any regression of the
// shared-registry/flattened-cache locking.
func TestConcurrentSchemaAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg := NewSchemaRegistry(SchemaIFC4)
			_, _ = reg.Attributes("IFCWALL")
			_, _ = reg.Attributes("IFCPROJECT")
		}()
	}
	wg.Wait()
}
