// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpatialHierarchyNodeLookupsAndContainment(t *testing.T) {
	h := newSpatialHierarchy()
	h.Root = 1
	elevation := 3.0
	h.nodes[1] = &SpatialNode{ExpressID: 1, Children: []uint32{2}}
	h.nodes[2] = &SpatialNode{ExpressID: 2, Parent: 1, Children: []uint32{3}, Elevation: &elevation}
	h.nodes[3] = &SpatialNode{ExpressID: 3, Parent: 2}

	h.elementToStorey[100] = 3
	h.elementToBuilding[100] = 2
	h.elementToSite[100] = 1

	node, ok := h.Node(2)
	require.True(t, ok)
	assert.Equal(t, uint32(1), node.Parent)
	require.NotNil(t, node.Elevation)
	assert.Equal(t, 3.0, *node.Elevation)

	storey, ok := h.Storey(100)
	require.True(t, ok)
	assert.Equal(t, uint32(3), storey)

	building, ok := h.Building(100)
	require.True(t, ok)
	assert.Equal(t, uint32(2), building)

	site, ok := h.Site(100)
	require.True(t, ok)
	assert.Equal(t, uint32(1), site)

	_, ok = h.Space(100)
	assert.False(t, ok)

	_, ok = h.Node(999)
	assert.False(t, ok)
}

func TestSpatialHierarchyFreeze(t *testing.T) {
	h := newSpatialHierarchy()
	assert.False(t, h.built)
	h.freeze()
	assert.True(t, h.built)
}

func TestNoProjectErrorMessage(t *testing.T) {
	err := &NoProjectError{Count: 0}
	assert.Contains(t, err.Error(), "0")
}

func TestSpatialCycleErrorMessage(t *testing.T) {
	err := &SpatialCycleError{IDs: []uint32{1, 2, 3}}
	assert.Contains(t, err.Error(), "1")
}
