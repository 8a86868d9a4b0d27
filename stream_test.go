// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStreamProjectOnlyScenario exercises §8's worked example: a
// project-only file streams Started → Indexed{1} → EntityBatch →
// PropertiesReady → RelationshipsReady → SpatialHierarchyReady →
// Completed, with no MeshBatch since nothing in the file carries
// geometry.
func TestStreamProjectOnlyScenario(t *testing.T) {
	m, err := NewBytes([]byte(minimalIFC4), nil)
	require.NoError(t, err)
	defer m.Close()

	var kinds []EventKind
	for ev := range m.StreamProcess(nil) {
		kinds = append(kinds, ev.Kind)
	}

	require.NotEmpty(t, kinds)
	assert.Equal(t, EventStarted, kinds[0])
	assert.Equal(t, EventIndexed, kinds[1])
	assert.Contains(t, kinds, EventEntityBatch)
	assert.Contains(t, kinds, EventPropertiesReady)
	assert.Contains(t, kinds, EventRelationshipsReady)
	assert.Contains(t, kinds, EventSpatialHierarchyReady)
	assert.Equal(t, EventCompleted, kinds[len(kinds)-1])
	assert.NotContains(t, kinds, EventMeshBatch)
}

// TestStreamCancellation checks that an already-cancelled token produces
// a terminal Error{Cancelled} rather than running the stream to
// completion, matching §5's cooperative-cancellation contract.
func TestStreamCancellation(t *testing.T) {
	m, err := NewBytes([]byte(minimalIFC4), nil)
	require.NoError(t, err)
	defer m.Close()

	tok := NewCancelToken()
	tok.Cancel()

	var last Event
	for ev := range m.StreamProcess(&Options{CancelToken: tok}) {
		last = ev
	}
	assert.Equal(t, EventError, last.Kind)
	assert.Equal(t, ErrKindCancelled, last.ErrKind)
}

func TestGrowingBatcherCapsAtMax(t *testing.T) {
	b := newGrowingBatcher(50, 500)
	sizes := []int{b.size(), b.size(), b.size(), b.size()}
	assert.Equal(t, []int{50, 100, 200, 400}, sizes)
	assert.Equal(t, 500, b.size())
}
