// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeOpenDecodeClose(t *testing.T) {
	h, err := OpenModel([]byte(minimalIFC4), nil)
	require.NoError(t, err)

	count, err := IndexedEntityCount(h)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), count)

	attrs, err := GetEntityAttrs(h, 1)
	require.NoError(t, err)
	require.Len(t, attrs, 9) // IfcProject's flattened attribute count.
	assert.Equal(t, "GlobalId", attrs[0].Name)
	assert.Equal(t, AVString, attrs[0].Kind)
	assert.Equal(t, "0eGX$lz0HAuhZuKw48v96r", attrs[0].Str)

	tables, err := GetDataTables(h)
	require.NoError(t, err)
	assert.Equal(t, 1, tables.Entities.Len())

	require.NoError(t, CloseModel(h))

	_, err = IndexedEntityCount(h)
	assert.ErrorIs(t, err, ErrInvalidHandle)

	// Double close is a no-op error, never a panic.
	assert.ErrorIs(t, CloseModel(h), ErrInvalidHandle)
}

func TestBridgeUnknownHandle(t *testing.T) {
	_, err := GetEntityAttrs(ModelHandle(99999), 1)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}
