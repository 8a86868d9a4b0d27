// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeEnumOfKnownAndProxy(t *testing.T) {
	assert.Equal(t, EntityTypeWall, typeEnumOf("IFCWALL"))
	assert.Equal(t, EntityTypeWall, typeEnumOf("IFCWALLSTANDARDCASE"))
	assert.Equal(t, EntityTypeProxy, typeEnumOf("IFCSOMEUNKNOWNTYPE"))
}

func TestEntityTableAppendAndLookup(t *testing.T) {
	tbl := newEntityTable(4)
	row0 := tbl.appendRow(1, EntityTypeWall, 10, 11, 12, 13)
	row1 := tbl.appendRow(2, EntityTypeSlab, 20, 21, 22, 23)

	assert.Equal(t, 0, row0)
	assert.Equal(t, 1, row1)
	assert.Equal(t, 2, tbl.Len())

	assert.Equal(t, 0, tbl.RowOf(1))
	assert.Equal(t, 1, tbl.RowOf(2))
	assert.Equal(t, -1, tbl.RowOf(999))

	assert.Equal(t, StringID(11), tbl.Name[row0])
	assert.Equal(t, EntityTypeSlab, tbl.TypeEnum[row1])
}

func TestEntityTableFlags(t *testing.T) {
	tbl := newEntityTable(1)
	row := tbl.appendRow(1, EntityTypeWall, 0, 0, 0, 0)

	assert.False(t, tbl.HasFlag(row, FlagHasGeometry))
	tbl.setFlag(row, FlagHasGeometry)
	assert.True(t, tbl.HasFlag(row, FlagHasGeometry))
	assert.False(t, tbl.HasFlag(row, FlagHasOpenings))

	tbl.setFlag(row, FlagGeometryFailed)
	assert.True(t, tbl.HasFlag(row, FlagGeometryFailed))
}

func TestEntityTableFreezeIsIdempotentFlag(t *testing.T) {
	tbl := newEntityTable(0)
	assert.False(t, tbl.built)
	tbl.freeze()
	assert.True(t, tbl.built)
	tbl.freeze()
	assert.True(t, tbl.built)
}
