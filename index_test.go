// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEntityIndexSingleRecord(t *testing.T) {
	hdr, err := ParseHeader([]byte(minimalIFC4))
	require.NoError(t, err)

	in := NewInterner()
	idx, err := BuildEntityIndex([]byte(minimalIFC4), hdr.DataStart, in)
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())

	ref, ok := idx.Lookup(1)
	require.True(t, ok)
	typeName, ok := in.Lookup(ref.TypeUpper)
	require.True(t, ok)
	assert.Equal(t, "IFCPROJECT", typeName)
}

func TestBuildEntityIndexMultipleRecordsAndTypeGrouping(t *testing.T) {
	data := "ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION((''),'2;1');\n" +
		"FILE_NAME('a','b',(),(),'','','');\nFILE_SCHEMA(('IFC4'));\nENDSEC;\nDATA;\n" +
		"#1=IFCWALL($,$,$,$,$,$,$,$,$);\n" +
		"#2=IFCWALL($,$,$,$,$,$,$,$,$);\n" +
		"#3=IFCSLAB($,$,$,$,$,$,$,$,$);\n" +
		"ENDSEC;\nEND-ISO-10303-21;\n"
	hdr, err := ParseHeader([]byte(data))
	require.NoError(t, err)

	in := NewInterner()
	idx, err := BuildEntityIndex([]byte(data), hdr.DataStart, in)
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())

	wallID, ok := in.Find("IFCWALL")
	require.True(t, ok)
	assert.Equal(t, []uint32{1, 2}, idx.IDsOfType(wallID))

	assert.Equal(t, []uint32{1, 2, 3}, idx.AllIDsSorted())
}

func TestBuildEntityIndexDuplicateID(t *testing.T) {
	data := "ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION((''),'2;1');\n" +
		"FILE_NAME('a','b',(),(),'','','');\nFILE_SCHEMA(('IFC4'));\nENDSEC;\nDATA;\n" +
		"#1=IFCWALL($,$,$,$,$,$,$,$,$);\n" +
		"#1=IFCSLAB($,$,$,$,$,$,$,$,$);\n" +
		"ENDSEC;\nEND-ISO-10303-21;\n"
	hdr, err := ParseHeader([]byte(data))
	require.NoError(t, err)

	in := NewInterner()
	_, err = BuildEntityIndex([]byte(data), hdr.DataStart, in)
	require.Error(t, err)
	var dup *DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, uint32(1), dup.ID)
}

func TestBuildEntityIndexNestedParensAndEmbeddedSemicolon(t *testing.T) {
	data := "ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION((''),'2;1');\n" +
		"FILE_NAME('a','b',(),(),'','','');\nFILE_SCHEMA(('IFC4'));\nENDSEC;\nDATA;\n" +
		"#1=IFCPROJECT('id',$,'semi;colon',(#2,#3),$,$,$,(),$);\n" +
		"ENDSEC;\nEND-ISO-10303-21;\n"
	hdr, err := ParseHeader([]byte(data))
	require.NoError(t, err)

	in := NewInterner()
	idx, err := BuildEntityIndex([]byte(data), hdr.DataStart, in)
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
}

func TestBuildEntityIndexMalformedRecord(t *testing.T) {
	data := "ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION((''),'2;1');\n" +
		"FILE_NAME('a','b',(),(),'','','');\nFILE_SCHEMA(('IFC4'));\nENDSEC;\nDATA;\n" +
		"#1 IFCWALL($,$,$,$,$,$,$,$,$);\n" +
		"ENDSEC;\nEND-ISO-10303-21;\n"
	hdr, err := ParseHeader([]byte(data))
	require.NoError(t, err)

	in := NewInterner()
	_, err = BuildEntityIndex([]byte(data), hdr.DataStart, in)
	require.Error(t, err)
}
