// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHeader(schemaLine string) string {
	return "ISO-10303-21;\n" +
		"HEADER;\n" +
		"FILE_DESCRIPTION((''),'2;1');\n" +
		"FILE_NAME('test.ifc','2026-01-01T00:00:00',('Author'),('Org'),'prep','origSys','auth');\n" +
		"FILE_SCHEMA((" + schemaLine + "));\n" +
		"ENDSEC;\n" +
		"DATA;\n" +
		"#1=IFCPROJECT($,$,$,$,$,$,$,(),$);\n" +
		"ENDSEC;\n" +
		"END-ISO-10303-21;\n"
}

func TestParseHeaderIFC4(t *testing.T) {
	hdr, err := ParseHeader([]byte(sampleHeader("'IFC4'")))
	require.NoError(t, err)
	assert.Equal(t, SchemaIFC4, hdr.Schema)
	assert.Equal(t, "test.ifc", hdr.FileName)
	assert.Equal(t, []string{"Author"}, hdr.Author)
	assert.Equal(t, []string{"Org"}, hdr.Organization)
	assert.Equal(t, "prep", hdr.PreprocessorVersion)
	assert.Equal(t, "origSys", hdr.OriginatingSystem)
	assert.Equal(t, "auth", hdr.Authorization)
	assert.Greater(t, hdr.DataStart, 0)
}

func TestParseHeaderIFC2X3(t *testing.T) {
	hdr, err := ParseHeader([]byte(sampleHeader("'IFC2X3'")))
	require.NoError(t, err)
	assert.Equal(t, SchemaIFC2X3, hdr.Schema)
}

func TestParseHeaderIFC4X3Variants(t *testing.T) {
	for _, name := range []string{"IFC4X3", "IFC4X3_ADD2", "IFC4X3_RC1", "IFC4X3_RC4"} {
		hdr, err := ParseHeader([]byte(sampleHeader("'" + name + "'")))
		require.NoError(t, err)
		assert.Equal(t, SchemaIFC4X3, hdr.Schema)
	}
}

func TestParseHeaderUnsupportedSchema(t *testing.T) {
	_, err := ParseHeader([]byte(sampleHeader("'IFC5000'")))
	require.Error(t, err)
	var unsupported *UnsupportedSchemaError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "IFC5000", unsupported.Name)
}

func TestParseHeaderMissingHeader(t *testing.T) {
	_, err := ParseHeader([]byte("not a step file at all"))
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestParseHeaderMissingEndsec(t *testing.T) {
	_, err := ParseHeader([]byte("ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION((''),'2;1');\n"))
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestParseHeaderRejectsBinary(t *testing.T) {
	data := append([]byte{0x00, 0x00}, []byte("ISO-10303-21;")...)
	_, err := ParseHeader(data)
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestParseHeaderMissingFileSchema(t *testing.T) {
	src := "ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION((''),'2;1');\nFILE_NAME('a','b',(),(),'','','');\nENDSEC;\nDATA;\nENDSEC;\n"
	_, err := ParseHeader([]byte(src))
	require.Error(t, err)
	var unsupported *UnsupportedSchemaError
	assert.ErrorAs(t, err, &unsupported)
}

func TestSchemaString(t *testing.T) {
	assert.Equal(t, "IFC4", SchemaIFC4.String())
	assert.Equal(t, "UNKNOWN", SchemaUnknown.String())
}

// FuzzParseHeader exercises the HEADER-section reader against arbitrary
// and truncated input: it must only ever return one of the package's
// typed errors (or success), never panic.
func FuzzParseHeader(f *testing.F) {
	f.Add([]byte(sampleHeader("'IFC4'")))
	f.Add([]byte(sampleHeader("'BOGUS'")))
	f.Add([]byte("ISO-10303-21;"))
	f.Add([]byte{0x00, 0x00, 0x01})
	f.Add([]byte(""))
	f.Add([]byte("ISO-10303-21;\nHEADER;\nENDSEC;\n"))
	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = ParseHeader(data)
	})
}
