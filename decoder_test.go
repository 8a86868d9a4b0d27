// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDecoder(t *testing.T, data string) (*Decoder, *Interner) {
	t.Helper()
	hdr, err := ParseHeader([]byte(data))
	require.NoError(t, err)
	in := NewInterner()
	idx, err := BuildEntityIndex([]byte(data), hdr.DataStart, in)
	require.NoError(t, err)
	reg := NewSchemaRegistry(hdr.Schema)
	dec, err := NewDecoder([]byte(data), idx, reg, 0)
	require.NoError(t, err)
	return dec, in
}

func TestDecoderDecodesKnownType(t *testing.T) {
	data := "ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION((''),'2;1');\n" +
		"FILE_NAME('a','b',(),(),'','','');\nFILE_SCHEMA(('IFC4'));\nENDSEC;\nDATA;\n" +
		"#1=IFCWALL('gid',$,'Wall-1',$,$,$,$,'tag',.NOTDEFINED.);\n" +
		"ENDSEC;\nEND-ISO-10303-21;\n"
	dec, _ := buildDecoder(t, data)

	ent, err := dec.Decode(1)
	require.NoError(t, err)
	assert.False(t, ent.Proxy)
	assert.Equal(t, "IFCWALL", ent.TypeUpper)
	require.Len(t, ent.Attributes, 9)

	gid, ok := ent.Attr("GlobalId")
	require.True(t, ok)
	assert.Equal(t, "gid", gid.Str)

	tag, ok := ent.Attr("Tag")
	require.True(t, ok)
	assert.Equal(t, "tag", tag.Str)

	_, ok = ent.Attr("NoSuchAttr")
	assert.False(t, ok)
}

func TestDecoderCachesResult(t *testing.T) {
	data := "ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION((''),'2;1');\n" +
		"FILE_NAME('a','b',(),(),'','','');\nFILE_SCHEMA(('IFC4'));\nENDSEC;\nDATA;\n" +
		"#1=IFCWALL('gid',$,'Wall-1',$,$,$,$,'tag',.NOTDEFINED.);\n" +
		"ENDSEC;\nEND-ISO-10303-21;\n"
	dec, _ := buildDecoder(t, data)

	first, err := dec.Decode(1)
	require.NoError(t, err)
	second, err := dec.Decode(1)
	require.NoError(t, err)
	assert.Same(t, first, second)

	dec.Purge()
	third, err := dec.Decode(1)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, first.TypeUpper, third.TypeUpper)
}

func TestDecoderArityMismatch(t *testing.T) {
	data := "ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION((''),'2;1');\n" +
		"FILE_NAME('a','b',(),(),'','','');\nFILE_SCHEMA(('IFC4'));\nENDSEC;\nDATA;\n" +
		"#1=IFCWALL('gid',$,'Wall-1');\n" +
		"ENDSEC;\nEND-ISO-10303-21;\n"
	dec, _ := buildDecoder(t, data)

	_, err := dec.Decode(1)
	require.Error(t, err)
	var arity *ArityMismatchError
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, "IFCWALL", arity.TypeName)
	assert.Equal(t, 9, arity.Expected)
	assert.Equal(t, 3, arity.Got)
}

func TestDecoderProxyDecodesUnknownType(t *testing.T) {
	data := "ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION((''),'2;1');\n" +
		"FILE_NAME('a','b',(),(),'','','');\nFILE_SCHEMA(('IFC4'));\nENDSEC;\nDATA;\n" +
		"#1=IFCSOMEFUTURETYPE(1,2,'x');\n" +
		"ENDSEC;\nEND-ISO-10303-21;\n"
	dec, _ := buildDecoder(t, data)

	ent, err := dec.Decode(1)
	require.NoError(t, err)
	assert.True(t, ent.Proxy)
	assert.Nil(t, ent.AttrNames)
	require.Len(t, ent.Attributes, 3)
	assert.Equal(t, int64(1), ent.Attributes[0].Int)
	assert.Equal(t, "x", ent.Attributes[2].Str)

	_, ok := ent.Attr("anything")
	assert.False(t, ok)
}

func TestDecoderUnindexedID(t *testing.T) {
	data := "ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION((''),'2;1');\n" +
		"FILE_NAME('a','b',(),(),'','','');\nFILE_SCHEMA(('IFC4'));\nENDSEC;\nDATA;\n" +
		"#1=IFCWALL('gid',$,'Wall-1',$,$,$,$,'tag',.NOTDEFINED.);\n" +
		"ENDSEC;\nEND-ISO-10303-21;\n"
	dec, _ := buildDecoder(t, data)

	_, err := dec.Decode(999)
	assert.Error(t, err)
}

// FuzzDecode feeds arbitrary DATA-section bodies through the full
// ParseHeader -> BuildEntityIndex -> Decode pipeline: a malformed or
// truncated record must surface as one of the package's typed errors,
// never a panic, regardless of how NextToken's re-tokenization of the
// record's argument-list span behaves on garbage bytes.
func FuzzDecode(f *testing.F) {
	seeds := []string{
		"#1=IFCWALL('gid',$,'Wall-1',$,$,$,$,'tag',.NOTDEFINED.);\n",
		"#1=IFCSOMEFUTURETYPE(1,2,'x');\n",
		"#1=IFCWALL();\n",
		"#1=IFCWALL(#2,#3,#4,#5,#6,#7,#8,#9,#10,#11,#12);\n",
		"#1=IFCWALL('gid',$,'Wall-1',$,$,$,$,'tag',.BOGUSENUM.);\n",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, record string) {
		data := "ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION((''),'2;1');\n" +
			"FILE_NAME('a','b',(),(),'','','');\nFILE_SCHEMA(('IFC4'));\nENDSEC;\nDATA;\n" +
			record +
			"ENDSEC;\nEND-ISO-10303-21;\n"

		hdr, err := ParseHeader([]byte(data))
		if err != nil {
			return
		}
		in := NewInterner()
		idx, err := BuildEntityIndex([]byte(data), hdr.DataStart, in)
		if err != nil {
			return
		}
		reg := NewSchemaRegistry(hdr.Schema)
		dec, err := NewDecoder([]byte(data), idx, reg, 0)
		if err != nil {
			return
		}
		for _, id := range idx.AllIDsSorted() {
			_, _ = dec.Decode(id)
		}
	})
}
