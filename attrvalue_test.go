// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustToken(t *testing.T, s string) Token {
	t.Helper()
	tok, _, err := NextToken([]byte(s), 0)
	require.NoError(t, err)
	return tok
}

func TestTokenToAttributeValueScalars(t *testing.T) {
	v, err := tokenToAttributeValue(0, mustToken(t, "$"), nil)
	require.NoError(t, err)
	assert.Equal(t, AVNull, v.Kind)

	v, err = tokenToAttributeValue(0, mustToken(t, "*"), nil)
	require.NoError(t, err)
	assert.Equal(t, AVDerived, v.Kind)

	v, err = tokenToAttributeValue(0, mustToken(t, "#5"), nil)
	require.NoError(t, err)
	assert.Equal(t, AVEntityRef, v.Kind)
	assert.Equal(t, uint32(5), v.Ref)

	v, err = tokenToAttributeValue(0, mustToken(t, "42"), nil)
	require.NoError(t, err)
	assert.Equal(t, AVInteger, v.Kind)
	assert.Equal(t, int64(42), v.Int)

	v, err = tokenToAttributeValue(0, mustToken(t, "3.5"), nil)
	require.NoError(t, err)
	assert.Equal(t, AVReal, v.Kind)
	assert.Equal(t, 3.5, v.Real)

	v, err = tokenToAttributeValue(0, mustToken(t, "'hi'"), nil)
	require.NoError(t, err)
	assert.Equal(t, AVString, v.Kind)
	assert.Equal(t, "hi", v.Str)
}

func TestTokenToAttributeValueIntegerCoercedToRealWhenDeclared(t *testing.T) {
	decl := &AttrDef{Type: AttrReal}
	v, err := tokenToAttributeValue(0, mustToken(t, "4"), decl)
	require.NoError(t, err)
	assert.Equal(t, AVReal, v.Kind)
	assert.Equal(t, 4.0, v.Real)
}

func TestTokenToAttributeValueTypedValue(t *testing.T) {
	v, err := tokenToAttributeValue(0, mustToken(t, "IFCLABEL('x')"), nil)
	require.NoError(t, err)
	assert.Equal(t, AVTypedValue, v.Kind)
	assert.Equal(t, "IFCLABEL", v.Wrapper)
	require.NotNil(t, v.Inner)
	assert.Equal(t, AVString, v.Inner.Kind)
	assert.Equal(t, "x", v.Inner.Str)
}

func TestTokenToAttributeValueTypedValueEmpty(t *testing.T) {
	v, err := tokenToAttributeValue(0, mustToken(t, "IFCBOOLEAN()"), nil)
	require.NoError(t, err)
	assert.Equal(t, AVTypedValue, v.Kind)
	assert.Equal(t, AVNull, v.Inner.Kind)
}

func TestTokenToAttributeValueList(t *testing.T) {
	v, err := tokenToAttributeValue(0, mustToken(t, "(1,2,3)"), nil)
	require.NoError(t, err)
	assert.Equal(t, AVList, v.Kind)
	require.Len(t, v.List, 3)
	assert.Equal(t, int64(2), v.List[1].Int)
}

func TestDecodeEnumTokenBoolean(t *testing.T) {
	decl := &AttrDef{Type: AttrBoolean}
	v, err := decodeEnumToken(0, Token{TypeName: "T"}, decl)
	require.NoError(t, err)
	assert.Equal(t, AVBoolean, v.Kind)
	assert.True(t, v.Bool)

	v, err = decodeEnumToken(0, Token{TypeName: "F"}, decl)
	require.NoError(t, err)
	assert.False(t, v.Bool)

	_, err = decodeEnumToken(0, Token{TypeName: "U"}, decl)
	require.Error(t, err)
	var mismatch *TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestDecodeEnumTokenLogical(t *testing.T) {
	decl := &AttrDef{Type: AttrLogical}
	v, err := decodeEnumToken(0, Token{TypeName: "U"}, decl)
	require.NoError(t, err)
	assert.Equal(t, AVLogical, v.Kind)
	assert.Equal(t, LogicalUnknown, v.Logical)
}

func TestDecodeEnumTokenGenericEnum(t *testing.T) {
	v, err := decodeEnumToken(0, Token{TypeName: "NOTDEFINED"}, nil)
	require.NoError(t, err)
	assert.Equal(t, AVEnum, v.Kind)
	assert.Equal(t, "NOTDEFINED", v.Enum)
}

func TestDecodeEnumTokenGenericBooleanFallback(t *testing.T) {
	// With no declared type, .T./.F./.U. still resolve to Boolean/Logical
	// since that's what they mean in practice.
	v, err := decodeEnumToken(0, Token{TypeName: "T"}, nil)
	require.NoError(t, err)
	assert.Equal(t, AVBoolean, v.Kind)
	assert.True(t, v.Bool)
}
