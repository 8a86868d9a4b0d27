// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTokenScalarKinds(t *testing.T) {
	cases := []struct {
		name string
		in   string
		kind TokenKind
	}{
		{"null", "$", TokenNull},
		{"derived", "*", TokenDerived},
		{"entityRef", "#42", TokenEntityRef},
		{"string", "'hello'", TokenString},
		{"enum", ".METRE.", TokenEnum},
		{"list", "(1,2)", TokenList},
		{"int", "-17", TokenInteger},
		{"real", "3.14", TokenReal},
		{"typedValue", "IFCLABEL('x')", TokenTypedValue},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tok, next, err := NextToken([]byte(c.in), 0)
			require.NoError(t, err)
			assert.Equal(t, c.kind, tok.Kind)
			assert.Equal(t, len(c.in), next)
		})
	}
}

func TestNextTokenEntityRefValue(t *testing.T) {
	tok, next, err := NextToken([]byte("#123,"), 0)
	require.NoError(t, err)
	assert.Equal(t, TokenEntityRef, tok.Kind)
	assert.Equal(t, uint32(123), tok.Ref)
	assert.Equal(t, 4, next)
}

func TestNextTokenRealExponent(t *testing.T) {
	tok, _, err := NextToken([]byte("1.5E+3"), 0)
	require.NoError(t, err)
	assert.Equal(t, TokenReal, tok.Kind)
	assert.Equal(t, 1500.0, tok.Real)
}

func TestNextTokenIntegerExponentIsReal(t *testing.T) {
	// An exponent with no decimal point still marks the value real, per §3.
	tok, _, err := NextToken([]byte("2E3"), 0)
	require.NoError(t, err)
	assert.Equal(t, TokenReal, tok.Kind)
	assert.Equal(t, 2000.0, tok.Real)
}

func TestNextTokenNestedList(t *testing.T) {
	tok, _, err := NextToken([]byte("((1,2),(3))"), 0)
	require.NoError(t, err)
	require.Equal(t, TokenList, tok.Kind)
	require.Len(t, tok.Items, 2)
	assert.Equal(t, TokenList, tok.Items[0].Kind)
	assert.Len(t, tok.Items[0].Items, 2)
	assert.Len(t, tok.Items[1].Items, 1)
}

func TestNextTokenEmptyList(t *testing.T) {
	tok, next, err := NextToken([]byte("()"), 0)
	require.NoError(t, err)
	assert.Equal(t, TokenList, tok.Kind)
	assert.Empty(t, tok.Items)
	assert.Equal(t, 2, next)
}

func TestNextTokenStringEscapedQuote(t *testing.T) {
	tok, _, err := NextToken([]byte("'it''s'"), 0)
	require.NoError(t, err)
	assert.Equal(t, "it's", tok.Str)
}

func TestNextTokenUnterminatedString(t *testing.T) {
	_, _, err := NextToken([]byte("'unterminated"), 0)
	assert.ErrorIs(t, err, ErrUnterminatedString)
}

func TestNextTokenUnterminatedList(t *testing.T) {
	_, _, err := NextToken([]byte("(1,2"), 0)
	assert.ErrorIs(t, err, ErrUnterminatedList)
}

func TestNextTokenMissingCommaOrParen(t *testing.T) {
	_, _, err := NextToken([]byte("(1 2)"), 0)
	require.Error(t, err)
	var malformed *MalformedError
	assert.ErrorAs(t, err, &malformed)
}

func TestNextTokenBareIdentIsMalformed(t *testing.T) {
	_, _, err := NextToken([]byte("IFCWALL"), 0)
	require.Error(t, err)
	var malformed *MalformedError
	assert.ErrorAs(t, err, &malformed)
}

func TestNextTokenSkipsCommentsAndWhitespace(t *testing.T) {
	tok, _, err := NextToken([]byte("  /* comment */ \t#7"), 0)
	require.NoError(t, err)
	assert.Equal(t, TokenEntityRef, tok.Kind)
	assert.Equal(t, uint32(7), tok.Ref)
}

func TestNextTokenUnexpectedEOF(t *testing.T) {
	_, _, err := NextToken([]byte("   "), 0)
	var malformed *MalformedError
	assert.ErrorAs(t, err, &malformed)
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "Integer", TokenInteger.String())
	assert.Equal(t, "Unknown", TokenKind(255).String())
}

// FuzzNextToken exercises the tokenizer against arbitrary byte strings:
// it must never panic and must always make forward progress (return a
// new position past pos, or a MalformedError) on malformed or truncated
// input.
func FuzzNextToken(f *testing.F) {
	seeds := []string{
		"#42", "'hello'", ".METRE.", "(1,2)", "-17", "3.14",
		"IFCLABEL('x')", "$", "*", "/* comment */ #7", "'unterminated",
		"(1,2", "#", "-", "3.14e", "''", "(((((",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, in string) {
		data := []byte(in)
		pos := 0
		for pos < len(data) {
			tok, next, err := NextToken(data, pos)
			if err != nil {
				return
			}
			if next <= pos {
				t.Fatalf("NextToken made no forward progress at pos %d (token %v)", pos, tok.Kind)
			}
			pos = next
		}
	})
}
