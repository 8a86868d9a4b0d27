// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import "fmt"

// Logical is the three-valued .T./.F./.U. EXPRESS LOGICAL.
type Logical uint8

// Logical values.
const (
	LogicalFalse Logical = iota
	LogicalTrue
	LogicalUnknown
)

// AttrValueKind identifies the shape of a decoded AttributeValue.
type AttrValueKind uint8

// AttributeValue kinds, per §3 "AttributeValue".
const (
	AVInteger AttrValueKind = iota
	AVReal
	AVBoolean
	AVLogical
	AVString
	AVEnum
	AVEntityRef
	AVTypedValue
	AVList
	AVNull
	AVDerived
)

// AttributeValue is one decoded, schema-aligned entity attribute.
type AttributeValue struct {
	Kind    AttrValueKind
	Int     int64
	Real    float64
	Bool    bool
	Logical Logical
	Str     string
	Enum    string
	Ref     uint32
	Wrapper string // populated when Kind == AVTypedValue.
	Inner   *AttributeValue
	List    []AttributeValue
}

// TypeMismatchError reports that a positional attribute's token shape
// doesn't match what the schema declared.
type TypeMismatchError struct {
	Pos      int
	Expected string
	Found    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("attribute %d: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// tokenToAttributeValue converts a raw Token into a schema-aligned
// AttributeValue. declared may be nil for proxy (schema-unknown) decoding,
// in which case .T./.F. decode as Boolean, .U. as Logical, and any other
// enum token as a plain enumeration value.
func tokenToAttributeValue(pos int, tok Token, declared *AttrDef) (AttributeValue, error) {
	switch tok.Kind {
	case TokenNull:
		return AttributeValue{Kind: AVNull}, nil
	case TokenDerived:
		return AttributeValue{Kind: AVDerived}, nil
	case TokenEntityRef:
		return AttributeValue{Kind: AVEntityRef, Ref: tok.Ref}, nil
	case TokenInteger:
		if declared != nil && declared.Type == AttrReal {
			return AttributeValue{Kind: AVReal, Real: float64(tok.Int)}, nil
		}
		return AttributeValue{Kind: AVInteger, Int: tok.Int}, nil
	case TokenReal:
		return AttributeValue{Kind: AVReal, Real: tok.Real}, nil
	case TokenString:
		return AttributeValue{Kind: AVString, Str: tok.Str}, nil
	case TokenEnum:
		return decodeEnumToken(pos, tok, declared)
	case TokenTypedValue:
		var inner *AttributeValue
		switch len(tok.Items) {
		case 0:
			inner = &AttributeValue{Kind: AVNull}
		case 1:
			v, err := tokenToAttributeValue(pos, tok.Items[0], nil)
			if err != nil {
				return AttributeValue{}, err
			}
			inner = &v
		default:
			listVals, err := tokensToAttributeValues(pos, tok.Items, nil)
			if err != nil {
				return AttributeValue{}, err
			}
			inner = &AttributeValue{Kind: AVList, List: listVals}
		}
		return AttributeValue{Kind: AVTypedValue, Wrapper: tok.TypeName, Inner: inner}, nil
	case TokenList:
		var elemDecl *AttrDef
		if declared != nil {
			elemDecl = declared.Of
		}
		vals, err := tokensToAttributeValues(pos, tok.Items, elemDecl)
		if err != nil {
			return AttributeValue{}, err
		}
		return AttributeValue{Kind: AVList, List: vals}, nil
	default:
		return AttributeValue{}, &TypeMismatchError{Pos: pos, Expected: "known token kind", Found: tok.Kind.String()}
	}
}

func tokensToAttributeValues(pos int, toks []Token, declared *AttrDef) ([]AttributeValue, error) {
	out := make([]AttributeValue, 0, len(toks))
	for _, t := range toks {
		v, err := tokenToAttributeValue(pos, t, declared)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeEnumToken disambiguates a `.WORD.` token between Boolean (.T./.F.),
// Logical (.T./.F./.U.) and a genuine schema enumeration value, based on
// the attribute's declared type (§3 "AttributeValue": Boolean vs Logical
// vs Enum).
func decodeEnumToken(pos int, tok Token, declared *AttrDef) (AttributeValue, error) {
	word := tok.TypeName
	if declared != nil {
		switch declared.Type {
		case AttrBoolean:
			switch word {
			case "T":
				return AttributeValue{Kind: AVBoolean, Bool: true}, nil
			case "F":
				return AttributeValue{Kind: AVBoolean, Bool: false}, nil
			default:
				return AttributeValue{}, &TypeMismatchError{Pos: pos, Expected: "BOOLEAN (.T./.F.)", Found: "." + word + "."}
			}
		case AttrLogical:
			switch word {
			case "T":
				return AttributeValue{Kind: AVLogical, Logical: LogicalTrue}, nil
			case "F":
				return AttributeValue{Kind: AVLogical, Logical: LogicalFalse}, nil
			case "U":
				return AttributeValue{Kind: AVLogical, Logical: LogicalUnknown}, nil
			default:
				return AttributeValue{}, &TypeMismatchError{Pos: pos, Expected: "LOGICAL (.T./.F./.U.)", Found: "." + word + "."}
			}
		}
	}
	// Unknown/generic: .T./.F./.U. with no declared type are most often
	// Boolean/Logical literals in practice; fall back to the raw enum word
	// so callers can still branch on it.
	switch word {
	case "T":
		return AttributeValue{Kind: AVBoolean, Bool: true}, nil
	case "F":
		return AttributeValue{Kind: AVBoolean, Bool: false}, nil
	case "U":
		return AttributeValue{Kind: AVLogical, Logical: LogicalUnknown}, nil
	}
	return AttributeValue{Kind: AVEnum, Enum: word}, nil
}
