// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"bytes"
	"errors"
	"strings"
)

// Schema identifies a supported IFC EXPRESS schema version.
type Schema uint8

// Supported schema versions, per §1 scope.
const (
	SchemaUnknown Schema = iota
	SchemaIFC2X3
	SchemaIFC4
	SchemaIFC4X3
)

func (s Schema) String() string {
	switch s {
	case SchemaIFC2X3:
		return "IFC2X3"
	case SchemaIFC4:
		return "IFC4"
	case SchemaIFC4X3:
		return "IFC4X3"
	default:
		return "UNKNOWN"
	}
}

// FileHeader is the decoded ISO-10303-21 HEADER section: FILE_DESCRIPTION,
// FILE_NAME and FILE_SCHEMA (§4.B, §6 "Header handling").
type FileHeader struct {
	Description []string
	ImplementationLevel string

	FileName         string
	TimeStamp        string
	Author           []string
	Organization     []string
	PreprocessorVersion string
	OriginatingSystem   string
	Authorization       string

	Schema Schema

	// DataStart is the byte offset of the "DATA;" keyword's first entity.
	DataStart int
}

// Header errors. Any of these terminate the parse with no partial data
// model, per §7 "File-level errors".
var (
	ErrMissingHeader      = errors.New("missing ISO-10303-21 HEADER section")
	ErrUnsupportedEncoding = errors.New("unsupported STEP encoding (binary STEP is not accepted)")
)

// UnsupportedSchemaError reports a FILE_SCHEMA naming a schema this
// repository does not implement.
type UnsupportedSchemaError struct{ Name string }

func (e *UnsupportedSchemaError) Error() string {
	return "unsupported IFC schema: " + e.Name
}

// ParseHeader reads the ISO-10303-21 preamble and HEADER section once, a
// small fixed region at the front of the file read ahead of the
// variable-length DATA body. It does not tokenize the whole file: header
// entities are read with NextToken applied to the small HEADER; ... ENDSEC;
// span only.
func ParseHeader(data []byte) (FileHeader, error) {
	var hdr FileHeader

	if bytes.HasPrefix(data, []byte{0x00, 0x00}) || looksBinary(data) {
		return hdr, ErrUnsupportedEncoding
	}

	isoIdx := bytes.Index(data, []byte("ISO-10303-21"))
	if isoIdx < 0 {
		return hdr, ErrMissingHeader
	}

	headerIdx := bytes.Index(data, []byte("HEADER;"))
	if headerIdx < 0 {
		return hdr, ErrMissingHeader
	}
	endSecIdx := bytes.Index(data[headerIdx:], []byte("ENDSEC;"))
	if endSecIdx < 0 {
		return hdr, ErrMissingHeader
	}
	headerSpan := data[headerIdx : headerIdx+endSecIdx]

	if err := parseFileDescription(headerSpan, &hdr); err != nil {
		return hdr, err
	}
	if err := parseFileName(headerSpan, &hdr); err != nil {
		return hdr, err
	}
	if err := parseFileSchema(headerSpan, &hdr); err != nil {
		return hdr, err
	}

	dataIdx := bytes.Index(data[headerIdx+endSecIdx:], []byte("DATA;"))
	if dataIdx < 0 {
		return hdr, ErrMissingHeader
	}
	hdr.DataStart = headerIdx + endSecIdx + dataIdx + len("DATA;")

	return hdr, nil
}

// looksBinary performs a shallow check for non-textual bytes within the
// first kilobyte; real binary-STEP detection is out of scope (§1 only
// requires rejection, not decoding).
func looksBinary(data []byte) bool {
	limit := len(data)
	if limit > 1024 {
		limit = 1024
	}
	for _, b := range data[:limit] {
		if b == 0 {
			return true
		}
	}
	return false
}

func readCallArgs(span []byte, keyword string) ([]Token, bool) {
	idx := bytes.Index(span, []byte(keyword))
	if idx < 0 {
		return nil, false
	}
	parenIdx := bytes.IndexByte(span[idx:], '(')
	if parenIdx < 0 {
		return nil, false
	}
	listTok, _, err := NextToken(span, idx+parenIdx)
	if err != nil || listTok.Kind != TokenList {
		return nil, false
	}
	return listTok.Items, true
}

func tokenStrings(toks []Token) []string {
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		if t.Kind == TokenString {
			out = append(out, t.Str)
		}
	}
	return out
}

func parseFileDescription(span []byte, hdr *FileHeader) error {
	args, ok := readCallArgs(span, "FILE_DESCRIPTION")
	if !ok || len(args) < 1 {
		return nil
	}
	if args[0].Kind == TokenList {
		hdr.Description = tokenStrings(args[0].Items)
	}
	if len(args) > 1 && args[1].Kind == TokenString {
		hdr.ImplementationLevel = args[1].Str
	}
	return nil
}

func parseFileName(span []byte, hdr *FileHeader) error {
	args, ok := readCallArgs(span, "FILE_NAME")
	if !ok {
		return nil
	}
	get := func(i int) Token {
		if i < len(args) {
			return args[i]
		}
		return Token{Kind: TokenNull}
	}
	if t := get(0); t.Kind == TokenString {
		hdr.FileName = t.Str
	}
	if t := get(1); t.Kind == TokenString {
		hdr.TimeStamp = t.Str
	}
	if t := get(2); t.Kind == TokenList {
		hdr.Author = tokenStrings(t.Items)
	}
	if t := get(3); t.Kind == TokenList {
		hdr.Organization = tokenStrings(t.Items)
	}
	if t := get(4); t.Kind == TokenString {
		hdr.PreprocessorVersion = t.Str
	}
	if t := get(5); t.Kind == TokenString {
		hdr.OriginatingSystem = t.Str
	}
	if t := get(6); t.Kind == TokenString {
		hdr.Authorization = t.Str
	}
	return nil
}

func parseFileSchema(span []byte, hdr *FileHeader) error {
	args, ok := readCallArgs(span, "FILE_SCHEMA")
	if !ok || len(args) < 1 || args[0].Kind != TokenList || len(args[0].Items) < 1 {
		return &UnsupportedSchemaError{Name: "<missing>"}
	}
	nameTok := args[0].Items[0]
	if nameTok.Kind != TokenString {
		return &UnsupportedSchemaError{Name: "<malformed>"}
	}
	name := strings.ToUpper(strings.TrimSpace(nameTok.Str))
	switch name {
	case "IFC2X3":
		hdr.Schema = SchemaIFC2X3
	case "IFC4":
		hdr.Schema = SchemaIFC4
	case "IFC4X3", "IFC4X3_ADD2", "IFC4X3_RC1", "IFC4X3_RC4":
		hdr.Schema = SchemaIFC4X3
	default:
		return &UnsupportedSchemaError{Name: name}
	}
	return nil
}
