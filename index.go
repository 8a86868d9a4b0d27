// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"fmt"
	"sort"
)

// EntityRef is one indexed `#N = TYPE(args);` occurrence (§3 "EntityRef").
type EntityRef struct {
	ExpressID  uint32
	TypeUpper  StringID
	ByteStart  uint32
	ByteEnd    uint32
	Line       uint32
}

// EntityIndex maps express ids to their location in the byte window, built
// in a single forward pass (§4.B) and immutable once Build returns.
type EntityIndex struct {
	byID     map[uint32]EntityRef
	byType   map[StringID][]uint32 // insertion order = textual order.
	interner *Interner
}

// DuplicateIDError is returned when the same express id appears twice.
type DuplicateIDError struct {
	ID          uint32
	FirstLine   uint32
	SecondLine  uint32
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate express id #%d at line %d (first seen at line %d)",
		e.ID, e.SecondLine, e.FirstLine)
}

// BuildEntityIndex performs the single forward pass over the DATA; section
// described in §4.B: it recognizes `#N = TYPE ( args ) ;` records, tracking
// paren depth so nested lists and string-embedded ';' don't terminate a
// record early.
func BuildEntityIndex(data []byte, dataStart int, interner *Interner) (*EntityIndex, error) {
	idx := &EntityIndex{
		byID:     make(map[uint32]EntityRef, 1024),
		byType:   make(map[StringID][]uint32, 64),
		interner: interner,
	}

	pos := dataStart
	line := uint32(1)
	for i := 0; i < dataStart; i++ {
		if data[i] == '\n' {
			line++
		}
	}

	n := len(data)
	lineFrom := dataStart
	for {
		pos = skipWhitespaceAndComments(data, pos)
		for pos < n && data[pos] == '\n' {
			pos++
		}
		pos = skipWhitespaceAndComments(data, pos)
		if pos >= n {
			break
		}
		if matchKeyword(data, pos, "ENDSEC;") {
			break
		}
		if data[pos] != '#' {
			// Tolerate stray whitespace/semicolons between records; anything
			// else is a malformed entity record.
			if data[pos] == ';' {
				pos++
				continue
			}
			return nil, Malformed(pos, "expected '#' starting an entity record")
		}

		recStart := pos
		recLine := countLines(data, lineFrom, pos, line)
		idTok, next, err := NextToken(data, pos)
		if err != nil {
			return nil, err
		}
		if idTok.Kind != TokenEntityRef {
			return nil, Malformed(pos, "expected entity reference before '='")
		}
		pos = skipWhitespaceAndComments(data, next)
		if pos >= n || data[pos] != '=' {
			return nil, Malformed(pos, "expected '=' after entity id")
		}
		pos = skipWhitespaceAndComments(data, pos+1)

		typeStart := pos
		for pos < n && isTypeNameByte(data[pos]) {
			pos++
		}
		if pos == typeStart {
			return nil, Malformed(pos, "expected type name after '='")
		}
		typeName := string(data[typeStart:pos])

		pos = skipWhitespaceAndComments(data, pos)
		if pos >= n || data[pos] != '(' {
			return nil, Malformed(pos, "expected '(' after type name "+typeName)
		}
		argEnd, err := scanBalancedParens(data, pos)
		if err != nil {
			return nil, err
		}
		pos = skipWhitespaceAndComments(data, argEnd)
		if pos >= n || data[pos] != ';' {
			return nil, Malformed(pos, "expected ';' terminating entity record")
		}
		byteEnd := argEnd
		pos++ // consume ';'

		typeID := interner.Intern(typeName)
		ref := EntityRef{
			ExpressID: idTok.Ref,
			TypeUpper: typeID,
			ByteStart: uint32(recStart),
			ByteEnd:   uint32(byteEnd),
			Line:      recLine,
		}
		if existing, dup := idx.byID[ref.ExpressID]; dup {
			return nil, &DuplicateIDError{ID: ref.ExpressID, FirstLine: existing.Line, SecondLine: recLine}
		}
		idx.byID[ref.ExpressID] = ref
		idx.byType[typeID] = append(idx.byType[typeID], ref.ExpressID)

		line = recLine + countLines(data, recStart, pos, 0)
		lineFrom = pos
	}

	return idx, nil
}

func isTypeNameByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}

func matchKeyword(data []byte, pos int, keyword string) bool {
	if pos+len(keyword) > len(data) {
		return false
	}
	return string(data[pos:pos+len(keyword)]) == keyword
}

func countLines(data []byte, from, to int, base uint32) uint32 {
	n := base
	if to > len(data) {
		to = len(data)
	}
	for i := from; i < to; i++ {
		if data[i] == '\n' {
			n++
		}
	}
	return n
}

// scanBalancedParens returns the offset just past the ')' matching the '('
// at pos, tracking nested depth and skipping string literals so a ';' or
// unbalanced paren inside a quoted string is never mistaken for structure.
func scanBalancedParens(data []byte, pos int) (int, error) {
	n := len(data)
	depth := 0
	p := pos
	for p < n {
		switch data[p] {
		case '\'':
			p++
			for p < n {
				if data[p] == '\'' {
					if p+1 < n && data[p+1] == '\'' {
						p += 2
						continue
					}
					p++
					break
				}
				p++
			}
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return p + 1, nil
			}
		}
		p++
	}
	return 0, Malformed(pos, "unbalanced parentheses in entity argument list")
}

// Lookup returns the EntityRef for id, if indexed.
func (idx *EntityIndex) Lookup(id uint32) (EntityRef, bool) {
	ref, ok := idx.byID[id]
	return ref, ok
}

// IDsOfType returns the express ids of the given interned type name, in
// textual (insertion) order.
func (idx *EntityIndex) IDsOfType(typeUpper StringID) []uint32 {
	return idx.byType[typeUpper]
}

// Len reports how many entities were indexed.
func (idx *EntityIndex) Len() int { return len(idx.byID) }

// AllIDsSorted returns every indexed express id in ascending order, used by
// the columnar build's deterministic forward pass.
func (idx *EntityIndex) AllIDsSorted() []uint32 {
	ids := make([]uint32, 0, len(idx.byID))
	for id := range idx.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
