// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DecodedEntity is the positionally-schema-aligned decoding of one entity's
// argument list (§3 "DecodedEntity").
type DecodedEntity struct {
	ExpressID  uint32
	TypeUpper  string
	Attributes []AttributeValue
	// AttrNames mirrors Attributes positionally when the type was known to
	// the schema; nil for proxy decoding.
	AttrNames []string
	Proxy     bool
}

// Attr returns the decoded value for a named attribute, or ok=false if the
// entity was proxy-decoded or the name isn't one of its attributes.
func (d *DecodedEntity) Attr(name string) (AttributeValue, bool) {
	for i, n := range d.AttrNames {
		if n == name {
			return d.Attributes[i], true
		}
	}
	return AttributeValue{}, false
}

// UnknownTypeError is returned by strict decode paths that require schema
// knowledge (none currently do — unknown types always fall back to proxy
// decoding per §4.C — but callers that want strictness can check for it).
type UnknownTypeError struct{ TypeName string }

func (e *UnknownTypeError) Error() string { return "unknown entity type: " + e.TypeName }

// ArityMismatchError reports a positional attribute count mismatch between
// the parsed argument list and the schema's flattened attribute list.
type ArityMismatchError struct {
	TypeName string
	Expected int
	Got      int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %d attributes, got %d", e.TypeName, e.Expected, e.Got)
}

// Decoder lazily re-tokenizes one entity's argument list on demand and
// caches the result (§4.C). Cache entries are shared by pointer and never
// mutated after insertion; eviction is a pure capacity optimization and
// never affects correctness since a cache miss simply re-decodes.
type Decoder struct {
	data   []byte
	index  *EntityIndex
	schema *SchemaRegistry
	cache  *lru.Cache[uint32, *DecodedEntity]
}

// DefaultDecoderCacheSize bounds the lazy decoder's LRU cache when the
// caller doesn't specify one.
const DefaultDecoderCacheSize = 4096

// NewDecoder constructs a Decoder over data/index/schema with a bounded LRU
// cache of cacheSize entries (0 selects DefaultDecoderCacheSize).
func NewDecoder(data []byte, index *EntityIndex, schema *SchemaRegistry, cacheSize int) (*Decoder, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultDecoderCacheSize
	}
	c, err := lru.New[uint32, *DecodedEntity](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Decoder{data: data, index: index, schema: schema, cache: c}, nil
}

// Decode returns the DecodedEntity for express id, building and caching it
// on first access. Decoding never follows entity references; it only
// produces AttributeValue(EntityRef) leaves for the caller to recursively
// decode (§4.C).
func (dec *Decoder) Decode(id uint32) (*DecodedEntity, error) {
	if cached, ok := dec.cache.Get(id); ok {
		return cached, nil
	}

	ref, ok := dec.index.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("express id #%d not indexed", id)
	}
	typeUpper, _ := dec.index.interner.Lookup(ref.TypeUpper)

	// Re-tokenize the argument list only: scan the '(' immediately after
	// the type name within [ByteStart, ByteEnd).
	span := dec.data[ref.ByteStart:ref.ByteEnd]
	parenIdx := -1
	for i, b := range span {
		if b == '(' {
			parenIdx = i
			break
		}
	}
	if parenIdx < 0 {
		return nil, Malformed(int(ref.ByteStart), "entity record missing '('")
	}
	listTok, _, err := NextToken(span, parenIdx)
	if err != nil {
		return nil, err
	}
	if listTok.Kind != TokenList {
		return nil, Malformed(int(ref.ByteStart)+parenIdx, "expected argument list")
	}

	attrDefs, known := dec.schema.Attributes(typeUpper)
	if !known {
		entity := &DecodedEntity{ExpressID: id, TypeUpper: typeUpper, Proxy: true}
		vals, err := tokensToAttributeValues(int(ref.ByteStart), listTok.Items, nil)
		if err != nil {
			return nil, err
		}
		entity.Attributes = vals
		dec.cache.Add(id, entity)
		return entity, nil
	}

	if len(attrDefs) != len(listTok.Items) {
		return nil, &ArityMismatchError{TypeName: typeUpper, Expected: len(attrDefs), Got: len(listTok.Items)}
	}

	entity := &DecodedEntity{ExpressID: id, TypeUpper: typeUpper}
	entity.Attributes = make([]AttributeValue, len(attrDefs))
	entity.AttrNames = make([]string, len(attrDefs))
	for i, def := range attrDefs {
		v, err := tokenToAttributeValue(int(ref.ByteStart), listTok.Items[i], &def)
		if err != nil {
			return nil, err
		}
		entity.Attributes[i] = v
		entity.AttrNames[i] = def.Name
	}

	dec.cache.Add(id, entity)
	return entity, nil
}

// Purge clears the decoder's cache; correctness never depends on calling
// this, it only frees memory (§4.C "Cache eviction is optional").
func (dec *Decoder) Purge() { dec.cache.Purge() }
