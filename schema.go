// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"strings"
	"sync"
)

// AttrTypeKind is the declared EXPRESS type tag for one entity attribute,
// per §4.D.
type AttrTypeKind uint8

// Declared attribute type tags.
const (
	AttrInteger AttrTypeKind = iota
	AttrReal
	AttrBoolean
	AttrLogical
	AttrString
	AttrEnum
	AttrEntity
	AttrList
	AttrSet
	AttrSelect
	AttrTypeDef
)

// AttrDef describes one positional attribute of an entity type.
type AttrDef struct {
	Name         string
	Type         AttrTypeKind
	Optional     bool
	EnumValues   []string // populated when Type == AttrEnum.
	EntityTarget string   // populated when Type == AttrEntity, upper-case target type.
	Variants     []string // populated when Type == AttrSelect.
	Of           *AttrDef // element type, when Type == AttrList or AttrSet.
	Bounds       [2]int   // [lower, upper] bound, -1 = unbounded, when Type == AttrList/AttrSet.
}

// EntityDef is one schema entity: its own (non-inherited) attribute list
// plus a pointer to its supertype name, per §3 "Schema".
type EntityDef struct {
	Name          string
	Supertype     string // "" if this is a root type.
	OwnAttributes []AttrDef
}

// SchemaRegistry is the static, per-schema-version table described in
// §4.D: entity names, flattened attribute lists, subtype relations and
// enumerations.
type SchemaRegistry struct {
	Version  Schema
	entities map[string]*EntityDef

	flattenedMu sync.RWMutex
	flattened   map[string][]AttrDef
}

var (
	sharedRegistriesMu sync.Mutex
	sharedRegistries   = map[Schema]*SchemaRegistry{}
)

// NewSchemaRegistry returns the registry for version, building it once and
// caching it: the registry has no mutable state once built, so every model
// handle opened against the same schema version shares one instance (§9
// "Global registries ... scoped to the model handle" still holds — callers
// never mutate the shared table, only read it). §5 allows a caller to open
// multiple model handles in parallel, so the cache lookup/populate itself
// needs its own lock even though the built registry is read-only afterward.
func NewSchemaRegistry(version Schema) *SchemaRegistry {
	sharedRegistriesMu.Lock()
	defer sharedRegistriesMu.Unlock()

	if reg, ok := sharedRegistries[version]; ok {
		return reg
	}
	reg := &SchemaRegistry{
		Version:   version,
		entities:  make(map[string]*EntityDef, 256),
		flattened: make(map[string][]AttrDef, 256),
	}
	populateCommonEntities(reg)
	sharedRegistries[version] = reg
	return reg
}

func (r *SchemaRegistry) define(name, supertype string, attrs ...AttrDef) {
	r.entities[name] = &EntityDef{Name: name, Supertype: supertype, OwnAttributes: attrs}
}

// EntityDef returns the definition for an upper-cased type name.
func (r *SchemaRegistry) EntityDef(name string) (*EntityDef, bool) {
	d, ok := r.entities[strings.ToUpper(name)]
	return d, ok
}

// Attributes returns the flattened, parent-attributes-first attribute list
// for name, memoized after first computation. The registry itself may be
// shared by every model handle opened against the same schema version
// (possibly concurrently, per §5's "a caller may open multiple model
// handles in parallel"), so the memoization cache needs its own lock even
// though `entities` never changes after NewSchemaRegistry returns.
func (r *SchemaRegistry) Attributes(name string) ([]AttrDef, bool) {
	name = strings.ToUpper(name)

	r.flattenedMu.RLock()
	cached, ok := r.flattened[name]
	r.flattenedMu.RUnlock()
	if ok {
		return cached, true
	}

	def, ok := r.entities[name]
	if !ok {
		return nil, false
	}
	var chain []string
	for cur := def; cur != nil; {
		chain = append([]string{cur.Name}, chain...)
		if cur.Supertype == "" {
			break
		}
		next, ok := r.entities[cur.Supertype]
		if !ok {
			break
		}
		cur = next
	}
	var flat []AttrDef
	for _, typeName := range chain {
		if d, ok := r.entities[typeName]; ok {
			flat = append(flat, d.OwnAttributes...)
		}
	}

	r.flattenedMu.Lock()
	r.flattened[name] = flat
	r.flattenedMu.Unlock()
	return flat, true
}

// IsSubtypeOf reports whether a is b or a descends from b through
// Supertype edges (the DAG predicate test named in §4.D; our registry only
// ever builds single-inheritance chains, so a simple walk suffices).
func (r *SchemaRegistry) IsSubtypeOf(a, b string) bool {
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	for cur, ok := r.entities[a]; ok; cur, ok = r.entities[cur.Supertype] {
		if cur.Name == b {
			return true
		}
		if cur.Supertype == "" {
			return false
		}
	}
	return false
}

// KnownTypeCount reports how many entity types this registry defines.
func (r *SchemaRegistry) KnownTypeCount() int { return len(r.entities) }
