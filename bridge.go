// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ifc-lite/ifclite/geometry"
)

// ModelHandle is the opaque id a host process holds in place of a live
// *Model (§4.H "open_model(bytes) → model_handle"). Handles are small
// monotonically increasing integers rather than pointers so a host
// language's FFI layer never has to marshal a Go pointer across the
// boundary, the same shape cozodb's C.int32_t database handle takes on
// the C side of a cgo bridge.
type ModelHandle int32

var (
	bridgeMu      sync.Mutex
	bridgeModels  = make(map[ModelHandle]*Model)
	bridgeCounter atomic.Int32
)

// ErrInvalidHandle is returned by every bridge call given a handle that
// was never opened, or was already closed.
var ErrInvalidHandle = fmt.Errorf("ifclite: invalid model handle")

// OpenModel opens an in-memory IFC buffer and registers it under a new
// handle (§4.H "open_model(bytes) → model_handle"). The host owns the
// handle until it calls CloseModel.
func OpenModel(data []byte, opts *Options) (ModelHandle, error) {
	m, err := NewBytes(data, opts)
	if err != nil {
		return 0, err
	}
	h := ModelHandle(bridgeCounter.Add(1))
	bridgeMu.Lock()
	bridgeModels[h] = m
	bridgeMu.Unlock()
	return h, nil
}

func lookupHandle(h ModelHandle) (*Model, error) {
	bridgeMu.Lock()
	m, ok := bridgeModels[h]
	bridgeMu.Unlock()
	if !ok {
		return nil, ErrInvalidHandle
	}
	return m, nil
}

// IndexedEntityCount returns the number of entities in the entity index
// of the model behind h (§4.H).
func IndexedEntityCount(h ModelHandle) (uint32, error) {
	m, err := lookupHandle(h)
	if err != nil {
		return 0, err
	}
	return uint32(m.index.Len()), nil
}

// SerializedAttribute is GetEntityAttrs's flat, host-marshalable
// representation of one AttributeValue: at most one of the typed fields
// is meaningful, selected by Kind, without exposing ifclite's internal
// type across the boundary. Logical values and typed-value wrappers carry
// only their Kind: the Logical value, the wrapper name and the wrapped
// inner value are not copied.
type SerializedAttribute struct {
	Name  string
	Kind  AttrValueKind
	Int   int64
	Real  float64
	Bool  bool
	Str   string
	Enum  string
	Ref   uint32
	List  []SerializedAttribute
}

// GetEntityAttrs decodes one entity and flattens it into host-marshalable
// attributes (§4.H "get_entity_attrs(handle, express_id) → serialized
// DecodedEntity").
func GetEntityAttrs(h ModelHandle, expressID uint32) ([]SerializedAttribute, error) {
	m, err := lookupHandle(h)
	if err != nil {
		return nil, err
	}
	entity, err := m.Decode(expressID)
	if err != nil {
		return nil, err
	}
	out := make([]SerializedAttribute, len(entity.Attributes))
	for i, v := range entity.Attributes {
		name := ""
		if i < len(entity.AttrNames) {
			name = entity.AttrNames[i]
		}
		out[i] = serializeAttribute(name, v)
	}
	return out, nil
}

func serializeAttribute(name string, v AttributeValue) SerializedAttribute {
	s := SerializedAttribute{
		Name: name, Kind: v.Kind, Int: v.Int, Real: v.Real,
		Bool: v.Bool, Str: v.Str, Enum: v.Enum, Ref: v.Ref,
	}
	if v.Kind == AVList {
		s.List = make([]SerializedAttribute, len(v.List))
		for i, e := range v.List {
			s.List[i] = serializeAttribute("", e)
		}
	}
	return s
}

// DataTables is the flat bundle of typed-array-compatible buffers
// GetDataTables hands across the boundary: the five columnar tables, the
// interner's string table, and any tessellated geometry already built
// (§4.H "get_data_tables(handle) → handles to the five columnar tables
// and the interner"). Every slice here is contiguous and safe to expose
// as a (pointer, length) view without copying, per §4.H's zero-copy note.
type DataTables struct {
	Entities      *EntityTable
	Properties    *PropertyTable
	Quantities    *QuantityTable
	Relationships *RelationshipGraph
	Spatial       *SpatialHierarchy
	Strings       []string

	Meshes    map[uint32]*geometry.Mesh
	Instanced map[uint32]*geometry.InstancedGeometry
}

// GetDataTables returns the bundle of columnar tables for h.
func GetDataTables(h ModelHandle) (DataTables, error) {
	m, err := lookupHandle(h)
	if err != nil {
		return DataTables{}, err
	}
	return DataTables{
		Entities:      m.Entities(),
		Properties:    m.Properties(),
		Quantities:    m.Quantities(),
		Relationships: m.Relationships(),
		Spatial:       m.Spatial(),
		Strings:       m.interner.strings,
		Meshes:        m.Meshes(),
		Instanced:     m.InstancedGeometries(),
	}, nil
}

// StreamProcessHandle is the handle-based twin of (*Model).StreamProcess
// (§4.H "stream_process(handle, options) → event iterator").
func StreamProcessHandle(h ModelHandle, opts *Options) (<-chan Event, error) {
	m, err := lookupHandle(h)
	if err != nil {
		return nil, err
	}
	return m.StreamProcess(opts), nil
}

// CloseModel releases the model behind h and every buffer it owns
// (§4.H "close_model(handle) → releases all owned buffers"). Idempotent:
// closing an already-closed or unknown handle is a no-op returning
// ErrInvalidHandle, never a panic.
func CloseModel(h ModelHandle) error {
	bridgeMu.Lock()
	m, ok := bridgeModels[h]
	if ok {
		delete(bridgeModels, h)
	}
	bridgeMu.Unlock()
	if !ok {
		return ErrInvalidHandle
	}
	return m.Close()
}
