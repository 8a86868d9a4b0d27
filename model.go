// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"errors"
	"os"
	"sync/atomic"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/ifc-lite/ifclite/geometry"
	"github.com/ifc-lite/ifclite/log"
)

// Quality selects the geometry kernel's tessellation fidelity (§6).
type Quality uint8

// Quality presets.
const (
	QualityFast Quality = iota
	QualityBalanced
	QualityHigh
)

// ChordTolerance returns the curve-flattening chord tolerance, in project
// units, associated with q (§6: "0.05, 0.01, 0.0025").
func (q Quality) ChordTolerance() float64 {
	switch q {
	case QualityFast:
		return 0.05
	case QualityHigh:
		return 0.0025
	default:
		return 0.01
	}
}

// RevolutionSegments returns the minimum segment count used to flatten one
// full revolution at this quality.
func (q Quality) RevolutionSegments() int {
	switch q {
	case QualityFast:
		return 16
	case QualityHigh:
		return 64
	default:
		return 32
	}
}

// CancelToken is the cooperative cancellation handle threaded through the
// streaming driver (§5 "Cancellation is cooperative"). The zero value is a
// token that never cancels.
type CancelToken struct {
	cancelled atomic.Bool
}

// NewCancelToken returns a fresh, not-yet-cancelled token.
func NewCancelToken() *CancelToken { return &CancelToken{} }

// Cancel marks the token cancelled. Safe to call from any goroutine.
func (t *CancelToken) Cancel() {
	if t != nil {
		t.cancelled.Store(true)
	}
}

// Cancelled reports whether Cancel has been called.
func (t *CancelToken) Cancelled() bool {
	return t != nil && t.cancelled.Load()
}

// Options configures how a Model is opened and built (§6).
type Options struct {
	// Quality controls curve chord tolerance and revolution segmentation,
	// default QualityBalanced.
	Quality Quality

	// SizeThresholdBytes: files at or below this size may be processed
	// synchronously instead of batched, default 2 MiB.
	SizeThresholdBytes int64

	// InitialBatchSize and MaxBatchSize bound the streaming driver's mesh
	// and entity batch sizes, defaults 50 and 500.
	InitialBatchSize int
	MaxBatchSize     int

	// CoordinateShiftThreshold: project-unit magnitude past which RTC
	// (relative-to-center) coordinate shifting engages, default 1e4.
	CoordinateShiftThreshold float64

	// EnableInstancing controls whether IfcMappedItem repeats are
	// deduplicated into InstancedGeometry. It is on when Open/NewBytes get
	// nil Options; in a caller-built Options the false zero value turns
	// it off.
	EnableInstancing bool

	// EnableVoids controls whether IfcRelVoidsElement openings are
	// subtracted from their host's solid. It is on when Open/NewBytes get
	// nil Options; in a caller-built Options the false zero value turns
	// it off.
	EnableVoids bool

	// CancelToken is polled at streaming batch boundaries; nil never
	// cancels.
	CancelToken *CancelToken

	// DecoderCacheSize bounds the lazy entity decoder's LRU, 0 selects
	// DefaultDecoderCacheSize.
	DecoderCacheSize int

	// Logger receives structured build/geometry diagnostics; nil selects
	// log.Default() (WARN+ to stderr).
	Logger log.Logger
}

func (o *Options) fillDefaults() {
	if o.SizeThresholdBytes == 0 {
		o.SizeThresholdBytes = 2 << 20
	}
	if o.InitialBatchSize == 0 {
		o.InitialBatchSize = 50
	}
	if o.MaxBatchSize == 0 {
		o.MaxBatchSize = 500
	}
	if o.CoordinateShiftThreshold == 0 {
		o.CoordinateShiftThreshold = 1e4
	}
	if o.DecoderCacheSize == 0 {
		o.DecoderCacheSize = DefaultDecoderCacheSize
	}
}

// Model is a parsed IFC file: its header, the five columnar tables, and
// the lazy decoding machinery still backing on-demand attribute lookups
// (§3 "Model handle").
type Model struct {
	Header FileHeader

	opts     Options
	data     []byte
	mapped   mmap.MMap
	f        *os.File
	interner *Interner
	index    *EntityIndex
	schema   *SchemaRegistry
	decoder  *Decoder
	logger   *log.Helper

	entityTable   *EntityTable
	propertyTable *PropertyTable
	quantityTable *QuantityTable
	relGraph      *RelationshipGraph
	spatial       *SpatialHierarchy

	// meshes/instanced are populated by (*Model).BuildGeometry, which runs
	// separately from build() since tessellation is optional and the more
	// expensive half of processing a file (§4.F).
	meshes    map[uint32]*geometry.Mesh
	instanced map[uint32]*geometry.InstancedGeometry

	warnings []Warning
}

// ErrEmptyFile is returned by Open/NewBytes for a zero-length input.
var ErrEmptyFile = errors.New("ifclite: empty file")

// Open memory-maps the file at path and builds a Model from it.
func Open(path string, opts *Options) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	if len(mapped) == 0 {
		mapped.Unmap()
		f.Close()
		return nil, ErrEmptyFile
	}
	m, err := newModel(mapped, opts)
	if err != nil {
		mapped.Unmap()
		f.Close()
		return nil, err
	}
	m.mapped = mapped
	m.f = f
	return m, nil
}

// NewBytes builds a Model over an in-memory buffer, without mmap. Useful
// for embedded callers and tests (§6 "Host Bridge... in-process buffer").
func NewBytes(data []byte, opts *Options) (*Model, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	return newModel(data, opts)
}

func newModel(data []byte, opts *Options) (*Model, error) {
	var o Options
	if opts != nil {
		o = *opts
	} else {
		o.EnableInstancing, o.EnableVoids = true, true
	}
	o.fillDefaults()

	var logger *log.Helper
	if o.Logger == nil {
		logger = log.Default()
	} else {
		logger = log.NewHelper(o.Logger)
	}

	hdr, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	m := &Model{
		Header:   hdr,
		opts:     o,
		data:     data,
		interner: NewInterner(),
		logger:   logger,
	}
	m.schema = NewSchemaRegistry(hdr.Schema)

	idx, err := BuildEntityIndex(data, hdr.DataStart, m.interner)
	if err != nil {
		return nil, err
	}
	m.index = idx

	dec, err := NewDecoder(data, idx, m.schema, o.DecoderCacheSize)
	if err != nil {
		return nil, err
	}
	m.decoder = dec

	if err := m.build(); err != nil {
		return nil, err
	}
	return m, nil
}

// build runs the single forward pass of §4.E over the indexed entities.
func (m *Model) build() error {
	m.logger.Infof("building columnar tables for %d indexed entities", m.index.Len())
	b := newColumnarBuilder(m)
	if err := b.run(); err != nil {
		return err
	}
	m.entityTable = b.entities
	m.propertyTable = b.properties
	m.quantityTable = b.quantities
	m.relGraph = b.relationships
	m.spatial = b.spatial
	m.resolveStoreyElevations()
	return nil
}

// resolveStoreyElevations fills in any IfcBuildingStorey node whose
// Elevation attribute was absent, from Pset_BuildingStoreyCommon, now that
// the property table exists (§9 Open Question: storey elevation fallback
// order is Elevation attribute, then Pset_BuildingStoreyCommon.Elevation,
// else left unset rather than defaulted to zero — a zero elevation is a
// legitimate ground-floor value and must not be confused with "unknown").
func (m *Model) resolveStoreyElevations() {
	for _, node := range m.spatial.nodes {
		if node.Elevation != nil {
			continue
		}
		ref, ok := m.index.Lookup(node.ExpressID)
		if !ok {
			continue
		}
		typeUpper, _ := m.interner.Lookup(ref.TypeUpper)
		if typeUpper != "IFCBUILDINGSTOREY" {
			continue
		}
		for _, row := range m.propertyTable.Rows {
			if row.EntityID != node.ExpressID || row.Type != PropertyReal {
				continue
			}
			psetName, _ := m.interner.Lookup(row.PSetNameID)
			propName, _ := m.interner.Lookup(row.PropNameID)
			if psetName == "Pset_BuildingStoreyCommon" && propName == "Elevation" {
				val := row.RealVal
				node.Elevation = &val
				break
			}
		}
	}
}

// internerLookupUpper returns the StringID already bound to an upper-case
// type name, without interning a new entry for a name the file never used.
func (m *Model) internerLookupUpper(name string) (StringID, bool) {
	return m.interner.Find(name)
}

// Entities returns the built EntityTable.
func (m *Model) Entities() *EntityTable { return m.entityTable }

// Properties returns the built PropertyTable.
func (m *Model) Properties() *PropertyTable { return m.propertyTable }

// Quantities returns the built QuantityTable.
func (m *Model) Quantities() *QuantityTable { return m.quantityTable }

// Relationships returns the built RelationshipGraph.
func (m *Model) Relationships() *RelationshipGraph { return m.relGraph }

// Spatial returns the built SpatialHierarchy.
func (m *Model) Spatial() *SpatialHierarchy { return m.spatial }

// Schema returns the schema registry this model was built against.
func (m *Model) Schema() *SchemaRegistry { return m.schema }

// Decode exposes the lazy entity decoder for ad-hoc attribute lookups
// beyond what the columnar tables carry (§4.C).
func (m *Model) Decode(id uint32) (*DecodedEntity, error) { return m.decoder.Decode(id) }

// Lookup resolves an interned StringID back to its string.
func (m *Model) Lookup(id StringID) (string, bool) { return m.interner.Lookup(id) }

// Mesh returns the tessellated geometry for a product's express id, if
// BuildGeometry has run and produced one (nil otherwise).
func (m *Model) Mesh(expressID uint32) (*geometry.Mesh, bool) {
	mesh, ok := m.meshes[expressID]
	return mesh, ok
}

// Meshes returns every tessellated mesh keyed by express id. The map is
// owned by Model; callers must not mutate it.
func (m *Model) Meshes() map[uint32]*geometry.Mesh { return m.meshes }

// InstancedGeometries returns the deduplicated IfcMappedItem geometry
// produced by BuildGeometry, keyed by IfcRepresentationMap express id.
func (m *Model) InstancedGeometries() map[uint32]*geometry.InstancedGeometry { return m.instanced }

// Close releases the memory-mapped file backing, if any. Models built
// from NewBytes own no external resource and Close is a no-op for them.
func (m *Model) Close() error {
	var err error
	if m.mapped != nil {
		err = m.mapped.Unmap()
	}
	if m.f != nil {
		if cerr := m.f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	m.decoder.Purge()
	return err
}
