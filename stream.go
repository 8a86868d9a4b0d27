// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"errors"
	"time"

	"github.com/ifc-lite/ifclite/geometry"
)

// ErrorKind is the stable, programmatically-checkable classification of a
// terminal stream error (§7 "an error kind, stable across versions").
type ErrorKind uint8

// Error kinds.
const (
	ErrKindMalformed ErrorKind = iota
	ErrKindUnsupportedEncoding
	ErrKindMissingHeader
	ErrKindUnsupportedSchema
	ErrKindDuplicateID
	ErrKindUnknownType
	ErrKindArityMismatch
	ErrKindTypeMismatch
	ErrKindBadEnum
	ErrKindNoProject
	ErrKindSpatialCycle
	ErrKindDanglingReference
	ErrKindProfileInvalid
	ErrKindCurveGap
	ErrKindDegenerateMesh
	ErrKindBooleanFailed
	ErrKindCancelled
	ErrKindOutOfMemory
	ErrKindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindMalformed:
		return "Malformed"
	case ErrKindUnsupportedEncoding:
		return "UnsupportedEncoding"
	case ErrKindMissingHeader:
		return "MissingHeader"
	case ErrKindUnsupportedSchema:
		return "UnsupportedSchema"
	case ErrKindDuplicateID:
		return "DuplicateId"
	case ErrKindUnknownType:
		return "UnknownType"
	case ErrKindArityMismatch:
		return "ArityMismatch"
	case ErrKindTypeMismatch:
		return "TypeMismatch"
	case ErrKindBadEnum:
		return "BadEnum"
	case ErrKindNoProject:
		return "NoProject"
	case ErrKindSpatialCycle:
		return "SpatialCycle"
	case ErrKindDanglingReference:
		return "DanglingReference"
	case ErrKindProfileInvalid:
		return "ProfileInvalid"
	case ErrKindCurveGap:
		return "CurveGap"
	case ErrKindDegenerateMesh:
		return "DegenerateMesh"
	case ErrKindBooleanFailed:
		return "BooleanFailed"
	case ErrKindCancelled:
		return "Cancelled"
	case ErrKindOutOfMemory:
		return "OutOfMemory"
	default:
		return "Unknown"
	}
}

// classifyError maps one of the package's typed errors to its stable
// ErrorKind, per §7's error taxonomy. Unrecognized errors (e.g. an os
// error from a caller-supplied reader) classify as ErrKindUnknown rather
// than panicking on a type assertion.
func classifyError(err error) ErrorKind {
	switch err.(type) {
	case *MalformedError:
		return ErrKindMalformed
	case *UnsupportedSchemaError:
		return ErrKindUnsupportedSchema
	case *DuplicateIDError:
		return ErrKindDuplicateID
	case *UnknownTypeError:
		return ErrKindUnknownType
	case *ArityMismatchError:
		return ErrKindArityMismatch
	case *TypeMismatchError:
		return ErrKindTypeMismatch
	case *NoProjectError:
		return ErrKindNoProject
	case *SpatialCycleError:
		return ErrKindSpatialCycle
	case *geometry.ProfileInvalidError:
		return ErrKindProfileInvalid
	case *geometry.CurveGapError:
		return ErrKindCurveGap
	case *geometry.DegenerateMeshError:
		return ErrKindDegenerateMesh
	default:
		return ErrKindUnknown
	}
}

// EventKind tags the union in Event, mirroring §6's "Streaming event
// schema".
type EventKind uint8

// Event kinds, in the order §4.G describes them.
const (
	EventStarted EventKind = iota
	EventIndexed
	EventEntityBatch
	EventMeshBatch
	EventPropertiesReady
	EventRelationshipsReady
	EventSpatialHierarchyReady
	EventProgress
	EventCompleted
	EventError
)

// Event is one message of a stream_process event stream (§4.G, §6). Only
// the fields relevant to Kind are populated; the rest are zero.
type Event struct {
	Kind EventKind

	FileSize  int64
	Timestamp int64

	EntityCount int

	// EntityIDs/MeshIDs hold the batch membership for EntityBatch/
	// MeshBatch events, in textual/build order.
	EntityIDs []uint32
	MeshIDs   []uint32
	// TotalMeshesSoFar is the running mesh count as of this MeshBatch.
	TotalMeshesSoFar int

	Phase   string
	Percent float32

	DurationMS float64

	ErrKind    ErrorKind
	ErrMessage string
	// ErrPosition is non-nil when the failure has a byte offset or
	// express id to report (§7 "a byte position or express id").
	ErrPosition *uint32
}

// growingBatcher yields batch sizes starting at initial, doubling each
// call, capped at max (§4.G "grow × 2 per batch, capped at max_batch_size").
type growingBatcher struct {
	next, max int
}

func newGrowingBatcher(initial, max int) *growingBatcher {
	return &growingBatcher{next: initial, max: max}
}

func (b *growingBatcher) size() int {
	n := b.next
	b.next *= 2
	if b.next > b.max {
		b.next = b.max
	}
	return n
}

// StreamProcess replays the already-built columnar tables as an ordered
// event stream and lazily tessellates geometry in growing batches,
// honoring opts.CancelToken at every batch boundary (§4.G, §5
// "Suspension points... only at event emission boundaries"). The returned
// channel is closed after a terminal Completed or Error event.
//
// Model.build() (run during Open/NewBytes) already constructs the five
// columnar tables eagerly, since IFC files are small enough in practice
// that index/property/relationship/spatial construction is cheap; only
// geometry tessellation (§4.F) is deferred and genuinely batched here,
// matching model.go's existing "tessellation is optional and the more
// expensive half of processing a file" split between build() and
// BuildGeometry().
func (m *Model) StreamProcess(opts *Options) <-chan Event {
	o := m.opts
	if opts != nil {
		o = *opts
		o.fillDefaults()
	}

	events := make(chan Event, 8)
	go m.runStream(o, events)
	return events
}

func (m *Model) runStream(o Options, events chan<- Event) {
	defer close(events)
	start := time.Now()

	events <- Event{Kind: EventStarted, FileSize: int64(len(m.data)), Timestamp: start.Unix()}

	entityCount := m.entityTable.Len()
	streamMetrics.entitiesIndexed.Add(float64(entityCount))
	events <- Event{Kind: EventIndexed, EntityCount: entityCount}

	entityPhaseStart := time.Now()
	entityBatcher := newGrowingBatcher(o.InitialBatchSize, o.MaxBatchSize)
	for offset := 0; offset < entityCount; {
		if o.CancelToken.Cancelled() {
			m.emitCancelled(events)
			return
		}
		n := entityBatcher.size()
		end := offset + n
		if end > entityCount {
			end = entityCount
		}
		ids := make([]uint32, end-offset)
		copy(ids, m.entityTable.ExpressID[offset:end])
		events <- Event{Kind: EventEntityBatch, EntityIDs: ids}
		events <- Event{Kind: EventProgress, Phase: "entities", Percent: float32(end) / float32(max(entityCount, 1))}
		offset = end
	}
	streamMetrics.phaseDuration.WithLabelValues("entities").Observe(time.Since(entityPhaseStart).Seconds())

	events <- Event{Kind: EventPropertiesReady}
	events <- Event{Kind: EventRelationshipsReady}
	events <- Event{Kind: EventSpatialHierarchyReady}

	if o.CancelToken.Cancelled() {
		m.emitCancelled(events)
		return
	}

	meshPhaseStart := time.Now()
	if err := m.streamGeometry(o, events); err != nil {
		if err == errStreamCancelled {
			m.emitCancelled(events)
			return
		}
		pos := uint32(0)
		events <- Event{Kind: EventError, ErrKind: classifyError(err), ErrMessage: err.Error(), ErrPosition: &pos}
		return
	}
	streamMetrics.phaseDuration.WithLabelValues("geometry").Observe(time.Since(meshPhaseStart).Seconds())

	events <- Event{Kind: EventCompleted, DurationMS: float64(time.Since(start).Microseconds()) / 1000.0}
}

func (m *Model) emitCancelled(events chan<- Event) {
	streamMetrics.cancellations.Inc()
	events <- Event{Kind: EventError, ErrKind: ErrKindCancelled, ErrMessage: "stream_process cancelled"}
}

// errStreamCancelled is streamGeometry's signal to runStream that the
// cancel token fired between mesh batches.
var errStreamCancelled = errors.New("stream_process cancelled")

// streamGeometry tessellates every flagged product in growing batches,
// checking cancellation between batches rather than per-product, per
// §5's "cancellation... completes within one batch's work".
func (m *Model) streamGeometry(o Options, events chan<- Event) error {
	t := m.entityTable
	var productIDs []uint32
	for row := 0; row < t.Len(); row++ {
		if t.HasFlag(row, FlagHasGeometry) {
			productIDs = append(productIDs, t.ExpressID[row])
		}
	}
	if len(productIDs) == 0 {
		return nil
	}

	b := newGeometryBuilder(m)
	batcher := newGrowingBatcher(o.InitialBatchSize, o.MaxBatchSize)
	total := 0
	for offset := 0; offset < len(productIDs); {
		if o.CancelToken.Cancelled() {
			return errStreamCancelled
		}
		n := batcher.size()
		end := offset + n
		if end > len(productIDs) {
			end = len(productIDs)
		}
		batch := productIDs[offset:end]
		built := make([]uint32, 0, len(batch))
		for _, id := range batch {
			if err := b.buildProduct(id); err != nil {
				m.addWarning(id, warnKindFor(err), err.Error())
				row := t.RowOf(id)
				if row >= 0 {
					t.setFlag(row, FlagGeometryFailed)
				}
				continue
			}
			built = append(built, id)
		}
		total += len(built)
		streamMetrics.meshBatches.Inc()
		streamMetrics.meshesBuilt.Add(float64(len(built)))
		events <- Event{Kind: EventMeshBatch, MeshIDs: built, TotalMeshesSoFar: total}
		events <- Event{Kind: EventProgress, Phase: "geometry", Percent: float32(end) / float32(len(productIDs))}
		offset = end
	}
	m.meshes = b.meshes
	m.instanced = b.instances
	return nil
}
