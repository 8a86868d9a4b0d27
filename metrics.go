// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// streamMetrics are the counters/histograms the Streaming Driver (§4.G)
// exposes for a host process to scrape over /metrics. Registered against
// the default registry on first use, same as any long-running Go service
// instrumented with client_golang — a single process may open many model
// handles, and these totals accumulate across all of them.
var streamMetrics = struct {
	entitiesIndexed prometheus.Counter
	meshBatches     prometheus.Counter
	meshesBuilt     prometheus.Counter
	phaseDuration   *prometheus.HistogramVec
	cancellations   prometheus.Counter
}{
	entitiesIndexed: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ifclite",
		Subsystem: "stream",
		Name:      "entities_indexed_total",
		Help:      "Entities indexed across all streamed model handles.",
	}),
	meshBatches: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ifclite",
		Subsystem: "stream",
		Name:      "mesh_batches_emitted_total",
		Help:      "MeshBatch events emitted across all streamed model handles.",
	}),
	meshesBuilt: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ifclite",
		Subsystem: "stream",
		Name:      "meshes_built_total",
		Help:      "Individual tessellated meshes produced across all streamed model handles.",
	}),
	phaseDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ifclite",
		Subsystem: "stream",
		Name:      "phase_duration_seconds",
		Help:      "Wall-clock duration of each streaming phase.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"phase"}),
	cancellations: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ifclite",
		Subsystem: "stream",
		Name:      "cancellations_total",
		Help:      "stream_process calls that ended in Error{Cancelled}.",
	}),
}
