// Copyright (c) 2026 Vidora. All rights reserved.

package jsonstore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for document store operations. Every degraded path is
// required to be observable; these counters are the metric half of that
// contract (the log half lives next to each failure site).
var (
	// writesTotal counts successful whole-collection writes.
	writesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docstore_writes_total",
		Help: "Total number of successful collection file writes",
	}, []string{"collection"})

	// degradedReads counts reads that fell back to an empty collection.
	degradedReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docstore_degraded_reads_total",
		Help: "Total number of collection reads that degraded to an empty result",
	}, []string{"collection"})

	// degradedWrites counts writes that were dropped, leaving prior state.
	degradedWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docstore_degraded_writes_total",
		Help: "Total number of collection writes that were dropped after a failure",
	}, []string{"collection"})
)
