// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus collectors of the assembler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OverlapsChained = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lvlasm_overlaps_chained_total",
		Help: "Total number of anchor buckets that produced a chain",
	})

	OverlapsRetained = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lvlasm_overlaps_retained_total",
		Help: "Total number of overlap regions kept by the registry",
	})

	Arcs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lvlasm_arcs_total",
		Help: "Overlaps classified by the arc builder, by class",
	}, []string{"class"})

	Unitigs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lvlasm_unitigs_total",
		Help: "Unitigs produced by contraction, by shape",
	}, []string{"shape"})

	ChainSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lvlasm_chain_query_seconds",
		Help:    "Time spent chaining the anchor buckets of one query",
		Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
	})
)
