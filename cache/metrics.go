package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Hits counts cache hits by tier ("memory", "disk").
	Hits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmsdoc_cache_hits_total",
			Help: "Total number of documentation cache hits",
		},
		[]string{"tier"},
	)

	// Misses counts lookups that found no live entry in either tier.
	Misses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "llmsdoc_cache_misses_total",
			Help: "Total number of documentation cache misses",
		},
	)

	// Errors counts storage errors by operation. Read errors are also
	// counted as misses.
	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmsdoc_cache_errors_total",
			Help: "Total number of documentation cache storage errors",
		},
		[]string{"operation"},
	)

	// Pruned counts entries removed by Prune, by tier.
	Pruned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmsdoc_cache_pruned_total",
			Help: "Total number of expired cache entries removed",
		},
		[]string{"tier"},
	)
)
