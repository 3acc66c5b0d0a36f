package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ComparisonsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendarc_comparisons_computed_total",
		Help: "The total number of comparison metric computations",
	})

	MemoCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendarc_memo_cache_hits_total",
		Help: "The total number of memoization cache hits in the metrics engine",
	})

	MemoCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendarc_memo_cache_misses_total",
		Help: "The total number of memoization cache misses in the metrics engine",
	})

	SnapshotWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trendarc_snapshot_writes_total",
		Help: "The total number of snapshot writes by mode (insert or update)",
	}, []string{"mode"})

	SnapshotWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendarc_snapshot_write_failures_total",
		Help: "The total number of snapshot writes that failed and were swallowed",
	})

	EventLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trendarc_event_lookups_total",
		Help: "The total number of event-search lookups by status",
	}, []string{"status"})

	EventLookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trendarc_event_lookup_duration_seconds",
		Help:    "Duration of event-search lookups",
		Buckets: prometheus.DefBuckets,
	})

	PeaksDetected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendarc_peaks_detected_total",
		Help: "The total number of trend peaks detected",
	})

	VerifierRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trendarc_verifier_requests_total",
		Help: "The total number of disambiguation verifier requests by backend and status",
	}, []string{"backend", "status"})

	VerifierRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trendarc_verifier_request_duration_seconds",
		Help:    "Duration of disambiguation verifier requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend"})

	VerificationCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendarc_verification_cache_hits_total",
		Help: "The total number of verification cache hits",
	})

	VerificationCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendarc_verification_cache_misses_total",
		Help: "The total number of verification cache misses",
	})

	WarmupRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trendarc_warmup_runs_total",
		Help: "The total number of warm-up job runs by outcome",
	}, []string{"outcome"})

	WarmupItemsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendarc_warmup_items_processed_total",
		Help: "The total number of comparisons recomputed by the warm-up job",
	})

	WarmupItemFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendarc_warmup_item_failures_total",
		Help: "The total number of warm-up items that failed and were skipped",
	})
)
