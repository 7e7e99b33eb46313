package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Service metrics
	ServiceCalls    *prometheus.CounterVec
	ServiceDuration *prometheus.HistogramVec
	ServiceErrors   *prometheus.CounterVec

	// Solver metrics
	SolveCalls       *prometheus.CounterVec
	SolveDuration    *prometheus.HistogramVec
	SolveErrors      *prometheus.CounterVec
	IterativeSweeps  prometheus.Histogram
	NonConverged     prometheus.Counter
	CacheLookups     *prometheus.CounterVec
	SystemsIllPosed  prometheus.Counter
	ConditionNumbers prometheus.Histogram

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for the JSON stats endpoint
type Snapshot struct {
	TotalRequests int64   `json:"total_requests"`
	TotalErrors   int64   `json:"total_errors"`
	TotalSolves   int64   `json:"total_solves"`
	FailedSolves  int64   `json:"failed_solves"`
	NonConverged  int64   `json:"non_converged"`
	CacheHits     int64   `json:"cache_hits"`
	CacheMisses   int64   `json:"cache_misses"`
	AvgLatencyMS  float64 `json:"avg_latency_ms"`
	UptimeSeconds float64 `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics creates a metrics collector registered with reg. A nil reg
// means prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polysolve_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polysolve_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polysolve_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{64, 256, 1024, 4096, 16384, 65536},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polysolve_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{64, 256, 1024, 4096, 16384, 65536},
			},
			[]string{"method", "path"},
		),

		// Service metrics
		ServiceCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polysolve_service_calls_total",
				Help: "Total number of service tool executions",
			},
			[]string{"service", "tool", "status"},
		),
		ServiceDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polysolve_service_duration_seconds",
				Help:    "Service tool execution duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"service", "tool"},
		),
		ServiceErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polysolve_service_errors_total",
				Help: "Total number of service tool failures",
			},
			[]string{"service", "tool", "error_type"},
		),

		// Solver metrics
		SolveCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polysolve_solve_calls_total",
				Help: "Total number of solver invocations by method",
			},
			[]string{"method", "status"},
		),
		SolveDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polysolve_solve_duration_seconds",
				Help:    "Solver duration in seconds",
				Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
			},
			[]string{"method"},
		),
		SolveErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polysolve_solve_errors_total",
				Help: "Total number of solver failures by error kind",
			},
			[]string{"method", "kind"},
		),
		IterativeSweeps: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "polysolve_durand_kerner_iterations",
				Help:    "Sweeps used by Durand-Kerner runs",
				Buckets: []float64{5, 10, 20, 30, 40, 50, 75, 100},
			},
		),
		NonConverged: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "polysolve_durand_kerner_nonconverged_total",
				Help: "Durand-Kerner runs that hit the iteration cap",
			},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polysolve_cache_lookups_total",
				Help: "Result cache lookups by outcome",
			},
			[]string{"result"},
		),
		SystemsIllPosed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "polysolve_systems_ill_conditioned_total",
				Help: "Solved linear systems above the condition number threshold",
			},
		),
		ConditionNumbers: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "polysolve_system_condition_number",
				Help:    "Condition number of solved linear systems",
				Buckets: prometheus.ExponentialBuckets(1, 10, 13),
			},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "polysolve_uptime_seconds",
			Help: "Service uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordServiceCall records a service tool execution
func (m *Metrics) RecordServiceCall(service, tool, status string, duration time.Duration) {
	m.ServiceCalls.WithLabelValues(service, tool, status).Inc()
	m.ServiceDuration.WithLabelValues(service, tool).Observe(duration.Seconds())
}

// RecordServiceError records a service tool failure
func (m *Metrics) RecordServiceError(service, tool, errorType string) {
	m.ServiceErrors.WithLabelValues(service, tool, errorType).Inc()
}

// RecordSolve records one solver invocation. kind is empty on success.
func (m *Metrics) RecordSolve(method, kind string, duration time.Duration) {
	status := "success"
	if kind != "" {
		status = "error"
		m.SolveErrors.WithLabelValues(method, kind).Inc()
	}
	m.SolveCalls.WithLabelValues(method, status).Inc()
	m.SolveDuration.WithLabelValues(method).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalSolves++
	if kind != "" {
		m.snapshot.FailedSolves++
	}
	m.mu.Unlock()
}

// RecordIterations records a Durand-Kerner run
func (m *Metrics) RecordIterations(iterations int, converged bool) {
	m.IterativeSweeps.Observe(float64(iterations))
	if converged {
		return
	}
	m.NonConverged.Inc()
	m.mu.Lock()
	m.snapshot.NonConverged++
	m.mu.Unlock()
}

// RecordCache records a result cache lookup
func (m *Metrics) RecordCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()

	m.mu.Lock()
	if hit {
		m.snapshot.CacheHits++
	} else {
		m.snapshot.CacheMisses++
	}
	m.mu.Unlock()
}

// RecordCondition records the condition number of a solved system
func (m *Metrics) RecordCondition(cond float64, illConditioned bool) {
	m.ConditionNumbers.Observe(cond)
	if illConditioned {
		m.SystemsIllPosed.Inc()
	}
}

// GetSnapshot returns a copy of the current counters
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	if s.TotalRequests > 0 {
		s.AvgLatencyMS = s.totalDuration / float64(s.TotalRequests) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
