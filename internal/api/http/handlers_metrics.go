package http

import (
	"time"

	"github.com/GriffinCanCode/polysolve/internal/infrastructure/monitoring"
)

// HandlerMetrics wraps handlers with metrics tracking
type HandlerMetrics struct {
	metrics *monitoring.Metrics
}

// NewHandlerMetrics creates a metrics wrapper
func NewHandlerMetrics(metrics *monitoring.Metrics) *HandlerMetrics {
	return &HandlerMetrics{metrics: metrics}
}

// TrackRegistryOperation tracks service registry lookups
func (hm *HandlerMetrics) TrackRegistryOperation(operation string) func() {
	return hm.track("service_registry", operation)
}

// TrackBatch tracks a batch solve; the returned func takes the final status
func (hm *HandlerMetrics) TrackBatch() func(status string) {
	timer := monitoring.NewTimer(hm.metrics, "batch", "solve")
	return func(status string) {
		timer.Stop(status)
	}
}

func (hm *HandlerMetrics) track(service, operation string) func() {
	start := time.Now()
	return func() {
		if hm.metrics != nil {
			hm.metrics.RecordServiceCall(service, operation, "success", time.Since(start))
		}
	}
}
