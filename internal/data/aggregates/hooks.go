package aggregates

import (
	"time"

	"github.com/yungbote/foodgram-backend/internal/observability"
)

// Hooks receives one ObserveOperation per aggregate write plus a counter bump
// for conflicts and retryable failures.
type Hooks interface {
	ObserveOperation(name, status string, dur time.Duration)
	IncConflict(name string)
	IncRetry(name string)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncConflict(string)                             {}
func (noopHooks) IncRetry(string)                                {}

type metricsHooks struct {
	m *observability.Metrics
}

// NewObservabilityHooks reports aggregate writes to metrics. A nil metrics
// set yields hooks that drop everything.
func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks{}
	}
	return metricsHooks{m: metrics}
}

func (h metricsHooks) ObserveOperation(name, status string, dur time.Duration) {
	h.m.ObserveAggregateOperation(name, status, dur)
}

func (h metricsHooks) IncConflict(name string) { h.m.IncAggregateConflict(name) }
func (h metricsHooks) IncRetry(name string)    { h.m.IncAggregateRetry(name) }
