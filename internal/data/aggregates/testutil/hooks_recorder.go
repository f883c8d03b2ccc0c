package testutil

import (
	"sync"
	"time"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
)

// HooksRecorder keeps every hook call for later assertions.
type HooksRecorder struct {
	mu sync.Mutex

	Operations []OperationEvent
	Conflicts  []string
	Retries    []string
}

type OperationEvent struct {
	Name     string
	Status   string
	Duration time.Duration
}

var _ aggregates.Hooks = (*HooksRecorder)(nil)

func (h *HooksRecorder) ObserveOperation(name, status string, dur time.Duration) {
	h.mu.Lock()
	h.Operations = append(h.Operations, OperationEvent{Name: name, Status: status, Duration: dur})
	h.mu.Unlock()
}

func (h *HooksRecorder) IncConflict(name string) {
	h.mu.Lock()
	h.Conflicts = append(h.Conflicts, name)
	h.mu.Unlock()
}

func (h *HooksRecorder) IncRetry(name string) {
	h.mu.Lock()
	h.Retries = append(h.Retries, name)
	h.mu.Unlock()
}

// Statuses lists the recorded operation statuses in call order.
func (h *HooksRecorder) Statuses() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.Operations))
	for _, op := range h.Operations {
		out = append(out, op.Status)
	}
	return out
}
