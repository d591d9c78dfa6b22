package telemetry

import (
	"sync"
	"time"

	"essaipanel/internal/domain"
)

// HealthReport is served on /healthz.
type HealthReport struct {
	Status   string `json:"status"`
	Source   string `json:"source,omitempty"`
	Outcome  string `json:"outcome,omitempty"`
	Records  int    `json:"records"`
	Reason   string `json:"reason,omitempty"`
	LoadedAt string `json:"loadedAt,omitempty"`
}

// HealthTracker remembers the most recent load. Status is "ok" before the
// first load and after a successful one, "degraded" after an empty one.
type HealthTracker struct {
	mu   sync.RWMutex
	last *domain.LoadResult
}

func NewHealthTracker() *HealthTracker {
	return &HealthTracker{}
}

func (h *HealthTracker) Observe(result domain.LoadResult) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = &result
}

func (h *HealthTracker) Report() HealthReport {
	if h == nil {
		return HealthReport{Status: "ok"}
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.last == nil {
		return HealthReport{Status: "ok"}
	}

	report := HealthReport{
		Status:   "ok",
		Source:   string(h.last.Source.Kind),
		Outcome:  string(h.last.Outcome),
		Records:  len(h.last.Items),
		LoadedAt: h.last.LoadedAt.UTC().Format(time.RFC3339),
	}
	if h.last.IsEmpty() {
		report.Status = "degraded"
		if h.last.Reason != nil {
			report.Reason = h.last.Reason.Error()
		}
	}
	return report
}
