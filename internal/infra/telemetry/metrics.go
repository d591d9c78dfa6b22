package telemetry

import (
	"time"

	"essaipanel/internal/domain"
)

type NoopMetrics struct{}

func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) ObserveLoad(_ domain.SourceKind, _ domain.LoadOutcome, _ time.Duration) {}

func (n *NoopMetrics) SetRecords(_ domain.SourceKind, _ int) {}

var _ domain.Metrics = (*NoopMetrics)(nil)
