package domain

import "time"

// Metrics records loader activity.
type Metrics interface {
	ObserveLoad(source SourceKind, outcome LoadOutcome, duration time.Duration)
	SetRecords(source SourceKind, count int)
}
