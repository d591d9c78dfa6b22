package telemetry

import (
	"time"

	"go.uber.org/zap"
)

const (
	FieldEvent      = "event"
	FieldSource     = "source"
	FieldLocation   = "location"
	FieldLoadID     = "load_id"
	FieldRecords    = "records"
	FieldOutcome    = "outcome"
	FieldDurationMs = "duration_ms"
	FieldPath       = "path"
	FieldURL        = "url"
)

const (
	EventLoadSuccess   = "load_success"
	EventLoadEmpty     = "load_empty"
	EventLoadUnchanged = "load_unchanged"
	EventSourceSwitch  = "source_switch"
	EventWatchReload   = "watch_reload"
	EventWatchFailure  = "watch_failure"
)

func EventField(event string) zap.Field {
	return zap.String(FieldEvent, event)
}

func SourceField(source string) zap.Field {
	return zap.String(FieldSource, source)
}

func LocationField(location string) zap.Field {
	return zap.String(FieldLocation, location)
}

func LoadIDField(loadID string) zap.Field {
	return zap.String(FieldLoadID, loadID)
}

func RecordsField(count int) zap.Field {
	return zap.Int(FieldRecords, count)
}

func OutcomeField(outcome string) zap.Field {
	return zap.String(FieldOutcome, outcome)
}

func DurationField(duration time.Duration) zap.Field {
	return zap.Int64(FieldDurationMs, duration.Milliseconds())
}

func PathField(path string) zap.Field {
	return zap.String(FieldPath, path)
}

func URLField(value string) zap.Field {
	return zap.String(FieldURL, value)
}
