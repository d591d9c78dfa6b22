package domain

import "time"

// LoadOutcome distinguishes a parsed document from the empty fallback.
type LoadOutcome string

const (
	LoadOutcomeLoaded LoadOutcome = "loaded"
	LoadOutcomeEmpty  LoadOutcome = "empty"
)

// LoadResult is what a load produces. Failures never escape as errors: they
// become an Empty result carrying the Reason, and the item list is empty.
type LoadResult struct {
	ID       string
	Source   Source
	Outcome  LoadOutcome
	Items    []ToolItem
	Reason   error
	Duration time.Duration
	LoadedAt time.Time
}

func Loaded(source Source, items []ToolItem) LoadResult {
	return LoadResult{
		Source:   source,
		Outcome:  LoadOutcomeLoaded,
		Items:    items,
		LoadedAt: time.Now(),
	}
}

func Empty(source Source, reason error) LoadResult {
	return LoadResult{
		Source:   source,
		Outcome:  LoadOutcomeEmpty,
		Reason:   reason,
		LoadedAt: time.Now(),
	}
}

func (r LoadResult) IsEmpty() bool {
	return r.Outcome != LoadOutcomeLoaded
}
