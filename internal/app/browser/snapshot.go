package browser

import (
	"essaipanel/internal/domain"
	"essaipanel/internal/infra/catalog/normalizer"
)

// Snapshot is the immutable result of one load with everything derived from
// it. It is replaced as a whole on reload and never mutated afterwards.
type Snapshot struct {
	Revision      uint64
	Result        domain.LoadResult
	Items         []domain.ToolItem
	Keys          domain.KeySets
	Manufacturers []string
	Fingerprint   string
}

// NewSnapshot derives key sets, manufacturers and the fingerprint.
func NewSnapshot(revision uint64, result domain.LoadResult) *Snapshot {
	items := result.Items
	if items == nil {
		items = []domain.ToolItem{}
	}
	return &Snapshot{
		Revision:      revision,
		Result:        result,
		Items:         items,
		Keys:          normalizer.CollectKeySets(items),
		Manufacturers: normalizer.Manufacturers(items),
		Fingerprint:   normalizer.Fingerprint(items),
	}
}

func emptySnapshot(source domain.Source) *Snapshot {
	return NewSnapshot(0, domain.LoadResult{Source: source, Outcome: domain.LoadOutcomeEmpty})
}

// Item returns the item at index when it exists.
func (s *Snapshot) Item(index int) (domain.ToolItem, bool) {
	if s == nil || index < 0 || index >= len(s.Items) {
		return domain.ToolItem{}, false
	}
	return s.Items[index], true
}

// Find returns the index of the first item named name.
func (s *Snapshot) Find(name string) (int, bool) {
	if s == nil {
		return -1, false
	}
	for i, item := range s.Items {
		if item.Name == name {
			return i, true
		}
	}
	return -1, false
}
