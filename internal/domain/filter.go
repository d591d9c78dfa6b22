package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ToolFilterKind distinguishes the two tool filter variants.
type ToolFilterKind int

const (
	// ToolFilterFamily matches on essai part only.
	ToolFilterFamily ToolFilterKind = iota + 1
	// ToolFilterClass matches on essai part and holder name.
	ToolFilterClass
)

// ToolFilter narrows the list to one tool family or class.
type ToolFilter struct {
	Kind       ToolFilterKind
	EssaiPart  string
	HolderName string
}

func FamilyFilter(essaiPart string) ToolFilter {
	return ToolFilter{Kind: ToolFilterFamily, EssaiPart: essaiPart}
}

func ClassFilter(essaiPart, holderName string) ToolFilter {
	return ToolFilter{Kind: ToolFilterClass, EssaiPart: essaiPart, HolderName: holderName}
}

// FamilyFilterFor builds a family filter from an item. Items without an
// essai part cannot seed a filter.
func FamilyFilterFor(item ToolItem) (ToolFilter, bool) {
	if item.EssaiPart == "" {
		return ToolFilter{}, false
	}
	return FamilyFilter(item.EssaiPart), true
}

// ClassFilterFor builds a class filter from an item.
func ClassFilterFor(item ToolItem) (ToolFilter, bool) {
	if item.EssaiPart == "" {
		return ToolFilter{}, false
	}
	return ClassFilter(item.EssaiPart, item.HolderName), true
}

func (f ToolFilter) Matches(item ToolItem) bool {
	switch f.Kind {
	case ToolFilterFamily:
		return item.EssaiPart == f.EssaiPart
	case ToolFilterClass:
		return item.EssaiPart == f.EssaiPart && item.HolderName == f.HolderName
	default:
		return false
	}
}

// Label is the chip text shown while the filter is active.
func (f ToolFilter) Label() string {
	switch f.Kind {
	case ToolFilterFamily:
		return "Family: " + f.EssaiPart
	case ToolFilterClass:
		return fmt.Sprintf("Class: %s | %s", f.EssaiPart, f.HolderName)
	default:
		return ""
	}
}

// ParseClassFilter parses "part,holder".
func ParseClassFilter(raw string) (ToolFilter, error) {
	part, holder, ok := strings.Cut(raw, ",")
	part = strings.TrimSpace(part)
	if !ok || part == "" {
		return ToolFilter{}, fmt.Errorf("%w: class filter must be \"part,holder\"", ErrInvalidFilter)
	}
	return ClassFilter(part, strings.TrimSpace(holder)), nil
}

// Criteria is the full set of list constraints. An empty Manufacturer means
// no manufacturer filter; a nil Tool means free-text search applies.
type Criteria struct {
	Manufacturer string
	Tool         *ToolFilter
	Search       string
}

// Passes reports whether item is visible under c. The manufacturer filter
// rejects first; a tool filter then decides alone; otherwise the search text
// is matched against the name.
func (c Criteria) Passes(item ToolItem) bool {
	if c.Manufacturer != "" && item.Manufacturer != c.Manufacturer {
		return false
	}
	if c.Tool != nil {
		return c.Tool.Matches(item)
	}
	return NameMatches(item.Name, c.Search)
}

// Filter returns the indices of items that pass, in order.
func (c Criteria) Filter(items []ToolItem) []int {
	visible := make([]int, 0, len(items))
	for i, item := range items {
		if c.Passes(item) {
			visible = append(visible, i)
		}
	}
	return visible
}

// NameMatches is a case-insensitive substring match; empty search matches all.
func NameMatches(name, search string) bool {
	if search == "" {
		return true
	}
	folder := cases.Fold()
	return strings.Contains(folder.String(name), folder.String(search))
}
