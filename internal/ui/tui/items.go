package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"essaipanel/internal/domain"
)

// toolItem adapts a visible tool to list.Item. index points into the
// snapshot, not into the visible list.
type toolItem struct {
	index    int
	item     domain.ToolItem
	selected bool
}

func (i toolItem) Title() string {
	if i.selected {
		return "● " + i.item.Name
	}
	return i.item.Name
}

func (i toolItem) Description() string {
	parts := make([]string, 0, 2)
	if i.item.EssaiPart != "" {
		parts = append(parts, i.item.EssaiPart)
	}
	if i.item.Manufacturer != "" {
		parts = append(parts, i.item.Manufacturer)
	}
	return strings.Join(parts, " · ")
}

func (i toolItem) FilterValue() string { return i.item.Name }

func toListItems(items []domain.ToolItem, visible []int, selected int) []list.Item {
	out := make([]list.Item, 0, len(visible))
	for _, index := range visible {
		out = append(out, toolItem{index: index, item: items[index], selected: index == selected})
	}
	return out
}
