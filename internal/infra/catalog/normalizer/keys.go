package normalizer

import (
	"sort"

	"essaipanel/internal/domain"
)

// SectionSelector picks one raw section of an item.
type SectionSelector func(domain.ToolItem) *domain.Section

// SchemaSelector returns the selector for schema.
func SchemaSelector(schema domain.Schema) SectionSelector {
	return func(item domain.ToolItem) *domain.Section {
		return item.Section(schema)
	}
}

// CollectKeys returns the byte-wise sorted union of keys across the selected
// section of every item. Missing and non-object sections contribute nothing.
func CollectKeys(items []domain.ToolItem, selector SectionSelector) []string {
	unique := make(map[string]struct{})
	for _, item := range items {
		for _, key := range selector(item).Keys() {
			unique[key] = struct{}{}
		}
	}

	keys := make([]string, 0, len(unique))
	for key := range unique {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CollectKeySets computes the key sets of all three schemas.
func CollectKeySets(items []domain.ToolItem) domain.KeySets {
	return domain.KeySets{
		Solfex:   CollectKeys(items, SchemaSelector(domain.SchemaSolfex)),
		Milling:  CollectKeys(items, SchemaSelector(domain.SchemaMilling)),
		Drilling: CollectKeys(items, SchemaSelector(domain.SchemaDrilling)),
	}
}
