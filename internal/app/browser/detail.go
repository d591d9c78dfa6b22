package browser

import "essaipanel/internal/domain"

// NoSelectionText is shown in the detail panel when nothing is selected.
const NoSelectionText = "Select a tool from the list"

type DetailRow struct {
	Label string
	Value string
}

type DetailGroup struct {
	Title string
	Rows  []DetailRow
}

// DetailGroups lays out the display fields of item the way the detail panel
// groups them.
func DetailGroups(item domain.ToolItem) []DetailGroup {
	return []DetailGroup{
		{
			Title: "Assembly Details",
			Rows: []DetailRow{
				{Label: "Tool Name", Value: item.Name},
				{Label: "Holder", Value: item.HolderName},
				{Label: "Outside Holder L", Value: item.OutsideLength},
				{Label: "Gage Length", Value: item.GageLength},
			},
		},
		{
			Title: "Tool Details",
			Rows: []DetailRow{
				{Label: "Essai Part #", Value: item.EssaiPart},
				{Label: "Manufacturer", Value: item.Manufacturer},
				{Label: "EDP #", Value: item.EDPNumber},
			},
		},
		{
			Title: "Tool Details Extended",
			Rows: []DetailRow{
				{Label: "Description", Value: item.Description},
				{Label: "Diameter", Value: item.Diameter},
				{Label: "Length of Cut", Value: item.LengthOfCut},
			},
		},
	}
}

type SchemaRow struct {
	Key   string
	Value string
}

// SchemaTable renders one row per global key of schema. Values come from
// section and are blank when section is nil or lacks the key.
func SchemaTable(keys []string, section *domain.Section) []SchemaRow {
	rows := make([]SchemaRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, SchemaRow{Key: key, Value: section.Value(key)})
	}
	return rows
}
