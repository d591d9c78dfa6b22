package normalizer

import (
	"sort"

	"essaipanel/internal/domain"
)

// NormalizeTool resolves the display fields of a raw record. The drilling
// section is primary for drilling tools, the milling section for everything
// else; the other of the two is the fallback. Solfex never feeds display
// fields.
func NormalizeTool(raw domain.ToolRecord) domain.ToolItem {
	primary, secondary := raw.Milling, raw.Drilling
	if raw.ToolType == domain.ToolTypeDrilling {
		primary, secondary = raw.Drilling, raw.Milling
	}
	pick := func(key string) string {
		return pickValue(primary, secondary, key)
	}

	return domain.ToolItem{
		Name:          raw.Name,
		EssaiPart:     pick(domain.KeyEssaiPart),
		EDPNumber:     pick(domain.KeyEDPNumber),
		Manufacturer:  pick(domain.KeyManufacturer),
		HolderName:    pick(domain.KeyHolderName),
		OutsideLength: pick(domain.KeyOutsideLength),
		GageLength:    pick(domain.KeyGageLength),
		Description:   pick(domain.KeyDescription),
		Diameter:      pick(domain.KeyDiameter),
		LengthOfCut:   pick(domain.KeyLengthOfCut),
		Solfex:        raw.Solfex,
		Milling:       raw.Milling,
		Drilling:      raw.Drilling,
	}
}

// NormalizeTools normalizes records in order.
func NormalizeTools(records []domain.ToolRecord) []domain.ToolItem {
	items := make([]domain.ToolItem, 0, len(records))
	for _, record := range records {
		items = append(items, NormalizeTool(record))
	}
	return items
}

// pickValue falls through to secondary when primary lacks key or its value
// renders empty.
func pickValue(primary, secondary *domain.Section, key string) string {
	if value := primary.Value(key); value != "" {
		return value
	}
	return secondary.Value(key)
}

// Manufacturers returns the distinct non-empty manufacturers, sorted.
func Manufacturers(items []domain.ToolItem) []string {
	if len(items) == 0 {
		return nil
	}

	unique := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.Manufacturer == "" {
			continue
		}
		unique[item.Manufacturer] = struct{}{}
	}
	if len(unique) == 0 {
		return nil
	}

	names := make([]string, 0, len(unique))
	for name := range unique {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
