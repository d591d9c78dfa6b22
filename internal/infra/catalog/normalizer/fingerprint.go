package normalizer

import (
	"crypto/sha256"
	"encoding/hex"

	"essaipanel/internal/domain"
)

// Fingerprint hashes the normalized records, including every raw section, so
// reloads can tell whether the database content changed.
func Fingerprint(items []domain.ToolItem) string {
	h := sha256.New()

	write := func(value string) {
		h.Write([]byte(value))
		h.Write([]byte{0})
	}
	writeSection := func(section *domain.Section) {
		for _, key := range section.Keys() {
			write(key)
			write(section.Value(key))
		}
		h.Write([]byte{1})
	}

	for _, item := range items {
		write(item.Name)
		write(item.EssaiPart)
		write(item.EDPNumber)
		write(item.Manufacturer)
		write(item.HolderName)
		write(item.OutsideLength)
		write(item.GageLength)
		write(item.Description)
		write(item.Diameter)
		write(item.LengthOfCut)
		writeSection(item.Solfex)
		writeSection(item.Milling)
		writeSection(item.Drilling)
	}

	return hex.EncodeToString(h.Sum(nil))
}
