package domain

import (
	"fmt"
	"strings"
)

// ToolTypeDrilling selects the drilling section as primary.
const ToolTypeDrilling = "drilling"

// Source keys of the display fields inside milling/drilling sections.
const (
	KeyEDPNumber     = "Message1"
	KeyEssaiPart     = "Message2"
	KeyManufacturer  = "Message3"
	KeyHolderName    = "HolderName"
	KeyOutsideLength = "Length"
	KeyGageLength    = "HLength"
	KeyDescription   = "Description"
	KeyDiameter      = "Diameter"
	KeyLengthOfCut   = "CuttingLength"
)

// ToolRecord is one raw entry of the tool database document.
type ToolRecord struct {
	Name     string
	ToolType string
	Solfex   *Section
	Milling  *Section
	Drilling *Section
}

// ToolItem is the normalized, display-ready form of a ToolRecord.
// Raw sections are kept for the per-schema detail tables.
type ToolItem struct {
	Name          string `json:"name" yaml:"name" toml:"name"`
	EssaiPart     string `json:"essai_part" yaml:"essai_part" toml:"essai_part"`
	EDPNumber     string `json:"edp_num" yaml:"edp_num" toml:"edp_num"`
	Manufacturer  string `json:"manufacturer" yaml:"manufacturer" toml:"manufacturer"`
	HolderName    string `json:"holder_name" yaml:"holder_name" toml:"holder_name"`
	OutsideLength string `json:"outside_len" yaml:"outside_len" toml:"outside_len"`
	GageLength    string `json:"gage_len" yaml:"gage_len" toml:"gage_len"`
	Description   string `json:"description" yaml:"description" toml:"description"`
	Diameter      string `json:"diameter" yaml:"diameter" toml:"diameter"`
	LengthOfCut   string `json:"length_of_cut" yaml:"length_of_cut" toml:"length_of_cut"`

	Solfex   *Section `json:"-" yaml:"-" toml:"-"`
	Milling  *Section `json:"-" yaml:"-" toml:"-"`
	Drilling *Section `json:"-" yaml:"-" toml:"-"`
}

// Section returns the raw section backing schema.
func (t ToolItem) Section(schema Schema) *Section {
	switch schema {
	case SchemaSolfex:
		return t.Solfex
	case SchemaMilling:
		return t.Milling
	case SchemaDrilling:
		return t.Drilling
	default:
		return nil
	}
}

// Schema names one of the three attribute schemas.
type Schema int

const (
	SchemaSolfex Schema = iota
	SchemaMilling
	SchemaDrilling
)

// AllSchemas lists the schemas in tab order.
func AllSchemas() []Schema {
	return []Schema{SchemaSolfex, SchemaMilling, SchemaDrilling}
}

func (s Schema) String() string {
	switch s {
	case SchemaSolfex:
		return "Solfex"
	case SchemaMilling:
		return "Milling"
	case SchemaDrilling:
		return "Drilling"
	default:
		return fmt.Sprintf("Schema(%d)", int(s))
	}
}

// Next cycles through the schemas in tab order.
func (s Schema) Next() Schema {
	return Schema((int(s) + 1) % len(AllSchemas()))
}

// ParseSchema accepts the schema label or the document key, case-insensitively.
func ParseSchema(raw string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "solfex":
		return SchemaSolfex, nil
	case "milling", "milling_tool":
		return SchemaMilling, nil
	case "drilling", "drilling_tool":
		return SchemaDrilling, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSchema, raw)
	}
}

// KeySets holds the sorted union of keys seen per schema.
type KeySets struct {
	Solfex   []string `json:"solfex" yaml:"solfex" toml:"solfex"`
	Milling  []string `json:"milling" yaml:"milling" toml:"milling"`
	Drilling []string `json:"drilling" yaml:"drilling" toml:"drilling"`
}

func (k KeySets) For(schema Schema) []string {
	switch schema {
	case SchemaSolfex:
		return k.Solfex
	case SchemaMilling:
		return k.Milling
	case SchemaDrilling:
		return k.Drilling
	default:
		return nil
	}
}
