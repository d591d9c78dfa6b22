package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"essaipanel/internal/domain"
	"essaipanel/internal/infra/catalog/validator"
)

type rawDocument struct {
	Tools []rawTool `json:"tools"`
}

type rawTool struct {
	ToolName string          `json:"tool_name"`
	ToolType string          `json:"sc_tool_type"`
	Solfex   json.RawMessage `json:"Solfex"`
	Milling  json.RawMessage `json:"milling_tool"`
	Drilling json.RawMessage `json:"drilling_tool"`
}

// ParseDocument decodes tool database text into raw records.
func ParseDocument(data []byte) ([]domain.ToolRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	var instance any
	if err := json.Unmarshal(trimmed, &instance); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParseFailed, err)
	}
	if err := validator.ValidateDocument(instance); err != nil {
		return nil, err
	}

	var doc rawDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParseFailed, err)
	}

	records := make([]domain.ToolRecord, 0, len(doc.Tools))
	for i, tool := range doc.Tools {
		record, err := decodeRecord(tool)
		if err != nil {
			return nil, fmt.Errorf("%w: tools[%d]: %v", domain.ErrParseFailed, i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func decodeRecord(raw rawTool) (domain.ToolRecord, error) {
	solfex, err := domain.ParseSection(raw.Solfex)
	if err != nil {
		return domain.ToolRecord{}, fmt.Errorf("%s: %w", validator.FieldSolfex, err)
	}
	milling, err := domain.ParseSection(raw.Milling)
	if err != nil {
		return domain.ToolRecord{}, fmt.Errorf("%s: %w", validator.FieldMilling, err)
	}
	drilling, err := domain.ParseSection(raw.Drilling)
	if err != nil {
		return domain.ToolRecord{}, fmt.Errorf("%s: %w", validator.FieldDrilling, err)
	}
	return domain.ToolRecord{
		Name:     raw.ToolName,
		ToolType: raw.ToolType,
		Solfex:   solfex,
		Milling:  milling,
		Drilling: drilling,
	}, nil
}
