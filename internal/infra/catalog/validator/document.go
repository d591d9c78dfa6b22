package validator

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"essaipanel/internal/domain"
)

// Document field names of the tool database.
const (
	FieldTools    = "tools"
	FieldToolName = "tool_name"
	FieldToolType = "sc_tool_type"
	FieldSolfex   = "Solfex"
	FieldMilling  = "milling_tool"
	FieldDrilling = "drilling_tool"
)

var (
	documentSchemaOnce sync.Once
	documentSchema     *jsonschema.Resolved
	documentSchemaErr  error
)

// DocumentSchema describes the accepted shape of a tool database. Attribute
// sections are unconstrained; only objects are used downstream.
func DocumentSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{FieldTools},
		Properties: map[string]*jsonschema.Schema{
			FieldTools: {
				Type: "array",
				Items: &jsonschema.Schema{
					Type:     "object",
					Required: []string{FieldToolName, FieldToolType},
					Properties: map[string]*jsonschema.Schema{
						FieldToolName: {Type: "string"},
						FieldToolType: {Type: "string"},
					},
				},
			},
		},
	}
}

func resolvedDocumentSchema() (*jsonschema.Resolved, error) {
	documentSchemaOnce.Do(func() {
		documentSchema, documentSchemaErr = DocumentSchema().Resolve(nil)
	})
	return documentSchema, documentSchemaErr
}

// ValidateDocument checks an already decoded JSON value against DocumentSchema.
func ValidateDocument(instance any) error {
	resolved, err := resolvedDocumentSchema()
	if err != nil {
		return fmt.Errorf("resolve document schema: %w", err)
	}
	if err := resolved.Validate(instance); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSchemaMismatch, err)
	}
	return nil
}

// ValidateDocumentBytes decodes data and validates it.
func ValidateDocumentBytes(data []byte) error {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrParseFailed, err)
	}
	return ValidateDocument(instance)
}
