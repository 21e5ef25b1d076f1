package server

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

const triangulateSchema = `{
	"type": "object",
	"properties": {
		"coordinates": {
			"type": "array",
			"items": {"type": "number"}
		}
	},
	"required": ["coordinates"],
	"additionalProperties": false
}`

const treeSchema = `{
	"type": "object",
	"properties": {
		"coordinates": {
			"type": "array",
			"items": {"type": "number"}
		},
		"indices": {
			"type": "array",
			"items": {"type": "integer", "minimum": 0, "maximum": 4294967295}
		}
	},
	"required": ["coordinates"],
	"additionalProperties": false
}`

// Validator checks request bodies against a JSON Schema before they are
// decoded.
type Validator struct {
	schema *gojsonschema.Schema
}

func NewValidator(schema string) (*Validator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		return nil, errors.Wrap(err, "compile schema")
	}
	return &Validator{schema: compiled}, nil
}

func mustValidator(schema string) *Validator {
	validator, err := NewValidator(schema)
	if err != nil {
		panic(err)
	}
	return validator
}

// ValidateBytes validates raw JSON bytes. Every violation is listed in the
// error.
func (v *Validator) ValidateBytes(data []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return errors.Wrap(err, "invalid JSON")
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return errors.Errorf("validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}
