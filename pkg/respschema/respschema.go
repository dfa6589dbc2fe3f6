// Package respschema builds the typed output schema sent alongside each
// generation request. It covers the subset of the generator's schema
// language this tool needs: objects, arrays, strings, and integers, with
// required properties and enums.
package respschema

import "sort"

// Type enumerates the supported schema node types.
type Type string

const (
	TypeObject  Type = "OBJECT"
	TypeArray   Type = "ARRAY"
	TypeString  Type = "STRING"
	TypeInteger Type = "INTEGER"
)

// Schema is one node of a response schema. It serializes directly to the
// generator's wire format.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	MinItems    int                `json:"minItems,omitempty"`
	MaxItems    int                `json:"maxItems,omitempty"`
}

// Object builds an object schema where every property is required.
func Object(props map[string]*Schema) *Schema {
	required := make([]string, 0, len(props))
	for name := range props {
		required = append(required, name)
	}
	sort.Strings(required)
	return &Schema{Type: TypeObject, Properties: props, Required: required}
}

// ObjectWithOptional builds an object schema with an explicit required set.
func ObjectWithOptional(props map[string]*Schema, required []string) *Schema {
	return &Schema{Type: TypeObject, Properties: props, Required: required}
}

// Array builds an array schema with exact item count bounds.
func Array(items *Schema, exactly int) *Schema {
	return &Schema{Type: TypeArray, Items: items, MinItems: exactly, MaxItems: exactly}
}

// String builds a string schema.
func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

// StringEnum builds a string schema restricted to the given values.
func StringEnum(description string, values ...string) *Schema {
	return &Schema{Type: TypeString, Description: description, Enum: values}
}
