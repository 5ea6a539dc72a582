package mapping

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// MappingFile represents the root of a YAML mapping file.
type MappingFile struct {
	// Version is the schema version (currently "1").
	Version string `yaml:"version"`
	// Package is the Go package pattern holding the mapped types.
	Package string `yaml:"package,omitempty"`
	// Output configures the generated files.
	Output OutputConfig `yaml:"output,omitempty"`
	// Models are types mapped to a table, both directions.
	Models []TypeMapping `yaml:"models,omitempty"`
	// Records are decode-only types.
	Records []TypeMapping `yaml:"records,omitempty"`
	// Enums are integer types stored as INTEGER columns.
	Enums []EnumMapping `yaml:"enums,omitempty"`

	// Dir is the directory the file was loaded from. Package is resolved
	// relative to it.
	Dir string `yaml:"-"`
}

// OutputConfig configures generated file names.
type OutputConfig struct {
	// Suffix is appended to the snake_case type name, before ".go".
	Suffix string `yaml:"suffix,omitempty"`
	// CheckTests enables the generated schema conformance tests. Defaults
	// to true.
	CheckTests *bool `yaml:"check_tests,omitempty"`
}

// CheckTestsEnabled reports whether conformance tests should be generated.
func (o OutputConfig) CheckTestsEnabled() bool {
	return o.CheckTests == nil || *o.CheckTests
}

// TypeMapping declares the attributes of one model or record type.
type TypeMapping struct {
	// Type is the Go type name in Package.
	Type string `yaml:"type"`
	// Table is the SQL table name. Required for models.
	Table string `yaml:"table,omitempty"`
	// Check is the path of a schema file to check the mapping against.
	Check string `yaml:"check,omitempty"`
	// Fields overrides per-field attributes, keyed by Go field name.
	Fields FieldMappings `yaml:"fields,omitempty"`
}

// EnumMapping declares an integer enum type.
type EnumMapping struct {
	Type string `yaml:"type"`
}

// FieldMapping overrides the attributes of one field.
type FieldMapping struct {
	// Column replaces the column name.
	Column string `yaml:"column,omitempty"`
	// Bind names the function converting the field before writing.
	Bind string `yaml:"bind,omitempty"`
	// Extract names the function converting a column value when decoding.
	Extract string `yaml:"extract,omitempty"`
}

// IsZero reports whether the mapping sets nothing.
func (f FieldMapping) IsZero() bool {
	return f == FieldMapping{}
}

// UnmarshalYAML accepts either a mapping or a plain string, the latter
// being shorthand for {column: <string>}.
func (f *FieldMapping) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var col string
		if err := node.Decode(&col); err != nil {
			return err
		}

		*f = FieldMapping{Column: col}

		return nil

	case yaml.MappingNode:
		// Decode through a distinct type to avoid recursing into this method.
		type plain FieldMapping

		var p plain
		if err := decodeStrict(node, &p); err != nil {
			return err
		}

		*f = FieldMapping(p)

		return nil

	default:
		return fmt.Errorf("line %d: expected column name or field mapping", node.Line)
	}
}

// MarshalYAML writes the shorthand form when only the column is set.
func (f FieldMapping) MarshalYAML() (any, error) {
	if f.Bind == "" && f.Extract == "" {
		return f.Column, nil
	}

	type plain FieldMapping

	return plain(f), nil
}

// FieldMappings maps Go field names to their overrides.
type FieldMappings map[string]FieldMapping

// Names returns the field names in sorted order.
func (m FieldMappings) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

var fieldMappingKeys = map[string]bool{"column": true, "bind": true, "extract": true}

// decodeStrict decodes a field mapping node, rejecting unknown keys. Nested
// Node.Decode calls do not inherit the decoder's KnownFields setting.
func decodeStrict(node *yaml.Node, v any) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !fieldMappingKeys[key.Value] {
			return fmt.Errorf("line %d: unknown field mapping key %q", key.Line, key.Value)
		}
	}

	return node.Decode(v)
}
