package mapping

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the mapping file looked up when none is given.
const DefaultFileName = "rowcaster.yaml"

// DefaultSuffix is the default generated file suffix.
const DefaultSuffix = "_sqlrow"

// LoadFile loads and parses a YAML mapping file from the given path.
func LoadFile(path string) (*MappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	mf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve mapping directory: %w", err)
	}

	mf.Dir = abs

	return mf, nil
}

// Parse parses YAML data into a MappingFile. Unknown keys are rejected.
func Parse(data []byte) (*MappingFile, error) {
	var mf MappingFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&mf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&mf)

	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *MappingFile) {
	if mf.Version == "" {
		mf.Version = "1"
	}

	if mf.Package == "" {
		mf.Package = "."
	}

	if mf.Output.Suffix == "" {
		mf.Output.Suffix = DefaultSuffix
	}
}

// PackagePattern returns Package resolved against the mapping directory
// when it is a relative path pattern.
func (mf *MappingFile) PackagePattern() string {
	if mf.Dir == "" || !isRelativePattern(mf.Package) {
		return mf.Package
	}

	return filepath.Join(mf.Dir, mf.Package)
}

func isRelativePattern(p string) bool {
	return p == "." || p == ".." ||
		len(p) > 1 && p[0] == '.' && (p[1] == '/' || p[1] == '.')
}

// Marshal serializes a MappingFile to YAML.
func Marshal(mf *MappingFile) ([]byte, error) {
	return yaml.Marshal(mf)
}

// WriteFile writes a MappingFile to the given path.
func WriteFile(mf *MappingFile, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}
