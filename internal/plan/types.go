package plan

import (
	"errors"
	"go/token"
	"strings"

	"rowcaster/internal/analyze"
	"rowcaster/internal/common"
	"rowcaster/internal/diagnostic"
)

// Plan is the final output of the resolution pipeline.
// It contains everything needed for code generation.
type Plan struct {
	// Package is the package holding the mapped types.
	Package *analyze.PackageInfo
	// Records lists models then decode-only records, in mapping file order.
	Records []RecordDescription
	// Enums lists the integer enums, in mapping file order.
	Enums []EnumDescription
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
	// ConfigErrors holds every configuration error found, in order.
	ConfigErrors []*ConfigurationError
}

// Err returns all configuration errors joined, or nil.
func (p *Plan) Err() error {
	if len(p.ConfigErrors) == 0 {
		return nil
	}

	errs := make([]error, len(p.ConfigErrors))
	for i, e := range p.ConfigErrors {
		errs[i] = e
	}

	return errors.Join(errs...)
}

// Models returns the records of kind KindModel.
func (p *Plan) Models() []RecordDescription {
	var out []RecordDescription

	for _, r := range p.Records {
		if r.Kind == KindModel {
			out = append(out, r)
		}
	}

	return out
}

// RecordKind selects the surface generated for a record.
type RecordKind int

const (
	// KindModel types get decoding, encoding, statements and metadata.
	KindModel RecordKind = iota
	// KindRecord types are decode-only.
	KindRecord
)

// String returns a human-readable kind name.
func (k RecordKind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindRecord:
		return "record"
	default:
		return common.UnknownStr
	}
}

// RecordDescription is the normalized description of one mapped struct.
type RecordDescription struct {
	// Name is the Go type name.
	Name    string
	PkgPath string
	PkgName string
	// Dir is the package directory.
	Dir  string
	Kind RecordKind
	// Table is the SQL table. Empty for records.
	Table string
	// SchemaCheck is the schema file path relative to Dir, if any.
	SchemaCheck string
	// Fields in declaration order.
	Fields []FieldDescription
}

// FieldDescription describes how one struct field maps to a column.
type FieldDescription struct {
	FieldName  string
	ColumnName string
	// Bind converts the field before writing. Nil means native binding.
	Bind *FuncRef
	// Extract converts the column value when decoding. Nil means native
	// conversion.
	Extract *FuncRef
	Type    *analyze.TypeInfo
	// Source tells where ColumnName came from.
	Source AttributeSource
}

// AttributeSource indicates where a field's column name originated.
type AttributeSource int

const (
	// SourceFieldName - the Go field name, used verbatim (lowest priority).
	SourceFieldName AttributeSource = iota
	// SourceTag - the `sql` struct tag.
	SourceTag
	// SourceYAML - the mapping file fields section (highest priority).
	SourceYAML
)

// String returns a human-readable source name.
func (s AttributeSource) String() string {
	switch s {
	case SourceFieldName:
		return "field"
	case SourceTag:
		return "tag"
	case SourceYAML:
		return "yaml"
	default:
		return common.UnknownStr
	}
}

// FuncRef names a conversion function, either in the model's package
// (PkgPath empty) or in another package.
type FuncRef struct {
	PkgPath string
	Name    string
	// PkgName is the declared name of PkgPath when the package was loaded.
	PkgName string
}

// String returns the reference as written in tags and YAML.
func (f FuncRef) String() string {
	if f.PkgPath == "" {
		return f.Name
	}

	return f.PkgPath + "." + f.Name
}

// IsLocal reports whether the function lives in pkgPath.
func (f FuncRef) IsLocal(pkgPath string) bool {
	return f.PkgPath == "" || f.PkgPath == pkgPath
}

var errBadFuncRef = errors.New("must be an identifier or import/path.Identifier")

// ParseFuncRef parses "Ident" or "import/path.Ident".
func ParseFuncRef(s string) (FuncRef, error) {
	if s == "" || strings.ContainsAny(s, " \t\r\n\"'`,=") {
		return FuncRef{}, errBadFuncRef
	}

	i := strings.LastIndexByte(s, '.')
	if i < 0 {
		if !token.IsIdentifier(s) {
			return FuncRef{}, errBadFuncRef
		}

		return FuncRef{Name: s}, nil
	}

	pkg, name := s[:i], s[i+1:]
	if pkg == "" || strings.HasSuffix(pkg, "/") || !token.IsIdentifier(name) || !token.IsExported(name) {
		return FuncRef{}, errBadFuncRef
	}

	return FuncRef{PkgPath: pkg, Name: name}, nil
}

// EnumDescription describes an integer enum.
type EnumDescription struct {
	Name    string
	PkgPath string
	// Constants lists one constant per distinct value, in source order.
	Constants []string
}
