package analyze

import (
	"go/types"
	"strings"
)

// TypeStringer renders go/types types as they would be written inside a
// given package: types of that package are unqualified, others use the
// package name.
type TypeStringer struct {
	pkgPath string
}

// NewTypeStringer creates a TypeStringer relative to pkgPath.
func NewTypeStringer(pkgPath string) *TypeStringer {
	return &TypeStringer{pkgPath: pkgPath}
}

func (s *TypeStringer) qualify(p *types.Package) string {
	if p.Path() == s.pkgPath {
		return ""
	}

	return p.Name()
}

// Type returns the source form of t.
func (s *TypeStringer) Type(t types.Type) string {
	return types.TypeString(t, s.qualify)
}

// TypeString returns the source form of a TypeInfo.
func (s *TypeStringer) TypeString(t *TypeInfo) string {
	if t == nil || t.GoType == nil {
		return "<nil>"
	}

	return s.Type(t.GoType)
}

// BindSignature returns the expected signature of a bind function for a
// field of type t.
func (s *TypeStringer) BindSignature(t *TypeInfo) string {
	return "func(" + s.TypeString(t) + ") (driver.Value, error)"
}

// ExtractSignature returns the expected signature of an extract function
// for a field of type t.
func (s *TypeStringer) ExtractSignature(t *TypeInfo) string {
	return "func(sqlrow.ValueRef) (" + s.TypeString(t) + ", error)"
}

// FieldPath joins a type name and field names with dots.
// Example: Person, HomeDir -> "Person.HomeDir"
func (s *TypeStringer) FieldPath(typeName string, fieldNames ...string) string {
	return strings.Join(append([]string{typeName}, fieldNames...), ".")
}
