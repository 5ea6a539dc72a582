package analyze

import (
	"go/types"
	"reflect"

	"rowcaster/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "rowcaster/examples/people"
	Name    string // e.g., "Person"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindInterface          // interface or type-set constraint
	TypeKindAlias              // named type wrapping a non-struct type
	TypeKindExternal           // external/opaque type (e.g., time.Time)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return "interface"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind    // Kind of type
	Underlying *TypeInfo   // For named types, the underlying type
	ElemType   *TypeInfo   // For pointers, slices and arrays, the element type
	Fields     []FieldInfo // For structs, the list of fields
	TypeParams int         // Number of type parameters of a generic named type
	GoType     types.Type  // The original go/types.Type
}

// IsGeneric returns true if the named type declares type parameters.
func (t *TypeInfo) IsGeneric() bool {
	return t.TypeParams > 0
}

// IsInteger returns true if the underlying type is a (signed or unsigned)
// integer.
func (t *TypeInfo) IsInteger() bool {
	if t == nil || t.GoType == nil {
		return false
	}

	b, ok := t.GoType.Underlying().(*types.Basic)

	return ok && b.Info()&types.IsInteger != 0
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// TagKey is the struct tag key read by the resolver.
const TagKey = "sql"

// SQLTag returns the raw `sql` tag value and whether it was present.
func (f *FieldInfo) SQLTag() (string, bool) {
	return f.Tag.Lookup(TagKey)
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package sources
	Types []TypeID // Named types defined in this package
	// Funcs maps package-level function names to their signatures.
	Funcs map[string]*types.Signature
	// Consts maps a named type to its constants in source order, one per
	// distinct value.
	Consts map[string][]string
}

// Func returns the signature of a package-level function.
func (p *PackageInfo) Func(name string) (*types.Signature, bool) {
	sig, ok := p.Funcs[name]
	return sig, ok
}
