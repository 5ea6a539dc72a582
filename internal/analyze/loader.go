package analyze

import (
	"fmt"
	"go/types"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// GeneratedSuffix is the default file suffix of files written by rowcaster.
// Type errors inside generated files are ignored while loading, so a stale
// generated file never blocks regeneration.
const GeneratedSuffix = "_sqlrow.go"

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types

	// Dir is the working directory for package patterns. Empty means the
	// process working directory.
	Dir string
	// GeneratedSuffix overrides the suffix of generated files.
	GeneratedSuffix string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),

		GeneratedSuffix: GeneratedSuffix,
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/people", "rowcaster/examples/people").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError && a.inGeneratedFile(e.Pos) {
				continue
			}

			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	// Register every package first so isExternalPackage sees the full set.
	for _, pkg := range pkgs {
		a.graph.Packages[pkg.PkgPath] = &PackageInfo{
			Path:   pkg.PkgPath,
			Name:   pkg.Name,
			Dir:    packageDir(pkg),
			Funcs:  make(map[string]*types.Signature),
			Consts: make(map[string][]string),
		}
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

func (a *Analyzer) inGeneratedFile(pos string) bool {
	if a.GeneratedSuffix == "" {
		return false
	}

	file, _, _ := strings.Cut(pos, ":")

	return strings.HasSuffix(file, a.GeneratedSuffix)
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}

	if len(pkg.CompiledGoFiles) > 0 {
		return filepath.Dir(pkg.CompiledGoFiles[0])
	}

	return ""
}

// processPackage extracts types, functions and constants from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	if pkg.Types == nil {
		return fmt.Errorf("no type information")
	}

	pkgInfo := a.graph.Packages[pkg.PkgPath]

	var consts []*types.Const

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		switch obj := scope.Lookup(name).(type) {
		case *types.TypeName:
			typeID := TypeID{
				PkgPath: pkg.PkgPath,
				Name:    name,
			}

			typeInfo := a.analyzeType(obj.Type())
			typeInfo.ID = typeID

			a.graph.Types[typeID] = typeInfo
			pkgInfo.Types = append(pkgInfo.Types, typeID)

		case *types.Func:
			if sig, ok := obj.Type().(*types.Signature); ok && sig.Recv() == nil {
				pkgInfo.Funcs[name] = sig
			}

		case *types.Const:
			consts = append(consts, obj)
		}
	}

	// Scope names are sorted; constants are reported in source order.
	slices.SortFunc(consts, func(x, y *types.Const) int {
		return int(x.Pos() - y.Pos())
	})

	// Only the first constant of each value is kept.
	seen := make(map[string]bool)

	for _, c := range consts {
		named, ok := c.Type().(*types.Named)
		if !ok || named.Obj().Pkg() != pkg.Types {
			continue
		}

		typeName := named.Obj().Name()

		key := typeName + "=" + c.Val().ExactString()
		if seen[key] {
			continue
		}

		seen[key] = true
		pkgInfo.Consts[typeName] = append(pkgInfo.Consts[typeName], c.Name())
	}

	return nil
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	// Check cache to handle recursive types
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{
		GoType: t,
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := types.Unalias(t).(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Basic:
		info.Kind = TypeKindBasic

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Map:
		info.Kind = TypeKindMap

	case *types.Interface:
		info.Kind = TypeKindInterface

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	default:
		// Channels, functions, etc. cannot be stored in a column
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()

	pkgPath := ""
	if obj.Pkg() != nil {
		pkgPath = obj.Pkg().Path()
	}

	info.ID = TypeID{
		PkgPath: pkgPath,
		Name:    obj.Name(),
	}

	if tp := named.TypeParams(); tp != nil {
		info.TypeParams = tp.Len()
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	case *types.Interface:
		info.Kind = TypeKindInterface

	case *types.Basic:
		// Defined type over a basic type (e.g., type Color uint8)
		info.Kind = TypeKindAlias
		info.Underlying = a.analyzeType(ut)

	default:
		// External/opaque type (e.g., uuid.UUID, or complex named types)
		if a.isExternalPackage(pkgPath) {
			info.Kind = TypeKindExternal
		} else {
			info.Kind = TypeKindAlias
			info.Underlying = a.analyzeType(ut)
		}
	}
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// analyzeStructFields extracts fields from a struct type. Unexported fields
// are kept: generated code lives in the model's own package.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)

		fieldInfo := FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     a.analyzeType(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		}

		info.Fields = append(info.Fields, fieldInfo)
	}
}
