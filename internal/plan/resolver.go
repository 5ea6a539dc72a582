package plan

import (
	"errors"
	"fmt"
	"go/types"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"rowcaster/internal/analyze"
	"rowcaster/internal/mapping"
	"rowcaster/internal/match"
)

var (
	columnRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	tableRe  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)
)

// Resolver resolves the types declared by a mapping file against a type
// graph.
type Resolver struct {
	graph      *analyze.TypeGraph
	mappingDef *mapping.MappingFile
	pkg        *analyze.PackageInfo
	stringer   *analyze.TypeStringer

	plan *Plan
}

// NewResolver creates a Resolver for the types of package pkgPath.
func NewResolver(graph *analyze.TypeGraph, mappingDef *mapping.MappingFile, pkgPath string) *Resolver {
	return &Resolver{
		graph:      graph,
		mappingDef: mappingDef,
		pkg:        graph.Packages[pkgPath],
		stringer:   analyze.NewTypeStringer(pkgPath),
	}
}

// Resolve runs the full resolution pipeline and returns a Plan. An error is
// returned only when resolution cannot start; configuration problems are
// reported through Plan.Diagnostics and Plan.ConfigErrors.
func (r *Resolver) Resolve() (*Plan, error) {
	if r.mappingDef == nil {
		return nil, errors.New("mapping definition is required")
	}

	if r.pkg == nil {
		return nil, errors.New("mapped package was not loaded")
	}

	r.plan = &Plan{Package: r.pkg}

	for i := range r.mappingDef.Models {
		if rec, ok := r.resolveRecord(&r.mappingDef.Models[i], KindModel); ok {
			r.plan.Records = append(r.plan.Records, rec)
		}
	}

	for i := range r.mappingDef.Records {
		if rec, ok := r.resolveRecord(&r.mappingDef.Records[i], KindRecord); ok {
			r.plan.Records = append(r.plan.Records, rec)
		}
	}

	for i := range r.mappingDef.Enums {
		if enum, ok := r.resolveEnum(&r.mappingDef.Enums[i]); ok {
			r.plan.Enums = append(r.plan.Enums, enum)
		}
	}

	return r.plan, nil
}

// fail records a configuration error both as a diagnostic and as a typed
// error.
func (r *Resolver) fail(code, model, attr, hint, format string, args ...any) {
	ce := &ConfigurationError{
		Model:     model,
		Attribute: attr,
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		Hint:      hint,
	}
	r.plan.ConfigErrors = append(r.plan.ConfigErrors, ce)

	var hints []string
	if hint != "" {
		hints = append(hints, hint)
	}

	r.plan.Diagnostics.AddError(code, ce.Message, model, attr, hints...)
}

func (r *Resolver) lookup(name string) *analyze.TypeInfo {
	return r.graph.GetType(analyze.TypeID{PkgPath: r.pkg.Path, Name: name})
}

// typeHint suggests a type of the mapped package close to name.
func (r *Resolver) typeHint(name string) string {
	names := make([]string, 0, len(r.pkg.Types))
	for _, id := range r.pkg.Types {
		names = append(names, id.Name)
	}

	slices.Sort(names)

	if hint := match.Hint(name, names); hint != "" {
		return hint
	}

	return "declare type " + name + " in package " + r.pkg.Path
}

func funcNames(pkg *analyze.PackageInfo) []string {
	names := slices.Collect(maps.Keys(pkg.Funcs))
	slices.Sort(names)

	return names
}

func (r *Resolver) resolveRecord(tm *mapping.TypeMapping, kind RecordKind) (RecordDescription, bool) {
	errCount := len(r.plan.ConfigErrors)

	info := r.lookup(tm.Type)
	if info == nil {
		r.fail("type_not_found", tm.Type, "", r.typeHint(tm.Type), "type %s not found in package %s", tm.Type, r.pkg.Path)
		return RecordDescription{}, false
	}

	if !r.checkShape(tm.Type, info) {
		return RecordDescription{}, false
	}

	rec := RecordDescription{
		Name:    tm.Type,
		PkgPath: r.pkg.Path,
		PkgName: r.pkg.Name,
		Dir:     r.pkg.Dir,
		Kind:    kind,
	}

	if kind == KindModel {
		rec.Table = tm.Table
		r.checkTable(tm.Type, tm.Table)
		rec.SchemaCheck = r.checkSchemaPath(tm.Type, tm.Check)
	}

	known := make(map[string]bool, len(info.Fields))

	for i := range info.Fields {
		f := &info.Fields[i]
		known[f.Name] = true

		if fd, ok := r.resolveField(tm, f, kind); ok {
			rec.Fields = append(rec.Fields, fd)
		}
	}

	for _, name := range tm.Fields.Names() {
		if !known[name] {
			hint := match.Hint(name, fieldNames(info))
			if hint == "" {
				hint = "fields: " + strings.Join(fieldNames(info), ", ")
			}

			r.fail("unknown_field", tm.Type, name, hint,
				"mapping names field %s, which %s does not have", name, tm.Type)
		}
	}

	r.checkDuplicateColumns(&rec)

	return rec, len(r.plan.ConfigErrors) == errCount
}

func fieldNames(info *analyze.TypeInfo) []string {
	names := make([]string, len(info.Fields))
	for i, f := range info.Fields {
		names[i] = f.Name
	}

	return names
}

// checkShape verifies that info is a non-generic struct with at least one
// named, non-embedded field.
func (r *Resolver) checkShape(name string, info *analyze.TypeInfo) bool {
	switch {
	case info.IsGeneric():
		r.fail("type_parameters", name, "", "remove the type parameters", "generic types cannot be mapped")
	case info.Kind == analyze.TypeKindInterface:
		r.fail("union_like", name, "", "declare a struct with named fields", "interface types have no fixed set of columns")
	case info.Kind != analyze.TypeKindStruct:
		r.fail("not_struct", name, "", "type "+name+" struct { ... }", "only struct types can be mapped, got %s", info.Kind)
	case len(info.Fields) == 0:
		r.fail("empty_struct", name, "", "declare a struct with named fields", "struct has no fields")
	default:
		ok := true

		for _, f := range info.Fields {
			if f.Embedded {
				r.fail("embedded_field", name, f.Name, "name the field", "embedded fields are not supported")
				ok = false
			} else if f.Name == "_" {
				r.fail("blank_field", name, f.Name, "name the field or remove it", "blank fields cannot be mapped")
				ok = false
			}
		}

		return ok
	}

	return false
}

func (r *Resolver) checkTable(model, table string) {
	switch {
	case table == "":
		r.fail("missing_table", model, "table", "table: <table_name>", "no table declared")
	case !tableRe.MatchString(table):
		r.fail("invalid_table", model, "table", "table: [A-Za-z_][A-Za-z0-9_]* or schema.table", "table %q is not a valid SQL identifier", table)
	}
}

// checkSchemaPath validates the check path and warns when the file does not
// exist yet. It returns the path to keep in the description.
func (r *Resolver) checkSchemaPath(model, check string) string {
	if check == "" {
		return ""
	}

	if strings.TrimSpace(check) == "" || strings.ContainsAny(check, " \t\r\n") {
		r.fail("invalid_check", model, "check", "check: path/to/schema.sql",
			"check must be a single path, got %q", check)

		return ""
	}

	path := check
	if !filepath.IsAbs(path) && r.pkg.Dir != "" {
		path = filepath.Join(r.pkg.Dir, path)
	}

	if _, err := os.Stat(path); err != nil {
		r.plan.Diagnostics.AddWarning("missing_check_file",
			fmt.Sprintf("schema file %s not found; the generated check test will fail until it exists", check),
			model, "check")
	}

	return check
}

func (r *Resolver) resolveField(tm *mapping.TypeMapping, f *analyze.FieldInfo, kind RecordKind) (FieldDescription, bool) {
	fd := FieldDescription{
		FieldName:  f.Name,
		ColumnName: f.Name,
		Type:       f.Type,
		Source:     SourceFieldName,
	}

	ok := true

	var bind, extract string

	if raw, has := f.SQLTag(); has {
		tag, err := parseTag(raw)
		if err != nil {
			r.fail("invalid_tag", tm.Type, f.Name, `sql:"column[,bind=Fn][,extract=Fn]"`,
				"malformed sql tag %q: %v", raw, err)

			ok = false
		}

		if tag.Column != "" {
			fd.ColumnName = tag.Column
			fd.Source = SourceTag
		}

		bind, extract = tag.Bind, tag.Extract
	}

	if ym, has := tm.Fields[f.Name]; has {
		if ym.Column != "" {
			fd.ColumnName = ym.Column
			fd.Source = SourceYAML
		}

		if ym.Bind != "" {
			bind = ym.Bind
		}

		if ym.Extract != "" {
			extract = ym.Extract
		}
	}

	if !columnRe.MatchString(fd.ColumnName) {
		r.fail("invalid_column", tm.Type, f.Name, "columns match [A-Za-z][A-Za-z0-9_]*",
			"column %q is not a valid SQL identifier", fd.ColumnName)

		ok = false
	}

	// Records are never written; a tag's bind function is ignored.
	if bind != "" && kind == KindRecord {
		r.plan.Diagnostics.AddInfo("bind_ignored",
			fmt.Sprintf("records are never written; bind function %s is ignored", bind), tm.Type, f.Name)
	}

	if bind != "" && kind == KindModel {
		ref, valid := r.resolveFunc(tm.Type, f, "bind", bind)
		fd.Bind = ref
		ok = ok && valid
	}

	if extract != "" {
		ref, valid := r.resolveFunc(tm.Type, f, "extract", extract)
		fd.Extract = ref
		ok = ok && valid
	}

	r.checkBindable(tm.Type, &fd, kind)

	return fd, ok
}

// resolveFunc parses a bind/extract reference and, when the function can be
// seen, checks its signature against the field type.
func (r *Resolver) resolveFunc(model string, f *analyze.FieldInfo, role, raw string) (*FuncRef, bool) {
	want := r.stringer.BindSignature(f.Type)
	check := analyze.CheckBind

	if role == "extract" {
		want = r.stringer.ExtractSignature(f.Type)
		check = analyze.CheckExtract
	}

	ref, err := ParseFuncRef(raw)
	if err != nil {
		r.fail("invalid_"+role, model, f.Name, role+": FuncName or import/path.FuncName", "%s function %q %v", role, raw, err)
		return nil, false
	}

	pkg := r.pkg
	if !ref.IsLocal(r.pkg.Path) {
		pkg = r.graph.Packages[ref.PkgPath]
	}

	if ref.PkgPath == r.pkg.Path {
		ref.PkgPath = ""
	}

	// Functions of packages outside the graph are checked by the compiler.
	if pkg == nil {
		return &ref, true
	}

	if ref.PkgPath != "" {
		ref.PkgName = pkg.Name
	}

	sig, found := pkg.Func(ref.Name)
	if !found {
		hint := match.Hint(ref.Name, funcNames(pkg))
		if hint == "" {
			hint = "declare " + want
		}

		r.fail("unknown_"+role, model, f.Name, hint,
			"%s function %s not found in package %s", role, ref.Name, pkg.Path)

		return nil, false
	}

	if err := check(sig, f.Type.GoType); err != nil {
		r.fail(role+"_signature", model, f.Name, want, "%s function %s: %v", role, ref.Name, err)
		return nil, false
	}

	return &ref, true
}

// checkBindable warns about fields that database/sql is unlikely to convert
// natively.
func (r *Resolver) checkBindable(model string, fd *FieldDescription, kind RecordKind) {
	if fd.Type == nil || fd.Type.GoType == nil {
		return
	}

	if fd.Extract != nil && (fd.Bind != nil || kind == KindRecord) {
		return
	}

	if implementsSQL(fd.Type.GoType) {
		return
	}

	switch fd.Type.Kind {
	case analyze.TypeKindStruct, analyze.TypeKindMap, analyze.TypeKindInterface, analyze.TypeKindUnknown:
		r.plan.Diagnostics.AddWarning("not_natively_bindable",
			fmt.Sprintf("%s field may not convert natively; declare bind and extract functions",
				fd.Type.Kind), model, fd.FieldName)
	}
}

// implementsSQL reports whether t or *t has a Value or Scan method.
func implementsSQL(t types.Type) bool {
	for _, typ := range []types.Type{t, types.NewPointer(t)} {
		ms := types.NewMethodSet(typ)
		for i := range ms.Len() {
			switch ms.At(i).Obj().Name() {
			case "Value", "Scan":
				return true
			}
		}
	}

	return false
}

func (r *Resolver) checkDuplicateColumns(rec *RecordDescription) {
	owner := make(map[string]string, len(rec.Fields))

	for _, f := range rec.Fields {
		if prev, ok := owner[f.ColumnName]; ok {
			r.fail("duplicate_column", rec.Name, f.FieldName, "rename one of the columns",
				"column %q is already mapped by field %s", f.ColumnName, prev)

			continue
		}

		owner[f.ColumnName] = f.FieldName
	}
}

func (r *Resolver) resolveEnum(em *mapping.EnumMapping) (EnumDescription, bool) {
	info := r.lookup(em.Type)
	if info == nil {
		r.fail("type_not_found", em.Type, "", r.typeHint(em.Type), "type %s not found in package %s", em.Type, r.pkg.Path)
		return EnumDescription{}, false
	}

	if info.IsGeneric() {
		r.fail("type_parameters", em.Type, "", "remove the type parameters", "generic types cannot be mapped")
		return EnumDescription{}, false
	}

	if !info.IsInteger() || isWideUnsigned(info.GoType) {
		r.fail("not_integer_enum", em.Type, "", "type "+em.Type+" int32",
			"enums need an integer underlying type that fits in int64")

		return EnumDescription{}, false
	}

	consts := r.pkg.Consts[em.Type]
	if len(consts) == 0 {
		r.fail("enum_no_constants", em.Type, "", "const X "+em.Type+" = 1",
			"enum declares no constants")

		return EnumDescription{}, false
	}

	return EnumDescription{Name: em.Type, PkgPath: r.pkg.Path, Constants: consts}, true
}

func isWideUnsigned(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && (b.Kind() == types.Uint64 || b.Kind() == types.Uintptr)
}
