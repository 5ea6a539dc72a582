package plan

import (
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowcaster/internal/analyze"
	"rowcaster/internal/mapping"
	"rowcaster/sqlrow"
)

const testPkg = "example.com/models"

var (
	stringT = types.Typ[types.String]
	intT    = types.Typ[types.Int]
	boolT   = types.Typ[types.Bool]
	uint16T = types.Typ[types.Uint16]
	errT    = types.Universe.Lookup("error").Type()
	anyT    = types.Universe.Lookup("any").Type()

	valueRefT = types.NewNamed(
		types.NewTypeName(token.NoPos, types.NewPackage("rowcaster/sqlrow", "sqlrow"), "ValueRef", nil),
		types.NewStruct(nil, nil), nil)
)

func tuple(ts ...types.Type) *types.Tuple {
	vars := make([]*types.Var, len(ts))
	for i, t := range ts {
		vars[i] = types.NewVar(token.NoPos, nil, "", t)
	}

	return types.NewTuple(vars...)
}

func sig(params []types.Type, results ...types.Type) *types.Signature {
	return types.NewSignatureType(nil, nil, nil, tuple(params...), tuple(results...), false)
}

func basic(t types.Type) *analyze.TypeInfo {
	return &analyze.TypeInfo{Kind: analyze.TypeKindBasic, GoType: t}
}

func fld(name string, t types.Type, tag string) analyze.FieldInfo {
	return analyze.FieldInfo{
		Name:     name,
		Exported: token.IsExported(name),
		Type:     basic(t),
		Tag:      reflectTag(tag),
	}
}

func newGraph(t *testing.T) *analyze.TypeGraph {
	t.Helper()

	g := analyze.NewTypeGraph()
	g.Packages[testPkg] = &analyze.PackageInfo{
		Path: testPkg,
		Name: "models",
		Dir:  t.TempDir(),
		Funcs: map[string]*types.Signature{
			"BindPath":    sig([]types.Type{stringT}, anyT, errT),
			"ExtractPath": sig([]types.Type{valueRefT}, stringT, errT),
			"BindInt":     sig([]types.Type{intT}, anyT, errT),
			"NoError":     sig([]types.Type{stringT}, anyT),
		},
		Consts: map[string][]string{},
	}

	return g
}

func addType(g *analyze.TypeGraph, info *analyze.TypeInfo) {
	info.ID.PkgPath = testPkg
	g.Types[info.ID] = info
	pkg := g.Packages[testPkg]
	pkg.Types = append(pkg.Types, info.ID)
}

func addStruct(g *analyze.TypeGraph, name string, fields ...analyze.FieldInfo) {
	addType(g, &analyze.TypeInfo{
		ID:     analyze.TypeID{Name: name},
		Kind:   analyze.TypeKindStruct,
		Fields: fields,
	})
}

func resolve(t *testing.T, g *analyze.TypeGraph, mf *mapping.MappingFile) *Plan {
	t.Helper()

	p, err := NewResolver(g, mf, testPkg).Resolve()
	require.NoError(t, err)

	return p
}

func TestResolve_NoOverrides(t *testing.T) {
	g := newGraph(t)
	addStruct(g, "person",
		fld("name", stringT, ""),
		fld("age", uint16T, ""),
		fld("alive", boolT, ""),
	)

	p := resolve(t, g, &mapping.MappingFile{
		Models: []mapping.TypeMapping{{Type: "person", Table: "people"}},
	})
	require.NoError(t, p.Err(), spew.Sdump(p.Diagnostics))
	require.Len(t, p.Records, 1)

	rec := p.Records[0]
	assert.Equal(t, "people", rec.Table)
	assert.Equal(t, KindModel, rec.Kind)
	assert.Equal(t, "models", rec.PkgName)

	cm := MapColumns(&rec)
	assert.Equal(t, []string{"name", "age", "alive"}, cm.Columns())
	assert.Equal(t, []string{"name", "age", "alive"}, cm.Fields())
	assert.False(t, cm.HasBind())
	assert.Empty(t, cm.FuncRefs())

	assert.Equal(t,
		"INSERT INTO people (name, age, alive) VALUES(:name, :age, :alive);",
		sqlrow.InsertSQL(rec.Table, cm.Columns(), sqlrow.Abort))
}

func TestResolve_OverridesAndConversions(t *testing.T) {
	g := newGraph(t)
	addStruct(g, "Person",
		fld("Name", stringT, `sql:"name"`),
		fld("Password", stringT, `sql:"password"`),
		fld("HomeDir", stringT, `sql:"home_dir,bind=BindPath"`),
	)

	p := resolve(t, g, &mapping.MappingFile{
		Models: []mapping.TypeMapping{{
			Type:  "Person",
			Table: "people",
			Fields: mapping.FieldMappings{
				"Password": {Column: "pwd"},
				"HomeDir":  {Extract: "ExtractPath"},
			},
		}},
	})
	require.NoError(t, p.Err())

	rec := p.Records[0]
	require.Len(t, rec.Fields, 3)

	assert.Equal(t, SourceTag, rec.Fields[0].Source)
	assert.Equal(t, "pwd", rec.Fields[1].ColumnName)
	assert.Equal(t, SourceYAML, rec.Fields[1].Source)

	home := rec.Fields[2]
	assert.Equal(t, "home_dir", home.ColumnName)
	require.NotNil(t, home.Bind)
	require.NotNil(t, home.Extract)
	assert.Equal(t, "BindPath", home.Bind.String())
	assert.Equal(t, "ExtractPath", home.Extract.String())

	cm := MapColumns(&rec)
	assert.Equal(t, []string{"name", "pwd", "home_dir"}, cm.Columns())
	assert.True(t, cm.HasBind())
	assert.Equal(t, []FuncRef{{Name: "BindPath"}, {Name: "ExtractPath"}}, cm.FuncRefs())
}

func TestResolve_ExternalFuncRef(t *testing.T) {
	g := newGraph(t)
	addStruct(g, "Event", fld("At", stringT, `sql:"at,bind=example.com/conv.BindTime"`))

	p := resolve(t, g, &mapping.MappingFile{
		Models: []mapping.TypeMapping{{Type: "Event", Table: "events"}},
	})
	require.NoError(t, p.Err())

	bind := p.Records[0].Fields[0].Bind
	require.NotNil(t, bind)
	assert.Equal(t, FuncRef{PkgPath: "example.com/conv", Name: "BindTime"}, *bind)
	assert.False(t, bind.IsLocal(testPkg))
}

func TestResolve_LoadedFuncPackageName(t *testing.T) {
	g := newGraph(t)
	g.Packages["example.com/lib/go-conv"] = &analyze.PackageInfo{
		Path: "example.com/lib/go-conv",
		Name: "goconv",
		Funcs: map[string]*types.Signature{
			"BindTime": sig([]types.Type{stringT}, anyT, errT),
		},
	}
	addStruct(g, "Event", fld("At", stringT, `sql:"at,bind=example.com/lib/go-conv.BindTime"`))

	p := resolve(t, g, &mapping.MappingFile{
		Models: []mapping.TypeMapping{{Type: "Event", Table: "events"}},
	})
	require.NoError(t, p.Err())

	assert.Equal(t,
		FuncRef{PkgPath: "example.com/lib/go-conv", Name: "BindTime", PkgName: "goconv"},
		*p.Records[0].Fields[0].Bind)
}

func TestResolve_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *analyze.TypeGraph)
		tm    mapping.TypeMapping
		code  string
	}{
		{
			name:  "missing table",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", stringT, "")) },
			tm:    mapping.TypeMapping{Type: "T"},
			code:  "missing_table",
		},
		{
			name:  "invalid table",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", stringT, "")) },
			tm:    mapping.TypeMapping{Type: "T", Table: "drop table"},
			code:  "invalid_table",
		},
		{
			name: "type parameters",
			setup: func(g *analyze.TypeGraph) {
				addType(g, &analyze.TypeInfo{
					ID: analyze.TypeID{Name: "T"}, Kind: analyze.TypeKindStruct, TypeParams: 1,
					Fields: []analyze.FieldInfo{fld("A", stringT, "")},
				})
			},
			tm:   mapping.TypeMapping{Type: "T", Table: "t"},
			code: "type_parameters",
		},
		{
			name: "interface",
			setup: func(g *analyze.TypeGraph) {
				addType(g, &analyze.TypeInfo{ID: analyze.TypeID{Name: "T"}, Kind: analyze.TypeKindInterface})
			},
			tm:   mapping.TypeMapping{Type: "T", Table: "t"},
			code: "union_like",
		},
		{
			name: "not a struct",
			setup: func(g *analyze.TypeGraph) {
				addType(g, &analyze.TypeInfo{ID: analyze.TypeID{Name: "T"}, Kind: analyze.TypeKindAlias})
			},
			tm:   mapping.TypeMapping{Type: "T", Table: "t"},
			code: "not_struct",
		},
		{
			name:  "empty struct",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T") },
			tm:    mapping.TypeMapping{Type: "T", Table: "t"},
			code:  "empty_struct",
		},
		{
			name: "embedded field",
			setup: func(g *analyze.TypeGraph) {
				f := fld("Base", stringT, "")
				f.Embedded = true
				addStruct(g, "T", f)
			},
			tm:   mapping.TypeMapping{Type: "T", Table: "t"},
			code: "embedded_field",
		},
		{
			name:  "blank field",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("_", stringT, ""), fld("A", stringT, "")) },
			tm:    mapping.TypeMapping{Type: "T", Table: "t"},
			code:  "blank_field",
		},
		{
			name:  "type not found",
			setup: func(*analyze.TypeGraph) {},
			tm:    mapping.TypeMapping{Type: "Nope", Table: "t"},
			code:  "type_not_found",
		},
		{
			name:  "invalid tag column",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", stringT, `sql:"1st"`)) },
			tm:    mapping.TypeMapping{Type: "T", Table: "t"},
			code:  "invalid_column",
		},
		{
			name:  "invalid yaml column",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", stringT, "")) },
			tm: mapping.TypeMapping{Type: "T", Table: "t", Fields: mapping.FieldMappings{
				"A": {Column: "a-b"},
			}},
			code: "invalid_column",
		},
		{
			name:  "empty tag",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", stringT, `sql:""`)) },
			tm:    mapping.TypeMapping{Type: "T", Table: "t"},
			code:  "invalid_tag",
		},
		{
			name:  "unknown tag option",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", stringT, `sql:"a,omitempty=1"`)) },
			tm:    mapping.TypeMapping{Type: "T", Table: "t"},
			code:  "invalid_tag",
		},
		{
			name:  "repeated tag option",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", stringT, `sql:"a,bind=BindPath,bind=BindPath"`)) },
			tm:    mapping.TypeMapping{Type: "T", Table: "t"},
			code:  "invalid_tag",
		},
		{
			name:  "option without value",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", stringT, `sql:"a,bind="`)) },
			tm:    mapping.TypeMapping{Type: "T", Table: "t"},
			code:  "invalid_tag",
		},
		{
			name:  "invalid bind reference",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", stringT, "")) },
			tm: mapping.TypeMapping{Type: "T", Table: "t", Fields: mapping.FieldMappings{
				"A": {Bind: "Bind Path"},
			}},
			code: "invalid_bind",
		},
		{
			name:  "invalid extract reference",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", stringT, "")) },
			tm: mapping.TypeMapping{Type: "T", Table: "t", Fields: mapping.FieldMappings{
				"A": {Extract: "example.com/conv."},
			}},
			code: "invalid_extract",
		},
		{
			name:  "unknown extract function",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", stringT, `sql:"a,extract=Missing"`)) },
			tm:    mapping.TypeMapping{Type: "T", Table: "t"},
			code:  "unknown_extract",
		},
		{
			name:  "bind parameter type",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", stringT, `sql:"a,bind=BindInt"`)) },
			tm:    mapping.TypeMapping{Type: "T", Table: "t"},
			code:  "bind_signature",
		},
		{
			name:  "bind without error result",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", stringT, `sql:"a,bind=NoError"`)) },
			tm:    mapping.TypeMapping{Type: "T", Table: "t"},
			code:  "bind_signature",
		},
		{
			name:  "extract result type",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", intT, `sql:"a,extract=ExtractPath"`)) },
			tm:    mapping.TypeMapping{Type: "T", Table: "t"},
			code:  "extract_signature",
		},
		{
			name:  "multi-line check",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", stringT, "")) },
			tm:    mapping.TypeMapping{Type: "T", Table: "t", Check: "a.sql\nb.sql"},
			code:  "invalid_check",
		},
		{
			name: "duplicate column",
			setup: func(g *analyze.TypeGraph) {
				addStruct(g, "T", fld("A", stringT, `sql:"x"`), fld("B", stringT, `sql:"x"`))
			},
			tm:   mapping.TypeMapping{Type: "T", Table: "t"},
			code: "duplicate_column",
		},
		{
			name:  "unknown yaml field",
			setup: func(g *analyze.TypeGraph) { addStruct(g, "T", fld("A", stringT, "")) },
			tm: mapping.TypeMapping{Type: "T", Table: "t", Fields: mapping.FieldMappings{
				"Missing": {Column: "m"},
			}},
			code: "unknown_field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGraph(t)
			tt.setup(g)

			p := resolve(t, g, &mapping.MappingFile{Models: []mapping.TypeMapping{tt.tm}})
			assert.Contains(t, p.Diagnostics.Codes(), tt.code, spew.Sdump(p.Diagnostics.Errors))
			assert.Empty(t, p.Records, "no description for an invalid type")

			err := p.Err()
			require.Error(t, err)

			var ce *ConfigurationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.tm.Type, ce.Model)

			for _, e := range p.ConfigErrors {
				assert.NotEmpty(t, e.Hint, "%s has no hint", e.Code)
			}
		})
	}
}

func TestResolve_EnumErrorsCarryHints(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *analyze.TypeGraph)
		code  string
	}{
		{
			name:  "type not found",
			setup: func(*analyze.TypeGraph) {},
			code:  "type_not_found",
		},
		{
			name: "type parameters",
			setup: func(g *analyze.TypeGraph) {
				addType(g, &analyze.TypeInfo{ID: analyze.TypeID{Name: "E"}, Kind: analyze.TypeKindBasic, GoType: intT, TypeParams: 1})
			},
			code: "type_parameters",
		},
		{
			name: "not an integer",
			setup: func(g *analyze.TypeGraph) {
				addType(g, &analyze.TypeInfo{ID: analyze.TypeID{Name: "E"}, Kind: analyze.TypeKindBasic, GoType: stringT})
			},
			code: "not_integer_enum",
		},
		{
			name: "no constants",
			setup: func(g *analyze.TypeGraph) {
				addType(g, &analyze.TypeInfo{ID: analyze.TypeID{Name: "E"}, Kind: analyze.TypeKindBasic, GoType: intT})
			},
			code: "enum_no_constants",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGraph(t)
			tt.setup(g)

			p := resolve(t, g, &mapping.MappingFile{Enums: []mapping.EnumMapping{{Type: "E"}}})
			require.Len(t, p.ConfigErrors, 1, spew.Sdump(p.Diagnostics.Errors))
			assert.Equal(t, tt.code, p.ConfigErrors[0].Code)
			assert.NotEmpty(t, p.ConfigErrors[0].Hint)
			assert.Empty(t, p.Enums)
		})
	}
}

func TestResolve_MissingTableHint(t *testing.T) {
	g := newGraph(t)
	addStruct(g, "T", fld("A", stringT, ""))

	p := resolve(t, g, &mapping.MappingFile{Models: []mapping.TypeMapping{{Type: "T"}}})
	require.Len(t, p.ConfigErrors, 1)

	ce := p.ConfigErrors[0]
	assert.Equal(t, "table", ce.Attribute)
	assert.Equal(t, "table: <table_name>", ce.Hint)
	assert.Equal(t, []string{"table: <table_name>"}, p.Diagnostics.Errors[0].Suggestions)
	assert.Equal(t, "T.table: no table declared (hint: table: <table_name>)", ce.Error())
}

func TestResolve_DidYouMeanHints(t *testing.T) {
	g := newGraph(t)
	addStruct(g, "Person", fld("Password", stringT, ""), fld("Home", stringT, ""))

	p := resolve(t, g, &mapping.MappingFile{Models: []mapping.TypeMapping{
		{Type: "Persn", Table: "people"},
		{Type: "Person", Table: "people", Fields: mapping.FieldMappings{
			"Pasword": {Column: "pwd"},
			"Home":    {Bind: "BindPth"},
		}},
	}})

	hints := map[string]string{}
	for _, ce := range p.ConfigErrors {
		hints[ce.Code] = ce.Hint
	}

	assert.Equal(t, map[string]string{
		"type_not_found": "did you mean Person?",
		"unknown_bind":   "did you mean BindPath?",
		"unknown_field":  "did you mean Password?",
	}, hints)
}

func TestResolve_UnknownFieldListsFieldsWithoutCloseMatch(t *testing.T) {
	g := newGraph(t)
	addStruct(g, "T", fld("A", stringT, ""), fld("B", stringT, ""))

	p := resolve(t, g, &mapping.MappingFile{Models: []mapping.TypeMapping{{Type: "T", Table: "t", Fields: mapping.FieldMappings{
		"Zebra": {Column: "z"},
	}}}})
	require.Len(t, p.ConfigErrors, 1)
	assert.Equal(t, "fields: A, B", p.ConfigErrors[0].Hint)
}

func TestResolve_Records(t *testing.T) {
	g := newGraph(t)
	addStruct(g, "NameAge", fld("Name", stringT, `sql:"name,bind=BindInt"`), fld("Age", intT, `sql:"age"`))

	p := resolve(t, g, &mapping.MappingFile{Records: []mapping.TypeMapping{{Type: "NameAge"}}})
	require.NoError(t, p.Err())
	require.Len(t, p.Records, 1)

	rec := p.Records[0]
	assert.Equal(t, KindRecord, rec.Kind)
	assert.Empty(t, rec.Table)
	assert.Nil(t, rec.Fields[0].Bind, "records never bind")
	assert.Empty(t, p.Models())

	require.Len(t, p.Diagnostics.Infos, 1)
	assert.Equal(t, "bind_ignored", p.Diagnostics.Infos[0].Code)
	assert.Equal(t, "Name", p.Diagnostics.Infos[0].FieldPath)
}

func TestResolve_Warnings(t *testing.T) {
	g := newGraph(t)

	address := &analyze.TypeInfo{
		ID:     analyze.TypeID{PkgPath: testPkg, Name: "Address"},
		Kind:   analyze.TypeKindStruct,
		GoType: types.NewStruct(nil, nil),
	}

	addStruct(g, "T",
		fld("A", stringT, ""),
		analyze.FieldInfo{Name: "Addr", Exported: true, Type: address},
	)

	p := resolve(t, g, &mapping.MappingFile{
		Models: []mapping.TypeMapping{{Type: "T", Table: "t", Check: "schema.sql"}},
	})
	require.NoError(t, p.Err())
	require.Len(t, p.Records, 1)
	assert.Equal(t, "schema.sql", p.Records[0].SchemaCheck)

	var codes []string
	for _, w := range p.Diagnostics.Warnings {
		codes = append(codes, w.Code)
	}

	assert.ElementsMatch(t, []string{"missing_check_file", "not_natively_bindable"}, codes)

	// Once the file exists the warning goes away.
	dir := g.Packages[testPkg].Dir
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.sql"), []byte("CREATE TABLE t (A TEXT);"), 0o644))

	p = resolve(t, g, &mapping.MappingFile{
		Models: []mapping.TypeMapping{{Type: "T", Table: "t", Check: "schema.sql"}},
	})
	require.Len(t, p.Diagnostics.Warnings, 1)
	assert.Equal(t, "not_natively_bindable", p.Diagnostics.Warnings[0].Code)
}

func TestResolve_Enums(t *testing.T) {
	g := newGraph(t)

	colorT := types.NewNamed(
		types.NewTypeName(token.NoPos, types.NewPackage(testPkg, "models"), "Color", nil),
		types.Typ[types.Uint8], nil)
	addType(g, &analyze.TypeInfo{ID: analyze.TypeID{Name: "Color"}, Kind: analyze.TypeKindAlias, GoType: colorT})
	g.Packages[testPkg].Consts["Color"] = []string{"Red", "Green"}

	nameT := types.NewNamed(
		types.NewTypeName(token.NoPos, types.NewPackage(testPkg, "models"), "Name", nil),
		stringT, nil)
	addType(g, &analyze.TypeInfo{ID: analyze.TypeID{Name: "Name"}, Kind: analyze.TypeKindAlias, GoType: nameT})

	sizeT := types.NewNamed(
		types.NewTypeName(token.NoPos, types.NewPackage(testPkg, "models"), "Size", nil),
		types.Typ[types.Int32], nil)
	addType(g, &analyze.TypeInfo{ID: analyze.TypeID{Name: "Size"}, Kind: analyze.TypeKindAlias, GoType: sizeT})

	p := resolve(t, g, &mapping.MappingFile{
		Enums: []mapping.EnumMapping{{Type: "Color"}, {Type: "Name"}, {Type: "Size"}, {Type: "Nope"}},
	})

	require.Len(t, p.Enums, 1)
	assert.Equal(t, EnumDescription{Name: "Color", PkgPath: testPkg, Constants: []string{"Red", "Green"}}, p.Enums[0])
	assert.Equal(t, []string{"not_integer_enum", "enum_no_constants", "type_not_found"}, p.Diagnostics.Codes())
}

func TestResolve_RequiresPackage(t *testing.T) {
	_, err := NewResolver(analyze.NewTypeGraph(), &mapping.MappingFile{}, testPkg).Resolve()
	require.Error(t, err)

	_, err = NewResolver(newGraph(t), nil, testPkg).Resolve()
	require.Error(t, err)
}

func TestResolve_PeopleExample(t *testing.T) {
	const pkgPath = "rowcaster/examples/people"

	graph, err := analyze.NewAnalyzer().LoadPackages(pkgPath)
	require.NoError(t, err)

	dir := graph.Packages[pkgPath].Dir
	mf, err := mapping.LoadFile(filepath.Join(dir, mapping.DefaultFileName))
	require.NoError(t, err)
	require.True(t, mapping.Validate(mf).IsValid())

	p, err := NewResolver(graph, mf, pkgPath).Resolve()
	require.NoError(t, err)
	require.NoError(t, p.Err(), spew.Sdump(p.Diagnostics.Errors))
	assert.Empty(t, p.Diagnostics.Warnings)

	require.Len(t, p.Records, 2)
	person := p.Records[0]
	assert.Equal(t, "Person", person.Name)
	assert.Equal(t, "schema.sql", person.SchemaCheck)

	cm := MapColumns(&person)
	assert.Equal(t, []string{"id", "name", "age", "alive", "pwd", "home_dir", "nick", "color"}, cm.Columns())
	assert.Equal(t, []FuncRef{{Name: "BindUUID"}, {Name: "ExtractUUID"}, {Name: "BindPath"}, {Name: "ExtractPath"}},
		cm.FuncRefs())

	require.Len(t, p.Enums, 1)
	assert.Equal(t, []string{"Red", "Green", "Blue"}, p.Enums[0].Constants)
}
