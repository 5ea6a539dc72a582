package gen

import "text/template"

// Template for model and record files
var recordTemplate = template.Must(template.New("record").Parse(`// Code generated by rowcaster. DO NOT EDIT.

package {{.PackageName}}

{{.Imports}}
var {{.VarPrefix}}Meta = sqlrow.ModelMeta{
	Model:   {{printf "%q" .Name}},
{{- if .Table}}
	Table:   {{printf "%q" .Table}},
{{- end}}
	Fields:  []string{ {{- .FieldList -}} },
	Columns: []string{ {{- .ColumnList -}} },
}
{{if .IsModel}}
var {{.VarPrefix}}InsertSQL = sqlrow.Statements{
{{- range .Statements}}
	sqlrow.{{.Policy}}: {{.SQL}},
{{- end}}
}

var _ sqlrow.Model = (*{{.Name}})(nil)
{{end}}
// {{.Name}}Meta returns the mapping metadata of {{.Name}}.
func {{.Name}}Meta() sqlrow.ModelMeta {
	return {{.VarPrefix}}Meta
}
{{if .IsModel}}
// Meta returns the mapping metadata of {{.Name}}.
func (m *{{.Name}}) Meta() sqlrow.ModelMeta {
	return {{.VarPrefix}}Meta
}
{{end}}
// Decode{{.Name}} decodes the current row into a {{.Name}}. On failure the zero
// {{.Name}} is returned with a *sqlrow.DecodeError.
func Decode{{.Name}}(row *sqlrow.Row) ({{.Name}}, error) {
	var out {{.Name}}
{{range .Fields}}
	if err := {{.DecodeCall}}; err != nil {
		return {{$.Name}}{}, &sqlrow.DecodeError{Field: {{.Name}}, Column: {{.Column}}, Err: err}
	}
{{end}}
	return out, nil
}
{{- if .IsModel}}

// Params returns the named parameters of m in column order. Plain fields
// are borrowed from m; bind fields own their converted value.
func (m *{{.Name}}) Params() (sqlrow.Parameters, error) {
{{- if .HasBind}}{{range .BindFields}}
	{{.BindVar}}, err := {{.BindCall}}
	if err != nil {
		return nil, &sqlrow.EncodeError{Field: {{.Name}}, Err: err}
	}
{{end}}{{end}}
	return sqlrow.Parameters{
{{- range .Fields}}
		{{.ParamExpr}},
{{- end}}
	}, nil
}

// Bind returns the insert statement for policy together with the parameters
// of m.
func (m *{{.Name}}) Bind(policy sqlrow.OnConflict) (sqlrow.BoundStatement, error) {
	params, err := m.Params()
	if err != nil {
		return sqlrow.BoundStatement{}, err
	}

	return sqlrow.BoundStatement{
		SQL:    {{.VarPrefix}}InsertSQL.For(policy),
		Policy: policy,
		Params: params,
	}, nil
}

// Insert writes m to {{.Table}}. Constraint failures abort the statement.
func (m *{{.Name}}) Insert(ctx context.Context, conn sqlrow.Execer) error {
	return m.InsertOr(ctx, conn, sqlrow.Abort)
}

// InsertOr writes m to {{.Table}}, resolving constraint failures with policy.
func (m *{{.Name}}) InsertOr(ctx context.Context, conn sqlrow.Execer, policy sqlrow.OnConflict) error {
	stmt, err := m.Bind(policy)
	if err != nil {
		return err
	}

	return stmt.Exec(ctx, conn)
}
{{- end}}
`))

// Template for the schema conformance test of a model
var checkTemplate = template.Must(template.New("check").Parse(`// Code generated by rowcaster. DO NOT EDIT.

package {{.PackageName}}

{{.Imports}}
func Test{{.Name}}SchemaMatches(t *testing.T) {
	if err := sqlrow.CheckSchemaFile(context.Background(), {{.Path}}, {{.Name}}Meta()); err != nil {
		t.Fatal(err)
	}
}
`))

// Template for integer enums
var enumTemplate = template.Must(template.New("enum").Parse(`// Code generated by rowcaster. DO NOT EDIT.

package {{.PackageName}}

{{.Imports}}
// Value implements driver.Valuer. A {{.Name}} is stored as an integer.
func (e {{.Name}}) Value() (driver.Value, error) {
	return int64(e), nil
}

// Scan implements sql.Scanner. Only declared {{.Name}} constants are accepted.
func (e *{{.Name}}) Scan(src any) error {
	return sqlrow.ScanEnum(e, src, valid{{.Name}})
}

func valid{{.Name}}(v {{.Name}}) bool {
	switch v {
	case {{.Constants}}:
		return true
	default:
		return false
	}
}
`))
