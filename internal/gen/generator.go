package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/sync/errgroup"

	"rowcaster/internal/common"
	"rowcaster/internal/plan"
	"rowcaster/sqlrow"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputDir is where unformatted debug output goes when formatting
	// fails. Generated files themselves always belong to the model package.
	OutputDir string
	// Suffix is appended to the snake_case type name of each file.
	Suffix string
	// CheckTests enables generation of schema conformance tests.
	CheckTests bool
	// Workers bounds the number of files rendered concurrently.
	Workers int
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Suffix:     "_sqlrow",
		CheckTests: true,
		Workers:    4,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
	plan   *plan.Plan
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "person_sqlrow.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// ErrInvalidPlan is returned when the plan still holds configuration errors.
var ErrInvalidPlan = errors.New("plan has configuration errors")

type job func() (*GeneratedFile, error)

// Generate generates Go code from a Plan. Files are rendered concurrently
// but returned in plan order: models and records, each followed by its
// check test, then enums.
func (g *Generator) Generate(ctx context.Context, p *plan.Plan) ([]GeneratedFile, error) {
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}

	g.plan = p

	var jobs []job

	for i := range p.Records {
		rec := &p.Records[i]
		jobs = append(jobs, func() (*GeneratedFile, error) { return g.generateRecord(rec) })

		if g.config.CheckTests && rec.Kind == plan.KindModel && rec.SchemaCheck != "" {
			jobs = append(jobs, func() (*GeneratedFile, error) { return g.generateCheckTest(rec) })
		}
	}

	for i := range p.Enums {
		enum := &p.Enums[i]
		jobs = append(jobs, func() (*GeneratedFile, error) { return g.generateEnum(enum) })
	}

	files := make([]GeneratedFile, len(jobs))

	eg, ctx := errgroup.WithContext(ctx)
	if g.config.Workers > 0 {
		eg.SetLimit(g.config.Workers)
	}

	for i, run := range jobs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			f, err := run()
			if err != nil {
				return err
			}

			files[i] = *f

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}

// filename returns the generated file name for a type.
func (g *Generator) filename(typeName string) string {
	return common.SnakeFile(typeName) + g.config.Suffix + ".go"
}

// recordData holds everything the record template needs.
type recordData struct {
	PackageName string
	Imports     string
	Name        string
	VarPrefix   string
	Table       string
	IsModel     bool
	HasBind     bool
	FieldList   string
	ColumnList  string
	Statements  []statementData
	Fields      []fieldData
	BindFields  []fieldData
}

type statementData struct {
	Policy string
	SQL    string
}

type fieldData struct {
	Name       string
	Column     string
	DecodeCall string
	ParamExpr  string
	BindVar    string
	BindCall   string
}

func (g *Generator) generateRecord(rec *plan.RecordDescription) (*GeneratedFile, error) {
	imports := newImportSet()
	rt := imports.add(RuntimeImport, "sqlrow")

	isModel := rec.Kind == plan.KindModel
	if isModel {
		imports.add("context", "context")
	}

	cm := plan.MapColumns(rec)

	data := &recordData{
		PackageName: rec.PkgName,
		Name:        rec.Name,
		VarPrefix:   common.LowerFirst(rec.Name),
		Table:       rec.Table,
		IsModel:     isModel,
		HasBind:     isModel && cm.HasBind(),
		FieldList:   quoteList(cm.Fields()),
		ColumnList:  quoteList(cm.Columns()),
	}

	if isModel {
		stmts := sqlrow.NewStatements(rec.Table, cm.Columns())
		for _, policy := range sqlrow.Policies() {
			data.Statements = append(data.Statements, statementData{
				Policy: policy.String(),
				SQL:    strconv.Quote(stmts.For(policy)),
			})
		}
	}

	for _, c := range cm {
		fd := fieldData{
			Name:   strconv.Quote(c.Field),
			Column: strconv.Quote(c.Column),
		}

		if c.Extract != nil {
			fd.DecodeCall = fmt.Sprintf("%s.Extract(row, %s, &out.%s, %s)",
				rt, fd.Column, c.Field, g.funcExpr(imports, rec, *c.Extract))
		} else {
			fd.DecodeCall = fmt.Sprintf("%s.Into(row, %s, &out.%s)", rt, fd.Column, c.Field)
		}

		token := strconv.Quote(sqlrow.ParamToken(c.Column))
		if c.Bind != nil {
			fd.BindVar = "v" + c.Field
			fd.BindCall = fmt.Sprintf("%s(m.%s)", g.funcExpr(imports, rec, *c.Bind), c.Field)
			fd.ParamExpr = fmt.Sprintf("%s.Own(%s, %s)", rt, token, fd.BindVar)
			data.BindFields = append(data.BindFields, fd)
		} else {
			fd.ParamExpr = fmt.Sprintf("%s.Borrow(%s, &m.%s)", rt, token, c.Field)
		}

		data.Fields = append(data.Fields, fd)
	}

	data.Imports = imports.block()

	return g.render(recordTemplate, g.filename(rec.Name), data)
}

// funcExpr returns the expression calling ref from the package of rec.
func (g *Generator) funcExpr(imports *importSet, rec *plan.RecordDescription, ref plan.FuncRef) string {
	if ref.IsLocal(rec.PkgPath) {
		return ref.Name
	}

	name := ref.PkgName
	if name == "" && g.plan != nil && g.plan.Package != nil && g.plan.Package.Path == ref.PkgPath {
		name = g.plan.Package.Name
	}

	return imports.add(ref.PkgPath, name) + "." + ref.Name
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}

	return strings.Join(quoted, ", ")
}

type checkData struct {
	PackageName string
	Imports     string
	Name        string
	Path        string
}

func (g *Generator) generateCheckTest(rec *plan.RecordDescription) (*GeneratedFile, error) {
	imports := newImportSet()
	imports.add(RuntimeImport, "sqlrow")
	imports.add("context", "context")
	imports.add("testing", "testing")

	data := &checkData{
		PackageName: rec.PkgName,
		Imports:     imports.block(),
		Name:        rec.Name,
		Path:        strconv.Quote(rec.SchemaCheck),
	}

	filename := strings.TrimSuffix(g.filename(rec.Name), ".go") + "_check_test.go"

	return g.render(checkTemplate, filename, data)
}

type enumData struct {
	PackageName string
	Imports     string
	Name        string
	Constants   string
}

func (g *Generator) generateEnum(enum *plan.EnumDescription) (*GeneratedFile, error) {
	imports := newImportSet()
	imports.add(RuntimeImport, "sqlrow")
	imports.add("database/sql/driver", "driver")

	data := &enumData{
		PackageName: g.plan.Package.Name,
		Imports:     imports.block(),
		Name:        enum.Name,
		Constants:   strings.Join(enum.Constants, ", "),
	}

	return g.render(enumTemplate, g.filename(enum.Name), data)
}

// render executes tmpl and formats the result.
func (g *Generator) render(tmpl *template.Template, filename string, data any) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template for %s: %w", filename, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes())
		}

		return nil, fmt.Errorf("formatting %s: %w", filename, err)
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}
