package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dekarrin/jellog"

	"rowcaster/internal/analyze"
	"rowcaster/internal/diagnostic"
	"rowcaster/internal/gen"
	"rowcaster/internal/mapping"
	"rowcaster/internal/plan"
	"rowcaster/sqlrow"
)

// compiled is a loaded mapping together with its resolved plan.
type compiled struct {
	mapping *mapping.MappingFile
	plan    *plan.Plan
}

// compile loads the mapping file and resolves it against its package.
// Configuration problems stay in the returned plan.
func compile(e *env) (*compiled, error) {
	e.log.Infof("Loading mapping %s...", e.opts.Mapping)

	mf, err := mapping.LoadFile(e.opts.Mapping)
	if err != nil {
		return nil, err
	}

	if e.opts.Pkg != "" {
		mf.Package = e.opts.Pkg
		if strings.HasPrefix(mf.Package, ".") {
			abs, err := filepath.Abs(mf.Package)
			if err != nil {
				return nil, fmt.Errorf("resolving --pkg: %w", err)
			}

			mf.Package = abs
		}
	}

	diags := mapping.Validate(mf)
	if err := diags.Error(); err != nil {
		logDiagnostics(e.log, diags)

		return nil, fmt.Errorf("invalid mapping: %w", err)
	}

	pattern := mf.PackagePattern()
	e.log.Debugf("Loading package %s", pattern)

	a := analyze.NewAnalyzer()
	a.GeneratedSuffix = mf.Output.Suffix + ".go"

	graph, err := a.LoadPackages(pattern)
	if err != nil {
		return nil, err
	}

	if len(graph.Packages) != 1 {
		return nil, fmt.Errorf("%w: package pattern %q matched %d packages, want exactly one",
			errUsage, pattern, len(graph.Packages))
	}

	var pkgPath string
	for path := range graph.Packages {
		pkgPath = path
	}

	p, err := plan.NewResolver(graph, mf, pkgPath).Resolve()
	if err != nil {
		return nil, err
	}

	p.Diagnostics.Merge(*diags)
	logDiagnostics(e.log, &p.Diagnostics)
	e.log.Debugf("Resolved %d models, %d records and %d enums in %s",
		len(p.Models()), len(p.Records)-len(p.Models()), len(p.Enums), pkgPath)

	return &compiled{mapping: mf, plan: p}, nil
}

// logDiagnostics logs warnings and infos; errors are reported by the
// caller.
func logDiagnostics(log jellog.Logger[string], d *diagnostic.Diagnostics) {
	for _, w := range d.Warnings {
		log.Warn(w.String())
	}

	for _, i := range d.Infos {
		log.Debug(i.String())
	}
}

// configErrors prints every configuration error of p and returns an error
// summarizing them, or nil if there are none.
func configErrors(e *env, p *plan.Plan) error {
	if len(p.ConfigErrors) == 0 {
		return nil
	}

	for _, ce := range p.ConfigErrors {
		e.log.Error(ce.Error())
	}

	return fmt.Errorf("%d configuration error(s)", len(p.ConfigErrors))
}

func runCheck(_ context.Context, e *env) error {
	c, err := compile(e)
	if err != nil {
		return err
	}

	if err := configErrors(e, c.plan); err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "%s: %d models, %d records, %d enums OK\n",
		e.opts.Mapping, len(c.plan.Models()), len(c.plan.Records)-len(c.plan.Models()), len(c.plan.Enums))

	return nil
}

func runGen(ctx context.Context, e *env) error {
	if e.opts.Watch {
		return watch(ctx, e)
	}

	_, err := generate(ctx, e)

	return err
}

// generate runs one full compile and write cycle. It returns the compiled
// mapping even when generation fails, so watch mode can keep watching.
func generate(ctx context.Context, e *env) (*compiled, error) {
	c, err := compile(e)
	if err != nil {
		return nil, err
	}

	if err := configErrors(e, c.plan); err != nil {
		return c, err
	}

	// Generated code refers to the model package unqualified, so it is
	// always written next to it.
	outDir := c.plan.Package.Dir

	cfg := gen.DefaultGeneratorConfig()
	cfg.OutputDir = outDir
	if e.opts.Out != "" {
		cfg.OutputDir = e.opts.Out
	}
	cfg.Suffix = c.mapping.Output.Suffix
	cfg.CheckTests = c.mapping.Output.CheckTestsEnabled()

	files, err := gen.NewGenerator(cfg).Generate(ctx, c.plan)
	if err != nil {
		return c, err
	}

	if e.opts.DryRun {
		for _, f := range files {
			fmt.Fprintf(e.stdout, "=== %s ===\n%s\n", f.Filename, f.Content)
		}

		return c, nil
	}

	sum, err := gen.WriteFiles(files, outDir)
	if err != nil {
		return c, err
	}

	for _, name := range sum.Written {
		e.log.Debugf("wrote %s", filepath.Join(outDir, name))
	}

	e.log.Infof("wrote %d files (%d unchanged) to %s", len(sum.Written), len(sum.Unchanged), outDir)

	return c, nil
}

var errNotConforming = errors.New("schema mismatch")

func runConform(ctx context.Context, e *env) error {
	c, err := compile(e)
	if err != nil {
		return err
	}

	if err := configErrors(e, c.plan); err != nil {
		return err
	}

	var checked, failed int

	for _, rec := range c.plan.Models() {
		if rec.SchemaCheck == "" {
			e.log.Debugf("%s has no schema check; skipping", rec.Name)
			continue
		}

		path := rec.SchemaCheck
		if !filepath.IsAbs(path) {
			path = filepath.Join(rec.Dir, path)
		}

		checked++

		err := sqlrow.CheckSchemaFile(ctx, path, modelMeta(&rec))
		if err != nil {
			failed++

			fmt.Fprintf(e.stdout, "FAIL %s: %v\n", rec.Name, err)

			continue
		}

		fmt.Fprintf(e.stdout, "ok   %s (%s)\n", rec.Name, rec.Table)
	}

	if checked == 0 {
		e.log.Warn("no model declares a schema check")
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d models", errNotConforming, failed, checked)
	}

	return nil
}

// modelMeta builds the metadata the generated code would carry for rec.
func modelMeta(rec *plan.RecordDescription) sqlrow.ModelMeta {
	cm := plan.MapColumns(rec)

	return sqlrow.ModelMeta{
		Model:   rec.Name,
		Table:   rec.Table,
		Fields:  cm.Fields(),
		Columns: cm.Columns(),
	}
}
