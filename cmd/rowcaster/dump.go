package main

import (
	"context"

	"github.com/davecgh/go-spew/spew"

	"rowcaster/internal/plan"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

type planDump struct {
	Package  string
	Records  []recordDump
	Enums    []plan.EnumDescription
	Errors   []string
	Warnings []string
	Infos    []string
}

type recordDump struct {
	Name    string
	Kind    string
	Table   string
	Check   string
	Columns plan.ColumnMapping
	// Funcs lists the conversion functions the record calls.
	Funcs []string
}

// runDump prints the resolved plan. Type information is left out; it is
// large and cyclic.
func runDump(_ context.Context, e *env) error {
	c, err := compile(e)
	if err != nil {
		return err
	}

	dumpConfig.Fdump(e.stdout, newPlanDump(c.plan))

	return nil
}

func newPlanDump(p *plan.Plan) planDump {
	d := planDump{
		Package: p.Package.Path,
		Enums:   p.Enums,
	}

	for i := range p.Records {
		rec := &p.Records[i]
		cm := plan.MapColumns(rec)

		rd := recordDump{
			Name:    rec.Name,
			Kind:    rec.Kind.String(),
			Table:   rec.Table,
			Check:   rec.SchemaCheck,
			Columns: cm,
		}

		for _, ref := range cm.FuncRefs() {
			rd.Funcs = append(rd.Funcs, ref.String())
		}

		d.Records = append(d.Records, rd)
	}

	for _, ce := range p.ConfigErrors {
		d.Errors = append(d.Errors, ce.Error())
	}

	for _, w := range p.Diagnostics.Warnings {
		d.Warnings = append(d.Warnings, w.String())
	}

	for _, i := range p.Diagnostics.Infos {
		d.Infos = append(d.Infos, i.String())
	}

	return d
}
