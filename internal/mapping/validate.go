package mapping

import (
	"fmt"
	"strings"

	"rowcaster/internal/diagnostic"
)

// SupportedVersion is the only mapping schema version understood.
const SupportedVersion = "1"

// Validate checks the structure of a mapping file. Type-level checks
// (struct shapes, field names, function signatures) happen during
// resolution, once the packages are loaded.
func Validate(mf *MappingFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError("mapping_is_nil", "mapping file is nil", "", "")
		return res
	}

	if mf.Version != SupportedVersion {
		res.AddError("unsupported_version",
			fmt.Sprintf("unsupported mapping version %q", mf.Version), "", "version",
			fmt.Sprintf("version: %q", SupportedVersion))
	}

	if strings.ContainsAny(mf.Output.Suffix, `/\`) {
		res.AddError("invalid_suffix",
			fmt.Sprintf("output suffix %q must not contain path separators", mf.Output.Suffix), "", "output.suffix")
	}

	if len(mf.Models)+len(mf.Records)+len(mf.Enums) == 0 {
		res.AddWarning("empty_mapping", "mapping declares no models, records or enums", "", "")
	}

	seen := map[string]string{}
	claim := func(section, typeName string) {
		if typeName == "" {
			res.AddError("missing_type", fmt.Sprintf("%s entry has no type", section), "", section)
			return
		}

		if prev, ok := seen[typeName]; ok {
			res.AddError("duplicate_type",
				fmt.Sprintf("type %s is declared in both %s and %s", typeName, prev, section), typeName, section)

			return
		}

		seen[typeName] = section
	}

	for i := range mf.Models {
		claim("models", mf.Models[i].Type)
	}

	for i := range mf.Records {
		tm := &mf.Records[i]
		claim("records", tm.Type)

		if tm.Table != "" {
			res.AddError("record_table",
				"records are decode-only and take no table; declare the type under models instead",
				tm.Type, "table")
		}

		if tm.Check != "" {
			res.AddError("record_check", "schema checks need a table; records take no check", tm.Type, "check")
		}

		for _, name := range tm.Fields.Names() {
			if tm.Fields[name].Bind != "" {
				res.AddError("record_bind", "records are never written; bind has no effect", tm.Type, name)
			}
		}
	}

	for i := range mf.Enums {
		claim("enums", mf.Enums[i].Type)
	}

	return res
}
