// Package mapping provides the YAML schema, parsing and structural
// validation of rowcaster mapping files.
//
// The mapping file pins the attributes that cannot be expressed in struct
// tags (table names, schema files) and overrides tags where both are given.
//
// # Schema Overview
//
//	version: "1"
//	package: ./examples/people   # package pattern, relative to this file
//	output:
//	  suffix: _sqlrow            # generated file: <snake_type><suffix>.go
//	  check_tests: true          # emit <file>_check_test.go for models with check
//	models:
//	  - type: Person
//	    table: people
//	    check: schema.sql        # relative to the package directory
//	    fields:
//	      Password: pwd          # shorthand for {column: pwd}
//	      HomeDir:
//	        column: home_dir
//	        bind: BindPath
//	        extract: ExtractPath
//	records:                     # decode-only, no table
//	  - type: NameAge
//	enums:                       # integer enums stored as INTEGER
//	  - type: Color
//
// # Priority Order
//
// A field's column and conversion functions are resolved in this order:
//  1. "fields" entries of the mapping file (highest)
//  2. the field's `sql` struct tag
//  3. the field name itself (lowest)
package mapping
