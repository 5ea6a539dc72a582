// Package analyze provides package loading and type graph extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to build a canonical in-memory model of the structs that rowcaster maps
// to tables, together with the package-level functions that may serve as
// bind/extract conversions and the constants of enum types.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/interface/external)
//   - FieldInfo: describes field name, type, tags, and embedding
//   - PackageInfo: directory, functions and enum constants of a package
package analyze
