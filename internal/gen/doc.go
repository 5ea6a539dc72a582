// Package gen provides deterministic Go code generation for mapped row
// types.
//
// Generation approach uses text/template + go/format for readable,
// allocation-light Go code. Statement text is synthesized once, at
// generation time, and embedded as string literals.
//
// Per model X the generated file holds:
//   - XMeta and (*X).Meta: static mapping metadata
//   - DecodeX: row decoding, native or through extract functions
//   - (*X).Params, Bind, Insert, InsertOr: parameter binding and writes
//
// Records get XMeta and DecodeX only. Enums get Value and Scan. Models with
// a schema check get a conformance test.
package gen
