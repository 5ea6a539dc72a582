// Package plan provides the resolution pipeline that produces a Plan
// consumed by code generation.
//
// Resolution pipeline:
//  1. Analyze packages → type graph
//  2. Load YAML → validate
//  3. For each declared model and record:
//     - Check the struct shape (flat, named fields, no type parameters)
//     - Resolve each field's column and bind/extract functions, YAML
//       entries overriding `sql` struct tags
//     - Check function references and column uniqueness
//  4. For each declared enum, collect its constants
//  5. Emit diagnostics; each configuration problem is also kept as a
//     *ConfigurationError
package plan
