// Package diagnostic provides structured errors and warnings for the
// rowcaster generator.
//
// Key capabilities:
//   - Configuration errors with a code, the offending type and attribute
//   - Suggested fixes attached to each diagnostic
//   - Non-fatal warnings (missing schema files, struct fields without bind)
package diagnostic
