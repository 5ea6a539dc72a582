// Package sqlrow is the runtime imported by code that rowcaster generates.
//
// It provides:
//   - OnConflict: the five INSERT conflict policies and their SQL clauses
//   - InsertSQL / Statements: synthesis of single-row INSERT statements
//   - Parameter: the Borrowed/Owned parameter carrier and its list form
//   - Row: name-addressed access to the current row of a result set
//   - DecodeError, EncodeError, ConstraintViolation, ConformanceError
//   - CheckColumns / CheckSchema: mapping versus schema conformance
//   - Conn: a per-connection prepared statement cache
//
// Generated statements use SQLite syntax and named parameters of the form
// ":column". The modernc.org/sqlite driver is registered as "sqlite".
package sqlrow
