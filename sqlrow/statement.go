package sqlrow

import (
	"context"
	"strings"
)

// ParamToken returns the named-parameter token bound to column. Hand-written
// statements must use the same token to interoperate with generated binds.
func ParamToken(column string) string {
	return ":" + column
}

// InsertSQL synthesizes the single-row INSERT statement for table under the
// given conflict policy:
//
//	INSERT [OR <CLAUSE> ]INTO <table> (<c1>, <c2>) VALUES(:<c1>, :<c2>);
//
// Column and parameter order follow columns exactly.
func InsertSQL(table string, columns []string, policy OnConflict) string {
	var sb strings.Builder

	sb.WriteString("INSERT ")

	if clause := policy.Clause(); clause != "" {
		sb.WriteString("OR ")
		sb.WriteString(clause)
		sb.WriteString(" ")
	}

	sb.WriteString("INTO ")
	sb.WriteString(table)
	sb.WriteString(" (")

	for i, col := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(col)
	}

	sb.WriteString(") VALUES(")

	for i, col := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(ParamToken(col))
	}

	sb.WriteString(");")

	return sb.String()
}

// Statements holds the INSERT text of one table for every conflict policy,
// indexed by OnConflict.
type Statements [onConflictCount]string

// NewStatements synthesizes the statement for each policy.
func NewStatements(table string, columns []string) Statements {
	var s Statements
	for _, p := range Policies() {
		s[p] = InsertSQL(table, columns, p)
	}

	return s
}

// For returns the statement text for policy. Unknown policies fall back to
// Abort.
func (s *Statements) For(policy OnConflict) string {
	if !policy.IsValid() {
		policy = Abort
	}

	return s[policy]
}

// BoundStatement is a statement text paired with the arguments bound to its
// named parameters.
type BoundStatement struct {
	SQL    string
	Policy OnConflict
	Params Parameters
}

// Exec runs the statement on conn. Constraint failures are returned as
// *ConstraintViolation.
func (b BoundStatement) Exec(ctx context.Context, conn Execer) error {
	_, err := conn.ExecContext(ctx, b.SQL, b.Params.Args()...)
	if err != nil {
		return wrapExecError(err, b.Policy)
	}

	return nil
}
