package sqlrow

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrConstraintViolation is matched by errors.Is for every
// *ConstraintViolation.
var ErrConstraintViolation = errors.New("constraint violation")

// DecodeError reports a column that could not be decoded into its field.
// Decoding stops at the first DecodeError and no partial record is returned.
type DecodeError struct {
	Field  string
	Column string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding column %q into field %s: %v", e.Column, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports a bind function failure. It is returned before any
// statement runs.
type EncodeError struct {
	Field string
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding field %s: %v", e.Field, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// ConstraintViolation wraps the engine error of a write that violated a
// table constraint under the given policy.
type ConstraintViolation struct {
	Policy OnConflict
	Err    error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violation (on conflict %s): %v", e.Policy, e.Err)
}

func (e *ConstraintViolation) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConstraintViolation) hold.
func (e *ConstraintViolation) Is(target error) bool {
	return target == ErrConstraintViolation
}

// wrapExecError converts SQLite constraint failures into
// *ConstraintViolation and passes every other error through untouched.
func wrapExecError(err error, policy OnConflict) error {
	if err == nil {
		return nil
	}

	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return &ConstraintViolation{Policy: policy, Err: err}
		}
	}

	return err
}
