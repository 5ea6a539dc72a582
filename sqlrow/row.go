package sqlrow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
)

// ErrNoColumn is returned when a row has no column with the requested name.
var ErrNoColumn = errors.New("no such column")

// Row is the current row of a result set, addressable by column name.
type Row struct {
	columns []string
	index   map[string]int
	values  []any
	dest    []any
}

// NewRow builds a row from column names and driver values. It is mostly
// useful in tests; result sets are wrapped by Collect, Query and QueryOne.
func NewRow(columns []string, values []any) *Row {
	r := newRow(columns)
	copy(r.values, values)

	return r
}

func newRow(columns []string) *Row {
	r := &Row{
		columns: columns,
		index:   make(map[string]int, len(columns)),
		values:  make([]any, len(columns)),
		dest:    make([]any, len(columns)),
	}

	// First occurrence wins, matching how engines resolve duplicate names.
	for i := len(columns) - 1; i >= 0; i-- {
		r.index[columns[i]] = i
	}

	for i := range r.values {
		r.dest[i] = &r.values[i]
	}

	return r
}

// Columns returns the column names of the result set.
func (r *Row) Columns() []string {
	return r.columns
}

func (r *Row) load(rows *sql.Rows) error {
	for i := range r.values {
		r.values[i] = nil
	}

	return rows.Scan(r.dest...)
}

func (r *Row) raw(column string) (any, error) {
	i, ok := r.index[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoColumn, column)
	}

	return r.values[i], nil
}

// Ref returns a type-erased reference to the value of column.
func (r *Row) Ref(column string) (ValueRef, error) {
	v, err := r.raw(column)
	if err != nil {
		return ValueRef{}, err
	}

	return ValueRef{v: v}, nil
}

// Into decodes the value of column into dest using the conversion rules of
// database/sql. NULL is accepted only by pointer, slice, map and interface
// destinations and by sql.Scanner implementations.
func Into[T any](r *Row, column string, dest *T) error {
	v, err := r.raw(column)
	if err != nil {
		return err
	}

	if v == nil {
		return assignNull(dest)
	}

	var n sql.Null[T]
	if err := n.Scan(v); err != nil {
		return err
	}

	*dest = n.V

	return nil
}

// Extract decodes the value of column into dest through fn. fn sees the raw
// value, NULL included, and native conversion is never attempted.
func Extract[T any](r *Row, column string, dest *T, fn func(ValueRef) (T, error)) error {
	ref, err := r.Ref(column)
	if err != nil {
		return err
	}

	v, err := fn(ref)
	if err != nil {
		return err
	}

	*dest = v

	return nil
}

// Get decodes the value of column as T.
func Get[T any](r *Row, column string) (T, error) {
	var v T
	err := Into(r, column, &v)

	return v, err
}

func assignNull[T any](dest *T) error {
	if sc, ok := any(dest).(sql.Scanner); ok {
		return sc.Scan(nil)
	}

	var zero T

	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		*dest = zero
		return nil
	default:
		return fmt.Errorf("converting NULL to %s is unsupported", reflect.TypeFor[T]())
	}
}

// Decoder decodes the current row into a T.
type Decoder[T any] func(*Row) (T, error)

// Queryer runs queries. *sql.DB, *sql.Conn and *sql.Tx satisfy it.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Collect decodes every remaining row of rows and closes it. Decoding stops
// at the first failure.
func Collect[T any](rows *sql.Rows, decode Decoder[T]) ([]T, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	row := newRow(cols)

	var out []T

	for rows.Next() {
		if err := row.load(rows); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		v, err := decode(row)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// Query runs query on q and decodes all result rows.
func Query[T any](ctx context.Context, q Queryer, decode Decoder[T], query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return Collect(rows, decode)
}

// QueryOne runs query on q and decodes the first result row. It returns
// sql.ErrNoRows when the result set is empty.
func QueryOne[T any](ctx context.Context, q Queryer, decode Decoder[T], query string, args ...any) (T, error) {
	var zero T

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return zero, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return zero, fmt.Errorf("reading columns: %w", err)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, err
		}

		return zero, sql.ErrNoRows
	}

	row := newRow(cols)
	if err := row.load(rows); err != nil {
		return zero, fmt.Errorf("scanning row: %w", err)
	}

	return decode(row)
}
