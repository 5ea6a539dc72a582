package sqlrow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// ErrUnknownTable is returned when the reference schema has no such table.
var ErrUnknownTable = errors.New("table not found in schema")

// ConformanceKind names the direction of a mapping/schema mismatch.
type ConformanceKind uint8

const (
	// UndeclaredColumn: the mapping declares a column the schema lacks.
	UndeclaredColumn ConformanceKind = iota + 1
	// UnmappedColumn: the schema has a column the mapping does not declare.
	UnmappedColumn
)

func (k ConformanceKind) String() string {
	switch k {
	case UndeclaredColumn:
		return "UndeclaredColumn"
	case UnmappedColumn:
		return "UnmappedColumn"
	default:
		return "unknown"
	}
}

// ConformanceError is one mismatch between a mapping and a schema.
type ConformanceError struct {
	Kind   ConformanceKind
	Table  string
	Column string
}

func (e *ConformanceError) Error() string {
	switch e.Kind {
	case UndeclaredColumn:
		return fmt.Sprintf("%s(%q): column is mapped but table %s has no such column", e.Kind, e.Column, e.Table)
	case UnmappedColumn:
		return fmt.Sprintf("%s(%q): table %s has the column but no field maps to it", e.Kind, e.Column, e.Table)
	default:
		return fmt.Sprintf("conformance error on %s.%s", e.Table, e.Column)
	}
}

// CheckColumns compares the declared and actual column sets of table. Names
// are compared literally and duplicates collapse. Every declared column
// missing from actual yields an UndeclaredColumn error and every actual
// column missing from declared yields an UnmappedColumn error; all are
// joined with errors.Join. It returns nil when the sets are equal.
func CheckColumns(table string, declared, actual []string) error {
	have := make(map[string]struct{}, len(actual))
	for _, c := range actual {
		have[c] = struct{}{}
	}

	want := make(map[string]struct{}, len(declared))
	for _, c := range declared {
		want[c] = struct{}{}
	}

	var errs []error

	seen := make(map[string]struct{}, len(declared))
	for _, c := range declared {
		if _, dup := seen[c]; dup {
			continue
		}

		seen[c] = struct{}{}

		if _, ok := have[c]; !ok {
			errs = append(errs, &ConformanceError{Kind: UndeclaredColumn, Table: table, Column: c})
		}
	}

	clear(seen)

	for _, c := range actual {
		if _, dup := seen[c]; dup {
			continue
		}

		seen[c] = struct{}{}

		if _, ok := want[c]; !ok {
			errs = append(errs, &ConformanceError{Kind: UnmappedColumn, Table: table, Column: c})
		}
	}

	return errors.Join(errs...)
}

// Schema is a reference schema applied to a private in-memory database.
type Schema struct {
	db *sql.DB
}

// LoadSchema applies ddl to a fresh in-memory SQLite database.
func LoadSchema(ctx context.Context, ddl string) (*Schema, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening schema database: %w", err)
	}
	// every pooled connection would get its own empty in-memory database
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Schema{db: db}, nil
}

// LoadSchemaFile reads path and applies it with LoadSchema.
func LoadSchemaFile(ctx context.Context, path string) (*Schema, error) {
	ddl, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file %s: %w", path, err)
	}

	return LoadSchema(ctx, string(ddl))
}

// TableColumns lists the columns of table in declaration order.
func (s *Schema) TableColumns(ctx context.Context, table string) ([]string, error) {
	return tableColumns(ctx, s.db, table)
}

// Close releases the in-memory database.
func (s *Schema) Close() error {
	return s.db.Close()
}

func tableColumns(ctx context.Context, q Queryer, table string) ([]string, error) {
	rows, err := q.QueryContext(ctx, "SELECT name FROM pragma_table_info(?) ORDER BY cid", table)
	if err != nil {
		return nil, fmt.Errorf("listing columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("listing columns of %s: %w", table, err)
		}

		cols = append(cols, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing columns of %s: %w", table, err)
	}

	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	return cols, nil
}

// CheckSchema applies ddl and checks meta's columns against its table.
func CheckSchema(ctx context.Context, ddl string, meta ModelMeta) error {
	s, err := LoadSchema(ctx, ddl)
	if err != nil {
		return err
	}
	defer s.Close()

	return checkAgainst(ctx, s.db, meta)
}

// CheckSchemaFile is CheckSchema with the DDL read from path.
func CheckSchemaFile(ctx context.Context, path string, meta ModelMeta) error {
	s, err := LoadSchemaFile(ctx, path)
	if err != nil {
		return err
	}
	defer s.Close()

	return checkAgainst(ctx, s.db, meta)
}

// CheckLive checks meta against the table as it exists in a live database.
func CheckLive(ctx context.Context, q Queryer, meta ModelMeta) error {
	return checkAgainst(ctx, q, meta)
}

func checkAgainst(ctx context.Context, q Queryer, meta ModelMeta) error {
	actual, err := tableColumns(ctx, q, meta.Table)
	if err != nil {
		return err
	}

	return CheckColumns(meta.Table, meta.Columns, actual)
}
