package sqlrow

import "context"

// ModelMeta is the static description of a mapped type. Generated code
// keeps one value per type; the slices are shared and must not be modified.
type ModelMeta struct {
	Model   string
	Table   string
	Fields  []string
	Columns []string
}

// Column returns the column mapped to field.
func (m ModelMeta) Column(field string) (string, bool) {
	for i, f := range m.Fields {
		if f == field {
			return m.Columns[i], true
		}
	}

	return "", false
}

// Model is implemented by the pointer type of every generated model.
//
// Decoding is not part of the interface; every model has a package-level
// DecodeX function returning the concrete type.
type Model interface {
	Params() (Parameters, error)
	Bind(policy OnConflict) (BoundStatement, error)
	Insert(ctx context.Context, conn Execer) error
	InsertOr(ctx context.Context, conn Execer, policy OnConflict) error
	Meta() ModelMeta
}

// InsertAll inserts every model in order under policy and stops at the first
// failure. Callers wanting atomicity pass a *sql.Tx.
func InsertAll[M Model](ctx context.Context, conn Execer, policy OnConflict, models ...M) error {
	for _, m := range models {
		if err := m.InsertOr(ctx, conn, policy); err != nil {
			return err
		}
	}

	return nil
}
