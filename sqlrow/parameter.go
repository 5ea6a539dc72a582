package sqlrow

import (
	"database/sql"
	"database/sql/driver"
	"strings"
)

// CarrierKind tells whether a Parameter references record storage or owns a
// converted value.
type CarrierKind uint8

const (
	// Borrowed parameters point at a field of the record being encoded. No
	// conversion function runs and nothing is copied.
	Borrowed CarrierKind = iota
	// Owned parameters hold the result of a bind function.
	Owned
)

// String returns "borrowed" or "owned".
func (k CarrierKind) String() string {
	if k == Owned {
		return "owned"
	}

	return "borrowed"
}

// Parameter carries the value bound to one named parameter of a generated
// statement.
//
// A Borrowed parameter must not outlive the record it was built from.
type Parameter struct {
	// Name is the named-parameter token, ":" followed by the column name.
	Name string
	Kind CarrierKind

	ref any
	val driver.Value
}

// Borrow builds a Borrowed parameter. ptr must be a pointer to the field.
func Borrow(name string, ptr any) Parameter {
	return Parameter{Name: name, Kind: Borrowed, ref: ptr}
}

// Own builds an Owned parameter around an already converted value.
func Own(name string, v driver.Value) Parameter {
	return Parameter{Name: name, Kind: Owned, val: v}
}

// Column returns the column name, i.e. Name without the leading colon.
func (p *Parameter) Column() string {
	return strings.TrimPrefix(p.Name, ":")
}

// Ref returns the referenced field pointer of a Borrowed parameter, or the
// owned value of an Owned one.
func (p *Parameter) Ref() any {
	if p.Kind == Owned {
		return p.val
	}

	return p.ref
}

// Value implements driver.Valuer so a Parameter can be passed anywhere a
// bindable value is accepted, whatever its kind.
func (p *Parameter) Value() (driver.Value, error) {
	if p.Kind == Owned {
		return p.val, nil
	}

	return driver.DefaultParameterConverter.ConvertValue(p.ref)
}

// Parameters is the ordered parameter list of one record, in column mapping
// order.
type Parameters []Parameter

// Names returns the parameter tokens in order.
func (ps Parameters) Names() []string {
	names := make([]string, len(ps))
	for i := range ps {
		names[i] = ps[i].Name
	}

	return names
}

// Args returns the parameters as sql.NamedArg values suitable for
// ExecContext and QueryContext. The arguments point into ps.
func (ps Parameters) Args() []any {
	args := make([]any, len(ps))
	for i := range ps {
		args[i] = sql.Named(ps[i].Column(), &ps[i])
	}

	return args
}

// Lookup returns the parameter bound to column.
func (ps Parameters) Lookup(column string) (*Parameter, bool) {
	for i := range ps {
		if ps[i].Column() == column {
			return &ps[i], true
		}
	}

	return nil, false
}
