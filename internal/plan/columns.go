package plan

// Column is one (field, column) pair of a mapping.
type Column struct {
	Field   string
	Column  string
	Bind    *FuncRef
	Extract *FuncRef
}

// ColumnMapping is the ordered list of columns of a record. It is computed
// once and never mutated.
type ColumnMapping []Column

// MapColumns derives the column mapping of rec, preserving field order.
func MapColumns(rec *RecordDescription) ColumnMapping {
	cm := make(ColumnMapping, len(rec.Fields))
	for i, f := range rec.Fields {
		cm[i] = Column{
			Field:   f.FieldName,
			Column:  f.ColumnName,
			Bind:    f.Bind,
			Extract: f.Extract,
		}
	}

	return cm
}

// Columns returns the column names in order.
func (cm ColumnMapping) Columns() []string {
	out := make([]string, len(cm))
	for i, c := range cm {
		out[i] = c.Column
	}

	return out
}

// Fields returns the field names in order.
func (cm ColumnMapping) Fields() []string {
	out := make([]string, len(cm))
	for i, c := range cm {
		out[i] = c.Field
	}

	return out
}

// HasBind reports whether any column uses a bind function.
func (cm ColumnMapping) HasBind() bool {
	for _, c := range cm {
		if c.Bind != nil {
			return true
		}
	}

	return false
}

// FuncRefs returns every bind and extract reference, bind first per column.
func (cm ColumnMapping) FuncRefs() []FuncRef {
	var out []FuncRef

	for _, c := range cm {
		if c.Bind != nil {
			out = append(out, *c.Bind)
		}

		if c.Extract != nil {
			out = append(out, *c.Extract)
		}
	}

	return out
}
