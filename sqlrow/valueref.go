package sqlrow

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidType is wrapped by ValueRef accessors when the stored value has
// a different storage class than requested.
var ErrInvalidType = errors.New("invalid column type")

// ValueKind is the storage class of a column value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindInteger
	KindReal
	KindText
	KindBlob
	KindTime
	// KindUnknown is a non-NULL value of a type no accessor reads.
	KindUnknown
)

var valueKindNames = [...]string{"null", "integer", "real", "text", "blob", "time", "unknown"}

// String returns the lower-case storage class name.
func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}

	return "unknown"
}

// ValueRef is a type-erased reference to one column value of the current
// row. Extract functions receive it instead of a natively converted value.
type ValueRef struct {
	v any
}

// NewValueRef wraps a driver value.
func NewValueRef(v any) ValueRef {
	return ValueRef{v: v}
}

// Raw returns the driver value as scanned.
func (r ValueRef) Raw() any {
	return r.v
}

// Kind returns the storage class of the value.
func (r ValueRef) Kind() ValueKind {
	switch r.v.(type) {
	case nil:
		return KindNull
	case int64, int, int32, int16, int8, uint32, uint16, uint8, bool:
		return KindInteger
	case float64, float32:
		return KindReal
	case string:
		return KindText
	case []byte:
		return KindBlob
	case time.Time:
		return KindTime
	default:
		return KindUnknown
	}
}

// IsNull reports whether the value is SQL NULL.
func (r ValueRef) IsNull() bool {
	return r.v == nil
}

// Int64 returns an integer value. Booleans read as 0 or 1.
func (r ValueRef) Int64() (int64, error) {
	switch v := r.v.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case bool:
		if v {
			return 1, nil
		}

		return 0, nil
	default:
		return 0, r.typeErr(KindInteger)
	}
}

// Float64 returns a real value. Integers are widened.
func (r ValueRef) Float64() (float64, error) {
	switch v := r.v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, r.typeErr(KindReal)
	}
}

// Text returns a text value. Blobs are accepted and copied.
func (r ValueRef) Text() (string, error) {
	switch v := r.v.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", r.typeErr(KindText)
	}
}

// Blob returns a blob value. The returned slice must not be retained past the
// current row; copy it if needed.
func (r ValueRef) Blob() ([]byte, error) {
	switch v := r.v.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, r.typeErr(KindBlob)
	}
}

// Time returns a time value as decoded by the driver.
func (r ValueRef) Time() (time.Time, error) {
	if v, ok := r.v.(time.Time); ok {
		return v, nil
	}

	return time.Time{}, r.typeErr(KindTime)
}

func (r ValueRef) typeErr(want ValueKind) error {
	return fmt.Errorf("%w: want %s, have %s", ErrInvalidType, want, r.Kind())
}
