package sqlrow

import (
	"errors"
	"fmt"
)

// ErrEnumRange is wrapped when a stored integer matches no enum constant.
var ErrEnumRange = errors.New("value out of enum range")

// ScanEnum decodes an integer column into an enum of type E. valid reports
// whether a value is one of E's declared constants.
func ScanEnum[E ~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32](
	dest *E, src any, valid func(E) bool,
) error {
	n, err := NewValueRef(src).Int64()
	if err != nil {
		return fmt.Errorf("scanning %T: %w", *dest, err)
	}

	v := E(n)
	if int64(v) != n || !valid(v) {
		return fmt.Errorf("%w: no constant of %T matches the value %d", ErrEnumRange, *dest, n)
	}

	*dest = v

	return nil
}
