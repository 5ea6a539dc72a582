package sqlrow

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=OnConflict -output=onconflict_string.go

// OnConflict selects the conflict-resolution clause of a generated INSERT.
// The zero value is Abort, which is also the engine default.
type OnConflict uint8

const (
	Abort OnConflict = iota
	Fail
	Ignore
	Replace
	Rollback

	onConflictCount = int(iota)
)

var clauses = [onConflictCount]string{
	Abort:    "",
	Fail:     "FAIL",
	Ignore:   "IGNORE",
	Replace:  "REPLACE",
	Rollback: "ROLLBACK",
}

// Policies lists every conflict policy in declaration order.
func Policies() []OnConflict {
	return []OnConflict{Abort, Fail, Ignore, Replace, Rollback}
}

// IsValid reports whether p is one of the five declared policies.
func (p OnConflict) IsValid() bool {
	return int(p) < onConflictCount
}

// Clause returns the text placed after "INSERT OR". Abort returns "".
func (p OnConflict) Clause() string {
	if !p.IsValid() {
		return ""
	}

	return clauses[p]
}

// ParseOnConflict parses a policy name case-insensitively. Both the Go name
// ("Replace") and the SQL clause ("REPLACE") are accepted.
func ParseOnConflict(s string) (OnConflict, error) {
	for _, p := range Policies() {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}

	return Abort, fmt.Errorf("unknown conflict policy %q (expected abort, fail, ignore, replace or rollback)", s)
}
