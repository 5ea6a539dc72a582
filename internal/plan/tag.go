package plan

import (
	"errors"
	"fmt"
	"strings"
)

// sqlTag is the parsed form of `sql:"column[,bind=Fn][,extract=Fn]"`.
type sqlTag struct {
	Column  string
	Bind    string
	Extract string
}

func parseTag(raw string) (sqlTag, error) {
	parts := strings.Split(raw, ",")
	tag := sqlTag{Column: strings.TrimSpace(parts[0])}

	seen := make(map[string]bool, 2)

	for _, opt := range parts[1:] {
		key, val, found := strings.Cut(strings.TrimSpace(opt), "=")
		if !found {
			return sqlTag{}, fmt.Errorf("option %q is not key=value", opt)
		}

		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if val == "" {
			return sqlTag{}, fmt.Errorf("option %q has no value", key)
		}

		if seen[key] {
			return sqlTag{}, fmt.Errorf("option %q repeated", key)
		}

		seen[key] = true

		switch key {
		case "bind":
			tag.Bind = val
		case "extract":
			tag.Extract = val
		default:
			return sqlTag{}, fmt.Errorf("unknown option %q", key)
		}
	}

	if tag.Column == "" && len(parts) == 1 {
		return sqlTag{}, errors.New("empty column")
	}

	return tag, nil
}
