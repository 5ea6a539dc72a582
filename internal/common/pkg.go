package common

import (
	"go/token"
	"path"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownStr is printed for enum values without a name.
const UnknownStr = "unknown"

// PkgAlias returns the identifier a package at pkgPath is assumed to be
// named: the last path element without a major version suffix ("/v2",
// ".v1") or "go-" prefix, cut at the first character that cannot appear in
// an identifier. Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) {
		if dir := path.Dir(pkgPath); dir != "." {
			base = path.Base(dir)
		}
	}

	if i := strings.LastIndex(base, ".v"); i > 0 && isMajorVersion(base[i+1:]) {
		base = base[:i]
	}

	base = strings.TrimPrefix(base, "go-")

	if i := strings.IndexFunc(base, notIdent); i >= 0 {
		base = base[:i]
	}

	if base == "" || token.IsKeyword(base) || !token.IsIdentifier(base) {
		return "pkg"
	}

	return base
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	_, err := strconv.Atoi(s[1:])

	return err == nil
}

func notIdent(r rune) bool {
	return !(unicode.IsLetter(r) || r == '_' || unicode.IsDigit(r))
}

// LowerFirst returns s with its first rune lower-cased.
func LowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}

	return string(unicode.ToLower(r)) + s[n:]
}

// SnakeFile converts a Go type name into a snake_case file stem,
// e.g. "HTTPServer" -> "http_server", "Person" -> "person".
func SnakeFile(name string) string {
	var b strings.Builder

	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || (nextLower && unicode.IsUpper(runes[i-1]))) {
				b.WriteByte('_')
			}

			b.WriteRune(unicode.ToLower(r))

			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}
