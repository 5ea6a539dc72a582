package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// debugName is the sidecar name for the unformatted source of filename. It
// stays a .go file for syntax highlighting but never matches a generated
// file suffix.
func debugName(filename string) string {
	return strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}

// writeDebugUnformatted saves source that go/format rejected next to the
// intended output. Errors are returned but callers ignore them.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(outDir, debugName(filename)), content, filePerm)
}
