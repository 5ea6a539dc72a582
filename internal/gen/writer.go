package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteSummary lists what WriteFiles did with each file.
type WriteSummary struct {
	Written   []string
	Unchanged []string
}

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist. Files whose content hash
// matches the file on disk are left untouched, so their modification
// times stay stable for build caches and file watchers.
func WriteFiles(files []GeneratedFile, outputDir string) (WriteSummary, error) {
	var sum WriteSummary

	// Create output directory if it doesn't exist
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return sum, fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		same, err := sameContent(outputPath, file.Content)
		if err != nil {
			return sum, fmt.Errorf("reading file %s: %w", file.Filename, err)
		}

		if same {
			sum.Unchanged = append(sum.Unchanged, file.Filename)
			continue
		}

		err = os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return sum, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		sum.Written = append(sum.Written, file.Filename)
	}

	return sum, nil
}

// sameContent reports whether path exists and hashes equal to content.
func sameContent(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return len(existing) == len(content) && xxh3.Hash128(existing) == xxh3.Hash128(content), nil
}
