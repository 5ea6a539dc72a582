package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_New(t *testing.T) {
	testCases := []struct {
		name      string
		verbose   bool
		filename  string
		expectErr bool
	}{
		{
			name: "stderr only",
		},
		{
			name:    "verbose stderr only",
			verbose: true,
		},
		{
			name:     "with log file",
			filename: "rowcaster.log",
		},
		{
			name:      "log file in missing directory",
			filename:  filepath.Join("missing", "dir", "rowcaster.log"),
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			filePath := ""
			if tc.filename != "" {
				filePath = filepath.Join(t.TempDir(), tc.filename)
			}

			_, err := New(tc.verbose, filePath)

			if tc.expectErr {
				assert.Error(err)
				return
			}

			assert.NoError(err)

			if filePath != "" {
				assert.FileExists(filePath)
			}
		})
	}
}
