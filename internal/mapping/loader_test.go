package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
version: "1"
package: ./examples/people
models:
  - type: Person
    table: people
    check: schema.sql
    fields:
      Password: pwd
      HomeDir:
        bind: BindPath
        extract: ExtractPath
records:
  - type: NameAge
enums:
  - type: Color
`

	mf, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, mf)

	assert.Equal(t, "1", mf.Version)
	assert.Equal(t, "./examples/people", mf.Package)
	assert.Equal(t, DefaultSuffix, mf.Output.Suffix)
	assert.True(t, mf.Output.CheckTestsEnabled())

	require.Len(t, mf.Models, 1)
	tm := mf.Models[0]
	assert.Equal(t, "Person", tm.Type)
	assert.Equal(t, "people", tm.Table)
	assert.Equal(t, "schema.sql", tm.Check)

	// Scalar shorthand sets only the column.
	assert.Equal(t, FieldMapping{Column: "pwd"}, tm.Fields["Password"])
	assert.Equal(t, FieldMapping{Bind: "BindPath", Extract: "ExtractPath"}, tm.Fields["HomeDir"])
	assert.Equal(t, []string{"HomeDir", "Password"}, tm.Fields.Names())

	require.Len(t, mf.Records, 1)
	assert.Equal(t, "NameAge", mf.Records[0].Type)
	require.Len(t, mf.Enums, 1)
	assert.Equal(t, "Color", mf.Enums[0].Type)
}

func TestParse_Defaults(t *testing.T) {
	mf, err := Parse([]byte(`models: [{type: T, table: t}]`))
	require.NoError(t, err)

	assert.Equal(t, "1", mf.Version)
	assert.Equal(t, ".", mf.Package)
	assert.Equal(t, "_sqlrow", mf.Output.Suffix)

	mf, err = Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "1", mf.Version)
}

func TestParse_CheckTestsDisabled(t *testing.T) {
	mf, err := Parse([]byte("output:\n  check_tests: false\n  suffix: _gen\n"))
	require.NoError(t, err)

	assert.False(t, mf.Output.CheckTestsEnabled())
	assert.Equal(t, "_gen", mf.Output.Suffix)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	tests := map[string]string{
		"root":  "tables: []\n",
		"model": "models:\n  - type: T\n    tabel: t\n",
		"field": "models:\n  - type: T\n    fields:\n      Name:\n        colum: n\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestParse_InvalidFieldNode(t *testing.T) {
	_, err := Parse([]byte("models:\n  - type: T\n    fields:\n      Name: [a, b]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected column name or field mapping")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("package: ./models\nmodels: [{type: T, table: t}]\n"), 0o644))

	mf, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, dir, mf.Dir)
	assert.Equal(t, filepath.Join(dir, "models"), mf.PackagePattern())

	mf.Package = "example.com/models"
	assert.Equal(t, "example.com/models", mf.PackagePattern())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	mf := &MappingFile{
		Version: "1",
		Package: ".",
		Models: []TypeMapping{{
			Type:  "Person",
			Table: "people",
			Fields: FieldMappings{
				"Password": {Column: "pwd"},
				"HomeDir":  {Bind: "BindPath", Extract: "ExtractPath"},
			},
		}},
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteFile(mf, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Password: pwd")

	back, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mf.Models, back.Models)
}
