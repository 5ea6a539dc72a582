package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeFile(t *testing.T) {
	tests := map[string]string{
		"Person":     "person",
		"NameAge":    "name_age",
		"HTTPServer": "http_server",
		"userID":     "user_id",
		"x":          "x",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, SnakeFile(in))
		})
	}
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "person", LowerFirst("Person"))
	assert.Equal(t, "nameAge", LowerFirst("NameAge"))
	assert.Empty(t, LowerFirst(""))
}

func TestPkgAlias(t *testing.T) {
	assert.Equal(t, "sqlrow", PkgAlias("rowcaster/sqlrow"))
	assert.Equal(t, "uuid", PkgAlias("github.com/google/uuid"))
	assert.Empty(t, PkgAlias(""))

	tests := map[string]string{
		"example.com/lib/go-conv": "conv",
		"gopkg.in/conv.v1":        "conv",
		"gopkg.in/yaml.v3":        "yaml",
		"example.com/conv/v2":     "conv",
		"example.com/my-conv":     "my",
		"example.com/v2":          "v2",
		"example.com/type":        "pkg",
		"example.com/9lives":      "pkg",
	}
	for in, want := range tests {
		assert.Equal(t, want, PkgAlias(in), in)
	}
}
