//go:build !integration

package manifest

import (
	"path/filepath"
	"testing"

	"github.com/actionvet/actionvet/pkg/doctree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestManifest(t *testing.T) *Manifest {
	t.Helper()
	man, err := Load(filepath.Join("testdata", "package.json"))
	require.NoError(t, err)
	return man
}

func TestLoad(t *testing.T) {
	man := loadTestManifest(t)

	assert.Equal(t, "juice-shop", man.Name)
	assert.Equal(t, filepath.Join("testdata", "package.json"), man.Path())
	assert.True(t, man.HasDependencies())
	assert.Contains(t, man.Dependencies, "express")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.json"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "does not exist")
}

func TestParseError(t *testing.T) {
	_, err := Parse([]byte(`{"name": "broken"`))
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestScript(t *testing.T) {
	man := loadTestManifest(t)

	tests := []struct {
		name     string
		script   string
		found    bool
		contains string
	}{
		{
			name:     "test script",
			script:   "test",
			found:    true,
			contains: "mocha",
		},
		{
			name:     "frontend build script with colon in name",
			script:   "build:frontend",
			found:    true,
			contains: "ng build",
		},
		{
			name:     "server build script with colon in name",
			script:   "build:server",
			found:    true,
			contains: "tsc",
		},
		{
			name:   "missing script",
			script: "deploy",
			found:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, ok := man.Script(tt.script)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.NotEmpty(t, script)
				assert.Contains(t, script, tt.contains)
			}
		})
	}
}

func TestEmptySections(t *testing.T) {
	man, err := Parse([]byte(`{"name": "bare"}`))
	require.NoError(t, err)

	assert.False(t, man.HasDependencies())
	assert.Empty(t, man.Scripts)
	_, ok := man.Script("test")
	assert.False(t, ok)
}

func TestParseIdempotent(t *testing.T) {
	first := loadTestManifest(t)
	second := loadTestManifest(t)
	assert.True(t, doctree.Equal(first.Root(), second.Root()))
}
