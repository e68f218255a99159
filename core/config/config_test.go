package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDirWithoutFileUsesDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFromDir(dir)

	require.NoError(t, err)
	assert.Equal(t, "types.yaml", cfg.Schema)
	assert.Equal(t, "js", cfg.Output)
	assert.Equal(t, "camel", cfg.NameStyle)
	assert.Equal(t, filepath.Join(dir, "js"), cfg.OutputDir())
	assert.Equal(t, filepath.Join(dir, "types.yaml"), cfg.SchemaPath())
}

func TestLoadFromDirReadsYAML(t *testing.T) {
	dir := t.TempDir()
	content := `
schema: schema/types.yaml
output: /tmp/generated
root_namespace: app
included_namespaces: [app.models, app.people]
excluded_namespaces: [app.internal]
name_style: snake
serializer:
  key_style: preserve
  omit_nil: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tojs.yml"), []byte(content), 0644))

	cfg, err := LoadFromDir(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "schema", "types.yaml"), cfg.SchemaPath())
	assert.Equal(t, "/tmp/generated", cfg.OutputDir())
	assert.Equal(t, "app", cfg.RootNamespace)
	assert.Equal(t, []string{"app.models", "app.people"}, cfg.IncludedNamespaces)
	assert.Equal(t, []string{"app.internal"}, cfg.ExcludedNamespaces)
	assert.Equal(t, "snake", cfg.NameStyle)
	assert.Equal(t, Serializer{KeyStyle: "preserve", OmitNil: true}, cfg.Serializer)
}

func TestLoadFileRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad name style", "name_style: kebab\n"},
		{"bad key style", "serializer:\n  key_style: shouting\n"},
		{"empty output", "output: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tojs.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadFile(path)

			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tojs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: [unterminated"), 0644))

	_, err := LoadFile(path)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}
