package userdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadVars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.cfg")
	require.NoError(t, os.WriteFile(path, []byte(`
[pastescript]
author = Legacy Author
zip_safe__eval__ = False
version__eval__ = '2.0'

[templer]
author = Current Author
`), 0o644))

	got, err := ReadVars(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"author":   "Current Author",
		"zip_safe": "false",
		"version":  "2.0",
	}, got)
}

func TestReadVarsMissingFile(t *testing.T) {
	got, err := ReadVars(filepath.Join(t.TempDir(), "none.cfg"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteVarsOnlyAddsNewKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.cfg")
	require.NoError(t, os.WriteFile(path, []byte("[pastescript]\nauthor = Kept\n"), 0o644))

	require.NoError(t, WriteVars(path, map[string]any{
		"author":   "Replaced",
		"zip_safe": false,
		"plugins":  []string{"a", "b"},
	}))

	got, err := ReadVars(path)
	require.NoError(t, err)
	assert.Equal(t, "Kept", got["author"])
	assert.Equal(t, "false", got["zip_safe"])
	assert.Equal(t, "a b", got["plugins"])
}

func TestWriteVarsCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.cfg")
	require.NoError(t, WriteVars(path, map[string]any{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotNil(t, data)
}

func TestWriteVarsUnchangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.cfg")
	original := "; hand written\n[templer]\nauthor=Kept\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	require.NoError(t, WriteVars(path, map[string]any{"author": "Other"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestUpdateSetupCfg(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.cfg")
	require.NoError(t, os.WriteFile(path, []byte("[egg_info]\ntag_build = dev\n"), 0o644))

	require.NoError(t, UpdateSetupCfg(path, "templer.local", "template", "basic_namespace"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[egg_info]")
	assert.Contains(t, string(data), "tag_build")
	assert.Contains(t, string(data), "[templer.local]")
	assert.Contains(t, string(data), "basic_namespace")
}
