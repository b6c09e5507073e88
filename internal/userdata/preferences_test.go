package userdata

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templer-labs/templer/internal/registry"
	"github.com/templer-labs/templer/internal/template"
	"github.com/templer-labs/templer/internal/vars"
)

const samplePrefs = `
[DEFAULT]
author = Jane Doe
keywords = python

[basic_namespace]
keywords = %(keywords)s namespace
license_name = MIT

[recipe]
license_name = ZPL
`

func TestPreferencesDefault(t *testing.T) {
	p, err := ParsePreferences([]byte(samplePrefs))
	require.NoError(t, err)

	tests := []struct {
		name      string
		templates []string
		key       string
		want      string
		found     bool
	}{
		{"template section", []string{"basic_namespace"}, "license_name", "MIT", true},
		{"interpolation from DEFAULT", []string{"basic_namespace"}, "keywords", "python namespace", true},
		{"falls back to DEFAULT", []string{"basic_namespace"}, "author", "Jane Doe", true},
		{"first requested template wins", []string{"recipe", "basic_namespace"}, "license_name", "ZPL", true},
		{"unknown section", []string{"package"}, "keywords", "python", true},
		{"unset", []string{"basic_namespace"}, "url", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Default(tt.templates, tt.key)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadPreferencesMissingFile(t *testing.T) {
	p, err := LoadPreferences(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	_, ok := p.Default([]string{"x"}, "author")
	assert.False(t, ok)
}

func TestLoadPreferencesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".templer")
	require.NoError(t, os.WriteFile(path, []byte(samplePrefs), 0o644))
	p, err := LoadPreferences(path)
	require.NoError(t, err)
	got, ok := p.Default(nil, "author")
	assert.True(t, ok)
	assert.Equal(t, "Jane Doe", got)
}

func TestNilPreferences(t *testing.T) {
	var p *Preferences
	_, ok := p.Default([]string{"x"}, "y")
	assert.False(t, ok)
}

func TestWritePreferencesScaffold(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterTemplate(func() *template.Template {
		return template.New("demo").Category("Core").Add(
			vars.String("author", "Name of author", vars.WithTitle("Author"), vars.WithDefault("Anon")),
			vars.String("secret", "", vars.WithDefault(vars.NoDefault)),
			vars.Text("long", "", vars.WithDefault("first\nsecond")),
		).MustBuild()
	}))

	var buf bytes.Buffer
	require.NoError(t, WritePreferencesScaffold(&buf, reg))
	out := buf.String()

	assert.Contains(t, out, "[DEFAULT]\n")
	assert.Contains(t, out, "[demo]\n")
	assert.Contains(t, out, "# Author (Name of author)\n# author = Anon\n")
	assert.Contains(t, out, "# secret = \n")
	assert.Contains(t, out, "# long = first\n")
	assert.Less(t, strings.Index(out, "[DEFAULT]"), strings.Index(out, "[demo]"))

	// The scaffold is valid preferences: everything is commented out.
	p, err := ParsePreferences(buf.Bytes())
	require.NoError(t, err)
	_, ok := p.Default([]string{"demo"}, "author")
	assert.False(t, ok)
}
