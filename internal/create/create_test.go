package create

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templer-labs/templer/internal/catalog"
	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/registry"
	"github.com/templer-labs/templer/internal/template"
)

func fixedNow() time.Time { return time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC) }

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	require.NoError(t, catalog.Register(reg))
	return reg
}

func baseOptions(t *testing.T, reg *registry.Registry, tmpl, output string) Options {
	t.Helper()
	return Options{
		Registry:    reg,
		Templates:   []string{tmpl},
		OutputName:  output,
		BaseDir:     t.TempDir(),
		Assignments: map[string]string{"author": "Jane Doe"},
		Now:         fixedNow,
	}
}

func readGenerated(t *testing.T, dir string, parts ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(append([]string{dir}, parts...)...))
	require.NoError(t, err)
	return string(data)
}

func TestRunBasicNamespace(t *testing.T) {
	o := baseOptions(t, newRegistry(t), "basic_namespace", "my.example")

	res, err := Run(context.Background(), o)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(o.BaseDir, "my.example"), res.OutputDir)
	assert.Equal(t, []string{"templer#basic_namespace"}, res.Stack)
	assert.Empty(t, res.Warnings)

	assert.Equal(t, []string{"my"}, res.Values["namespace_packages"])
	assert.Equal(t, []string{}, res.Values["egg_plugins"])
	assert.Equal(t, "my/example", res.Values["package_path"])
	assert.Equal(t, 2026, res.Values["year"])
	assert.Equal(t, "example", res.Values["package"])

	setup := readGenerated(t, res.OutputDir, "setup.py")
	assert.Contains(t, setup, "setup(name='my.example'")
	assert.Contains(t, setup, "author='Jane Doe'")
	assert.Contains(t, setup, "namespace_packages=['my']")

	assert.FileExists(t, filepath.Join(res.OutputDir, "my", "example", "__init__.py"))
	assert.FileExists(t, filepath.Join(res.OutputDir, "docs", "HISTORY.txt"))
	assert.Contains(t, readGenerated(t, res.OutputDir, "docs", "LICENSE.txt"), "2026")
}

func TestRunCollectsSpecializedTemplateFirst(t *testing.T) {
	o := baseOptions(t, newRegistry(t), "recipe", "collective.recipe.foo")

	res, err := Run(context.Background(), o)
	require.NoError(t, err)

	assert.Equal(t, []string{"templer#nested_namespace", "templer#recipe"}, res.Stack)
	// recipe's own default wins over the base template's.
	assert.Equal(t, "zpl", res.Values["license_name"])
	assert.Equal(t, []string{"collective", "collective.recipe"}, res.Values["namespace_packages"])
	assert.Equal(t, "collective.recipe.foo.recipe:Recipe", res.Values["recipe_entry_point"])

	assert.FileExists(t, filepath.Join(res.OutputDir, "collective", "recipe", "foo", "recipe.py"))
	assert.FileExists(t, filepath.Join(res.OutputDir, "bootstrap.py"))
	assert.Contains(t, readGenerated(t, res.OutputDir, "setup.py"), "collective.recipe.foo.recipe:Recipe")
}

func TestRunSuppliedValuesAreNotAsked(t *testing.T) {
	o := baseOptions(t, newRegistry(t), "basic_namespace", "my.example")
	o.Assignments["license_name"] = "MIT"
	o.Interactive = true
	o.Prompter = failingPrompter{t}
	o.Assignments["expert_mode"] = "easy"
	for _, name := range []string{"namespace_package", "package", "version", "description", "author_email", "keywords", "url", "long_description", "zip_safe"} {
		o.Assignments[name] = "x"
	}
	o.Assignments["zip_safe"] = "false"
	o.Assignments["url"] = "http://example.com"

	res, err := Run(context.Background(), o)
	require.NoError(t, err)

	cls, _ := catalog.Classifier("MIT")
	assert.Equal(t, cls, res.Values["license_classifier"])
	assert.Contains(t, readGenerated(t, res.OutputDir, "setup.py"), cls)
}

type failingPrompter struct{ t *testing.T }

func (p failingPrompter) Line(_ context.Context, q string, _ bool) (string, error) {
	p.t.Errorf("unexpected question %q", q)
	return "", errors.New(errors.ErrAborted, "unexpected question")
}

func (p failingPrompter) Confirm(_ context.Context, q string, _ bool) (bool, error) {
	p.t.Errorf("unexpected confirmation %q", q)
	return false, nil
}

func TestRunUnknownTemplate(t *testing.T) {
	o := baseOptions(t, newRegistry(t), "no-template", "my.example")
	_, err := Run(context.Background(), o)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))
}

func TestRunSimulateWritesNothing(t *testing.T) {
	o := baseOptions(t, newRegistry(t), "basic_namespace", "my.example")
	o.Simulate = true

	res, err := Run(context.Background(), o)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Files)
	assert.NoDirExists(t, res.OutputDir)
}

func TestRunConflictKeepsExistingFile(t *testing.T) {
	reg := newRegistry(t)
	o := baseOptions(t, reg, "basic_namespace", "my.example")

	res, err := Run(context.Background(), o)
	require.NoError(t, err)
	setup := filepath.Join(res.OutputDir, "setup.py")

	// Same input renders identical files: nothing to warn about.
	res, err = Run(context.Background(), o)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	require.NoError(t, os.WriteFile(setup, []byte("hand edited\n"), 0o644))
	res, err = Run(context.Background(), o)
	require.NoError(t, err)
	assert.Len(t, res.Warnings, 1)
	assert.Equal(t, "hand edited\n", readGenerated(t, res.OutputDir, "setup.py"))

	o.Overwrite = true
	res, err = Run(context.Background(), o)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Contains(t, readGenerated(t, res.OutputDir, "setup.py"), "setup(name='my.example'")
}

func TestRunConfigFile(t *testing.T) {
	o := baseOptions(t, newRegistry(t), "basic_namespace", "my.example")
	o.Assignments = map[string]string{"version": "2.0"}
	o.ConfigFile = filepath.Join(t.TempDir(), "project.cfg")
	require.NoError(t, os.WriteFile(o.ConfigFile, []byte("[templer]\nauthor = Stored Author\nversion = 0.1\n"), 0o644))

	res, err := Run(context.Background(), o)
	require.NoError(t, err)

	setup := readGenerated(t, res.OutputDir, "setup.py")
	assert.Contains(t, setup, "author='Stored Author'")
	assert.Contains(t, setup, "version = '2.0'")

	cfg, err := os.ReadFile(o.ConfigFile)
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "namespace_package")
	assert.Contains(t, string(cfg), "license_name")
	assert.Regexp(t, `version\s*= 0\.1`, string(cfg))
	assert.NotContains(t, string(cfg), "project")
	assert.NotContains(t, string(cfg), "year")
}

func TestRunVerboseListing(t *testing.T) {
	var out bytes.Buffer
	o := baseOptions(t, newRegistry(t), "recipe", "collective.recipe.foo")
	o.Verbose = true
	o.Out = &out

	_, err := Run(context.Background(), o)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Selected and implied templates:")
	assert.Contains(t, out.String(), "templer#nested_namespace")
	assert.Contains(t, out.String(), "Variables:")
	assert.Contains(t, out.String(), "project:")
}

func TestRunLocalCommandsAndPlugins(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterTemplate(func() *template.Template {
		return template.New("local").
			Summary("Records itself").
			Plugins("zeta.plugin", "alpha.plugin").
			LocalCommands().
			MustBuild()
	}))
	o := baseOptions(t, reg, "local", "proj")

	res, err := Run(context.Background(), o)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha.plugin", "templer.localcommands", "zeta.plugin"}, res.Values["egg_plugins"])
	assert.Equal(t, []string{}, res.Values["namespace_packages"])
	cfg := readGenerated(t, res.OutputDir, "setup.cfg")
	assert.Contains(t, cfg, "[templer.local]")
	assert.Contains(t, cfg, "template = local")
}
