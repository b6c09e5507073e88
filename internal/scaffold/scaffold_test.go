package scaffold

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templer-labs/templer/internal/writer"
)

func readGenerated(t *testing.T, dir, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	require.NoError(t, err, "reading generated %s", name)
	return string(b)
}

func sampleTree() fstest.MapFS {
	return fstest.MapFS{
		"tpl/README.txt_tmpl":                                {Data: []byte("{{.project}} by {{.author}}\n")},
		"tpl/setup.py.tmpl":                                  {Data: []byte("name={{.project | printf \"%q\"}}\nversion={{.version}}\n")},
		"tpl/src/+namespace_package+/__init__.py":            {Data: []byte("# namespace\n")},
		"tpl/src/+namespace_package+/+package+/__init__.py":  {Data: []byte("# {{ not rendered }}\n")},
		"tpl/src/+namespace_package2+/skipped.txt":           {Data: []byte("dropped when empty\n")},
		"tpl/bin/run.sh":                                     {Data: []byte("#!/bin/sh\n"), Mode: 0o755},
		"tpl/.DS_Store":                                      {Data: []byte("junk")},
		"tpl/module.pyc":                                     {Data: []byte("junk")},
		"tpl/.svn/entries":                                   {Data: []byte("junk")},
	}
}

func sampleValues() map[string]any {
	return map[string]any{
		"project":            "my.example",
		"author":             "Jane",
		"version":            "1.0",
		"namespace_package":  "my",
		"namespace_package2": "",
		"package":            "example",
	}
}

func TestWrite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "my.example")
	w := writer.New(writer.Options{})

	result, err := Write(context.Background(), w, Tree{FS: sampleTree(), Root: "tpl"}, out, sampleValues())
	require.NoError(t, err)

	files := append([]string(nil), result.Files...)
	sort.Strings(files)
	assert.Equal(t, []string{
		"README.txt",
		"bin/run.sh",
		"setup.py",
		"src/my/__init__.py",
		"src/my/example/__init__.py",
	}, files)

	assert.Equal(t, "my.example by Jane\n", readGenerated(t, out, "README.txt"))
	assert.Equal(t, "name=\"my.example\"\nversion=1.0\n", readGenerated(t, out, "setup.py"))
	assert.Equal(t, "# {{ not rendered }}\n", readGenerated(t, out, "src/my/example/__init__.py"))

	info, err := os.Stat(filepath.Join(out, "bin", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	_, err = os.Stat(filepath.Join(out, ".DS_Store"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteIsRepeatable(t *testing.T) {
	out := t.TempDir()
	tree := Tree{FS: sampleTree(), Root: "tpl"}

	_, err := Write(context.Background(), writer.New(writer.Options{}), tree, out, sampleValues())
	require.NoError(t, err)

	var buf bytes.Buffer
	w := writer.New(writer.Options{Out: &buf})
	_, err = Write(context.Background(), w, tree, out, sampleValues())
	require.NoError(t, err)

	assert.Empty(t, w.Warnings())
	assert.Empty(t, buf.String())
	for _, r := range w.Results() {
		assert.NotEqual(t, writer.ActionCreate, r.Action, r.Path)
	}
}

func TestWriteMissingVariable(t *testing.T) {
	tree := fstest.MapFS{"t/a.txt_tmpl": {Data: []byte("{{.missing}}")}}
	_, err := Write(context.Background(), writer.New(writer.Options{}), Tree{FS: tree, Root: "t"}, t.TempDir(), map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestWriteMissingRoot(t *testing.T) {
	_, err := Write(context.Background(), writer.New(writer.Options{}), Tree{FS: fstest.MapFS{}, Root: "nope"}, t.TempDir(), nil)
	assert.Error(t, err)
}

func TestWriteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Write(ctx, writer.New(writer.Options{}), Tree{FS: sampleTree(), Root: "tpl"}, t.TempDir(), sampleValues())
	assert.Error(t, err)
}

func TestSubstitutePath(t *testing.T) {
	values := map[string]any{"package": "blog", "n": 3}
	assert.Equal(t, "src/blog/blog.py", SubstitutePath("src/+package+/+package+.py", values))
	assert.Equal(t, "v3", SubstitutePath("v+n+", values))
	assert.Equal(t, "+unknown+.txt", SubstitutePath("+unknown+.txt", values))
	assert.Equal(t, "c++", SubstitutePath("c++", values))
}

func TestTemplateName(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		render bool
	}{
		{"setup.py_tmpl", "setup.py", true},
		{"README.md.tmpl", "README.md", true},
		{"plain.txt", "plain.txt", false},
		{".tmpl", ".tmpl", false},
	}
	for _, tt := range tests {
		got, ok := TemplateName(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.render, ok, tt.in)
	}
}

func TestRenderFuncs(t *testing.T) {
	out, err := Render("x", []byte(`{{title .name}} {{upper .name}} {{join .list ", "}}`), map[string]any{
		"name": "blog", "list": []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Blog BLOG a, b", string(out))
}
