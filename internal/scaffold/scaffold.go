package scaffold

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/writer"
)

// Tree is a directory inside a filesystem.
type Tree struct {
	FS   fs.FS
	Root string
}

// Result holds the outcome of writing one tree.
type Result struct {
	OutputDir string
	Files     []string
}

var placeholder = regexp.MustCompile(`\+([A-Za-z_][A-Za-z0-9_]*)\+`)

// Junk files never copied out of a tree.
var excludedNames = map[string]bool{
	".DS_Store":   true,
	".svn":        true,
	".git":        true,
	"CVS":         true,
	"__pycache__": true,
}

var excludedSuffixes = []string{".pyc", ".pyo", "~"}

func excluded(name string) bool {
	if excludedNames[name] || strings.HasPrefix(name, ".#") {
		return true
	}
	for _, s := range excludedSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// SubstitutePath replaces +name+ placeholders in p with values. Unknown
// names are left as they are.
func SubstitutePath(p string, values map[string]any) string {
	return placeholder.ReplaceAllStringFunc(p, func(m string) string {
		v, ok := values[m[1:len(m)-1]]
		if !ok {
			return m
		}
		return fmt.Sprint(v)
	})
}

// TemplateName reports whether name marks a rendered file and returns the
// name it is written under.
func TemplateName(name string) (string, bool) {
	for _, suffix := range []string{".tmpl", "_tmpl"} {
		if strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			return strings.TrimSuffix(name, suffix), true
		}
	}
	return name, false
}

var titleCaser = cases.Title(language.English)

var funcs = template.FuncMap{
	"lower":   strings.ToLower,
	"upper":   strings.ToUpper,
	"title":   titleCaser.String,
	"join":    strings.Join,
	"replace": strings.ReplaceAll,
	"repeat":  strings.Repeat,
	"split":   strings.Split,
}

// Render executes src as a text template over values. A reference to an
// unknown variable is an error.
func Render(name string, src []byte, values map[string]any) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Write copies tree into outputDir through w.
func Write(ctx context.Context, w *writer.Writer, tree Tree, outputDir string, values map[string]any) (*Result, error) {
	root := tree.Root
	if root == "" {
		root = "."
	}
	if _, err := fs.Stat(tree.FS, root); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRender, "template tree %s not found", root)
	}
	if err := w.EnsureDir(outputDir); err != nil {
		return nil, err
	}

	result := &Result{OutputDir: outputDir}
	err := fs.WalkDir(tree.FS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrAborted, "generation cancelled")
		}
		if p == root {
			return nil
		}
		if excluded(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel := strings.TrimPrefix(p, root+"/")
		if root == "." {
			rel = p
		}
		outRel, keep := substituteSegments(rel, values)
		if !keep {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return w.EnsureDir(filepath.Join(outputDir, filepath.FromSlash(outRel)))
		}
		return writeFile(ctx, w, tree.FS, p, d, outputDir, outRel, values, result)
	})
	if err != nil {
		return result, err
	}
	return result, nil
}

func writeFile(ctx context.Context, w *writer.Writer, fsys fs.FS, src string, d fs.DirEntry, outputDir, outRel string, values map[string]any, result *Result) error {
	content, err := fs.ReadFile(fsys, src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRender, "reading %s", src)
	}

	dir, name := path.Split(outRel)
	if stripped, ok := TemplateName(name); ok {
		content, err = Render(src, content, values)
		if err != nil {
			return errors.Wrap(err, errors.ErrRender, "rendering "+src)
		}
		outRel = dir + stripped
	}

	mode := fs.FileMode(0o644)
	if info, err := d.Info(); err == nil && info.Mode().Perm()&0o111 != 0 {
		mode = 0o755
	}

	target := filepath.Join(outputDir, filepath.FromSlash(outRel))
	if _, err := w.EnsureFile(ctx, target, content, mode); err != nil {
		return err
	}
	result.Files = append(result.Files, outRel)
	return nil
}

// substituteSegments applies SubstitutePath to each segment of rel. It
// reports false if any segment becomes empty.
func substituteSegments(rel string, values map[string]any) (string, bool) {
	segments := strings.Split(rel, "/")
	for i, s := range segments {
		s = SubstitutePath(s, values)
		if s == "" {
			return "", false
		}
		segments[i] = s
	}
	return strings.Join(segments, "/"), true
}
