package catalog

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc"

	"github.com/templer-labs/templer/internal/scaffold"
	"github.com/templer-labs/templer/internal/template"
	"github.com/templer-labs/templer/internal/vars"
)

const namespaceInit = "__import__('pkg_resources').declare_namespace(__name__)\n"

func tree(root string) scaffold.Tree {
	return scaffold.Tree{FS: content, Root: path.Join("templates", root)}
}

// deriveLicense exposes the Trove classifier of the chosen license.
func deriveLicense(c *vars.Context) error {
	cls, ok := Classifier(c.String("license_name"))
	if !ok {
		return nil
	}
	return c.Set(vars.StageDerived, "license_classifier", cls)
}

func namespaceTemplate(name string) *template.Builder {
	return template.New(name).
		Help(heredoc.Doc(`
			This creates a Python project without any Zope or Plone features.
		`)).
		Category("Core Python").
		Structures("egg_docs").
		Extends(baseVars()).
		Add(namespaceVars()...).
		Add(metadataVars()...).
		Derive(deriveLicense)
}

// BasicNamespace is a project with one namespace package: my.example.
func BasicNamespace() *template.Template {
	return namespaceTemplate("basic_namespace").
		Summary("A basic Python project with a namespace package").
		NDots(1).
		Files(tree("basic_namespace")).
		MustBuild()
}

// NestedNamespace is a project with two namespace packages: plone.app.example.
func NestedNamespace() *template.Template {
	return namespaceTemplate("nested_namespace").
		Summary("A basic Python project with a nested namespace (2 dots in name)").
		NDots(2).
		Insert(2, namespace2Var()).
		Files(tree("nested_namespace")).
		MustBuild()
}

// Recipe is a zc.buildout recipe in a nested namespace.
func Recipe() *template.Template {
	return template.New("recipe").
		Summary("A recipe project for zc.buildout").
		Help(heredoc.Doc(`
			This creates a skeleton for a buildout recipe.
		`)).
		Category("Buildout").
		NDots(2).
		Requires("nested_namespace").
		Structures("egg_docs", "bootstrap").
		Extends(NestedNamespace().Vars).
		SetDefault(template.NamespacePackage2Var, "recipe").
		SetDefault("license_name", "ZPL").
		Files(tree("recipe")).
		Derive(func(c *vars.Context) error {
			module := strings.Join([]string{
				c.String(template.NamespacePackageVar),
				c.String(template.NamespacePackage2Var),
				c.String(template.PackageVar),
			}, ".")
			return c.Set(vars.StageDerived, "recipe_entry_point", module+".recipe:Recipe")
		}).
		MustBuild()
}

// Package is a plain Python package whose code lives under src/.
func Package() *template.Template {
	return template.New("package").
		Summary("A Python package template for templer").
		Help(heredoc.Doc(`
			This creates a Python project without any Zope or Plone features.
		`)).
		Category("Core Python").
		Structures("egg_docs").
		Extends(baseVars()).
		Add(eggVar()).
		Add(metadataVars()...).
		Files(tree("package/outer")).
		Derive(func(c *vars.Context) error {
			if err := deriveLicense(c); err != nil {
				return err
			}
			return c.Set(vars.StageDerived, "namespace_packages", template.NamespacePackages(c.String("egg")))
		}).
		AfterRender(writePackageSources).
		MustBuild()
}

// writePackageSources renders the inner tree into src/<egg path> and marks
// every enclosing directory as a namespace package.
func writePackageSources(ctx context.Context, env *template.RenderEnv) error {
	egg, _ := env.Values["egg"].(string)
	segments := strings.Split(egg, ".")
	src := filepath.Join(env.OutputDir, "src")

	for i := 1; i < len(segments); i++ {
		dir := filepath.Join(append([]string{src}, segments[:i]...)...)
		if err := env.Writer.EnsureDir(dir); err != nil {
			return err
		}
		if _, err := env.Writer.EnsureFile(ctx, filepath.Join(dir, "__init__.py"), []byte(namespaceInit), 0o644); err != nil {
			return err
		}
	}

	inner := filepath.Join(append([]string{src}, segments...)...)
	_, err := scaffold.Write(ctx, env.Writer, tree("package/inner"), inner, env.Values)
	return err
}
