// Package catalog holds the templates and structures built into templer and
// registers them at start-up.
package catalog

import (
	"embed"
	"io/fs"
	"path"

	"github.com/templer-labs/templer/internal/registry"
	"github.com/templer-labs/templer/internal/scaffold"
	"github.com/templer-labs/templer/internal/structure"
	"github.com/templer-labs/templer/internal/template"
)

//go:embed all:content
var embedded embed.FS

// content holds the templates/ and structures/ trees.
var content = func() fs.FS {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		panic(err)
	}
	return sub
}()

// Templates are the built-in template factories in registration order.
var Templates = []template.Factory{
	BasicNamespace,
	NestedNamespace,
	Package,
	Recipe,
}

// Structures returns the built-in structure factories by name.
func Structures() map[string]structure.Factory {
	m := map[string]structure.Factory{
		"egg_docs":  structureAt("egg_docs", "structures/egg_docs"),
		"bootstrap": structureAt("bootstrap", "structures/bootstrap"),
	}
	for _, l := range Licenses {
		m[l.StructureName()] = structureAt(l.StructureName(), path.Join("structures/licenses", l.Dir))
	}
	return m
}

func structureAt(name, root string) structure.Factory {
	return func() *structure.Structure {
		return &structure.Structure{
			Name:  name,
			Trees: []scaffold.Tree{{FS: content, Root: root}},
		}
	}
}

// Register adds every built-in template and structure to reg.
func Register(reg *registry.Registry) error {
	for _, f := range Templates {
		if err := reg.RegisterTemplate(f); err != nil {
			return err
		}
	}
	for name, f := range Structures() {
		if err := reg.RegisterStructure(name, f); err != nil {
			return err
		}
	}
	return nil
}
