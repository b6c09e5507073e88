package registry

import (
	"cmp"
	"slices"
	"strings"

	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/logging"
	"github.com/templer-labs/templer/internal/structure"
	"github.com/templer-labs/templer/internal/template"
)

// Registry holds the known template and structure factories.
type Registry struct {
	templates  []templateEntry // registration order decides bare-name lookups
	structures map[string]structure.Factory
}

type templateEntry struct {
	distribution string
	name         string
	category     string
	summary      string
	factory      template.Factory
}

// Info describes a registered template for listings.
type Info struct {
	FullName     string
	Distribution string
	Name         string
	Category     string
	Summary      string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{structures: make(map[string]structure.Factory)}
}

// RegisterTemplate adds a template factory. The factory is called once to
// learn the template's identity; a second factory with the same
// "distribution#name" is rejected.
func (r *Registry) RegisterTemplate(f template.Factory) error {
	t := f()
	if t == nil || t.Name == "" {
		return errors.New(errors.ErrInternal, "template factory returned no template")
	}
	full := t.FullName()
	for _, e := range r.templates {
		if e.distribution+"#"+e.name == full {
			return errors.Newf(errors.ErrDuplicateName, "template %s is already registered", full)
		}
	}
	dist, _, _ := strings.Cut(full, "#")
	r.templates = append(r.templates, templateEntry{
		distribution: dist,
		name:         t.Name,
		category:     t.Category,
		summary:      t.Summary,
		factory:      f,
	})
	log := logging.Get("registry")
	log.Debug().Str("template", full).Msg("registered template")
	return nil
}

// RegisterStructure adds a structure factory under name.
func (r *Registry) RegisterStructure(name string, f structure.Factory) error {
	if _, ok := r.structures[name]; ok {
		return errors.Newf(errors.ErrDuplicateName, "structure %s is already registered", name)
	}
	r.structures[name] = f
	return nil
}

// Template builds a fresh template for ref, which is either a bare name or
// "distribution#name". A bare name matches the first registered template
// of that name.
func (r *Registry) Template(ref string) (*template.Template, error) {
	dist, name, qualified := strings.Cut(ref, "#")
	if !qualified {
		name, dist = ref, ""
	}
	for _, e := range r.templates {
		if e.name != name || (qualified && e.distribution != dist) {
			continue
		}
		return e.factory(), nil
	}
	return nil, errors.Newf(errors.ErrTemplateNotFound, "No such template: %s", ref).
		WithDetail("template", ref)
}

// Has reports whether ref names a registered template.
func (r *Registry) Has(ref string) bool {
	_, err := r.Template(ref)
	return err == nil
}

// Structure builds a fresh structure by name.
func (r *Registry) Structure(name string) (*structure.Structure, error) {
	f, ok := r.structures[name]
	if !ok {
		return nil, errors.Newf(errors.ErrStructureNotFound, "No such structure: %s", name).
			WithDetail("structure", name)
	}
	return f(), nil
}

// Templates lists the registered templates by category, then name.
func (r *Registry) Templates() []Info {
	infos := make([]Info, 0, len(r.templates))
	for _, e := range r.templates {
		infos = append(infos, Info{
			FullName:     e.distribution + "#" + e.name,
			Distribution: e.distribution,
			Name:         e.name,
			Category:     e.category,
			Summary:      e.summary,
		})
	}
	slices.SortStableFunc(infos, func(a, b Info) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Name, b.Name))
	})
	return infos
}

// Structures lists the registered structure names in sorted order.
func (r *Registry) Structures() []string {
	names := make([]string, 0, len(r.structures))
	for n := range r.structures {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
