package template

import (
	"context"
	"fmt"
	"slices"

	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/scaffold"
	"github.com/templer-labs/templer/internal/vars"
)

// Builder assembles a Template from a base variable list plus additions and
// overrides. The first failing step is reported by Build.
type Builder struct {
	t   Template
	err error
}

func New(name string) *Builder {
	return &Builder{t: Template{Name: name, Distribution: DefaultDistribution}}
}

// Extends starts the variable list from copies of base.
func (b *Builder) Extends(base []vars.Var) *Builder {
	for _, v := range base {
		b.Add(v)
	}
	return b
}

func (b *Builder) Distribution(d string) *Builder { b.t.Distribution = d; return b }
func (b *Builder) Summary(s string) *Builder      { b.t.Summary = s; return b }
func (b *Builder) Help(s string) *Builder         { b.t.Help = s; return b }
func (b *Builder) Category(s string) *Builder     { b.t.Category = s; return b }

func (b *Builder) NDots(n int) *Builder {
	b.t.NDots = &n
	return b
}

func (b *Builder) Requires(names ...string) *Builder {
	b.t.RequiredTemplates = append(b.t.RequiredTemplates, names...)
	return b
}

func (b *Builder) Structures(names ...string) *Builder {
	b.t.addStructures(names...)
	return b
}

func (b *Builder) Plugins(names ...string) *Builder {
	b.t.EggPlugins = append(b.t.EggPlugins, names...)
	return b
}

func (b *Builder) LocalCommands() *Builder {
	b.t.UseLocalCommands = true
	return b
}

func (b *Builder) Messages(pre, post string) *Builder {
	b.t.PreRunMsg, b.t.PostRunMsg = pre, post
	return b
}

func (b *Builder) Files(tree scaffold.Tree) *Builder {
	b.t.Files = &tree
	return b
}

func (b *Builder) Derive(fn func(c *vars.Context) error) *Builder {
	b.t.Derive = fn
	return b
}

func (b *Builder) AfterRender(fn func(ctx context.Context, env *RenderEnv) error) *Builder {
	b.t.AfterRender = fn
	return b
}

// Add appends variables. Names must be unique.
func (b *Builder) Add(vs ...vars.Var) *Builder {
	for _, v := range vs {
		b.Insert(len(b.t.Vars), v)
	}
	return b
}

// Insert places v at position i.
func (b *Builder) Insert(i int, v vars.Var) *Builder {
	if b.err != nil {
		return b
	}
	if vars.Find(b.t.Vars, v.Name) != nil {
		b.err = errors.Newf(errors.ErrDuplicateName, "template %s declares variable %s twice", b.t.Name, v.Name)
		return b
	}
	if i < 0 || i > len(b.t.Vars) {
		b.err = fmt.Errorf("template %s: cannot insert %s at %d", b.t.Name, v.Name, i)
		return b
	}
	b.t.Vars = slices.Insert(b.t.Vars, i, v.Clone())
	return b
}

// Override changes the named variable in place.
func (b *Builder) Override(name string, fn func(*vars.Var)) *Builder {
	if b.err != nil {
		return b
	}
	v := vars.Find(b.t.Vars, name)
	if v == nil {
		b.err = fmt.Errorf("template %s: no such variable %s", b.t.Name, name)
		return b
	}
	fn(v)
	return b
}

// SetDefault is shorthand for overriding a variable's default.
func (b *Builder) SetDefault(name string, def any) *Builder {
	return b.Override(name, func(v *vars.Var) { v.Default = def })
}

func (b *Builder) Build() (*Template, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.t.Name == "" {
		return nil, fmt.Errorf("template has no name")
	}
	t := b.t
	t.Vars = make([]vars.Var, len(b.t.Vars))
	for i, v := range b.t.Vars {
		t.Vars[i] = v.Clone()
	}
	t.RequiredTemplates = slices.Clone(b.t.RequiredTemplates)
	t.RequiredStructures = slices.Clone(b.t.RequiredStructures)
	t.EggPlugins = slices.Clone(b.t.EggPlugins)
	return &t, nil
}

// MustBuild is Build for templates declared in code; it panics on error.
func (b *Builder) MustBuild() *Template {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
