package manifest

import (
	"fmt"
	"io/fs"
	"math"
	"slices"

	"github.com/Masterminds/semver/v3"

	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/scaffold"
	"github.com/templer-labs/templer/internal/template"
	"github.com/templer-labs/templer/internal/vars"
)

// CheckRequires reports whether toolVersion satisfies the manifest's
// requires_templer constraint. Development builds, whose version does not
// parse, satisfy every constraint.
func (m *TemplateManifest) CheckRequires(toolVersion string) error {
	if m.RequiresTempler == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(m.RequiresTempler)
	if err != nil {
		return errors.Wrapf(err, errors.ErrManifestInvalid, "template %s: bad requires_templer %q", m.Name, m.RequiresTempler)
	}
	v, err := semver.NewVersion(toolVersion)
	if err != nil {
		return nil
	}
	if !constraint.Check(v) {
		return errors.Newf(errors.ErrManifestInvalid, "template %s requires templer %s, this is %s",
			m.Name, m.RequiresTempler, v)
	}
	return nil
}

// Variables converts the declared variables, checking each default against
// its variable's kind.
func (m *TemplateManifest) Variables() ([]vars.Var, error) {
	out := make([]vars.Var, 0, len(m.Vars))
	for _, spec := range m.Vars {
		v, err := spec.toVar()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "template %s, variable %s", m.Name, spec.Name)
		}
		out = append(out, v)
	}
	return out, nil
}

func (s VarSpec) toVar() (vars.Var, error) {
	kind := vars.KindString
	if s.Kind != "" {
		k, err := vars.ParseKind(s.Kind)
		if err != nil {
			return vars.Var{}, err
		}
		kind = k
	}

	var opts []vars.Option
	if s.Title != "" {
		opts = append(opts, vars.WithTitle(s.Title))
	}
	if s.Help != "" {
		opts = append(opts, vars.WithHelp(s.Help))
	}
	if s.Page != "" {
		opts = append(opts, vars.WithPage(s.Page))
	}
	if s.Modes != nil {
		modes := make([]vars.Mode, 0, len(*s.Modes))
		for _, name := range *s.Modes {
			mode, err := vars.ParseMode(name)
			if err != nil {
				return vars.Var{}, err
			}
			modes = append(modes, mode)
		}
		opts = append(opts, vars.WithModes(modes...))
	}
	if s.Echo != nil && !*s.Echo {
		opts = append(opts, vars.WithoutEcho())
	}
	if s.Min != nil || s.Max != nil {
		lo, hi := math.MinInt, math.MaxInt
		if s.Min != nil {
			lo = *s.Min
		}
		if s.Max != nil {
			hi = *s.Max
		}
		opts = append(opts, vars.WithBounds(lo, hi))
	}
	if len(s.Structures) > 0 {
		opts = append(opts, vars.WithStructures(s.Structures))
	}
	switch {
	case s.Default != nil && !s.Required:
		opts = append(opts, vars.WithDefault(s.defaultFor(kind)))
	case s.Required || (kind != vars.KindString && kind != vars.KindText):
		opts = append(opts, vars.WithDefault(vars.NoDefault))
	}

	var v vars.Var
	switch kind {
	case vars.KindStringChoice:
		if len(s.Choices) == 0 {
			return vars.Var{}, fmt.Errorf("string_choice needs choices")
		}
		v = vars.StringChoice(s.Name, s.Description, s.Choices, opts...)
		for value := range v.Structures {
			if !slices.Contains(v.Choices, value) {
				return vars.Var{}, fmt.Errorf("structures entry %q is not one of the choices", value)
			}
		}
	default:
		v = vars.New(kind, s.Name, s.Description, opts...)
	}

	if v.HasDefault() {
		if _, err := v.Validate(v.Default); err != nil {
			return vars.Var{}, fmt.Errorf("bad default: %w", err)
		}
	}
	return v, nil
}

// defaultFor keeps YAML booleans and integers for the kinds that take them
// and formats everything else as text.
func (s VarSpec) defaultFor(kind vars.Kind) any {
	switch kind {
	case vars.KindBoolean, vars.KindInt, vars.KindBoundedInt:
		return s.Default
	}
	if str, ok := s.Default.(string); ok {
		return str
	}
	if b, ok := s.Default.(bool); ok && kind == vars.KindOnOff {
		if b {
			return "on"
		}
		return "off"
	}
	return fmt.Sprint(s.Default)
}

// Factory returns a template factory for m. Files, when non-nil, is the
// template's file tree.
func (m *TemplateManifest) Factory(files fs.FS) (template.Factory, error) {
	vs, err := m.Variables()
	if err != nil {
		return nil, err
	}
	b := template.New(m.Name).
		Distribution(m.Distribution).
		Summary(m.Summary).
		Help(m.Help).
		Category(m.Category).
		Requires(m.RequiredTemplates...).
		Structures(m.RequiredStructures...).
		Plugins(m.EggPlugins...).
		Messages(m.PreRunMsg, m.PostRunMsg).
		Add(vs...)
	if m.NDots != nil {
		b.NDots(*m.NDots)
	}
	if m.UseLocalCommands {
		b.LocalCommands()
	}
	if files != nil {
		b.Files(scaffold.Tree{FS: files, Root: "."})
	}
	if _, err := b.Build(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "template %s", m.Name)
	}
	return func() *template.Template { return b.MustBuild() }, nil
}
