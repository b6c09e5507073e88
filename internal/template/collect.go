package template

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/templer-labs/templer/internal/display"
	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/logging"
	"github.com/templer-labs/templer/internal/prompt"
	"github.com/templer-labs/templer/internal/vars"
)

// Names of the variables that receive defaults split from the project name.
const (
	NamespacePackageVar  = "namespace_package"
	NamespacePackage2Var = "namespace_package2"
	PackageVar           = "package"
)

// Preferences supplies persisted default overrides.
type Preferences interface {
	// Default returns the override for name, looking in the sections of
	// templates first and in the global section last.
	Default(templates []string, name string) (string, bool)
}

// Session is what the question loop needs from the surrounding run.
type Session struct {
	Vars        *vars.Context
	Interactive bool
	Prompter    prompt.Prompter
	Out         io.Writer
	Prefs       Preferences
	// Requested holds the template names the user asked for. Preference
	// sections are looked up under these names.
	Requested []string
}

// CheckVars runs the question loop for t and stores the validated values in
// s.Vars. Names that already have a supplied or collected value are not asked
// again. All missing or invalid values are reported together.
func (t *Template) CheckVars(ctx context.Context, s *Session) error {
	if t.state != Unresolved {
		return errors.Newf(errors.ErrLifecycle, "template %s already collected its variables", t.Name)
	}
	out := s.Out
	if out == nil {
		out = io.Discard
	}
	log := logging.Get("template").With().Str("template", t.Name).Logger()

	if t.PreRunMsg != "" {
		fmt.Fprint(out, "\n"+display.Banner(display.WrapParagraphs(t.PreRunMsg, 74, 4)))
	}

	expect := t.expectedVars(s)

	answered := make(map[string]any)
	for _, name := range s.Vars.Names() {
		if stage, _ := s.Vars.StageOf(name); stage >= vars.StageSupplied {
			answered[name], _ = s.Vars.Get(name)
		}
	}
	hidden := map[string]any{}
	if m, ok := answered[vars.ModeVarName]; ok {
		if mode, err := vars.ParseMode(fmt.Sprint(m)); err == nil {
			hidden = vars.Hidden(mode, expect)
		}
	}

	log.Debug().Strs("vars", vars.Names(expect)).Msg("collecting variables")

	converted := make(map[string]any, len(expect))
	var problems []string
	for _, pg := range vars.GroupByPage(expect) {
		headed := false
		for _, v := range pg.Vars {
			var (
				value      any
				structures []string
				err        error
				source     string
			)
			_, isHidden := hidden[v.Name]
			raw, isAnswered := answered[v.Name]
			switch {
			case isAnswered:
				source = "supplied"
				value, structures, err = v.Resolve(raw)
			case isHidden && v.HasDefault():
				source = "mode default"
				value, structures, err = v.Resolve(v.Default)
			case s.Interactive:
				if !headed {
					headed = true
					fmt.Fprintf(out, "\n%s\n", display.Heading(pg.Name))
				}
				q, askErr := prompt.Ask(ctx, s.Prompter, out, v)
				if askErr != nil {
					return askErr
				}
				source = "answer"
				value, structures = q.Value, q.Structures
			case !v.HasDefault():
				problems = append(problems, "Required variable missing: "+v.FullDescription())
				continue
			default:
				source = "default"
				value, structures, err = v.Resolve(v.Default)
			}
			if err != nil {
				problems = append(problems, fmt.Sprintf("Invalid value for %s: %s", v.Name, err))
				continue
			}

			converted[v.Name] = value
			t.addStructures(structures...)
			log.Debug().Str("var", v.Name).Str("source", source).Interface("value", value).Msg("variable collected")

			if v.Name == vars.ModeVarName {
				if mode, err := vars.ParseMode(fmt.Sprint(value)); err == nil {
					hidden = vars.Hidden(mode, expect)
				}
			}
		}
	}

	if len(problems) > 0 {
		return errors.New(errors.ErrMissingVars, "Errors in variables:\n"+strings.Join(problems, "\n"))
	}
	for i := range expect {
		name := expect[i].Name
		if err := s.Vars.Set(vars.StageCollected, name, converted[name]); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "storing collected variables")
		}
	}
	return t.advance(VariablesCollected)
}

// expectedVars returns copies of t.Vars with their defaults adjusted for
// this run: preferences first, then values derived from the output name.
func (t *Template) expectedVars(s *Session) []vars.Var {
	expect := make([]vars.Var, len(t.Vars))
	for i, v := range t.Vars {
		expect[i] = v.Clone()
	}
	for i := range expect {
		v := &expect[i]
		if s.Prefs != nil {
			if d, ok := s.Prefs.Default(s.Requested, v.Name); ok {
				v.Default = d
			}
		}
		if stage, ok := s.Vars.StageOf(v.Name); ok && stage == vars.StageIdentity {
			v.Default, _ = s.Vars.Get(v.Name)
		}
	}
	t.applyNameDefaults(expect, s.Vars.String("project"))
	return expect
}

// applyNameDefaults splits the project name into the namespace and package
// variables when the template expects dots in the name.
func (t *Template) applyNameDefaults(expect []vars.Var, project string) {
	dots, ok := t.ExpectedDots()
	if !ok || dots == 0 || project == "" {
		return
	}
	parts := strings.Split(project, ".")
	if v := vars.Find(expect, NamespacePackageVar); v != nil && dots >= 1 {
		v.Default = parts[0]
	}
	if v := vars.Find(expect, NamespacePackage2Var); v != nil && dots >= 2 && len(parts) >= 2 {
		v.Default = parts[1]
	}
	if v := vars.Find(expect, PackageVar); v != nil {
		v.Default = parts[len(parts)-1]
	}
}

// NamespacePackages returns every proper dotted prefix of name:
// "a.b.c" gives ["a", "a.b"]; a name without dots gives an empty list.
func NamespacePackages(name string) []string {
	parts := strings.Split(name, ".")
	namespaces := make([]string, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		namespaces = append(namespaces, strings.Join(parts[:i], "."))
	}
	return namespaces
}
