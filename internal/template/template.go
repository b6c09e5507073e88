// Package template defines the unit a user picks when generating a project.
//
// A Template is a plain record assembled by a Builder: its questions, the
// templates it depends on, the static structures it includes and its own
// parameterized file tree. During one run a Template moves through a fixed
// lifecycle: variables are collected (CheckVars), then structures are written
// and files rendered (Render). The orderings across a stack of templates are
// enforced by the caller; the per-template order is enforced here.
package template

import (
	"context"
	"fmt"
	"slices"

	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/scaffold"
	"github.com/templer-labs/templer/internal/vars"
)

// State is a template's position in the run lifecycle.
type State int

const (
	Unresolved State = iota
	VariablesCollected
	StructuresWritten
	FilesRendered
	Done
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case VariablesCollected:
		return "variables-collected"
	case StructuresWritten:
		return "structures-written"
	case FilesRendered:
		return "files-rendered"
	case Done:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// DefaultDistribution is the distribution of templates that do not name one.
const DefaultDistribution = "templer"

// Template is one selectable project type.
type Template struct {
	Name         string
	Distribution string
	Summary      string
	Help         string
	Category     string

	Vars               []vars.Var
	RequiredTemplates  []string
	RequiredStructures []string
	// NDots, when set, is the number of dots the project name must contain.
	NDots *int
	// EggPlugins lists plugin requirements emitted into packaging metadata.
	EggPlugins []string
	// UseLocalCommands records the template in the generated setup.cfg.
	UseLocalCommands bool

	PreRunMsg  string
	PostRunMsg string

	// Files is the template's own parameterized tree. May be nil.
	Files *scaffold.Tree
	// Derive adds computed values once every template of the stack has
	// collected its variables.
	Derive func(c *vars.Context) error
	// AfterRender runs once the files are written.
	AfterRender func(ctx context.Context, env *RenderEnv) error

	state State
}

// Factory builds a fresh Template for one run.
type Factory func() *Template

// FullName is the registry identity "distribution#name".
func (t *Template) FullName() string {
	dist := t.Distribution
	if dist == "" {
		dist = DefaultDistribution
	}
	return dist + "#" + t.Name
}

// ExpectedDots returns the dot count the project name must have, if any.
func (t *Template) ExpectedDots() (int, bool) {
	if t.NDots == nil {
		return 0, false
	}
	return *t.NDots, true
}

func (t *Template) State() State { return t.state }

// advance moves the template one step forward in its lifecycle.
func (t *Template) advance(to State) error {
	if to != t.state+1 {
		return errors.Newf(errors.ErrLifecycle, "template %s cannot move from %s to %s", t.Name, t.state, to)
	}
	t.state = to
	return nil
}

// addStructures appends names not already required.
func (t *Template) addStructures(names ...string) {
	for _, n := range names {
		if n != "" && !slices.Contains(t.RequiredStructures, n) {
			t.RequiredStructures = append(t.RequiredStructures, n)
		}
	}
}
