package create

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/logging"
	"github.com/templer-labs/templer/internal/prompt"
	"github.com/templer-labs/templer/internal/registry"
	"github.com/templer-labs/templer/internal/template"
	"github.com/templer-labs/templer/internal/userdata"
	"github.com/templer-labs/templer/internal/vars"
	"github.com/templer-labs/templer/internal/writer"
)

// LocalCommandsPlugin is added to egg_plugins when a template of the stack
// records itself in the generated setup.cfg.
const LocalCommandsPlugin = "templer.localcommands"

// LocalCommandsSection is the setup.cfg section naming the template used.
const LocalCommandsSection = "templer.local"

// Options describes one generation run.
type Options struct {
	Registry *registry.Registry
	// Templates are the requested template references, most important last.
	Templates []string
	// OutputName is the project name, optionally with leading directories.
	OutputName string
	// BaseDir is the directory the project directory is created in.
	BaseDir string
	// Assignments are name=value pairs from the command line.
	Assignments map[string]string
	// ConfigFile, when set, is read before collection and updated after.
	ConfigFile string

	Interactive bool
	Overwrite   bool
	Simulate    bool
	Verbose     bool

	Prefs    template.Preferences
	Prompter prompt.Prompter
	Out      io.Writer
	// Now defaults to time.Now.
	Now func() time.Time
	// FS defaults to the real file system.
	FS writer.FS
}

// Result summarizes a finished run.
type Result struct {
	OutputDir string
	Stack     []string
	Files     []writer.Result
	Warnings  []string
	Values    map[string]any
}

// Run generates a project.
func Run(ctx context.Context, o Options) (*Result, error) {
	log := logging.Get("create")
	out := o.Out
	if out == nil {
		out = io.Discard
	}
	if o.Now == nil {
		o.Now = time.Now
	}

	stack, err := o.Registry.ResolveStack(o.Templates...)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(stack))
	for i, t := range stack {
		names[i] = t.FullName()
	}
	log.Debug().Strs("stack", names).Msg("resolved template stack")

	c := vars.NewContext()
	id := NewIdentity(o.OutputName)
	if err := id.Seed(c); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "seeding identity variables")
	}
	for name, value := range o.Assignments {
		if err := c.Set(vars.StageSupplied, name, value); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "storing command line variables")
		}
	}
	if o.ConfigFile != "" {
		stored, err := userdata.ReadVars(o.ConfigFile)
		if err != nil {
			return nil, err
		}
		for name, value := range stored {
			if c.SetDefault(vars.StageSupplied, name, value) {
				log.Debug().Str("var", name).Str("file", o.ConfigFile).Msg("variable read from config file")
			}
		}
	}

	if o.Verbose {
		printSelection(out, stack, c)
	}

	requested := make([]string, len(o.Templates))
	for i, ref := range o.Templates {
		requested[i] = ref
		if _, name, ok := strings.Cut(ref, "#"); ok {
			requested[i] = name
		}
	}
	session := &template.Session{
		Vars:        c,
		Interactive: o.Interactive,
		Prompter:    o.Prompter,
		Out:         out,
		Prefs:       o.Prefs,
		Requested:   requested,
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if err := stack[i].CheckVars(ctx, session); err != nil {
			return nil, err
		}
	}

	if err := derive(c, stack, o.Now()); err != nil {
		return nil, err
	}
	for _, t := range stack {
		if t.Derive == nil {
			continue
		}
		if err := t.Derive(c); err != nil {
			return nil, fmt.Errorf("deriving values for %s: %w", t.Name, err)
		}
	}

	outputDir := filepath.Join(o.BaseDir, o.OutputName)
	w := writer.New(writer.Options{
		Overwrite:   o.Overwrite,
		Interactive: o.Interactive,
		Confirm:     o.Prompter,
		Simulate:    o.Simulate,
		Verbose:     o.Verbose,
		Base:        o.BaseDir,
		Out:         out,
		FS:          o.FS,
	})
	env := &template.RenderEnv{
		Writer:     w,
		Structures: o.Registry,
		OutputDir:  outputDir,
		Values:     c.Values(),
		Out:        out,
	}
	for _, t := range stack {
		log.Debug().Str("template", t.FullName()).Str("dir", outputDir).Msg("rendering")
		if err := t.Render(ctx, env); err != nil {
			return nil, err
		}
		if t.UseLocalCommands && !o.Simulate {
			cfg := filepath.Join(outputDir, "setup.cfg")
			if err := userdata.UpdateSetupCfg(cfg, LocalCommandsSection, "template", t.Name); err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileWrite, "recording template in %s", cfg)
			}
		}
	}

	if o.ConfigFile != "" && !o.Simulate {
		if err := userdata.WriteVars(o.ConfigFile, persistable(c)); err != nil {
			return nil, err
		}
	}

	return &Result{
		OutputDir: outputDir,
		Stack:     names,
		Files:     w.Results(),
		Warnings:  w.Warnings(),
		Values:    c.Values(),
	}, nil
}

// derive stores the values every stack shares.
func derive(c *vars.Context, stack []*template.Template, now time.Time) error {
	var plugins []string
	dotted := false
	for _, t := range stack {
		plugins = append(plugins, t.EggPlugins...)
		if t.UseLocalCommands {
			plugins = append(plugins, LocalCommandsPlugin)
		}
		if n, ok := t.ExpectedDots(); ok && n > 0 {
			dotted = true
		}
	}
	slices.Sort(plugins)
	plugins = slices.Compact(plugins)
	if plugins == nil {
		plugins = []string{}
	}

	project := c.String("project")
	namespaces := []string{}
	if dotted {
		namespaces = template.NamespacePackages(project)
	}

	derived := []struct {
		name  string
		value any
	}{
		{"egg_plugins", plugins},
		{"namespace_packages", namespaces},
		{"package_path", strings.ReplaceAll(project, ".", "/")},
		{"year", now.Year()},
	}
	for _, d := range derived {
		if err := c.Set(vars.StageDerived, d.name, d.value); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "storing derived values")
		}
	}
	return nil
}

// persistable returns the values worth storing in a project config file:
// everything supplied or collected except the project identity.
func persistable(c *vars.Context) map[string]any {
	out := make(map[string]any)
	for _, name := range c.Names() {
		if name == "project" || name == "package" {
			continue
		}
		if stage, _ := c.StageOf(name); stage == vars.StageSupplied || stage == vars.StageCollected {
			out[name], _ = c.Get(name)
		}
	}
	return out
}

func printSelection(out io.Writer, stack []*template.Template, c *vars.Context) {
	fmt.Fprintln(out, "Selected and implied templates:")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, t := range stack {
		fmt.Fprintf(tw, "  %s\t%s\n", t.FullName(), t.Summary)
	}
	tw.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Variables:")
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range c.Names() {
		fmt.Fprintf(tw, "  %s:\t%s\n", name, c.String(name))
	}
	tw.Flush()
}
