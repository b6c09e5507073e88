package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/templer-labs/templer/internal/config"
	"github.com/templer-labs/templer/internal/create"
	"github.com/templer-labs/templer/internal/display"
	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/prompt"
	"github.com/templer-labs/templer/internal/template"
	"github.com/templer-labs/templer/internal/userdata"
	"github.com/templer-labs/templer/internal/vars"
)

const quitAnswer = "q"

// splitArgs separates the output name from the name=value pairs. The first
// argument without "=" is the output name; any later one is an error.
func splitArgs(args []string) (string, []string, error) {
	var output string
	var assignments []string
	for _, arg := range args {
		i := strings.Index(arg, "=")
		switch {
		case i == -1 && output == "":
			output = arg
		case i > 0:
			assignments = append(assignments, arg)
		default:
			return "", nil, errors.Newf(errors.ErrSyntax, "There was a problem with your arguments: %s", arg)
		}
	}
	return output, assignments, nil
}

func (a *app) generate(ctx context.Context, args []string) error {
	s := config.Resolve(a.v)

	output, pairs, err := splitArgs(args[1:])
	if err != nil {
		return err
	}
	assignments, err := create.ParseAssignments(pairs)
	if err != nil {
		return err
	}
	if a.mode != "" {
		if _, ok := assignments[vars.ModeVarName]; !ok {
			assignments[vars.ModeVarName] = a.mode
		}
	}

	t, err := a.reg.Template(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\n%s: %s\n", args[0], t.Summary)
	if t.Help != "" {
		fmt.Fprint(a.out, t.Help)
	}

	console := prompt.NewConsole(a.in, a.out)
	if output != "" {
		if err := create.CheckDots(t, output); err != nil {
			return err
		}
	} else {
		if !s.Interactive {
			return errors.New(errors.ErrSyntax, "an output name is required when not running interactively")
		}
		if output, err = a.askProjectName(ctx, console, t); err != nil {
			return err
		}
	}

	if s.Interactive {
		fmt.Fprint(a.out, interactiveHelpText)
	}

	prefs, err := a.preferences(s)
	if err != nil {
		return err
	}

	res, err := create.Run(ctx, create.Options{
		Registry:    a.reg,
		Templates:   []string{args[0]},
		OutputName:  output,
		BaseDir:     s.OutputDir,
		Assignments: assignments,
		ConfigFile:  a.projectConfig,
		Interactive: s.Interactive,
		Overwrite:   s.Overwrite,
		Simulate:    s.Simulate,
		Verbose:     s.Verbosity > 0,
		Prefs:       prefs,
		Prompter:    console,
		Out:         a.out,
	})
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(a.errOut, "%s %s\n", display.WarningLabel(), w)
	}
	return nil
}

// askProjectName prompts until the answer suits t or the user quits.
func (a *app) askProjectName(ctx context.Context, p prompt.Prompter, t *template.Template) (string, error) {
	help := create.DotHelp(t)
	for {
		if help != "" {
			fmt.Fprint(a.out, "\n"+help+"\n")
		}
		name, err := p.Line(ctx, "Enter project name (or q to quit): ", true)
		if err != nil {
			return "", err
		}
		name = strings.TrimSpace(name)
		if name == quitAnswer {
			return "", errors.New(errors.ErrAborted, "quit")
		}
		if name == "" {
			continue
		}
		if err := create.CheckDots(t, name); err != nil {
			fmt.Fprintf(a.out, "\nERROR: %s\n", errors.Message(err))
			continue
		}
		return name, nil
	}
}

func (a *app) preferences(s config.Settings) (*userdata.Preferences, error) {
	path := s.PreferencesFile
	if path == "" {
		var err error
		if path, err = userdata.GetPreferencesPath(); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfig, "locating preferences")
		}
	}
	prefs, err := userdata.LoadPreferences(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfig, "reading preferences %s", path)
	}
	return prefs, nil
}
