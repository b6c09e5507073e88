package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/templer-labs/templer/internal/branding"
	"github.com/templer-labs/templer/internal/catalog"
	"github.com/templer-labs/templer/internal/config"
	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/logging"
	"github.com/templer-labs/templer/internal/manifest"
	"github.com/templer-labs/templer/internal/registry"
	"github.com/templer-labs/templer/internal/userdata"
	"github.com/templer-labs/templer/internal/vars"
	"github.com/templer-labs/templer/internal/version"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitError  = 1
	ExitSyntax = 2
)

var (
	buildInfo   = version.Info{Version: "dev"}
	fileLogging bool
)

// app holds the state of one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	v      *viper.Viper
	reg    *registry.Registry

	list          bool
	makeConfig    bool
	showVersion   bool
	noInteractive bool
	projectConfig string
	settingsFile  string
	mode          string
	verbosity     int
	outputDir     string
	overwrite     bool
	simulate      bool
}

// Execute runs the command line of the current process and returns the
// exit code. Build info is injected via ldflags.
func Execute(ver, commit, date string) int {
	buildInfo = version.Info{Version: ver, Commit: commit, Date: date}
	fileLogging = true
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run executes one invocation with the given arguments and streams.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{in: stdin, out: stdout, errOut: stderr, v: config.New()}
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rejectLegacyOptions(args)
	if err == nil {
		err = cmd.ExecuteContext(ctx)
	}
	return a.exit(err)
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           branding.CLIName() + " <template> [<output-name>] [var=value ...]",
		Short:         branding.Description(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: a.run,
	}
	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), descriptionText)
	})
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrSyntax, "There was a problem with your arguments")
	})

	f := cmd.Flags()
	f.SortFlags = false
	f.BoolVar(&a.list, "list", false, "List templates verbosely, with details")
	f.BoolVar(&a.makeConfig, "make-config-file", false, "Print a preferences file scaffold")
	f.BoolVar(&a.showVersion, "version", false, "Print installed version")
	f.BoolVarP(&a.overwrite, "overwrite", "f", false, "Overwrite files that differ without asking")
	f.BoolVar(&a.noInteractive, "no-interactive", false, "Never prompt; use defaults for unanswered questions")
	f.BoolVarP(&a.simulate, "simulate", "n", false, "Report what would be written without writing it")
	f.StringVarP(&a.outputDir, "output-dir", "o", ".", "Directory to create the project in")
	f.StringVar(&a.projectConfig, "config", "", "Project config file to read answers from and save them to")
	f.StringVar(&a.settingsFile, "settings", "", "Templer settings file (default "+config.FilePath()+")")
	f.Var(&modeValue{&a.mode}, "mode", "Question mode: easy, expert or all")
	f.CountVarP(&a.verbosity, "verbose", "v", "Increase verbosity (repeatable)")

	for key, name := range map[string]string{
		config.KeyOverwrite: "overwrite",
		config.KeySimulate:  "simulate",
		config.KeyOutputDir: "output-dir",
		config.KeyVerbosity: "verbose",
	} {
		_ = a.v.BindPFlag(key, f.Lookup(name))
	}
	return cmd
}

// setup loads the settings, configures logging and registers templates.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.Load(a.v, a.settingsFile); err != nil {
		return errors.Wrap(err, errors.ErrConfig, "loading settings")
	}
	if cmd.Flags().Changed("no-interactive") {
		a.v.Set(config.KeyInteractive, !a.noInteractive)
	}
	s := config.Resolve(a.v)

	logging.Setup(logging.Options{Verbosity: s.Verbosity, Console: a.errOut, File: fileLogging})

	a.reg = registry.New()
	if err := catalog.Register(a.reg); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "registering built-in templates")
	}
	toolVersion, _ := version.Resolve(buildInfo)
	return manifest.Register(a.reg, s.TemplatePaths, toolVersion)
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	switch {
	case a.makeConfig:
		return userdata.WritePreferencesScaffold(out, a.reg)
	case a.list:
		return listVerbose(out, a.reg)
	case a.showVersion:
		fmt.Fprintln(out, version.String(buildInfo))
		return nil
	case len(args) == 0:
		printUsage(out, a.reg)
		return nil
	}
	return a.generate(cmd.Context(), args)
}

// exit reports err and maps it to an exit code.
func (a *app) exit(err error) int {
	if err == nil {
		return ExitOK
	}
	switch errors.GetErrorCode(err) {
	case errors.ErrAborted:
		fmt.Fprint(a.out, "\n\nExiting...\n")
		return ExitOK
	case errors.ErrTemplateNotFound, errors.ErrSyntax:
		if a.reg != nil {
			printUsage(a.out, a.reg)
		} else {
			fmt.Fprintf(a.out, usageText, "")
		}
		fmt.Fprintf(a.errOut, "ERROR: %s\n", errors.Message(err))
		if errors.IsErrorCode(err, errors.ErrSyntax) {
			return ExitSyntax
		}
		return ExitError
	}
	fmt.Fprintf(a.errOut, "ERROR: %s\n", errors.Message(err))
	return ExitError
}

// rejectLegacyOptions refuses the --svn-repository option in any spelling:
// --svn-repository=x, -svn-repository x or svn-repository=x.
func rejectLegacyOptions(args []string) error {
	for _, arg := range args {
		name, _, hasValue := strings.Cut(arg, "=")
		if !strings.HasPrefix(arg, "-") && !hasValue {
			continue
		}
		if strings.Contains(name, "svn-repository") {
			return errors.New(errors.ErrSyntax,
				"for a number of reasons, the --svn-repository argument is not allowed with the templer script. Try --help for more information")
		}
	}
	return nil
}

// modeValue is a flag restricted to the question modes.
type modeValue struct{ mode *string }

var _ pflag.Value = (*modeValue)(nil)

func (m *modeValue) String() string {
	if m.mode == nil {
		return ""
	}
	return *m.mode
}

func (m *modeValue) Set(s string) error {
	mode, err := vars.ParseMode(s)
	if err != nil {
		return err
	}
	*m.mode = string(mode)
	return nil
}

func (m *modeValue) Type() string { return "mode" }
