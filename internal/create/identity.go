package create

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/MakeNowJust/heredoc"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/template"
	"github.com/templer-labs/templer/internal/vars"
)

var (
	packageJunk = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	eggJunk     = regexp.MustCompile(`[^A-Za-z0-9.]+`)
)

// Identity holds the names computed from the output name.
type Identity struct {
	Project string
	Package string
	Egg     string
}

// NewIdentity derives the project, package and egg names from outputName.
// Only the last path element of outputName names the project.
func NewIdentity(outputName string) Identity {
	project := path.Base(filepath.ToSlash(strings.TrimRight(outputName, `/\`)))
	return Identity{
		Project: project,
		Package: strings.ToLower(packageJunk.ReplaceAllString(foldAccents(project), "")),
		Egg:     eggJunk.ReplaceAllString(project, "_"),
	}
}

// Seed stores the identity names in c.
func (id Identity) Seed(c *vars.Context) error {
	for name, value := range map[string]string{"project": id.Project, "package": id.Package, "egg": id.Egg} {
		if err := c.Set(vars.StageIdentity, name, value); err != nil {
			return err
		}
	}
	return nil
}

// foldAccents strips combining marks so that "café" becomes "cafe".
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ParseAssignments splits name=value arguments. Every argument must contain
// a non-empty name before its first "=".
func ParseAssignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, errors.Newf(errors.ErrSyntax, "There was a problem with your arguments: %s", arg)
		}
		out[name] = value
	}
	return out, nil
}

var dotHelp = map[int]string{
	0: heredoc.Doc(`
		This template expects a project name with no dots in it (a simple
		Python package name, like 'foo').
	`),
	1: heredoc.Doc(`
		This template expects a project name with 1 dot in it (a 'basic
		namespace', like 'foo.bar').
	`),
	2: heredoc.Doc(`
		This template expects a project name with 2 dots in it (a 'nested
		namespace', like 'foo.bar.baz').
	`),
}

// DotHelp explains the project name t expects, or returns "".
func DotHelp(t *template.Template) string {
	n, ok := t.ExpectedDots()
	if !ok {
		return ""
	}
	if h, ok := dotHelp[n]; ok {
		return h
	}
	return fmt.Sprintf("This template expects a project name with %d dots in it.\n", n)
}

// CheckDots verifies that name has the number of dots t expects and that
// every segment is an identifier. Templates without an expectation accept
// any name.
func CheckDots(t *template.Template, name string) error {
	ndots, ok := t.ExpectedDots()
	if !ok {
		return nil
	}
	if got := strings.Count(name, "."); got != ndots {
		return errors.Newf(errors.ErrInvalidProjectName,
			"Project name expected %d dots, supplied '%s' has %d dots", ndots, name, got)
	}
	for _, part := range strings.Split(name, ".") {
		if !vars.IsIdentifier(part) {
			return errors.Newf(errors.ErrInvalidProjectName,
				"Not a valid Python dotted name: %s ('%s' is not an identifier)", name, part)
		}
	}
	return nil
}
