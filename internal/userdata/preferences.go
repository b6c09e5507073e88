package userdata

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/registry"
	"github.com/templer-labs/templer/internal/template"
)

// Preferences holds default overrides from the preferences file. Values may
// refer to other keys of the same section, or of DEFAULT, as %(name)s.
type Preferences struct {
	file *ini.File
}

// LoadPreferences reads the preferences file at path. A missing file gives
// empty preferences.
func LoadPreferences(path string) (*Preferences, error) {
	f, err := ini.LoadSources(ini.LoadOptions{Loose: true, SpaceBeforeInlineComment: true}, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfig, "reading preferences %s", path)
	}
	return &Preferences{file: f}, nil
}

// ParsePreferences reads preferences from INI data.
func ParsePreferences(data []byte) (*Preferences, error) {
	f, err := ini.LoadSources(ini.LoadOptions{SpaceBeforeInlineComment: true}, data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "parsing preferences")
	}
	return &Preferences{file: f}, nil
}

// Default returns the override for name from the first template section
// that sets it, falling back to DEFAULT.
func (p *Preferences) Default(templates []string, name string) (string, bool) {
	if p == nil || p.file == nil {
		return "", false
	}
	for _, t := range templates {
		sec, err := p.file.GetSection(t)
		if err != nil {
			continue
		}
		if sec.HasKey(name) {
			return sec.Key(name).String(), true
		}
	}
	def := p.file.Section(ini.DefaultSection)
	if def.HasKey(name) {
		return def.Key(name).String(), true
	}
	return "", false
}

var _ template.Preferences = (*Preferences)(nil)

// WritePreferencesScaffold writes an example preferences file: an empty
// DEFAULT section and one commented-out entry per variable of every
// registered template.
func WritePreferencesScaffold(w io.Writer, reg *registry.Registry) error {
	var b strings.Builder
	b.WriteString("\n# This file can contain preferences for templer.\n")
	b.WriteString("# To do so, uncomment the lines that look like:\n")
	b.WriteString("#    variable_name = Default Value\n\n")
	b.WriteString("[" + ini.DefaultSection + "]\n")

	for _, info := range reg.Templates() {
		t, err := reg.Template(info.FullName)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "\n[%s]\n\n", t.Name)
		for i := range t.Vars {
			v := &t.Vars[i]
			fmt.Fprintf(&b, "# %s\n", v.PrettyDescription())
			def := ""
			if v.HasDefault() {
				def = fmt.Sprint(v.Default)
			}
			fmt.Fprintf(&b, "# %s = %s\n\n", v.Name, firstLine(def))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
