package userdata

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/templer-labs/templer/internal/branding"
	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/writer"
)

// LegacySection is the section older tools wrote project variables to.
const LegacySection = "pastescript"

// evalSuffix marks a value stored as a Python literal by older tools.
const evalSuffix = "__eval__"

// ReadVars returns the variables stored in a project-local config file.
// The templer section wins over the legacy section for keys in both. A
// missing file gives an empty map.
func ReadVars(path string) (map[string]string, error) {
	f, err := ini.LoadSources(ini.LoadOptions{Loose: true, IgnoreInlineComment: true}, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfig, "reading config %s", path)
	}
	result := make(map[string]string)
	for _, name := range []string{LegacySection, branding.ConfigSection()} {
		sec, err := f.GetSection(name)
		if err != nil {
			continue
		}
		for _, key := range sec.Keys() {
			k, v := key.Name(), key.Value()
			if base, ok := strings.CutSuffix(k, evalSuffix); ok {
				k, v = base, fromLiteral(v)
			}
			result[k] = v
		}
	}
	return result, nil
}

// fromLiteral turns the simple Python literals older tools wrote into
// plain text; anything else is kept as written.
func fromLiteral(v string) string {
	switch v {
	case "True":
		return "true"
	case "False":
		return "false"
	case "None":
		return ""
	}
	if s, err := strconv.Unquote(v); err == nil {
		return s
	}
	if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
		return v[1 : len(v)-1]
	}
	return v
}

// WriteVars adds values to the templer section of the config file at path,
// creating the file if needed. Keys already present, in either section, are
// left alone. The file is only rewritten when something was added.
func WriteVars(path string, values map[string]any) error {
	f, err := ini.LoadSources(ini.LoadOptions{Loose: true, IgnoreInlineComment: true}, path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfig, "reading config %s", path)
	}

	existing := make(map[string]bool)
	for _, name := range []string{LegacySection, branding.ConfigSection()} {
		if sec, err := f.GetSection(name); err == nil {
			for _, k := range sec.KeyStrings() {
				existing[strings.TrimSuffix(k, evalSuffix)] = true
			}
		}
	}

	_, statErr := os.Stat(path)
	modified := os.IsNotExist(statErr)
	sec := f.Section(branding.ConfigSection())

	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, k := range names {
		if existing[k] {
			continue
		}
		sec.Key(k).SetValue(formatValue(values[k]))
		modified = true
	}
	if !modified {
		return nil
	}
	return save(f, path)
}

// UpdateSetupCfg sets section.option = value in an INI file, creating the
// file or section if needed. Other content is preserved.
func UpdateSetupCfg(path, section, option, value string) error {
	f, err := ini.LoadSources(ini.LoadOptions{Loose: true, IgnoreInlineComment: true}, path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfig, "reading %s", path)
	}
	f.Section(section).Key(option).SetValue(value)
	return save(f, path)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []string:
		return strings.Join(x, " ")
	default:
		return fmt.Sprint(x)
	}
}

func save(f *ini.File, path string) error {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "formatting %s", path)
	}
	if err := writer.WriteAtomic(writer.OSFS{}, path, buf.Bytes(), FilePermNormal); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "writing %s", path)
	}
	return nil
}
