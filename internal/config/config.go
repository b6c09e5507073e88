package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/templer-labs/templer/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyInteractive     = "interactive"
	KeyOverwrite       = "overwrite"
	KeySimulate        = "simulate"
	KeyPreferencesFile = "preferences_file"
	KeyTemplatePaths   = "template_paths"
	KeyVerbosity       = "verbosity"
	KeyOutputDir       = "output_dir"
)

// Settings is the resolved runtime configuration of one invocation.
type Settings struct {
	Interactive     bool
	Overwrite       bool
	Simulate        bool
	PreferencesFile string
	TemplatePaths   []string
	Verbosity       int
	OutputDir       string
}

// Dir returns the templer config directory.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, branding.CLIName())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// New returns a Viper instance with templer's defaults, reading the
// environment under the TEMPLER_ prefix.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyInteractive, true)
	v.SetDefault(KeyOverwrite, false)
	v.SetDefault(KeySimulate, false)
	v.SetDefault(KeyPreferencesFile, "")
	v.SetDefault(KeyTemplatePaths, []string{})
	v.SetDefault(KeyVerbosity, 0)
	v.SetDefault(KeyOutputDir, ".")

	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path into v, or the default file when path
// is empty. A missing file is not an error.
func Load(v *viper.Viper, path string) error {
	if path == "" {
		path = FilePath()
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

// Resolve reads the settings from v.
func Resolve(v *viper.Viper) Settings {
	return Settings{
		Interactive:     v.GetBool(KeyInteractive),
		Overwrite:       v.GetBool(KeyOverwrite),
		Simulate:        v.GetBool(KeySimulate),
		PreferencesFile: v.GetString(KeyPreferencesFile),
		TemplatePaths:   expandPaths(v.GetStringSlice(KeyTemplatePaths)),
		Verbosity:       v.GetInt(KeyVerbosity),
		OutputDir:       v.GetString(KeyOutputDir),
	}
}

// expandPaths splits list-separated entries, as given through the
// environment, and drops empty ones.
func expandPaths(paths []string) []string {
	var out []string
	for _, p := range paths {
		for _, part := range filepath.SplitList(p) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
