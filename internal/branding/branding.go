// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	Description   string `yaml:"description"`
	PrefsFile     string `yaml:"prefs_file"`
	EnvPrefix     string `yaml:"env_prefix"`
	ConfigSection string `yaml:"config_section"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:       "templer",
			Description:   "Create new software projects from composable templates",
			PrefsFile:     ".templer",
			EnvPrefix:     "TEMPLER",
			ConfigSection: "templer",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "templer").
func CLIName() string { load(); return defaults.CLIName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// PrefsFile returns the name of the per-user preferences file under $HOME.
func PrefsFile() string { load(); return defaults.PrefsFile }

// EnvPrefix returns the environment variable prefix (e.g., "TEMPLER").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ConfigSection returns the INI section used by project-local config files.
func ConfigSection() string { load(); return defaults.ConfigSection }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("prefs") → "TEMPLER_PREFS".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
