// Package config manages runtime settings stored at
// $XDG_CONFIG_HOME/templer/config.yaml, overridable through TEMPLER_*
// environment variables and command-line flags.
package config
