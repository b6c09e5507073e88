package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/templer-labs/templer/internal/branding"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// GetPreferencesPath returns the preferences file path. It checks the
// TEMPLER_PREFERENCES environment variable first, then falls back to
// ~/.templer.
func GetPreferencesPath() (string, error) {
	if v := os.Getenv(branding.EnvVar("PREFERENCES")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.PrefsFile()), nil
}
