package branding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedValues(t *testing.T) {
	assert.Equal(t, "templer", CLIName())
	assert.Equal(t, "TEMPLER", EnvPrefix())
	assert.Equal(t, ".templer", PrefsFile())
	assert.Equal(t, "templer", ConfigSection())
	assert.NotEmpty(t, Description())
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "TEMPLER_PREFERENCES_FILE", EnvVar("preferences_file"))
}
