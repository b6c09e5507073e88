package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, mainVersion string) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: mainVersion}}, true
	}
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestResolve(t *testing.T) {
	withBuildInfo(t, "(devel)")

	tests := []struct {
		name    string
		version string
		want    string
		ok      bool
	}{
		{"plain", "1.2.3", "1.2.3", true},
		{"v prefix", "v1.2.3", "1.2.3", true},
		{"short", "1.2", "1.2.0", true},
		{"prerelease", "2.0.0-beta.1", "2.0.0-beta.1", true},
		{"dev build", "dev", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(Info{Version: tt.version})
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFallsBackToModuleVersion(t *testing.T) {
	withBuildInfo(t, "v0.9.1")
	got, ok := Resolve(Info{Version: "dev"})
	assert.True(t, ok)
	assert.Equal(t, "0.9.1", got)
}

func TestString(t *testing.T) {
	withBuildInfo(t, "(devel)")

	assert.Equal(t, "templer 1.0.0", String(Info{Version: "1.0.0"}))
	assert.Equal(t, "templer 1.0.0 (commit abc123, built 2026-01-02)",
		String(Info{Version: "v1.0.0", Commit: "abc123", Date: "2026-01-02"}))
	assert.Equal(t, "templer 1.0.0", String(Info{Version: "1.0.0", Commit: "none", Date: "unknown"}))
	assert.Equal(t, "unable to identify templer version", String(Info{Version: "dev"}))
}
