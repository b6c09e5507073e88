// Package version reports the version of the running templer binary.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/templer-labs/templer/internal/branding"
)

// Info is the build metadata injected at link time.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// readBuildInfo is swapped out in tests.
var readBuildInfo = debug.ReadBuildInfo

// Resolve returns the semantic version of the binary: the linked-in
// version if it parses, else the module version recorded by `go install`.
// ok is false when neither is a release version.
func Resolve(info Info) (string, bool) {
	if v, err := parseSemver(info.Version); err == nil {
		return v.String(), true
	}
	if bi, ok := readBuildInfo(); ok {
		if v, err := parseSemver(bi.Main.Version); err == nil {
			return v.String(), true
		}
	}
	return "", false
}

// String formats the --version output.
func String(info Info) string {
	v, ok := Resolve(info)
	if !ok {
		return fmt.Sprintf("unable to identify %s version", branding.CLIName())
	}
	s := fmt.Sprintf("%s %s", branding.CLIName(), v)
	var extra []string
	if info.Commit != "" && info.Commit != "none" {
		extra = append(extra, "commit "+info.Commit)
	}
	if info.Date != "" && info.Date != "unknown" {
		extra = append(extra, "built "+info.Date)
	}
	if len(extra) > 0 {
		s += " (" + strings.Join(extra, ", ") + ")"
	}
	return s
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
