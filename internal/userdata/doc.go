// Package userdata reads and writes the INI files templer keeps between
// runs: the per-user preferences file (~/.templer), which overrides
// variable defaults per template or globally, and project-local config
// files holding the variables used for an earlier generation.
package userdata
