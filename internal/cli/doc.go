// Package cli defines the templer command line. A single root command takes
// a template name, an optional output name and name=value pairs; flags select
// the informational modes (--list, --make-config-file, --version, --help).
// Generation itself is delegated to the create package; this package only
// parses arguments, prompts for the project name and maps errors to exit
// codes.
package cli
