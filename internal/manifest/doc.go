// Package manifest loads templates declared in template.yaml files.
//
// A manifest names the template, the templates and structures it requires,
// its variables, and a directory of files rendered like the built-in
// templates. Manifests are validated against an embedded JSON schema before
// they are parsed. Directories listed under the template_paths setting are
// searched one level deep for template.yaml files.
package manifest
