// Package create runs one project generation: it resolves the template
// stack, seeds the variable context from the output name and the command
// line, collects the remaining answers from the most specialized template
// down, derives computed values and renders every template from the base
// up into the output directory.
package create
