// Package vars defines the typed questions a template asks and the rules that
// turn raw answers into values.
//
// A Var is a tagged record: its Kind selects the validation rule applied by
// Validate. Vars are grouped into pages for presentation and filtered by the
// active Mode, which decides whether a question is asked or silently given
// its default. Context accumulates validated values across a whole run and
// records which pipeline stage set each name.
package vars
