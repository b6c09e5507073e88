// Package registry maps template and structure names to the factories that
// build them, and resolves a requested template into its ordered stack of
// required templates.
//
// Registration is explicit: the built-in catalog and any template manifests
// found on the configured search paths register themselves at start-up.
package registry
