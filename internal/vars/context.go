package vars

import (
	"fmt"
	"maps"
	"slices"
)

// Stage names the pipeline step that set a value in a Context. Stages are
// ordered: a value may be replaced by a later or equal stage, never by an
// earlier one.
type Stage int

const (
	// StageIdentity holds names computed from the output name (project, package).
	StageIdentity Stage = iota
	// StageSupplied holds key=value arguments and config file values.
	StageSupplied
	// StageCollected holds values produced by a template's question loop.
	StageCollected
	// StageDerived holds values computed after collection (namespaces, plugins).
	StageDerived
)

func (s Stage) String() string {
	switch s {
	case StageIdentity:
		return "identity"
	case StageSupplied:
		return "supplied"
	case StageCollected:
		return "collected"
	case StageDerived:
		return "derived"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Context accumulates the variable mapping of one generation run.
type Context struct {
	values map[string]any
	stages map[string]Stage
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{values: make(map[string]any), stages: make(map[string]Stage)}
}

// Set stores value under name. It fails if name was set by a later stage.
func (c *Context) Set(stage Stage, name string, value any) error {
	if prev, ok := c.stages[name]; ok && prev > stage {
		return fmt.Errorf("variable %q was set at stage %s and cannot be replaced at stage %s", name, prev, stage)
	}
	c.values[name] = value
	c.stages[name] = stage
	return nil
}

// SetDefault stores value only if name is unset. It reports whether it did.
func (c *Context) SetDefault(stage Stage, name string, value any) bool {
	if _, ok := c.values[name]; ok {
		return false
	}
	c.values[name] = value
	c.stages[name] = stage
	return true
}

// Get returns the value of name and whether it is set.
func (c *Context) Get(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

// String returns the value of name formatted as text, or "".
func (c *Context) String(name string) string {
	v, ok := c.values[name]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Has reports whether name is set at any stage.
func (c *Context) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// StageOf returns the stage that last set name.
func (c *Context) StageOf(name string) (Stage, bool) {
	s, ok := c.stages[name]
	return s, ok
}

// Names returns all names in sorted order.
func (c *Context) Names() []string {
	return slices.Sorted(maps.Keys(c.values))
}

// Values returns a copy of the mapping, suitable for template execution.
func (c *Context) Values() map[string]any {
	return maps.Clone(c.values)
}

// Without returns a copy of the mapping minus the given names.
func (c *Context) Without(names ...string) map[string]any {
	out := maps.Clone(c.values)
	for _, n := range names {
		delete(out, n)
	}
	return out
}
