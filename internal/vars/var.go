package vars

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Kind selects the validation rule of a Var.
type Kind int

const (
	KindString Kind = iota
	KindText
	KindBoolean
	KindOnOff
	KindInt
	KindBoundedInt
	KindDottedName
	KindStringChoice
)

var kindNames = map[Kind]string{
	KindString:       "string",
	KindText:         "text",
	KindBoolean:      "boolean",
	KindOnOff:        "onoff",
	KindInt:          "int",
	KindBoundedInt:   "bounded_int",
	KindDottedName:   "dotted_name",
	KindStringChoice: "string_choice",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a kind name as used in template manifests to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown variable kind %q", s)
}

type noDefault struct{}

func (noDefault) String() string { return "<no default>" }

// NoDefault marks a variable that has no default value.
var NoDefault any = noDefault{}

// Var is a single named, typed question.
type Var struct {
	Name        string
	Title       string
	Description string
	Help        string
	Page        string
	Default     any
	Modes       []Mode
	ShouldEcho  bool
	Kind        Kind

	// Min and Max bound KindBoundedInt, inclusive.
	Min, Max int
	// Choices holds the lower-cased accepted values of KindStringChoice.
	Choices []string
	// Structures maps a validated value (as text) to extra structure names.
	Structures map[string][]string
}

// Option customizes a Var built by one of the kind constructors.
type Option func(*Var)

func WithTitle(title string) Option { return func(v *Var) { v.Title = title } }
func WithHelp(help string) Option   { return func(v *Var) { v.Help = help } }
func WithPage(page string) Option   { return func(v *Var) { v.Page = page } }
func WithDefault(d any) Option      { return func(v *Var) { v.Default = d } }

// WithModes sets the modes in which the variable is asked. No modes means the
// variable is only asked in mode All.
func WithModes(modes ...Mode) Option {
	return func(v *Var) { v.Modes = append([]Mode{}, modes...) }
}

// WithoutEcho hides the answer while it is typed.
func WithoutEcho() Option { return func(v *Var) { v.ShouldEcho = false } }

// WithBounds sets the inclusive range of a bounded int.
func WithBounds(min, max int) Option {
	return func(v *Var) { v.Min, v.Max = min, max }
}

// WithStructures maps validated values to additional structures.
func WithStructures(m map[string][]string) Option {
	return func(v *Var) {
		v.Structures = make(map[string][]string, len(m))
		for k, names := range m {
			v.Structures[k] = append([]string{}, names...)
		}
	}
}

func newVar(kind Kind, name, description string, opts []Option) Var {
	v := Var{
		Name:        name,
		Description: description,
		Page:        "Main",
		Default:     "",
		Modes:       append([]Mode{}, DefaultModes...),
		ShouldEcho:  true,
		Kind:        kind,
		Min:         math.MinInt,
		Max:         math.MaxInt,
	}
	for _, opt := range opts {
		opt(&v)
	}
	return v
}

// New builds a variable of any kind. StringChoice variables should use
// StringChoice so their choices are normalized.
func New(kind Kind, name, description string, opts ...Option) Var {
	return newVar(kind, name, description, opts)
}

// String is a single-line text answer, trimmed of surrounding space.
func String(name, description string, opts ...Option) Var {
	return newVar(KindString, name, description, opts)
}

// Text is a string whose answer may span several lines when presented.
func Text(name, description string, opts ...Option) Var {
	return newVar(KindText, name, description, opts)
}

// Boolean accepts the usual yes/no spellings and stores a bool.
func Boolean(name, description string, opts ...Option) Var {
	return newVar(KindBoolean, name, description, opts)
}

// OnOff stores "on" or "off", accepting the Boolean spellings too.
func OnOff(name, description string, opts ...Option) Var {
	return newVar(KindOnOff, name, description, opts)
}

// Int is any integer; floats are truncated.
func Int(name, description string, opts ...Option) Var {
	return newVar(KindInt, name, description, opts)
}

// BoundedInt is an Int limited to [Min, Max]. Without WithBounds the range is
// the whole int range.
func BoundedInt(name, description string, opts ...Option) Var {
	return newVar(KindBoundedInt, name, description, opts)
}

// DottedName is a dot-separated list of identifiers, like a Python
// module path.
func DottedName(name, description string, opts ...Option) Var {
	return newVar(KindDottedName, name, description, opts)
}

// StringChoice accepts one of choices, compared case-insensitively. Keys of
// a structure mapping are folded the same way as the choices.
func StringChoice(name, description string, choices []string, opts ...Option) Var {
	v := newVar(KindStringChoice, name, description, opts)
	v.Choices = make([]string, 0, len(choices))
	for _, c := range choices {
		v.Choices = append(v.Choices, strings.ToLower(c))
	}
	if v.Structures != nil {
		folded := make(map[string][]string, len(v.Structures))
		for k, names := range v.Structures {
			k = strings.ToLower(k)
			folded[k] = append(folded[k], names...)
		}
		v.Structures = folded
	}
	return v
}

// HasDefault reports whether the variable carries a usable default.
func (v *Var) HasDefault() bool {
	_, none := v.Default.(noDefault)
	return !none
}

// AskedIn reports whether the variable is asked in mode.
func (v *Var) AskedIn(mode Mode) bool {
	return mode == All || slices.Contains(v.Modes, mode)
}

// PrettyDescription is the prompt text: "Title (description)".
func (v *Var) PrettyDescription() string {
	title := v.Title
	if title == "" {
		title = v.Name
	}
	if v.Description != "" {
		return fmt.Sprintf("%s (%s)", title, v.Description)
	}
	return title
}

// FullDescription identifies the variable in error messages.
func (v *Var) FullDescription() string {
	if v.Description != "" {
		return fmt.Sprintf("%s (%s)", v.Name, v.Description)
	}
	return v.Name
}

// FurtherHelp returns the help text shown when the user answers "?".
func (v *Var) FurtherHelp() string {
	if strings.TrimSpace(v.Help) == "" {
		return fmt.Sprintf("Sorry, no further help is available for %s\n", v.Name)
	}
	return v.Help
}

// Clone returns a deep copy, so templates can override fields of shared
// variable definitions.
func (v Var) Clone() Var {
	v.Modes = append([]Mode(nil), v.Modes...)
	v.Choices = append([]string(nil), v.Choices...)
	if v.Structures != nil {
		m := make(map[string][]string, len(v.Structures))
		for k, names := range v.Structures {
			m[k] = append([]string(nil), names...)
		}
		v.Structures = m
	}
	return v
}
