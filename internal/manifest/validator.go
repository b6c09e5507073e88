package manifest

import (
	"bytes"
	"cmp"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/template.schema.json
var schemaBytes []byte

const schemaName = "template.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
	printer    = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one schema violation.
type ValidationIssue struct {
	// Path is the JSON pointer of the offending value, e.g. "/vars/0/kind".
	Path string
	// Field names the same value the way a template author reads it, with
	// variables and structures identified by name: "vars[0] (port).kind".
	Field   string
	Message string
	Keyword string
}

func (i ValidationIssue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

func manifestSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			schemaErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaName, doc); err != nil {
			schemaErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		if schema, err = c.Compile(schemaName); err != nil {
			schemaErr = fmt.Errorf("compiling schema: %w", err)
		}
	})
	return schema, schemaErr
}

// Validate checks raw YAML against the template manifest schema. The error
// return is for unreadable input or a broken schema; violations are reported
// in the result, ordered by location.
func Validate(data []byte) (*ValidationResult, error) {
	sch, err := manifestSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	doc := stringKeys(raw)

	// The schema library wants JSON values (float64 numbers), not YAML ints.
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = sch.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}
	return &ValidationResult{Issues: issuesOf(ve, doc)}, nil
}

// issuesOf flattens the error tree into its leaf violations. Grouping
// keywords ($ref, allOf) only wrap other failures and are skipped.
func issuesOf(root *jsonschema.ValidationError, doc any) []ValidationIssue {
	var issues []ValidationIssue
	pending := []*jsonschema.ValidationError{root}
	for len(pending) > 0 {
		ve := pending[0]
		pending = pending[1:]
		if len(ve.Causes) > 0 {
			pending = append(pending, ve.Causes...)
			continue
		}
		if ve.ErrorKind == nil {
			continue
		}
		kw := ve.ErrorKind.KeywordPath()
		if len(kw) == 0 || kw[len(kw)-1] == "$ref" || kw[len(kw)-1] == "allOf" {
			continue
		}
		issues = append(issues, ValidationIssue{
			Path:    pointer(ve.InstanceLocation),
			Field:   fieldName(doc, ve.InstanceLocation),
			Message: ve.ErrorKind.LocalizedString(printer),
			Keyword: kw[len(kw)-1],
		})
	}
	if len(issues) == 0 {
		return []ValidationIssue{{Message: root.Error()}}
	}

	slices.SortStableFunc(issues, func(a, b ValidationIssue) int {
		return cmp.Or(cmp.Compare(a.Path, b.Path), cmp.Compare(a.Keyword, b.Keyword), cmp.Compare(a.Message, b.Message))
	})
	return slices.Compact(issues)
}

func pointer(loc []string) string {
	if len(loc) == 0 {
		return ""
	}
	return "/" + strings.Join(loc, "/")
}

// fieldName renders loc against the decoded manifest. List entries that
// carry a name, such as variables, are labelled with it.
func fieldName(doc any, loc []string) string {
	var b strings.Builder
	cur := doc
	for _, seg := range loc {
		switch node := cur.(type) {
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				fmt.Fprintf(&b, "[%s]", seg)
				cur = nil
				continue
			}
			fmt.Fprintf(&b, "[%d]", i)
			cur = node[i]
			if m, ok := cur.(map[string]any); ok {
				if name, ok := m["name"].(string); ok && name != "" {
					fmt.Fprintf(&b, " (%s)", name)
				}
			}
		case map[string]any:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(seg)
			cur = node[seg]
		default:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(seg)
			cur = nil
		}
	}
	return b.String()
}

// stringKeys converts decoded YAML into values encoding/json accepts.
// Mappings with non-string keys, such as a bare `yes:` in a structures
// table, get their keys formatted as strings.
func stringKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[k] = stringKeys(v)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = stringKeys(v)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, v := range val {
			a[i] = stringKeys(v)
		}
		return a
	default:
		return val
	}
}
