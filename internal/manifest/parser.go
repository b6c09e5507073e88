package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"github.com/templer-labs/templer/internal/errors"
)

// Parse validates YAML data against the manifest schema and decodes it.
// Schema violations are returned as one ErrManifestInvalid listing every
// issue.
func Parse(data []byte, path string) (*TemplateManifest, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "reading manifest %s", path)
	}
	if !result.Valid {
		lines := make([]string, len(result.Issues))
		for i, issue := range result.Issues {
			lines[i] = "  " + issue.String()
		}
		return nil, errors.Newf(errors.ErrManifestInvalid, "invalid manifest %s:\n%s", path, strings.Join(lines, "\n")).
			WithDetail("path", path)
	}

	m, err := parseTyped[TemplateManifest](data, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestInvalid, "decoding manifest")
	}
	if m.Distribution == "" {
		m.Distribution = DefaultDistribution
	}
	return m, nil
}

// ParseFile reads, validates and decodes the manifest at path. Files named
// *.toml are accepted as well as YAML.
func ParseFile(path string) (*TemplateManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) == ".toml" {
		if data, err = tomlToYAML(data); err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "reading manifest %s", path)
		}
	}
	return Parse(data, path)
}

// tomlToYAML re-encodes a TOML document as YAML so both formats share one
// schema and one decoder.
func tomlToYAML(data []byte) ([]byte, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// parseTyped unmarshals YAML data into a typed manifest struct.
func parseTyped[T any](data []byte, path string) (*T, error) {
	var m T
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
