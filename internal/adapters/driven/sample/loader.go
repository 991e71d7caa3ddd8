// Package sample reads sample metadata side files.
package sample

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
	"github.com/custodia-labs/bedstat-cli/internal/core/ports/driven"
)

// Ensure YAMLLoader implements the interface.
var _ driven.SampleLoader = (*YAMLLoader)(nil)

// YAMLLoader parses a YAML document into an untyped mapping.
type YAMLLoader struct{}

// NewYAMLLoader creates a new YAML sample loader.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// Load reads the first YAML document at path. An empty file yields an empty
// mapping. Nested mappings with non-string keys are converted to string keys
// so the result can be encoded as JSON.
func (l *YAMLLoader) Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrSideFileParse, path, err)
	}

	var doc map[string]any
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrSideFileParse, path, err)
	}
	if doc == nil {
		return map[string]any{}, nil
	}

	for k, v := range doc {
		doc[k] = normalise(v)
	}
	return doc, nil
}

// normalise rewrites map[any]any values into map[string]any, recursively.
func normalise(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, inner := range t {
			t[k] = normalise(inner)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[fmt.Sprint(k)] = normalise(inner)
		}
		return out
	case []any:
		for i, inner := range t {
			t[i] = normalise(inner)
		}
		return t
	default:
		return v
	}
}
