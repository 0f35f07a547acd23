// Package filetemplate implements the TemplateSource port from a file on disk,
// falling back to an embedded default document.
package filetemplate

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/ericfisherdev/certlink/internal/domain/port/driven"
)

//go:embed default.html
var defaultTemplate string

// Compile-time interface satisfaction check.
var _ driven.TemplateSource = (*Source)(nil)

// Source loads the record template from path on every call so edits take
// effect without a restart. An empty path serves the embedded default.
type Source struct {
	path string
}

// NewSource creates a Source for path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load returns the template document.
func (s *Source) Load(_ context.Context) (string, error) {
	if s.path == "" {
		return defaultTemplate, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", s.path, err)
	}
	return string(data), nil
}

