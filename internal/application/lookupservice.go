package application

import (
	"context"
	"fmt"
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ericfisherdev/certlink/internal/domain/model"
	"github.com/ericfisherdev/certlink/internal/domain/port/driven"
)

var placeholderPattern = regexp.MustCompile(`<%=\s*([A-Za-z_][A-Za-z0-9_]*)\s*%>`)

// LookupService resolves fingerprints to stored records and renders them
// into the configured HTML template.
type LookupService struct {
	store     driven.RecordStore
	templates driven.TemplateSource
	sanitizer *bluemonday.Policy
}

// NewLookupService creates a LookupService with the required dependencies.
func NewLookupService(store driven.RecordStore, templates driven.TemplateSource) *LookupService {
	return &LookupService{
		store:     store,
		templates: templates,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Lookup returns the record stored under fingerprint, or driven.ErrRecordNotFound.
func (s *LookupService) Lookup(ctx context.Context, fingerprint string) (*model.Record, error) {
	if fingerprint == "" {
		return nil, driven.ErrRecordNotFound
	}

	rec, err := s.store.GetByFingerprint(ctx, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", fingerprint, err)
	}
	if rec == nil {
		return nil, driven.ErrRecordNotFound
	}
	return rec, nil
}

// RenderHTML looks up the record for fingerprint and renders it into the
// template. The template is loaded on every call.
func (s *LookupService) RenderHTML(ctx context.Context, fingerprint string) (string, error) {
	rec, err := s.Lookup(ctx, fingerprint)
	if err != nil {
		return "", err
	}

	tmpl, err := s.templates.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load template: %w", err)
	}

	return s.Render(tmpl, *rec), nil
}

// Render replaces every <%= field %> placeholder in tmpl with the record's
// sanitized value. Unknown field names render as the empty string.
func (s *LookupService) Render(tmpl string, rec model.Record) string {
	fields := rec.Fields()
	return placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		return s.sanitizer.Sanitize(fields[name])
	})
}
