package driven

import "context"

// TemplateSource supplies the HTML document used to render a looked-up record.
// Implementations may re-read their backing file on every call.
type TemplateSource interface {
	Load(ctx context.Context) (string, error)
}
