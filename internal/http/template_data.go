package httpx

import (
	"net/http"

	apperrors "github.com/target/hr-console/internal/errors"
)

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
}

// NewTemplateData creates a new TemplateDataBuilder initialized with the shared layout data.
func (h *UIHandlers) NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: h.basePageData(r, meta)}
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// WithFailure records a failed operation: the notification text and, for
// validation failures, the offending field.
func (b *TemplateDataBuilder) WithFailure(err error) *TemplateDataBuilder {
	if err == nil {
		return b
	}
	msg, _ := NotificationFor(err)
	b.WithError(msg)
	if field := apperrors.GetField(err); field != "" && apperrors.IsValidation(err) {
		b.WithFieldErrors(map[string]string{field: msg})
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
