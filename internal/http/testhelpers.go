package httpx

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"
)

// TestClock is the wall clock seen by handlers built with CreateUIHandlersForTest.
// Attendance forms default to its date, 2026-10-18.
//
//nolint:gochecknoglobals // fixed test fixture
var TestClock = time.Date(2026, time.October, 18, 15, 4, 0, 0, time.UTC)

// RequireTemplateRenderer parses frontend/templates from disk, skipping when the checkout lacks them.
func RequireTemplateRenderer(t testing.TB) *TemplateRenderer {
	t.Helper()
	SkipIfNoTemplates(t)
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		DevMode:    true,
	})
	if err != nil {
		t.Fatalf("parse console templates: %v", err)
	}
	return tr
}

// SkipIfNoTemplates skips tests that render pages when frontend/templates is missing.
func SkipIfNoTemplates(t testing.TB) {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("frontend/templates not available")
	}
}

// MissingSubstrings returns the entries of want that body does not contain.
func MissingSubstrings(body string, want ...string) []string {
	var missing []string
	for _, s := range want {
		if !strings.Contains(body, s) {
			missing = append(missing, s)
		}
	}
	return missing
}

// CreateUIHandlersForTest returns UIHandlers with real templates, a silent logger and TestClock.
// Callers plug in the feature services they need.
func CreateUIHandlersForTest(t testing.TB) *UIHandlers {
	t.Helper()
	return &UIHandlers{
		T:                    RequireTemplateRenderer(t),
		LogoutOnUnauthorized: true,
		Logger:               slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:                  func() time.Time { return TestClock },
	}
}
