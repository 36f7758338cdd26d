package httpx

import (
	"net/http"
	"strings"
)

// Client-side events understood by static/js/app.js.
const (
	eventShowToast      = "showToast"
	eventNavActivate    = "nav:activate"
	eventSidebarToggled = "sidebar:toggled"
)

// HTMXResponse collects the htmx response headers a console handler sends.
type HTMXResponse struct {
	w http.ResponseWriter
}

// HTMX wraps w for htmx response building.
func HTMX(w http.ResponseWriter) *HTMXResponse {
	return &HTMXResponse{w: w}
}

// Trigger adds a client-side event. Chainable.
func (h *HTMXResponse) Trigger(event string, payload any) *HTMXResponse {
	SetHXTrigger(h.w, event, payload)
	return h
}

// Toast shows a notification after the swap. Blank messages are dropped.
func (h *HTMXResponse) Toast(message, toastType string) *HTMXResponse {
	if strings.TrimSpace(message) == "" {
		return h
	}
	return h.Trigger(eventShowToast, map[string]string{
		"message": message,
		"type":    strings.TrimSpace(toastType),
	})
}

// ActivateNav highlights the sidebar item for path after a partial swap.
func (h *HTMXResponse) ActivateNav(path string) *HTMXResponse {
	return h.Trigger(eventNavActivate, map[string]string{"path": path})
}

// Redirect makes htmx navigate to url and ends the response with 204.
// Nothing may be written after it.
func (h *HTMXResponse) Redirect(url string) {
	SetHXRedirect(h.w, url)
	h.w.WriteHeader(http.StatusNoContent)
}
