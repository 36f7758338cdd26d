package httpx

import (
	"net/http"
)

// LogoutPage asks the viewer to confirm signing out. The form posts to /logout.
// GET /logout.
func (h *UIHandlers) LogoutPage(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{Meta: PageMeta{Title: "Logout", CurrentPage: PageLogout}})
}

// NotFound handles unknown paths. Signed-in viewers get the 404 page inside the
// console, anonymous viewers are sent to /login and API callers get JSON.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, http.StatusNotFound, "not_found", "not found")
		return
	}
	if !IsAuthenticated(r.Context()) {
		redirectToLogin(w, r)
		return
	}

	data := h.NewTemplateData(r, PageMeta{Title: "Page Not Found", PageTitle: "Page Not Found", CurrentPage: PageNotFound}).
		With("Code", "404").
		With("Message", "The page you're looking for doesn't exist.").
		Build()
	if WantsPartial(r) {
		// htmx only swaps 2xx bodies by default.
		h.render(w, r, data)
		return
	}
	h.renderErrorPage(w, r, http.StatusNotFound, data)
}

// SessionUnavailable is shown when sessions cannot be read. The guard sets Retry-After.
func (h *UIHandlers) SessionUnavailable(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title":   "Service Unavailable",
		"Code":    "503",
		"Message": "Sessions are temporarily unavailable. Please retry in a few seconds.",
		"Retry":   r.URL.RequestURI(),
		"Footer":  h.buildLayout(r, PageMeta{}).Footer,
	}
	h.renderErrorPage(w, r, http.StatusServiceUnavailable, data)
}

// renderErrorPage falls back to plain text when the error template cannot render.
func (h *UIHandlers) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	if h.T == nil {
		http.Error(w, http.StatusText(status), status)
		return
	}
	if err := h.T.RenderError(w, status, data); err != nil {
		h.logger().ErrorContext(r.Context(), "error page render failed", "status", status, "error", err)
		http.Error(w, http.StatusText(status), status)
	}
}
