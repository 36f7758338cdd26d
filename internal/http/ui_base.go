package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"time"

	"github.com/target/hr-console/internal/domain/model"
	"github.com/target/hr-console/internal/gateway"
	"github.com/target/hr-console/internal/http/ui/viewmodel"
	"github.com/target/hr-console/internal/http/uiutil"
	"github.com/target/hr-console/internal/service"
)

const errMsgFixBelow = "Please fix the errors below."

// EmployeesService is the employee registry as the UI uses it.
type EmployeesService interface {
	List(ctx context.Context) ([]model.Employee, error)
	Find(ctx context.Context, id model.ID) (model.Employee, error)
	Create(ctx context.Context, req model.EmployeeRequest) (model.Employee, error)
	Update(ctx context.Context, id model.ID, req model.EmployeeRequest) (model.Employee, error)
	Delete(ctx context.Context, id model.ID) error
}

// DepartmentsService provides department select options.
type DepartmentsService interface {
	List(ctx context.Context) ([]model.Department, error)
}

// ContractsService is the contract tracker as the UI uses it.
type ContractsService interface {
	List(ctx context.Context) ([]model.Contract, error)
	ListActive(ctx context.Context) ([]model.Contract, error)
	Get(ctx context.Context, id model.ID) (model.Contract, error)
	Create(ctx context.Context, req model.ContractRequest) (model.Contract, error)
	Update(ctx context.Context, id model.ID, req model.ContractRequest) (model.Contract, error)
	Delete(ctx context.Context, id model.ID) error
}

// AttendanceService is the attendance log as the UI uses it.
type AttendanceService interface {
	List(ctx context.Context) ([]model.AttendanceRecord, error)
	Get(ctx context.Context, id model.ID) (model.AttendanceRecord, error)
	Create(ctx context.Context, req model.AttendanceRequest) (model.AttendanceRecord, error)
	Update(ctx context.Context, id model.ID, req model.AttendanceRequest) (model.AttendanceRecord, error)
	Delete(ctx context.Context, id model.ID) error
}

// DashboardService provides the summary counters and report data.
type DashboardService interface {
	Summary(ctx context.Context) (model.DashboardSummary, error)
	Snapshot(ctx context.Context) (service.Snapshot, error)
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ EmployeesService   = (*service.EmployeeService)(nil)
	_ DepartmentsService = (*service.DepartmentService)(nil)
	_ ContractsService   = (*service.ContractService)(nil)
	_ AttendanceService  = (*service.AttendanceService)(nil)
	_ DashboardService   = (*service.DashboardService)(nil)
)

// Footer text shown under the sidebar.
const (
	FooterProduct  = "HR System v1.0"
	FooterLocation = "Kigali, Rwanda"
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T             *TemplateRenderer
	EmployeeSvc   EmployeesService
	Departments   DepartmentsService
	ContractSvc   ContractsService
	AttendanceSvc AttendanceService
	Dashboard     DashboardService

	// Guard ends sessions the HR service rejects.
	Guard   *RouteGuard
	Cookies CookieConfig
	// LogoutOnUnauthorized sends the viewer back to /login when the HR service answers 401.
	// When false a 401 is shown like any other failed request.
	LogoutOnUnauthorized bool

	IsDev  bool
	Logger *slog.Logger
	Now    func() time.Time
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
func (h *UIHandlers) buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:            meta.Title,
		PageTitle:        meta.PageTitle,
		CurrentPage:      meta.CurrentPage,
		CSRFToken:        GetCSRFToken(r),
		Nav:              NavItems(r.URL.Path),
		SidebarCollapsed: SidebarCollapsed(r),
		ServerTime:       uiutil.FormatClock(h.now()),
		Footer:           viewmodel.Footer{Product: FooterProduct, Location: FooterLocation},
	}
	if layout.PageTitle == "" {
		layout.PageTitle = PageName(r.URL.Path)
	}
	if layout.Title == "" {
		layout.Title = layout.PageTitle
	}

	if session := GetSessionFromContext(r.Context()); session != nil && session.IsAuthenticated() {
		layout.IsAuthenticated = true
		layout.User = &viewmodel.User{Email: session.Email, Name: session.Name()}
	}
	return layout
}

// basePageData constructs the common page data map with user context.
func (h *UIHandlers) basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := h.buildLayout(r, meta)
	data := map[string]any{
		"Title":            layout.Title,
		"PageTitle":        layout.PageTitle,
		"CurrentPage":      layout.CurrentPage,
		"IsAuthenticated":  layout.IsAuthenticated,
		"Nav":              layout.Nav,
		"SidebarCollapsed": layout.SidebarCollapsed,
		"ServerTime":       layout.ServerTime,
		"Footer":           layout.Footer,
	}
	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, data map[string]any) error
}

// Page builds base data, optionally fetches content data, and renders.
// Fetch failures still render the page, with the failure as a notification.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := h.basePageData(r, spec.Meta)
	if spec.Fetch != nil {
		if err := spec.Fetch(r.Context(), data); err != nil {
			if h.handleServiceError(w, r, err) {
				return
			}
			markPageError(data, err)
		}
	}
	h.render(w, r, data)
}

// render writes a full page, or the content fragment for htmx requests.
func (h *UIHandlers) render(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if flash, ok := h.Cookies.consumeFlash(w, r); ok {
		data["Flash"] = flash
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}

	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	HTMX(w).ActivateNav(r.URL.Path)
	if flash, ok := data["Flash"].(Flash); ok {
		triggerToast(w, flash.Message, flash.Type)
	} else if msg, ok := data["ErrorMessage"].(string); ok && msg != "" {
		triggerToast(w, msg, ToastError)
	}

	layout := extractLayoutInfo(data)
	view := PartialView{
		Template:  ContentTemplateFor(layout.CurrentPage),
		Title:     layout.Title,
		PageTitle: layout.PageTitle,
	}
	if err := h.T.RenderPartial(w, view, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

// handleServiceError deals with failures that must not render the page.
// It reports true when the response has been written (or nothing more should be).
func (h *UIHandlers) handleServiceError(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return false
	case gateway.IsCanceled(err) || r.Context().Err() != nil:
		h.logger().DebugContext(r.Context(), "request canceled", "path", r.URL.Path, "error", err)
		return true
	case gateway.IsUnauthorized(err) && h.LogoutOnUnauthorized && h.Guard != nil:
		h.Guard.EndSession(w, r, "hr service rejected token")
		return true
	default:
		h.logger().WarnContext(r.Context(), "hr service call failed", "path", r.URL.Path, "error", err)
		return false
	}
}

func markPageError(data map[string]any, err error) {
	data["Error"] = true
	if existing, ok := data["ErrorMessage"].(string); ok && existing != "" {
		return
	}
	data["ErrorMessage"], _ = NotificationFor(err)
}

// extractLayoutInfo reads the chrome fields the partial render needs from page data.
func extractLayoutInfo(data map[string]any) viewmodel.Layout {
	var layout viewmodel.Layout
	layout.Title, _ = data["Title"].(string)
	layout.PageTitle, _ = data["PageTitle"].(string)
	layout.CurrentPage, _ = data["CurrentPage"].(string)
	return layout
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, stage string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", stage,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if !h.IsDev {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	body := `<div class="dev-error"><h2>Template Rendering Error</h2>` +
		`<p><strong>Context:</strong> ` + html.EscapeString(stage) + `</p>` +
		`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
		`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`
	if _, writeErr := w.Write([]byte(body)); writeErr != nil {
		h.logger().Error("failed to write template error response", "error", writeErr)
	}
}
