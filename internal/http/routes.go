package httpx

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	hrconsole "github.com/target/hr-console"
)

// SessionManager is the session lifecycle as the router needs it.
type SessionManager interface {
	SessionResolver
	SessionTerminator
}

// RouterServices holds everything NewRouter wires into handlers.
type RouterServices struct {
	Auth        AuthServiceInterface
	Sessions    SessionManager
	Employees   EmployeesService
	Departments DepartmentsService // optional
	Contracts   ContractsService
	Attendance  AttendanceService
	Dashboard   DashboardService

	Cookies CookieConfig
	// LogoutOnUnauthorized ends the session when the HR service answers 401.
	LogoutOnUnauthorized bool
	// Compression is nil when gzip is disabled.
	Compression *CompressionConfig

	// TemplateFS and StaticFS override the embedded assets (tests, dev mode).
	TemplateFS fs.FS
	StaticFS   fs.FS

	IsDev  bool
	Logger *slog.Logger
	Now    func() time.Time
}

// NewRouter builds the console handler: middleware chain, guard and every route.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS(services),
		DevMode:    services.IsDev,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	guard := &RouteGuard{Sessions: services.Sessions, Cookies: services.Cookies, Logger: logger}
	ui := &UIHandlers{
		T:                    tr,
		EmployeeSvc:          services.Employees,
		Departments:          services.Departments,
		ContractSvc:          services.Contracts,
		AttendanceSvc:        services.Attendance,
		Dashboard:            services.Dashboard,
		Guard:                guard,
		Cookies:              services.Cookies,
		LogoutOnUnauthorized: services.LogoutOnUnauthorized,
		IsDev:                services.IsDev,
		Logger:               logger,
		Now:                  services.Now,
	}
	guard.Unavailable = http.HandlerFunc(ui.SessionUnavailable)
	authHandlers := &AuthHandlers{
		Svc:      services.Auth,
		Sessions: services.Sessions,
		T:        tr,
		Cookies:  services.Cookies,
		Logger:   logger,
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /static/", staticHandler(services))

	registerAuthRoutes(mux, authHandlers, guard)
	registerUIRoutes(mux, ui, guard)

	var handler http.Handler = &notFoundHandler{mux: mux, notFound: guard.Load(http.HandlerFunc(ui.NotFound))}
	handler = CSRFProtection(CSRFConfig{
		CookieDomain: services.Cookies.Domain,
		SecureCookie: services.Cookies.Secure,
	})(handler)
	if services.Compression != nil {
		handler = Compression(*services.Compression)(handler)
	}
	handler = BrowserDetection()(handler)
	handler = Recover(logger)(handler)
	handler = Logging(logger)(handler)
	return handler, nil
}

func templateFS(services RouterServices) fs.FS {
	if services.TemplateFS != nil {
		return services.TemplateFS
	}
	if services.IsDev {
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(hrconsole.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

// staticHandler serves /static/* from the embedded assets, or from disk in dev mode.
func staticHandler(services RouterServices) http.Handler {
	fsys := services.StaticFS
	if fsys == nil {
		if services.IsDev {
			fsys = os.DirFS("frontend/static")
		} else if sub, err := fs.Sub(hrconsole.StaticFS, "frontend/static"); err == nil {
			fsys = sub
		} else {
			fsys = os.DirFS("frontend/static")
		}
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(fsys))), services.IsDev)
}

//nolint:gochecknoglobals // compiled once
var hashedFilePattern = regexp.MustCompile(`\.[a-f0-9]{8}\.(?:js|css)(?:\.map)?$`)

// staticWithCacheHeaders lets browsers keep content-hashed assets and revalidate the rest.
func staticWithCacheHeaders(handler http.Handler, isDev bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case hashedFilePattern.MatchString(r.URL.Path):
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case isDev:
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		default:
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		handler.ServeHTTP(w, r)
	})
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, guard *RouteGuard) {
	public := func(fn http.HandlerFunc) http.Handler { return guard.Load(guard.PublicOnly(fn)) }
	mux.Handle("GET /login", public(h.LoginPage))
	mux.Handle("POST /login", public(h.LoginSubmit))
	mux.Handle("GET /auth/oauth/start", public(h.OAuthStart))
	mux.Handle("GET /auth/callback", guard.Load(http.HandlerFunc(h.Callback)))
	mux.Handle("GET /auth/status", guard.Load(http.HandlerFunc(h.Status)))
	// Logout only loads the session so a stale cookie is always cleared.
	mux.Handle("POST /logout", guard.Load(http.HandlerFunc(h.Logout)))
}

// registerUIRoutes wires the protected console pages.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, guard *RouteGuard) {
	protect := func(fn http.HandlerFunc) http.Handler { return guard.Load(guard.Protect(fn)) }

	mux.Handle("GET /{$}", protect(h.Index))
	mux.Handle("GET /report", protect(h.ReportPreview))
	mux.Handle("GET /report.pdf", protect(h.HRReport))
	mux.Handle("GET /logout", protect(h.LogoutPage))
	mux.Handle("POST /ui/sidebar", protect(h.ToggleSidebar))

	mux.Handle("GET /register", protect(h.Employees))
	mux.Handle("GET /register/{id}/edit", protect(h.EmployeeEdit))
	mux.Handle("POST /register", protect(h.EmployeeCreate))
	mux.Handle("POST /register/{id}", protect(h.EmployeeUpdate))
	mux.Handle("POST /register/{id}/delete", protect(h.EmployeeDelete))

	mux.Handle("GET /contracts", protect(h.Contracts))
	mux.Handle("GET /active-contracts", protect(h.ActiveContracts))
	mux.Handle("GET /contracts/report.pdf", protect(h.ContractsReport))
	mux.Handle("GET /contracts/{id}", protect(h.ContractView))
	mux.Handle("GET /contracts/{id}/edit", protect(h.ContractEdit))
	mux.Handle("POST /contracts", protect(h.ContractCreate))
	mux.Handle("POST /contracts/{id}", protect(h.ContractUpdate))
	mux.Handle("POST /contracts/{id}/delete", protect(h.ContractDelete))

	mux.Handle("GET /attendance", protect(h.Attendance))
	mux.Handle("GET /attendance-records", protect(h.Attendance))
	mux.Handle("GET /attendance-records/report.pdf", protect(h.AttendanceReport))
	mux.Handle("GET /attendance-records/{id}", protect(h.AttendanceView))
	mux.Handle("GET /attendance-records/{id}/edit", protect(h.AttendanceEdit))
	mux.Handle("GET /attendance-records/{id}/report.pdf", protect(h.AttendanceRecordReport))
	mux.Handle("POST /attendance-records", protect(h.AttendanceCreate))
	mux.Handle("POST /attendance-records/{id}", protect(h.AttendanceUpdate))
	mux.Handle("POST /attendance-records/{id}/delete", protect(h.AttendanceDelete))
}

// notFoundHandler wraps a ServeMux and replaces its plain 404 with the console's.
type notFoundHandler struct {
	mux      *http.ServeMux
	notFound http.Handler
}

func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern != "" {
		h.mux.ServeHTTP(w, r)
		return
	}
	// Unmatched paths and wrong methods both land here; keep 405 for the latter.
	cw := newCaptureWriter()
	h.mux.ServeHTTP(cw, r)
	if cw.status != http.StatusNotFound {
		cw.flushTo(w)
		return
	}
	if strings.HasPrefix(r.URL.Path, "/static/") {
		cw.flushTo(w)
		return
	}
	h.notFound.ServeHTTP(w, r)
}

// captureWriter buffers the mux's own fallback response.
type captureWriter struct {
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	_, _ = w.Write(c.buf.Bytes())
}
