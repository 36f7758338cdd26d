package httpx

import (
	"net/http"
	"strings"

	"github.com/target/hr-console/internal/http/ui/viewmodel"
)

// Route describes a navigable page of the console.
type Route struct {
	Path   string
	Name   string
	Public bool
	Icon   string // sidebar icon id; empty for routes not in the sidebar
}

//nolint:gochecknoglobals // static route table
var routeTable = []Route{
	{Path: "/", Name: "Dashboard", Icon: "home"},
	{Path: "/register", Name: "Employee Registration", Icon: "user-plus"},
	{Path: "/contracts", Name: "Contracts", Icon: "file-contract"},
	{Path: "/active-contracts", Name: "Active Contracts"},
	{Path: "/attendance-records", Name: "Attendance Records", Icon: "calendar-check"},
	{Path: "/attendance", Name: "Attendance"},
	{Path: "/report", Name: "HR Report"},
	{Path: "/logout", Name: "Logout"},
	{Path: "/login", Name: "Login", Public: true},
	{Path: "/auth/callback", Name: "Login", Public: true},
	{Path: "/auth/oauth/start", Name: "Login", Public: true},
	{Path: "/healthz", Name: "Health", Public: true},
}

// Routes returns the known page routes.
func Routes() []Route { return routeTable }

// lookupRoute matches the exact path first, then the first path segment
// ("/contracts/7/edit" belongs to "/contracts").
func lookupRoute(path string) (Route, bool) {
	if path == "" {
		path = "/"
	}
	for _, rt := range routeTable {
		if rt.Path == path {
			return rt, true
		}
	}
	seg := path
	if i := strings.IndexByte(strings.TrimPrefix(path, "/"), '/'); i >= 0 {
		seg = path[:i+1]
	}
	for _, rt := range routeTable {
		if rt.Path != "/" && rt.Path == seg {
			return rt, true
		}
	}
	return Route{}, false
}

// PageName returns the top bar label for path, falling back to "Dashboard".
func PageName(path string) string {
	if rt, ok := lookupRoute(path); ok {
		return rt.Name
	}
	return "Dashboard"
}

// IsPublicPath reports whether path is reachable without a session.
func IsPublicPath(path string) bool {
	if strings.HasPrefix(path, "/static/") {
		return true
	}
	rt, ok := lookupRoute(path)
	return ok && rt.Public
}

// NavItems builds the sidebar entries with the active item derived from path.
func NavItems(path string) []viewmodel.NavItem {
	current, _ := lookupRoute(path)
	if current.Path == "/active-contracts" {
		current.Path = "/contracts"
	}
	if current.Path == "/attendance" {
		current.Path = "/attendance-records"
	}
	items := make([]viewmodel.NavItem, 0, 4)
	for _, rt := range routeTable {
		if rt.Icon == "" {
			continue
		}
		items = append(items, viewmodel.NavItem{
			Label:  rt.Name,
			Href:   rt.Path,
			Icon:   rt.Icon,
			Active: rt.Path == current.Path,
		})
	}
	return items
}

const (
	sidebarCookie    = "sidebar"
	sidebarCollapsed = "collapsed"
	sidebarExpanded  = "expanded"
	sidebarMaxAge    = 365 * 24 * 3600
)

// SidebarCollapsed reports the persisted sidebar state.
func SidebarCollapsed(r *http.Request) bool {
	return readCookie(r, sidebarCookie) == sidebarCollapsed
}

// ToggleSidebar flips the sidebar state cookie.
// POST /ui/sidebar.
func (h *UIHandlers) ToggleSidebar(w http.ResponseWriter, r *http.Request) {
	next := sidebarCollapsed
	if SidebarCollapsed(r) {
		next = sidebarExpanded
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sidebarCookie,
		Value:    next,
		Path:     "/",
		Domain:   h.Cookies.Domain,
		HttpOnly: false,
		Secure:   h.Cookies.secure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   sidebarMaxAge,
	})

	if IsHTMX(r) {
		SetHXTrigger(w, eventSidebarToggled, map[string]bool{"collapsed": next == sidebarCollapsed})
		w.WriteHeader(http.StatusNoContent)
		return
	}
	back := safeRedirectFromURL(r.Referer())
	if back == "" {
		back = "/"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
