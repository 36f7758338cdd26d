package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "Dashboard"},
		{"", "Dashboard"},
		{"/register", "Employee Registration"},
		{"/register/42/edit", "Employee Registration"},
		{"/contracts/7", "Contracts"},
		{"/active-contracts", "Active Contracts"},
		{"/attendance-records/3/report.pdf", "Attendance Records"},
		{"/report", "HR Report"},
		{"/nowhere", "Dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, PageName(tt.path))
		})
	}
}

func TestIsPublicPath(t *testing.T) {
	assert.True(t, IsPublicPath("/login"))
	assert.True(t, IsPublicPath("/static/css/app.css"))
	assert.True(t, IsPublicPath("/auth/callback"))
	assert.True(t, IsPublicPath("/healthz"))
	assert.False(t, IsPublicPath("/"))
	assert.False(t, IsPublicPath("/contracts"))
	assert.False(t, IsPublicPath("/unknown"))
}

func TestNavItems(t *testing.T) {
	activeHref := func(path string) string {
		for _, item := range NavItems(path) {
			if item.Active {
				return item.Href
			}
		}
		return ""
	}

	items := NavItems("/")
	require.Len(t, items, 4)
	assert.Equal(t, "/", items[0].Href)
	assert.Equal(t, "Attendance Records", items[3].Label)

	assert.Equal(t, "/", activeHref("/"))
	assert.Equal(t, "/register", activeHref("/register/9/edit"))
	assert.Equal(t, "/contracts", activeHref("/active-contracts"))
	assert.Equal(t, "/attendance-records", activeHref("/attendance"))
	assert.Empty(t, activeHref("/logout"))
}

func TestToggleSidebar(t *testing.T) {
	h := &UIHandlers{}

	t.Run("collapses and returns to referer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ui/sidebar", nil)
		req.Header.Set("Referer", "http://console.local/contracts?status=Active")
		rec := httptest.NewRecorder()

		h.ToggleSidebar(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/contracts?status=Active", rec.Header().Get("Location"))
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "sidebar", cookies[0].Name)
		assert.Equal(t, "collapsed", cookies[0].Value)
	})

	t.Run("expands over htmx", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ui/sidebar", nil)
		req.Header.Set("HX-Request", "true")
		req.AddCookie(&http.Cookie{Name: "sidebar", Value: "collapsed"})
		rec := httptest.NewRecorder()

		require.True(t, SidebarCollapsed(req))
		h.ToggleSidebar(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("HX-Trigger"), "sidebar:toggled")
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "expanded", cookies[0].Value)
	})

	t.Run("login referer falls back to root", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ui/sidebar", nil)
		req.Header.Set("Referer", "/login")
		rec := httptest.NewRecorder()

		h.ToggleSidebar(rec, req)

		assert.Equal(t, "/", rec.Header().Get("Location"))
	})
}
