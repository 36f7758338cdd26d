package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/hr-console/internal/domain/auth"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   string
}

type upstream struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  http.HandlerFunc
	srv      *httptest.Server
}

func newUpstream(t *testing.T, h http.HandlerFunc) *upstream {
	t.Helper()
	u := &upstream{handler: h}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		u.mu.Lock()
		u.requests = append(u.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   string(b),
		})
		u.mu.Unlock()
		u.handler(w, r)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) last(t *testing.T) recordedRequest {
	t.Helper()
	u.mu.Lock()
	defer u.mu.Unlock()
	require.NotEmpty(t, u.requests)
	return u.requests[len(u.requests)-1]
}

func newTestClient(t *testing.T, baseURL string, mutate ...func(*Options)) *Client {
	t.Helper()
	opts := Options{
		BaseURL:          baseURL + "/api",
		Timeout:          2 * time.Second,
		ExtraHeaders:     map[string]string{"ngrok-skip-browser-warning": "true"},
		ErrorMessagePath: "message || error || detail",
	}
	for _, m := range mutate {
		m(&opts)
	}
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)

	_, err = New(Options{BaseURL: "/relative"})
	require.Error(t, err)

	_, err = New(Options{BaseURL: "http://x", ErrorMessagePath: "message ||"})
	require.Error(t, err)
}

func TestClient_AttachesSessionTokenAndHeaders(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": 1, "firstName": "Alice"}})
	})
	c := newTestClient(t, up.srv.URL)

	ctx := domainauth.WithSession(context.Background(), domainauth.Session{ID: "s1", Token: "tok"})
	var out []map[string]any
	require.NoError(t, c.Get(ctx, "employees", url.Values{"q": {"ali"}}, &out))

	req := up.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/employees", req.Path)
	assert.Equal(t, "q=ali", req.Query)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
	assert.Equal(t, "true", req.Header.Get("Ngrok-Skip-Browser-Warning"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Len(t, out, 1)
}

func TestClient_OmitsAuthorizationWithoutSession(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestClient(t, up.srv.URL)

	require.NoError(t, c.Delete(context.Background(), "/employees/3"))
	assert.Empty(t, up.last(t).Header.Get("Authorization"))

	// A session without a token counts as logged out.
	ctx := domainauth.WithSession(context.Background(), domainauth.Session{ID: "s1"})
	require.NoError(t, c.Delete(ctx, "/employees/3"))
	assert.Empty(t, up.last(t).Header.Get("Authorization"))
}

func TestClient_PostSendsJSONBody(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"id": "c9"})
	})
	c := newTestClient(t, up.srv.URL, func(o *Options) { o.Credentials = StaticToken("abc") })

	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, c.Post(context.Background(), "contracts", map[string]string{"employeeName": "Alice"}, &out))

	req := up.last(t)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"employeeName":"Alice"}`, req.Body)
	assert.Equal(t, "Bearer abc", req.Header.Get("Authorization"))
	assert.Equal(t, "c9", out.ID)
}

func TestClient_DataEnvelope(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{{"id": 1}, {"id": 2}}})
	})
	c := newTestClient(t, up.srv.URL, func(o *Options) { o.DataPath = "data" })

	var out []map[string]any
	require.NoError(t, c.Get(context.Background(), "attendance", nil, &out))
	assert.Len(t, out, 2)
}

func TestClient_ErrorKinds(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantKind    Kind
		wantStatus  int
		wantMessage string
	}{
		{
			name: "rejected with json message",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Email already registered"})
			},
			wantKind:    KindRejected,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Email already registered",
		},
		{
			name: "rejected with detail field",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusConflict, map[string]string{"detail": "duplicate"})
			},
			wantKind:    KindRejected,
			wantStatus:  http.StatusConflict,
			wantMessage: "duplicate",
		},
		{
			name: "rejected with plain text",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			},
			wantKind:    KindRejected,
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: "service unavailable",
		},
		{
			name: "rejected with html page",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = io.WriteString(w, "<html>bad gateway</html>")
			},
			wantKind:   KindRejected,
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
			},
			wantKind:    KindUnauthorized,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "token expired",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = io.WriteString(w, "not json")
			},
			wantKind: KindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := newUpstream(t, tt.handler)
			c := newTestClient(t, up.srv.URL)

			var out []map[string]any
			err := c.Get(context.Background(), "employees", nil, &out)
			require.Error(t, err)

			var gwErr *Error
			require.ErrorAs(t, err, &gwErr)
			assert.Equal(t, tt.wantKind, gwErr.Kind)
			assert.Equal(t, tt.wantStatus, gwErr.Status)
			assert.Equal(t, tt.wantMessage, gwErr.Message)
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := newTestClient(t, base)
	err := c.Get(context.Background(), "employees", nil, nil)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindNetwork, kind)
}

func TestClient_TimeoutIsNetworkFailure(t *testing.T) {
	release := make(chan struct{})
	up := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })
	c := newTestClient(t, up.srv.URL, func(o *Options) { o.Timeout = 50 * time.Millisecond })

	err := c.Get(context.Background(), "employees", nil, nil)
	kind, _ := KindOf(err)
	assert.Equal(t, KindNetwork, kind)
}

func TestClient_CallerCancellation(t *testing.T) {
	started := make(chan struct{})
	up := newUpstream(t, func(_ http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})
	c := newTestClient(t, up.srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Get(ctx, "employees", nil, nil) }()

	<-started
	cancel()

	select {
	case err := <-errCh:
		assert.True(t, IsCanceled(err))
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("call did not abort after cancellation")
	}
}

func TestClient_AlreadyCanceledContext(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	c := newTestClient(t, up.srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Get(ctx, "employees", nil, nil)
	assert.True(t, IsCanceled(err))

	up.mu.Lock()
	defer up.mu.Unlock()
	assert.Empty(t, up.requests)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&Error{Kind: KindRejected, Status: http.StatusNotFound}))
	assert.False(t, IsNotFound(&Error{Kind: KindRejected, Status: http.StatusBadRequest}))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestError_Message(t *testing.T) {
	err := &Error{Kind: KindRejected, Method: "POST", Path: "employees", Status: 400, Message: "bad"}
	assert.Equal(t, "POST employees: rejected (400): bad", err.Error())
}
