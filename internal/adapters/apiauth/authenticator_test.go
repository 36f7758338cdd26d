package apiauth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/hr-console/internal/domain/auth"
	apperrors "github.com/target/hr-console/internal/errors"
	"github.com/target/hr-console/internal/gateway"
	"github.com/target/hr-console/internal/ports"
	"github.com/target/hr-console/internal/testutil/workflowtest"
)

var _ ports.Authenticator = (*Authenticator)(nil)

func newAuthenticator(t *testing.T, hr *workflowtest.HRService) *Authenticator {
	t.Helper()
	gw, err := gateway.New(gateway.Options{
		BaseURL:          hr.BaseURL(),
		Timeout:          2 * time.Second,
		ErrorMessagePath: "message || error",
		Credentials:      gateway.StaticToken(""),
	})
	require.NoError(t, err)
	a, err := New(Options{Gateway: gw, NamePath: "user.name || name"})
	require.NoError(t, err)
	return a
}

func TestAuthenticate_Success(t *testing.T) {
	hr := workflowtest.NewHRService(t)
	hr.AddAccount("hr.manager@example.com", "s3cret", "tok-123")
	a := newAuthenticator(t, hr)

	id, err := a.Authenticate(context.Background(), domainauth.Credentials{
		Email:    "  HR.Manager@Example.com ",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", id.Token)
	assert.Equal(t, "hr.manager@example.com", id.Email)
	assert.Equal(t, "HR Admin", id.Name)

	calls := hr.CallsTo(http.MethodPost, "/auth/login")
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Authorization)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	hr := workflowtest.NewHRService(t)
	hr.AddAccount("hr.manager@example.com", "s3cret", "tok-123")
	a := newAuthenticator(t, hr)

	_, err := a.Authenticate(context.Background(), domainauth.Credentials{Email: "hr.manager@example.com", Password: "nope"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Invalid credentials.", apperrors.UserMessage(err, ""))
}

func TestAuthenticate_MissingFields(t *testing.T) {
	a, err := New(Options{Gateway: &fakePoster{}})
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background(), domainauth.Credentials{Email: "a@example.com"})
	assert.True(t, apperrors.IsValidation(err))
}

type fakePoster struct {
	path string
	resp any
	err  error
}

func (f *fakePoster) Post(_ context.Context, path string, _ any, out any) error {
	f.path = path
	if f.err != nil {
		return f.err
	}
	if p, ok := out.(*any); ok {
		*p = f.resp
	}
	return nil
}

func TestAuthenticate_ResponseShapes(t *testing.T) {
	tests := []struct {
		name      string
		resp      any
		wantToken string
		wantErr   bool
	}{
		{"token field", map[string]any{"token": "a"}, "a", false},
		{"access_token field", map[string]any{"access_token": "b"}, "b", false},
		{"nested data", map[string]any{"data": map[string]any{"token": "c"}}, "c", false},
		{"no token", map[string]any{"ok": true}, "", true},
		{"blank token", map[string]any{"token": "  "}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakePoster{resp: tt.resp}
			a, err := New(Options{Gateway: fp, LoginPath: "/login"})
			require.NoError(t, err)

			id, err := a.Authenticate(context.Background(), domainauth.Credentials{Email: "a@example.com", Password: "pw"})
			assert.Equal(t, "/login", fp.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsInternal(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, id.Token)
		})
	}
}

func TestAuthenticate_GatewayFailures(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"unauthorized", &gateway.Error{Kind: gateway.KindUnauthorized, Status: 401}, apperrors.IsUnauthorized},
		{"bad request", &gateway.Error{Kind: gateway.KindRejected, Status: 400}, apperrors.IsUnauthorized},
		{"server error", &gateway.Error{Kind: gateway.KindRejected, Status: 500}, apperrors.IsInternal},
		{"network", &gateway.Error{Kind: gateway.KindNetwork}, apperrors.IsUnavailable},
		{"canceled", &gateway.Error{Kind: gateway.KindCanceled}, apperrors.IsCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(Options{Gateway: &fakePoster{err: tt.err}})
			require.NoError(t, err)
			_, err = a.Authenticate(context.Background(), domainauth.Credentials{Email: "a@example.com", Password: "pw"})
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)

			var gwErr *gateway.Error
			assert.True(t, errors.As(err, &gwErr))
		})
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)

	_, err = New(Options{Gateway: &fakePoster{}, TokenPath: "token ||"})
	require.Error(t, err)
}
