// Package apiauth logs in against the HR service's own login endpoint.
package apiauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/target/hr-console/internal/domain/auth"
	apperrors "github.com/target/hr-console/internal/errors"
	"github.com/target/hr-console/internal/gateway"
)

// ErrInvalidCredentials is returned when the HR service refuses the login.
var ErrInvalidCredentials = apperrors.Unauthorized("Invalid email or password.")

// Poster is the slice of the gateway used to submit the login form.
type Poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

// Options configures an Authenticator.
type Options struct {
	Gateway   Poster // Required
	LoginPath string // Default "/auth/login"
	// TokenPath and NamePath are JMESPath expressions over the login response.
	TokenPath string
	NamePath  string
	Logger    *slog.Logger
}

// Authenticator implements ports.Authenticator by posting credentials to the HR service.
type Authenticator struct {
	gw        Poster
	loginPath string
	token     gateway.Expression
	name      gateway.Expression
	logger    *slog.Logger
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// New validates opts and compiles the response expressions.
func New(opts Options) (*Authenticator, error) {
	if opts.Gateway == nil {
		return nil, errors.New("gateway is required")
	}
	loginPath := strings.TrimSpace(opts.LoginPath)
	if loginPath == "" {
		loginPath = "/auth/login"
	}
	tokenPath := opts.TokenPath
	if strings.TrimSpace(tokenPath) == "" {
		tokenPath = "token || access_token || data.token"
	}
	token, err := gateway.CompileExpression(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("token path: %w", err)
	}
	name, err := gateway.CompileExpression(opts.NamePath)
	if err != nil {
		return nil, fmt.Errorf("name path: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		gw:        opts.Gateway,
		loginPath: loginPath,
		token:     token,
		name:      name,
		logger:    logger.With("component", "apiauth"),
	}, nil
}

// Authenticate posts the credentials and extracts the bearer token from the answer.
func (a *Authenticator) Authenticate(ctx context.Context, creds domainauth.Credentials) (domainauth.Identity, error) {
	creds = creds.Normalize()
	if creds.Email == "" || creds.Password == "" {
		return domainauth.Identity{}, apperrors.Validation("Email and password are required.")
	}

	var resp any
	if err := a.gw.Post(ctx, a.loginPath, loginRequest(creds), &resp); err != nil {
		return domainauth.Identity{}, a.mapError(ctx, err)
	}

	token := stringResult(a.token, resp)
	if token == "" {
		a.logger.WarnContext(ctx, "login response carried no token", "path", a.loginPath)
		return domainauth.Identity{}, apperrors.Internal("The HR service did not return a session token.")
	}

	return domainauth.Identity{
		Email: creds.Email,
		Name:  stringResult(a.name, resp),
		Token: token,
	}, nil
}

func (a *Authenticator) mapError(ctx context.Context, err error) error {
	var gwErr *gateway.Error
	if !errors.As(err, &gwErr) {
		return err
	}
	switch {
	case gwErr.Kind == gateway.KindUnauthorized,
		gwErr.Kind == gateway.KindRejected && (gwErr.Status == http.StatusBadRequest ||
			gwErr.Status == http.StatusForbidden || gwErr.Status == http.StatusUnprocessableEntity):
		a.logger.InfoContext(ctx, "login refused", "status", gwErr.Status)
		if gwErr.Message != "" {
			return apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, gwErr.Message)
		}
		return apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, ErrInvalidCredentials.Message)
	case gwErr.Kind == gateway.KindCanceled:
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "Login was canceled.")
	case gwErr.Kind == gateway.KindNetwork:
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "Unable to reach the HR service. Please try again.")
	default:
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "Login failed (%s).", gwErr.Kind)
	}
}

func stringResult(expr gateway.Expression, data any) string {
	if expr.Empty() {
		return ""
	}
	res, err := expr.Search(data)
	if err != nil {
		return ""
	}
	switch v := res.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strings.TrimSpace(fmt.Sprintf("%.0f", v))
	default:
		return ""
	}
}
