package gateway

import (
	"context"

	domainauth "github.com/target/hr-console/internal/domain/auth"
)

// CredentialSource supplies the bearer token for an outgoing call.
// An empty token means the Authorization header is omitted.
type CredentialSource interface {
	Token(ctx context.Context) string
}

// CredentialFunc adapts a function to CredentialSource.
type CredentialFunc func(ctx context.Context) string

// Token implements CredentialSource.
func (f CredentialFunc) Token(ctx context.Context) string { return f(ctx) }

// SessionCredentials reads the token of the session carried in the request context.
func SessionCredentials() CredentialSource {
	return CredentialFunc(func(ctx context.Context) string {
		sess, ok := domainauth.SessionFromContext(ctx)
		if !ok || !sess.IsAuthenticated() {
			return ""
		}
		return sess.Token
	})
}

// StaticToken always returns token. Used for the login call, which has no session yet.
func StaticToken(token string) CredentialSource {
	return CredentialFunc(func(context.Context) string { return token })
}
