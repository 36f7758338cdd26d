package staticauth

// Package staticauth accepts a single configured account for local development.
// It never calls the HR service; the configured token is forwarded as-is.

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	domainauth "github.com/target/hr-console/internal/domain/auth"
	apperrors "github.com/target/hr-console/internal/errors"
)

// ErrInvalidCredentials is returned for any email or password mismatch.
var ErrInvalidCredentials = apperrors.Unauthorized("Invalid email or password.")

// Config describes the accepted account. Exactly one of Password or PasswordHash is needed;
// PasswordHash wins when both are set.
type Config struct {
	Email        string
	Name         string
	Password     string
	PasswordHash string
	Token        string
}

// Authenticator implements ports.Authenticator for a single static account.
type Authenticator struct {
	email string
	name  string
	hash  []byte
	token string
}

// New validates cfg. A plaintext password is hashed once here.
func New(cfg Config) (*Authenticator, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" {
		return nil, errors.New("static auth: email is required")
	}
	if cfg.Token == "" {
		return nil, errors.New("static auth: token is required")
	}

	var hash []byte
	switch {
	case cfg.PasswordHash != "":
		hash = []byte(cfg.PasswordHash)
		if _, err := bcrypt.Cost(hash); err != nil {
			return nil, fmt.Errorf("static auth: password hash: %w", err)
		}
	case cfg.Password != "":
		h, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("static auth: hash password: %w", err)
		}
		hash = h
	default:
		return nil, errors.New("static auth: password or password hash is required")
	}

	name := cfg.Name
	if name == "" {
		name = "HR Admin"
	}
	return &Authenticator{email: email, name: name, hash: hash, token: cfg.Token}, nil
}

func (a *Authenticator) Authenticate(ctx context.Context, creds domainauth.Credentials) (domainauth.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domainauth.Identity{}, err
	}
	creds = creds.Normalize()
	if creds.Email == "" || creds.Password == "" {
		return domainauth.Identity{}, apperrors.Validation("Email and password are required.")
	}

	// Always run the bcrypt comparison so a wrong email costs the same as a wrong password.
	pwErr := bcrypt.CompareHashAndPassword(a.hash, []byte(creds.Password))
	emailOK := subtle.ConstantTimeCompare([]byte(creds.Email), []byte(a.email)) == 1
	if pwErr != nil || !emailOK {
		return domainauth.Identity{}, ErrInvalidCredentials
	}

	return domainauth.Identity{Email: a.email, Name: a.name, Token: a.token}, nil
}

// HashPassword returns a bcrypt hash suitable for STATIC_AUTH_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}
