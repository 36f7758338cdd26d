package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/target/hr-console/internal/domain/auth"
	apperrors "github.com/target/hr-console/internal/errors"
	"github.com/target/hr-console/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider  = (*MockAuthProvider)(nil)
	_ ports.SessionStore  = (*MemorySessionStore)(nil)
	_ ports.Authenticator = (*StubAuthenticator)(nil)
)

// ErrNotFound is returned by MemorySessionStore when a session is not present.
var ErrNotFound error = apperrors.NotFound("session not found")

// ErrInvalidCredentials is returned by StubAuthenticator for unknown accounts.
var ErrInvalidCredentials error = apperrors.Unauthorized("Invalid email or password.")

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	AuthURL     string
	DefaultUser domainauth.Identity

	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL: "https://mock-idp/auth",
		DefaultUser: domainauth.Identity{
			Email: "hr.manager@example.com",
			Name:  "HR Manager",
			Token: "idp-access-token",
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}
	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}
	return authURL, fmt.Sprintf("state-%d", m.callCount), fmt.Sprintf("nonce-%d", m.callCount), nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	user := m.DefaultUser
	user.ExpiresAt = time.Now().Add(time.Hour)
	return user, nil
}

// StubAuthenticator accepts a fixed set of email/password pairs.
type StubAuthenticator struct {
	// Accounts maps email to password.
	Accounts map[string]string
	// Token is returned for every successful login. Defaults to "tok".
	Token string
	// Err, when set, is returned for every call.
	Err error

	mu    sync.Mutex
	calls []domainauth.Credentials
}

// NewStubAuthenticator creates a StubAuthenticator accepting a single account.
func NewStubAuthenticator(email, password, token string) *StubAuthenticator {
	return &StubAuthenticator{Accounts: map[string]string{email: password}, Token: token}
}

func (s *StubAuthenticator) Authenticate(_ context.Context, creds domainauth.Credentials) (domainauth.Identity, error) {
	s.mu.Lock()
	s.calls = append(s.calls, creds)
	s.mu.Unlock()

	if s.Err != nil {
		return domainauth.Identity{}, s.Err
	}
	creds = creds.Normalize()
	want, ok := s.Accounts[creds.Email]
	if !ok || want != creds.Password {
		return domainauth.Identity{}, ErrInvalidCredentials
	}
	token := s.Token
	if token == "" {
		token = "tok"
	}
	return domainauth.Identity{Email: creds.Email, Token: token}, nil
}

// Calls returns the credentials seen so far.
func (s *StubAuthenticator) Calls() []domainauth.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domainauth.Credentials(nil), s.calls...)
}

// MemorySessionStore is an in-memory session store for unit tests.
// Set GetErr to simulate an unavailable backend.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	GetErr    error
	SaveErr   error
	DeleteErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if m.GetErr != nil {
		return domainauth.Session{}, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if id == "" || !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
