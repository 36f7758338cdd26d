package ports_test

import (
	"testing"

	"github.com/target/hr-console/internal/mocks"
	authmocks "github.com/target/hr-console/internal/mocks/auth"
	"github.com/target/hr-console/internal/ports"
)

// Compile-time checks that the hand-written doubles and the generated mocks satisfy the ports.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.AuthProvider = (*authmocks.MockAuthProvider)(nil)
	var _ ports.SessionStore = (*authmocks.MemorySessionStore)(nil)
	var _ ports.Authenticator = (*authmocks.StubAuthenticator)(nil)

	var _ ports.SessionStore = (*mocks.MockSessionStore)(nil)
	var _ ports.Authenticator = (*mocks.MockAuthenticator)(nil)
	var _ ports.Gateway = (*mocks.MockGateway)(nil)
}
