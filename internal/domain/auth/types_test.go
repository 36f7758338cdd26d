package auth

import (
	"context"
	"testing"
	"time"
)

func TestSession_IsAuthenticated(t *testing.T) {
	if !(Session{Token: "abc"}).IsAuthenticated() {
		t.Fatalf("expected authenticated")
	}
	if (Session{Email: "a@b.c"}).IsAuthenticated() {
		t.Fatalf("did not expect authenticated without token")
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if (Session{}).Expired(now) {
		t.Fatalf("zero expiry should never expire")
	}
	if !(Session{ExpiresAt: now}).Expired(now) {
		t.Fatalf("expiry at now should be expired")
	}
	if (Session{ExpiresAt: now.Add(time.Minute)}).Expired(now) {
		t.Fatalf("future expiry should not be expired")
	}
}

func TestSession_Name(t *testing.T) {
	if got := (Session{Email: "jane@example.com"}).Name(); got != "jane@example.com" {
		t.Fatalf("Name() = %q", got)
	}
	if got := (Session{Email: "jane@example.com", DisplayName: "Jane"}).Name(); got != "Jane" {
		t.Fatalf("Name() = %q", got)
	}
}

func TestCredentials_Normalize(t *testing.T) {
	c := Credentials{Email: "  Admin@Example.COM ", Password: " pw "}.Normalize()
	if c.Email != "admin@example.com" || c.Password != " pw " {
		t.Fatalf("unexpected credentials: %+v", c)
	}
}

func TestSessionContext(t *testing.T) {
	if _, ok := SessionFromContext(context.Background()); ok {
		t.Fatalf("expected no session")
	}
	ctx := WithSession(context.Background(), Session{ID: "s1", Token: "t"})
	got, ok := SessionFromContext(ctx)
	if !ok || got.ID != "s1" {
		t.Fatalf("unexpected session: %+v ok=%v", got, ok)
	}
}

func TestState_String(t *testing.T) {
	if StateAuthenticated.String() != "authenticated" || State(9).String() != "unknown" {
		t.Fatalf("unexpected state strings")
	}
}
