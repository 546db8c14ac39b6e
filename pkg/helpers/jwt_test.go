package helpers

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("super-secret", 2*time.Hour)
	identity := map[string]any{"email": "alice@example.com", "name": "Alice", "photoURL": "https://x/a.png"}

	tok, exp, err := m.Issue(identity)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if exp.Before(time.Now().Add(time.Hour)) {
		t.Fatalf("expiry too soon: %v", exp)
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	for k, want := range identity {
		if claims[k] != want {
			t.Fatalf("claim %q mismatch: got %v want %v", k, claims[k], want)
		}
	}
	if got := ClaimEmail(claims); got != "alice@example.com" {
		t.Fatalf("ClaimEmail = %q", got)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("secret", -time.Minute)
	tok, _, err := m.Issue(map[string]any{"email": "a@b.io"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = m.Verify(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := NewTokenManager("right-secret", time.Hour).Issue(map[string]any{"email": "a@b.io"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewTokenManager("wrong-secret", time.Hour).Verify(tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("k", time.Hour).Verify("not.a.jwt")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
