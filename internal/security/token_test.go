package security

import (
	"errors"
	"testing"
	"time"

	"github.com/taskvault/backend/domain"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager("test-secret", "taskvault-test", time.Minute)

	token, err := m.Issue("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	login, err := m.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if login != "alice" {
		t.Fatalf("expected alice, got %q", login)
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", "taskvault-test", -time.Minute)
	// Override the constructor's default TTL floor to mint an already
	// expired token.
	m.ttl = -time.Minute

	token, err := m.Issue("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.Parse(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", "taskvault-test", time.Minute)
	verifier := NewTokenManager("secret-b", "taskvault-test", time.Minute)

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := verifier.Parse(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_Malformed(t *testing.T) {
	m := NewTokenManager("test-secret", "taskvault-test", time.Minute)

	for _, garbage := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Parse(garbage); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("Parse(%q): expected ErrInvalidToken, got %v", garbage, err)
		}
	}
}

func TestTokenManager_TamperedPayload(t *testing.T) {
	m := NewTokenManager("test-secret", "taskvault-test", time.Minute)

	token, err := m.Issue("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tampered := token[:len(token)-4] + "AAAA"
	if _, err := m.Parse(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
