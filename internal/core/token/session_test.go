package token

import (
	"errors"
	"testing"
	"time"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

func TestSessionCodec_RoundTrip(t *testing.T) {
	codec := NewSessionCodec("test-secret", time.Hour)

	raw, err := codec.Encode("u-1", "alice", []domain.Role{domain.RoleUser, domain.RoleAdmin})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if raw == "" {
		t.Fatalf("expected non-empty token")
	}

	p, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if p.ID != "u-1" || p.Login != "alice" {
		t.Fatalf("unexpected principal: %+v", p)
	}
	if len(p.Roles) != 2 || p.Roles[0] != domain.RoleUser || p.Roles[1] != domain.RoleAdmin {
		t.Fatalf("roles did not round-trip: %v", p.Roles)
	}
}

func TestSessionCodec_TamperDetection(t *testing.T) {
	codec := NewSessionCodec("test-secret", time.Hour)

	raw, err := codec.Encode("u-1", "alice", []domain.Role{domain.RoleUser})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	// Flipping any single character must never yield a successful decode
	// with altered claims.
	for i := 0; i < len(raw); i++ {
		mutated := []byte(raw)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if string(mutated) == raw {
			continue
		}
		if _, err := codec.Decode(string(mutated)); err == nil {
			t.Fatalf("tampered token accepted (flipped byte %d)", i)
		}
	}
}

func TestSessionCodec_Expiry(t *testing.T) {
	codec := NewSessionCodec("test-secret", time.Hour)
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec.Now = func() time.Time { return issued }

	raw, err := codec.Encode("u-1", "alice", []domain.Role{domain.RoleUser})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	// Still valid one second before expiry.
	codec.Now = func() time.Time { return issued.Add(time.Hour - time.Second) }
	if _, err := codec.Decode(raw); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}

	// Expired one second past the window.
	codec.Now = func() time.Time { return issued.Add(time.Hour + time.Second) }
	if _, err := codec.Decode(raw); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestSessionCodec_WrongKey(t *testing.T) {
	codec := NewSessionCodec("secret-a", time.Hour)
	other := NewSessionCodec("secret-b", time.Hour)

	raw, err := codec.Encode("u-1", "alice", []domain.Role{domain.RoleUser})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if _, err := other.Decode(raw); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}
}

func TestSessionCodec_RejectsResetToken(t *testing.T) {
	sessions := NewSessionCodec("shared-secret", time.Hour)
	resets := NewResetCodec("shared-secret", time.Hour)

	raw, err := resets.Generate("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// Same shared secret, different purpose: the derived key differs, so
	// the signature must not verify.
	if _, err := sessions.Decode(raw); err == nil {
		t.Fatalf("reset token accepted as session token")
	}
}

func TestSessionCodec_Garbage(t *testing.T) {
	codec := NewSessionCodec("test-secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Decode(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}
