package token

import (
	"errors"
	"testing"
	"time"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

func TestResetCodec_RoundTrip(t *testing.T) {
	codec := NewResetCodec("test-secret", time.Hour)
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec.Now = func() time.Time { return issued }

	raw, err := codec.Generate("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	payload, err := codec.Parse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if payload.Login != "alice" || payload.Email != "alice@example.com" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if !payload.ExpiresAt.Equal(issued.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %v", payload.ExpiresAt)
	}
}

func TestResetCodec_ParseSkipsExpiryCheck(t *testing.T) {
	codec := NewResetCodec("test-secret", time.Hour)
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec.Now = func() time.Time { return issued }

	raw, err := codec.Generate("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// Parse still succeeds after the window so the caller can report
	// "expired" rather than a generic parse failure.
	codec.Now = func() time.Time { return issued.Add(2 * time.Hour) }
	payload, err := codec.Parse(raw)
	if err != nil {
		t.Fatalf("parse of expired token failed: %v", err)
	}
	if !payload.ExpiresAt.Before(codec.Now()) {
		t.Fatalf("expected surfaced expiry in the past")
	}
}

func TestResetCodec_Malformed(t *testing.T) {
	codec := NewResetCodec("test-secret", time.Hour)

	for _, raw := range []string{"", "garbage", "x.y.z"} {
		if _, err := codec.Parse(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}

func TestResetCodec_Tampered(t *testing.T) {
	codec := NewResetCodec("test-secret", time.Hour)

	raw, err := codec.Generate("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	mutated := []byte(raw)
	mid := len(mutated) / 2
	if mutated[mid] == 'A' {
		mutated[mid] = 'B'
	} else {
		mutated[mid] = 'A'
	}
	if _, err := codec.Parse(string(mutated)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestResetCodec_RejectsSessionToken(t *testing.T) {
	sessions := NewSessionCodec("shared-secret", time.Hour)
	resets := NewResetCodec("shared-secret", time.Hour)

	raw, err := sessions.Encode("u-1", "alice", []domain.Role{domain.RoleUser})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if _, err := resets.Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("session token accepted by reset codec: %v", err)
	}
}
