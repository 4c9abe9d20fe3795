package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

type sessionClaims struct {
	jwt.RegisteredClaims
	Login string        `json:"login"`
	Roles []domain.Role `json:"roles"`
}

// SessionCodec mints and verifies the bearer tokens issued at login. It is a
// pure function of its inputs, the derived key, and the clock, and is safe
// for concurrent use.
type SessionCodec struct {
	key []byte
	ttl time.Duration

	// Now overrides the clock; tests use it to simulate expiry.
	// Nil means time.Now.
	Now func() time.Time
}

// NewSessionCodec derives the session signing key from the shared secret.
// The TTL is fixed at construction, never per call.
func NewSessionCodec(secret string, ttl time.Duration) *SessionCodec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionCodec{key: deriveKey(secret, purposeSession), ttl: ttl}
}

func (c *SessionCodec) clock() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Encode turns a principal snapshot into an opaque signed token string.
// issuedAt is now, expiresAt is now + the configured TTL.
func (c *SessionCodec) Encode(subjectID, login string, roles []domain.Role) (string, error) {
	now := c.clock().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Audience:  jwt.ClaimStrings{audienceSession},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Login: login,
		Roles: roles,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// Decode verifies signature, audience, and expiry, and rebuilds the principal
// snapshot embedded at issuance. Failures are distinguishable so the gate can
// log the real reason before collapsing them for the caller.
func (c *SessionCodec) Decode(raw string) (*domain.Principal, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.key, nil
	},
		jwt.WithAudience(audienceSession),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return c.clock() }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureMismatch
		default:
			return nil, ErrInvalidToken
		}
	}

	return &domain.Principal{
		ID:    claims.Subject,
		Login: claims.Login,
		Roles: claims.Roles,
	}, nil
}
