package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type resetClaims struct {
	jwt.RegisteredClaims
	Login string `json:"login"`
	Email string `json:"email"`
}

// ResetPayload is the decoded content of a password-reset token. Expiry is
// surfaced instead of enforced here: redemption must report an expired token
// and an unresolvable principal as distinct outcomes, so the gate inspects
// ExpiresAt itself after resolving the principal.
type ResetPayload struct {
	Login     string
	Email     string
	ExpiresAt time.Time
}

// ResetCodec mints and parses the narrower credential that authorizes a
// password change. No role data, its own validity window, its own derived
// signing key.
type ResetCodec struct {
	key []byte
	ttl time.Duration

	// Now overrides the clock; tests use it to simulate expiry.
	// Nil means time.Now.
	Now func() time.Time
}

// NewResetCodec derives the reset signing key from the shared secret. The
// window is deliberately longer than a session TTL because delivery happens
// out of band.
func NewResetCodec(secret string, ttl time.Duration) *ResetCodec {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &ResetCodec{key: deriveKey(secret, purposeReset), ttl: ttl}
}

func (c *ResetCodec) clock() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Generate mints a reset token for the given login and email.
func (c *ResetCodec) Generate(login, email string) (string, error) {
	now := c.clock().UTC()
	claims := resetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{audienceReset},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Login: login,
		Email: email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// Parse verifies signature and audience and returns the embedded payload.
// Any malformed or mis-signed input fails with ErrInvalidToken. Expiry is
// NOT checked here; see ResetPayload.
func (c *ResetCodec) Parse(raw string) (*ResetPayload, error) {
	claims := &resetClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.key, nil
	},
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if !hasAudience(claims.Audience, audienceReset) || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return &ResetPayload{
		Login:     claims.Login,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func hasAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
