// Package token implements the two signed, self-contained credential kinds
// the platform issues: session tokens presented on every authenticated
// request, and password-reset tokens delivered out of band. Both are compact
// HS256 JWTs whose validity is fully determined by their own signed content
// plus the current time; no server-side token state exists.
//
// The two kinds are kept cross-incompatible twice over: each codec signs with
// a key derived from the shared secret and its own purpose label, and each
// stamps and checks a distinct audience. A reset token therefore never
// verifies as a session token, and vice versa, even if one check regresses.
package token

import (
	"crypto/sha256"
	"errors"
)

const (
	audienceSession = "blog:session"
	audienceReset   = "blog:password-reset"

	purposeSession = "session"
	purposeReset   = "password-reset"
)

// ErrInvalidToken covers undecodable or structurally wrong tokens, including
// tokens of the wrong kind.
var ErrInvalidToken = errors.New("invalid token")

// ErrTokenExpired is returned by the session codec when the token's expiry
// has passed.
var ErrTokenExpired = errors.New("token expired")

// ErrSignatureMismatch is returned when the payload decodes but the signature
// does not verify (tamper or wrong key).
var ErrSignatureMismatch = errors.New("token signature mismatch")

// deriveKey binds the shared signing secret to a single token purpose.
func deriveKey(secret, purpose string) []byte {
	sum := sha256.Sum256([]byte(purpose + "\x00" + secret))
	return sum[:]
}
