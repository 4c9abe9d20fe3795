package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/authz"
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
	"github.com/inkwell/blog-platform/internal/core/token"
)

// ResetThrottle rate-limits password-reset issuance per login. It is abuse
// control only: it never holds token validity state.
type ResetThrottle interface {
	// Reserve returns false when a reset was already requested for this
	// login within the throttle window.
	Reserve(ctx context.Context, login string) (bool, error)
}

// AuthService is the authentication gate: it is the only component that
// checks credentials against the principal directory and the only minter of
// session and reset tokens.
type AuthService struct {
	users    ports.UserRepository
	sessions *token.SessionCodec
	resets   *token.ResetCodec
	throttle ResetThrottle
	log      zerolog.Logger
	now      func() time.Time
}

// NewAuthService wires the gate. throttle may be nil, in which case reset
// issuance is not rate-limited.
func NewAuthService(
	users ports.UserRepository,
	sessions *token.SessionCodec,
	resets *token.ResetCodec,
	throttle ResetThrottle,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		resets:   resets,
		throttle: throttle,
		log:      log,
		now:      time.Now,
	}
}

// Register creates a new account. Granting the admin role requires an
// authenticated admin actor; anonymous registration always yields a regular
// user.
func (s *AuthService) Register(ctx context.Context, actor *domain.Principal, input ports.RegisterInput) (*domain.User, error) {
	if input.Login == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, domain.ErrInvalidCredentials
	}
	if role == domain.RoleAdmin {
		if actor == nil {
			return nil, domain.ErrUnauthenticated
		}
		if err := authorize(*actor, authz.Action{ResourceKind: "user", RequiresAdmin: true}); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Login:        input.Login,
		Email:        input.Email,
		PasswordHash: string(hash),
		Roles:        []domain.Role{role},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("login", created.Login).Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies the presented credential and mints a session token. Unknown
// login and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, *domain.User, error) {
	if login == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			s.log.Debug().Str("login", login).Msg("login for unknown principal")
			return "", nil, domain.ErrInvalidCredentials
		}
		s.log.Error().Err(err).Str("login", login).Msg("principal directory lookup failed")
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		s.log.Debug().Str("login", login).Msg("login with wrong password")
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.sessions.Encode(user.ID, user.Login, user.Roles)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("login", user.Login).Str("user_id", user.ID).Msg("session token issued")
	return signed, user, nil
}

// Verify validates a presented session token. Invalid, expired, and
// mis-signed tokens are distinguishable in logs and metrics but collapse to
// domain.ErrUnauthenticated for the caller.
func (s *AuthService) Verify(raw string) (*domain.Principal, error) {
	if raw == "" {
		metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
		return nil, domain.ErrUnauthenticated
	}

	principal, err := s.sessions.Decode(raw)
	if err != nil {
		reason := "invalid"
		switch {
		case errors.Is(err, token.ErrTokenExpired):
			reason = "expired"
		case errors.Is(err, token.ErrSignatureMismatch):
			reason = "signature_mismatch"
		}
		metrics.TokenVerificationsTotal.WithLabelValues(reason).Inc()
		s.log.Debug().Str("reason", reason).Msg("session token rejected")
		return nil, domain.ErrUnauthenticated
	}

	metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
	return principal, nil
}

// RequestPasswordReset mints a reset token for the principal resolved by
// login and email. The token is handed back to the transport layer for
// out-of-band delivery; nothing is stored.
func (s *AuthService) RequestPasswordReset(ctx context.Context, login, email string) (string, error) {
	if s.throttle != nil {
		ok, err := s.throttle.Reserve(ctx, login)
		if err != nil {
			s.log.Warn().Err(err).Str("login", login).Msg("reset throttle unavailable, proceeding")
		} else if !ok {
			metrics.PasswordResetsTotal.WithLabelValues("request", "throttled").Inc()
			return "", domain.ErrResetThrottled
		}
	}

	user, err := s.users.FindByLoginAndEmail(ctx, login, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.PasswordResetsTotal.WithLabelValues("request", "not_found").Inc()
			return "", domain.ErrUserNotFound
		}
		s.log.Error().Err(err).Str("login", login).Msg("principal directory lookup failed")
		return "", err
	}

	signed, err := s.resets.Generate(user.Login, user.Email)
	if err != nil {
		return "", err
	}

	metrics.PasswordResetsTotal.WithLabelValues("request", "ok").Inc()
	s.log.Info().Str("login", user.Login).Msg("password reset token issued")
	return signed, nil
}

// RedeemPasswordReset checks the presented reset token and, when it resolves
// to a live principal before its expiry, replaces that principal's credential
// hash. Order matters: malformed, then not-found, then expired, so each
// rejection is reported distinctly.
func (s *AuthService) RedeemPasswordReset(ctx context.Context, input ports.RedeemResetInput) error {
	payload, err := s.resets.Parse(input.ResetToken)
	if err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("redeem", "malformed").Inc()
		return domain.ErrResetMalformed
	}

	// Every principal-resolution failure reports the same not-found
	// rejection: presented pair disagreeing with the embedded pair, unknown
	// login, or an email that no longer matches the directory.
	if input.Login != payload.Login || input.Email != payload.Email {
		metrics.PasswordResetsTotal.WithLabelValues("redeem", "not_found").Inc()
		return domain.ErrResetNotFound
	}

	user, err := s.users.FindByLoginAndEmail(ctx, payload.Login, payload.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.PasswordResetsTotal.WithLabelValues("redeem", "not_found").Inc()
			return domain.ErrResetNotFound
		}
		s.log.Error().Err(err).Str("login", payload.Login).Msg("principal directory lookup failed")
		return err
	}

	if !payload.ExpiresAt.After(s.now()) {
		metrics.PasswordResetsTotal.WithLabelValues("redeem", "expired").Inc()
		return domain.ErrResetExpired
	}

	if input.NewPassword == "" {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.PasswordResetsTotal.WithLabelValues("redeem", "not_found").Inc()
			return domain.ErrResetNotFound
		}
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("redeem", "ok").Inc()
	s.log.Info().Str("login", user.Login).Str("user_id", user.ID).Msg("password reset redeemed")
	return nil
}
