package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
	"github.com/inkwell/blog-platform/internal/core/token"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by login
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Login]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.Login] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	u, ok := r.users[login]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByLoginAndEmail(_ context.Context, login, email string) (*domain.User, error) {
	u, ok := r.users[login]
	if !ok || u.Email != email {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, userID, newHash string) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.PasswordHash = newHash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// newTestGate wires an AuthService against an in-memory directory and a fake
// clock shared by the service and both codecs.
func newTestGate(sessionTTL, resetTTL time.Duration) (*AuthService, *stubUserRepo, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	sessions := token.NewSessionCodec("test-secret", sessionTTL)
	sessions.Now = clock.Now
	resets := token.NewResetCodec("test-secret", resetTTL)
	resets.Now = clock.Now

	repo := newStubUserRepo()
	svc := NewAuthService(repo, sessions, resets, nil, zerolog.Nop())
	svc.now = clock.Now
	return svc, repo, clock
}

func mustRegister(t *testing.T, svc *AuthService, login, email, password string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), nil, ports.RegisterInput{
		Login:    login,
		Email:    email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("register %s failed: %v", login, err)
	}
	return user
}

func TestAuthService_Register_Defaults(t *testing.T) {
	svc, _, _ := newTestGate(time.Hour, time.Hour)

	user := mustRegister(t, svc, "alice", "alice@example.com", "pass123")
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected roles: %v", user.Roles)
	}
}

func TestAuthService_Register_AdminRole(t *testing.T) {
	svc, _, _ := newTestGate(time.Hour, time.Hour)
	input := ports.RegisterInput{Login: "boss", Email: "boss@example.com", Password: "pw", Role: domain.RoleAdmin}

	if _, err := svc.Register(context.Background(), nil, input); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("anonymous admin grant: expected ErrUnauthenticated, got %v", err)
	}

	user := domain.Principal{ID: "u-1", Login: "alice", Roles: []domain.Role{domain.RoleUser}}
	if _, err := svc.Register(context.Background(), &user, input); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-admin admin grant: expected ErrForbidden, got %v", err)
	}

	admin := domain.Principal{ID: "u-0", Login: "root", Roles: []domain.Role{domain.RoleAdmin}}
	created, err := svc.Register(context.Background(), &admin, input)
	if err != nil {
		t.Fatalf("admin grant by admin failed: %v", err)
	}
	if !created.HasRole(domain.RoleAdmin) {
		t.Fatalf("expected admin role, got %v", created.Roles)
	}
}

func TestAuthService_Login_MintsVerifiableToken(t *testing.T) {
	svc, _, clock := newTestGate(3600*time.Second, time.Hour)
	registered := mustRegister(t, svc, "alice", "alice@example.com", "s3cret")

	signed, user, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if signed == "" || user.Login != "alice" {
		t.Fatalf("unexpected login result: %q %+v", signed, user)
	}

	principal, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}
	if principal.ID != registered.ID || principal.Login != "alice" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if len(principal.Roles) != 1 || principal.Roles[0] != domain.RoleUser {
		t.Fatalf("roles not snapshotted: %v", principal.Roles)
	}

	// Still valid at the edge of the window, rejected one second past it.
	clock.Advance(3599 * time.Second)
	if _, err := svc.Verify(signed); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}
	clock.Advance(2 * time.Second)
	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after expiry, got %v", err)
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	svc, _, _ := newTestGate(time.Hour, time.Hour)
	mustRegister(t, svc, "alice", "alice@example.com", "goodpass")

	_, _, unknownErr := svc.Login(context.Background(), "ghost", "whatever")
	_, _, badPassErr := svc.Login(context.Background(), "alice", "badpass")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown login: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(badPassErr, domain.ErrInvalidCredentials) {
		t.Fatalf("bad password: expected ErrInvalidCredentials, got %v", badPassErr)
	}
	// The two failure modes must be indistinguishable.
	if unknownErr.Error() != badPassErr.Error() {
		t.Fatalf("login failures disclose existence: %q vs %q", unknownErr, badPassErr)
	}
}

func TestAuthService_Verify_BadTokens(t *testing.T) {
	svc, _, _ := newTestGate(time.Hour, time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated for %q, got %v", raw, err)
		}
	}
}

func TestAuthService_Verify_RejectsResetToken(t *testing.T) {
	svc, _, _ := newTestGate(time.Hour, time.Hour)
	mustRegister(t, svc, "alice", "alice@example.com", "pw")

	reset, err := svc.RequestPasswordReset(context.Background(), "alice", "alice@example.com")
	if err != nil {
		t.Fatalf("request reset failed: %v", err)
	}
	if _, err := svc.Verify(reset); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("reset token accepted as session credential: %v", err)
	}
}

func TestAuthService_PasswordReset_EndToEnd(t *testing.T) {
	svc, _, _ := newTestGate(time.Hour, time.Hour)
	mustRegister(t, svc, "alice", "a@x.com", "oldSecret")

	reset, err := svc.RequestPasswordReset(context.Background(), "alice", "a@x.com")
	if err != nil {
		t.Fatalf("request reset failed: %v", err)
	}

	err = svc.RedeemPasswordReset(context.Background(), ports.RedeemResetInput{
		Login:       "alice",
		Email:       "a@x.com",
		ResetToken:  reset,
		NewPassword: "newSecret",
	})
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "alice", "newSecret"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice", "oldSecret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
}

func TestAuthService_PasswordReset_UnknownPrincipal(t *testing.T) {
	svc, _, _ := newTestGate(time.Hour, time.Hour)

	if _, err := svc.RequestPasswordReset(context.Background(), "ghost", "g@x.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Redeem_EmailChangedAfterIssuance(t *testing.T) {
	svc, repo, _ := newTestGate(time.Hour, time.Hour)
	mustRegister(t, svc, "alice", "a@x.com", "pw")

	reset, err := svc.RequestPasswordReset(context.Background(), "alice", "a@x.com")
	if err != nil {
		t.Fatalf("request reset failed: %v", err)
	}

	// Email changed between issuance and redemption: embedded email no
	// longer matches the directory, even though the login does.
	repo.users["alice"].Email = "new@x.com"

	err = svc.RedeemPasswordReset(context.Background(), ports.RedeemResetInput{
		Login: "alice", Email: "a@x.com", ResetToken: reset, NewPassword: "np",
	})
	if !errors.Is(err, domain.ErrResetNotFound) {
		t.Fatalf("expected ErrResetNotFound, got %v", err)
	}
}

func TestAuthService_Redeem_PresentedPairMismatch(t *testing.T) {
	svc, _, _ := newTestGate(time.Hour, time.Hour)
	mustRegister(t, svc, "alice", "a@x.com", "pw")
	mustRegister(t, svc, "bob", "b@x.com", "pw")

	reset, err := svc.RequestPasswordReset(context.Background(), "alice", "a@x.com")
	if err != nil {
		t.Fatalf("request reset failed: %v", err)
	}

	err = svc.RedeemPasswordReset(context.Background(), ports.RedeemResetInput{
		Login: "bob", Email: "b@x.com", ResetToken: reset, NewPassword: "np",
	})
	if !errors.Is(err, domain.ErrResetNotFound) {
		t.Fatalf("expected ErrResetNotFound for a foreign token, got %v", err)
	}
}

func TestAuthService_Redeem_Expired(t *testing.T) {
	svc, _, clock := newTestGate(time.Hour, time.Hour)
	mustRegister(t, svc, "alice", "a@x.com", "pw")

	reset, err := svc.RequestPasswordReset(context.Background(), "alice", "a@x.com")
	if err != nil {
		t.Fatalf("request reset failed: %v", err)
	}

	clock.Advance(time.Hour + time.Second)

	err = svc.RedeemPasswordReset(context.Background(), ports.RedeemResetInput{
		Login: "alice", Email: "a@x.com", ResetToken: reset, NewPassword: "np",
	})
	if !errors.Is(err, domain.ErrResetExpired) {
		t.Fatalf("expected ErrResetExpired, got %v", err)
	}
}

func TestAuthService_Redeem_Malformed(t *testing.T) {
	svc, _, _ := newTestGate(time.Hour, time.Hour)
	mustRegister(t, svc, "alice", "a@x.com", "pw")

	err := svc.RedeemPasswordReset(context.Background(), ports.RedeemResetInput{
		Login: "alice", Email: "a@x.com", ResetToken: "not-a-token", NewPassword: "np",
	})
	if !errors.Is(err, domain.ErrResetMalformed) {
		t.Fatalf("expected ErrResetMalformed, got %v", err)
	}
}

type stubThrottle struct {
	allow bool
}

func (s *stubThrottle) Reserve(context.Context, string) (bool, error) {
	return s.allow, nil
}

func TestAuthService_RequestReset_Throttled(t *testing.T) {
	svc, _, _ := newTestGate(time.Hour, time.Hour)
	mustRegister(t, svc, "alice", "a@x.com", "pw")
	svc.throttle = &stubThrottle{allow: false}

	if _, err := svc.RequestPasswordReset(context.Background(), "alice", "a@x.com"); !errors.Is(err, domain.ErrResetThrottled) {
		t.Fatalf("expected ErrResetThrottled, got %v", err)
	}
}
