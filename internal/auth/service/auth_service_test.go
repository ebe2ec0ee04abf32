package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/auth/service"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/clock"
	commonerrors "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/errors"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/logger"
	userdomain "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/user/domain"
)

const (
	testSecret     = "test-secret-key-that-is-long-enough-1234"
	testSessionTTL = 24 * time.Hour
)

type authFixture struct {
	svc         *service.AuthService
	users       *mockUserRepo
	revocations *mockRevocationRepo
	hasher      *mockHasher
	ids         *mockIDGenerator
	clock       *clock.MockClock
}

func setupAuthService(t *testing.T) authFixture {
	t.Helper()
	f := authFixture{
		users:       &mockUserRepo{},
		revocations: &mockRevocationRepo{},
		hasher:      &mockHasher{},
		ids:         &mockIDGenerator{},
		clock:       clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
	}

	log, _ := logger.New("", "test", "info")

	f.svc = service.NewAuthService(
		service.AuthServiceDeps{
			Repo:        f.users,
			Revocations: f.revocations,
			Hasher:      f.hasher,
			IDGenerator: f.ids,
			Clock:       f.clock,
			Log:         log,
		},
		service.AuthServiceConfig{
			SessionSecret: testSecret,
			SessionTTL:    testSessionTTL,
		},
	)
	return f
}

func TestAuthService_Register_Success(t *testing.T) {
	f := setupAuthService(t)

	var stored userdomain.User
	f.users.createFunc = func(_ context.Context, user userdomain.User) error {
		stored = user
		return nil
	}

	result, err := f.svc.Register(context.Background(), service.RegisterInput{
		Email:    "  Aunty@Example.COM ",
		Password: "secret1",
		Name:     "  Aunty May ",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if stored.Email != "aunty@example.com" {
		t.Errorf("expected normalized email, got %q", stored.Email)
	}
	if stored.Name != "Aunty May" {
		t.Errorf("expected trimmed name, got %q", stored.Name)
	}
	if stored.PasswordHash != "hashed:secret1" {
		t.Errorf("expected hashed password, got %q", stored.PasswordHash)
	}
	if result.User.ID != stored.ID {
		t.Errorf("expected result user id %s, got %s", stored.ID, result.User.ID)
	}
	if result.SessionToken == "" {
		t.Error("expected session token to be set")
	}
	if want := f.clock.Now().Add(testSessionTTL); !result.ExpiresAt.Equal(want) {
		t.Errorf("expected expiry %v, got %v", want, result.ExpiresAt)
	}
}

func TestAuthService_Register_ValidationError(t *testing.T) {
	f := setupAuthService(t)

	testCases := []struct {
		name  string
		input service.RegisterInput
	}{
		{"empty email", service.RegisterInput{Email: "  ", Password: "secret1"}},
		{"malformed email", service.RegisterInput{Email: "not-an-email", Password: "secret1"}},
		{"email too long", service.RegisterInput{Email: strings.Repeat("a", 115) + "@x.com", Password: "secret1"}},
		{"short password", service.RegisterInput{Email: "a@example.com", Password: "12345"}},
		{"password over 72 bytes", service.RegisterInput{Email: "a@example.com", Password: strings.Repeat("p", 73)}},
		{"name too long", service.RegisterInput{Email: "a@example.com", Password: "secret1", Name: strings.Repeat("n", 101)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Register(context.Background(), tc.input)
			if !errors.Is(err, commonerrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	f := setupAuthService(t)
	memoryUsers(f.users)

	input := service.RegisterInput{Email: "aunty@example.com", Password: "secret1"}
	if _, err := f.svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	input.Email = "AUNTY@example.com"
	_, err := f.svc.Register(context.Background(), input)
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok || domainErr.HTTPStatus() != 400 {
		t.Errorf("expected 400 domain error, got %v", err)
	}
}

func TestAuthService_Register_StorageError(t *testing.T) {
	f := setupAuthService(t)
	f.users.createFunc = func(context.Context, userdomain.User) error {
		return errors.New("db down")
	}

	_, err := f.svc.Register(context.Background(), service.RegisterInput{Email: "a@example.com", Password: "secret1"})
	if !errors.Is(err, commonerrors.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestAuthService_RegisterThenAuthenticate_SameUser(t *testing.T) {
	f := setupAuthService(t)
	memoryUsers(f.users)

	registered, err := f.svc.Register(context.Background(), service.RegisterInput{
		Email:    "cook@example.com",
		Password: "secret1",
		Name:     "Cook",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	loggedIn, err := f.svc.Authenticate(context.Background(), service.LoginInput{
		Email:    "Cook@Example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	if loggedIn.User.ID != registered.User.ID {
		t.Errorf("expected user id %s, got %s", registered.User.ID, loggedIn.User.ID)
	}
	if loggedIn.SessionToken == registered.SessionToken {
		t.Error("expected a fresh session token on login")
	}
}

func TestAuthService_Authenticate_UnknownEmailAndWrongPasswordMatch(t *testing.T) {
	f := setupAuthService(t)
	memoryUsers(f.users)

	if _, err := f.svc.Register(context.Background(), service.RegisterInput{Email: "cook@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	f.hasher.compareCalls = 0
	_, unknownErr := f.svc.Authenticate(context.Background(), service.LoginInput{Email: "ghost@example.com", Password: "secret1"})
	unknownCompares := f.hasher.compareCalls

	f.hasher.compareCalls = 0
	_, wrongErr := f.svc.Authenticate(context.Background(), service.LoginInput{Email: "cook@example.com", Password: "wrong-pass"})
	wrongCompares := f.hasher.compareCalls

	if !errors.Is(unknownErr, service.ErrInvalidCredentials) || !errors.Is(wrongErr, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("expected identical messages, got %q and %q", unknownErr.Error(), wrongErr.Error())
	}
	if unknownCompares != 1 || wrongCompares != 1 {
		t.Errorf("expected one hash comparison per attempt, got %d and %d", unknownCompares, wrongCompares)
	}
}

func TestAuthService_Authenticate_MissingFields(t *testing.T) {
	f := setupAuthService(t)

	_, err := f.svc.Authenticate(context.Background(), service.LoginInput{Email: "cook@example.com"})
	if !errors.Is(err, commonerrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_Authenticate_StorageError(t *testing.T) {
	f := setupAuthService(t)
	f.users.findByEmailFunc = func(context.Context, string) (userdomain.User, error) {
		return userdomain.User{}, errors.New("db down")
	}

	_, err := f.svc.Authenticate(context.Background(), service.LoginInput{Email: "cook@example.com", Password: "secret1"})
	if !errors.Is(err, commonerrors.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestAuthService_ResolveSession(t *testing.T) {
	f := setupAuthService(t)
	memoryUsers(f.users)

	result, err := f.svc.Register(context.Background(), service.RegisterInput{Email: "cook@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, ok := f.svc.ResolveSession(context.Background(), result.SessionToken)
	if !ok {
		t.Fatal("expected session to resolve")
	}
	if user.ID != result.User.ID {
		t.Errorf("expected user %s, got %s", result.User.ID, user.ID)
	}
}

func TestAuthService_ResolveSession_Rejects(t *testing.T) {
	f := setupAuthService(t)
	memoryUsers(f.users)

	result, err := f.svc.Register(context.Background(), service.RegisterInput{Email: "cook@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	t.Run("empty token", func(t *testing.T) {
		if _, ok := f.svc.ResolveSession(context.Background(), ""); ok {
			t.Error("expected empty token to be rejected")
		}
	})

	t.Run("tampered token", func(t *testing.T) {
		if _, ok := f.svc.ResolveSession(context.Background(), result.SessionToken+"x"); ok {
			t.Error("expected tampered token to be rejected")
		}
	})

	t.Run("revoked token", func(t *testing.T) {
		f.revocations.isRevokedFunc = func(context.Context, string) (bool, error) { return true, nil }
		defer func() { f.revocations.isRevokedFunc = nil }()
		if _, ok := f.svc.ResolveSession(context.Background(), result.SessionToken); ok {
			t.Error("expected revoked token to be rejected")
		}
	})

	t.Run("revocation lookup fails", func(t *testing.T) {
		f.revocations.isRevokedFunc = func(context.Context, string) (bool, error) { return false, errors.New("db down") }
		defer func() { f.revocations.isRevokedFunc = nil }()
		if _, ok := f.svc.ResolveSession(context.Background(), result.SessionToken); ok {
			t.Error("expected storage failure to be treated as anonymous")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		start := f.clock.Now()
		f.clock.SetTime(start.Add(testSessionTTL + time.Minute))
		defer f.clock.SetTime(start)
		if _, ok := f.svc.ResolveSession(context.Background(), result.SessionToken); ok {
			t.Error("expected expired token to be rejected")
		}
	})
}

func TestAuthService_Invalidate(t *testing.T) {
	f := setupAuthService(t)
	memoryUsers(f.users)

	result, err := f.svc.Register(context.Background(), service.RegisterInput{Email: "cook@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	var revokedJTI, revokedUser string
	var revokedUntil time.Time
	f.revocations.revokeFunc = func(_ context.Context, jti, userID string, expiresAt time.Time) error {
		revokedJTI, revokedUser, revokedUntil = jti, userID, expiresAt
		return nil
	}
	pruned := false
	f.revocations.deleteExpiredFunc = func(context.Context) (int64, error) {
		pruned = true
		return 2, nil
	}

	if err := f.svc.Invalidate(context.Background(), result.SessionToken); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if revokedJTI == "" {
		t.Error("expected jti to be revoked")
	}
	if revokedUser != string(result.User.ID) {
		t.Errorf("expected user %s, got %s", result.User.ID, revokedUser)
	}
	if !revokedUntil.Equal(result.ExpiresAt) {
		t.Errorf("expected revocation until %v, got %v", result.ExpiresAt, revokedUntil)
	}
	if !pruned {
		t.Error("expected expired revocations to be pruned")
	}
}

func TestAuthService_Invalidate_UnusableTokenIsNoop(t *testing.T) {
	f := setupAuthService(t)
	called := false
	f.revocations.revokeFunc = func(context.Context, string, string, time.Time) error {
		called = true
		return nil
	}

	for _, token := range []string{"", "garbage"} {
		if err := f.svc.Invalidate(context.Background(), token); err != nil {
			t.Errorf("expected no error for %q, got %v", token, err)
		}
	}
	if called {
		t.Error("expected no revocation for unusable tokens")
	}
}

func TestAuthService_Invalidate_RevokeError(t *testing.T) {
	f := setupAuthService(t)
	memoryUsers(f.users)

	result, err := f.svc.Register(context.Background(), service.RegisterInput{Email: "cook@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	f.revocations.revokeFunc = func(context.Context, string, string, time.Time) error {
		return errors.New("db down")
	}

	if err := f.svc.Invalidate(context.Background(), result.SessionToken); !errors.Is(err, commonerrors.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
