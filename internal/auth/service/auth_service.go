package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	authrepo "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/auth/repository"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/clock"
	commoncrypto "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/crypto"
	commonerrors "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/errors"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/logger"
	userdomain "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/user/domain"
	userrepo "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/user/repository"
)

const dummyPassword = "aunty-pantry-dummy-password"

type AuthServiceDeps struct {
	Repo        userrepo.Repository
	Revocations authrepo.SessionRevocationRepository
	Hasher      commoncrypto.PasswordHasher
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

type AuthServiceConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
}

type AuthService struct {
	repo        userrepo.Repository
	revocations authrepo.SessionRevocationRepository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	issuer      *SessionIssuer
	clock       clock.Clock
	log         *logger.Logger

	dummyHashOnce sync.Once
	dummyHash     string
}

func NewAuthService(deps AuthServiceDeps, cfg AuthServiceConfig) *AuthService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}

	return &AuthService{
		repo:        deps.Repo,
		revocations: deps.Revocations,
		hasher:      deps.Hasher,
		idGenerator: deps.IDGenerator,
		issuer:      NewSessionIssuer(cfg.SessionSecret, deps.IDGenerator, cfg.SessionTTL, clk),
		clock:       clk,
		log:         deps.Log,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User         userdomain.User
	SessionToken string
	ExpiresAt    time.Time
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)

	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "register_attempt",
	}).Info("register attempt")

	if err := validateRegistration(email, input.Password, name); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return AuthResult{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_id_generation_failed",
		}).Errorf("register failed: id generation error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    s.clock.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "register_email_exists",
			}).Warn("register failed: email already registered")
			return AuthResult{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		return AuthResult{}, commonerrors.ErrStorage.WithCause(err)
	}

	incrementUsersRegistered()

	session, err := s.issuer.Issue(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "register_session_issue_failed",
		}).Errorf("register failed: session issue error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "register_success",
	}).Info("user registered")

	return AuthResult{User: user, SessionToken: session.Token, ExpiresAt: session.ExpiresAt}, nil
}

func (s *AuthService) Authenticate(ctx context.Context, input LoginInput) (AuthResult, error) {
	email := normalizeEmail(input.Email)

	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "login_attempt",
	}).Info("login attempt")

	if err := validateLogin(email, input.Password); err != nil {
		incrementLoginAttempts("invalid_input")
		return AuthResult{}, err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.compareDummy(input.Password)
			incrementLoginAttempts("invalid_credentials")
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "login_invalid_credentials",
			}).Warn("login failed: invalid credentials")
			return AuthResult{}, ErrInvalidCredentials
		}
		incrementLoginAttempts("error")
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "login_lookup_failed",
		}).Errorf("login failed: %v", err)
		return AuthResult{}, commonerrors.ErrStorage.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		incrementLoginAttempts("invalid_credentials")
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "login_invalid_credentials",
		}).Warn("login failed: invalid credentials")
		return AuthResult{}, ErrInvalidCredentials
	}

	session, err := s.issuer.Issue(user)
	if err != nil {
		incrementLoginAttempts("error")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_session_issue_failed",
		}).Errorf("login failed: session issue error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	incrementLoginAttempts("success")
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return AuthResult{User: user, SessionToken: session.Token, ExpiresAt: session.ExpiresAt}, nil
}

func (s *AuthService) ResolveSession(ctx context.Context, token string) (userdomain.User, bool) {
	if token == "" {
		return userdomain.User{}, false
	}

	incrementSessionValidations()

	session, err := s.issuer.Parse(token)
	if err != nil {
		incrementSessionValidationFailed("invalid")
		s.log.WithFields(ctx, logger.Fields{
			"action": "session_invalid",
		}).Debugf("session token rejected: %v", err)
		return userdomain.User{}, false
	}

	revoked, err := s.revocations.IsRevoked(ctx, session.JTI)
	if err != nil {
		incrementSessionValidationFailed("storage")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": session.UserID,
			"action":  "session_revocation_check_failed",
		}).Errorf("session revocation check failed: %v", err)
		return userdomain.User{}, false
	}
	if revoked {
		incrementSessionValidationFailed("revoked")
		return userdomain.User{}, false
	}

	user, err := s.repo.FindByID(ctx, userdomain.ID(session.UserID))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			incrementSessionValidationFailed("unknown_user")
			return userdomain.User{}, false
		}
		incrementSessionValidationFailed("storage")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": session.UserID,
			"action":  "session_user_lookup_failed",
		}).Errorf("session user lookup failed: %v", err)
		return userdomain.User{}, false
	}

	return user, true
}

func (s *AuthService) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	session, err := s.issuer.Parse(token)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "logout_token_ignored",
		}).Debugf("logout with unusable token: %v", err)
		return nil
	}

	if err := s.revocations.Revoke(ctx, session.JTI, session.UserID, session.ExpiresAt); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": session.UserID,
			"action":  "logout_revoke_failed",
		}).Errorf("revoke session failed: %v", err)
		return commonerrors.ErrStorage.WithCause(err)
	}

	incrementSessionsRevoked()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": session.UserID,
		"action":  "logout_success",
	}).Info("session revoked")

	s.pruneExpired(ctx)
	return nil
}

func (s *AuthService) pruneExpired(ctx context.Context) {
	pruned, err := s.revocations.DeleteExpired(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "prune_revoked_sessions_failed",
		}).Warnf("failed to prune revoked sessions: %v", err)
		return
	}
	if pruned > 0 {
		addRevokedSessionsPruned(pruned)
		s.log.WithFields(ctx, logger.Fields{
			"count":  pruned,
			"action": "prune_revoked_sessions",
		}).Debug("pruned expired revoked sessions")
	}
}

func (s *AuthService) compareDummy(password string) {
	s.dummyHashOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err == nil {
			s.dummyHash = hash
		}
	})
	if s.dummyHash != "" {
		_ = s.hasher.Compare(s.dummyHash, password)
	}
}
