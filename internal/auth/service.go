package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/luxemarket/storefront-backend/internal/users"
	pkgauth "github.com/luxemarket/storefront-backend/pkg/auth"
	"github.com/luxemarket/storefront-backend/pkg/clock"
	"github.com/luxemarket/storefront-backend/pkg/config"
	"github.com/luxemarket/storefront-backend/pkg/errors"
	"github.com/luxemarket/storefront-backend/pkg/logger"
	"github.com/luxemarket/storefront-backend/pkg/security"
)

// SnapshotKey is the persistence namespace for the auth session.
const SnapshotKey = "auth-storage"

// Session is the authenticated state: the signed-in user and their
// access token.
type Session struct {
	User  users.User `json:"user"`
	Token string     `json:"token"`
}

// Service signs demo users in and out against the seeded credential set.
type Service interface {
	Login(ctx context.Context, email, password string) (Session, error)
	Logout(ctx context.Context) error
	Current() (Session, bool)
}

type snapshotStore interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, dest any) (bool, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	mu      sync.Mutex
	session *Session

	users   *users.Store
	store   snapshotStore
	jwtCfg  config.JWTConfig
	sleeper clock.Sleeper
	delay   time.Duration
	now     func() time.Time
	logg    *logger.Logger
}

// NewService builds the auth service and rehydrates any persisted
// session so a restart does not sign the user out.
func NewService(
	ctx context.Context,
	userStore *users.Store,
	store snapshotStore,
	jwtCfg config.JWTConfig,
	sleeper clock.Sleeper,
	delay time.Duration,
	logg *logger.Logger,
) (Service, error) {
	if userStore == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if store == nil {
		return nil, fmt.Errorf("snapshot store is required")
	}
	if sleeper == nil {
		return nil, fmt.Errorf("sleeper is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}

	s := &service{
		users:   userStore,
		store:   store,
		jwtCfg:  jwtCfg,
		sleeper: sleeper,
		delay:   delay,
		now:     time.Now,
		logg:    logg,
	}

	var persisted Session
	found, err := store.Load(ctx, SnapshotKey, &persisted)
	if err != nil {
		return nil, fmt.Errorf("failed to rehydrate auth session: %w", err)
	}
	if found && persisted.User.ID != "" {
		s.session = &persisted
	}
	return s, nil
}

// Login verifies the credentials after the simulated processing delay.
// Unknown emails and bad passwords produce the same error.
func (s *service) Login(ctx context.Context, email, password string) (Session, error) {
	if err := s.sleeper.Sleep(ctx, s.delay); err != nil {
		return Session{}, errors.Wrap(errors.CodeInternal, err, "login interrupted")
	}

	invalid := errors.New(errors.CodeUnauthorized, "invalid email or password")

	cred, ok := s.users.FindCredential(strings.ToLower(strings.TrimSpace(email)))
	if !ok {
		return Session{}, invalid
	}
	match, err := security.VerifyPassword(password, cred.PasswordHash)
	if err != nil {
		return Session{}, errors.Wrap(errors.CodeInternal, err, "failed to verify password")
	}
	if !match {
		return Session{}, invalid
	}

	user, ok := s.users.FindByID(cred.UserID)
	if !ok {
		return Session{}, errors.New(errors.CodeInternal, "credential points at a missing user")
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return Session{}, errors.Wrap(errors.CodeInternal, err, "failed to mint access token")
	}

	session := Session{User: user, Token: token}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, SnapshotKey, session); err != nil {
		return Session{}, errors.Wrap(errors.CodeInternal, err, "failed to persist session")
	}
	s.session = &session

	s.logg.Info(s.logg.WithUserID(ctx, user.ID), "user signed in")
	return session, nil
}

// Logout drops the in-memory session and its persisted snapshot.
// Logging out while signed out is a no-op.
func (s *service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil
	}
	if err := s.store.Delete(ctx, SnapshotKey); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "failed to clear persisted session")
	}
	s.session = nil
	return nil
}

// Current reports the active session, if any.
func (s *service) Current() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}
