package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/ruchelocale/marketplace-api/internal/domain/errors"
	"github.com/ruchelocale/marketplace-api/internal/domain/models"
	"github.com/ruchelocale/marketplace-api/internal/domain/repository"
	"github.com/ruchelocale/marketplace-api/internal/events"
	"github.com/ruchelocale/marketplace-api/internal/infrastructure/security"
	"github.com/ruchelocale/marketplace-api/internal/utils/metrics"
)

// TokenMinter produces signed session tokens.
type TokenMinter interface {
	Mint(userID uuid.UUID, sessionID uuid.UUID, expiresAt time.Time) (string, error)
}

// SessionCache caches sessions by token in front of the database. All
// methods are best-effort: errors fall back to the database.
type SessionCache interface {
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Set(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, token string) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

// AuthService implements registration, login, logout and session
// authentication.
type AuthService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	cache      SessionCache // nil when Redis is disabled
	hasher     security.PasswordHasher
	tokens     TokenMinter
	publisher  events.Publisher
	logger     *zap.Logger
	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthService wires an AuthService. cache may be nil.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	cache SessionCache,
	hasher security.PasswordHasher,
	tokens TokenMinter,
	publisher events.Publisher,
	logger *zap.Logger,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		cache:      cache,
		hasher:     hasher,
		tokens:     tokens,
		publisher:  publisher,
		logger:     logger,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// Register creates a new account and immediately opens a session for it,
// so a successful registration needs no follow-up login call.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	if err := req.Validate(); err != nil {
		metrics.RegistrationAttempts.WithLabelValues("invalid").Inc()
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		metrics.RegistrationAttempts.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.FirstName + " " + req.LastName,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.UserRoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if domainErrors.IsConflict(err) {
			metrics.RegistrationAttempts.WithLabelValues("conflict").Inc()
		} else {
			metrics.RegistrationAttempts.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	session, err := s.openSession(ctx, user.ID, false)
	if err != nil {
		metrics.RegistrationAttempts.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.RegistrationAttempts.WithLabelValues("success").Inc()
	s.publish(ctx, events.TypeUserRegistered, user.ID.String(), events.UserRegisteredPayload{
		UserID:       user.ID,
		Email:        user.Email,
		Username:     user.Username,
		RegisteredAt: now,
	})
	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return &models.AuthResult{
		User:      user.ToResponse(),
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Login verifies credentials and replaces any prior session with a fresh
// one. Unknown email and wrong password return the same error, so the
// response cannot be used to probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
			return nil, domainErrors.ErrInvalidCredentials
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
			return nil, domainErrors.ErrInvalidCredentials
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, err
	}

	session, err := s.openSession(ctx, user.ID, true)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))

	return &models.AuthResult{
		User:      user.ToResponse(),
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// openSession mints a token and stores the session. With supersede set,
// all of the user's existing sessions are atomically replaced.
func (s *AuthService) openSession(ctx context.Context, userID uuid.UUID, supersede bool) (*models.Session, error) {
	now := s.now()
	session := &models.Session{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}

	token, err := s.tokens.Mint(userID, session.ID, session.ExpiresAt)
	if err != nil {
		return nil, err
	}
	session.Token = token

	if supersede {
		replaced, err := s.sessions.Replace(ctx, session)
		if err != nil {
			return nil, err
		}
		if replaced > 0 {
			metrics.SessionsReplaced.Add(float64(replaced))
		}
		if s.cache != nil {
			if err := s.cache.DeleteAllForUser(ctx, userID); err != nil {
				s.logger.Warn("failed to evict superseded sessions from cache",
					zap.Error(err), zap.String("user_id", userID.String()))
			}
		}
		s.publish(ctx, events.TypeUserLoggedIn, userID.String(), events.UserLoggedInPayload{
			UserID:           userID,
			SessionsReplaced: replaced,
			LoggedInAt:       now,
		})
	} else {
		if err := s.sessions.Create(ctx, session); err != nil {
			return nil, err
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, session); err != nil {
			s.logger.Warn("failed to cache session", zap.Error(err))
		}
	}
	return session, nil
}

// Logout destroys the session behind the token. A token that resolves to
// no session returns ErrSessionNotFound: the session is already gone, so
// callers can treat the failure as non-fatal.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return domainErrors.ErrMissingToken
	}

	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, token); err != nil {
			s.logger.Warn("failed to evict session from cache", zap.Error(err))
		}
	}
	return nil
}

// Authenticate resolves a bearer token to its user. Expired sessions are
// deleted on sight, so a stale row cannot linger past its first use.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, domainErrors.ErrMissingToken
	}

	session, err := s.lookupSession(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Expired(s.now()) {
		if err := s.sessions.DeleteByToken(ctx, token); err != nil &&
			!errors.Is(err, domainErrors.ErrSessionNotFound) {
			s.logger.Warn("failed to delete expired session", zap.Error(err))
		}
		if s.cache != nil {
			if err := s.cache.Delete(ctx, token); err != nil {
				s.logger.Warn("failed to evict expired session from cache", zap.Error(err))
			}
		}
		metrics.ExpiredSessionsDeleted.Inc()
		return nil, domainErrors.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			// Session outlived its user; treat the token as stale.
			return nil, domainErrors.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// CurrentUser returns the public shape of the token's user.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.UserResponse, error) {
	user, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *AuthService) lookupSession(ctx context.Context, token string) (*models.Session, error) {
	if s.cache != nil {
		if session, err := s.cache.GetByToken(ctx, token); err == nil {
			return session, nil
		}
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainErrors.ErrSessionNotFound) {
			return nil, domainErrors.ErrInvalidToken
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, session); err != nil {
			s.logger.Warn("failed to cache session", zap.Error(err))
		}
	}
	return session, nil
}

// PurgeExpiredSessions removes all expired sessions. Called periodically
// as a backstop behind the delete-on-access path.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		metrics.ExpiredSessionsDeleted.Add(float64(deleted))
		s.logger.Info("purged expired sessions", zap.Int64("count", deleted))
	}
	return deleted, nil
}

func (s *AuthService) publish(ctx context.Context, eventType, subject string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, subject, payload); err != nil {
		s.logger.Warn("failed to publish event", zap.Error(err), zap.String("type", eventType))
	}
}
