package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/ruchelocale/marketplace-api/internal/domain/errors"
	"github.com/ruchelocale/marketplace-api/internal/domain/models"
	"github.com/ruchelocale/marketplace-api/internal/events"
)

const testSessionTTL = 7 * 24 * time.Hour

func newTestAuthService(users *mockUserRepo, sessions *mockSessionRepo) *AuthService {
	return NewAuthService(
		users, sessions, nil, fakeHasher{}, fakeMinter{},
		events.NoopPublisher{}, zap.NewNop(), testSessionTTL,
	)
}

func TestRegister_Success(t *testing.T) {
	users := &mockUserRepo{}
	sessions := &mockSessionRepo{}
	svc := newTestAuthService(users, sessions)
	ctx := context.Background()

	users.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()
	sessions.On("Create", ctx, mock.AnythingOfType("*models.Session")).Return(nil).Once()

	result, err := svc.Register(ctx, models.RegisterRequest{
		Email:     "jean@example.com",
		Username:  "jean_bio",
		Password:  "hunter42",
		FirstName: "Jean",
		LastName:  "Dupont",
	})
	require.NoError(t, err)

	assert.Equal(t, "jean@example.com", result.User.Email)
	assert.Equal(t, "Jean Dupont", result.User.Name)
	assert.Equal(t, models.UserRoleUser, result.User.Role)
	assert.NotEmpty(t, result.Token)
	assert.WithinDuration(t, time.Now().Add(testSessionTTL), result.ExpiresAt, time.Minute)

	users.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestRegister_ResponseNeverCarriesPasswordHash(t *testing.T) {
	users := &mockUserRepo{}
	sessions := &mockSessionRepo{}
	svc := newTestAuthService(users, sessions)
	ctx := context.Background()

	users.On("Create", ctx, mock.Anything).Return(nil).Once()
	sessions.On("Create", ctx, mock.Anything).Return(nil).Once()

	result, err := svc.Register(ctx, models.RegisterRequest{
		Email:     "jean@example.com",
		Username:  "jean_bio",
		Password:  "hunter42",
		FirstName: "Jean",
		LastName:  "Dupont",
	})
	require.NoError(t, err)

	body, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "hunter42")
	assert.NotContains(t, string(body), "hashed:")
	assert.NotContains(t, string(body), "password")
}

func TestRegister_ValidationCollectsAllFields(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{}, &mockSessionRepo{})

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "not-an-email",
		Username: "ab",
		Password: "short",
	})
	require.Error(t, err)

	ve, ok := domainErrors.AsValidation(err)
	require.True(t, ok)
	fields := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"email", "username", "password", "firstName", "lastName"}, fields)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &mockUserRepo{}
	sessions := &mockSessionRepo{}
	svc := newTestAuthService(users, sessions)
	ctx := context.Background()

	users.On("Create", ctx, mock.Anything).Return(domainErrors.ErrEmailExists).Once()

	_, err := svc.Register(ctx, models.RegisterRequest{
		Email:     "jean@example.com",
		Username:  "jean_bio",
		Password:  "hunter42",
		FirstName: "Jean",
		LastName:  "Dupont",
	})
	assert.ErrorIs(t, err, domainErrors.ErrEmailExists)
	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_SupersedesPriorSessions(t *testing.T) {
	users := &mockUserRepo{}
	sessions := &mockSessionRepo{}
	svc := newTestAuthService(users, sessions)
	ctx := context.Background()

	user := &models.User{
		ID:           uuid.New(),
		Email:        "jean@example.com",
		PasswordHash: "hashed:hunter42",
	}
	users.On("FindByEmail", ctx, user.Email).Return(user, nil).Once()
	sessions.On("Replace", ctx, mock.MatchedBy(func(s *models.Session) bool {
		return s.UserID == user.ID && s.Token != ""
	})).Return(int64(1), nil).Once()

	result, err := svc.Login(ctx, models.LoginRequest{Email: user.Email, Password: "hunter42"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	sessions.AssertExpectations(t)
	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmailAndWrongPasswordShareOneError(t *testing.T) {
	users := &mockUserRepo{}
	sessions := &mockSessionRepo{}
	svc := newTestAuthService(users, sessions)
	ctx := context.Background()

	users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, domainErrors.ErrUserNotFound).Once()
	_, errUnknown := svc.Login(ctx, models.LoginRequest{Email: "ghost@example.com", Password: "whatever1"})

	user := &models.User{ID: uuid.New(), Email: "jean@example.com", PasswordHash: "hashed:hunter42"}
	users.On("FindByEmail", ctx, user.Email).Return(user, nil).Once()
	_, errWrong := svc.Login(ctx, models.LoginRequest{Email: user.Email, Password: "wrongpass"})

	assert.ErrorIs(t, errUnknown, domainErrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, domainErrors.ErrInvalidCredentials)
	// Byte-identical messages, so the two failure paths cannot be told
	// apart by a caller.
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	sessions.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestAuthenticate_Success(t *testing.T) {
	users := &mockUserRepo{}
	sessions := &mockSessionRepo{}
	svc := newTestAuthService(users, sessions)
	ctx := context.Background()

	user := &models.User{ID: uuid.New(), Email: "jean@example.com"}
	session := &models.Session{
		ID:        uuid.New(),
		Token:     "valid-token",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	sessions.On("GetByToken", ctx, session.Token).Return(session, nil).Once()
	users.On("FindByID", ctx, user.ID).Return(user, nil).Once()

	got, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthenticate_ExpiredSessionDeletedOnAccess(t *testing.T) {
	users := &mockUserRepo{}
	sessions := &mockSessionRepo{}
	svc := newTestAuthService(users, sessions)
	ctx := context.Background()

	session := &models.Session{
		ID:        uuid.New(),
		Token:     "stale-token",
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	sessions.On("GetByToken", ctx, session.Token).Return(session, nil).Once()
	sessions.On("DeleteByToken", ctx, session.Token).Return(nil).Once()

	_, err := svc.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidToken)

	sessions.AssertExpectations(t)
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestAuthenticate_StoredExpiryWinsOverTokenClaims(t *testing.T) {
	// A session whose stored expiry passed is dead even if the token's
	// own exp claim would still be valid.
	users := &mockUserRepo{}
	sessions := &mockSessionRepo{}
	svc := newTestAuthService(users, sessions)
	svc.now = func() time.Time { return time.Now().Add(30 * 24 * time.Hour) }
	ctx := context.Background()

	session := &models.Session{
		ID:        uuid.New(),
		Token:     "revoked-early",
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	sessions.On("GetByToken", ctx, session.Token).Return(session, nil).Once()
	sessions.On("DeleteByToken", ctx, session.Token).Return(nil).Once()

	_, err := svc.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidToken)
}

func TestAuthenticate_MissingAndUnknownTokens(t *testing.T) {
	users := &mockUserRepo{}
	sessions := &mockSessionRepo{}
	svc := newTestAuthService(users, sessions)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domainErrors.ErrMissingToken)

	sessions.On("GetByToken", ctx, "unknown").Return(nil, domainErrors.ErrSessionNotFound).Once()
	_, err = svc.Authenticate(ctx, "unknown")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidToken)
}

func TestLogout_ThenAuthenticateFails(t *testing.T) {
	users := &mockUserRepo{}
	sessions := &mockSessionRepo{}
	svc := newTestAuthService(users, sessions)
	ctx := context.Background()

	sessions.On("DeleteByToken", ctx, "live-token").Return(nil).Once()
	require.NoError(t, svc.Logout(ctx, "live-token"))

	sessions.On("GetByToken", ctx, "live-token").Return(nil, domainErrors.ErrSessionNotFound).Once()
	_, err := svc.Authenticate(ctx, "live-token")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidToken)
}

func TestLogout_UnknownToken(t *testing.T) {
	users := &mockUserRepo{}
	sessions := &mockSessionRepo{}
	svc := newTestAuthService(users, sessions)
	ctx := context.Background()

	// The session is already gone, so the caller gets a not-found error
	// rather than an authentication failure.
	sessions.On("DeleteByToken", ctx, "gone").Return(domainErrors.ErrSessionNotFound).Once()
	err := svc.Logout(ctx, "gone")
	assert.ErrorIs(t, err, domainErrors.ErrSessionNotFound)
	assert.True(t, domainErrors.IsNotFound(err))
	assert.False(t, domainErrors.IsUnauthorized(err))

	assert.ErrorIs(t, svc.Logout(ctx, ""), domainErrors.ErrMissingToken)
}

func TestCurrentUser_ReturnsPublicShape(t *testing.T) {
	users := &mockUserRepo{}
	sessions := &mockSessionRepo{}
	svc := newTestAuthService(users, sessions)
	ctx := context.Background()

	user := &models.User{
		ID:           uuid.New(),
		Email:        "jean@example.com",
		Username:     "jean_bio",
		PasswordHash: "hashed:hunter42",
	}
	session := &models.Session{
		ID:        uuid.New(),
		Token:     "valid-token",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	sessions.On("GetByToken", ctx, session.Token).Return(session, nil).Once()
	users.On("FindByID", ctx, user.ID).Return(user, nil).Once()

	resp, err := svc.CurrentUser(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, resp.Email)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "hashed:")
}
