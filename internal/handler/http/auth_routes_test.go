package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ruchelocale/marketplace-api/internal/config"
	domainErrors "github.com/ruchelocale/marketplace-api/internal/domain/errors"
	"github.com/ruchelocale/marketplace-api/internal/domain/models"
	"github.com/ruchelocale/marketplace-api/internal/events"
	"github.com/ruchelocale/marketplace-api/internal/infrastructure/security"
	"github.com/ruchelocale/marketplace-api/internal/service"
)

// In-memory stores keep the full register/login/logout flow testable
// without a database.

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domainErrors.ErrEmailExists
		}
		if u.Username == user.Username {
			return domainErrors.ErrUsernameExists
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domainErrors.ErrUserNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainErrors.ErrUserNotFound
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domainErrors.ErrUserNotFound
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]*models.Session{}}
}

func (r *memSessionRepo) Create(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token] = session
	return nil
}

func (r *memSessionRepo) GetByToken(_ context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[token]; ok {
		return s, nil
	}
	return nil, domainErrors.ErrSessionNotFound
}

func (r *memSessionRepo) DeleteByToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[token]; !ok {
		return domainErrors.ErrSessionNotFound
	}
	delete(r.sessions, token)
	return nil
}

func (r *memSessionRepo) DeleteAllForUser(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleteAllLocked(userID), nil
}

func (r *memSessionRepo) Replace(_ context.Context, session *models.Session) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := r.deleteAllLocked(session.UserID)
	r.sessions[session.Token] = session
	return deleted, nil
}

func (r *memSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	now := time.Now()
	for token, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, token)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memSessionRepo) deleteAllLocked(userID uuid.UUID) int64 {
	var deleted int64
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
			deleted++
		}
	}
	return deleted
}

func newTestRouter(t *testing.T) (*gin.Engine, *memSessionRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newMemUserRepo()
	sessions := newMemSessionRepo()

	hasher, err := security.NewBcryptHasher(12)
	require.NoError(t, err)
	tokens, err := security.NewTokenService("test-secret", "marketplace-api")
	require.NoError(t, err)

	logger := zap.NewNop()
	authService := service.NewAuthService(
		users, sessions, nil, hasher, tokens, events.NoopPublisher{}, logger, 7*24*time.Hour,
	)

	cfg := &config.Config{}
	cfg.App.Env = "test"

	router := SetupRouter(Services{Auth: authService}, nil, cfg, logger)
	return router, sessions
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var registerBody = map[string]string{
	"email":     "jean@example.com",
	"username":  "jean_bio",
	"password":  "hunter42",
	"firstName": "Jean",
	"lastName":  "Dupont",
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	// Register opens a session immediately.
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered struct {
		User  models.UserResponse `json:"user"`
		Token string              `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.Equal(t, "jean@example.com", registered.User.Email)
	assert.Equal(t, models.UserRoleUser, registered.User.Role)
	require.NotEmpty(t, registered.Token)
	assert.NotContains(t, w.Body.String(), "hunter42")
	assert.NotContains(t, w.Body.String(), "password")

	// The fresh token resolves to the user.
	w = doJSON(t, router, http.MethodGet, "/api/auth/me", registered.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jean@example.com")

	// Logout kills the session; the token is dead afterwards.
	w = doJSON(t, router, http.MethodPost, "/api/auth/logout", registered.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/auth/me", registered.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, w.Code)

	// Same email, new username.
	dup := map[string]string{}
	for k, v := range registerBody {
		dup[k] = v
	}
	dup["username"] = "other_name"
	w = doJSON(t, router, http.MethodPost, "/api/auth/register", "", dup)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email already exists")

	// Same username, new email.
	dup["username"] = "jean_bio"
	dup["email"] = "other@example.com"
	w = doJSON(t, router, http.MethodPost, "/api/auth/register", "", dup)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "username already exists")
}

func TestRegisterValidationDetails(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "not-an-email",
		"username": "ab",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Len(t, resp.Details, 5)
}

func TestLoginSupersedesPriorToken(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var registered struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "jean@example.com",
		"password": "hunter42",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var loggedIn struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loggedIn))
	require.NotEqual(t, registered.Token, loggedIn.Token)

	// The earlier token is invalidated, the new one works.
	w = doJSON(t, router, http.MethodGet, "/api/auth/me", registered.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/auth/me", loggedIn.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, w.Code)

	wrongPassword := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "jean@example.com",
		"password": "wrongpass",
	})
	unknownEmail := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever1",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// Byte-identical bodies so neither path leaks which emails exist.
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestExpiredSessionRejectedAndDeleted(t *testing.T) {
	router, sessions := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var registered struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))

	// Force the stored expiry into the past.
	sessions.mu.Lock()
	sessions.sessions[registered.Token].ExpiresAt = time.Now().Add(-time.Minute)
	sessions.mu.Unlock()

	w = doJSON(t, router, http.MethodGet, "/api/auth/me", registered.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The expired row was reaped on access.
	sessions.mu.Lock()
	_, stillThere := sessions.sessions[registered.Token]
	sessions.mu.Unlock()
	assert.False(t, stillThere)
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/auth/logout"},
	} {
		w := doJSON(t, router, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, fmt.Sprintf("%s %s", tc.method, tc.path))

		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "NotBearer xyz")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
