package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/ruchelocale/marketplace-api/internal/domain/errors"
	"github.com/ruchelocale/marketplace-api/internal/domain/models"
)

// SessionCache is a read-through cache in front of the session table,
// keyed by bearer token. It is an optimization only: callers fall back
// to PostgreSQL on any miss or error, so Redis being down never blocks
// authentication.
type SessionCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewSessionCache creates a new instance of SessionCache.
func NewSessionCache(client *redis.Client, logger *zap.Logger, ttl time.Duration) *SessionCache {
	return &SessionCache{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func userSessionsKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:sessions", userID.String())
}

// GetByToken returns the cached session for a token.
func (c *SessionCache) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	data, err := c.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domainErrors.ErrSessionNotFound
		}
		c.logger.Warn("Failed to get session from cache", zap.Error(err))
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		c.logger.Warn("Failed to unmarshal cached session", zap.Error(err))
		return nil, err
	}
	return &session, nil
}

// Set stores a session. The entry's TTL never outlives the session's
// stored expiry, so the cache cannot resurrect an expired session.
func (c *SessionCache) Set(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := c.ttl
	if !session.ExpiresAt.IsZero() {
		expiresIn := time.Until(session.ExpiresAt)
		if expiresIn <= 0 {
			return nil
		}
		if expiresIn < ttl {
			ttl = expiresIn
		}
	}

	if err := c.client.Set(ctx, sessionKey(session.Token), data, ttl).Err(); err != nil {
		c.logger.Warn("Failed to set session in cache", zap.Error(err))
		return err
	}

	userKey := userSessionsKey(session.UserID)
	if err := c.client.SAdd(ctx, userKey, session.Token).Err(); err != nil {
		c.logger.Warn("Failed to add session to user index", zap.Error(err), zap.String("user_id", session.UserID.String()))
		return err
	}
	if err := c.client.Expire(ctx, userKey, ttl).Err(); err != nil {
		c.logger.Warn("Failed to set TTL for user sessions index", zap.Error(err), zap.String("user_id", session.UserID.String()))
	}
	return nil
}

// Delete removes one session from the cache.
func (c *SessionCache) Delete(ctx context.Context, token string) error {
	session, err := c.GetByToken(ctx, token)
	if err != nil && err != domainErrors.ErrSessionNotFound {
		return err
	}

	if err := c.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		c.logger.Warn("Failed to delete session from cache", zap.Error(err))
		return err
	}

	if session != nil {
		if err := c.client.SRem(ctx, userSessionsKey(session.UserID), token).Err(); err != nil {
			c.logger.Warn("Failed to remove session from user index", zap.Error(err), zap.String("user_id", session.UserID.String()))
			return err
		}
	}
	return nil
}

// DeleteAllForUser removes every cached session owned by the user. Used
// on login so a superseded token cannot keep authenticating from cache.
func (c *SessionCache) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	userKey := userSessionsKey(userID)

	tokens, err := c.client.SMembers(ctx, userKey).Result()
	if err != nil {
		c.logger.Warn("Failed to get user sessions from cache", zap.Error(err), zap.String("user_id", userID.String()))
		return err
	}

	for _, token := range tokens {
		if err := c.client.Del(ctx, sessionKey(token)).Err(); err != nil {
			c.logger.Warn("Failed to delete session from cache", zap.Error(err))
		}
	}

	if err := c.client.Del(ctx, userKey).Err(); err != nil {
		c.logger.Warn("Failed to delete user sessions index", zap.Error(err), zap.String("user_id", userID.String()))
		return err
	}
	return nil
}
