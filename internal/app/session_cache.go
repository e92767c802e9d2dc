package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/kateder/internal/models"
)

const sessionKeyTpl = "session:%s" // session:${token}

// SessionCache is an optional redis lookup cache in front of the sessions
// table. Entries live for a short TTL, capped by the session's own expiry, so
// a stale entry can outlive a revoked session by at most that TTL. Disabled
// unless a redis URL is configured.
type SessionCache struct {
	enabled bool
	redis   *redis.Client
	ttl     time.Duration
}

func NewSessionCache(config *Config) (*SessionCache, error) {
	if config.Auth.RedisURL == "" {
		return &SessionCache{enabled: false}, nil
	}

	opt, err := redis.ParseURL(config.Auth.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &SessionCache{
		enabled: true,
		redis:   client,
		ttl:     time.Duration(config.Auth.CacheTTLSeconds) * time.Second,
	}, nil
}

func (c *SessionCache) Get(ctx context.Context, token string) *models.ResolvedSession {
	if !c.enabled {
		return nil
	}

	data, err := c.redis.Get(ctx, fmt.Sprintf(sessionKeyTpl, token)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Debug.Printf("Session cache read failed: %v", err)
		}
		return nil
	}

	var resolved models.ResolvedSession
	if err := json.Unmarshal(data, &resolved); err != nil {
		logger.Debug.Printf("Session cache entry unreadable: %v", err)
		return nil
	}
	return &resolved
}

func (c *SessionCache) Put(ctx context.Context, resolved *models.ResolvedSession) {
	if !c.enabled {
		return
	}

	expiry, err := time.Parse(time.RFC3339, resolved.ExpiresAt)
	if err != nil {
		return
	}

	ttl := c.ttl
	if remaining := time.Until(expiry); remaining < ttl {
		ttl = remaining
	}
	if ttl <= 0 {
		return
	}

	data, err := json.Marshal(resolved)
	if err != nil {
		return
	}

	if err := c.redis.Set(ctx, fmt.Sprintf(sessionKeyTpl, resolved.Token), data, ttl).Err(); err != nil {
		logger.Debug.Printf("Session cache write failed: %v", err)
	}
}

func (c *SessionCache) Invalidate(ctx context.Context, token string) {
	if !c.enabled {
		return
	}
	if err := c.redis.Del(ctx, fmt.Sprintf(sessionKeyTpl, token)).Err(); err != nil {
		logger.Debug.Printf("Session cache invalidation failed: %v", err)
	}
}

func (c *SessionCache) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
