package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Domenick1991/rente/config"
	"github.com/Domenick1991/rente/internal/domain"
)

type RedisCache struct {
	client      *redis.Client
	listingsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, listingsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		listingsTTL: listingsTTL,
	}
}

// GetListings returns the cached default search page, or nil on a miss.
func (c *RedisCache) GetListings(ctx context.Context) ([]domain.Listing, error) {
	data, err := c.client.Get(ctx, listingsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (c *RedisCache) SetListings(ctx context.Context, listings []domain.Listing) error {
	payload, err := json.Marshal(listings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listingsKey(), payload, c.listingsTTL).Err()
}

// InvalidateListings drops the cached page after any listing write.
func (c *RedisCache) InvalidateListings(ctx context.Context) error {
	return c.client.Del(ctx, listingsKey()).Err()
}

// SaveSession registers a refresh-token jti for a user. The token is only
// accepted while this key exists, so logout revokes it server-side. The jti
// is also tracked in a per-user set so DeleteSessions never scans the
// keyspace; the set carries the same TTL as the longest-lived token in it.
func (c *RedisCache) SaveSession(ctx context.Context, userID int64, jti string, ttl time.Duration) error {
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, sessionKey(userID, jti), "1", ttl)
	pipe.SAdd(ctx, sessionSetKey(userID), jti)
	pipe.Expire(ctx, sessionSetKey(userID), ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisCache) SessionExists(ctx context.Context, userID int64, jti string) (bool, error) {
	n, err := c.client.Exists(ctx, sessionKey(userID, jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *RedisCache) DeleteSession(ctx context.Context, userID int64, jti string) error {
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, sessionKey(userID, jti))
	pipe.SRem(ctx, sessionSetKey(userID), jti)
	_, err := pipe.Exec(ctx)
	return err
}

// DeleteSessions revokes every live refresh token for the user by reading
// the tracked jti set, never by pattern-matching the keyspace.
func (c *RedisCache) DeleteSessions(ctx context.Context, userID int64) error {
	jtis, err := c.client.SMembers(ctx, sessionSetKey(userID)).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(jtis)+1)
	for _, jti := range jtis {
		keys = append(keys, sessionKey(userID, jti))
	}
	keys = append(keys, sessionSetKey(userID))
	return c.client.Del(ctx, keys...).Err()
}

func listingsKey() string {
	return "cache:listings"
}

func sessionKey(userID int64, jti string) string {
	return fmt.Sprintf("session:%d:%s", userID, jti)
}

func sessionSetKey(userID int64) string {
	return fmt.Sprintf("sessions:%d", userID)
}
