package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

// TokenStore registers issued access tokens so they can be revoked before expiry.
type TokenStore interface {
	Register(ctx context.Context, userID, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, userID, tokenID string) (bool, error)
	Revoke(ctx context.Context, userID, tokenID string) error
}

func accessTokenKey(userID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", userID, tokenID)
}

type redisTokenStore struct {
	redisClient *redis.Client
}

func NewRedisTokenStore(redisClient *redis.Client) TokenStore {
	return &redisTokenStore{redisClient: redisClient}
}

func (s *redisTokenStore) Register(ctx context.Context, userID, tokenID string, ttl time.Duration) error {
	return s.redisClient.Set(ctx, accessTokenKey(userID, tokenID), "valid", ttl).Err()
}

func (s *redisTokenStore) Exists(ctx context.Context, userID, tokenID string) (bool, error) {
	n, err := s.redisClient.Exists(ctx, accessTokenKey(userID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, userID, tokenID string) error {
	return s.redisClient.Del(ctx, accessTokenKey(userID, tokenID)).Err()
}

// memoryTokenStore backs single-instance deployments running without Redis.
type memoryTokenStore struct {
	tokens *expirable.LRU[string, struct{}]
}

// NewMemoryTokenStore keeps up to size tokens; each lives at most maxTTL.
func NewMemoryTokenStore(size int, maxTTL time.Duration) TokenStore {
	return &memoryTokenStore{tokens: expirable.NewLRU[string, struct{}](size, nil, maxTTL)}
}

func (s *memoryTokenStore) Register(_ context.Context, userID, tokenID string, _ time.Duration) error {
	s.tokens.Add(accessTokenKey(userID, tokenID), struct{}{})
	return nil
}

func (s *memoryTokenStore) Exists(_ context.Context, userID, tokenID string) (bool, error) {
	return s.tokens.Contains(accessTokenKey(userID, tokenID)), nil
}

func (s *memoryTokenStore) Revoke(_ context.Context, userID, tokenID string) error {
	s.tokens.Remove(accessTokenKey(userID, tokenID))
	return nil
}
