package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/earl-cod3/purity-ui-rbac/internal/models"
	"github.com/earl-cod3/purity-ui-rbac/internal/session"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rbac:sess:"

// Store keeps sessions in Redis, one key per token with the user snapshot
// as the JSON value. Expiry rides on the key TTL; a TTL of zero stores the
// key without expiry.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) Create(ctx context.Context, user models.User) (string, error) {
	token, err := session.NewToken()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return "", err
	}
	// SET NX guards the negligible chance of a token collision.
	ok, err := s.client.SetNX(ctx, keyPrefix+token, payload, s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}
	if !ok {
		return s.Create(ctx, user)
	}
	return token, nil
}

func (s *Store) Lookup(ctx context.Context, token string) (models.User, error) {
	payload, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.User{}, session.ErrSessionNotFound
		}
		return models.User{}, fmt.Errorf("session lookup: %w", err)
	}
	var user models.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return models.User{}, fmt.Errorf("session decode: %w", err)
	}
	return user, nil
}

func (s *Store) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("session revoke: %w", err)
	}
	return nil
}
