package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"go-session-auth/internal/model"
)

const defaultRedisPrefix = "session:"

type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
	}
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisStore) Save(ctx context.Context, s Session) error {
	if s.ID == "" {
		return errors.New("session: missing id")
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session: expires_at must be in the future")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}

	if err := r.client.Set(ctx, r.key(s.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, model.ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("session: get: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("session: unmarshal: %w", err)
	}

	if s.Expired(time.Now()) {
		return Session{}, model.ErrSessionNotFound
	}
	return s, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

// NewRedisClient dials addr and pings it so misconfiguration fails at startup.
func NewRedisClient(ctx context.Context, addr string, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return client, nil
}
