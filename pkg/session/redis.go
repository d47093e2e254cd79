package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "folio:session:"

// RedisStore keeps sessions in Redis as JSON values that expire with the session.
// Each user also has a set of session keys so all of them can be revoked at once.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix sets the key namespace. Default: "folio:session:".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore creates a RedisStore on top of client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	if !ValidToken(s.Token) {
		return ErrInvalidToken
	}
	ttl := s.TTL(time.Now())
	if ttl <= 0 {
		return ErrExpired
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}

	key := r.sessionKey(Hash(s.Token))
	userKey := r.userKey(s.UserID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, ttl)
		pipe.SAdd(ctx, userKey, key)
		pipe.Expire(ctx, userKey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("session: create: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	if !ValidToken(token) {
		return nil, ErrInvalidToken
	}

	data, err := r.client.Get(ctx, r.sessionKey(Hash(token))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: get: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	if s.IsExpired(time.Now()) {
		return nil, ErrExpired
	}
	s.Token = token
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.sessionKey(Hash(token))).Err(); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

func (r *RedisStore) DeleteByUserID(ctx context.Context, userID string) error {
	userKey := r.userKey(userID)
	keys, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("session: list user sessions: %w", err)
	}
	keys = append(keys, userKey)
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("session: delete user sessions: %w", err)
	}
	return nil
}

func (r *RedisStore) sessionKey(hash string) string {
	return r.prefix + hash
}

func (r *RedisStore) userKey(userID string) string {
	return r.prefix + "user:" + userID
}
