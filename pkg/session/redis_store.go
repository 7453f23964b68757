package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sealcookie/pkg/token"
)

// DefaultRedisKeyPrefix namespaces session keys.
const DefaultRedisKeyPrefix = "session:"

// RedisStore implements Store on Redis. Data is stored as JSON and expires
// through the key TTL.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix replaces DefaultRedisKeyPrefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a store over client. The client is owned by the caller.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: DefaultRedisKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores data under a fresh id. Data that is already expired is not
// written, but the id is still returned.
func (s *RedisStore) Create(ctx context.Context, data map[string]any, expires time.Time) (string, error) {
	payload, err := marshalData(data)
	if err != nil {
		return "", err
	}

	ttl, live := ttlUntil(expires)
	for {
		id := uuid.NewString()
		if !live {
			return id, nil
		}

		ok, err := s.client.SetNX(ctx, s.key(id), payload, ttl).Result()
		if err != nil {
			return "", errors.Join(ErrStoreFailure, err)
		}
		if ok {
			return id, nil
		}
	}
}

func (s *RedisStore) Read(ctx context.Context, id string) (map[string]any, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	value, err := token.UnmarshalValue(payload)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	data, ok := value.(map[string]any)
	if !ok {
		return nil, errors.Join(ErrStoreFailure, fmt.Errorf("session %q is not a JSON object", id))
	}
	return data, nil
}

// Update overwrites id. Data that is already expired is deleted.
func (s *RedisStore) Update(ctx context.Context, id string, data map[string]any, expires time.Time) error {
	ttl, live := ttlUntil(expires)
	if !live {
		return s.Delete(ctx, id)
	}

	payload, err := marshalData(data)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key(id), payload, ttl).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func marshalData(data map[string]any) ([]byte, error) {
	if data == nil {
		data = map[string]any{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return payload, nil
}

// ttlUntil converts an expiry into a key TTL. Zero expires means no TTL;
// live is false when expires has already passed.
func ttlUntil(expires time.Time) (ttl time.Duration, live bool) {
	if expires.IsZero() {
		return 0, true
	}
	ttl = time.Until(expires)
	if ttl <= 0 {
		return 0, false
	}
	// Redis TTLs have millisecond resolution.
	return max(ttl, time.Millisecond), true
}
