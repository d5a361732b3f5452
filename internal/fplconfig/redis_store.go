package fplconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisStore persists the config snapshot as one JSON blob in Redis, for
// deployments where local disk does not survive restarts.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore constructs a Redis-backed config store.
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &RedisStore{client: client, keyPrefix: "fpl:"}, nil
}

func (s *RedisStore) key() string {
	return s.keyPrefix + snapshotKey
}

// Load reads the persisted snapshot. A missing key yields (nil, nil).
func (s *RedisStore) Load(ctx context.Context) (*Snapshot, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("config store not configured")
	}

	raw, err := s.client.Get(ctx, s.key()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Save writes the snapshot blob. No TTL is set; staleness is judged by the
// embedded timestamp so an old snapshot stays available as a last resort.
func (s *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	if s == nil || s.client == nil {
		return errors.New("config store not configured")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(), data, 0).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
