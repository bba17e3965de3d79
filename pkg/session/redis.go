package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/caseflow/caseflow/internal/model"
)

// RedisConfig configures the Redis session backend.
type RedisConfig struct {
	// Address is the Redis server address (e.g., "localhost:6379")
	Address string

	// Password for Redis authentication (optional)
	Password string

	// Database number to use (default: 0)
	Database int

	// Prefix is prepended to all session keys
	Prefix string

	// Timeout for Redis operations
	Timeout time.Duration

	// PoolSize is the maximum number of connections
	PoolSize int

	// MinIdleConns is the minimum number of idle connections
	MinIdleConns int
}

// DefaultRedisConfig returns sensible defaults.
func DefaultRedisConfig(address string) RedisConfig {
	return RedisConfig{
		Address:      address,
		Prefix:       "caseflow:sessions:",
		Timeout:      5 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	}
}

// RedisStore keeps sessions in Redis. Expiry is delegated to Redis key
// TTLs, so expired sessions vanish without a sweeper.
type RedisStore struct {
	cfg    RedisConfig
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.Database,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("session: connect to Redis: %w", err)
	}

	return &RedisStore{cfg: cfg, client: client}, nil
}

func (s *RedisStore) key(id string) string {
	return s.cfg.Prefix + id
}

// Create implements Store.
func (s *RedisStore) Create(ctx context.Context, dataset string, result *model.AnalysisResult, ttl time.Duration) (*Session, error) {
	sess := newSession(dataset, result, ttl, time.Now())

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("session: marshal: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	if err := s.client.Set(ctx, s.key(sess.ID), data, ttl).Err(); err != nil {
		return nil, fmt.Errorf("session: save to Redis: %w", err)
	}
	return sess, nil
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: load from Redis: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("session: unmarshal: %w", err)
	}
	return &sess, nil
}

// List implements Store.
func (s *RedisStore) List(ctx context.Context) ([]*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	var keys []string
	iter := s.client.Scan(ctx, 0, s.cfg.Prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("session: scan keys: %w", err)
	}

	var sessions []*Session
	for _, key := range keys {
		data, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			continue // expired between scan and read
		}
		var sess Session
		if err := json.Unmarshal(data, &sess); err != nil {
			continue
		}
		sessions = append(sessions, &sess)
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	return s.client.Del(ctx, s.key(id)).Err()
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
