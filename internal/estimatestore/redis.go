package estimatestore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/agentstudio/estimator/pkg/types"
)

const (
	estimateKeyPrefix = "estimate:"
	estimateSetKey    = "estimates"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	// URL is a redis:// connection URL.
	URL string

	// Password overrides the URL password when set.
	Password string

	// DB overrides the URL database when non-zero.
	DB int

	// TTL applied to estimate records (0 = no expiry).
	TTL time.Duration
}

// RedisStore implements Store backed by Redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store and verifies connectivity.
func NewRedisStore(cfg *RedisConfig) (*RedisStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

// NewRedisStoreWithClient creates a store using an existing client.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) estimateKey(id string) string {
	return estimateKeyPrefix + id
}

func (s *RedisStore) Save(ctx context.Context, est *types.Estimate) (*types.Estimate, error) {
	stored := *est
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("marshal estimate: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.estimateKey(stored.ID), data, s.ttl)
	pipe.SAdd(ctx, estimateSetKey, stored.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("save estimate: %w", err)
	}

	return &stored, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*types.Estimate, error) {
	data, err := s.client.Get(ctx, s.estimateKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrEstimateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get estimate: %w", err)
	}

	var est types.Estimate
	if err := json.Unmarshal(data, &est); err != nil {
		return nil, fmt.Errorf("unmarshal estimate: %w", err)
	}
	return &est, nil
}

func (s *RedisStore) List(ctx context.Context, opts *ListOptions) ([]*types.Estimate, error) {
	if opts == nil {
		opts = &ListOptions{}
	}

	ids, err := s.client.SMembers(ctx, estimateSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}

	results := make([]*types.Estimate, 0, len(ids))
	for _, id := range ids {
		est, err := s.Get(ctx, id)
		if err == ErrEstimateNotFound {
			// Expired record still in the index; drop it lazily.
			s.client.SRem(ctx, estimateSetKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		results = append(results, est)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(results) {
			return []*types.Estimate{}, nil
		}
		results = results[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(results) {
		results = results[:opts.Limit]
	}

	return results, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	deleted, err := s.client.Del(ctx, s.estimateKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete estimate: %w", err)
	}
	s.client.SRem(ctx, estimateSetKey, id)
	if deleted == 0 {
		return ErrEstimateNotFound
	}
	return nil
}

func (s *RedisStore) AdapterInfo(ctx context.Context) (map[string]interface{}, error) {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	count, err := s.client.SCard(ctx, estimateSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis scard: %w", err)
	}
	return map[string]interface{}{
		"adapter":   "redis",
		"estimates": count,
	}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
