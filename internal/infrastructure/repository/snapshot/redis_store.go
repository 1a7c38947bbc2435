package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/maxbat99/probax/internal/domain/team"
	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "probax:teams:snapshot"

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps the team snapshot under one key. A zero ttl never
// expires it.
type RedisStore struct {
	client redisClient
	key    string
	ttl    time.Duration
}

func NewRedisStore(client redisClient, key string, ttl time.Duration) *RedisStore {
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Save(ctx context.Context, snapshot team.Snapshot) error {
	raw, err := sonic.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode team snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store team snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (team.Snapshot, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return team.Snapshot{}, team.ErrSnapshotNotFound
		}
		return team.Snapshot{}, fmt.Errorf("load team snapshot: %w", err)
	}
	return decodeSnapshot(raw)
}
