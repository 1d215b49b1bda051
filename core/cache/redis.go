package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each snapshot as a JSON string under <prefix><scope>.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore returns a store over client.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "library:snapshot:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

type redisSnapshot struct {
	Scope     string    `json:"scope"`
	Payload   []byte    `json:"payload"`
	Count     int       `json:"count"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Key returns the redis key of scope.
func (s *RedisStore) Key(scope string) string {
	return s.prefix + scope
}

func (s *RedisStore) Put(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(redisSnapshot(snap))
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", snap.Scope, err)
	}
	// Expiry is decided by the reader's TTL, so keys never expire on their own.
	if err := s.client.Set(ctx, s.Key(snap.Scope), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snap.Scope, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, scope string) (Snapshot, error) {
	data, err := s.client.Get(ctx, s.Key(scope)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load snapshot %s: %w", scope, err)
	}
	return decodeRedisSnapshot(scope, data)
}

func (s *RedisStore) List(ctx context.Context) ([]Snapshot, error) {
	keys, err := s.keys(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	out := make([]Snapshot, 0, len(values))
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			// Deleted between SCAN and MGET.
			continue
		}
		snap, err := decodeRedisSnapshot(strings.TrimPrefix(keys[i], s.prefix), []byte(str))
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Scope < out[j].Scope })
	return out, nil
}

func (s *RedisStore) Delete(ctx context.Context, scope string) error {
	if err := s.client.Del(ctx, s.Key(scope)).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", scope, err)
	}
	return nil
}

func (s *RedisStore) DeleteAll(ctx context.Context) error {
	keys, err := s.keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}

func (s *RedisStore) keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan snapshot keys: %w", err)
	}
	return keys, nil
}

func decodeRedisSnapshot(scope string, data []byte) (Snapshot, error) {
	var rs redisSnapshot
	if err := json.Unmarshal(data, &rs); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot %s: %w", scope, err)
	}
	if rs.Scope == "" {
		rs.Scope = scope
	}
	return Snapshot(rs), nil
}
