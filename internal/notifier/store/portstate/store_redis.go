package portstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"sulfurwatch/internal/notifier/models"
	"sulfurwatch/pkg/platform/sentinel"
)

const defaultHashKey = "sulfurwatch:port_states"

// RedisStore keeps every port state as one field of a single Redis hash.
type RedisStore struct {
	client  redis.UniversalClient
	hashKey string
}

type RedisOption func(*RedisStore)

// WithHashKey overrides the Redis key holding the hash.
func WithHashKey(key string) RedisOption {
	return func(s *RedisStore) {
		if key != "" {
			s.hashKey = key
		}
	}
}

func NewRedis(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, hashKey: defaultHashKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Set(ctx context.Context, ps *models.PortState) error {
	payload, err := json.Marshal(ps)
	if err != nil {
		return fmt.Errorf("marshal port state: %w", err)
	}
	if err := s.client.HSet(ctx, s.hashKey, ps.Location, payload).Err(); err != nil {
		return fmt.Errorf("set port state: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, location string) (*models.PortState, error) {
	raw, err := s.client.HGet(ctx, s.hashKey, location).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get port state: %w", err)
	}
	var ps models.PortState
	if err := json.Unmarshal(raw, &ps); err != nil {
		return nil, fmt.Errorf("decode port state: %w", err)
	}
	return &ps, nil
}

func (s *RedisStore) List(ctx context.Context) ([]*models.PortState, error) {
	fields, err := s.client.HGetAll(ctx, s.hashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list port states: %w", err)
	}
	out := make([]*models.PortState, 0, len(fields))
	for location, raw := range fields {
		var ps models.PortState
		if err := json.Unmarshal([]byte(raw), &ps); err != nil {
			return nil, fmt.Errorf("decode port state %q: %w", location, err)
		}
		out = append(out, &ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out, nil
}
