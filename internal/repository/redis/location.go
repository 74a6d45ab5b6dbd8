// Package redis holds stores shared across API replicas through Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
	"github.com/redis/go-redis/v9"
)

// NewClient parses a redis:// URL and pings the server.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.MaxRetries = 3

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// LocationStore keeps each location as a JSON value in one hash, keyed by ID.
type LocationStore struct {
	client *redis.Client
	key    string
}

func NewLocationStore(client *redis.Client, key string) *LocationStore {
	return &LocationStore{client: client, key: key}
}

// SeedIfEmpty writes seed only when the hash does not exist yet.
func (s *LocationStore) SeedIfEmpty(ctx context.Context, seed []location.AuthorizedLocation) (bool, error) {
	n, err := s.client.HLen(ctx, s.key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count locations: %w", err)
	}
	if n > 0 || len(seed) == 0 {
		return false, nil
	}

	values := make(map[string]interface{}, len(seed))
	for _, loc := range seed {
		raw, err := json.Marshal(loc)
		if err != nil {
			return false, err
		}
		values[loc.ID] = raw
	}
	if err := s.client.HSet(ctx, s.key, values).Err(); err != nil {
		return false, fmt.Errorf("failed to seed locations: %w", err)
	}
	return true, nil
}

// List implements location.LocationStore.
func (s *LocationStore) List(ctx context.Context) ([]location.AuthorizedLocation, error) {
	raw, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	out := make([]location.AuthorizedLocation, 0, len(raw))
	for id, v := range raw {
		var loc location.AuthorizedLocation
		if err := json.Unmarshal([]byte(v), &loc); err != nil {
			return nil, fmt.Errorf("failed to decode location %s: %w", id, err)
		}
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Add implements location.LocationStore.
func (s *LocationStore) Add(ctx context.Context, loc location.AuthorizedLocation) error {
	raw, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, s.key, loc.ID, raw).Err(); err != nil {
		return fmt.Errorf("failed to add location: %w", err)
	}
	return nil
}

// Remove implements location.LocationStore.
func (s *LocationStore) Remove(ctx context.Context, id string) error {
	n, err := s.client.HDel(ctx, s.key, id).Result()
	if err != nil {
		return fmt.Errorf("failed to remove location: %w", err)
	}
	if n == 0 {
		return location.ErrLocationNotFound
	}
	return nil
}
