package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"voice-session-bot/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "voice-session-bot:track:"

const DefaultTTL = 24 * time.Hour

type client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Close() error
}

// cachedTrack is the stored JSON form of a resolved track.
type cachedTrack struct {
	Source    string `json:"source"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Artist    string `json:"artist,omitempty"`
	DurationS int64  `json:"duration_s,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// MetadataCache keeps resolved track metadata in Redis keyed by source.
type MetadataCache struct {
	rdb client
	ttl time.Duration
}

func NewMetadataCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*MetadataCache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", addr, err)
	}

	return newMetadataCache(rdb, ttl), nil
}

func newMetadataCache(rdb client, ttl time.Duration) *MetadataCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MetadataCache{rdb: rdb, ttl: ttl}
}

// Get returns nil without error on a cache miss.
func (c *MetadataCache) Get(ctx context.Context, source string) (*domain.TrackDescriptor, error) {
	raw, err := c.rdb.Get(ctx, keyPrefix+source).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", source, err)
	}

	var stored cachedTrack
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode cached track: %w", err)
	}

	return &domain.TrackDescriptor{
		Source:    stored.Source,
		Title:     stored.Title,
		URL:       stored.URL,
		Artist:    stored.Artist,
		Duration:  time.Duration(stored.DurationS) * time.Second,
		Thumbnail: stored.Thumbnail,
	}, nil
}

func (c *MetadataCache) Set(ctx context.Context, source string, track domain.TrackDescriptor) error {
	raw, err := json.Marshal(cachedTrack{
		Source:    track.Source,
		Title:     track.Title,
		URL:       track.URL,
		Artist:    track.Artist,
		DurationS: int64(track.Duration / time.Second),
		Thumbnail: track.Thumbnail,
	})
	if err != nil {
		return fmt.Errorf("could not marshal track: %w", err)
	}

	return c.rdb.Set(ctx, keyPrefix+source, raw, c.ttl).Err()
}

func (c *MetadataCache) Close() error {
	return c.rdb.Close()
}
