package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
	"github.com/CS5331-ACKS/rest-api-development/internal/core/ports"
)

const (
	defaultFeedTTL    = 30 * time.Second
	feedGenerationKey = "diary:feed:gen"
)

// FeedCache stores public feed snapshots in Redis.
// Key format: diary:feed:<generation>; the current generation lives in
// diary:feed:gen and only ever grows.
type FeedCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ ports.FeedCache = (*FeedCache)(nil)

func NewFeedCache(client redis.Cmdable, ttl time.Duration) *FeedCache {
	if ttl <= 0 {
		ttl = defaultFeedTTL
	}
	return &FeedCache{client: client, ttl: ttl}
}

// Generation returns the current generation. An unset counter is generation 0.
func (c *FeedCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, feedGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("feed generation: %w", err)
	}
	return gen, nil
}

func (c *FeedCache) Get(ctx context.Context, generation int64) ([]domain.DiaryEntry, bool, error) {
	raw, err := c.client.Get(ctx, c.key(generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("feed snapshot: %w", err)
	}

	var entries []domain.DiaryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, fmt.Errorf("decode feed snapshot: %w", err)
	}
	return entries, true, nil
}

func (c *FeedCache) Put(ctx context.Context, generation int64, entries []domain.DiaryEntry) error {
	if entries == nil {
		entries = []domain.DiaryEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode feed snapshot: %w", err)
	}
	return c.client.Set(ctx, c.key(generation), raw, c.ttl).Err()
}

// Bump advances the generation so that every earlier snapshot is ignored.
func (c *FeedCache) Bump(ctx context.Context) error {
	if err := c.client.Incr(ctx, feedGenerationKey).Err(); err != nil {
		return fmt.Errorf("bump feed generation: %w", err)
	}
	return nil
}

// Drop deletes the snapshot stored for generation. A missing key is not an error.
func (c *FeedCache) Drop(ctx context.Context, generation int64) error {
	if err := c.client.Del(ctx, c.key(generation)).Err(); err != nil {
		return fmt.Errorf("drop feed snapshot %d: %w", generation, err)
	}
	return nil
}

func (c *FeedCache) key(generation int64) string {
	return "diary:feed:" + strconv.FormatInt(generation, 10)
}
