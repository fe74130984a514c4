// Package cache provides a Redis read-through cache in front of any
// ports.ResourceRepository.
//
// Only single-resource lookups are cached. Every mutation bumps a per-id
// generation counter and deletes the cached entry after the underlying write.
// A read fills the cache only if the generation it observed before loading is
// still current, so a load that raced with a write never lands. A cache
// failure never fails the request: it is logged and the call falls through
// to storage.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"resourcehub/src/core/domain"
	"resourcehub/src/core/ports"
	"resourcehub/src/infra/logger"
)

const (
	keyPrefix = "resource:"

	// generationTTL outlives any in-flight read by a wide margin.
	generationTTL = time.Hour
)

// fillScript stores ARGV[2] under KEYS[1] only while KEYS[2] still holds the
// generation ARGV[1]. ARGV[3] is the entry TTL in milliseconds, 0 for none.
var fillScript = redis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

var _ ports.ResourceRepository = (*ResourceCache)(nil)
var _ ports.ExternalService = (*ResourceCache)(nil)

// ResourceCache decorates a ResourceRepository with a Redis-backed cache.
type ResourceCache struct {
	next   ports.ResourceRepository
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// NewResourceCache wraps next. A non-positive ttl stores entries without expiry.
func NewResourceCache(next ports.ResourceRepository, client *redis.Client, ttl time.Duration, log *slog.Logger) *ResourceCache {
	if ttl < 0 {
		ttl = 0
	}
	return &ResourceCache{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    logger.WithComponent(log, "resource_cache"),
	}
}

func cacheKey(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

func generationKey(id int64) string {
	return cacheKey(id) + ":gen"
}

// Health reports the underlying storage first, then the cache server.
func (c *ResourceCache) Health(ctx context.Context) error {
	if err := c.next.Health(ctx); err != nil {
		return err
	}
	return c.Ping(ctx)
}

// Ping checks the cache server only.
func (c *ResourceCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (c *ResourceCache) FindByID(ctx context.Context, id int64) (*domain.Resource, error) {
	gen, cached, err := c.lookup(ctx, id)
	if err != nil {
		logger.Warn(c.log, "cache read failed", "id", id, "error", err)
	} else if cached != nil {
		return cached, nil
	}

	res, findErr := c.next.FindByID(ctx, id)
	if findErr != nil {
		return nil, findErr
	}
	if err == nil {
		c.fill(ctx, res, gen)
	}
	return res, nil
}

// lookup returns the current generation of id and the cached entry, if any.
func (c *ResourceCache) lookup(ctx context.Context, id int64) (string, *domain.Resource, error) {
	vals, err := c.client.MGet(ctx, cacheKey(id), generationKey(id)).Result()
	if err != nil {
		return "", nil, err
	}

	gen := "0"
	if g, ok := vals[1].(string); ok {
		gen = g
	}
	raw, ok := vals[0].(string)
	if !ok {
		return gen, nil, nil
	}

	var res domain.Resource
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		logger.Warn(c.log, "discarding undecodable cache entry", "id", id, "error", err)
		return gen, nil, nil
	}
	return gen, &res, nil
}

func (c *ResourceCache) FindPage(ctx context.Context, page, pageSize int) ([]domain.Resource, int64, error) {
	return c.next.FindPage(ctx, page, pageSize)
}

func (c *ResourceCache) Insert(ctx context.Context, r domain.Resource) (*domain.Resource, error) {
	return c.next.Insert(ctx, r)
}

func (c *ResourceCache) Replace(ctx context.Context, id int64, r domain.Resource) (*domain.Resource, error) {
	res, err := c.next.Replace(ctx, id, r)
	c.invalidate(ctx, id)
	return res, err
}

func (c *ResourceCache) Update(ctx context.Context, id int64, mutate ports.MutateFunc) (*domain.Resource, error) {
	res, err := c.next.Update(ctx, id, mutate)
	c.invalidate(ctx, id)
	return res, err
}

func (c *ResourceCache) Delete(ctx context.Context, id int64) error {
	err := c.next.Delete(ctx, id)
	c.invalidate(ctx, id)
	return err
}

// fill caches res unless its generation moved past gen while it was loaded.
func (c *ResourceCache) fill(ctx context.Context, res *domain.Resource, gen string) {
	raw, err := json.Marshal(res)
	if err != nil {
		logger.Warn(c.log, "cache encode failed", "id", res.ID, "error", err)
		return
	}

	keys := []string{cacheKey(res.ID), generationKey(res.ID)}
	stored, err := fillScript.Run(ctx, c.client, keys, gen, raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		logger.Warn(c.log, "cache write failed", "id", res.ID, "error", err)
		return
	}
	if stored == 0 {
		logger.Debug(c.log, "skipped cache fill after concurrent write", "id", res.ID)
	}
}

func (c *ResourceCache) invalidate(ctx context.Context, id int64) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(id))
		pipe.Expire(ctx, generationKey(id), generationTTL)
		pipe.Del(ctx, cacheKey(id))
		return nil
	})
	if err != nil {
		logger.Warn(c.log, "cache invalidation failed", "id", id, "error", err)
	}
}
