package main

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	goredis "github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"starwarsApi/models"
)

// CatalogCache keeps sonic-encoded catalog reads in redis. A nil *CatalogCache
// is a disabled cache: every Get misses and Set does nothing.
type CatalogCache struct {
	client *goredis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewCatalogCache(client *goredis.Client, ttl time.Duration, log zerolog.Logger) *CatalogCache {
	return &CatalogCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// Get decodes the cached value for key into dst and reports whether it was found.
func (c *CatalogCache) Get(ctx context.Context, key string, dst any) bool {
	if c == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()

	if errors.Is(err, goredis.Nil) {
		return false
	} else if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		return false
	}

	if err := sonic.Unmarshal(data, dst); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("catalog cache entry is corrupt")
		return false
	}

	return true
}

func (c *CatalogCache) Set(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}

	data, err := sonic.Marshal(v)

	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("catalog cache encode failed")
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
}

func catalogListKey(kind models.Kind) string {
	return "catalog:" + string(kind) + ":all"
}

func catalogItemKey(kind models.Kind, id uint) string {
	return "catalog:" + string(kind) + ":" + strconv.FormatUint(uint64(id), 10)
}
