package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"giphyexplorer/internal/config"
	"giphyexplorer/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// CachedCatalog answers repeated catalog lookups from Redis. The cache is
// best effort: any Redis failure falls through to the wrapped catalog.
type CachedCatalog struct {
	next   Catalog
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisClient connects to cfg.RedisURL. It returns nil, nil when no URL is configured.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// NewCachedCatalog wraps next with a Redis cache. Without a client or a
// positive ttl it returns next unchanged.
func NewCachedCatalog(next Catalog, client *redis.Client, ttl time.Duration, logger *slog.Logger) Catalog {
	if client == nil || ttl <= 0 {
		return next
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedCatalog{next: next, client: client, ttl: ttl, logger: logger}
}

func (c *CachedCatalog) Search(ctx context.Context, query string, limit, offset int) (*Page, error) {
	key := fmt.Sprintf("catalog:search:%s:%d:%d", url.QueryEscape(query), limit, offset)
	return cached(ctx, c, key, func() (*Page, error) {
		return c.next.Search(ctx, query, limit, offset)
	})
}

func (c *CachedCatalog) Trending(ctx context.Context, limit, offset int) (*Page, error) {
	key := fmt.Sprintf("catalog:trending:%d:%d", limit, offset)
	return cached(ctx, c, key, func() (*Page, error) {
		return c.next.Trending(ctx, limit, offset)
	})
}

func (c *CachedCatalog) GetByID(ctx context.Context, id string) (*Item, error) {
	key := "catalog:gif:" + url.PathEscape(id)
	return cached(ctx, c, key, func() (*Item, error) {
		return c.next.GetByID(ctx, id)
	})
}

func cached[T any](ctx context.Context, c *CachedCatalog, key string, fetch func() (*T, error)) (*T, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var value T
		if jsonErr := json.Unmarshal(raw, &value); jsonErr == nil {
			metrics.ObserveCacheLookup("hit")
			return &value, nil
		}
		metrics.ObserveCacheLookup("error")
		c.logger.Warn("catalog_cache_corrupt", "key", key)
	case errors.Is(err, redis.Nil):
		metrics.ObserveCacheLookup("miss")
	default:
		metrics.ObserveCacheLookup("error")
		c.logger.Warn("catalog_cache_unavailable", "key", key, "error", err)
	}

	value, err := fetch()
	if err != nil {
		return nil, err
	}

	// Don't fail the request on a cache write
	if encoded, err := json.Marshal(value); err == nil {
		if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			c.logger.Warn("catalog_cache_write_failed", "key", key, "error", err)
		}
	}
	return value, nil
}
