package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// defaultOperationTimeout is the timeout for individual Redis operations
	defaultOperationTimeout = 5 * time.Second

	sitePageTTL = 1 * time.Hour
	tagsTTL     = 10 * time.Minute
)

var (
	ErrCacheDisabled = errors.New("cache disabled")
	ErrCacheMiss     = errors.New("key not found")
)

type Cache struct {
	client  *redis.Client
	enabled bool
}

func NewCache(addr string, enable bool) (*Cache, error) {
	if !enable {
		return &Cache{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client, e.g. one pointed at a test server.
func NewWithClient(client *redis.Client) *Cache {
	if client == nil {
		return &Cache{enabled: false}
	}
	return &Cache{client: client, enabled: true}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.enabled
}

func (c *Cache) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, defaultOperationTimeout)
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !c.Enabled() {
		return nil
	}

	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, jsonData, expiration).Err()
}

func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	if !c.Enabled() {
		return ErrCacheDisabled
	}

	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrCacheMiss
	} else if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.Enabled() {
		return nil
	}

	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	return c.client.Del(ctx, key).Err()
}

func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	if !c.Enabled() {
		return nil
	}

	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

func sitePageKey(slug string) string {
	return "site:page:" + slug
}

func (c *Cache) CacheSitePage(ctx context.Context, slug string, page interface{}) error {
	return c.Set(ctx, sitePageKey(slug), page, sitePageTTL)
}

func (c *Cache) GetCachedSitePage(ctx context.Context, slug string, dest interface{}) error {
	return c.Get(ctx, sitePageKey(slug), dest)
}

func (c *Cache) InvalidateSitePages(ctx context.Context) error {
	return c.DeletePattern(ctx, "site:page:*")
}

func tagsKey(userID uint) string {
	return fmt.Sprintf("tags:user:%d", userID)
}

func (c *Cache) CacheTags(ctx context.Context, userID uint, tags interface{}) error {
	return c.Set(ctx, tagsKey(userID), tags, tagsTTL)
}

func (c *Cache) GetCachedTags(ctx context.Context, userID uint, dest interface{}) error {
	return c.Get(ctx, tagsKey(userID), dest)
}

func (c *Cache) InvalidateTags(ctx context.Context, userID uint) error {
	return c.Delete(ctx, tagsKey(userID))
}
