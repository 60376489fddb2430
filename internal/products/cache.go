package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmfsamples/catalog-api/pkg/db/models"
	"github.com/cmfsamples/catalog-api/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
)

// Cache is the optional read-through layer in front of the repository.
// Implementations must treat every failure as a miss: the database is the
// source of truth and the cache only ever holds committed rows.
type Cache interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, bool)
	SetProduct(ctx context.Context, product *models.Product)
	GetList(ctx context.Context) ([]models.Product, bool)
	SetList(ctx context.Context, rows []models.Product)
	Invalidate(ctx context.Context, id int64)
}

type redisCache struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
	logg   *logger.Logger
}

// NewRedisCache builds a cache-aside layer on the provided redis client.
func NewRedisCache(client *goredis.Client, prefix string, ttl time.Duration, logg *logger.Logger) Cache {
	if prefix == "" {
		prefix = "catalog"
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisCache{client: client, prefix: prefix, ttl: ttl, logg: logg}
}

func (c *redisCache) productKey(id int64) string {
	return fmt.Sprintf("%s:product:%d", c.prefix, id)
}

func (c *redisCache) listKey() string {
	return c.prefix + ":products:all"
}

func (c *redisCache) GetProduct(ctx context.Context, id int64) (*models.Product, bool) {
	data, err := c.client.Get(ctx, c.productKey(id)).Bytes()
	if err != nil {
		c.warnOnError(ctx, "cache get failed", err)
		return nil, false
	}
	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		c.warnOnError(ctx, "cache entry unreadable", err)
		return nil, false
	}
	return &product, true
}

func (c *redisCache) SetProduct(ctx context.Context, product *models.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		c.warnOnError(ctx, "cache marshal failed", err)
		return
	}
	if err := c.client.Set(ctx, c.productKey(product.ID), data, c.ttl).Err(); err != nil {
		c.warnOnError(ctx, "cache set failed", err)
	}
}

func (c *redisCache) GetList(ctx context.Context) ([]models.Product, bool) {
	data, err := c.client.Get(ctx, c.listKey()).Bytes()
	if err != nil {
		c.warnOnError(ctx, "cache get failed", err)
		return nil, false
	}
	var rows []models.Product
	if err := json.Unmarshal(data, &rows); err != nil {
		c.warnOnError(ctx, "cache entry unreadable", err)
		return nil, false
	}
	return rows, true
}

func (c *redisCache) SetList(ctx context.Context, rows []models.Product) {
	data, err := json.Marshal(rows)
	if err != nil {
		c.warnOnError(ctx, "cache marshal failed", err)
		return
	}
	if err := c.client.Set(ctx, c.listKey(), data, c.ttl).Err(); err != nil {
		c.warnOnError(ctx, "cache set failed", err)
	}
}

func (c *redisCache) Invalidate(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, c.productKey(id), c.listKey()).Err(); err != nil {
		c.warnOnError(ctx, "cache invalidate failed", err)
	}
}

func (c *redisCache) warnOnError(ctx context.Context, msg string, err error) {
	if c.logg == nil || errors.Is(err, goredis.Nil) {
		return
	}
	c.logg.Warn(c.logg.WithField(ctx, "cache_error", err.Error()), msg)
}
