package redis

import (
	"context"
	"errors"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// CatalogCacheRepo кэширует сырой JSON каталога в Redis с TTL.
type CatalogCacheRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCatalogCacheRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *CatalogCacheRepo {
	return &CatalogCacheRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Get возвращает закэшированный каталог или e.ErrCacheMiss.
func (c *CatalogCacheRepo) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, e.ErrCacheMiss
		}
		c.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if len(data) == 0 {
		return nil, e.ErrCacheMiss
	}

	return data, nil
}

// Set сохраняет каталог на cfg.CatalogTTL.
func (c *CatalogCacheRepo) Set(ctx context.Context, key string, payload []byte) error {
	if err := c.client.Client.Set(ctx, key, payload, c.cfg.CatalogTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Delete удаляет каталог из кэша.
func (c *CatalogCacheRepo) Delete(ctx context.Context, key string) error {
	if err := c.client.Client.Del(ctx, key).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
