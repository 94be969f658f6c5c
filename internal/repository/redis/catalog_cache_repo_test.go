package redis

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*CatalogCacheRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisCfg := &cfg.RedisCfg{
		Addr:        mr.Addr(),
		DialTimeout: time.Second,
		Timeout:     time.Second,
		CatalogTTL:  time.Minute,
	}

	client := clients.NewRedisClient(redisCfg)
	t.Cleanup(func() { _ = client.Client.Close() })
	require.NoError(t, client.Ping(context.Background()))

	return NewCatalogCacheRepo(client, redisCfg, logger.NewNop()), mr
}

func TestCatalogCacheRepo_SetGet(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "catalog:data.json")
	require.ErrorIs(t, err, e.ErrCacheMiss)

	require.NoError(t, repo.Set(ctx, "catalog:data.json", []byte(`[{"name":"Waffle"}]`)))

	data, err := repo.Get(ctx, "catalog:data.json")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Waffle"}]`, string(data))
	assert.Equal(t, time.Minute, mr.TTL("catalog:data.json"))
}

func TestCatalogCacheRepo_Expires(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "catalog:data.json", []byte(`[]`)))
	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, "catalog:data.json")
	require.ErrorIs(t, err, e.ErrCacheMiss)
}

func TestCatalogCacheRepo_Delete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "catalog:data.json", []byte(`[]`)))
	require.NoError(t, repo.Delete(ctx, "catalog:data.json"))

	_, err := repo.Get(ctx, "catalog:data.json")
	require.ErrorIs(t, err, e.ErrCacheMiss)
}

func TestCatalogCacheRepo_ServerDown(t *testing.T) {
	repo, mr := newTestRepo(t)
	mr.Close()

	_, err := repo.Get(context.Background(), "catalog:data.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, e.ErrCacheMiss)
}
