package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"CATALOG_SOURCE", "REDIS_ADDR", "KAFKA_BROKERS", "OVERLAY_TRANSITION", "HTTP_PORT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Http.Port)
	assert.Equal(t, "data.json", cfg.Catalog.Source)
	assert.Equal(t, 320*time.Millisecond, cfg.Order.OverlayTransition)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "orders.confirmed", cfg.Kafka.Topic)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "s3://catalog/data.json")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("OVERLAY_TRANSITION", "1s")
	t.Setenv("READ_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "4s")

	cfg, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "s3://catalog/data.json", cfg.Catalog.Source)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 4*time.Second, cfg.Redis.Timeout)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, time.Second, cfg.Order.OverlayTransition)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("duration", func(t *testing.T) {
		t.Setenv("OVERLAY_TRANSITION", "soon")
		_, err := Load(logger.NewNop())
		require.Error(t, err)
	})

	t.Run("redis db", func(t *testing.T) {
		t.Setenv("REDIS_DB_ID", "first")
		_, err := Load(logger.NewNop())
		require.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
	})

	t.Run("sweep interval", func(t *testing.T) {
		t.Setenv("SESSION_SWEEP_INTERVAL", "0s")
		_, err := Load(logger.NewNop())
		require.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
	})
}
