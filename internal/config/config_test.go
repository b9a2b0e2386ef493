package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DriverSQL, cfg.Storage.Driver)
	require.Equal(t, "sqlite://./donations.db", cfg.Storage.DatabaseURL)
	require.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	require.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	require.False(t, cfg.RateLimit.Enabled)
	require.False(t, cfg.MinIO.Enabled())
	require.Equal(t, time.Hour, cfg.MinIO.URLExpiry)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Mongo")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "donations_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DriverMongo, cfg.Storage.Driver)
	require.Equal(t, "donations_test", cfg.MongoDB.Database)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, "localhost", cfg.Redis.Host)
	require.Equal(t, "6379", cfg.Redis.Port)
	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, 2.5, cfg.RateLimit.RPS)
	require.Equal(t, 3, cfg.RateLimit.Burst)
	require.True(t, cfg.MinIO.Enabled())
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "cassandra")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("STORAGE_DRIVER", "mongo")
	t.Setenv("MONGODB_URI", "")
	_, err = LoadConfig()
	require.Error(t, err)

	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_BURST", "0")
	_, err = LoadConfig()
	require.Error(t, err)
}
