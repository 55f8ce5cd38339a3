package config

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8084", cfg.Server.Port)
	assert.Equal(t, "drink_events", cfg.Kafka.Topic)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Rating.AverageActiveOnly)
	assert.Equal(t, 30*time.Second, cfg.Redis.LockTTL)
	assert.Equal(t, "1 0 * * *", cfg.Cron.RotateFeatured)
	assert.Equal(t, time.UTC, cfg.App.Location)
	assert.Equal(t, "UTC", cfg.Database.TimeZone)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Europe/Amsterdam")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("RATING_AVERAGE_ACTIVE_ONLY", "false")
	t.Setenv("DB_HOST", "db")
	t.Setenv("VOTE_RATE_BURST", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Rating.AverageActiveOnly)
	assert.Equal(t, "Europe/Amsterdam", cfg.App.Location.String())
	assert.Equal(t, 7, cfg.Vote.Burst)
	assert.Contains(t, cfg.Database.DSN(), "host=db")
	assert.Contains(t, cfg.Database.DSN(), "TimeZone=Europe/Amsterdam")
	assert.Equal(t, "postgres://postgres:postgres@db:5432/drinks_service?sslmode=disable&timezone=Europe%2FAmsterdam", cfg.Database.URL())
}

func TestDatabaseURL_EscapesCredentials(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "drinks",
		Password: "p@ss/w:rd?",
		DBName:   "drinks_service",
		SSLMode:  "disable",
		TimeZone: "Europe/Amsterdam",
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	require.NoError(t, err)

	assert.Equal(t, "drinks", poolConfig.ConnConfig.User)
	assert.Equal(t, "p@ss/w:rd?", poolConfig.ConnConfig.Password)
	assert.Equal(t, "db", poolConfig.ConnConfig.Host)
	assert.Equal(t, uint16(5432), poolConfig.ConnConfig.Port)
	assert.Equal(t, "drinks_service", poolConfig.ConnConfig.Database)
	assert.Equal(t, "Europe/Amsterdam", poolConfig.ConnConfig.RuntimeParams["timezone"])
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("timezone", func(t *testing.T) {
		t.Setenv("APP_TIMEZONE", "Mars/Olympus")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("redis db", func(t *testing.T) {
		t.Setenv("APP_TIMEZONE", "UTC")
		t.Setenv("REDIS_DB", "zero")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("average policy", func(t *testing.T) {
		t.Setenv("APP_TIMEZONE", "UTC")
		t.Setenv("RATING_AVERAGE_ACTIVE_ONLY", "sometimes")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestGetEnvInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 5, getEnvInt("SOME_INT", 5))
}
