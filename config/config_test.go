package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PG_HOST", "localhost")
	t.Setenv("PG_PORT", "5432")
	t.Setenv("PG_DB_NAME", "index_db")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_USER", "index")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("REDIS_PASSWORD", "secret")
}

func TestMustLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8000, cfg.HTTP.Port)
	assert.Equal(t, 100, cfg.Index.ConstituentCount)
	assert.Equal(t, "yahoo", cfg.MarketData.Source)
	assert.Equal(t, "0 1 * * *", cfg.Acquisition.Crontab)
	assert.Equal(t, 150, cfg.Acquisition.TickerLimit)
	assert.Equal(t, 30, cfg.Acquisition.HistoryDays)
	assert.Equal(t, 500*time.Millisecond, cfg.Acquisition.RateInterval)
	assert.Equal(t, time.Hour, cfg.Cache.Expiration)
	assert.Equal(t, "index_data", cfg.Export.FileNamePrefix)
	assert.False(t, cfg.GoogleDrive.Enabled)
	assert.Equal(t, 72*time.Hour, cfg.GoogleDrive.FileTTL)
}

func TestMustLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("INDEX_CONSTITUENT_COUNT", "50")
	t.Setenv("MARKET_DATA_SOURCE", "alphavantage")
	t.Setenv("ACQUISITION_TICKER_LIMIT", "20")
	t.Setenv("HTTP_PORT", "9000")

	cfg := MustLoad()

	assert.Equal(t, 50, cfg.Index.ConstituentCount)
	assert.Equal(t, "alphavantage", cfg.MarketData.Source)
	assert.Equal(t, 20, cfg.Acquisition.TickerLimit)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
}
