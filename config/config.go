package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string `env:"ENV" envDefault:"local"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTP        HTTP
	Postgres    Postgres
	Redis       Redis
	Cache       Cache
	Index       Index
	MarketData  MarketData
	Acquisition Acquisition
	Export      Export
	GoogleDrive GoogleDrive
}

type HTTP struct {
	Host            string        `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"HTTP_PORT" envDefault:"8000"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Postgres struct {
	Host            string `env:"PG_HOST"`
	Port            int    `env:"PG_PORT"`
	DbName          string `env:"PG_DB_NAME"`
	Password        string `env:"PG_PASSWORD"`
	User            string `env:"PG_USER"`
	MaxOpenConns    int    `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	ConnMaxLifetime int    `env:"PG_CONN_MAX_LIFETIME" envDefault:"300"`
	MaxIdleConns    int    `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxIdleTime int    `env:"PG_CONN_MAX_IDLE_TIME" envDefault:"60"`
	MigrationDir    string `env:"PG_MIGRATION_DIR" envDefault:"migrations"`
}

type Redis struct {
	Host     string `env:"REDIS_HOST"`
	Port     int    `env:"REDIS_PORT"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Cache struct {
	Expiration time.Duration `env:"CACHE_EXPIRATION" envDefault:"3600s"`
}

type Index struct {
	ConstituentCount int `env:"INDEX_CONSTITUENT_COUNT" envDefault:"100"`
}

type MarketData struct {
	Source       string        `env:"MARKET_DATA_SOURCE" envDefault:"yahoo"`
	Timeout      time.Duration `env:"MARKET_DATA_TIMEOUT" envDefault:"10s"`
	RetryCount   int           `env:"MARKET_DATA_RETRY_COUNT" envDefault:"3"`
	AlphaVantage AlphaVantage
	Yahoo        Yahoo
	SP500        SP500
}

type AlphaVantage struct {
	Url    string `env:"ALPHAVANTAGE_URL" envDefault:"https://www.alphavantage.co"`
	ApiKey string `env:"ALPHAVANTAGE_API_KEY" envDefault:""`
}

type Yahoo struct {
	ChartUrl string `env:"YAHOO_CHART_URL" envDefault:"https://query1.finance.yahoo.com"`
	QuoteUrl string `env:"YAHOO_QUOTE_URL" envDefault:"https://query2.finance.yahoo.com"`
}

type SP500 struct {
	Url string `env:"SP500_SOURCE_URL" envDefault:"https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"`
}

type Acquisition struct {
	Crontab      string        `env:"ACQUISITION_CRONTAB" envDefault:"0 1 * * *"`
	RunOnStart   bool          `env:"ACQUISITION_ON_START" envDefault:"false"`
	TickerLimit  int           `env:"ACQUISITION_TICKER_LIMIT" envDefault:"150"`
	HistoryDays  int           `env:"ACQUISITION_HISTORY_DAYS" envDefault:"30"`
	RateInterval time.Duration `env:"ACQUISITION_RATE_INTERVAL" envDefault:"500ms"`
}

type Export struct {
	FileNamePrefix string `env:"EXPORT_FILE_NAME_PREFIX" envDefault:"index_data"`
}

type GoogleDrive struct {
	Enabled         bool          `env:"GOOGLE_DRIVE_ENABLED" envDefault:"false"`
	CredentialsFile string        `env:"GOOGLE_DRIVE_CREDENTIALS_FILE" envDefault:""`
	FileTTL         time.Duration `env:"GOOGLE_DRIVE_FILE_TTL" envDefault:"72h"`
	CleanupInterval time.Duration `env:"GOOGLE_DRIVE_CLEANUP_INTERVAL" envDefault:"24h"`
}

func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}
