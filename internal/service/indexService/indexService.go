package indexService

import (
	"context"
	"io"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/config"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
)

type Repository interface {
	UpsertStocks(ctx context.Context, stocks []model.Stock) error
	UpsertStockPrices(ctx context.Context, prices []model.StockPrice) error
	GetTradingDates(ctx context.Context, start, end time.Time) ([]time.Time, error)
	GetTopStocksByMarketCap(ctx context.Context, date time.Time, limit int) ([]model.TopStock, error)
	GetPricesForDate(ctx context.Context, date time.Time, tickers []string) (map[string]model.PriceQuote, error)
	GetLatestPriceDate(ctx context.Context) (time.Time, error)
	UpsertIndexCompositions(ctx context.Context, compositions []model.CompositionEntry) error
	UpsertIndexPerformance(ctx context.Context, performances []model.PerformanceEntry) error
	GetIndexPerformance(ctx context.Context, start, end time.Time) ([]model.PerformanceEntry, error)
	GetIndexComposition(ctx context.Context, date time.Time) ([]model.CompositionStock, error)
	GetCompositionTickers(ctx context.Context, date time.Time) ([]string, error)
	WithinTransaction(ctx context.Context, tFunc func(ctx context.Context) error) error
}

type Cache interface {
	GetPerformance(ctx context.Context, start, end time.Time) ([]model.PerformanceEntry, error)
	SetPerformance(ctx context.Context, start, end time.Time, entries []model.PerformanceEntry) error
	GetComposition(ctx context.Context, date time.Time) ([]model.CompositionStock, error)
	SetComposition(ctx context.Context, date time.Time, stocks []model.CompositionStock) error
	GetChanges(ctx context.Context, start, end time.Time) ([]model.CompositionChange, error)
	SetChanges(ctx context.Context, start, end time.Time, changes []model.CompositionChange) error
	InvalidateIndex(ctx context.Context, start, end time.Time) error
}

type Sp500Api interface {
	Tickers(ctx context.Context) ([]string, error)
}

type MarketDataApi interface {
	StockData(ctx context.Context, ticker string, from, to time.Time) (model.Stock, []model.StockPrice, error)
}

type ReportGenerator interface {
	Generate(ctx context.Context, report model.IndexReport) (fileBytes []byte, fileName string, err error)
}

type CloudStorage interface {
	UploadFile(ctx context.Context, reader io.Reader, filename string) (downloadLink string, err error)
}

type IndexService struct {
	cfg           *config.Config
	repo          Repository
	cache         Cache
	sp500Api      Sp500Api
	marketDataApi MarketDataApi
	reportGen     ReportGenerator
	cloudStorage  CloudStorage
}

// New builds the service. cloudStorage may be nil; exports then skip the
// upload and return raw file bytes.
func New(
	cfg *config.Config,
	repo Repository,
	cache Cache,
	sp500Api Sp500Api,
	marketDataApi MarketDataApi,
	reportGen ReportGenerator,
	cloudStorage CloudStorage,
) *IndexService {
	return &IndexService{
		cfg:           cfg,
		repo:          repo,
		cache:         cache,
		sp500Api:      sp500Api,
		marketDataApi: marketDataApi,
		reportGen:     reportGen,
		cloudStorage:  cloudStorage,
	}
}
