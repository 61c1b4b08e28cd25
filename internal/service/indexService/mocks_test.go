package indexService

import (
	"context"
	"io"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) UpsertStocks(ctx context.Context, stocks []model.Stock) error {
	args := m.Called(ctx, stocks)
	return args.Error(0)
}

func (m *MockRepository) UpsertStockPrices(ctx context.Context, prices []model.StockPrice) error {
	args := m.Called(ctx, prices)
	return args.Error(0)
}

func (m *MockRepository) GetTradingDates(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockRepository) GetTopStocksByMarketCap(ctx context.Context, date time.Time, limit int) ([]model.TopStock, error) {
	args := m.Called(ctx, date, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TopStock), args.Error(1)
}

func (m *MockRepository) GetPricesForDate(ctx context.Context, date time.Time, tickers []string) (map[string]model.PriceQuote, error) {
	args := m.Called(ctx, date, tickers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.PriceQuote), args.Error(1)
}

func (m *MockRepository) GetLatestPriceDate(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockRepository) UpsertIndexCompositions(ctx context.Context, compositions []model.CompositionEntry) error {
	args := m.Called(ctx, compositions)
	return args.Error(0)
}

func (m *MockRepository) UpsertIndexPerformance(ctx context.Context, performances []model.PerformanceEntry) error {
	args := m.Called(ctx, performances)
	return args.Error(0)
}

func (m *MockRepository) GetIndexPerformance(ctx context.Context, start, end time.Time) ([]model.PerformanceEntry, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PerformanceEntry), args.Error(1)
}

func (m *MockRepository) GetIndexComposition(ctx context.Context, date time.Time) ([]model.CompositionStock, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CompositionStock), args.Error(1)
}

func (m *MockRepository) GetCompositionTickers(ctx context.Context, date time.Time) ([]string, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) WithinTransaction(ctx context.Context, tFunc func(ctx context.Context) error) error {
	args := m.Called(ctx, tFunc)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return tFunc(ctx)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetPerformance(ctx context.Context, start, end time.Time) ([]model.PerformanceEntry, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PerformanceEntry), args.Error(1)
}

func (m *MockCache) SetPerformance(ctx context.Context, start, end time.Time, entries []model.PerformanceEntry) error {
	args := m.Called(ctx, start, end, entries)
	return args.Error(0)
}

func (m *MockCache) GetComposition(ctx context.Context, date time.Time) ([]model.CompositionStock, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CompositionStock), args.Error(1)
}

func (m *MockCache) SetComposition(ctx context.Context, date time.Time, stocks []model.CompositionStock) error {
	args := m.Called(ctx, date, stocks)
	return args.Error(0)
}

func (m *MockCache) GetChanges(ctx context.Context, start, end time.Time) ([]model.CompositionChange, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CompositionChange), args.Error(1)
}

func (m *MockCache) SetChanges(ctx context.Context, start, end time.Time, changes []model.CompositionChange) error {
	args := m.Called(ctx, start, end, changes)
	return args.Error(0)
}

func (m *MockCache) InvalidateIndex(ctx context.Context, start, end time.Time) error {
	args := m.Called(ctx, start, end)
	return args.Error(0)
}

type MockSp500Api struct {
	mock.Mock
}

func (m *MockSp500Api) Tickers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockMarketDataApi struct {
	mock.Mock
}

func (m *MockMarketDataApi) StockData(ctx context.Context, ticker string, from, to time.Time) (model.Stock, []model.StockPrice, error) {
	args := m.Called(ctx, ticker, from, to)
	var prices []model.StockPrice
	if args.Get(1) != nil {
		prices = args.Get(1).([]model.StockPrice)
	}
	return args.Get(0).(model.Stock), prices, args.Error(2)
}

type MockReportGenerator struct {
	mock.Mock
}

func (m *MockReportGenerator) Generate(ctx context.Context, report model.IndexReport) ([]byte, string, error) {
	args := m.Called(ctx, report)
	var fileBytes []byte
	if args.Get(0) != nil {
		fileBytes = args.Get(0).([]byte)
	}
	return fileBytes, args.String(1), args.Error(2)
}

type MockCloudStorage struct {
	mock.Mock
}

func (m *MockCloudStorage) UploadFile(ctx context.Context, reader io.Reader, filename string) (string, error) {
	args := m.Called(ctx, reader, filename)
	return args.String(0), args.Error(1)
}
