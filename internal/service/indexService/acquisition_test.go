package indexService

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcquireMarketData_SkipsFailedTickers(t *testing.T) {
	svc, m := setupIndexService(t)

	m.sp500Api.On("Tickers", mock.Anything).Return([]string{"AAPL", "MSFT", "BRK-B"}, nil)
	m.marketDataApi.On("StockData", mock.Anything, "AAPL", mock.Anything, mock.Anything).Return(
		model.Stock{Ticker: "AAPL", Name: "Apple Inc."},
		[]model.StockPrice{
			{Ticker: "AAPL", Date: day("2024-01-02"), Close: 100, MarketCap: 3000},
			{Ticker: "AAPL", Date: day("2024-01-03"), Close: 101, MarketCap: 3030},
		},
		nil,
	)
	m.marketDataApi.On("StockData", mock.Anything, "MSFT", mock.Anything, mock.Anything).Return(
		model.Stock{}, nil, errors.New("rate limited"),
	)
	m.marketDataApi.On("StockData", mock.Anything, "BRK-B", mock.Anything, mock.Anything).Return(
		model.Stock{Ticker: "BRK-B", Name: "Berkshire Hathaway"},
		[]model.StockPrice{{Ticker: "BRK-B", Date: day("2024-01-03"), Close: 360, MarketCap: 780}},
		nil,
	)

	var storedStocks []model.Stock
	var storedPrices []model.StockPrice
	m.repo.On("UpsertStocks", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		storedStocks = args.Get(1).([]model.Stock)
	}).Return(nil)
	m.repo.On("UpsertStockPrices", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		storedPrices = args.Get(1).([]model.StockPrice)
	}).Return(nil)
	m.repo.On("GetLatestPriceDate", mock.Anything).Return(day("2024-01-03"), nil)

	err := svc.AcquireMarketData(context.Background())

	require.NoError(t, err)
	require.Len(t, storedStocks, 2)
	assert.Equal(t, "AAPL", storedStocks[0].Ticker)
	assert.Equal(t, "BRK-B", storedStocks[1].Ticker)
	assert.Len(t, storedPrices, 3)
	m.repo.AssertExpectations(t)
	m.marketDataApi.AssertExpectations(t)
}

func TestAcquireMarketData_TickerLimitCapsUniverse(t *testing.T) {
	svc, m := setupIndexService(t)
	svc.cfg.Acquisition.TickerLimit = 1

	m.sp500Api.On("Tickers", mock.Anything).Return([]string{"AAPL", "MSFT"}, nil)
	m.marketDataApi.On("StockData", mock.Anything, "AAPL", mock.Anything, mock.Anything).Return(
		model.Stock{Ticker: "AAPL"},
		[]model.StockPrice{{Ticker: "AAPL", Date: day("2024-01-02"), Close: 100}},
		nil,
	)
	m.repo.On("UpsertStocks", mock.Anything, mock.Anything).Return(nil)
	m.repo.On("UpsertStockPrices", mock.Anything, mock.Anything).Return(nil)
	m.repo.On("GetLatestPriceDate", mock.Anything).Return(day("2024-01-02"), nil)

	err := svc.AcquireMarketData(context.Background())

	require.NoError(t, err)
	m.marketDataApi.AssertNumberOfCalls(t, "StockData", 1)
}

func TestAcquireMarketData_AllTickersFailed(t *testing.T) {
	svc, m := setupIndexService(t)

	m.sp500Api.On("Tickers", mock.Anything).Return([]string{"AAPL", "MSFT"}, nil)
	m.marketDataApi.On("StockData", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(
		model.Stock{}, nil, errors.New("not found"),
	)

	err := svc.AcquireMarketData(context.Background())

	require.Error(t, err)
	assert.Equal(t, "no market data fetched", err.Error())
	m.repo.AssertNotCalled(t, "UpsertStocks", mock.Anything, mock.Anything)
	m.repo.AssertNotCalled(t, "UpsertStockPrices", mock.Anything, mock.Anything)
}

func TestAcquireMarketData_TickerSourceError(t *testing.T) {
	svc, m := setupIndexService(t)

	m.sp500Api.On("Tickers", mock.Anything).Return(nil, errors.New("wikipedia unreachable"))

	err := svc.AcquireMarketData(context.Background())

	require.Error(t, err)
	m.marketDataApi.AssertNotCalled(t, "StockData", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAcquireMarketData_LatestDateCheckNotFatal(t *testing.T) {
	svc, m := setupIndexService(t)

	m.sp500Api.On("Tickers", mock.Anything).Return([]string{"AAPL"}, nil)
	m.marketDataApi.On("StockData", mock.Anything, "AAPL", mock.Anything, mock.Anything).Return(
		model.Stock{Ticker: "AAPL"},
		[]model.StockPrice{{Ticker: "AAPL", Date: day("2024-01-02"), Close: 100}},
		nil,
	)
	m.repo.On("UpsertStocks", mock.Anything, mock.Anything).Return(nil)
	m.repo.On("UpsertStockPrices", mock.Anything, mock.Anything).Return(nil)
	m.repo.On("GetLatestPriceDate", mock.Anything).Return(time.Time{}, errors.New("connection reset"))

	err := svc.AcquireMarketData(context.Background())

	require.NoError(t, err)
	m.repo.AssertExpectations(t)
}
