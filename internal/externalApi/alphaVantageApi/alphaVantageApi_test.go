package alphaVantageApi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/config"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/externalApi"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model/alphaVantageModel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dailySeriesBody = `{
	"Meta Data": {"2. Symbol": "IBM"},
	"Time Series (Daily)": {
		"2024-01-03": {"1. open": "160.00", "2. high": "162.50", "3. low": "159.20", "4. close": "162.10", "5. volume": "3120000"},
		"2024-01-02": {"1. open": "158.50", "2. high": "160.10", "3. low": "158.00", "4. close": "159.50", "5. volume": "2900000"},
		"2023-12-29": {"1. open": "157.00", "2. high": "158.30", "3. low": "156.50", "4. close": "158.00", "5. volume": "2500000"}
	}
}`

const overviewBody = `{
	"Symbol": "IBM",
	"Name": "International Business Machines",
	"Exchange": "NYSE",
	"Sector": "TECHNOLOGY",
	"SharesOutstanding": "917793024"
}`

func testApi(url string) *AlphaVantageApi {
	return New(&config.Config{
		MarketData: config.MarketData{
			Timeout:      5 * time.Second,
			AlphaVantage: config.AlphaVantage{Url: url, ApiKey: "testkey"},
		},
	})
}

func TestStockData(t *testing.T) {
	from := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	var dailyQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("function") {
		case "TIME_SERIES_DAILY":
			dailyQuery = map[string]string{
				"symbol":     r.URL.Query().Get("symbol"),
				"outputsize": r.URL.Query().Get("outputsize"),
				"apikey":     r.URL.Query().Get("apikey"),
			}
			_, _ = w.Write([]byte(dailySeriesBody))
		case "OVERVIEW":
			_, _ = w.Write([]byte(overviewBody))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	stock, prices, err := testApi(srv.URL).StockData(context.Background(), "IBM", from, to)

	require.NoError(t, err)
	assert.Equal(t, "IBM", dailyQuery["symbol"])
	assert.Equal(t, "full", dailyQuery["outputsize"])
	assert.Equal(t, "testkey", dailyQuery["apikey"])

	assert.Equal(t, "IBM", stock.Ticker)
	assert.Equal(t, "International Business Machines", stock.Name)
	assert.Equal(t, "TECHNOLOGY", stock.Sector)
	assert.Equal(t, "NYSE", stock.Exchange)

	// 2023-12-29 falls outside the range, the rest come back sorted
	require.Len(t, prices, 2)
	assert.Equal(t, from, prices[0].Date)
	assert.Equal(t, 158.50, prices[0].Open)
	assert.Equal(t, 159.50, prices[0].Close)
	assert.Equal(t, int64(2900000), prices[0].Volume)
	assert.InDelta(t, 159.50*917793024, prices[0].MarketCap, 1)

	assert.Equal(t, to, prices[1].Date)
	assert.Equal(t, 162.10, prices[1].Close)
}

func TestStockData_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`))
	}))
	defer srv.Close()

	from := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	_, _, err := testApi(srv.URL).StockData(context.Background(), "IBM", from, from)

	require.ErrorIs(t, err, externalApi.ErrRateLimited)
}

func TestStockData_UnknownTicker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Error Message": "Invalid API call. Please retry or visit the documentation."}`))
	}))
	defer srv.Close()

	from := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	_, _, err := testApi(srv.URL).StockData(context.Background(), "NOPE", from, from)

	require.ErrorIs(t, err, externalApi.ErrNotFound)
}

func TestStockData_OverviewFailureTolerated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("function") == "TIME_SERIES_DAILY" {
			_, _ = w.Write([]byte(dailySeriesBody))
			return
		}
		_, _ = w.Write([]byte(`{"Information": "API rate limit reached"}`))
	}))
	defer srv.Close()

	from := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	stock, prices, err := testApi(srv.URL).StockData(context.Background(), "IBM", from, to)

	require.NoError(t, err)
	assert.Equal(t, "IBM", stock.Ticker)
	assert.Empty(t, stock.Name)
	require.Len(t, prices, 2)
	assert.Zero(t, prices[0].MarketCap)
}

func TestBuildPrices_BadNumber(t *testing.T) {
	series := alphaVantageModel.DailySeriesResponse{
		TimeSeries: map[string]alphaVantageModel.DailyBar{
			"2024-01-02": {Open: "abc", High: "1", Low: "1", Close: "1", Volume: "1"},
		},
	}

	from := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	prices, err := buildPrices("IBM", series, 0, from, from)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't parse open")
	assert.Nil(t, prices)
}
