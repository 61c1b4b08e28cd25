package alphaVantageApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/config"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/externalApi"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model/alphaVantageModel"
	"github.com/gauravcr7rm/equal-weighted-stock-index/utils"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type AlphaVantageApi struct {
	client *resty.Client
	apiKey string
}

func New(cfg *config.Config) *AlphaVantageApi {
	client := resty.New().
		SetTimeout(cfg.MarketData.Timeout).
		SetRetryCount(cfg.MarketData.RetryCount).
		SetBaseURL(cfg.MarketData.AlphaVantage.Url)
	return &AlphaVantageApi{client: client, apiKey: cfg.MarketData.AlphaVantage.ApiKey}
}

// StockData returns stock metadata and daily price bars for the
// [from, to] date range. Metadata lookup failures are tolerated: the stock
// comes back with empty fields and zero market cap on every bar.
func (api *AlphaVantageApi) StockData(ctx context.Context, ticker string, from, to time.Time) (model.Stock, []model.StockPrice, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "AlphaVantageApi.StockData"

	slog.Debug(
		"StockData start",
		slog.String("rqID", rqID),
		slog.String("op", op),
		slog.String("ticker", ticker),
		slog.String("from", from.Format(dateLayout)),
		slog.String("to", to.Format(dateLayout)),
	)

	series, err := api.fetchDailySeries(ctx, ticker)
	if err != nil {
		slog.Error("can't fetch daily series", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker), slog.String("err", err.Error()))
		return model.Stock{}, nil, err
	}

	stock, shares := api.fetchOverview(ctx, ticker)
	stock.Ticker = ticker

	prices, err := buildPrices(ticker, series, shares, from, to)
	if err != nil {
		slog.Error("can't parse daily series", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker), slog.String("err", err.Error()))
		return model.Stock{}, nil, err
	}

	slog.Debug(
		"StockData completed",
		slog.String("rqID", rqID),
		slog.String("op", op),
		slog.String("ticker", ticker),
		slog.Int("prices", len(prices)),
	)

	return stock, prices, nil
}

func (api *AlphaVantageApi) fetchDailySeries(ctx context.Context, ticker string) (alphaVantageModel.DailySeriesResponse, error) {
	var series alphaVantageModel.DailySeriesResponse

	resp, err := api.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function":   "TIME_SERIES_DAILY",
			"symbol":     ticker,
			"outputsize": "full",
			"apikey":     api.apiKey,
		}).
		Get("/query")
	if err != nil {
		return series, err
	}

	if resp.StatusCode() != http.StatusOK {
		return series, fmt.Errorf("unexpected status %d", resp.StatusCode())
	}

	if err = json.Unmarshal(resp.Body(), &series); err != nil {
		return series, fmt.Errorf("can't unmarshal daily series: %w", err)
	}

	// throttling responses come back 200 with a Note or Information field
	if series.Note != "" || series.Information != "" {
		return series, externalApi.ErrRateLimited
	}

	if series.ErrorMessage != "" {
		return series, externalApi.ErrNotFound
	}

	return series, nil
}

// fetchOverview never fails the whole request: on any error it returns an
// empty stock and zero shares outstanding.
func (api *AlphaVantageApi) fetchOverview(ctx context.Context, ticker string) (model.Stock, float64) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "AlphaVantageApi.fetchOverview"

	resp, err := api.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "OVERVIEW",
			"symbol":   ticker,
			"apikey":   api.apiKey,
		}).
		Get("/query")
	if err != nil {
		slog.Warn("can't fetch overview", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker), slog.String("err", err.Error()))
		return model.Stock{}, 0
	}

	if resp.StatusCode() != http.StatusOK {
		slog.Warn("overview request failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker), slog.Int("status", resp.StatusCode()))
		return model.Stock{}, 0
	}

	var overview alphaVantageModel.OverviewResponse
	if err = json.Unmarshal(resp.Body(), &overview); err != nil {
		slog.Warn("can't unmarshal overview", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker), slog.String("err", err.Error()))
		return model.Stock{}, 0
	}

	if overview.Note != "" || overview.Information != "" || overview.Symbol == "" {
		return model.Stock{}, 0
	}

	stock := model.Stock{
		Name:     overview.Name,
		Sector:   overview.Sector,
		Exchange: overview.Exchange,
	}

	var shares float64
	if dec, err := decimal.NewFromString(overview.SharesOutstanding); err == nil {
		shares = dec.InexactFloat64()
	}

	return stock, shares
}

func buildPrices(ticker string, series alphaVantageModel.DailySeriesResponse, shares float64, from, to time.Time) ([]model.StockPrice, error) {
	dates := make([]string, 0, len(series.TimeSeries))
	for date := range series.TimeSeries {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	prices := make([]model.StockPrice, 0, len(dates))
	for _, dateStr := range dates {
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("can't parse series date %q: %w", dateStr, err)
		}

		if date.Before(from) || date.After(to) {
			continue
		}

		bar := series.TimeSeries[dateStr]

		open, err := decimal.NewFromString(bar.Open)
		if err != nil {
			return nil, fmt.Errorf("can't parse open for %s: %w", dateStr, err)
		}
		high, err := decimal.NewFromString(bar.High)
		if err != nil {
			return nil, fmt.Errorf("can't parse high for %s: %w", dateStr, err)
		}
		low, err := decimal.NewFromString(bar.Low)
		if err != nil {
			return nil, fmt.Errorf("can't parse low for %s: %w", dateStr, err)
		}
		closePrice, err := decimal.NewFromString(bar.Close)
		if err != nil {
			return nil, fmt.Errorf("can't parse close for %s: %w", dateStr, err)
		}
		volume, err := decimal.NewFromString(bar.Volume)
		if err != nil {
			return nil, fmt.Errorf("can't parse volume for %s: %w", dateStr, err)
		}

		closeF := closePrice.InexactFloat64()

		prices = append(prices, model.StockPrice{
			Date:      date,
			Ticker:    ticker,
			Open:      open.InexactFloat64(),
			High:      high.InexactFloat64(),
			Low:       low.InexactFloat64(),
			Close:     closeF,
			Volume:    volume.IntPart(),
			MarketCap: closeF * shares,
		})
	}

	return prices, nil
}
