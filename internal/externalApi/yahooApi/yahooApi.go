package yahooApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/config"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/externalApi"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model/yahooModel"
	"github.com/gauravcr7rm/equal-weighted-stock-index/utils"
	"github.com/go-resty/resty/v2"
)

type YahooApi struct {
	chartClient *resty.Client
	quoteClient *resty.Client
}

func New(cfg *config.Config) *YahooApi {
	chartClient := resty.New().
		SetTimeout(cfg.MarketData.Timeout).
		SetRetryCount(cfg.MarketData.RetryCount).
		SetBaseURL(cfg.MarketData.Yahoo.ChartUrl).
		SetHeader("User-Agent", "equal-weighted-stock-index/1.0")

	quoteClient := resty.New().
		SetTimeout(cfg.MarketData.Timeout).
		SetRetryCount(cfg.MarketData.RetryCount).
		SetBaseURL(cfg.MarketData.Yahoo.QuoteUrl).
		SetHeader("User-Agent", "equal-weighted-stock-index/1.0")

	return &YahooApi{chartClient: chartClient, quoteClient: quoteClient}
}

// StockData returns stock metadata and daily price bars for the
// [from, to] date range. Metadata lookup failures are tolerated: the stock
// comes back with empty fields and zero market cap on every bar.
func (api *YahooApi) StockData(ctx context.Context, ticker string, from, to time.Time) (model.Stock, []model.StockPrice, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "YahooApi.StockData"

	slog.Debug(
		"StockData start",
		slog.String("rqID", rqID),
		slog.String("op", op),
		slog.String("ticker", ticker),
		slog.String("from", from.Format(time.DateOnly)),
		slog.String("to", to.Format(time.DateOnly)),
	)

	chart, err := api.fetchChart(ctx, ticker, from, to)
	if err != nil {
		slog.Error("can't fetch chart", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker), slog.String("err", err.Error()))
		return model.Stock{}, nil, err
	}

	stock, shares := api.fetchMetadata(ctx, ticker)
	stock.Ticker = ticker

	prices := buildPrices(ticker, chart, shares)

	slog.Debug(
		"StockData completed",
		slog.String("rqID", rqID),
		slog.String("op", op),
		slog.String("ticker", ticker),
		slog.Int("prices", len(prices)),
	)

	return stock, prices, nil
}

func (api *YahooApi) fetchChart(ctx context.Context, ticker string, from, to time.Time) (yahooModel.ChartResult, error) {
	resp, err := api.chartClient.R().
		SetContext(ctx).
		SetPathParam("ticker", ticker).
		SetQueryParams(map[string]string{
			"period1":  fmt.Sprintf("%d", from.Unix()),
			"period2":  fmt.Sprintf("%d", to.AddDate(0, 0, 1).Unix()),
			"interval": "1d",
		}).
		Get("/v8/finance/chart/{ticker}")
	if err != nil {
		return yahooModel.ChartResult{}, err
	}

	if err = classifyStatus(resp.StatusCode()); err != nil {
		return yahooModel.ChartResult{}, err
	}

	var chartResp yahooModel.ChartResponse
	if err = json.Unmarshal(resp.Body(), &chartResp); err != nil {
		return yahooModel.ChartResult{}, fmt.Errorf("can't unmarshal chart response: %w", err)
	}

	if chartResp.Chart.Error != nil {
		return yahooModel.ChartResult{}, fmt.Errorf("chart api error: %s", chartResp.Chart.Error.Description)
	}

	if len(chartResp.Chart.Result) == 0 {
		return yahooModel.ChartResult{}, externalApi.ErrNotFound
	}

	return chartResp.Chart.Result[0], nil
}

// fetchMetadata never fails the whole request: on any error it returns an
// empty stock and zero shares outstanding.
func (api *YahooApi) fetchMetadata(ctx context.Context, ticker string) (model.Stock, float64) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "YahooApi.fetchMetadata"

	resp, err := api.quoteClient.R().
		SetContext(ctx).
		SetPathParam("ticker", ticker).
		SetQueryParam("modules", "summaryProfile,defaultKeyStatistics,price").
		Get("/v10/finance/quoteSummary/{ticker}")
	if err != nil {
		slog.Warn("can't fetch quote summary", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker), slog.String("err", err.Error()))
		return model.Stock{}, 0
	}

	if err = classifyStatus(resp.StatusCode()); err != nil {
		slog.Warn("quote summary request failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker), slog.String("err", err.Error()))
		return model.Stock{}, 0
	}

	var summaryResp yahooModel.QuoteSummaryResponse
	if err = json.Unmarshal(resp.Body(), &summaryResp); err != nil {
		slog.Warn("can't unmarshal quote summary", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker), slog.String("err", err.Error()))
		return model.Stock{}, 0
	}

	if len(summaryResp.QuoteSummary.Result) == 0 {
		return model.Stock{}, 0
	}

	result := summaryResp.QuoteSummary.Result[0]

	var stock model.Stock
	if result.Price != nil {
		stock.Name = result.Price.ShortName
		stock.Exchange = result.Price.ExchangeName
	}
	if result.SummaryProfile != nil {
		stock.Sector = result.SummaryProfile.Sector
	}

	var shares float64
	if result.DefaultKeyStatistics != nil {
		shares = result.DefaultKeyStatistics.SharesOutstanding.Raw
	}

	return stock, shares
}

func buildPrices(ticker string, chart yahooModel.ChartResult, shares float64) []model.StockPrice {
	if len(chart.Indicators.Quote) == 0 {
		return nil
	}

	quote := chart.Indicators.Quote[0]

	prices := make([]model.StockPrice, 0, len(chart.Timestamp))
	for i, ts := range chart.Timestamp {
		closePrice := floatAt(quote.Close, i)
		if closePrice == nil {
			continue
		}

		date := time.Unix(ts, 0).UTC()
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

		prices = append(prices, model.StockPrice{
			Date:      date,
			Ticker:    ticker,
			Open:      floatOrZero(quote.Open, i),
			High:      floatOrZero(quote.High, i),
			Low:       floatOrZero(quote.Low, i),
			Close:     *closePrice,
			Volume:    intOrZero(quote.Volume, i),
			MarketCap: *closePrice * shares,
		})
	}

	return prices
}

func classifyStatus(code int) error {
	switch {
	case code == http.StatusNotFound:
		return externalApi.ErrNotFound
	case code == http.StatusTooManyRequests:
		return externalApi.ErrRateLimited
	case code >= 400:
		return fmt.Errorf("unexpected status %d", code)
	}
	return nil
}

func floatAt(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

func floatOrZero(values []*float64, i int) float64 {
	if v := floatAt(values, i); v != nil {
		return *v
	}
	return 0
}

func intOrZero(values []*int64, i int) int64 {
	if i < len(values) && values[i] != nil {
		return *values[i]
	}
	return 0
}
