package indexService

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/gauravcr7rm/equal-weighted-stock-index/utils"
	"golang.org/x/time/rate"
)

// AcquireMarketData refreshes the stock universe: S&P 500 tickers, then per
// ticker the metadata and daily bars for the configured history window.
// Per-ticker failures are logged and skipped, never fatal to the run.
func (s *IndexService) AcquireMarketData(ctx context.Context) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "IndexService.AcquireMarketData"

	slog.Debug("AcquireMarketData start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("AcquireMarketData finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -s.cfg.Acquisition.HistoryDays)

	tickers, err := s.sp500Api.Tickers(ctx)
	if err != nil {
		slog.Error("got error from sp500Api.Tickers", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	if limit := s.cfg.Acquisition.TickerLimit; limit > 0 && len(tickers) > limit {
		tickers = tickers[:limit]
	}

	slog.Info(
		"fetching market data",
		slog.String("rqID", rqID),
		slog.String("op", op),
		slog.Int("tickers", len(tickers)),
		slog.String("from", from.Format(dateLayout)),
		slog.String("to", to.Format(dateLayout)),
	)

	limiter := rate.NewLimiter(rate.Every(s.cfg.Acquisition.RateInterval), 1)

	stocks := make([]model.Stock, 0, len(tickers))
	prices := make([]model.StockPrice, 0, len(tickers))
	skipped := 0

	for _, ticker := range tickers {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		stock, stockPrices, err := s.marketDataApi.StockData(ctx, ticker, from, to)
		if err != nil {
			slog.Warn("skipping ticker", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker), slog.String("err", err.Error()))
			skipped++
			continue
		}

		stocks = append(stocks, stock)
		prices = append(prices, stockPrices...)
	}

	if len(stocks) == 0 || len(prices) == 0 {
		slog.Error("no market data fetched", slog.String("rqID", rqID), slog.String("op", op), slog.Int("skipped", skipped))
		return errors.New("no market data fetched")
	}

	if err := s.repo.UpsertStocks(ctx, stocks); err != nil {
		slog.Error("got error from repo.UpsertStocks", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	if err := s.repo.UpsertStockPrices(ctx, prices); err != nil {
		slog.Error("got error from repo.UpsertStockPrices", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	latestDate, err := s.repo.GetLatestPriceDate(ctx)
	if err != nil {
		slog.Warn("can't verify latest price date", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	slog.Info(
		"market data acquisition completed",
		slog.String("rqID", rqID),
		slog.String("op", op),
		slog.Int("stocks", len(stocks)),
		slog.Int("priceRows", len(prices)),
		slog.Int("skipped", skipped),
		slog.String("latestPriceDate", latestDate.Format(dateLayout)),
	)

	return nil
}
