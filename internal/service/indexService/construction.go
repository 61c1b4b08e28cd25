package indexService

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/service"
	"github.com/gauravcr7rm/equal-weighted-stock-index/utils"
)

const dateLayout = "2006-01-02"

// Construct builds the equal-weighted index over [start, end] and persists
// compositions and performance in one transaction. A zero end date means a
// single-day build on start.
func (s *IndexService) Construct(ctx context.Context, start, end time.Time) (model.ConstructionResult, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "IndexService.Construct"

	if end.IsZero() {
		end = start
	}

	startStr := start.Format(dateLayout)
	endStr := end.Format(dateLayout)

	slog.Debug("Construct start", slog.String("rqID", rqID), slog.String("op", op), slog.String("start", startStr), slog.String("end", endStr))
	defer func() {
		slog.Debug("Construct finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("start", startStr), slog.String("end", endStr))
	}()

	tradingDates, err := s.repo.GetTradingDates(ctx, start, end)
	if err != nil {
		slog.Error("got error from repo.GetTradingDates", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return constructionError(err), err
	}

	if len(tradingDates) == 0 {
		slog.Warn("no trading data in period", slog.String("rqID", rqID), slog.String("op", op), slog.String("start", startStr), slog.String("end", endStr))
		return model.ConstructionResult{
			Success: false,
			Message: fmt.Sprintf("No trading data available for the period %s to %s", startStr, endStr),
		}, service.ErrNoTradingData
	}

	slog.Info("resolved trading calendar", slog.String("rqID", rqID), slog.String("op", op), slog.Int("tradingDays", len(tradingDates)))

	compositions, performances, err := s.buildIndexForDates(ctx, tradingDates)
	if err != nil {
		return constructionError(err), err
	}

	if len(compositions) == 0 || len(performances) == 0 {
		slog.Warn("no compositions or performances generated", slog.String("rqID", rqID), slog.String("op", op))
		return model.ConstructionResult{
			Success: false,
			Message: "Failed to build index: insufficient data",
		}, service.ErrInsufficientData
	}

	err = s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.UpsertIndexCompositions(ctx, compositions); err != nil {
			return err
		}
		return s.repo.UpsertIndexPerformance(ctx, performances)
	})
	if err != nil {
		slog.Error("got error while storing index", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return constructionError(err), err
	}

	slog.Info(
		"stored index records",
		slog.String("rqID", rqID),
		slog.String("op", op),
		slog.Int("compositions", len(compositions)),
		slog.Int("performances", len(performances)),
	)

	// synchronous so the next read can't race a stale entry
	if err := s.cache.InvalidateIndex(ctx, start, end); err != nil {
		slog.Error("got error from cache.InvalidateIndex", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	return model.ConstructionResult{
		Success:     true,
		Message:     fmt.Sprintf("Index constructed successfully for %d trading days", len(tradingDates)),
		TradingDays: len(tradingDates),
		StartDate:   start,
		EndDate:     end,
	}, nil
}

func constructionError(err error) model.ConstructionResult {
	return model.ConstructionResult{
		Success: false,
		Message: fmt.Sprintf("Error constructing index: %s", err),
	}
}

func (s *IndexService) buildIndexForDates(ctx context.Context, tradingDates []time.Time) ([]model.CompositionEntry, []model.PerformanceEntry, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "IndexService.buildIndexForDates"

	compositions := make([]model.CompositionEntry, 0, len(tradingDates)*s.cfg.Index.ConstituentCount)
	performances := make([]model.PerformanceEntry, 0, len(tradingDates))
	cumulativeReturn := 0.0
	var previousPortfolio []model.PortfolioPosition

	for _, date := range tradingDates {
		topStocks, err := s.repo.GetTopStocksByMarketCap(ctx, date, s.cfg.Index.ConstituentCount)
		if err != nil {
			slog.Error("got error from repo.GetTopStocksByMarketCap", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return nil, nil, err
		}

		if len(topStocks) == 0 {
			slog.Warn("no top stocks found for date, skipping", slog.String("rqID", rqID), slog.String("op", op), slog.String("date", date.Format(dateLayout)))
			continue
		}

		weight := 1.0 / float64(len(topStocks))

		currentComposition := makeComposition(date, topStocks, weight)
		compositions = append(compositions, currentComposition...)

		dailyReturn, err := s.calculateDailyReturn(ctx, date, previousPortfolio)
		if err != nil {
			return nil, nil, err
		}

		cumulativeReturn = (1+cumulativeReturn)*(1+dailyReturn) - 1

		performances = append(performances, model.PerformanceEntry{
			Date:             date,
			DailyReturn:      dailyReturn,
			CumulativeReturn: cumulativeReturn,
		})

		previousPortfolio = make([]model.PortfolioPosition, 0, len(currentComposition))
		for _, comp := range currentComposition {
			previousPortfolio = append(previousPortfolio, model.PortfolioPosition{
				Ticker: comp.Ticker,
				Weight: comp.Weight,
				Date:   date,
			})
		}
	}

	return compositions, performances, nil
}

func makeComposition(date time.Time, topStocks []model.TopStock, weight float64) []model.CompositionEntry {
	composition := make([]model.CompositionEntry, 0, len(topStocks))
	for i, stock := range topStocks {
		composition = append(composition, model.CompositionEntry{
			Date:   date,
			Ticker: stock.Ticker,
			Weight: weight,
			Rank:   i + 1,
		})
	}
	return composition
}

// calculateDailyReturn weighs each carried position's close-to-close move by
// its previous weight. Positions missing a close on either date, or with a
// non-positive previous close, contribute nothing; the remaining weights are
// not renormalized.
func (s *IndexService) calculateDailyReturn(ctx context.Context, date time.Time, previousPortfolio []model.PortfolioPosition) (float64, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "IndexService.calculateDailyReturn"

	if len(previousPortfolio) == 0 {
		return 0.0, nil
	}

	// every carried position was selected on the same date
	prevDate := previousPortfolio[0].Date

	tickers := make([]string, 0, len(previousPortfolio))
	for _, pos := range previousPortfolio {
		tickers = append(tickers, pos.Ticker)
	}

	currentPrices, err := s.repo.GetPricesForDate(ctx, date, tickers)
	if err != nil {
		slog.Error("got error from repo.GetPricesForDate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return 0, err
	}

	previousPrices, err := s.repo.GetPricesForDate(ctx, prevDate, tickers)
	if err != nil {
		slog.Error("got error from repo.GetPricesForDate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return 0, err
	}

	portfolioReturn := 0.0
	validStocks := 0

	for _, pos := range previousPortfolio {
		current, ok := currentPrices[pos.Ticker]
		if !ok {
			continue
		}

		previous, ok := previousPrices[pos.Ticker]
		if !ok {
			continue
		}

		if previous.Close <= 0 {
			continue
		}

		stockReturn := (current.Close - previous.Close) / previous.Close
		portfolioReturn += stockReturn * pos.Weight
		validStocks++
	}

	if validStocks == 0 {
		return 0.0, nil
	}

	return portfolioReturn, nil
}
