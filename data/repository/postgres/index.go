package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/converter/dbConverter"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model/dbModel"
	"github.com/gauravcr7rm/equal-weighted-stock-index/utils"
)

func (r *Postgres) UpsertIndexCompositions(ctx context.Context, compositions []model.CompositionEntry) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.UpsertIndexCompositions"
	query := `
		INSERT INTO index_compositions(date, ticker, weight, rank)
		SELECT u.date, u.ticker, u.weight, u.rank
		FROM UNNEST(
			$1::date[],
			$2::text[],
			$3::float8[],
			$4::int[]
		) AS u(date, ticker, weight, rank)
		ON CONFLICT (date, ticker) DO UPDATE SET
			weight = EXCLUDED.weight,
			rank = EXCLUDED.rank
		`

	dates := make([]string, 0, len(compositions))
	tickers := make([]string, 0, len(compositions))
	weights := make([]float64, 0, len(compositions))
	ranks := make([]int, 0, len(compositions))

	for _, comp := range compositions {
		dates = append(dates, comp.Date.Format(dateLayout))
		tickers = append(tickers, comp.Ticker)
		weights = append(weights, comp.Weight)
		ranks = append(ranks, comp.Rank)
	}

	slog.Debug("UpsertIndexCompositions start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("compositions", len(compositions)))
	defer func() {
		if err != nil {
			slog.Error("UpsertIndexCompositions failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("UpsertIndexCompositions completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	_, err = r.txOrDb(ctx).ExecContext(ctx, query, dates, tickers, weights, ranks)
	if err != nil {
		return err
	}

	return nil
}

func (r *Postgres) UpsertIndexPerformance(ctx context.Context, performances []model.PerformanceEntry) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.UpsertIndexPerformance"
	query := `
		INSERT INTO index_performance(date, daily_return, cumulative_return)
		SELECT u.date, u.daily_return, u.cumulative_return
		FROM UNNEST(
			$1::date[],
			$2::float8[],
			$3::float8[]
		) AS u(date, daily_return, cumulative_return)
		ON CONFLICT (date) DO UPDATE SET
			daily_return = EXCLUDED.daily_return,
			cumulative_return = EXCLUDED.cumulative_return
		`

	dates := make([]string, 0, len(performances))
	dailyReturns := make([]float64, 0, len(performances))
	cumulativeReturns := make([]float64, 0, len(performances))

	for _, perf := range performances {
		dates = append(dates, perf.Date.Format(dateLayout))
		dailyReturns = append(dailyReturns, perf.DailyReturn)
		cumulativeReturns = append(cumulativeReturns, perf.CumulativeReturn)
	}

	slog.Debug("UpsertIndexPerformance start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("performances", len(performances)))
	defer func() {
		if err != nil {
			slog.Error("UpsertIndexPerformance failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("UpsertIndexPerformance completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	_, err = r.txOrDb(ctx).ExecContext(ctx, query, dates, dailyReturns, cumulativeReturns)
	if err != nil {
		return err
	}

	return nil
}

func (r *Postgres) GetIndexPerformance(ctx context.Context, start, end time.Time) (performances []model.PerformanceEntry, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetIndexPerformance"
	params := map[string]any{
		"start": start.Format(dateLayout),
		"end":   end.Format(dateLayout),
	}
	query := `
		SELECT date, daily_return, cumulative_return
		FROM index_performance
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
		`

	slog.Debug("GetIndexPerformance start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("GetIndexPerformance failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetIndexPerformance completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var perf dbModel.IndexPerformance
		err = rows.StructScan(&perf)
		if err != nil {
			return nil, err
		}
		performances = append(performances, dbConverter.ConvertPerformance(perf))
	}

	return performances, nil
}

func (r *Postgres) GetIndexComposition(ctx context.Context, date time.Time) (composition []model.CompositionStock, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetIndexComposition"
	params := map[string]any{
		"date": date.Format(dateLayout),
	}
	query := `
		SELECT ic.ticker, ic.weight, ic.rank, s.name, s.sector, s.exchange
		FROM index_compositions ic
		JOIN stocks s ON ic.ticker = s.ticker
		WHERE ic.date = $1
		ORDER BY ic.rank
		`

	slog.Debug("GetIndexComposition start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("GetIndexComposition failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetIndexComposition completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query, date.Format(dateLayout))
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var stock dbModel.CompositionStock
		err = rows.StructScan(&stock)
		if err != nil {
			return nil, err
		}
		composition = append(composition, dbConverter.ConvertCompositionStock(stock))
	}

	return composition, nil
}

func (r *Postgres) GetCompositionTickers(ctx context.Context, date time.Time) (tickers []string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetCompositionTickers"
	params := map[string]any{
		"date": date.Format(dateLayout),
	}
	query := `
		SELECT ticker
		FROM index_compositions
		WHERE date = $1
		`

	slog.Debug("GetCompositionTickers start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("GetCompositionTickers failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetCompositionTickers completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query, date.Format(dateLayout))
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var ticker string
		err = rows.Scan(&ticker)
		if err != nil {
			return nil, err
		}
		tickers = append(tickers, ticker)
	}

	return tickers, nil
}
