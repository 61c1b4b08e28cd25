package indexService

import (
	"context"
	"log/slog"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/service"
	"github.com/gauravcr7rm/equal-weighted-stock-index/utils"
)

// Performance returns the stored index returns for [start, end].
// service.ErrNotFound when nothing is stored; empty results are not cached.
func (s *IndexService) Performance(ctx context.Context, start, end time.Time) (entries []model.PerformanceEntry, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "IndexService.Performance"

	slog.Debug("Performance start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("Performance finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	entries, err = s.cache.GetPerformance(ctx, start, end)
	if err == nil && len(entries) > 0 {
		return entries, nil
	}

	if err != nil {
		slog.Warn("can't get performance from cache", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	entries, err = s.repo.GetIndexPerformance(ctx, start, end)
	if err != nil {
		slog.Error("got error from repo.GetIndexPerformance", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	if len(entries) == 0 {
		return nil, service.ErrNotFound
	}

	go s.cache.SetPerformance(context.WithoutCancel(ctx), start, end, entries)

	return entries, nil
}

// Composition returns the stored index composition for one date, joined with
// stock metadata and ordered by rank. service.ErrNotFound when the date has
// no stored composition; empty results are not cached.
func (s *IndexService) Composition(ctx context.Context, date time.Time) (stocks []model.CompositionStock, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "IndexService.Composition"

	slog.Debug("Composition start", slog.String("rqID", rqID), slog.String("op", op), slog.String("date", date.Format(dateLayout)))
	defer func() {
		slog.Debug("Composition finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("date", date.Format(dateLayout)))
	}()

	stocks, err = s.cache.GetComposition(ctx, date)
	if err == nil && len(stocks) > 0 {
		return stocks, nil
	}

	if err != nil {
		slog.Warn("can't get composition from cache", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	stocks, err = s.repo.GetIndexComposition(ctx, date)
	if err != nil {
		slog.Error("got error from repo.GetIndexComposition", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	if len(stocks) == 0 {
		return nil, service.ErrNotFound
	}

	go s.cache.SetComposition(context.WithoutCancel(ctx), date, stocks)

	return stocks, nil
}
