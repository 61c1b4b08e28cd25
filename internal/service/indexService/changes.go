package indexService

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/gauravcr7rm/equal-weighted-stock-index/utils"
)

// CompositionChanges diffs the stored compositions of adjacent trading dates
// in [start, end]. An empty result is valid and cached like any other.
func (s *IndexService) CompositionChanges(ctx context.Context, start, end time.Time) (changes []model.CompositionChange, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "IndexService.CompositionChanges"

	slog.Debug("CompositionChanges start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("CompositionChanges finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	changes, err = s.cache.GetChanges(ctx, start, end)
	if err == nil {
		return changes, nil
	}

	slog.Warn("can't get composition changes from cache", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))

	changes, err = s.diffCompositions(ctx, start, end)
	if err != nil {
		return nil, err
	}

	go s.cache.SetChanges(context.WithoutCancel(ctx), start, end, changes)

	return changes, nil
}

func (s *IndexService) diffCompositions(ctx context.Context, start, end time.Time) ([]model.CompositionChange, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "IndexService.diffCompositions"

	dates, err := s.repo.GetTradingDates(ctx, start, end)
	if err != nil {
		slog.Error("got error from repo.GetTradingDates", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	changes := make([]model.CompositionChange, 0)
	if len(dates) <= 1 {
		return changes, nil
	}

	prevSet, err := s.compositionSet(ctx, dates[0])
	if err != nil {
		return nil, err
	}

	for i := 1; i < len(dates); i++ {
		currSet, err := s.compositionSet(ctx, dates[i])
		if err != nil {
			return nil, err
		}

		added := diffTickers(currSet, prevSet)
		removed := diffTickers(prevSet, currSet)

		if len(added) > 0 || len(removed) > 0 {
			changes = append(changes, model.CompositionChange{
				Date:    dates[i],
				Added:   added,
				Removed: removed,
			})
		}

		prevSet = currSet
	}

	return changes, nil
}

func (s *IndexService) compositionSet(ctx context.Context, date time.Time) (map[string]struct{}, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "IndexService.compositionSet"

	tickers, err := s.repo.GetCompositionTickers(ctx, date)
	if err != nil {
		slog.Error("got error from repo.GetCompositionTickers", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	set := make(map[string]struct{}, len(tickers))
	for _, ticker := range tickers {
		set[ticker] = struct{}{}
	}

	return set, nil
}

// diffTickers returns the tickers in a but not in b, sorted.
func diffTickers(a, b map[string]struct{}) []string {
	diff := make([]string, 0)
	for ticker := range a {
		if _, ok := b[ticker]; !ok {
			diff = append(diff, ticker)
		}
	}
	sort.Strings(diff)
	return diff
}
