package indexService

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPerformance_CacheHit(t *testing.T) {
	svc, m := setupIndexService(t)
	start := day("2024-01-02")
	end := day("2024-01-05")
	cached := []model.PerformanceEntry{
		{Date: start, DailyReturn: 0, CumulativeReturn: 0},
		{Date: end, DailyReturn: 0.01, CumulativeReturn: 0.01},
	}

	m.cache.On("GetPerformance", mock.Anything, start, end).Return(cached, nil)

	entries, err := svc.Performance(context.Background(), start, end)

	require.NoError(t, err)
	assert.Equal(t, cached, entries)
	m.repo.AssertNotCalled(t, "GetIndexPerformance", mock.Anything, mock.Anything, mock.Anything)
}

func TestPerformance_EmptyCacheValueFallsThrough(t *testing.T) {
	svc, m := setupIndexService(t)
	start := day("2024-01-02")
	end := day("2024-01-05")
	stored := []model.PerformanceEntry{{Date: start, DailyReturn: 0, CumulativeReturn: 0}}

	m.cache.On("GetPerformance", mock.Anything, start, end).Return([]model.PerformanceEntry{}, nil)
	m.repo.On("GetIndexPerformance", mock.Anything, start, end).Return(stored, nil)

	setDone := make(chan struct{})
	m.cache.On("SetPerformance", mock.Anything, start, end, stored).Run(func(mock.Arguments) {
		close(setDone)
	}).Return(nil)

	entries, err := svc.Performance(context.Background(), start, end)

	require.NoError(t, err)
	assert.Equal(t, stored, entries)

	select {
	case <-setDone:
	case <-time.After(time.Second):
		t.Fatal("expected performance to be written to cache")
	}
	m.repo.AssertExpectations(t)
	m.cache.AssertExpectations(t)
}

func TestPerformance_NotFound(t *testing.T) {
	svc, m := setupIndexService(t)
	start := day("2024-01-02")
	end := day("2024-01-05")

	m.cache.On("GetPerformance", mock.Anything, start, end).Return(nil, errors.New("cache miss"))
	m.repo.On("GetIndexPerformance", mock.Anything, start, end).Return([]model.PerformanceEntry{}, nil)

	entries, err := svc.Performance(context.Background(), start, end)

	require.ErrorIs(t, err, service.ErrNotFound)
	assert.Nil(t, entries)
	m.cache.AssertNotCalled(t, "SetPerformance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPerformance_RepoError(t *testing.T) {
	svc, m := setupIndexService(t)
	start := day("2024-01-02")
	end := day("2024-01-05")

	m.cache.On("GetPerformance", mock.Anything, start, end).Return(nil, errors.New("cache miss"))
	m.repo.On("GetIndexPerformance", mock.Anything, start, end).Return(nil, errors.New("connection reset"))

	entries, err := svc.Performance(context.Background(), start, end)

	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrNotFound)
	assert.Nil(t, entries)
}

func TestComposition_CacheHit(t *testing.T) {
	svc, m := setupIndexService(t)
	date := day("2024-01-02")
	cached := []model.CompositionStock{
		{Ticker: "AAA", Weight: 0.5, Rank: 1, Name: "Alpha Inc"},
		{Ticker: "BBB", Weight: 0.5, Rank: 2, Name: "Beta Corp"},
	}

	m.cache.On("GetComposition", mock.Anything, date).Return(cached, nil)

	stocks, err := svc.Composition(context.Background(), date)

	require.NoError(t, err)
	assert.Equal(t, cached, stocks)
	m.repo.AssertNotCalled(t, "GetIndexComposition", mock.Anything, mock.Anything)
}

func TestComposition_CacheMissReadsRepo(t *testing.T) {
	svc, m := setupIndexService(t)
	date := day("2024-01-02")
	stored := []model.CompositionStock{{Ticker: "AAA", Weight: 1, Rank: 1}}

	m.cache.On("GetComposition", mock.Anything, date).Return(nil, errors.New("cache miss"))
	m.repo.On("GetIndexComposition", mock.Anything, date).Return(stored, nil)

	setDone := make(chan struct{})
	m.cache.On("SetComposition", mock.Anything, date, stored).Run(func(mock.Arguments) {
		close(setDone)
	}).Return(nil)

	stocks, err := svc.Composition(context.Background(), date)

	require.NoError(t, err)
	assert.Equal(t, stored, stocks)

	select {
	case <-setDone:
	case <-time.After(time.Second):
		t.Fatal("expected composition to be written to cache")
	}
	m.repo.AssertExpectations(t)
}

func TestComposition_NotFound(t *testing.T) {
	svc, m := setupIndexService(t)
	date := day("2024-01-02")

	m.cache.On("GetComposition", mock.Anything, date).Return(nil, errors.New("cache miss"))
	m.repo.On("GetIndexComposition", mock.Anything, date).Return([]model.CompositionStock{}, nil)

	stocks, err := svc.Composition(context.Background(), date)

	require.ErrorIs(t, err, service.ErrNotFound)
	assert.Nil(t, stocks)
	m.cache.AssertNotCalled(t, "SetComposition", mock.Anything, mock.Anything, mock.Anything)
}
