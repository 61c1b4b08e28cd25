package apiConverter

import (
	"testing"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructionResponse(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	resp := ConstructionResponse(model.ConstructionResult{
		Success:     true,
		Message:     "Index constructed successfully for 3 trading days",
		TradingDays: 3,
		StartDate:   start,
		EndDate:     end,
	})

	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.TradingDays)
	assert.Equal(t, "2024-01-02", resp.StartDate)
	assert.Equal(t, "2024-01-05", resp.EndDate)
}

func TestConstructionResponse_ZeroDatesStayEmpty(t *testing.T) {
	resp := ConstructionResponse(model.ConstructionResult{
		Success: false,
		Message: "Failed to build index: insufficient data",
	})

	assert.Empty(t, resp.StartDate)
	assert.Empty(t, resp.EndDate)
	assert.Zero(t, resp.TradingDays)
}

func TestChangesResponse_NilSlicesBecomeEmpty(t *testing.T) {
	date := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	resp := ChangesResponse([]model.CompositionChange{
		{Date: date, Added: []string{"DDD"}, Removed: nil},
	})

	require.Len(t, resp, 1)
	assert.Equal(t, "2024-01-03", resp[0].Date)
	assert.Equal(t, []string{"DDD"}, resp[0].Added)
	assert.NotNil(t, resp[0].Removed)
	assert.Empty(t, resp[0].Removed)
}

func TestPerformanceResponse_FormatsDates(t *testing.T) {
	resp := PerformanceResponse([]model.PerformanceEntry{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), DailyReturn: 0.05, CumulativeReturn: 0.05},
	})

	require.Len(t, resp, 1)
	assert.Equal(t, "2024-01-02", resp[0].Date)
	assert.Equal(t, 0.05, resp[0].DailyReturn)
}
