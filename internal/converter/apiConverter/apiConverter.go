package apiConverter

import (
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model/apiModel"
)

const dateLayout = "2006-01-02"

func ConstructionResponse(result model.ConstructionResult) apiModel.ConstructionResponse {
	resp := apiModel.ConstructionResponse{
		Success:     result.Success,
		Message:     result.Message,
		TradingDays: result.TradingDays,
	}

	if !result.StartDate.IsZero() {
		resp.StartDate = result.StartDate.Format(dateLayout)
	}
	if !result.EndDate.IsZero() {
		resp.EndDate = result.EndDate.Format(dateLayout)
	}

	return resp
}

func PerformanceResponse(entries []model.PerformanceEntry) []apiModel.PerformanceEntry {
	resp := make([]apiModel.PerformanceEntry, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, apiModel.PerformanceEntry{
			Date:             entry.Date.Format(dateLayout),
			DailyReturn:      entry.DailyReturn,
			CumulativeReturn: entry.CumulativeReturn,
		})
	}
	return resp
}

func CompositionResponse(stocks []model.CompositionStock) []apiModel.CompositionStock {
	resp := make([]apiModel.CompositionStock, 0, len(stocks))
	for _, stock := range stocks {
		resp = append(resp, apiModel.CompositionStock{
			Ticker:   stock.Ticker,
			Weight:   stock.Weight,
			Rank:     stock.Rank,
			Name:     stock.Name,
			Sector:   stock.Sector,
			Exchange: stock.Exchange,
		})
	}
	return resp
}

func ChangesResponse(changes []model.CompositionChange) []apiModel.CompositionChange {
	resp := make([]apiModel.CompositionChange, 0, len(changes))
	for _, change := range changes {
		resp = append(resp, apiModel.CompositionChange{
			Date:    change.Date.Format(dateLayout),
			Added:   emptyIfNil(change.Added),
			Removed: emptyIfNil(change.Removed),
		})
	}
	return resp
}

func ExportResponse(file model.ExportFile) apiModel.ExportResponse {
	return apiModel.ExportResponse{
		DownloadUrl: file.DownloadUrl,
		FileName:    file.FileName,
	}
}

// emptyIfNil keeps added/removed rendering as [] instead of null.
func emptyIfNil(tickers []string) []string {
	if tickers == nil {
		return []string{}
	}
	return tickers
}
