package dbConverter

import (
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model/dbModel"
)

func ConvertTopStock(dbStock dbModel.TopStock) model.TopStock {
	return model.TopStock{
		Ticker:    dbStock.Ticker,
		MarketCap: dbStock.MarketCap,
		Name:      dbStock.Name,
		Sector:    dbStock.Sector,
		Exchange:  dbStock.Exchange,
	}
}

func ConvertCompositionStock(dbStock dbModel.CompositionStock) model.CompositionStock {
	return model.CompositionStock{
		Ticker:   dbStock.Ticker,
		Weight:   dbStock.Weight,
		Rank:     dbStock.Rank,
		Name:     dbStock.Name,
		Sector:   dbStock.Sector,
		Exchange: dbStock.Exchange,
	}
}

func ConvertPerformance(dbPerf dbModel.IndexPerformance) model.PerformanceEntry {
	return model.PerformanceEntry{
		Date:             dbPerf.Date,
		DailyReturn:      dbPerf.DailyReturn,
		CumulativeReturn: dbPerf.CumulativeReturn,
	}
}
