package model

import "time"

type CompositionEntry struct {
	Date   time.Time
	Ticker string
	Weight float64
	Rank   int
}

// CompositionStock is a composition row joined with stock metadata for reads.
type CompositionStock struct {
	Ticker   string
	Weight   float64
	Rank     int
	Name     string
	Sector   string
	Exchange string
}

type PerformanceEntry struct {
	Date             time.Time
	DailyReturn      float64
	CumulativeReturn float64
}

// PortfolioPosition is one constituent of the portfolio carried between
// trading dates during construction.
type PortfolioPosition struct {
	Ticker string
	Weight float64
	Date   time.Time
}

type CompositionChange struct {
	Date    time.Time
	Added   []string
	Removed []string
}

type ConstructionResult struct {
	Success     bool
	Message     string
	TradingDays int
	StartDate   time.Time
	EndDate     time.Time
}

type ExportFile struct {
	FileName    string
	Content     []byte
	DownloadUrl string
}

// CompositionSnapshot is the full index composition on one trading date.
type CompositionSnapshot struct {
	Date   time.Time
	Stocks []CompositionStock
}

// IndexReport aggregates everything that goes into an export workbook.
type IndexReport struct {
	StartDate        time.Time
	EndDate          time.Time
	Performance      []PerformanceEntry
	FirstComposition CompositionSnapshot
	LastComposition  CompositionSnapshot
	Changes          []CompositionChange
}
