package apiModel

type ConstructionResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	TradingDays int    `json:"trading_days,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

type PerformanceEntry struct {
	Date             string  `json:"date"`
	DailyReturn      float64 `json:"daily_return"`
	CumulativeReturn float64 `json:"cumulative_return"`
}

type CompositionStock struct {
	Ticker   string  `json:"ticker"`
	Weight   float64 `json:"weight"`
	Rank     int     `json:"rank"`
	Name     string  `json:"name"`
	Sector   string  `json:"sector"`
	Exchange string  `json:"exchange"`
}

type CompositionChange struct {
	Date    string   `json:"date"`
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

type ExportResponse struct {
	DownloadUrl string `json:"download_url"`
	FileName    string `json:"file_name"`
}
