package dbModel

import "time"

type CompositionStock struct {
	Ticker   string  `db:"ticker"`
	Weight   float64 `db:"weight"`
	Rank     int     `db:"rank"`
	Name     string  `db:"name"`
	Sector   string  `db:"sector"`
	Exchange string  `db:"exchange"`
}

type IndexPerformance struct {
	Date             time.Time `db:"date"`
	DailyReturn      float64   `db:"daily_return"`
	CumulativeReturn float64   `db:"cumulative_return"`
}
