package dbModel

type TopStock struct {
	Ticker    string  `db:"ticker"`
	MarketCap float64 `db:"market_cap"`
	Name      string  `db:"name"`
	Sector    string  `db:"sector"`
	Exchange  string  `db:"exchange"`
}

type PriceQuote struct {
	Ticker    string  `db:"ticker"`
	Close     float64 `db:"close"`
	MarketCap float64 `db:"market_cap"`
}
