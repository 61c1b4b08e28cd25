package model

import "time"

type Stock struct {
	Ticker   string
	Name     string
	Sector   string
	Exchange string
}

type StockPrice struct {
	Date      time.Time
	Ticker    string
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
	MarketCap float64
}

// TopStock is a stock_prices row joined with metadata, ordered by market cap.
type TopStock struct {
	Ticker    string
	MarketCap float64
	Name      string
	Sector    string
	Exchange  string
}

type PriceQuote struct {
	Close     float64
	MarketCap float64
}
