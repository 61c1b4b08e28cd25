package yahooModel

type ChartResponse struct {
	Chart Chart `json:"chart"`
}

type Chart struct {
	Result []ChartResult `json:"result"`
	Error  *ApiError     `json:"error"`
}

type ApiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type ChartResult struct {
	Meta       ChartMeta  `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

type ChartMeta struct {
	Currency     string `json:"currency"`
	Symbol       string `json:"symbol"`
	ExchangeName string `json:"exchangeName"`
	ShortName    string `json:"shortName"`
}

type Indicators struct {
	Quote []Quote `json:"quote"`
}

// Quote arrays are aligned with ChartResult.Timestamp, entries may be null.
type Quote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type QuoteSummaryResponse struct {
	QuoteSummary QuoteSummary `json:"quoteSummary"`
}

type QuoteSummary struct {
	Result []QuoteSummaryResult `json:"result"`
	Error  *ApiError            `json:"error"`
}

type QuoteSummaryResult struct {
	SummaryProfile       *SummaryProfile       `json:"summaryProfile"`
	DefaultKeyStatistics *DefaultKeyStatistics `json:"defaultKeyStatistics"`
	Price                *PriceInfo            `json:"price"`
}

type SummaryProfile struct {
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

type DefaultKeyStatistics struct {
	SharesOutstanding RawValue `json:"sharesOutstanding"`
}

type RawValue struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

type PriceInfo struct {
	ShortName    string `json:"shortName"`
	ExchangeName string `json:"exchangeName"`
}
