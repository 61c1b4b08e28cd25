package alphaVantageModel

type DailySeriesResponse struct {
	MetaData     map[string]string   `json:"Meta Data"`
	TimeSeries   map[string]DailyBar `json:"Time Series (Daily)"`
	Note         string              `json:"Note"`
	Information  string              `json:"Information"`
	ErrorMessage string              `json:"Error Message"`
}

// DailyBar values arrive as strings and are parsed with decimal.
type DailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

type OverviewResponse struct {
	Symbol            string `json:"Symbol"`
	Name              string `json:"Name"`
	Exchange          string `json:"Exchange"`
	Sector            string `json:"Sector"`
	SharesOutstanding string `json:"SharesOutstanding"`
	Note              string `json:"Note"`
	Information       string `json:"Information"`
}
