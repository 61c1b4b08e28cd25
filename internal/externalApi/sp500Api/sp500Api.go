package sp500Api

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gauravcr7rm/equal-weighted-stock-index/config"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/externalApi"
	"github.com/gauravcr7rm/equal-weighted-stock-index/utils"
	"github.com/go-resty/resty/v2"
)

type Sp500Api struct {
	client *resty.Client
}

func New(cfg *config.Config) *Sp500Api {
	client := resty.New().
		SetTimeout(cfg.MarketData.Timeout).
		SetRetryCount(cfg.MarketData.RetryCount).
		SetBaseURL(cfg.MarketData.SP500.Url).
		SetHeader("User-Agent", "equal-weighted-stock-index/1.0")
	return &Sp500Api{client: client}
}

// Tickers scrapes the S&P 500 constituents table and returns the ticker
// symbols in page order. Dots are mapped to dashes (BRK.B -> BRK-B) to match
// the symbol format of the price providers.
func (a *Sp500Api) Tickers(ctx context.Context) ([]string, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Sp500Api.Tickers"

	slog.Debug("Tickers start", slog.String("rqID", rqID), slog.String("op", op))

	resp, err := a.client.R().SetContext(ctx).Get("")
	if err != nil {
		slog.Error("error while dialing sp500 source", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	if resp.IsError() {
		slog.Error("sp500 source returned error status", slog.String("rqID", rqID), slog.String("op", op), slog.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("sp500 source status %d", resp.StatusCode())
	}

	tickers, err := a.parseConstituents(resp.Body())
	if err != nil {
		slog.Error("can't parse sp500 constituents", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	if len(tickers) == 0 {
		return nil, externalApi.ErrNotFound
	}

	slog.Debug("Tickers completed", slog.String("rqID", rqID), slog.String("op", op), slog.Int("tickers", len(tickers)))

	return tickers, nil
}

func (a *Sp500Api) parseConstituents(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	table := doc.Find("table#constituents")
	if table.Length() == 0 {
		// first wikitable on the page holds the constituents
		table = doc.Find("table.wikitable").First()
	}

	var tickers []string
	table.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		cell := row.Find("td").First()
		if cell.Length() == 0 {
			return
		}

		ticker := strings.TrimSpace(cell.Text())
		if ticker == "" {
			return
		}

		tickers = append(tickers, strings.ReplaceAll(ticker, ".", "-"))
	})

	return tickers, nil
}
