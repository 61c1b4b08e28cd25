package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/data/repository"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/converter/dbConverter"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model/dbModel"
	"github.com/gauravcr7rm/equal-weighted-stock-index/utils"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

const dateLayout = "2006-01-02"

func (r *Postgres) UpsertStocks(ctx context.Context, stocks []model.Stock) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.UpsertStocks"
	query := `
		INSERT INTO stocks(ticker, name, sector, exchange)
		SELECT u.ticker, u.name, u.sector, u.exchange
		FROM UNNEST(
			$1::text[],
			$2::text[],
			$3::text[],
			$4::text[]
		) AS u(ticker, name, sector, exchange)
		ON CONFLICT (ticker) DO UPDATE SET
			name = EXCLUDED.name,
			sector = EXCLUDED.sector,
			exchange = EXCLUDED.exchange
		`

	tickers := make([]string, 0, len(stocks))
	names := make([]string, 0, len(stocks))
	sectors := make([]string, 0, len(stocks))
	exchanges := make([]string, 0, len(stocks))

	for _, stock := range stocks {
		tickers = append(tickers, stock.Ticker)
		names = append(names, stock.Name)
		sectors = append(sectors, stock.Sector)
		exchanges = append(exchanges, stock.Exchange)
	}

	slog.Debug("UpsertStocks start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("stocks", len(stocks)))
	defer func() {
		if err != nil {
			slog.Error("UpsertStocks failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("UpsertStocks completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	_, err = r.txOrDb(ctx).ExecContext(ctx, query, tickers, names, sectors, exchanges)
	if err != nil {
		return err
	}

	return nil
}

func (r *Postgres) UpsertStockPrices(ctx context.Context, prices []model.StockPrice) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.UpsertStockPrices"
	query := `
		INSERT INTO stock_prices(date, ticker, open, high, low, close, volume, market_cap)
		SELECT u.date, u.ticker, u.open, u.high, u.low, u.close, u.volume, u.market_cap
		FROM UNNEST(
			$1::date[],
			$2::text[],
			$3::float8[],
			$4::float8[],
			$5::float8[],
			$6::float8[],
			$7::bigint[],
			$8::float8[]
		) AS u(date, ticker, open, high, low, close, volume, market_cap)
		ON CONFLICT (date, ticker) DO UPDATE SET
			open = EXCLUDED.open,
			high = EXCLUDED.high,
			low = EXCLUDED.low,
			close = EXCLUDED.close,
			volume = EXCLUDED.volume,
			market_cap = EXCLUDED.market_cap
		`

	dates := make([]string, 0, len(prices))
	tickers := make([]string, 0, len(prices))
	opens := make([]float64, 0, len(prices))
	highs := make([]float64, 0, len(prices))
	lows := make([]float64, 0, len(prices))
	closes := make([]float64, 0, len(prices))
	volumes := make([]int64, 0, len(prices))
	marketCaps := make([]float64, 0, len(prices))

	for _, price := range prices {
		dates = append(dates, price.Date.Format(dateLayout))
		tickers = append(tickers, price.Ticker)
		opens = append(opens, price.Open)
		highs = append(highs, price.High)
		lows = append(lows, price.Low)
		closes = append(closes, price.Close)
		volumes = append(volumes, price.Volume)
		marketCaps = append(marketCaps, price.MarketCap)
	}

	slog.Debug("UpsertStockPrices start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("prices", len(prices)))
	defer func() {
		if err != nil {
			slog.Error("UpsertStockPrices failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("UpsertStockPrices completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	_, err = r.txOrDb(ctx).ExecContext(ctx, query, dates, tickers, opens, highs, lows, closes, volumes, marketCaps)
	if err != nil {
		return err
	}

	return nil
}

func (r *Postgres) GetTradingDates(ctx context.Context, start, end time.Time) (dates []time.Time, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetTradingDates"
	params := map[string]any{
		"start": start.Format(dateLayout),
		"end":   end.Format(dateLayout),
	}
	query := `
		SELECT DISTINCT date
		FROM stock_prices
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
		`

	slog.Debug("GetTradingDates start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("GetTradingDates failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetTradingDates completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var date time.Time
		err = rows.Scan(&date)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}

	return dates, nil
}

func (r *Postgres) GetTopStocksByMarketCap(ctx context.Context, date time.Time, limit int) (stocks []model.TopStock, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetTopStocksByMarketCap"
	params := map[string]any{
		"date":  date.Format(dateLayout),
		"limit": limit,
	}
	query := `
		SELECT sp.ticker, sp.market_cap, s.name, s.sector, s.exchange
		FROM stock_prices sp
		JOIN stocks s ON sp.ticker = s.ticker
		WHERE sp.date = $1
		ORDER BY sp.market_cap DESC
		LIMIT $2
		`

	slog.Debug("GetTopStocksByMarketCap start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("GetTopStocksByMarketCap failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetTopStocksByMarketCap completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query, date.Format(dateLayout), limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	stocks = make([]model.TopStock, 0, limit)
	for rows.Next() {
		var stock dbModel.TopStock
		err = rows.StructScan(&stock)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, dbConverter.ConvertTopStock(stock))
	}

	return stocks, nil
}

func (r *Postgres) GetPricesForDate(ctx context.Context, date time.Time, tickers []string) (prices map[string]model.PriceQuote, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetPricesForDate"
	params := map[string]any{
		"date":    date.Format(dateLayout),
		"tickers": len(tickers),
	}
	query := `
		SELECT ticker, close, market_cap
		FROM stock_prices
		WHERE date = $1 AND ticker = ANY($2)
		`

	slog.Debug("GetPricesForDate start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("GetPricesForDate failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetPricesForDate completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query, date.Format(dateLayout), tickers)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	prices = make(map[string]model.PriceQuote, len(tickers))
	for rows.Next() {
		var quote dbModel.PriceQuote
		err = rows.StructScan(&quote)
		if err != nil {
			return nil, err
		}
		prices[quote.Ticker] = model.PriceQuote{Close: quote.Close, MarketCap: quote.MarketCap}
	}

	return prices, nil
}

func (r *Postgres) GetLatestPriceDate(ctx context.Context) (date time.Time, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetLatestPriceDate"
	query := `SELECT MAX(date) FROM stock_prices`

	slog.Debug("GetLatestPriceDate start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			slog.Error("GetLatestPriceDate failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetLatestPriceDate completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	var latest sql.NullTime
	err = r.txOrDb(ctx).QueryRowxContext(ctx, query).Scan(&latest)
	if err != nil {
		return time.Time{}, err
	}

	if !latest.Valid {
		return time.Time{}, repository.ErrNotFound
	}

	return latest.Time, nil
}
