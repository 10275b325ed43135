/*
Package market fetches the latest one-day trading session for each configured
symbol from the Yahoo Finance chart API.
*/
package market

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"github.com/Duarte0903/stock-summary/internal/types"
)

// DataUnavailableError indicates the price source returned no session data
// for a symbol (market holiday, delisted ticker). It aborts the whole run.
type DataUnavailableError struct {
	Symbol string
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("no session data available for %s", e.Symbol)
}

// chartResponse mirrors the Yahoo Finance v8 chart API response.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// Fetcher retrieves close price and volume per symbol.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a fetcher against the given Yahoo Finance base URL.
func NewFetcher(baseURL string) *Fetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; stock-summary/1.0)").
		SetTimeout(30 * time.Second)

	return &Fetcher{client: client}
}

// FetchSnapshot fetches the latest session for every symbol, in order.
// Any per-symbol failure aborts the snapshot; no partial results are
// returned, so the downstream analysis always covers the full portfolio.
func (f *Fetcher) FetchSnapshot(ctx context.Context, symbols []string) (*types.MarketSnapshot, error) {
	snapshot := &types.MarketSnapshot{
		Tickers: make([]types.TickerSnapshot, 0, len(symbols)),
	}

	for _, symbol := range symbols {
		ticker, err := f.fetchOne(ctx, symbol)
		if err != nil {
			return nil, err
		}
		snapshot.Tickers = append(snapshot.Tickers, *ticker)
	}

	return snapshot, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, symbol string) (*types.TickerSnapshot, error) {
	var result chartResponse

	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"range":    "1d",
			"interval": "1d",
		}).
		SetResult(&result).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data for %s: %w", symbol, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("yahoo finance returned status %d for %s", resp.StatusCode(), symbol)
	}

	if len(result.Chart.Result) == 0 || len(result.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, &DataUnavailableError{Symbol: symbol}
	}

	quote := result.Chart.Result[0].Indicators.Quote[0]
	if len(quote.Close) == 0 || len(quote.Volume) == 0 {
		return nil, &DataUnavailableError{Symbol: symbol}
	}

	last := len(quote.Close) - 1
	return &types.TickerSnapshot{
		Symbol: symbol,
		Close:  quote.Close[last],
		Volume: quote.Volume[len(quote.Volume)-1],
	}, nil
}
