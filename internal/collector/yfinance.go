package collector

import (
	"context"
	"fmt"

	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"

	"TradeBuddy/internal/model"
)

// historyFunc fetches bars for one Yahoo ticker.
type historyFunc func(symbol string, params models.HistoryParams) ([]models.Bar, error)

// YFinanceFetcher implements Fetcher with the go-yfinance client.
type YFinanceFetcher struct {
	SymbolMap map[string]string

	history historyFunc
}

// NewYFinanceFetcher creates a go-yfinance backed fetcher.
func NewYFinanceFetcher() *YFinanceFetcher {
	return &YFinanceFetcher{
		SymbolMap: indexSymbols(),
		history:   tickerHistory,
	}
}

func tickerHistory(symbol string, params models.HistoryParams) ([]models.Bar, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	return t.History(params)
}

func (f *YFinanceFetcher) Name() string { return "yahoo" }

func (f *YFinanceFetcher) FetchIntraday(ctx context.Context, symbol string) ([]model.PricePoint, error) {
	return f.fetch(ctx, symbol, models.HistoryParams{Period: "1d", Interval: "5m"})
}

func (f *YFinanceFetcher) FetchDaily(ctx context.Context, symbol string, window model.Window) ([]model.PricePoint, error) {
	if !window.Valid() {
		window = model.Window1mo
	}
	return f.fetch(ctx, symbol, models.HistoryParams{
		Period:     string(window),
		Interval:   "1d",
		AutoAdjust: true,
	})
}

type historyResult struct {
	bars []models.Bar
	err  error
}

// fetch runs the blocking client call and gives up when ctx ends first.
func (f *YFinanceFetcher) fetch(ctx context.Context, symbol string, params models.HistoryParams) ([]model.PricePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	yahooSymbol := symbol
	if mapped, ok := f.SymbolMap[symbol]; ok {
		yahooSymbol = mapped
	}

	done := make(chan historyResult, 1)
	go func() {
		bars, err := f.history(yahooSymbol, params)
		done <- historyResult{bars: bars, err: err}
	}()

	var res historyResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-done:
	}
	if res.err != nil {
		return nil, fmt.Errorf("yfinance %s %s/%s: %w", yahooSymbol, params.Period, params.Interval, res.err)
	}
	if len(res.bars) == 0 {
		return nil, fmt.Errorf("yfinance %s: %w", yahooSymbol, errNoData)
	}

	points := make([]model.PricePoint, 0, len(res.bars))
	for _, bar := range res.bars {
		points = append(points, model.PricePoint{Time: bar.Date.UTC(), Close: bar.Close})
	}
	return points, nil
}
