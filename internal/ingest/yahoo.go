package ingest

import (
	"context"
	"drawdowncycles/internal/db/models/postgres/public/model"
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// BarSource fetches daily bars for one symbol
type BarSource interface {
	DailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.HistoricalPrice, error)
}

type yahooBarSource struct{}

func NewYahooBarSource() BarSource {
	return yahooBarSource{}
}

func (yahooBarSource) DailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.HistoricalPrice, error) {
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	iter := chart.Get(params)

	out := []model.HistoricalPrice{}
	for iter.Next() {
		if p, ok := barToHistoricalPrice(symbol, iter.Bar()); ok {
			out = append(out, p)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}

	return out, nil
}

// barToHistoricalPrice keeps the unadjusted close so yahoo bars share a
// price basis with stooq rows. bars without a positive close are dropped
func barToHistoricalPrice(symbol string, bar *finance.ChartBar) (model.HistoricalPrice, bool) {
	if bar == nil || !bar.Close.IsPositive() {
		return model.HistoricalPrice{}, false
	}
	open := bar.Open.InexactFloat64()
	high := bar.High.InexactFloat64()
	low := bar.Low.InexactFloat64()
	volume := int64(bar.Volume)
	ts := time.Unix(int64(bar.Timestamp), 0).UTC()

	return model.HistoricalPrice{
		Symbol: symbol,
		Date:   time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
		Open:   &open,
		High:   &high,
		Low:    &low,
		Close:  bar.Close.InexactFloat64(),
		Volume: &volume,
	}, true
}
