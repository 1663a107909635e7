package ingest

import (
	"drawdowncycles/internal/util"
	"testing"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_barToHistoricalPrice(t *testing.T) {
	ts := int(util.NewDate(2024, 3, 1).Add(14 * time.Hour).Unix())

	t.Run("uses the unadjusted close", func(t *testing.T) {
		p, ok := barToHistoricalPrice("SPY", &finance.ChartBar{
			Open:      decimal.NewFromInt(100),
			High:      decimal.NewFromInt(105),
			Low:       decimal.NewFromInt(99),
			Close:     decimal.NewFromInt(104),
			AdjClose:  decimal.NewFromFloat(101.5),
			Volume:    1200,
			Timestamp: ts,
		})
		require.True(t, ok)
		require.Equal(t, "SPY", p.Symbol)
		require.Equal(t, util.NewDate(2024, 3, 1), p.Date)
		require.Equal(t, 104.0, p.Close)
		require.Equal(t, 100.0, *p.Open)
		require.Equal(t, int64(1200), *p.Volume)
	})

	t.Run("drops bars without a positive close", func(t *testing.T) {
		for _, c := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-3)} {
			_, ok := barToHistoricalPrice("SPY", &finance.ChartBar{Close: c, Timestamp: ts})
			require.False(t, ok, c.String())
		}
		_, ok := barToHistoricalPrice("SPY", nil)
		require.False(t, ok)
	})
}
