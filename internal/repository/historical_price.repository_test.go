package repository

import (
	"context"
	"drawdowncycles/internal/db/models/postgres/public/model"
	"drawdowncycles/internal/util"
	"drawdowncycles/internal/util/testdb"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func floatPointer(f float64) *float64 {
	return &f
}

func TestHistoricalPriceRepository(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	repo := NewHistoricalPriceRepository(db)

	t.Run("empty symbol has an empty version", func(t *testing.T) {
		version, err := repo.GetSeriesVersion(ctx, "NOPE")
		require.NoError(t, err)
		require.Equal(t, int64(0), version.NumPoints)
		require.Nil(t, version.LatestDate)
		require.Nil(t, version.LastIngested)

		series, err := repo.ListSeries(ctx, "NOPE")
		require.NoError(t, err)
		require.Empty(t, series)
	})

	t.Run("add, upsert and list", func(t *testing.T) {
		tx, err := db.Begin()
		require.NoError(t, err)
		err = repo.Add(tx, []model.HistoricalPrice{
			{Symbol: "SPY", Date: util.NewDate(2020, 1, 3), Close: 101},
			{Symbol: "SPY", Date: util.NewDate(2020, 1, 2), Close: 100, Open: floatPointer(99.5)},
			{Symbol: "QQQ", Date: util.NewDate(2020, 1, 2), Close: 200},
		})
		require.NoError(t, err)
		require.NoError(t, tx.Commit())

		before, err := repo.GetSeriesVersion(ctx, "SPY")
		require.NoError(t, err)
		require.Equal(t, int64(2), before.NumPoints)
		require.True(t, util.DateEq(util.NewDate(2020, 1, 3), *before.LatestDate))

		// a re-ingested day replaces the stored close
		err = repo.Add(nil, []model.HistoricalPrice{
			{Symbol: "SPY", Date: util.NewDate(2020, 1, 3), Close: 102.5},
		})
		require.NoError(t, err)

		series, err := repo.ListSeries(ctx, "SPY")
		require.NoError(t, err)
		require.Len(t, series, 2)
		require.True(t, util.DateEq(util.NewDate(2020, 1, 2), series[0].Date))
		require.True(t, decimal.NewFromInt(100).Equal(series[0].Close))
		require.True(t, decimal.NewFromFloat(102.5).Equal(series[1].Close))

		after, err := repo.GetSeriesVersion(ctx, "SPY")
		require.NoError(t, err)
		require.Equal(t, int64(2), after.NumPoints)
		require.NotEqual(t, before.String(), after.String())

		between, err := repo.ListSeriesBetween(ctx, "SPY", util.NewDate(2020, 1, 3), util.NewDate(2020, 2, 1))
		require.NoError(t, err)
		require.Len(t, between, 1)
	})

	t.Run("symbol stats", func(t *testing.T) {
		stats, err := repo.ListSymbolStats(ctx)
		require.NoError(t, err)
		require.Len(t, stats, 2)

		require.Equal(t, "QQQ", stats[0].Symbol)
		require.Equal(t, int64(1), stats[0].NumPoints)
		require.Equal(t, "SPY", stats[1].Symbol)
		require.Equal(t, int64(2), stats[1].NumPoints)
		require.True(t, util.DateEq(util.NewDate(2020, 1, 2), stats[1].EarliestDate))
		require.True(t, util.DateEq(util.NewDate(2020, 1, 3), stats[1].LatestDate))
	})

	t.Run("large batches are chunked", func(t *testing.T) {
		prices := []model.HistoricalPrice{}
		start := util.NewDate(2000, 1, 1)
		for i := 0; i < historicalPriceChunkSize*2+10; i++ {
			prices = append(prices, model.HistoricalPrice{
				Symbol: "BIG",
				Date:   start.AddDate(0, 0, i),
				Close:  float64(100 + i%7),
			})
		}
		require.NoError(t, repo.Add(nil, prices))

		version, err := repo.GetSeriesVersion(ctx, "BIG")
		require.NoError(t, err)
		require.Equal(t, int64(len(prices)), version.NumPoints)
	})
}

func Test_toPricePoints(t *testing.T) {
	d1 := util.NewDate(2020, 1, 2)
	points := toPricePoints([]model.HistoricalPrice{
		{Symbol: "SPY", Date: d1, Close: 100},
		{Symbol: "SPY", Date: d1.AddDate(0, 0, 1), Close: 0},
		{Symbol: "SPY", Date: d1.AddDate(0, 0, 2), Close: -5},
		{Symbol: "SPY", Date: d1.AddDate(0, 0, 3), Close: math.NaN()},
		{Symbol: "SPY", Date: d1.AddDate(0, 0, 4), Close: math.Inf(1)},
		{Symbol: "SPY", Date: d1.AddDate(0, 0, 5), Close: 101.5},
	})

	require.Len(t, points, 2)
	require.Equal(t, d1, points[0].Date)
	require.True(t, decimal.NewFromInt(100).Equal(points[0].Close))
	require.True(t, decimal.NewFromFloat(101.5).Equal(points[1].Close))
}
