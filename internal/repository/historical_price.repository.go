package repository

import (
	"context"
	"database/sql"
	"drawdowncycles/internal/db/models/postgres/public/model"
	. "drawdowncycles/internal/db/models/postgres/public/table"
	"drawdowncycles/internal/domain"
	"errors"
	"fmt"
	"math"
	"time"

	. "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/shopspring/decimal"
)

// keeps each insert well under the postgres bind parameter limit
const historicalPriceChunkSize = 1000

type HistoricalPriceRepository interface {
	Add(tx *sql.Tx, prices []model.HistoricalPrice) error
	ListSeries(ctx context.Context, symbol string) ([]domain.PricePoint, error)
	ListSeriesBetween(ctx context.Context, symbol string, start, end time.Time) ([]domain.PricePoint, error)
	GetSeriesVersion(ctx context.Context, symbol string) (*domain.SeriesVersion, error)
	ListSymbolStats(ctx context.Context) ([]domain.SymbolStats, error)
}

type HistoricalPriceRepositoryHandler struct {
	Db *sql.DB
}

func NewHistoricalPriceRepository(db *sql.DB) HistoricalPriceRepository {
	return HistoricalPriceRepositoryHandler{Db: db}
}

func (h HistoricalPriceRepositoryHandler) Add(tx *sql.Tx, prices []model.HistoricalPrice) error {
	var db qrm.Executable = h.Db
	if tx != nil {
		db = tx
	}

	now := time.Now().UTC()
	for start := 0; start < len(prices); start += historicalPriceChunkSize {
		end := start + historicalPriceChunkSize
		if end > len(prices) {
			end = len(prices)
		}
		chunk := make([]model.HistoricalPrice, 0, end-start)
		for _, p := range prices[start:end] {
			p.CreatedAt = now
			chunk = append(chunk, p)
		}

		query := HistoricalPrice.
			INSERT(HistoricalPrice.MutableColumns).
			MODELS(chunk).
			ON_CONFLICT(
				HistoricalPrice.Symbol, HistoricalPrice.Date,
			).DO_UPDATE(
			SET(
				HistoricalPrice.Open.SET(HistoricalPrice.EXCLUDED.Open),
				HistoricalPrice.High.SET(HistoricalPrice.EXCLUDED.High),
				HistoricalPrice.Low.SET(HistoricalPrice.EXCLUDED.Low),
				HistoricalPrice.Close.SET(HistoricalPrice.EXCLUDED.Close),
				HistoricalPrice.Volume.SET(HistoricalPrice.EXCLUDED.Volume),
				HistoricalPrice.CreatedAt.SET(HistoricalPrice.EXCLUDED.CreatedAt),
			),
		)

		_, err := query.Exec(db)
		if err != nil {
			return fmt.Errorf("failed to add historical prices to db: %w", err)
		}
	}

	return nil
}

func toPricePoints(rows []model.HistoricalPrice) []domain.PricePoint {
	out := make([]domain.PricePoint, 0, len(rows))
	for _, r := range rows {
		// numeric columns can hold NaN, those rows and non positive closes
		// never reach the calculator
		if math.IsNaN(r.Close) || math.IsInf(r.Close, 0) || r.Close <= 0 {
			continue
		}
		out = append(out, domain.PricePoint{
			Date:  r.Date,
			Close: decimal.NewFromFloat(r.Close),
		})
	}
	return out
}

func (h HistoricalPriceRepositoryHandler) ListSeries(ctx context.Context, symbol string) ([]domain.PricePoint, error) {
	query := HistoricalPrice.
		SELECT(HistoricalPrice.AllColumns).
		WHERE(HistoricalPrice.Symbol.EQ(String(symbol))).
		ORDER_BY(HistoricalPrice.Date.ASC())

	result := []model.HistoricalPrice{}
	err := query.QueryContext(ctx, h.Db, &result)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("failed to list prices for %s: %w", symbol, err)
	}

	return toPricePoints(result), nil
}

func (h HistoricalPriceRepositoryHandler) ListSeriesBetween(ctx context.Context, symbol string, start, end time.Time) ([]domain.PricePoint, error) {
	query := HistoricalPrice.
		SELECT(HistoricalPrice.AllColumns).
		WHERE(
			AND(
				HistoricalPrice.Symbol.EQ(String(symbol)),
				HistoricalPrice.Date.BETWEEN(DateT(start), DateT(end)),
			),
		).
		ORDER_BY(HistoricalPrice.Date.ASC())

	result := []model.HistoricalPrice{}
	err := query.QueryContext(ctx, h.Db, &result)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("failed to list prices for %s between %s and %s: %w", symbol, start.Format(time.DateOnly), end.Format(time.DateOnly), err)
	}

	return toPricePoints(result), nil
}

func (h HistoricalPriceRepositoryHandler) GetSeriesVersion(ctx context.Context, symbol string) (*domain.SeriesVersion, error) {
	query := SELECT(
		COUNT(HistoricalPrice.Date).AS("num_points"),
		MAX(HistoricalPrice.Date).AS("latest_date"),
		MAX(HistoricalPrice.CreatedAt).AS("last_ingested"),
	).
		FROM(HistoricalPrice).
		WHERE(HistoricalPrice.Symbol.EQ(String(symbol)))

	result := struct {
		NumPoints    int64      `alias:"num_points"`
		LatestDate   *time.Time `alias:"latest_date"`
		LastIngested *time.Time `alias:"last_ingested"`
	}{}
	err := query.QueryContext(ctx, h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to get series version for %s: %w", symbol, err)
	}

	return &domain.SeriesVersion{
		Symbol:       symbol,
		NumPoints:    result.NumPoints,
		LatestDate:   result.LatestDate,
		LastIngested: result.LastIngested,
	}, nil
}

func (h HistoricalPriceRepositoryHandler) ListSymbolStats(ctx context.Context) ([]domain.SymbolStats, error) {
	query := SELECT(
		HistoricalPrice.Symbol.AS("symbol"),
		COUNT(HistoricalPrice.Date).AS("num_points"),
		MIN(HistoricalPrice.Date).AS("earliest_date"),
		MAX(HistoricalPrice.Date).AS("latest_date"),
	).
		FROM(HistoricalPrice).
		GROUP_BY(HistoricalPrice.Symbol).
		ORDER_BY(HistoricalPrice.Symbol.ASC())

	result := []struct {
		Symbol       string    `alias:"symbol"`
		NumPoints    int64     `alias:"num_points"`
		EarliestDate time.Time `alias:"earliest_date"`
		LatestDate   time.Time `alias:"latest_date"`
	}{}
	err := query.QueryContext(ctx, h.Db, &result)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("failed to list symbol stats: %w", err)
	}

	out := make([]domain.SymbolStats, 0, len(result))
	for _, r := range result {
		out = append(out, domain.SymbolStats{
			Symbol:       r.Symbol,
			NumPoints:    r.NumPoints,
			EarliestDate: r.EarliestDate,
			LatestDate:   r.LatestDate,
		})
	}

	return out, nil
}
