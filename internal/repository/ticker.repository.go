package repository

import (
	"context"
	"database/sql"
	"drawdowncycles/internal/db/models/postgres/public/model"
	"drawdowncycles/internal/db/models/postgres/public/table"
	"fmt"
	"time"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type TickerRepository interface {
	List(ctx context.Context) ([]model.Ticker, error)
	GetOrCreate(tx *sql.Tx, t model.Ticker) (*model.Ticker, error)
}

type tickerRepositoryHandler struct {
	Db *sql.DB
}

func NewTickerRepository(db *sql.DB) TickerRepository {
	return tickerRepositoryHandler{Db: db}
}

func (h tickerRepositoryHandler) List(ctx context.Context) ([]model.Ticker, error) {
	query := table.Ticker.
		SELECT(table.Ticker.AllColumns).
		ORDER_BY(table.Ticker.Symbol.ASC())

	result := []model.Ticker{}
	err := query.QueryContext(ctx, h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickers: %w", err)
	}

	return result, nil
}

// GetOrCreate upserts by symbol. a known exchange replaces a missing one
// but never the other way around
func (h tickerRepositoryHandler) GetOrCreate(tx *sql.Tx, t model.Ticker) (*model.Ticker, error) {
	t.CreatedAt = time.Now().UTC()

	query := table.Ticker.
		INSERT(table.Ticker.MutableColumns).
		MODEL(t).
		ON_CONFLICT(table.Ticker.Symbol).DO_UPDATE(
		postgres.SET(
			table.Ticker.Exchange.SET(
				postgres.StringExp(postgres.COALESCE(table.Ticker.EXCLUDED.Exchange, table.Ticker.Exchange)),
			),
		),
	).RETURNING(table.Ticker.AllColumns)

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := model.Ticker{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ticker %s: %w", t.Symbol, err)
	}

	return &out, nil
}
