package repository

import (
	"context"
	"database/sql"
	"drawdowncycles/internal/db/models/postgres/public/model"
	"drawdowncycles/internal/db/models/postgres/public/table"
	"fmt"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type DataFreshnessRepository interface {
	Upsert(tx *sql.Tx, rows []model.DataFreshness) error
	List(ctx context.Context) ([]model.DataFreshness, error)
}

type dataFreshnessRepositoryHandler struct {
	Db *sql.DB
}

func NewDataFreshnessRepository(db *sql.DB) DataFreshnessRepository {
	return dataFreshnessRepositoryHandler{Db: db}
}

func (h dataFreshnessRepositoryHandler) Upsert(tx *sql.Tx, rows []model.DataFreshness) error {
	if len(rows) == 0 {
		return nil
	}

	query := table.DataFreshness.
		INSERT(table.DataFreshness.AllColumns).
		MODELS(rows).
		ON_CONFLICT(table.DataFreshness.Symbol).
		DO_UPDATE(
			postgres.SET(
				table.DataFreshness.LastUpdated.SET(table.DataFreshness.EXCLUDED.LastUpdated),
				table.DataFreshness.Status.SET(table.DataFreshness.EXCLUDED.Status),
				table.DataFreshness.ErrorCount.SET(table.DataFreshness.EXCLUDED.ErrorCount),
				table.DataFreshness.RecordCount.SET(table.DataFreshness.EXCLUDED.RecordCount),
				table.DataFreshness.EarliestDate.SET(table.DataFreshness.EXCLUDED.EarliestDate),
				table.DataFreshness.LatestDate.SET(table.DataFreshness.EXCLUDED.LatestDate),
			),
		)

	var db qrm.Executable = h.Db
	if tx != nil {
		db = tx
	}

	_, err := query.Exec(db)
	if err != nil {
		return fmt.Errorf("failed to upsert data freshness: %w", err)
	}

	return nil
}

func (h dataFreshnessRepositoryHandler) List(ctx context.Context) ([]model.DataFreshness, error) {
	query := table.DataFreshness.
		SELECT(table.DataFreshness.AllColumns).
		ORDER_BY(table.DataFreshness.Symbol.ASC())

	result := []model.DataFreshness{}
	err := query.QueryContext(ctx, h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list data freshness: %w", err)
	}

	return result, nil
}
