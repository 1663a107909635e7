package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"drawdowncycles/internal/db/models/postgres/public/enum"
	"drawdowncycles/internal/db/models/postgres/public/model"
	"drawdowncycles/internal/db/models/postgres/public/table"
	"drawdowncycles/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const runningTypeIndex = "ingest_run_running_type_idx"

// isRunningConflict reports whether err came from a second run of the
// same type moving to RUNNING
func isRunningConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Constraint == runningTypeIndex
}

type IngestRunRepository interface {
	Add(tx *sql.Tx, ir model.IngestRun) (*model.IngestRun, error)
	Get(ctx context.Context, id uuid.UUID) (*model.IngestRun, error)
	List(ctx context.Context) ([]model.IngestRun, error)
	GetRunning(ctx context.Context, runType model.IngestRunType) (*model.IngestRun, error)
	Update(tx *sql.Tx, ir *model.IngestRun, columns postgres.ColumnList) (*model.IngestRun, error)
}

type ingestRunRepositoryHandler struct {
	Db *sql.DB
}

func NewIngestRunRepository(db *sql.DB) IngestRunRepository {
	return ingestRunRepositoryHandler{Db: db}
}

func (h ingestRunRepositoryHandler) Add(tx *sql.Tx, ir model.IngestRun) (*model.IngestRun, error) {
	ir.IngestRunID = uuid.New()
	ir.CreatedAt = time.Now().UTC()
	ir.ModifiedAt = time.Now().UTC()

	query := table.IngestRun.
		INSERT(
			table.IngestRun.AllColumns,
		).
		MODEL(ir).
		RETURNING(table.IngestRun.AllColumns)

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := model.IngestRun{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ingest run: %w", err)
	}

	return &out, nil
}

func (h ingestRunRepositoryHandler) Update(tx *sql.Tx, ir *model.IngestRun, columns postgres.ColumnList) (*model.IngestRun, error) {
	ir.ModifiedAt = time.Now().UTC()
	if ir.IngestRunID == uuid.Nil {
		return nil, fmt.Errorf("failed to update ingest run - id not provided in inputted model")
	}
	columns = append(columns, table.IngestRun.ModifiedAt)

	query := table.IngestRun.
		UPDATE(columns).
		MODEL(ir).
		RETURNING(table.IngestRun.AllColumns).
		WHERE(table.IngestRun.IngestRunID.EQ(
			postgres.UUID(ir.IngestRunID),
		))

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := model.IngestRun{}
	err := query.Query(db, &out)
	if isRunningConflict(err) {
		return nil, fmt.Errorf("failed to update ingest run %s: %s run already running: %w", ir.IngestRunID.String(), ir.RunType, domain.ErrIngestInProgress)
	} else if err != nil {
		return nil, fmt.Errorf("failed to update ingest run %s: %w", ir.IngestRunID.String(), err)
	}

	return &out, nil
}

func (h ingestRunRepositoryHandler) Get(ctx context.Context, id uuid.UUID) (*model.IngestRun, error) {
	query := table.IngestRun.
		SELECT(table.IngestRun.AllColumns).
		WHERE(table.IngestRun.IngestRunID.EQ(postgres.UUID(id)))

	result := model.IngestRun{}
	err := query.QueryContext(ctx, h.Db, &result)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get ingest run: %w", err)
	}

	return &result, nil
}

func (h ingestRunRepositoryHandler) List(ctx context.Context) ([]model.IngestRun, error) {
	query := table.IngestRun.
		SELECT(table.IngestRun.AllColumns).
		ORDER_BY(table.IngestRun.CreatedAt.DESC())

	result := []model.IngestRun{}
	err := query.QueryContext(ctx, h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingest runs: %w", err)
	}

	return result, nil
}

// GetRunning returns the in-flight run of the given type, or nil
func (h ingestRunRepositoryHandler) GetRunning(ctx context.Context, runType model.IngestRunType) (*model.IngestRun, error) {
	runTypeExp := enum.IngestRunType.StooqDirectory
	if runType == model.IngestRunType_YahooRefresh {
		runTypeExp = enum.IngestRunType.YahooRefresh
	}

	query := table.IngestRun.
		SELECT(table.IngestRun.AllColumns).
		WHERE(
			postgres.AND(
				table.IngestRun.RunType.EQ(runTypeExp),
				table.IngestRun.State.EQ(enum.IngestRunState.Running),
			),
		).
		ORDER_BY(table.IngestRun.CreatedAt.DESC()).
		LIMIT(1)

	result := model.IngestRun{}
	err := query.QueryContext(ctx, h.Db, &result)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get running %s ingest run: %w", runType, err)
	}

	return &result, nil
}
