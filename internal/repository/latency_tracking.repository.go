package repository

import (
	"context"
	"database/sql"
	"drawdowncycles/internal/db/models/postgres/public/model"
	"drawdowncycles/internal/db/models/postgres/public/table"
	"drawdowncycles/internal/domain"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type latencyTrackingRepositoryHandler struct {
	Db *sql.DB
}

type LatencyTrackingRepository interface {
	Add(ctx context.Context, profile *domain.Profile, requestID *uuid.UUID) error
}

func NewLatencyTrackingRepository(db *sql.DB) LatencyTrackingRepository {
	return latencyTrackingRepositoryHandler{db}
}

func (h latencyTrackingRepositoryHandler) Add(ctx context.Context, profile *domain.Profile, requestID *uuid.UUID) error {
	bytes, err := profile.ToJsonBytes()
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}

	m := model.LatencyTracking{
		LatencyTrackingID: uuid.New(),
		ProcessingTimes:   string(bytes),
		RequestID:         requestID,
		CreatedAt:         time.Now().UTC(),
	}
	query := table.LatencyTracking.INSERT(table.LatencyTracking.AllColumns).MODEL(m)

	_, err = query.ExecContext(ctx, h.Db)
	if err != nil {
		return fmt.Errorf("failed to insert latency tracking: %w", err)
	}

	return nil
}
