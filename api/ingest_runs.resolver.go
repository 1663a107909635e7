package api

import (
	"drawdowncycles/internal/db/models/postgres/public/model"
	"drawdowncycles/internal/domain"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IngestRunResponse struct {
	IngestRunID     uuid.UUID  `json:"ingestRunID"`
	RunType         string     `json:"runType"`
	State           string     `json:"state"`
	Source          string     `json:"source"`
	RecordsIngested int32      `json:"recordsIngested"`
	ErrorCount      int32      `json:"errorCount"`
	FilesProcessed  int32      `json:"filesProcessed"`
	Notes           *string    `json:"notes"`
	StartedAt       *time.Time `json:"startedAt"`
	CompletedAt     *time.Time `json:"completedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func ingestRunToResponse(ir model.IngestRun) IngestRunResponse {
	return IngestRunResponse{
		IngestRunID:     ir.IngestRunID,
		RunType:         ir.RunType.String(),
		State:           ir.State.String(),
		Source:          ir.Source,
		RecordsIngested: ir.RecordsIngested,
		ErrorCount:      ir.ErrorCount,
		FilesProcessed:  ir.FilesProcessed,
		Notes:           ir.Notes,
		StartedAt:       ir.StartedAt,
		CompletedAt:     ir.CompletedAt,
		CreatedAt:       ir.CreatedAt,
	}
}

func (m ApiHandler) listIngestRuns(c *gin.Context) {
	runs, err := m.IngestService.ListRuns(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []IngestRunResponse{}
	for _, r := range runs {
		out = append(out, ingestRunToResponse(r))
	}

	c.JSON(200, out)
}

func (m ApiHandler) getIngestRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJson(fmt.Errorf("invalid ingest run id %q: %w", c.Param("id"), domain.ErrInvalidInput), c)
		return
	}

	run, err := m.IngestService.GetRun(c.Request.Context(), id)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, ingestRunToResponse(*run))
}
