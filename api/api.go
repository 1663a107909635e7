package api

import (
	"bytes"
	"context"
	"database/sql"
	"drawdowncycles/internal/db/models/postgres/public/model"
	"drawdowncycles/internal/domain"
	"drawdowncycles/internal/logger"
	"drawdowncycles/internal/repository"
	"drawdowncycles/internal/service"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApiHandler struct {
	Db                        *sql.DB
	CycleService              service.CycleService
	SimulationService         service.SimulationService
	IngestService             service.IngestService
	ApiRequestRepository      repository.ApiRequestRepository
	LatencyTrackingRepository repository.LatencyTrackingRepository
}

func int64Ptr(i int64) *int64 {
	return &i
}
func int32Ptr(i int32) *int32 {
	return &i
}
func strPtr(s string) *string {
	return &s
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to drawdown cycles"})
	})
	router.GET("/symbols", m.listSymbols)
	router.GET("/prices/:symbol", m.getPrices)
	router.POST("/cycles", m.cycles)
	router.POST("/cycles/summary", m.cycleSummary)
	router.POST("/cycles/compare", m.compareCycles)
	router.POST("/simulate", m.simulate)
	router.GET("/ingestRuns", m.listIngestRuns)
	router.GET("/ingestRuns/:id", m.getIngestRun)
	router.POST("/updatePrices", m.updatePrices)
	router.GET("/usageStats", m.usageStats)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

// statusFromError maps error kinds to http statuses, anything unknown is
// a server error
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIngestInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientData), errors.Is(err, domain.ErrArithmeticGuard):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, statusFromError(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	lg := logger.FromContext(c.Request.Context())
	if code >= 500 {
		lg.Errorw("request failed", "error", err, "status", code)
	} else {
		lg.Infow("request rejected", "error", err.Error(), "status", code)
	}
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// invalidRequest marks request binding failures as invalid input
func invalidRequest(err error) error {
	return fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidInput)
}

func requestIDFromContext(c *gin.Context) *uuid.UUID {
	value, ok := c.Get("requestID")
	if !ok {
		return nil
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// logRequestMiddleware records every request in api_request and attaches a
// request scoped logger and latency profile to the request context
func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
	c.Writer = w

	body, err := c.GetRawData()
	if err != nil {
		zap.S().Warnw("failed to read request body", "error", err)
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	start := time.Now().UTC()
	var requestBody *string
	if len(body) > 0 {
		requestBody = strPtr(string(body))
	}
	req, err := m.ApiRequestRepository.Add(m.Db, model.APIRequest{
		IPAddress:   strPtr(c.ClientIP()),
		Method:      c.Request.Method,
		Route:       c.Request.URL.Path,
		RequestBody: requestBody,
		StartTs:     start,
	})
	if err != nil {
		zap.S().Warnw("failed to record api request", "error", err)
	}

	lg := zap.S().With(
		"method", c.Request.Method,
		"route", c.Request.URL.Path,
	)
	if req != nil {
		c.Set("requestID", req.RequestID)
		lg = lg.With("requestID", req.RequestID.String())
	}

	profile, endProfile := domain.NewProfile()
	var ctx context.Context = logger.NewContext(c.Request.Context(), lg)
	ctx = domain.NewCtxWithProfile(ctx, profile)
	c.Request = c.Request.WithContext(ctx)

	c.Next()

	endProfile()
	if req != nil {
		req.DurationMs = int64Ptr(time.Since(start).Milliseconds())
		req.StatusCode = int32Ptr(int32(c.Writer.Status()))
		req.ResponseBody = strPtr(w.body.String())

		err = m.ApiRequestRepository.Update(m.Db, *req)
		if err != nil {
			lg.Warnw("failed to update api request", "error", err)
		}
	}
}

func (m ApiHandler) usageStats(c *gin.Context) {
	stats, err := repository.GetUsageStats(c.Request.Context(), m.Db)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, stats)
}
