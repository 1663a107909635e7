package scheduler

import (
	"context"
	"drawdowncycles/internal/logger"
	"drawdowncycles/internal/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// Scheduler runs background jobs on cron schedules inside the api process
type Scheduler struct {
	cron *cron.Cron
	lg   *zap.SugaredLogger
}

func New(lg *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		lg:   lg.With("component", "scheduler"),
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.lg.Info("scheduler started")
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.lg.Info("scheduler stopped")
}

// AddJob registers job with a standard five field cron spec or a
// descriptor like "@daily"
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.RunNow(job)
	})
	if err != nil {
		return err
	}

	s.lg.Infow("job registered", "schedule", schedule, "job", job.Name())
	return nil
}

func (s *Scheduler) RunNow(job Job) error {
	lg := s.lg.With("job", job.Name())
	ctx := logger.NewContext(context.Background(), lg)

	lg.Info("running job")
	if err := job.Run(ctx); err != nil {
		lg.Errorw("job failed", "error", err)
		return err
	}
	lg.Info("job completed")

	return nil
}

type priceRefreshJob struct {
	IngestService service.IngestService
}

// NewPriceRefreshJob refreshes every tracked ticker from yahoo
func NewPriceRefreshJob(ingestService service.IngestService) Job {
	return priceRefreshJob{IngestService: ingestService}
}

func (j priceRefreshJob) Name() string {
	return "priceRefresh"
}

func (j priceRefreshJob) Run(ctx context.Context) error {
	run, err := j.IngestService.RefreshFromYahoo(ctx, nil)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Infow(
		"refreshed prices",
		"ingestRunID", run.IngestRunID.String(),
		"records", run.RecordsIngested,
		"errors", run.ErrorCount,
	)
	return nil
}
