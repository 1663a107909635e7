package scheduler

import (
	"context"
	"drawdowncycles/internal/db/models/postgres/public/model"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Name() string {
	return "counting"
}

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestScheduler(t *testing.T) {
	t.Run("run now surfaces job errors", func(t *testing.T) {
		s := New(zap.NewNop().Sugar())
		job := &countingJob{err: errors.New("boom")}

		err := s.RunNow(job)
		require.ErrorContains(t, err, "boom")
		require.Equal(t, int32(1), job.runs.Load())
	})

	t.Run("rejects malformed schedules", func(t *testing.T) {
		s := New(zap.NewNop().Sugar())
		require.Error(t, s.AddJob("every tuesday", &countingJob{}))
	})

	t.Run("runs registered jobs", func(t *testing.T) {
		if testing.Short() {
			t.Skip("waits on the cron clock")
		}
		s := New(zap.NewNop().Sugar())
		job := &countingJob{}
		require.NoError(t, s.AddJob("@every 1s", job))

		s.Start()
		defer s.Stop()

		require.Eventually(t, func() bool {
			return job.runs.Load() > 0
		}, 5*time.Second, 50*time.Millisecond)
	})
}

// fakeIngestService only implements the refresh used by the job
type fakeIngestService struct {
	symbols []string
	called  bool
}

func (f *fakeIngestService) IngestStooqDirectory(ctx context.Context, dir string) (*model.IngestRun, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeIngestService) RefreshFromYahoo(ctx context.Context, symbols []string) (*model.IngestRun, error) {
	f.called = true
	f.symbols = symbols
	return &model.IngestRun{IngestRunID: uuid.New(), RecordsIngested: 3}, nil
}

func (f *fakeIngestService) GetRun(ctx context.Context, id uuid.UUID) (*model.IngestRun, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeIngestService) ListRuns(ctx context.Context) ([]model.IngestRun, error) {
	return nil, errors.New("not implemented")
}

func Test_priceRefreshJob(t *testing.T) {
	svc := &fakeIngestService{}
	job := NewPriceRefreshJob(svc)

	require.Equal(t, "priceRefresh", job.Name())
	require.NoError(t, New(zap.NewNop().Sugar()).RunNow(job))
	require.True(t, svc.called)
	require.Nil(t, svc.symbols)
}
