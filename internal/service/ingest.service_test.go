package service

import (
	"context"
	"database/sql"
	"drawdowncycles/internal/db/models/postgres/public/model"
	"drawdowncycles/internal/domain"
	mock_ingest "drawdowncycles/internal/ingest/mocks"
	mock_repository "drawdowncycles/internal/repository/mocks"
	"drawdowncycles/internal/util"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type ingestMocks struct {
	priceRepository         *mock_repository.MockHistoricalPriceRepository
	tickerRepository        *mock_repository.MockTickerRepository
	dataFreshnessRepository *mock_repository.MockDataFreshnessRepository
	ingestRunRepository     *mock_repository.MockIngestRunRepository
	barSource               *mock_ingest.MockBarSource
}

func newIngestHandler(t *testing.T, now time.Time) (ingestServiceHandler, ingestMocks) {
	ctrl := gomock.NewController(t)
	m := ingestMocks{
		priceRepository:         mock_repository.NewMockHistoricalPriceRepository(ctrl),
		tickerRepository:        mock_repository.NewMockTickerRepository(ctrl),
		dataFreshnessRepository: mock_repository.NewMockDataFreshnessRepository(ctrl),
		ingestRunRepository:     mock_repository.NewMockIngestRunRepository(ctrl),
		barSource:               mock_ingest.NewMockBarSource(ctrl),
	}
	handler := ingestServiceHandler{
		PriceRepository:         m.priceRepository,
		TickerRepository:        m.tickerRepository,
		DataFreshnessRepository: m.dataFreshnessRepository,
		IngestRunRepository:     m.ingestRunRepository,
		BarSource:               m.barSource,
		Now: func() time.Time {
			return now
		},
	}
	return handler, m
}

func expectRunLifecycle(m ingestMocks, runType model.IngestRunType) *[]model.IngestRun {
	updates := []model.IngestRun{}
	m.ingestRunRepository.EXPECT().GetRunning(gomock.Any(), runType).Return(nil, nil)
	m.ingestRunRepository.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(func(tx *sql.Tx, ir model.IngestRun) (*model.IngestRun, error) {
		ir.IngestRunID = uuid.New()
		return &ir, nil
	})
	m.ingestRunRepository.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(tx *sql.Tx, ir *model.IngestRun, columns postgres.ColumnList) (*model.IngestRun, error) {
		updates = append(updates, *ir)
		out := *ir
		return &out, nil
	}).AnyTimes()
	return &updates
}

func Test_ingestServiceHandler_startRun(t *testing.T) {
	t.Run("refuses while a run of the same type is running", func(t *testing.T) {
		handler, m := newIngestHandler(t, time.Now())
		startedAt := time.Now()
		m.ingestRunRepository.EXPECT().GetRunning(gomock.Any(), model.IngestRunType_StooqDirectory).Return(&model.IngestRun{
			IngestRunID: uuid.New(),
			RunType:     model.IngestRunType_StooqDirectory,
			State:       model.IngestRunState_Running,
			StartedAt:   &startedAt,
		}, nil)

		_, err := handler.IngestStooqDirectory(context.Background(), t.TempDir())
		require.True(t, errors.Is(err, domain.ErrIngestInProgress))
	})

	t.Run("moves pending to running", func(t *testing.T) {
		now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		handler, m := newIngestHandler(t, now)
		updates := expectRunLifecycle(m, model.IngestRunType_YahooRefresh)

		run, err := handler.startRun(context.Background(), model.IngestRunType_YahooRefresh, "yahoo")
		require.NoError(t, err)
		require.Equal(t, model.IngestRunState_Running, run.State)
		require.Equal(t, now, *run.StartedAt)
		require.Len(t, *updates, 1)
	})

	t.Run("a quiet running run is marked errored and replaced", func(t *testing.T) {
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		handler, m := newIngestHandler(t, now)
		startedAt := now.Add(-3 * time.Hour)
		stuck := &model.IngestRun{
			IngestRunID: uuid.New(),
			RunType:     model.IngestRunType_YahooRefresh,
			State:       model.IngestRunState_Running,
			StartedAt:   &startedAt,
			ModifiedAt:  startedAt,
		}

		updates := []model.IngestRun{}
		m.ingestRunRepository.EXPECT().GetRunning(gomock.Any(), model.IngestRunType_YahooRefresh).Return(stuck, nil)
		m.ingestRunRepository.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(func(tx *sql.Tx, ir model.IngestRun) (*model.IngestRun, error) {
			ir.IngestRunID = uuid.New()
			return &ir, nil
		})
		m.ingestRunRepository.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(tx *sql.Tx, ir *model.IngestRun, columns postgres.ColumnList) (*model.IngestRun, error) {
			updates = append(updates, *ir)
			out := *ir
			return &out, nil
		}).Times(2)

		run, err := handler.startRun(context.Background(), model.IngestRunType_YahooRefresh, "yahoo")
		require.NoError(t, err)
		require.Equal(t, model.IngestRunState_Running, run.State)
		require.NotEqual(t, stuck.IngestRunID, run.IngestRunID)

		require.Len(t, updates, 2)
		require.Equal(t, stuck.IngestRunID, updates[0].IngestRunID)
		require.Equal(t, model.IngestRunState_Error, updates[0].State)
		require.Equal(t, "abandoned: no progress since 2024-05-01T09:00:00Z", *updates[0].Notes)
		require.Equal(t, now, *updates[0].CompletedAt)
	})

	t.Run("recent progress keeps a long stooq ingest alive", func(t *testing.T) {
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		handler, m := newIngestHandler(t, now)
		startedAt := now.Add(-5 * time.Hour)
		m.ingestRunRepository.EXPECT().GetRunning(gomock.Any(), model.IngestRunType_StooqDirectory).Return(&model.IngestRun{
			IngestRunID: uuid.New(),
			RunType:     model.IngestRunType_StooqDirectory,
			State:       model.IngestRunState_Running,
			StartedAt:   &startedAt,
			ModifiedAt:  now.Add(-10 * time.Minute),
		}, nil)

		_, err := handler.startRun(context.Background(), model.IngestRunType_StooqDirectory, "/data")
		require.True(t, errors.Is(err, domain.ErrIngestInProgress))
	})

	t.Run("losing a concurrent start closes the pending run", func(t *testing.T) {
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		handler, m := newIngestHandler(t, now)

		updates := []model.IngestRun{}
		m.ingestRunRepository.EXPECT().GetRunning(gomock.Any(), model.IngestRunType_YahooRefresh).Return(nil, nil)
		m.ingestRunRepository.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(func(tx *sql.Tx, ir model.IngestRun) (*model.IngestRun, error) {
			ir.IngestRunID = uuid.New()
			return &ir, nil
		})
		gomock.InOrder(
			m.ingestRunRepository.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("yahoo run already running: %w", domain.ErrIngestInProgress)),
			m.ingestRunRepository.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(tx *sql.Tx, ir *model.IngestRun, columns postgres.ColumnList) (*model.IngestRun, error) {
				updates = append(updates, *ir)
				out := *ir
				return &out, nil
			}),
		)

		_, err := handler.RefreshFromYahoo(context.Background(), []string{"SPY"})
		require.True(t, errors.Is(err, domain.ErrIngestInProgress))
		require.Len(t, updates, 1)
		require.Equal(t, model.IngestRunState_Error, updates[0].State)
	})
}

func Test_ingestServiceHandler_RefreshFromYahoo(t *testing.T) {
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("refreshes after the latest stored date and records failures", func(t *testing.T) {
		handler, m := newIngestHandler(t, now)
		updates := expectRunLifecycle(m, model.IngestRunType_YahooRefresh)

		latest := util.NewDate(2024, 1, 5)
		bars := []model.HistoricalPrice{
			{Symbol: "SPY", Date: util.NewDate(2024, 1, 8), Close: 470},
			{Symbol: "SPY", Date: util.NewDate(2024, 1, 9), Close: 472},
		}

		m.priceRepository.EXPECT().GetSeriesVersion(gomock.Any(), "SPY").Return(&domain.SeriesVersion{Symbol: "SPY", NumPoints: 10, LatestDate: &latest}, nil)
		m.barSource.EXPECT().DailyBars(gomock.Any(), "SPY", util.NewDate(2024, 1, 6), now).Return(bars, nil)
		m.priceRepository.EXPECT().Add(gomock.Any(), bars).Return(nil)

		m.priceRepository.EXPECT().GetSeriesVersion(gomock.Any(), "QQQ").Return(&domain.SeriesVersion{Symbol: "QQQ"}, nil)
		m.barSource.EXPECT().DailyBars(gomock.Any(), "QQQ", defaultRefreshStart, now).Return(nil, errors.New("rate limited"))

		m.priceRepository.EXPECT().ListSymbolStats(gomock.Any()).Return([]domain.SymbolStats{
			{Symbol: "DIA", NumPoints: 3, EarliestDate: latest, LatestDate: latest},
			{Symbol: "SPY", NumPoints: 12, EarliestDate: util.NewDate(2023, 1, 3), LatestDate: util.NewDate(2024, 1, 9)},
		}, nil)

		var upserted []model.DataFreshness
		m.dataFreshnessRepository.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(tx *sql.Tx, rows []model.DataFreshness) error {
			upserted = rows
			return nil
		})

		run, err := handler.RefreshFromYahoo(context.Background(), []string{"spy", "qqq"})
		require.NoError(t, err)

		require.Equal(t, model.IngestRunState_Completed, run.State)
		require.Equal(t, int32(2), run.RecordsIngested)
		require.Equal(t, int32(1), run.ErrorCount)
		require.Equal(t, "failed symbols: QQQ", *run.Notes)
		require.Equal(t, now, *run.CompletedAt)
		require.Len(t, *updates, 2)

		require.Equal(
			t,
			"",
			cmp.Diff(
				[]model.DataFreshness{
					{
						Symbol:       "QQQ",
						LastUpdated:  now,
						Status:       "error",
						ErrorCount:   1,
						RecordCount:  0,
						EarliestDate: nil,
						LatestDate:   nil,
					},
					{
						Symbol:       "SPY",
						LastUpdated:  now,
						Status:       "active",
						ErrorCount:   0,
						RecordCount:  12,
						EarliestDate: timePtr(util.NewDate(2023, 1, 3)),
						LatestDate:   timePtr(util.NewDate(2024, 1, 9)),
					},
				},
				upserted,
				cmpopts.SortSlices(func(a, b model.DataFreshness) bool {
					return a.Symbol < b.Symbol
				}),
			),
		)
	})

	t.Run("defaults to every tracked ticker", func(t *testing.T) {
		handler, m := newIngestHandler(t, now)
		expectRunLifecycle(m, model.IngestRunType_YahooRefresh)

		latest := now
		m.tickerRepository.EXPECT().List(gomock.Any()).Return([]model.Ticker{{Symbol: "SPY"}}, nil)
		m.priceRepository.EXPECT().GetSeriesVersion(gomock.Any(), "SPY").Return(&domain.SeriesVersion{Symbol: "SPY", LatestDate: &latest}, nil)

		run, err := handler.RefreshFromYahoo(context.Background(), nil)
		require.NoError(t, err)
		require.Equal(t, model.IngestRunState_Completed, run.State)
		require.Equal(t, int32(0), run.RecordsIngested)
	})

	t.Run("every symbol failing marks the run as errored", func(t *testing.T) {
		handler, m := newIngestHandler(t, now)
		updates := expectRunLifecycle(m, model.IngestRunType_YahooRefresh)

		m.priceRepository.EXPECT().GetSeriesVersion(gomock.Any(), "SPY").Return(nil, errors.New("db down"))

		run, err := handler.RefreshFromYahoo(context.Background(), []string{"SPY"})
		require.ErrorContains(t, err, "failed to refresh all 1 symbols")
		require.Equal(t, model.IngestRunState_Error, run.State)
		last := (*updates)[len(*updates)-1]
		require.Equal(t, model.IngestRunState_Error, last.State)
	})
}

func Test_ingestServiceHandler_GetRun(t *testing.T) {
	handler, m := newIngestHandler(t, time.Now())
	id := uuid.New()
	m.ingestRunRepository.EXPECT().Get(gomock.Any(), id).Return(nil, nil)

	_, err := handler.GetRun(context.Background(), id)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}
