package service

import (
	"context"
	"database/sql"
	"drawdowncycles/internal/db/models/postgres/public/model"
	"drawdowncycles/internal/db/models/postgres/public/table"
	"drawdowncycles/internal/domain"
	"drawdowncycles/internal/ingest"
	"drawdowncycles/internal/logger"
	"drawdowncycles/internal/repository"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/uuid"
)

const (
	// stooq files are committed in batches of this many files
	stooqCommitEvery = 25

	freshnessStatusActive = "active"
	freshnessStatusError  = "error"
)

var defaultRefreshStart = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

type IngestService interface {
	IngestStooqDirectory(ctx context.Context, dir string) (*model.IngestRun, error)
	RefreshFromYahoo(ctx context.Context, symbols []string) (*model.IngestRun, error)
	GetRun(ctx context.Context, id uuid.UUID) (*model.IngestRun, error)
	ListRuns(ctx context.Context) ([]model.IngestRun, error)
}

type ingestServiceHandler struct {
	Db                      *sql.DB
	PriceRepository         repository.HistoricalPriceRepository
	TickerRepository        repository.TickerRepository
	DataFreshnessRepository repository.DataFreshnessRepository
	IngestRunRepository     repository.IngestRunRepository
	BarSource               ingest.BarSource
	Now                     func() time.Time
}

func NewIngestService(
	db *sql.DB,
	priceRepository repository.HistoricalPriceRepository,
	tickerRepository repository.TickerRepository,
	dataFreshnessRepository repository.DataFreshnessRepository,
	ingestRunRepository repository.IngestRunRepository,
	barSource ingest.BarSource,
) IngestService {
	return ingestServiceHandler{
		Db:                      db,
		PriceRepository:         priceRepository,
		TickerRepository:        tickerRepository,
		DataFreshnessRepository: dataFreshnessRepository,
		IngestRunRepository:     ingestRunRepository,
		BarSource:               barSource,
		Now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func strPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// a RUNNING run with no progress for this long is treated as abandoned,
// e.g. the process died mid ingest
var abandonedRunAfter = map[model.IngestRunType]time.Duration{
	model.IngestRunType_StooqDirectory: 2 * time.Hour,
	model.IngestRunType_YahooRefresh:   time.Hour,
}

// lastProgress is the latest time the run was known to be alive
func lastProgress(run model.IngestRun) time.Time {
	last := run.ModifiedAt
	if run.StartedAt != nil && run.StartedAt.After(last) {
		last = *run.StartedAt
	}
	return last
}

// failRun moves a run straight to ERROR with the given note
func (h ingestServiceHandler) failRun(run *model.IngestRun, note string) error {
	run.State = model.IngestRunState_Error
	run.Notes = strPtr(note)
	run.CompletedAt = timePtr(h.Now())
	_, err := h.IngestRunRepository.Update(nil, run, postgres.ColumnList{
		table.IngestRun.State,
		table.IngestRun.Notes,
		table.IngestRun.CompletedAt,
	})
	return err
}

// startRun records a new run and moves it to RUNNING. a run of the same
// type that is still RUNNING blocks the new one unless it has gone quiet
// for longer than abandonedRunAfter, in which case it is marked ERROR
func (h ingestServiceHandler) startRun(ctx context.Context, runType model.IngestRunType, source string) (*model.IngestRun, error) {
	log := logger.FromContext(ctx)

	running, err := h.IngestRunRepository.GetRunning(ctx, runType)
	if err != nil {
		return nil, err
	}
	if running != nil {
		last := lastProgress(*running)
		if h.Now().Sub(last) < abandonedRunAfter[runType] {
			return nil, fmt.Errorf("%s run %s started at %v: %w", runType, running.IngestRunID.String(), running.StartedAt, domain.ErrIngestInProgress)
		}
		log.Warnw("marking abandoned ingest run as errored", "ingestRunID", running.IngestRunID.String(), "lastProgress", last)
		if err := h.failRun(running, fmt.Sprintf("abandoned: no progress since %s", last.Format(time.RFC3339))); err != nil {
			return nil, fmt.Errorf("failed to clear abandoned run %s: %w", running.IngestRunID.String(), err)
		}
	}

	run, err := h.IngestRunRepository.Add(nil, model.IngestRun{
		RunType: runType,
		State:   model.IngestRunState_Pending,
		Source:  source,
	})
	if err != nil {
		return nil, err
	}

	run.State = model.IngestRunState_Running
	run.StartedAt = timePtr(h.Now())
	started, err := h.IngestRunRepository.Update(nil, run, postgres.ColumnList{
		table.IngestRun.State,
		table.IngestRun.StartedAt,
	})
	if errors.Is(err, domain.ErrIngestInProgress) {
		// lost the race to a concurrent start
		if failErr := h.failRun(run, "another run of this type started first"); failErr != nil {
			log.Warnw("failed to close pending ingest run", "ingestRunID", run.IngestRunID.String(), "error", failErr)
		}
		return nil, err
	} else if err != nil {
		return nil, err
	}

	return started, nil
}

func (h ingestServiceHandler) saveProgress(run *model.IngestRun) (*model.IngestRun, error) {
	return h.IngestRunRepository.Update(nil, run, postgres.ColumnList{
		table.IngestRun.RecordsIngested,
		table.IngestRun.ErrorCount,
		table.IngestRun.FilesProcessed,
	})
}

// finishRun moves the run to COMPLETED, or ERROR when runErr is set
func (h ingestServiceHandler) finishRun(run *model.IngestRun, runErr error, notes []string) (*model.IngestRun, error) {
	run.State = model.IngestRunState_Completed
	if runErr != nil {
		run.State = model.IngestRunState_Error
		notes = append([]string{runErr.Error()}, notes...)
	}
	if len(notes) > 0 {
		run.Notes = strPtr(strings.Join(notes, "; "))
	}
	run.CompletedAt = timePtr(h.Now())

	updated, err := h.IngestRunRepository.Update(nil, run, postgres.ColumnList{
		table.IngestRun.State,
		table.IngestRun.RecordsIngested,
		table.IngestRun.ErrorCount,
		table.IngestRun.FilesProcessed,
		table.IngestRun.Notes,
		table.IngestRun.CompletedAt,
	})
	if err != nil {
		return nil, errors.Join(runErr, err)
	}
	if runErr != nil {
		return updated, runErr
	}

	return updated, nil
}

// refreshFreshness rewrites data_freshness for the touched symbols from
// what is now stored
func (h ingestServiceHandler) refreshFreshness(ctx context.Context, errorsBySymbol map[string]int) error {
	if len(errorsBySymbol) == 0 {
		return nil
	}

	stats, err := h.PriceRepository.ListSymbolStats(ctx)
	if err != nil {
		return err
	}

	now := h.Now()
	rows := []model.DataFreshness{}
	seen := map[string]bool{}
	for _, s := range stats {
		errCount, ok := errorsBySymbol[s.Symbol]
		if !ok {
			continue
		}
		seen[s.Symbol] = true
		status := freshnessStatusActive
		if errCount > 0 {
			status = freshnessStatusError
		}
		rows = append(rows, model.DataFreshness{
			Symbol:       s.Symbol,
			LastUpdated:  now,
			Status:       status,
			ErrorCount:   int32(errCount),
			RecordCount:  s.NumPoints,
			EarliestDate: timePtr(s.EarliestDate),
			LatestDate:   timePtr(s.LatestDate),
		})
	}
	// symbols that failed before storing anything
	for symbol, errCount := range errorsBySymbol {
		if seen[symbol] {
			continue
		}
		rows = append(rows, model.DataFreshness{
			Symbol:      symbol,
			LastUpdated: now,
			Status:      freshnessStatusError,
			ErrorCount:  int32(errCount),
		})
	}

	return h.DataFreshnessRepository.Upsert(nil, rows)
}

func (h ingestServiceHandler) IngestStooqDirectory(ctx context.Context, dir string) (*model.IngestRun, error) {
	log := logger.FromContext(ctx)

	run, err := h.startRun(ctx, model.IngestRunType_StooqDirectory, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to start stooq ingest: %w", err)
	}

	errorsBySymbol, notes, err := h.ingestStooqFiles(ctx, run, dir)
	if err == nil {
		err = h.refreshFreshness(ctx, errorsBySymbol)
		if err != nil {
			err = fmt.Errorf("failed to refresh data freshness: %w", err)
		}
	}

	log.Infow(
		"finished stooq ingest",
		"ingestRunID", run.IngestRunID.String(),
		"files", run.FilesProcessed,
		"records", run.RecordsIngested,
		"errors", run.ErrorCount,
	)

	return h.finishRun(run, err, notes)
}

func (h ingestServiceHandler) ingestStooqFiles(ctx context.Context, run *model.IngestRun, dir string) (map[string]int, []string, error) {
	log := logger.FromContext(ctx)
	errorsBySymbol := map[string]int{}
	notes := []string{}

	files, err := ingest.ListStooqFiles(dir)
	if err != nil {
		return errorsBySymbol, notes, err
	}

	tx, err := h.Db.BeginTx(ctx, nil)
	if err != nil {
		return errorsBySymbol, notes, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		tx.Rollback()
	}()

	unreadable := 0
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return errorsBySymbol, notes, err
		}

		parsed, err := ingest.ParseStooqFile(f.Path)
		if err != nil {
			log.Warnw("skipping unreadable stooq file", "path", f.Path, "error", err)
			run.ErrorCount++
			unreadable++
			continue
		}

		_, err = h.TickerRepository.GetOrCreate(tx, model.Ticker{
			Symbol:   parsed.Symbol,
			Name:     parsed.Symbol,
			Exchange: f.Exchange,
		})
		if err != nil {
			return errorsBySymbol, notes, err
		}
		if err := h.PriceRepository.Add(tx, parsed.Prices); err != nil {
			return errorsBySymbol, notes, fmt.Errorf("failed to store %s: %w", f.Path, err)
		}

		errorsBySymbol[parsed.Symbol] += parsed.ErrorCount
		run.RecordsIngested += int32(len(parsed.Prices))
		run.ErrorCount += int32(parsed.ErrorCount)
		run.FilesProcessed++

		if (i+1)%stooqCommitEvery == 0 {
			if err := tx.Commit(); err != nil {
				return errorsBySymbol, notes, fmt.Errorf("failed to commit batch: %w", err)
			}
			if _, err := h.saveProgress(run); err != nil {
				log.Warnw("failed to save ingest progress", "error", err)
			}
			tx, err = h.Db.BeginTx(ctx, nil)
			if err != nil {
				return errorsBySymbol, notes, fmt.Errorf("failed to begin transaction: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errorsBySymbol, notes, fmt.Errorf("failed to commit batch: %w", err)
	}

	if unreadable > 0 {
		notes = append(notes, fmt.Sprintf("%d files could not be read", unreadable))
	}
	if len(files) == 0 {
		notes = append(notes, "no stooq files found")
	}

	return errorsBySymbol, notes, nil
}

func (h ingestServiceHandler) RefreshFromYahoo(ctx context.Context, symbols []string) (*model.IngestRun, error) {
	log := logger.FromContext(ctx)

	if len(symbols) == 0 {
		tickers, err := h.TickerRepository.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list tracked tickers: %w", err)
		}
		for _, t := range tickers {
			symbols = append(symbols, t.Symbol)
		}
	}

	run, err := h.startRun(ctx, model.IngestRunType_YahooRefresh, "yahoo")
	if err != nil {
		return nil, fmt.Errorf("failed to start yahoo refresh: %w", err)
	}

	now := h.Now()
	errorsBySymbol := map[string]int{}
	failures := []string{}
	for _, s := range symbols {
		symbol, err := normalizeSymbol(s)
		if err != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return h.finishRun(run, err, failures)
		}

		n, err := h.refreshSymbol(ctx, symbol, now)
		if err != nil {
			log.Warnw("failed to refresh symbol", "symbol", symbol, "error", err)
			errorsBySymbol[symbol] = 1
			run.ErrorCount++
			failures = append(failures, symbol)
			continue
		}
		if n > 0 {
			errorsBySymbol[symbol] = 0
		}
		run.RecordsIngested += int32(n)
	}

	var runErr error
	if len(symbols) > 0 && len(failures) == len(symbols) {
		runErr = fmt.Errorf("failed to refresh all %d symbols", len(symbols))
	} else if err := h.refreshFreshness(ctx, errorsBySymbol); err != nil {
		runErr = fmt.Errorf("failed to refresh data freshness: %w", err)
	}

	notes := []string{}
	if len(failures) > 0 {
		notes = append(notes, "failed symbols: "+strings.Join(failures, ","))
	}

	log.Infow(
		"finished yahoo refresh",
		"ingestRunID", run.IngestRunID.String(),
		"symbols", len(symbols),
		"records", run.RecordsIngested,
		"failed", len(failures),
	)

	return h.finishRun(run, runErr, notes)
}

// refreshSymbol fetches bars after the latest stored date
func (h ingestServiceHandler) refreshSymbol(ctx context.Context, symbol string, now time.Time) (int, error) {
	version, err := h.PriceRepository.GetSeriesVersion(ctx, symbol)
	if err != nil {
		return 0, err
	}

	start := defaultRefreshStart
	if version.LatestDate != nil {
		start = version.LatestDate.AddDate(0, 0, 1)
	}
	if start.After(now) {
		return 0, nil
	}

	bars, err := h.BarSource.DailyBars(ctx, symbol, start, now)
	if err != nil {
		return 0, err
	}
	if len(bars) == 0 {
		return 0, nil
	}

	if err := h.PriceRepository.Add(nil, bars); err != nil {
		return 0, err
	}

	return len(bars), nil
}

func (h ingestServiceHandler) GetRun(ctx context.Context, id uuid.UUID) (*model.IngestRun, error) {
	run, err := h.IngestRunRepository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("ingest run %s: %w", id.String(), domain.ErrNotFound)
	}
	return run, nil
}

func (h ingestServiceHandler) ListRuns(ctx context.Context) ([]model.IngestRun, error) {
	return h.IngestRunRepository.List(ctx)
}
