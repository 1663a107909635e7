package service

import (
	"context"
	"drawdowncycles/internal/calculator"
	"drawdowncycles/internal/domain"
	"drawdowncycles/internal/logger"
	"drawdowncycles/internal/repository"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	MinThresholdPct = 0.1
	MaxThresholdPct = 50.0
)

// ValidateThreshold enforces the range accepted from API and CLI callers.
// the calculator itself accepts any positive threshold
func ValidateThreshold(thresholdPct float64) error {
	if math.IsNaN(thresholdPct) || thresholdPct < MinThresholdPct || thresholdPct > MaxThresholdPct {
		return fmt.Errorf("threshold must be between %v and %v, got %v: %w", MinThresholdPct, MaxThresholdPct, thresholdPct, domain.ErrInvalidInput)
	}
	return nil
}

func normalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return "", fmt.Errorf("symbol is required: %w", domain.ErrInvalidInput)
	}
	return s, nil
}

type CycleService interface {
	ComputeCycles(ctx context.Context, symbol string, thresholdPct float64) ([]domain.Cycle, error)
	ComputeSummary(ctx context.Context, symbol string, thresholdPct float64) (*domain.CycleSummary, error)
	CompareCycles(ctx context.Context, baseSymbol, secondarySymbol string, thresholdPct float64) ([]domain.CycleComparison, error)
	GetDrawdownSeries(ctx context.Context, symbol string, start, end *time.Time) ([]domain.DrawdownPoint, error)
	ListSymbols(ctx context.Context) ([]domain.SymbolStats, error)
}

type cycleServiceHandler struct {
	PriceRepository repository.HistoricalPriceRepository
	Cache           *CycleCache
}

func NewCycleService(priceRepository repository.HistoricalPriceRepository, cache *CycleCache) CycleService {
	return cycleServiceHandler{
		PriceRepository: priceRepository,
		Cache:           cache,
	}
}

func (h cycleServiceHandler) ComputeCycles(ctx context.Context, symbol string, thresholdPct float64) ([]domain.Cycle, error) {
	if err := ValidateThreshold(thresholdPct); err != nil {
		return nil, err
	}
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	version, err := h.PriceRepository.GetSeriesVersion(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get series version: %w", err)
	}

	cycles, err := h.Cache.GetOrCompute(symbol, thresholdPct, *version, func() ([]domain.Cycle, error) {
		series, err := h.PriceRepository.ListSeries(ctx, symbol)
		if err != nil {
			return nil, fmt.Errorf("failed to list series: %w", err)
		}
		cycles, err := calculator.DetectCycles(series, thresholdPct)
		if err != nil {
			return nil, fmt.Errorf("failed to detect cycles for %s: %w", symbol, err)
		}
		logger.FromContext(ctx).Infow(
			"detected cycles",
			"symbol", symbol,
			"thresholdPct", thresholdPct,
			"numPoints", len(series),
			"numCycles", len(cycles),
		)
		return cycles, nil
	})
	if err != nil {
		return nil, err
	}

	return cycles, nil
}

func (h cycleServiceHandler) ComputeSummary(ctx context.Context, symbol string, thresholdPct float64) (*domain.CycleSummary, error) {
	cycles, err := h.ComputeCycles(ctx, symbol, thresholdPct)
	if err != nil {
		return nil, err
	}

	summary, err := calculator.SummarizeCycles(cycles)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize cycles: %w", err)
	}

	return summary, nil
}

func (h cycleServiceHandler) CompareCycles(ctx context.Context, baseSymbol, secondarySymbol string, thresholdPct float64) ([]domain.CycleComparison, error) {
	cycles, err := h.ComputeCycles(ctx, baseSymbol, thresholdPct)
	if err != nil {
		return nil, err
	}
	secondarySymbol, err = normalizeSymbol(secondarySymbol)
	if err != nil {
		return nil, err
	}

	secondary, err := h.PriceRepository.ListSeries(ctx, secondarySymbol)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}

	comparisons, err := calculator.CompareCycles(cycles, secondary)
	if err != nil {
		return nil, fmt.Errorf("failed to compare cycles against %s: %w", secondarySymbol, err)
	}

	return comparisons, nil
}

func (h cycleServiceHandler) GetDrawdownSeries(ctx context.Context, symbol string, start, end *time.Time) ([]domain.DrawdownPoint, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, fmt.Errorf("start date %s is after end date %s: %w", start.Format(time.DateOnly), end.Format(time.DateOnly), domain.ErrInvalidInput)
	}

	var series []domain.PricePoint
	if start == nil && end == nil {
		series, err = h.PriceRepository.ListSeries(ctx, symbol)
	} else {
		from := time.Time{}
		to := time.Now().UTC()
		if start != nil {
			from = *start
		}
		if end != nil {
			to = *end
		}
		series, err = h.PriceRepository.ListSeriesBetween(ctx, symbol, from, to)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}

	return calculator.DrawdownSeries(series)
}

func (h cycleServiceHandler) ListSymbols(ctx context.Context) ([]domain.SymbolStats, error) {
	stats, err := h.PriceRepository.ListSymbolStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list symbols: %w", err)
	}
	return stats, nil
}
