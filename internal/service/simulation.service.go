package service

import (
	"context"
	"drawdowncycles/internal/calculator"
	"drawdowncycles/internal/domain"
	"drawdowncycles/internal/logger"
	"drawdowncycles/internal/repository"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type SimulateInput struct {
	BaseSymbol        string
	SecondarySymbol   string
	InitialInvestment decimal.Decimal
	MonthlyInvestment decimal.Decimal
	StartDate         time.Time
	EndDate           time.Time
	ThresholdPct      float64
}

type SimulationService interface {
	Simulate(ctx context.Context, in SimulateInput) (*domain.SimulationResult, error)
}

type simulationServiceHandler struct {
	PriceRepository repository.HistoricalPriceRepository
}

func NewSimulationService(priceRepository repository.HistoricalPriceRepository) SimulationService {
	return simulationServiceHandler{
		PriceRepository: priceRepository,
	}
}

func (h simulationServiceHandler) Simulate(ctx context.Context, in SimulateInput) (*domain.SimulationResult, error) {
	profile := domain.ProfileFromContext(ctx)

	if err := ValidateThreshold(in.ThresholdPct); err != nil {
		return nil, err
	}
	baseSymbol, err := normalizeSymbol(in.BaseSymbol)
	if err != nil {
		return nil, err
	}
	secondarySymbol, err := normalizeSymbol(in.SecondarySymbol)
	if err != nil {
		return nil, err
	}

	var baseSeries, secondarySeries []domain.PricePoint
	_, endLoadSpan := profile.StartNewSpan("load price series")
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		series, err := h.PriceRepository.ListSeriesBetween(gctx, baseSymbol, in.StartDate, in.EndDate)
		if err != nil {
			return fmt.Errorf("failed to list base series %s: %w", baseSymbol, err)
		}
		baseSeries = series
		return nil
	})
	g.Go(func() error {
		series, err := h.PriceRepository.ListSeriesBetween(gctx, secondarySymbol, in.StartDate, in.EndDate)
		if err != nil {
			return fmt.Errorf("failed to list secondary series %s: %w", secondarySymbol, err)
		}
		secondarySeries = series
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	endLoadSpan()

	_, endSimulateSpan := profile.StartNewSpan("simulate strategies")
	result, err := calculator.Simulate(calculator.SimulateInput{
		BaseSymbol:          baseSymbol,
		SecondarySymbol:     secondarySymbol,
		BaseSeries:          baseSeries,
		SecondarySeries:     secondarySeries,
		InitialInvestment:   in.InitialInvestment,
		MonthlyContribution: in.MonthlyInvestment,
		StartDate:           in.StartDate,
		EndDate:             in.EndDate,
		ThresholdPct:        in.ThresholdPct,
	})
	endSimulateSpan()
	if err != nil {
		return nil, fmt.Errorf("failed to simulate %s against %s: %w", baseSymbol, secondarySymbol, err)
	}

	logger.FromContext(ctx).Infow(
		"simulated strategies",
		"strategy", result.StrategyLabel,
		"tradingDays", result.TradingDays,
		"switches", result.StrategySwitchCount,
	)

	return result, nil
}
