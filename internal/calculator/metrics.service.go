package calculator

import (
	"drawdowncycles/internal/domain"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const daysPerYear = 365.25

type CalculateMetricsInput struct {
	Role           domain.StrategyRole
	Symbol         string
	HeldInstrument domain.InstrumentRole
	SharesHeld     decimal.Decimal
	FinalValue     decimal.Decimal
	TotalInvested  decimal.Decimal
	Years          float64
	// market value of the position on every aligned day
	DailyValues []decimal.Decimal
}

// CalculateMetrics derives return figures for one strategy. totalInvested
// and years must both be positive, they are checked here as well so a
// bad caller gets an error instead of NaN or Inf
func CalculateMetrics(in CalculateMetricsInput) (*domain.StrategyMetrics, error) {
	if !in.TotalInvested.IsPositive() {
		return nil, fmt.Errorf("total invested must be positive, got %s: %w", in.TotalInvested.String(), domain.ErrArithmeticGuard)
	}
	if in.Years <= 0 || math.IsNaN(in.Years) || math.IsInf(in.Years, 0) {
		return nil, fmt.Errorf("duration in years must be positive, got %v: %w", in.Years, domain.ErrArithmeticGuard)
	}

	totalReturn := in.FinalValue.Sub(in.TotalInvested)
	totalReturnPct := totalReturn.Div(in.TotalInvested).Mul(hundred).InexactFloat64()
	growth := in.FinalValue.Div(in.TotalInvested).InexactFloat64()
	annualizedReturn := (math.Pow(growth, 1/in.Years) - 1) * 100
	if math.IsNaN(annualizedReturn) || math.IsInf(annualizedReturn, 0) {
		return nil, fmt.Errorf("annualized return overflows for growth %v over %v years: %w", growth, in.Years, domain.ErrArithmeticGuard)
	}

	return &domain.StrategyMetrics{
		Role:             in.Role,
		Symbol:           in.Symbol,
		HeldInstrument:   in.HeldInstrument,
		SharesHeld:       in.SharesHeld,
		FinalValue:       in.FinalValue,
		TotalReturn:      totalReturn,
		TotalReturnPct:   totalReturnPct,
		AnnualizedReturn: annualizedReturn,
		MaxDrawdownPct:   maxDrawdownPct(in.DailyValues),
	}, nil
}

// maxDrawdownPct is the deepest peak to trough decline of the value
// curve, as a non-positive percent
func maxDrawdownPct(values []decimal.Decimal) float64 {
	if len(values) == 0 {
		return 0
	}

	deepest := 0.0
	peak := values[0]
	for _, v := range values {
		if v.GreaterThan(peak) {
			peak = v
		}
		if !peak.IsPositive() {
			continue
		}
		dd := drawdownPct(v, peak)
		if dd < deepest {
			deepest = dd
		}
	}

	return deepest
}
