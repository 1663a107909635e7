package calculator

import (
	"drawdowncycles/internal/domain"
	"fmt"

	"github.com/montanaflynn/stats"
)

func floatPtr(f float64) *float64 {
	return &f
}

// SummarizeCycles reduces detected cycles to aggregate stats. it never
// errors on an empty list, the optional stats are left nil instead
func SummarizeCycles(cycles []domain.Cycle) (*domain.CycleSummary, error) {
	out := &domain.CycleSummary{
		TotalCycles:    len(cycles),
		SeverityCounts: map[domain.Severity]int{},
	}
	for _, s := range domain.SeverityAllValues {
		out.SeverityCounts[s] = 0
	}
	if len(cycles) == 0 {
		return out, nil
	}

	drawdowns := stats.Float64Data{}
	daysToLow := stats.Float64Data{}
	daysToRecovery := stats.Float64Data{}
	for _, c := range cycles {
		out.SeverityCounts[c.Severity]++
		drawdowns = append(drawdowns, c.DrawdownPct)
		daysToLow = append(daysToLow, float64(c.AthToLowDays))
		if c.IsOngoing() {
			out.OngoingCycles++
		} else if c.LowToRecoveryDays != nil {
			daysToRecovery = append(daysToRecovery, float64(*c.LowToRecoveryDays))
		}
	}

	avg, err := drawdowns.Mean()
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean drawdown: %w", err)
	}
	median, err := drawdowns.Median()
	if err != nil {
		return nil, fmt.Errorf("failed to compute median drawdown: %w", err)
	}
	// drawdowns are negative, so the deepest one is the min value
	deepest, err := drawdowns.Min()
	if err != nil {
		return nil, fmt.Errorf("failed to compute max drawdown: %w", err)
	}
	shallowest, err := drawdowns.Max()
	if err != nil {
		return nil, fmt.Errorf("failed to compute min drawdown: %w", err)
	}
	avgDaysToLow, err := daysToLow.Mean()
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean days to low: %w", err)
	}

	out.AvgDrawdownPct = floatPtr(avg)
	out.MedianDrawdownPct = floatPtr(median)
	out.MaxDrawdownPct = floatPtr(deepest)
	out.MinDrawdownPct = floatPtr(shallowest)
	out.AvgDaysToLow = floatPtr(avgDaysToLow)

	if len(daysToRecovery) > 0 {
		avgDaysToRecovery, err := daysToRecovery.Mean()
		if err != nil {
			return nil, fmt.Errorf("failed to compute mean days to recovery: %w", err)
		}
		out.AvgDaysToRecovery = floatPtr(avgDaysToRecovery)
	}

	return out, nil
}
