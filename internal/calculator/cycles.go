package calculator

import (
	"drawdowncycles/internal/domain"
	"drawdowncycles/internal/util"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type allTimeHigh struct {
	Date  time.Time
	Price decimal.Decimal
	Index int
}

// ValidateSeries rejects series that would produce silently wrong
// cycles: dates going backwards or closes that are not positive
func ValidateSeries(series []domain.PricePoint) error {
	for i, p := range series {
		if !p.Close.IsPositive() {
			return fmt.Errorf("close on %s must be positive, got %s: %w", p.Date.Format(time.DateOnly), p.Close.String(), domain.ErrInvalidInput)
		}
		if i > 0 && util.ToDate(p.Date).Before(util.ToDate(series[i-1].Date)) {
			return fmt.Errorf(
				"series is not ascending: %s follows %s: %w",
				p.Date.Format(time.DateOnly),
				series[i-1].Date.Format(time.DateOnly),
				domain.ErrInvalidInput,
			)
		}
	}
	return nil
}

func validateThreshold(thresholdPct float64) error {
	if math.IsNaN(thresholdPct) || math.IsInf(thresholdPct, 0) || thresholdPct <= 0 {
		return fmt.Errorf("threshold must be a positive percentage, got %v: %w", thresholdPct, domain.ErrInvalidInput)
	}
	return nil
}

func drawdownPct(price, ath decimal.Decimal) float64 {
	return price.Sub(ath).Div(ath).Mul(hundred).InexactFloat64()
}

// findAllTimeHighs returns every close that set a new running max, in
// order. a close equal to the running max does not start a new anchor
func findAllTimeHighs(series []domain.PricePoint) []allTimeHigh {
	if len(series) == 0 {
		return nil
	}

	out := []allTimeHigh{}
	current := allTimeHigh{
		Date:  series[0].Date,
		Price: series[0].Close,
		Index: 0,
	}
	for i := 1; i < len(series); i++ {
		if series[i].Close.GreaterThan(current.Price) {
			out = append(out, current)
			current = allTimeHigh{
				Date:  series[i].Date,
				Price: series[i].Close,
				Index: i,
			}
		}
	}
	// the last running max is never exceeded, so it was not recorded
	out = append(out, current)

	return out
}

// DetectCycles partitions the series into cycles anchored at successive
// all-time highs and returns the ones whose drawdown magnitude is strictly
// greater than thresholdPct. series with fewer than 2 points have no cycles
func DetectCycles(series []domain.PricePoint, thresholdPct float64) ([]domain.Cycle, error) {
	if err := validateThreshold(thresholdPct); err != nil {
		return nil, err
	}
	if err := ValidateSeries(series); err != nil {
		return nil, err
	}

	cycles := []domain.Cycle{}
	if len(series) < 2 {
		return cycles, nil
	}

	aths := findAllTimeHighs(series)
	for i, ath := range aths {
		windowEnd := len(series)
		if i+1 < len(aths) {
			windowEnd = aths[i+1].Index
		}
		if windowEnd-ath.Index < 2 {
			continue
		}

		lowIndex := ath.Index
		for j := ath.Index + 1; j < windowEnd; j++ {
			if series[j].Close.LessThan(series[lowIndex].Close) {
				lowIndex = j
			}
		}
		low := series[lowIndex]

		dd := drawdownPct(low.Close, ath.Price)
		if math.Abs(dd) <= thresholdPct {
			continue
		}

		cycle := domain.Cycle{
			CycleNumber:  len(cycles) + 1,
			Severity:     domain.NewSeverity(dd),
			AthDate:      ath.Date,
			AthPrice:     ath.Price,
			LowDate:      low.Date,
			LowPrice:     low.Close,
			DrawdownPct:  dd,
			AthToLowDays: util.DaysBetween(ath.Date, low.Date),
		}

		// not bounded by the next anchor, a recovery can be found
		// anywhere in the rest of the series
		for j := lowIndex; j < len(series); j++ {
			if series[j].Close.GreaterThanOrEqual(ath.Price) {
				recoveryDate := series[j].Date
				recoveryPrice := series[j].Close
				days := util.DaysBetween(low.Date, recoveryDate)
				cycle.RecoveryDate = &recoveryDate
				cycle.RecoveryPrice = &recoveryPrice
				cycle.LowToRecoveryDays = &days
				break
			}
		}

		cycles = append(cycles, cycle)
	}

	return cycles, nil
}

// DrawdownSeries annotates each point with the running all-time high
// and the percent decline from it
func DrawdownSeries(series []domain.PricePoint) ([]domain.DrawdownPoint, error) {
	if err := ValidateSeries(series); err != nil {
		return nil, err
	}

	out := make([]domain.DrawdownPoint, 0, len(series))
	if len(series) == 0 {
		return out, nil
	}

	runningAth := series[0].Close
	for _, p := range series {
		if p.Close.GreaterThan(runningAth) {
			runningAth = p.Close
		}
		out = append(out, domain.DrawdownPoint{
			Date:        p.Date,
			Close:       p.Close,
			RunningAth:  runningAth,
			DrawdownPct: drawdownPct(p.Close, runningAth),
		})
	}

	return out, nil
}
