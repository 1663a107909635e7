package calculator

import (
	"drawdowncycles/internal/domain"
	"drawdowncycles/internal/util"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// closeOnOrBefore returns the last close in the series dated on or
// before t, or nil if the series starts after t
func closeOnOrBefore(series []domain.PricePoint, t time.Time) *decimal.Decimal {
	target := util.ToDate(t)
	i := sort.Search(len(series), func(i int) bool {
		return util.ToDate(series[i].Date).After(target)
	})
	if i == 0 {
		return nil
	}
	price := series[i-1].Close
	return &price
}

// CompareCycles looks up the secondary instrument's closes on each base
// cycle's ATH, low and recovery dates. a secondary series that starts
// late leaves the early fields nil rather than failing
func CompareCycles(cycles []domain.Cycle, secondary []domain.PricePoint) ([]domain.CycleComparison, error) {
	if err := ValidateSeries(secondary); err != nil {
		return nil, err
	}

	out := make([]domain.CycleComparison, 0, len(cycles))
	for _, c := range cycles {
		comparison := domain.CycleComparison{
			Cycle:             c,
			SecondaryAthPrice: closeOnOrBefore(secondary, c.AthDate),
			SecondaryLowPrice: closeOnOrBefore(secondary, c.LowDate),
		}
		if c.RecoveryDate != nil {
			comparison.SecondaryRecoveryPrice = closeOnOrBefore(secondary, *c.RecoveryDate)
		}
		if comparison.SecondaryAthPrice != nil && comparison.SecondaryLowPrice != nil {
			dd := drawdownPct(*comparison.SecondaryLowPrice, *comparison.SecondaryAthPrice)
			comparison.SecondaryDrawdownPct = &dd
		}
		out = append(out, comparison)
	}

	return out, nil
}
