package calculator

import (
	"drawdowncycles/internal/domain"
	"drawdowncycles/internal/util"
	"time"
)

func filterRange(series []domain.PricePoint, start, end time.Time) []domain.PricePoint {
	out := []domain.PricePoint{}
	for _, p := range series {
		if util.DateLte(start, p.Date) && util.DateLte(p.Date, end) {
			out = append(out, p)
		}
	}
	return out
}

// AlignSeries inner joins two series on calendar date. when a series
// repeats a date the first close for that date wins
func AlignSeries(base, secondary []domain.PricePoint) []domain.AlignedPricePoint {
	secondaryByDate := map[string]domain.PricePoint{}
	for _, p := range secondary {
		key := p.Date.Format(time.DateOnly)
		if _, ok := secondaryByDate[key]; !ok {
			secondaryByDate[key] = p
		}
	}

	out := []domain.AlignedPricePoint{}
	seen := map[string]bool{}
	for _, p := range base {
		key := p.Date.Format(time.DateOnly)
		if seen[key] {
			continue
		}
		s, ok := secondaryByDate[key]
		if !ok {
			continue
		}
		seen[key] = true
		out = append(out, domain.AlignedPricePoint{
			Date:      util.ToDate(p.Date),
			Base:      p.Close,
			Secondary: s.Close,
		})
	}

	return out
}
