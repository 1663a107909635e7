package calculator

import (
	"drawdowncycles/internal/domain"
	"drawdowncycles/internal/util"
	"time"
)

// MonthlyContributionDates returns the first of every month after the
// start month, up to and including end
func MonthlyContributionDates(start, end time.Time) []time.Time {
	out := []time.Time{}
	for d := util.FirstOfNextMonth(start); util.DateLte(d, end); d = d.AddDate(0, 1, 0) {
		out = append(out, d)
	}
	return out
}

// scheduleContributions maps each due date to the index of the first
// aligned point on or after it. dates past the last point land on the
// last point. the result counts contributions per index
func scheduleContributions(dueDates []time.Time, aligned []domain.AlignedPricePoint) map[int]int {
	out := map[int]int{}
	if len(aligned) == 0 {
		return out
	}

	i := 0
	for _, due := range dueDates {
		for i < len(aligned) && !util.DateLte(due, aligned[i].Date) {
			i++
		}
		if i == len(aligned) {
			out[len(aligned)-1]++
		} else {
			out[i]++
		}
	}

	return out
}
