package calculator

import (
	"drawdowncycles/internal/domain"
	"drawdowncycles/internal/util"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type SimulateInput struct {
	BaseSymbol      string
	SecondarySymbol string
	BaseSeries      []domain.PricePoint
	SecondarySeries []domain.PricePoint

	InitialInvestment   decimal.Decimal
	MonthlyContribution decimal.Decimal
	StartDate           time.Time
	EndDate             time.Time
	ThresholdPct        float64
}

func (in SimulateInput) validate() error {
	if err := validateThreshold(in.ThresholdPct); err != nil {
		return err
	}
	if !in.InitialInvestment.IsPositive() {
		return fmt.Errorf("initial investment must be positive, got %s: %w", in.InitialInvestment.String(), domain.ErrInvalidInput)
	}
	if in.MonthlyContribution.IsNegative() {
		return fmt.Errorf("monthly contribution cannot be negative, got %s: %w", in.MonthlyContribution.String(), domain.ErrInvalidInput)
	}
	if !util.ToDate(in.StartDate).Before(util.ToDate(in.EndDate)) {
		return fmt.Errorf(
			"start date %s must be before end date %s: %w",
			in.StartDate.Format(time.DateOnly),
			in.EndDate.Format(time.DateOnly),
			domain.ErrInvalidInput,
		)
	}
	if err := ValidateSeries(in.BaseSeries); err != nil {
		return fmt.Errorf("invalid base series %s: %w", in.BaseSymbol, err)
	}
	if err := ValidateSeries(in.SecondarySeries); err != nil {
		return fmt.Errorf("invalid secondary series %s: %w", in.SecondarySymbol, err)
	}
	return nil
}

type holding struct {
	instrument domain.InstrumentRole
	shares     decimal.Decimal
}

func (h holding) value(p domain.AlignedPricePoint) decimal.Decimal {
	return h.shares.Mul(p.Price(h.instrument))
}

func (h *holding) buy(amount decimal.Decimal, p domain.AlignedPricePoint) {
	h.shares = h.shares.Add(amount.Div(p.Price(h.instrument)))
}

// convert sells the whole position and buys the other instrument
// with the proceeds, at the same day's closes
func (h *holding) convert(to domain.InstrumentRole, p domain.AlignedPricePoint) decimal.Decimal {
	proceeds := h.value(p)
	h.instrument = to
	h.shares = proceeds.Div(p.Price(to))
	return proceeds
}

type strategyRun struct {
	final       holding
	dailyValues []decimal.Decimal
	switches    []domain.StrategySwitch
}

// runBuyAndHold keeps everything in one instrument for the whole window
func runBuyAndHold(
	instrument domain.InstrumentRole,
	aligned []domain.AlignedPricePoint,
	initial decimal.Decimal,
	contribution decimal.Decimal,
	contributionsByIndex map[int]int,
) strategyRun {
	h := holding{instrument: instrument, shares: decimal.Zero}
	h.buy(initial, aligned[0])

	values := make([]decimal.Decimal, 0, len(aligned))
	for i, p := range aligned {
		if n, ok := contributionsByIndex[i]; ok {
			h.buy(contribution.Mul(decimal.NewFromInt(int64(n))), p)
		}
		values = append(values, h.value(p))
	}

	return strategyRun{
		final:       h,
		dailyValues: values,
	}
}

// runSwitching starts in the base instrument, moves to the secondary once
// the base drawdown from its running ATH reaches the threshold, and moves
// back on the next base ATH. the ATH only considers prices inside the window
func runSwitching(
	aligned []domain.AlignedPricePoint,
	initial decimal.Decimal,
	contribution decimal.Decimal,
	contributionsByIndex map[int]int,
	thresholdPct float64,
) strategyRun {
	h := holding{instrument: domain.InstrumentRole_Base, shares: decimal.Zero}
	h.buy(initial, aligned[0])
	ath := aligned[0].Base

	values := make([]decimal.Decimal, 0, len(aligned))
	switches := []domain.StrategySwitch{}
	recordSwitch := func(p domain.AlignedPricePoint, from, to domain.InstrumentRole, value decimal.Decimal) {
		switches = append(switches, domain.StrategySwitch{
			Date:           p.Date,
			From:           from,
			To:             to,
			BasePrice:      p.Base,
			SecondaryPrice: p.Secondary,
			ValueAtSwitch:  value,
		})
	}

	for i, p := range aligned {
		// contributions go in before the day's switch checks
		if n, ok := contributionsByIndex[i]; ok {
			h.buy(contribution.Mul(decimal.NewFromInt(int64(n))), p)
		}

		newAth := p.Base.GreaterThan(ath)
		if newAth {
			ath = p.Base
		}

		if h.instrument == domain.InstrumentRole_Secondary && newAth {
			value := h.convert(domain.InstrumentRole_Base, p)
			recordSwitch(p, domain.InstrumentRole_Secondary, domain.InstrumentRole_Base, value)
		}

		if h.instrument == domain.InstrumentRole_Base && drawdownPct(p.Base, ath) <= -thresholdPct {
			value := h.convert(domain.InstrumentRole_Secondary, p)
			recordSwitch(p, domain.InstrumentRole_Base, domain.InstrumentRole_Secondary, value)
		}

		values = append(values, h.value(p))
	}

	return strategyRun{
		final:       h,
		dailyValues: values,
		switches:    switches,
	}
}

func strategyLabel(in SimulateInput) string {
	return fmt.Sprintf(
		"%s → %s @ %s%%",
		in.BaseSymbol,
		in.SecondarySymbol,
		strconv.FormatFloat(in.ThresholdPct, 'f', -1, 64),
	)
}

// Simulate replays the aligned base and secondary series and values three
// strategies on the same data and contribution schedule: base only,
// secondary only, and switching between them on base drawdowns
func Simulate(in SimulateInput) (*domain.SimulationResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	start := util.ToDate(in.StartDate)
	end := util.ToDate(in.EndDate)

	base := filterRange(in.BaseSeries, start, end)
	if len(base) == 0 {
		return nil, fmt.Errorf("no data in range for base series %s between %s and %s: %w", in.BaseSymbol, start.Format(time.DateOnly), end.Format(time.DateOnly), domain.ErrInsufficientData)
	}
	secondary := filterRange(in.SecondarySeries, start, end)
	if len(secondary) == 0 {
		return nil, fmt.Errorf("no data in range for secondary series %s between %s and %s: %w", in.SecondarySymbol, start.Format(time.DateOnly), end.Format(time.DateOnly), domain.ErrInsufficientData)
	}

	aligned := AlignSeries(base, secondary)
	if len(aligned) == 0 {
		return nil, fmt.Errorf("no common trading days for %s and %s between %s and %s: %w", in.BaseSymbol, in.SecondarySymbol, start.Format(time.DateOnly), end.Format(time.DateOnly), domain.ErrInsufficientData)
	}

	dueDates := []time.Time{}
	if in.MonthlyContribution.IsPositive() {
		dueDates = MonthlyContributionDates(start, end)
	}
	contributionsByIndex := scheduleContributions(dueDates, aligned)

	totalInvested := in.InitialInvestment.Add(
		in.MonthlyContribution.Mul(decimal.NewFromInt(int64(len(dueDates)))),
	)
	durationDays := util.DaysBetween(start, end)
	years := float64(durationDays) / daysPerYear

	runs := []struct {
		role   domain.StrategyRole
		result strategyRun
	}{
		{
			role:   domain.StrategyRole_Base,
			result: runBuyAndHold(domain.InstrumentRole_Base, aligned, in.InitialInvestment, in.MonthlyContribution, contributionsByIndex),
		},
		{
			role:   domain.StrategyRole_Secondary,
			result: runBuyAndHold(domain.InstrumentRole_Secondary, aligned, in.InitialInvestment, in.MonthlyContribution, contributionsByIndex),
		},
		{
			role:   domain.StrategyRole_Switching,
			result: runSwitching(aligned, in.InitialInvestment, in.MonthlyContribution, contributionsByIndex, in.ThresholdPct),
		},
	}

	last := aligned[len(aligned)-1]
	strategies := []domain.StrategyMetrics{}
	var switches []domain.StrategySwitch
	for _, r := range runs {
		symbol := in.BaseSymbol
		if r.result.final.instrument == domain.InstrumentRole_Secondary {
			symbol = in.SecondarySymbol
		}
		metrics, err := CalculateMetrics(CalculateMetricsInput{
			Role:           r.role,
			Symbol:         symbol,
			HeldInstrument: r.result.final.instrument,
			SharesHeld:     r.result.final.shares,
			FinalValue:     r.result.final.value(last),
			TotalInvested:  totalInvested,
			Years:          years,
			DailyValues:    r.result.dailyValues,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s strategy metrics: %w", r.role, err)
		}
		strategies = append(strategies, *metrics)
		if r.role == domain.StrategyRole_Switching {
			switches = r.result.switches
		}
	}

	return &domain.SimulationResult{
		BaseSymbol:          in.BaseSymbol,
		SecondarySymbol:     in.SecondarySymbol,
		StartDate:           start,
		EndDate:             end,
		InitialInvestment:   in.InitialInvestment,
		MonthlyInvestment:   in.MonthlyContribution,
		TotalInvested:       totalInvested,
		ContributionCount:   len(dueDates),
		StrategyLabel:       strategyLabel(in),
		Strategies:          strategies,
		StrategySwitchCount: len(switches),
		Switches:            switches,
		TradingDays:         len(aligned),
		DurationDays:        durationDays,
		DurationYears:       years,
	}, nil
}
