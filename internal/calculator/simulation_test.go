package calculator

import (
	"drawdowncycles/internal/domain"
	"drawdowncycles/internal/util"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func flatSeries(start, end time.Time, close float64) []domain.PricePoint {
	out := []domain.PricePoint{}
	for d := start; util.DateLte(d, end); d = d.AddDate(0, 0, 1) {
		out = append(out, domain.PricePoint{Date: d, Close: decimal.NewFromFloat(close)})
	}
	return out
}

func TestSimulate(t *testing.T) {
	d1 := util.NewDate(2020, 1, 1)

	t.Run("no breach means switching equals base only", func(t *testing.T) {
		closes := []float64{}
		for i := 0; i < 10; i++ {
			closes = append(closes, 100)
		}
		closes = append(closes, 90)
		base := newSeries(d1, closes...)
		secondary := newSeries(d1, 50, 51, 52, 53, 54, 55, 56, 57, 58, 59, 60)

		result, err := Simulate(SimulateInput{
			BaseSymbol:          "SPY",
			SecondarySymbol:     "QQQ",
			BaseSeries:          base,
			SecondarySeries:     secondary,
			InitialInvestment:   decimal.NewFromInt(10000),
			MonthlyContribution: decimal.Zero,
			StartDate:           d1,
			EndDate:             base[len(base)-1].Date,
			ThresholdPct:        15,
		})
		require.NoError(t, err)

		baseOnly := result.Strategy(domain.StrategyRole_Base)
		switching := result.Strategy(domain.StrategyRole_Switching)
		require.True(t, baseOnly.FinalValue.Equal(switching.FinalValue))
		require.True(t, decimal.NewFromInt(9000).Equal(baseOnly.FinalValue))
		require.Equal(t, 0, result.StrategySwitchCount)
		require.Empty(t, result.Switches)
		require.Equal(t, domain.InstrumentRole_Base, switching.HeldInstrument)
		require.Equal(t, "SPY", switching.Symbol)
		require.Equal(t, -10.0, baseOnly.TotalReturnPct)
		require.Equal(t, -10.0, baseOnly.MaxDrawdownPct)

		secondaryOnly := result.Strategy(domain.StrategyRole_Secondary)
		require.True(t, decimal.NewFromInt(12000).Equal(secondaryOnly.FinalValue))
		require.True(t, decimal.NewFromInt(200).Equal(secondaryOnly.SharesHeld))
		require.Equal(t, "QQQ", secondaryOnly.Symbol)

		require.Equal(t, "SPY → QQQ @ 15%", result.StrategyLabel)
		require.Equal(t, 11, result.TradingDays)
		require.Equal(t, 10, result.DurationDays)
		require.True(t, decimal.NewFromInt(10000).Equal(result.TotalInvested))
		require.Equal(t, 0, result.ContributionCount)
	})

	t.Run("switches to secondary and back", func(t *testing.T) {
		base := newSeries(d1, 100, 80, 90, 110)
		secondary := newSeries(d1, 50, 40, 60, 60)

		result, err := Simulate(SimulateInput{
			BaseSymbol:          "SPY",
			SecondarySymbol:     "TQQQ",
			BaseSeries:          base,
			SecondarySeries:     secondary,
			InitialInvestment:   decimal.NewFromInt(1000),
			MonthlyContribution: decimal.Zero,
			StartDate:           d1,
			EndDate:             base[3].Date,
			ThresholdPct:        15,
		})
		require.NoError(t, err)

		require.Equal(t, 2, result.StrategySwitchCount)
		require.Equal(
			t,
			"",
			cmp.Diff(
				[]domain.StrategySwitch{
					{
						Date:           base[1].Date,
						From:           domain.InstrumentRole_Base,
						To:             domain.InstrumentRole_Secondary,
						BasePrice:      decimal.NewFromInt(80),
						SecondaryPrice: decimal.NewFromInt(40),
						ValueAtSwitch:  decimal.NewFromInt(800),
					},
					{
						Date:           base[3].Date,
						From:           domain.InstrumentRole_Secondary,
						To:             domain.InstrumentRole_Base,
						BasePrice:      decimal.NewFromInt(110),
						SecondaryPrice: decimal.NewFromInt(60),
						ValueAtSwitch:  decimal.NewFromInt(1200),
					},
				},
				result.Switches,
			),
		)

		switching := result.Strategy(domain.StrategyRole_Switching)
		require.Equal(t, domain.InstrumentRole_Base, switching.HeldInstrument)
		require.InDelta(t, 1200, switching.FinalValue.InexactFloat64(), 0.0001)
		require.InDelta(t, -20, switching.MaxDrawdownPct, 0.0001)

		require.True(t, decimal.NewFromInt(1100).Equal(result.Strategy(domain.StrategyRole_Base).FinalValue))
		require.True(t, decimal.NewFromInt(1200).Equal(result.Strategy(domain.StrategyRole_Secondary).FinalValue))
	})

	t.Run("still in secondary at the end", func(t *testing.T) {
		base := newSeries(d1, 100, 70, 75)
		secondary := newSeries(d1, 10, 10, 12)

		result, err := Simulate(SimulateInput{
			BaseSymbol:          "SPY",
			SecondarySymbol:     "BND",
			BaseSeries:          base,
			SecondarySeries:     secondary,
			InitialInvestment:   decimal.NewFromInt(1000),
			MonthlyContribution: decimal.Zero,
			StartDate:           d1,
			EndDate:             base[2].Date,
			ThresholdPct:        20,
		})
		require.NoError(t, err)

		switching := result.Strategy(domain.StrategyRole_Switching)
		require.Equal(t, 1, result.StrategySwitchCount)
		require.Equal(t, domain.InstrumentRole_Secondary, switching.HeldInstrument)
		require.Equal(t, "BND", switching.Symbol)
		require.True(t, decimal.NewFromInt(70).Equal(switching.SharesHeld))
		require.True(t, decimal.NewFromInt(840).Equal(switching.FinalValue))
	})

	t.Run("monthly contributions over a 25 month window", func(t *testing.T) {
		start := util.NewDate(2020, 1, 1)
		end := util.NewDate(2022, 1, 31)

		result, err := Simulate(SimulateInput{
			BaseSymbol:          "SPY",
			SecondarySymbol:     "QQQ",
			BaseSeries:          flatSeries(start, end, 100),
			SecondarySeries:     flatSeries(start, end, 25),
			InitialInvestment:   decimal.NewFromInt(1000),
			MonthlyContribution: decimal.NewFromInt(100),
			StartDate:           start,
			EndDate:             end,
			ThresholdPct:        10,
		})
		require.NoError(t, err)

		require.Equal(t, 24, result.ContributionCount)
		require.True(t, decimal.NewFromInt(3400).Equal(result.TotalInvested))
		for _, s := range result.Strategies {
			require.True(t, decimal.NewFromInt(3400).Equal(s.FinalValue), s.Role)
			require.True(t, s.TotalReturn.IsZero(), s.Role)
			require.Equal(t, 0.0, s.AnnualizedReturn, s.Role)
		}
		require.True(t, decimal.NewFromInt(34).Equal(result.Strategy(domain.StrategyRole_Base).SharesHeld))
		require.True(t, decimal.NewFromInt(136).Equal(result.Strategy(domain.StrategyRole_Secondary).SharesHeld))
	})

	t.Run("annualized return", func(t *testing.T) {
		start := util.NewDate(2020, 1, 1)
		end := util.NewDate(2022, 1, 1)
		base := []domain.PricePoint{
			{Date: start, Close: decimal.NewFromInt(100)},
			{Date: end, Close: decimal.NewFromInt(200)},
		}

		result, err := Simulate(SimulateInput{
			BaseSymbol:          "SPY",
			SecondarySymbol:     "QQQ",
			BaseSeries:          base,
			SecondarySeries:     base,
			InitialInvestment:   decimal.NewFromInt(1000),
			MonthlyContribution: decimal.Zero,
			StartDate:           start,
			EndDate:             end,
			ThresholdPct:        10,
		})
		require.NoError(t, err)

		require.Equal(t, 731, result.DurationDays)
		years := 731 / 365.25
		require.InDelta(t, years, result.DurationYears, 1e-9)
		expected := (math.Pow(2, 1/years) - 1) * 100
		require.InDelta(t, expected, result.Strategy(domain.StrategyRole_Base).AnnualizedReturn, 1e-6)
		require.Equal(t, 100.0, result.Strategy(domain.StrategyRole_Base).TotalReturnPct)
	})

	t.Run("only common dates are traded", func(t *testing.T) {
		base := newSeries(d1, 100, 101, 102, 103)
		secondary := []domain.PricePoint{
			{Date: d1, Close: decimal.NewFromInt(10)},
			{Date: d1.AddDate(0, 0, 2), Close: decimal.NewFromInt(11)},
			{Date: d1.AddDate(0, 0, 5), Close: decimal.NewFromInt(12)},
		}

		result, err := Simulate(SimulateInput{
			BaseSymbol:          "A",
			SecondarySymbol:     "B",
			BaseSeries:          base,
			SecondarySeries:     secondary,
			InitialInvestment:   decimal.NewFromInt(100),
			MonthlyContribution: decimal.Zero,
			StartDate:           d1,
			EndDate:             d1.AddDate(0, 0, 10),
			ThresholdPct:        10,
		})
		require.NoError(t, err)
		require.Equal(t, 2, result.TradingDays)
		require.True(t, decimal.NewFromInt(102).Equal(result.Strategy(domain.StrategyRole_Base).FinalValue))
	})

	t.Run("invalid inputs", func(t *testing.T) {
		valid := SimulateInput{
			BaseSymbol:          "A",
			SecondarySymbol:     "B",
			BaseSeries:          newSeries(d1, 1, 2),
			SecondarySeries:     newSeries(d1, 1, 2),
			InitialInvestment:   decimal.NewFromInt(100),
			MonthlyContribution: decimal.Zero,
			StartDate:           d1,
			EndDate:             d1.AddDate(0, 0, 1),
			ThresholdPct:        10,
		}

		cases := map[string]func(in *SimulateInput){
			"zero initial":          func(in *SimulateInput) { in.InitialInvestment = decimal.Zero },
			"negative monthly":      func(in *SimulateInput) { in.MonthlyContribution = decimal.NewFromInt(-1) },
			"start equals end":      func(in *SimulateInput) { in.EndDate = in.StartDate },
			"start after end":       func(in *SimulateInput) { in.StartDate = d1.AddDate(0, 0, 5) },
			"zero threshold":        func(in *SimulateInput) { in.ThresholdPct = 0 },
			"unsorted base series":  func(in *SimulateInput) { in.BaseSeries = []domain.PricePoint{in.BaseSeries[1], in.BaseSeries[0]} },
			"bad secondary closing": func(in *SimulateInput) { in.SecondarySeries = newSeries(d1, 0, 1) },
		}
		for name, mutate := range cases {
			in := valid
			mutate(&in)
			_, err := Simulate(in)
			require.True(t, errors.Is(err, domain.ErrInvalidInput), name)
		}
	})

	t.Run("insufficient data", func(t *testing.T) {
		in := SimulateInput{
			BaseSymbol:          "A",
			SecondarySymbol:     "B",
			BaseSeries:          newSeries(d1, 1, 2),
			SecondarySeries:     newSeries(d1.AddDate(1, 0, 0), 1, 2),
			InitialInvestment:   decimal.NewFromInt(100),
			MonthlyContribution: decimal.Zero,
			StartDate:           d1,
			EndDate:             d1.AddDate(0, 0, 1),
			ThresholdPct:        10,
		}
		_, err := Simulate(in)
		require.True(t, errors.Is(err, domain.ErrInsufficientData))
		require.True(t, strings.Contains(err.Error(), "secondary series B"))

		in.BaseSeries = nil
		_, err = Simulate(in)
		require.True(t, errors.Is(err, domain.ErrInsufficientData))
		require.True(t, strings.Contains(err.Error(), "base series A"))

		in.BaseSeries = newSeries(d1, 1, 2)
		in.SecondarySeries = []domain.PricePoint{{Date: d1.AddDate(0, 0, 1), Close: decimal.NewFromInt(1)}}
		in.BaseSeries = in.BaseSeries[:1]
		_, err = Simulate(in)
		require.True(t, errors.Is(err, domain.ErrInsufficientData))
		require.True(t, strings.Contains(err.Error(), "no common trading days"))
	})

	t.Run("one day window with large growth is an arithmetic guard error", func(t *testing.T) {
		result, err := Simulate(SimulateInput{
			BaseSymbol:          "SPY",
			SecondarySymbol:     "TQQQ",
			BaseSeries:          newSeries(d1, 100, 100),
			SecondarySeries:     newSeries(d1, 1, 20),
			InitialInvestment:   decimal.NewFromInt(1000),
			MonthlyContribution: decimal.Zero,
			StartDate:           d1,
			EndDate:             d1.AddDate(0, 0, 1),
			ThresholdPct:        10,
		})
		require.Nil(t, result)
		require.True(t, errors.Is(err, domain.ErrArithmeticGuard))
	})
}

func TestMonthlyContributionDates(t *testing.T) {
	t.Run("mid month start", func(t *testing.T) {
		dates := MonthlyContributionDates(util.NewDate(2021, 11, 15), util.NewDate(2022, 2, 1))
		require.Equal(
			t,
			[]time.Time{
				util.NewDate(2021, 12, 1),
				util.NewDate(2022, 1, 1),
				util.NewDate(2022, 2, 1),
			},
			dates,
		)
	})

	t.Run("window inside one month", func(t *testing.T) {
		dates := MonthlyContributionDates(util.NewDate(2021, 3, 1), util.NewDate(2021, 3, 31))
		require.Empty(t, dates)
	})
}

func Test_scheduleContributions(t *testing.T) {
	aligned := []domain.AlignedPricePoint{
		{Date: util.NewDate(2020, 1, 31)},
		{Date: util.NewDate(2020, 2, 3)},
		{Date: util.NewDate(2020, 3, 2)},
	}

	t.Run("weekend due date rolls forward", func(t *testing.T) {
		out := scheduleContributions([]time.Time{util.NewDate(2020, 2, 1)}, aligned)
		require.Equal(t, map[int]int{1: 1}, out)
	})

	t.Run("gaps stack on the next trading day", func(t *testing.T) {
		out := scheduleContributions(
			[]time.Time{
				util.NewDate(2020, 2, 1),
				util.NewDate(2020, 3, 1),
				util.NewDate(2020, 4, 1),
				util.NewDate(2020, 5, 1),
			},
			aligned,
		)
		require.Equal(t, map[int]int{1: 1, 2: 3}, out)
	})

	t.Run("no aligned points", func(t *testing.T) {
		out := scheduleContributions([]time.Time{util.NewDate(2020, 2, 1)}, nil)
		require.Empty(t, out)
	})
}
