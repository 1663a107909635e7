package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type StrategyRole string

const (
	StrategyRole_Base      StrategyRole = "base"
	StrategyRole_Secondary StrategyRole = "secondary"
	StrategyRole_Switching StrategyRole = "switching"
)

type StrategyMetrics struct {
	Role StrategyRole
	// symbol of the instrument held at the end of the simulation
	Symbol         string
	HeldInstrument InstrumentRole
	SharesHeld     decimal.Decimal

	FinalValue       decimal.Decimal
	TotalReturn      decimal.Decimal
	TotalReturnPct   float64
	AnnualizedReturn float64
	MaxDrawdownPct   float64
}

type StrategySwitch struct {
	Date           time.Time
	From           InstrumentRole
	To             InstrumentRole
	BasePrice      decimal.Decimal
	SecondaryPrice decimal.Decimal
	ValueAtSwitch  decimal.Decimal
}

type SimulationResult struct {
	BaseSymbol      string
	SecondarySymbol string
	StartDate       time.Time
	EndDate         time.Time

	InitialInvestment decimal.Decimal
	MonthlyInvestment decimal.Decimal
	TotalInvested     decimal.Decimal
	ContributionCount int

	StrategyLabel       string
	Strategies          []StrategyMetrics
	StrategySwitchCount int
	Switches            []StrategySwitch

	TradingDays   int
	DurationDays  int
	DurationYears float64
}

func (r SimulationResult) Strategy(role StrategyRole) *StrategyMetrics {
	for i := range r.Strategies {
		if r.Strategies[i].Role == role {
			return &r.Strategies[i]
		}
	}
	return nil
}
