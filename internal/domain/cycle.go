package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type Severity string

const (
	Severity_Mild     Severity = "mild"
	Severity_Moderate Severity = "moderate"
	Severity_Severe   Severity = "severe"
)

var SeverityAllValues = []Severity{
	Severity_Mild,
	Severity_Moderate,
	Severity_Severe,
}

// NewSeverity buckets a drawdown by magnitude. a drawdown of exactly
// 10% or exactly 20% is moderate
func NewSeverity(drawdownPct float64) Severity {
	magnitude := math.Abs(drawdownPct)
	if magnitude > 20 {
		return Severity_Severe
	} else if magnitude >= 10 {
		return Severity_Moderate
	}
	return Severity_Mild
}

// Cycle is one all-time-high -> trough -> (optional) recovery episode
type Cycle struct {
	CycleNumber int
	Severity    Severity

	AthDate  time.Time
	AthPrice decimal.Decimal

	LowDate  time.Time
	LowPrice decimal.Decimal

	DrawdownPct float64

	// nil while the cycle is ongoing
	RecoveryDate  *time.Time
	RecoveryPrice *decimal.Decimal

	AthToLowDays      int
	LowToRecoveryDays *int
}

func (c Cycle) IsOngoing() bool {
	return c.RecoveryDate == nil
}

// CycleSummary aggregates a list of cycles. the drawdown stats are nil
// when there are no cycles, and AvgDaysToRecovery is nil when none of
// the cycles recovered
type CycleSummary struct {
	TotalCycles   int
	OngoingCycles int

	AvgDrawdownPct    *float64
	MedianDrawdownPct *float64
	// deepest drawdown, i.e. the most negative value
	MaxDrawdownPct *float64
	// shallowest drawdown
	MinDrawdownPct *float64

	AvgDaysToLow      *float64
	AvgDaysToRecovery *float64

	SeverityCounts map[Severity]int
}

// CycleComparison pairs a base cycle with the secondary instrument's
// closes on the cycle's key dates
type CycleComparison struct {
	Cycle Cycle

	SecondaryAthPrice      *decimal.Decimal
	SecondaryLowPrice      *decimal.Decimal
	SecondaryRecoveryPrice *decimal.Decimal
	SecondaryDrawdownPct   *float64
}
