package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is a single daily close for a symbol
type PricePoint struct {
	Date  time.Time
	Close decimal.Decimal
}

type InstrumentRole string

const (
	InstrumentRole_Base      InstrumentRole = "base"
	InstrumentRole_Secondary InstrumentRole = "secondary"
)

// AlignedPricePoint holds the closes of both instruments on
// a date that exists in both series
type AlignedPricePoint struct {
	Date      time.Time
	Base      decimal.Decimal
	Secondary decimal.Decimal
}

func (p AlignedPricePoint) Price(role InstrumentRole) decimal.Decimal {
	if role == InstrumentRole_Secondary {
		return p.Secondary
	}
	return p.Base
}

// DrawdownPoint annotates a close with the running all-time high
// observed up to and including that day
type DrawdownPoint struct {
	Date        time.Time
	Close       decimal.Decimal
	RunningAth  decimal.Decimal
	DrawdownPct float64
}

// SeriesVersion identifies the stored state of a symbol's series. Any
// ingest that touches the symbol produces a different version.
type SeriesVersion struct {
	Symbol       string
	NumPoints    int64
	LatestDate   *time.Time
	LastIngested *time.Time
}

func (v SeriesVersion) String() string {
	latest := "none"
	if v.LatestDate != nil {
		latest = v.LatestDate.Format(time.DateOnly)
	}
	ingested := "none"
	if v.LastIngested != nil {
		ingested = v.LastIngested.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%s:%d:%s:%s", v.Symbol, v.NumPoints, latest, ingested)
}

type SymbolStats struct {
	Symbol       string
	NumPoints    int64
	EarliestDate time.Time
	LatestDate   time.Time
}
