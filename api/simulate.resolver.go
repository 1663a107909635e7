package api

import (
	"drawdowncycles/internal/domain"
	"drawdowncycles/internal/logger"
	"drawdowncycles/internal/service"
	"drawdowncycles/internal/util"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type SimulateRequest struct {
	BaseSymbol        string   `json:"baseSymbol"`
	SecondarySymbol   string   `json:"secondarySymbol"`
	InitialInvestment float64  `json:"initialInvestment"`
	MonthlyInvestment float64  `json:"monthlyInvestment"`
	StartDate         string   `json:"startDate"`
	EndDate           string   `json:"endDate"`
	Threshold         *float64 `json:"threshold"`
}

type StrategyMetricsResponse struct {
	Role             string  `json:"role"`
	Symbol           string  `json:"symbol"`
	HeldInstrument   string  `json:"heldInstrument"`
	SharesHeld       float64 `json:"sharesHeld"`
	FinalValue       float64 `json:"finalValue"`
	TotalReturn      float64 `json:"totalReturn"`
	TotalReturnPct   float64 `json:"totalReturnPct"`
	AnnualizedReturn float64 `json:"annualizedReturn"`
	MaxDrawdownPct   float64 `json:"maxDrawdownPct"`
}

type StrategySwitchResponse struct {
	Date           string  `json:"date"`
	From           string  `json:"from"`
	To             string  `json:"to"`
	BasePrice      float64 `json:"basePrice"`
	SecondaryPrice float64 `json:"secondaryPrice"`
	ValueAtSwitch  float64 `json:"valueAtSwitch"`
}

type SimulateResponse struct {
	BaseSymbol          string                    `json:"baseSymbol"`
	SecondarySymbol     string                    `json:"secondarySymbol"`
	StartDate           string                    `json:"startDate"`
	EndDate             string                    `json:"endDate"`
	InitialInvestment   float64                   `json:"initialInvestment"`
	MonthlyInvestment   float64                   `json:"monthlyInvestment"`
	TotalInvested       float64                   `json:"totalInvested"`
	ContributionCount   int                       `json:"contributionCount"`
	StrategyLabel       string                    `json:"strategyLabel"`
	Strategies          []StrategyMetricsResponse `json:"strategies"`
	StrategySwitchCount int                       `json:"strategySwitchCount"`
	Switches            []StrategySwitchResponse  `json:"switches"`
	TradingDays         int                       `json:"tradingDays"`
	DurationDays        int                       `json:"durationDays"`
	DurationYears       float64                   `json:"durationYears"`
}

func simulationToResponse(result domain.SimulationResult) SimulateResponse {
	strategies := []StrategyMetricsResponse{}
	for _, s := range result.Strategies {
		strategies = append(strategies, StrategyMetricsResponse{
			Role:             string(s.Role),
			Symbol:           s.Symbol,
			HeldInstrument:   string(s.HeldInstrument),
			SharesHeld:       s.SharesHeld.InexactFloat64(),
			FinalValue:       s.FinalValue.Round(2).InexactFloat64(),
			TotalReturn:      s.TotalReturn.Round(2).InexactFloat64(),
			TotalReturnPct:   s.TotalReturnPct,
			AnnualizedReturn: s.AnnualizedReturn,
			MaxDrawdownPct:   s.MaxDrawdownPct,
		})
	}

	switches := []StrategySwitchResponse{}
	for _, s := range result.Switches {
		switches = append(switches, StrategySwitchResponse{
			Date:           formatDate(s.Date),
			From:           string(s.From),
			To:             string(s.To),
			BasePrice:      s.BasePrice.InexactFloat64(),
			SecondaryPrice: s.SecondaryPrice.InexactFloat64(),
			ValueAtSwitch:  s.ValueAtSwitch.Round(2).InexactFloat64(),
		})
	}

	return SimulateResponse{
		BaseSymbol:          result.BaseSymbol,
		SecondarySymbol:     result.SecondarySymbol,
		StartDate:           formatDate(result.StartDate),
		EndDate:             formatDate(result.EndDate),
		InitialInvestment:   result.InitialInvestment.InexactFloat64(),
		MonthlyInvestment:   result.MonthlyInvestment.InexactFloat64(),
		TotalInvested:       result.TotalInvested.InexactFloat64(),
		ContributionCount:   result.ContributionCount,
		StrategyLabel:       result.StrategyLabel,
		Strategies:          strategies,
		StrategySwitchCount: result.StrategySwitchCount,
		Switches:            switches,
		TradingDays:         result.TradingDays,
		DurationDays:        result.DurationDays,
		DurationYears:       result.DurationYears,
	}
}

func (m ApiHandler) simulate(c *gin.Context) {
	ctx := c.Request.Context()
	profile := domain.ProfileFromContext(ctx)
	defer func() {
		profile.End()
		if err := m.LatencyTrackingRepository.Add(ctx, profile, requestIDFromContext(c)); err != nil {
			logger.FromContext(ctx).Warnw("failed to store latency", "error", err)
		}
	}()

	var requestBody SimulateRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(invalidRequest(err), c)
		return
	}
	threshold, err := requireThreshold(requestBody.Threshold)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	startDate, err := util.ParseDate(requestBody.StartDate)
	if err != nil {
		returnErrorJson(fmt.Errorf("invalid start date %q: %w", requestBody.StartDate, domain.ErrInvalidInput), c)
		return
	}
	endDate, err := util.ParseDate(requestBody.EndDate)
	if err != nil {
		returnErrorJson(fmt.Errorf("invalid end date %q: %w", requestBody.EndDate, domain.ErrInvalidInput), c)
		return
	}

	result, err := m.SimulationService.Simulate(ctx, service.SimulateInput{
		BaseSymbol:        requestBody.BaseSymbol,
		SecondarySymbol:   requestBody.SecondarySymbol,
		InitialInvestment: decimal.NewFromFloat(requestBody.InitialInvestment),
		MonthlyInvestment: decimal.NewFromFloat(requestBody.MonthlyInvestment),
		StartDate:         startDate,
		EndDate:           endDate,
		ThresholdPct:      threshold,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, simulationToResponse(*result))
}
