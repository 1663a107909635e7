package api

import (
	"drawdowncycles/internal/domain"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CyclesRequest struct {
	Symbol    string   `json:"symbol"`
	Threshold *float64 `json:"threshold"`
}

type CycleResponse struct {
	CycleNumber       int      `json:"cycleNumber"`
	Severity          string   `json:"severity"`
	AthDate           string   `json:"athDate"`
	AthPrice          float64  `json:"athPrice"`
	LowDate           string   `json:"lowDate"`
	LowPrice          float64  `json:"lowPrice"`
	DrawdownPct       float64  `json:"drawdownPct"`
	RecoveryDate      *string  `json:"recoveryDate"`
	RecoveryPrice     *float64 `json:"recoveryPrice"`
	AthToLowDays      int      `json:"athToLowDays"`
	LowToRecoveryDays *int     `json:"lowToRecoveryDays"`
	Ongoing           bool     `json:"ongoing"`
}

type CycleSummaryResponse struct {
	Symbol            string         `json:"symbol"`
	Threshold         float64        `json:"threshold"`
	TotalCycles       int            `json:"totalCycles"`
	OngoingCycles     int            `json:"ongoingCycles"`
	AvgDrawdownPct    *float64       `json:"avgDrawdownPct"`
	MedianDrawdownPct *float64       `json:"medianDrawdownPct"`
	MaxDrawdownPct    *float64       `json:"maxDrawdownPct"`
	MinDrawdownPct    *float64       `json:"minDrawdownPct"`
	AvgDaysToLow      *float64       `json:"avgDaysToLow"`
	AvgDaysToRecovery *float64       `json:"avgDaysToRecovery"`
	SeverityCounts    map[string]int `json:"severityCounts"`
}

type CompareCyclesRequest struct {
	BaseSymbol      string   `json:"baseSymbol"`
	SecondarySymbol string   `json:"secondarySymbol"`
	Threshold       *float64 `json:"threshold"`
}

type CycleComparisonResponse struct {
	CycleResponse
	SecondaryAthPrice      *float64 `json:"secondaryAthPrice"`
	SecondaryLowPrice      *float64 `json:"secondaryLowPrice"`
	SecondaryRecoveryPrice *float64 `json:"secondaryRecoveryPrice"`
	SecondaryDrawdownPct   *float64 `json:"secondaryDrawdownPct"`
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

func decimalToFloatPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

func requireThreshold(threshold *float64) (float64, error) {
	if threshold == nil {
		return 0, fmt.Errorf("threshold is required: %w", domain.ErrInvalidInput)
	}
	return *threshold, nil
}

func cycleToResponse(c domain.Cycle) CycleResponse {
	out := CycleResponse{
		CycleNumber:       c.CycleNumber,
		Severity:          string(c.Severity),
		AthDate:           formatDate(c.AthDate),
		AthPrice:          c.AthPrice.InexactFloat64(),
		LowDate:           formatDate(c.LowDate),
		LowPrice:          c.LowPrice.InexactFloat64(),
		DrawdownPct:       c.DrawdownPct,
		RecoveryPrice:     decimalToFloatPtr(c.RecoveryPrice),
		AthToLowDays:      c.AthToLowDays,
		LowToRecoveryDays: c.LowToRecoveryDays,
		Ongoing:           c.IsOngoing(),
	}
	if c.RecoveryDate != nil {
		out.RecoveryDate = strPtr(formatDate(*c.RecoveryDate))
	}
	return out
}

func (m ApiHandler) cycles(c *gin.Context) {
	var requestBody CyclesRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(invalidRequest(err), c)
		return
	}
	threshold, err := requireThreshold(requestBody.Threshold)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	cycles, err := m.CycleService.ComputeCycles(c.Request.Context(), requestBody.Symbol, threshold)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []CycleResponse{}
	for _, cycle := range cycles {
		out = append(out, cycleToResponse(cycle))
	}

	c.JSON(200, out)
}

func (m ApiHandler) cycleSummary(c *gin.Context) {
	var requestBody CyclesRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(invalidRequest(err), c)
		return
	}
	threshold, err := requireThreshold(requestBody.Threshold)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	summary, err := m.CycleService.ComputeSummary(c.Request.Context(), requestBody.Symbol, threshold)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	severityCounts := map[string]int{}
	for _, s := range domain.SeverityAllValues {
		severityCounts[string(s)] = summary.SeverityCounts[s]
	}

	c.JSON(200, CycleSummaryResponse{
		Symbol:            requestBody.Symbol,
		Threshold:         threshold,
		TotalCycles:       summary.TotalCycles,
		OngoingCycles:     summary.OngoingCycles,
		AvgDrawdownPct:    summary.AvgDrawdownPct,
		MedianDrawdownPct: summary.MedianDrawdownPct,
		MaxDrawdownPct:    summary.MaxDrawdownPct,
		MinDrawdownPct:    summary.MinDrawdownPct,
		AvgDaysToLow:      summary.AvgDaysToLow,
		AvgDaysToRecovery: summary.AvgDaysToRecovery,
		SeverityCounts:    severityCounts,
	})
}

func (m ApiHandler) compareCycles(c *gin.Context) {
	var requestBody CompareCyclesRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(invalidRequest(err), c)
		return
	}
	threshold, err := requireThreshold(requestBody.Threshold)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	comparisons, err := m.CycleService.CompareCycles(
		c.Request.Context(),
		requestBody.BaseSymbol,
		requestBody.SecondarySymbol,
		threshold,
	)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []CycleComparisonResponse{}
	for _, cmp := range comparisons {
		out = append(out, CycleComparisonResponse{
			CycleResponse:          cycleToResponse(cmp.Cycle),
			SecondaryAthPrice:      decimalToFloatPtr(cmp.SecondaryAthPrice),
			SecondaryLowPrice:      decimalToFloatPtr(cmp.SecondaryLowPrice),
			SecondaryRecoveryPrice: decimalToFloatPtr(cmp.SecondaryRecoveryPrice),
			SecondaryDrawdownPct:   cmp.SecondaryDrawdownPct,
		})
	}

	c.JSON(200, out)
}
