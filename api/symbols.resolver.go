package api

import (
	"drawdowncycles/internal/domain"
	"drawdowncycles/internal/util"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

type SymbolResponse struct {
	Symbol       string `json:"symbol"`
	RecordCount  int64  `json:"recordCount"`
	EarliestDate string `json:"earliestDate"`
	LatestDate   string `json:"latestDate"`
}

type PricePointResponse struct {
	Date        string  `json:"date"`
	Close       float64 `json:"close"`
	RunningAth  float64 `json:"runningAth"`
	DrawdownPct float64 `json:"drawdownPct"`
}

func (m ApiHandler) listSymbols(c *gin.Context) {
	stats, err := m.CycleService.ListSymbols(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []SymbolResponse{}
	for _, s := range stats {
		out = append(out, SymbolResponse{
			Symbol:       s.Symbol,
			RecordCount:  s.NumPoints,
			EarliestDate: formatDate(s.EarliestDate),
			LatestDate:   formatDate(s.LatestDate),
		})
	}

	c.JSON(200, out)
}

// parseOptionalDate reads a YYYY-MM-DD query param, empty means unbounded
func parseOptionalDate(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := util.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q: %w", name, raw, domain.ErrInvalidInput)
	}
	return &d, nil
}

func (m ApiHandler) getPrices(c *gin.Context) {
	start, err := parseOptionalDate(c, "start")
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	end, err := parseOptionalDate(c, "end")
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	points, err := m.CycleService.GetDrawdownSeries(c.Request.Context(), c.Param("symbol"), start, end)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []PricePointResponse{}
	for _, p := range points {
		out = append(out, PricePointResponse{
			Date:        formatDate(p.Date),
			Close:       p.Close.InexactFloat64(),
			RunningAth:  p.RunningAth.InexactFloat64(),
			DrawdownPct: p.DrawdownPct,
		})
	}

	c.JSON(200, out)
}
