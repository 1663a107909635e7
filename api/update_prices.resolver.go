package api

import (
	"github.com/gin-gonic/gin"
)

type UpdatePricesRequest struct {
	Symbols []string `json:"symbols"`
}

// updatePrices is hit by the scheduled refresh. an empty body refreshes
// every tracked ticker
func (m ApiHandler) updatePrices(c *gin.Context) {
	var requestBody UpdatePricesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&requestBody); err != nil {
			returnErrorJson(invalidRequest(err), c)
			return
		}
	}

	run, err := m.IngestService.RefreshFromYahoo(c.Request.Context(), requestBody.Symbols)
	if err != nil && run == nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, ingestRunToResponse(*run))
}
