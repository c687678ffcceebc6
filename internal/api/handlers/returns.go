package handlers

import (
	"net/http"

	"allocation-backtest/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ReturnsHandler serves the historical data the server was started with
type ReturnsHandler struct {
	deps *Deps
}

// NewReturnsHandler creates a new returns handler
func NewReturnsHandler(deps *Deps) *ReturnsHandler {
	return &ReturnsHandler{deps: deps}
}

// ListReturns handles GET /api/v1/returns. The zero-return seed row ahead of
// the first data year is not listed unless from asks for it.
func (h *ReturnsHandler) ListReturns(c *gin.Context) {
	var req models.ReturnsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, CodeInvalidRequest, err)
		return
	}

	table := h.deps.Table
	from, to := req.From, req.To
	if from == 0 {
		from = table.FirstYear() + 1
	}
	if to == 0 {
		to = table.LastYear()
	}

	rows, err := table.Range(from, to)
	if err != nil {
		respondError(c, CodeInvalidRequest, err)
		return
	}

	out := make([]models.ReturnRow, len(rows))
	for i, r := range rows {
		out[i] = models.ReturnRow{
			Year:      r.Year,
			Cash:      r.Cash,
			Bonds:     r.Bonds,
			Stocks:    r.Stocks,
			Inflation: r.Inflation,
		}
	}

	c.JSON(http.StatusOK, models.ReturnsResponse{
		FirstYear: from,
		LastYear:  to,
		Count:     len(out),
		Rows:      out,
	})
}

// ListTimeframes handles GET /api/v1/timeframes
func (h *ReturnsHandler) ListTimeframes(c *gin.Context) {
	timeframes := make([]models.TimeframeInfo, len(h.deps.Timeframes))
	for i, tf := range h.deps.Timeframes {
		p := tf.Period()
		timeframes[i] = models.TimeframeInfo{
			ID:        tf.ID,
			Label:     tf.Label,
			StartYear: p.StartYear,
			NumYears:  p.NumYears,
			EndYear:   p.EndYear(),
			Available: h.deps.Table.Covers(p.StartYear-1, p.EndYear()),
		}
	}

	c.JSON(http.StatusOK, gin.H{"timeframes": timeframes})
}
