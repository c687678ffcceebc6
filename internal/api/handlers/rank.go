package handlers

import (
	"net/http"

	"allocation-backtest/internal/analysis"
	"allocation-backtest/internal/api/models"
	"allocation-backtest/internal/config"
	"allocation-backtest/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	defaultRankStep    = 10
	defaultRankBalance = 10000
	defaultRankLimit   = 10
)

// RankHandler handles ranking-related requests
type RankHandler struct {
	deps *Deps
}

// NewRankHandler creates a new rank handler
func NewRankHandler(deps *Deps) *RankHandler {
	return &RankHandler{deps: deps}
}

// RankAllocations handles GET /api/v1/rank. Every allocation on a grid of
// step percentage points is backtested over one period and ranked by CAGR.
// Without num_years the period runs to the end of the table.
func (h *RankHandler) RankAllocations(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, CodeInvalidRequest, err)
		return
	}
	if req.Step == 0 {
		req.Step = defaultRankStep
	}
	if req.StartBalance == 0 {
		req.StartBalance = defaultRankBalance
	}

	cfg := config.Config{
		StartBalance: req.StartBalance,
		StartYear:    req.StartYear,
		NumYears:     req.NumYears,
		Timeframe:    req.Timeframe,
		Strategy:     config.StrategyConfig{Name: req.Strategy},
	}
	period, err := cfg.Period(h.deps.Timeframes)
	if err != nil {
		respondError(c, CodeInvalidRequest, err)
		return
	}
	if period.NumYears == 0 {
		period = model.ClampPeriod(h.deps.Table, period.StartYear, h.deps.Table.Len())
	}

	engine, err := cfg.Engine(h.deps.logger())
	if err != nil {
		respondError(c, CodeInvalidRequest, err)
		return
	}

	ranked, err := analysis.SweepAllocations(engine, h.deps.Table, analysis.SweepOptions{
		Step:         req.Step,
		StartBalance: req.StartBalance,
		Period:       period,
		MaxStockPct:  req.MaxStockPct,
	})
	if err != nil {
		respondError(c, errorCode(err), err)
		return
	}
	total := len(ranked)

	// Apply limit
	limit := req.Limit
	if limit <= 0 {
		limit = defaultRankLimit
	}
	if limit > len(ranked) {
		limit = len(ranked)
	}
	ranked = ranked[:limit]

	// Convert to response format
	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		rankings[i] = models.Ranking{
			Rank:         i + 1,
			Allocation:   allocationInfo(r.Allocation),
			Style:        string(r.Style),
			FinalBalance: r.FinalBalance,
			CAGR:         r.CAGR,
			WorstYear:    worstYear(r.Annual.Worst),
			MaxDrawdown:  r.Annual.MaxDrawdown,
		}
	}

	c.JSON(http.StatusOK, models.RankResponse{
		StartYear:  period.StartYear,
		EndYear:    period.EndYear(),
		Step:       req.Step,
		Candidates: total,
		Rankings:   rankings,
	})
}
