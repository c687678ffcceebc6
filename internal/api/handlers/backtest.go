package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"allocation-backtest/internal/api/models"
	"allocation-backtest/internal/backtest"
	"allocation-backtest/internal/config"
	"allocation-backtest/internal/data"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BacktestHandler handles backtest-related requests
type BacktestHandler struct {
	deps *Deps
}

// NewBacktestHandler creates a new backtest handler
func NewBacktestHandler(deps *Deps) *BacktestHandler {
	return &BacktestHandler{deps: deps}
}

// RunBacktest handles POST /api/v1/backtest
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, CodeInvalidRequest, err)
		return
	}

	cfg, err := h.buildConfig(toConfig(req.Config))
	if err != nil {
		respondError(c, errorCode(err), err)
		return
	}

	result, err := h.run(cfg, req.Options.Clamp)
	if err != nil {
		respondError(c, errorCode(err), err)
		return
	}

	id := h.save(c.Request.Context(), result)
	c.JSON(http.StatusOK, buildResponse(id, result, req.Options.IncludeRows))
}

// GetRows handles GET /api/v1/backtest/:id/rows. With ?format=csv the rows
// are written as CSV.
func (h *BacktestHandler) GetRows(c *gin.Context) {
	id := c.Param("id")
	if h.deps.Store == nil {
		respondError(c, CodeResultNotFound, fmt.Errorf("%w: result storage is disabled", data.ErrResultNotFound))
		return
	}

	result, err := h.deps.Store.Load(c.Request.Context(), id)
	if err != nil {
		code := errorCode(err)
		if code != CodeResultNotFound {
			code = CodeStoreError
		}
		respondError(c, code, err)
		return
	}

	if c.Query("format") == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=backtest-%s.csv", id))
		c.Status(http.StatusOK)
		if err := backtest.EncodeResultCSV(c.Writer, result); err != nil {
			h.deps.logger().Warn("writing csv", zap.String("id", id), zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, models.RowsResponse{ID: id, Rows: convertRows(result.Rows)})
}

// CompareBacktests handles POST /api/v1/backtest/compare
func (h *BacktestHandler) CompareBacktests(c *gin.Context) {
	var req models.CompareBacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, CodeInvalidRequest, err)
		return
	}

	base := toConfig(req.BaseConfig)
	comparison := make([]models.ComparisonResult, 0, len(req.Variations))

	for _, variation := range req.Variations {
		item := models.ComparisonResult{Name: variation.Name}

		override := toConfig(variation.Config)
		merged := config.Merge(base, override)
		if override.ScenarioFile != "" {
			merged.ScenarioFile = override.ScenarioFile
		}

		cfg, err := h.buildConfig(merged)
		if err == nil {
			var result *backtest.Result
			result, err = h.run(cfg, req.Options.Clamp)
			if err == nil {
				item.ID = h.save(c.Request.Context(), result)
				summary := buildSummary(result)
				item.Summary = &summary
			}
		}
		if err != nil {
			detail := errorDetail(err)
			item.Error = &detail
		}

		comparison = append(comparison, item)
	}

	c.JSON(http.StatusOK, models.CompareBacktestResponse{
		Comparison: comparison,
	})
}

// Helper methods

// buildConfig layers the request over its scenario preset, if one is named.
func (h *BacktestHandler) buildConfig(cfg config.Config) (*config.Config, error) {
	if cfg.ScenarioFile == "" {
		return &cfg, nil
	}
	loaded, err := loadScenario(h.deps.ScenarioDir, cfg.ScenarioFile)
	if err != nil {
		return nil, err
	}
	merged := config.Merge(*loaded, cfg)
	merged.ScenarioFile = ""
	return &merged, nil
}

func (h *BacktestHandler) run(cfg *config.Config, clamp bool) (*backtest.Result, error) {
	start := time.Now()

	engine, err := cfg.Engine(h.deps.logger())
	if err != nil {
		return nil, err
	}
	in, err := cfg.Inputs(h.deps.Table, h.deps.Timeframes, clamp)
	if err != nil {
		h.deps.Metrics.RecordBacktest(errorCode(err), 0, 0)
		return nil, err
	}

	result, err := engine.Run(in)
	status := "ok"
	if err != nil {
		status = errorCode(err)
	}
	h.deps.Metrics.RecordBacktest(status, in.NumYears, time.Since(start).Seconds())
	return result, err
}

// save stores the result and returns its id, or "" when it is not stored.
func (h *BacktestHandler) save(ctx context.Context, result *backtest.Result) string {
	if h.deps.Store == nil {
		return ""
	}
	id, err := h.deps.Store.Save(ctx, result)
	h.deps.Metrics.RecordStored(err == nil)
	if err != nil {
		h.deps.logger().Warn("storing result", zap.Error(err))
		return ""
	}
	return id
}
