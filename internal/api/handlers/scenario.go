package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"allocation-backtest/internal/api/models"
	"allocation-backtest/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const scenarioExt = ".yaml"

// ScenarioHandler handles scenario preset requests
type ScenarioHandler struct {
	dir    string
	logger *zap.Logger
}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler(deps *Deps) *ScenarioHandler {
	dir := deps.ScenarioDir
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &ScenarioHandler{dir: dir, logger: deps.logger()}
}

// ListScenarios handles GET /api/v1/scenarios
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	scenarios := []models.ScenarioInfo{}

	entries, err := os.ReadDir(h.dir)
	if err != nil {
		// A missing directory just means no presets.
		if !os.IsNotExist(err) {
			h.logger.Warn("reading scenario directory", zap.String("dir", h.dir), zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), scenarioExt) {
			continue
		}

		path := filepath.Join(h.dir, entry.Name())
		info, err := h.loadScenarioInfo(path, entry.Name())
		if err != nil {
			h.logger.Warn("skipping scenario", zap.String("file", path), zap.Error(err))
			continue
		}
		scenarios = append(scenarios, *info)
	}

	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}

func (h *ScenarioHandler) loadScenarioInfo(path, filename string) (*models.ScenarioInfo, error) {
	cfg, err := config.LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	alloc, err := cfg.ModelAllocation()
	if err != nil {
		return nil, err
	}

	// "balanced.yaml" -> "balanced"
	id := strings.TrimSuffix(filename, scenarioExt)

	name := cfg.Name
	if name == "" {
		name = id
	}

	return &models.ScenarioInfo{
		ID:          id,
		Name:        name,
		Description: cfg.Description,
		File:        path,
		Allocation:  allocationInfo(alloc),
		Timeframe:   cfg.Timeframe,
		Strategy:    cfg.Strategy.Name,
	}, nil
}

// loadScenario loads the preset id from dir. Ids are bare file names.
func loadScenario(dir, id string) (*config.Config, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return nil, fmt.Errorf("%w: invalid id %q", errScenarioNotFound, id)
	}
	cfg, err := config.LoadUnchecked(filepath.Join(dir, id+scenarioExt))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", errScenarioNotFound, id)
	}
	return cfg, err
}
