package handlers

import (
	"net/http"

	"allocation-backtest/internal/api/models"

	"github.com/gin-gonic/gin"
)

// StrategyHandler handles strategy-related requests
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        "annual",
			Description: "Rebalance to the target allocation at the start of every year. This is the default.",
			Parameters:  []models.ParameterInfo{},
		},
		{
			Name:        "periodic",
			Description: "Rebalance every n years; buckets drift with their own returns in between.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "every",
					Type:        "int",
					Description: "Years between rebalances (1 = annual)",
					Default:     1,
				},
			},
		},
		{
			Name:        "buy_and_hold",
			Description: "Split the starting balance once and never rebalance.",
			Parameters:  []models.ParameterInfo{},
		},
	}

	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
