package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"allocation-backtest/internal/api/handlers"
	"allocation-backtest/internal/api/middleware"
	"allocation-backtest/internal/api/models"
	"allocation-backtest/internal/config"
	"allocation-backtest/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires middleware, API routes and, when the directory exists, the
// static frontend. gin's mode must be set before calling it.
func NewRouter(cfg *config.Server, deps *handlers.Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Apply middleware
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.Logger(logger))
	if cfg.Metrics.Enabled && deps.Metrics != nil {
		router.Use(metrics.GinMiddleware(deps.Metrics))
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
	}

	// Initialize handlers
	backtestHandler := handlers.NewBacktestHandler(deps)
	rankHandler := handlers.NewRankHandler(deps)
	returnsHandler := handlers.NewReturnsHandler(deps)
	scenarioHandler := handlers.NewScenarioHandler(deps)
	strategyHandler := handlers.NewStrategyHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"first_year": deps.Table.FirstYear() + 1,
			"last_year":  deps.Table.LastYear(),
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/backtest", backtestHandler.RunBacktest)
		api.GET("/backtest/:id/rows", backtestHandler.GetRows)
		api.POST("/backtest/compare", backtestHandler.CompareBacktests)

		api.GET("/rank", rankHandler.RankAllocations)

		api.GET("/returns", returnsHandler.ListReturns)
		api.GET("/timeframes", returnsHandler.ListTimeframes)
		api.GET("/scenarios", scenarioHandler.ListScenarios)
		api.GET("/strategies", strategyHandler.ListStrategies)
	}

	serveStatic(router, cfg.Server.StaticDir, logger)
	return router
}

// serveStatic serves a single-page frontend from dir. Unknown non-API paths
// get index.html so client-side routing works.
func serveStatic(router *gin.Engine, dir string, logger *zap.Logger) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"},
		})
	}

	if dir == "" {
		router.NoRoute(notFound)
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.Info("static directory not found, skipping static file serving", zap.String("dir", dir))
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	index := filepath.Join(dir, "index.html")
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(index)
	})
	logger.Info("serving static files", zap.String("dir", dir))
}
