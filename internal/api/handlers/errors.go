package handlers

import (
	"errors"
	"net/http"

	"allocation-backtest/internal/api/models"
	"allocation-backtest/internal/backtest"
	"allocation-backtest/internal/data"
	"allocation-backtest/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidAllocation   = "INVALID_ALLOCATION"
	CodeInsufficientHistory = "INSUFFICIENT_HISTORY"
	CodeInvalidBalance      = "INVALID_BALANCE"
	CodeInvalidPeriod       = "INVALID_PERIOD"
	CodeScenarioNotFound    = "SCENARIO_NOT_FOUND"
	CodeResultNotFound      = "RESULT_NOT_FOUND"
	CodeStoreError          = "STORE_ERROR"
)

var errScenarioNotFound = errors.New("scenario not found")

// errorCode maps domain errors to API error codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidAllocation):
		return CodeInvalidAllocation
	case errors.Is(err, backtest.ErrInsufficientHistory):
		return CodeInsufficientHistory
	case errors.Is(err, backtest.ErrInvalidBalance), errors.Is(err, backtest.ErrOverflow):
		return CodeInvalidBalance
	case errors.Is(err, backtest.ErrInvalidPeriod):
		return CodeInvalidPeriod
	case errors.Is(err, errScenarioNotFound):
		return CodeScenarioNotFound
	case errors.Is(err, data.ErrResultNotFound):
		return CodeResultNotFound
	default:
		return CodeInvalidRequest
	}
}

func statusFor(code string) int {
	switch code {
	case CodeScenarioNotFound, CodeResultNotFound:
		return http.StatusNotFound
	case CodeStoreError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func errorDetail(err error) models.ErrorDetail {
	return models.ErrorDetail{Code: errorCode(err), Message: err.Error()}
}

func respondError(c *gin.Context, code string, err error) {
	c.JSON(statusFor(code), models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}
