package backtest

import (
	"errors"

	"allocation-backtest/internal/model"
)

// Failures are local input validation errors. None are retryable: the
// computation is deterministic, so the same inputs fail the same way.
var (
	ErrInvalidAllocation   = model.ErrInvalidAllocation
	ErrInsufficientHistory = errors.New("insufficient history")
	ErrInvalidBalance      = errors.New("start balance must be > 0")
	ErrInvalidPeriod       = errors.New("number of years must be >= 1")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrOverflow            = errors.New("balance overflows a finite number")
)
