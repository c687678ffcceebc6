package data

import (
	"encoding/json"
	"fmt"
	"os"

	"allocation-backtest/internal/model"
)

// Timeframe is a named historical period worth backtesting.
type Timeframe struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	StartYear int    `json:"start_year"`
	NumYears  int    `json:"num_years"`
}

func (t Timeframe) Period() model.Period {
	return model.Period{StartYear: t.StartYear, NumYears: t.NumYears}
}

// DefaultTimeframes are the built-in presets.
func DefaultTimeframes() []Timeframe {
	return []Timeframe{
		{ID: "2007", Label: "2007-2008 Great Financial Crisis", StartYear: 2007, NumYears: 13},
		{ID: "1999", Label: "2000 Dotcom Bubble peak", StartYear: 1999, NumYears: 10},
		{ID: "1970", Label: "1970s Energy Crisis", StartYear: 1970, NumYears: 10},
		{ID: "1929", Label: "1929 start of Great Depression", StartYear: 1929, NumYears: 20},
		{ID: "1928", Label: "1928-2019", StartYear: 1928, NumYears: 98},
	}
}

// LoadTimeframes reads presets from a JSON array. An empty path yields the
// built-in presets.
func LoadTimeframes(path string) ([]Timeframe, error) {
	if path == "" {
		return DefaultTimeframes(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timeframes file: %w", err)
	}
	var list []Timeframe
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse timeframes file: %w", err)
	}
	for _, tf := range list {
		if tf.ID == "" || tf.NumYears < 1 {
			return nil, fmt.Errorf("invalid timeframe %+v", tf)
		}
	}
	return list, nil
}

// FindTimeframe looks a preset up by id.
func FindTimeframe(list []Timeframe, id string) (Timeframe, bool) {
	for _, tf := range list {
		if tf.ID == id {
			return tf, true
		}
	}
	return Timeframe{}, false
}
