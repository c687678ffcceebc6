package data

import (
	"encoding/json"
	"fmt"
	"os"

	"allocation-backtest/internal/model"
)

// LoadReturnsJSON reads a JSON array of model.ReturnRow.
func LoadReturnsJSON(path string) (*model.ReturnTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []model.ReturnRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tbl, err := tableFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tbl, nil
}
