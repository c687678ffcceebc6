package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"allocation-backtest/internal/model"
)

// Column headers as published with the historical returns dataset, plus
// our own short names. Matching ignores case and spaces.
var columnAliases = map[string]model.Asset{
	"3-mont.bill":   model.AssetCash,
	"3-montht.bill": model.AssetCash,
	"t.bill":        model.AssetCash,
	"cash":          model.AssetCash,
	"10yrt.bond":    model.AssetBonds,
	"10-yeart.bond": model.AssetBonds,
	"t.bond":        model.AssetBonds,
	"bonds":         model.AssetBonds,
	"s&p500":        model.AssetStocks,
	"stocks":        model.AssetStocks,
	"inflation":     model.AssetInflation,
}

var ErrMissingColumn = errors.New("missing column")

// LoadReturns reads a historical returns file (.csv or .json) and prepends the
// seed year, producing the table the engine expects.
func LoadReturns(path string) (*model.ReturnTable, error) {
	var (
		tbl *model.ReturnTable
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		tbl, err = LoadReturnsJSON(path)
	case ".csv", "":
		tbl, err = LoadReturnsCSV(path)
	default:
		return nil, fmt.Errorf("unsupported returns file type: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	return tbl.WithSeedYear(), nil
}

func LoadReturnsCSV(path string) (*model.ReturnTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tbl, err := ParseReturnsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tbl, nil
}

// ParseReturnsCSV reads a header row followed by one row per year. Returns may
// be fractions (0.05) or percentages ("5%"); empty cells are 0.
func ParseReturnsCSV(in io.Reader) (*model.ReturnTable, error) {
	r := csv.NewReader(in)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	yearCol := -1
	assetCol := map[model.Asset]int{}
	for i, h := range header {
		key := normalizeHeader(h)
		if key == "year" {
			yearCol = i
			continue
		}
		if a, ok := columnAliases[key]; ok {
			if _, dup := assetCol[a]; !dup {
				assetCol[a] = i
			}
		}
	}
	if yearCol < 0 {
		return nil, fmt.Errorf("%w: Year", ErrMissingColumn)
	}
	for _, a := range model.Assets {
		if _, ok := assetCol[a]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, a.Label())
		}
	}

	var rows []model.ReturnRow
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(rec) {
			continue
		}
		year, err := parseYear(field(rec, yearCol))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := model.ReturnRow{Year: year}
		for a, col := range assetCol {
			v, err := parseReturn(field(rec, col))
			if err != nil {
				return nil, fmt.Errorf("line %d %s: %w", line, a.Label(), err)
			}
			switch a {
			case model.AssetCash:
				row.Cash = v
			case model.AssetBonds:
				row.Bonds = v
			case model.AssetStocks:
				row.Stocks = v
			case model.AssetInflation:
				row.Inflation = v
			}
		}
		rows = append(rows, row)
	}
	return tableFromRows(rows)
}

func tableFromRows(rows []model.ReturnRow) (*model.ReturnTable, error) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
	return model.NewReturnTable(rows)
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(h), ""))
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func isBlank(rec []string) bool {
	for _, s := range rec {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

func parseYear(s string) (int, error) {
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return int(f), nil
}

func parseReturn(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	pct := strings.HasSuffix(s, "%")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid return %q", s)
	}
	if pct {
		v /= 100
	}
	return v, nil
}
