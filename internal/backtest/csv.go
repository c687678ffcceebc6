package backtest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// WriteResultCSV writes the rows of res to path, one line per year.
func WriteResultCSV(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeResultCSV(f, res)
}

func EncodeResultCSV(out io.Writer, res *Result) error {
	w := csv.NewWriter(out)

	header := []string{
		"year",
		"cash",
		"bonds",
		"stocks",
		"total",
		"all_cash",
		"all_bonds",
		"all_stocks",
		"inflation_only",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range res.Rows {
		row := []string{
			strconv.Itoa(r.Year),
			fmtFloat(r.Cash),
			fmtFloat(r.Bonds),
			fmtFloat(r.Stocks),
			fmtFloat(r.Total),
			fmtFloat(r.AllCash),
			fmtFloat(r.AllBonds),
			fmtFloat(r.AllStocks),
			fmtFloat(r.InflationOnly),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
