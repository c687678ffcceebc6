package handlers

import (
	"allocation-backtest/internal/analysis"
	"allocation-backtest/internal/api/models"
	"allocation-backtest/internal/backtest"
	"allocation-backtest/internal/config"
	"allocation-backtest/internal/model"
)

func toConfig(req models.BacktestConfig) config.Config {
	return config.Config{
		ScenarioFile: req.ScenarioFile,
		Allocation: config.AllocationConfig{
			CashPct:  req.Allocation.CashPct,
			StockPct: req.Allocation.StockPct,
		},
		StartBalance: req.StartBalance,
		StartYear:    req.StartYear,
		NumYears:     req.NumYears,
		Timeframe:    req.Timeframe,
		Strategy: config.StrategyConfig{
			Name:   req.Strategy.Name,
			Params: req.Strategy.Params,
		},
		Rounding: req.Rounding,
	}
}

func buildResponse(id string, res *backtest.Result, includeRows bool) models.BacktestResponse {
	response := models.BacktestResponse{
		ID:      id,
		Status:  "completed",
		Summary: buildSummary(res),
	}
	if includeRows {
		response.Rows = convertRows(res.Rows)
	}
	return response
}

func buildSummary(res *backtest.Result) models.BacktestSummary {
	s := res.Summary
	out := models.BacktestSummary{
		Allocation:   allocationInfo(res.Allocation),
		Style:        string(s.Style),
		StartBalance: res.StartBalance,
		StartYear:    s.StartYear,
		EndYear:      s.EndYear,
		NumYears:     res.Period.NumYears,
		Strategy:     res.Strategy,
		Rounding:     res.Rounding.String(),
		FinalBalance: s.FinalBalance,
		CAGR:         s.CAGR,
		Result:       s.Text,
		Series:       make([]models.SeriesSummary, 0, len(s.Series)),
	}
	for _, line := range s.Series {
		item := models.SeriesSummary{
			Asset: string(line.Asset),
			Label: line.Label,
			CAGR:  line.CAGR,
		}
		if line.Worst != nil {
			w := worstYear(*line.Worst)
			item.Worst = &w
		}
		out.Series = append(out.Series, item)
	}

	annual := analysis.ComputeAnnualStats(res)
	out.Risk = models.RiskSummary{
		WorstYear:   worstYear(annual.Worst),
		MeanReturn:  annual.Mean,
		StdDev:      annual.StdDev,
		MaxDrawdown: annual.MaxDrawdown,
	}
	return out
}

func allocationInfo(a model.Allocation) models.AllocationInfo {
	return models.AllocationInfo{
		CashPct:  a.CashPct,
		BondPct:  a.BondPct(),
		StockPct: a.StockPct,
	}
}

func worstYear(y backtest.YearReturn) models.WorstYear {
	return models.WorstYear{Year: y.Year, Return: y.Return, Text: y.String()}
}

func convertRows(rows []backtest.YearRow) []models.YearRow {
	out := make([]models.YearRow, len(rows))
	for i, r := range rows {
		out[i] = models.YearRow{
			Year:          r.Year,
			Cash:          r.Cash,
			Bonds:         r.Bonds,
			Stocks:        r.Stocks,
			Total:         r.Total,
			AllCash:       r.AllCash,
			AllBonds:      r.AllBonds,
			AllStocks:     r.AllStocks,
			InflationOnly: r.InflationOnly,
		}
	}
	return out
}
