package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"allocation-backtest/internal/backtest"
	"allocation-backtest/internal/data"
	"allocation-backtest/internal/model"
	"allocation-backtest/internal/strategy"

	"gopkg.in/yaml.v3"
)

// Config is a backtest scenario as stored on disk (YAML).
type Config struct {
	// Optional: load a base scenario from another YAML file (e.g. examples/scenarios/*.yaml).
	// Fields set in this file override the base.
	ScenarioFile string           `yaml:"scenario_file"`
	Name         string           `yaml:"name"`
	Description  string           `yaml:"description"`
	Allocation   AllocationConfig `yaml:"allocation"`
	StartBalance float64          `yaml:"start_balance"`
	StartYear    int              `yaml:"start_year"`
	NumYears     int              `yaml:"num_years"`
	// Timeframe names a preset period; explicit start_year/num_years win.
	Timeframe string         `yaml:"timeframe"`
	Strategy  StrategyConfig `yaml:"strategy"`
	Rounding  string         `yaml:"rounding"`
}

// AllocationConfig uses pointers so an explicit 0% can override a base file.
type AllocationConfig struct {
	CashPct  *float64 `yaml:"cash_pct"`
	StockPct *float64 `yaml:"stock_pct"`
}

type StrategyConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ErrScenarioCycle is returned when scenario_file includes loop back to a
// file already being loaded.
var ErrScenarioCycle = errors.New("scenario_file cycle")

// LoadUnchecked loads and merges a scenario, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	return loadChain(path, map[string]bool{})
}

func loadChain(path string, seen map[string]bool) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if seen[abs] {
		return nil, fmt.Errorf("%w: %s is included twice", ErrScenarioCycle, path)
	}
	seen[abs] = true

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if c.ScenarioFile != "" {
		basePath := c.ScenarioFile
		if !filepath.IsAbs(basePath) {
			// Relative to the including file first, then to the cwd.
			cand := filepath.Join(filepath.Dir(path), basePath)
			if _, err := os.Stat(cand); err == nil {
				basePath = cand
			}
		}
		base, err := loadChain(basePath, seen)
		if err != nil {
			return nil, err
		}
		merged := Merge(*base, c)
		merged.ScenarioFile = ""
		return &merged, nil
	}
	return &c, nil
}

// Validate checks the scenario without consulting a return table; year
// coverage is checked when the backtest runs.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := c.ModelAllocation(); err != nil {
		return err
	}
	if c.StartBalance <= 0 {
		return fmt.Errorf("start_balance must be > 0, got %v", c.StartBalance)
	}
	if c.Timeframe == "" && c.NumYears < 0 {
		return fmt.Errorf("num_years must be >= 0, got %d", c.NumYears)
	}
	if _, err := c.BuildStrategy(); err != nil {
		return fmt.Errorf("strategy config invalid: %w", err)
	}
	if _, err := backtest.ParseRounding(c.Rounding); err != nil {
		return err
	}
	return nil
}

// ModelAllocation returns the validated allocation. Missing percentages are 0.
func (c *Config) ModelAllocation() (model.Allocation, error) {
	var a model.Allocation
	if c.Allocation.CashPct != nil {
		a.CashPct = *c.Allocation.CashPct
	}
	if c.Allocation.StockPct != nil {
		a.StockPct = *c.Allocation.StockPct
	}
	if err := a.Validate(); err != nil {
		return model.Allocation{}, err
	}
	return a, nil
}

func (c *Config) BuildStrategy() (strategy.Strategy, error) {
	return strategy.ByName(c.Strategy.Name, c.Strategy.Params)
}

// Merge overlays set fields from override onto base.
func Merge(base, override Config) Config {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Description != "" {
		out.Description = override.Description
	}
	if override.Allocation.CashPct != nil {
		out.Allocation.CashPct = override.Allocation.CashPct
	}
	if override.Allocation.StockPct != nil {
		out.Allocation.StockPct = override.Allocation.StockPct
	}
	if override.StartBalance != 0 {
		out.StartBalance = override.StartBalance
	}
	if override.StartYear != 0 {
		out.StartYear = override.StartYear
	}
	if override.NumYears != 0 {
		out.NumYears = override.NumYears
	}
	if override.Timeframe != "" {
		out.Timeframe = override.Timeframe
	}
	if override.Strategy.Name != "" {
		out.Strategy = override.Strategy
	}
	if override.Rounding != "" {
		out.Rounding = override.Rounding
	}
	return out
}

// Float is a helper for building AllocationConfig literals.
func Float(v float64) *float64 { return &v }

// Period resolves the holding period: explicit start_year/num_years first,
// then the named timeframe preset.
func (c *Config) Period(timeframes []data.Timeframe) (model.Period, error) {
	p := model.Period{StartYear: c.StartYear, NumYears: c.NumYears}
	if c.Timeframe != "" {
		tf, ok := data.FindTimeframe(timeframes, c.Timeframe)
		if !ok {
			return model.Period{}, fmt.Errorf("unknown timeframe %q", c.Timeframe)
		}
		if p.StartYear == 0 {
			p.StartYear = tf.StartYear
		}
		if p.NumYears == 0 {
			p.NumYears = tf.NumYears
		}
	}
	return p, nil
}
