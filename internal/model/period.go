package model

// Period is a holding period: NumYears years ending at StartYear+NumYears-1.
type Period struct {
	StartYear int `json:"start_year" yaml:"start_year"`
	NumYears  int `json:"num_years" yaml:"num_years"`
}

func (p Period) EndYear() int { return p.StartYear + p.NumYears - 1 }

// ClampPeriod fits a requested period into what the table can backtest.
// The earliest start is one year after the table's first row (that row seeds
// the balance). A zero start year means the earliest start; fewer than one
// year means one. The length is capped so the period ends no later than the
// table's last year.
func ClampPeriod(t *ReturnTable, startYear, numYears int) Period {
	first, last := t.FirstYear()+1, t.LastYear()
	if first > last {
		// Only a seed row; nothing to backtest, keep the request shape.
		return Period{StartYear: first, NumYears: 1}
	}
	if startYear == 0 || startYear < first {
		startYear = first
	}
	if startYear > last {
		startYear = last
	}
	if numYears < 1 {
		numYears = 1
	}
	if avail := last + 1 - startYear; numYears > avail {
		numYears = avail
	}
	return Period{StartYear: startYear, NumYears: numYears}
}
