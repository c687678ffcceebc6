package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBacktest(t *testing.T) {
	r := NewRegistry()

	r.RecordBacktest("ok", 10, 0.0001)
	r.RecordBacktest("ok", 20, 0.0002)
	r.RecordBacktest("INVALID_ALLOCATION", 0, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.backtestsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.backtestsTotal.WithLabelValues("INVALID_ALLOCATION")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.backtestYears))
}

func TestRecordRequest(t *testing.T) {
	r := NewRegistry()
	r.RecordRequest("POST", "/api/v1/backtest", 200, 0.01)
	r.RecordRequest("POST", "/api/v1/backtest", 400, 0.01)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequestsTotal.WithLabelValues("POST", "/api/v1/backtest", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequestsTotal.WithLabelValues("POST", "/api/v1/backtest", "400")))

	r.InFlightInc()
	r.InFlightInc()
	r.InFlightDec()
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequestsInFlight))
}

func TestRecordStored(t *testing.T) {
	r := NewRegistry()
	r.RecordStored(true)
	r.RecordStored(false)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.resultsStored.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.resultsStored.WithLabelValues("error")))
}

func TestRegistryGathers(t *testing.T) {
	r := NewRegistry()
	r.RecordBacktest("ok", 5, 0.00001)
	families, err := r.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["backtest_runs_total"])
	assert.True(t, names["go_goroutines"])
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.RecordBacktest("ok", 1, 0)
		r.RecordStored(true)
		r.RecordRequest("GET", "/", 200, 0)
		r.InFlightInc()
		r.InFlightDec()
	})
}
