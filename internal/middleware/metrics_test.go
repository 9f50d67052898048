package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/middleware"
)

// TestMetrics_LabelsByRoutePattern verifies requests to the same route with
// different path parameters share one series.
func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	mw, err := middleware.NewMetrics(reg)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(mw)
	r.Delete("/api/trip/days/{date}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, date := range []string{"2026-02-04", "2026-02-05"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/trip/days/"+date, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	families, err := reg.Gather()
	require.NoError(t, err)

	var found, timed bool
	for _, mf := range families {
		if mf.GetName() == "tripplanner_http_request_duration_seconds" {
			require.Len(t, mf.GetMetric(), 1)
			assert.Equal(t, uint64(2), mf.GetMetric()[0].GetHistogram().GetSampleCount())
			timed = true
		}
		if mf.GetName() != "tripplanner_http_requests_total" {
			continue
		}
		require.Len(t, mf.GetMetric(), 1)
		m := mf.GetMetric()[0]
		assert.Equal(t, float64(2), m.GetCounter().GetValue())
		labels := map[string]string{}
		for _, lp := range m.GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
		assert.Equal(t, "/api/trip/days/{date}", labels["route"])
		assert.Equal(t, "DELETE", labels["method"])
		assert.Equal(t, "200", labels["code"])
		found = true
	}
	assert.True(t, found, "request counter not exported")
	assert.True(t, timed, "request histogram not exported")
}

func TestMetrics_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := middleware.NewMetrics(reg)
	require.NoError(t, err)

	_, err = middleware.NewMetrics(reg)

	assert.Error(t, err)
}
