package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRouteNamer(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/matches/simulate", nil)
	assert.Equal(t, "POST /v1/matches/simulate", DefaultRouteNamer(req))
}

func TestGlobalMetricsIsASingleton(t *testing.T) {
	a := GlobalMetrics()
	b := GlobalMetrics()
	assert.Same(t, a, b)
}

func TestMetricsMiddlewareCountsRequestsAndErrors(t *testing.T) {
	m := GlobalMetrics()
	before := m.RequestsTotal.Value()

	handler := MetricsMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/ladder/2026", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, before+1, m.RequestsTotal.Value())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMetricsMiddlewareUsesCustomRouteNamer(t *testing.T) {
	var captured string
	namer := func(r *http.Request) string {
		captured = r.URL.Path
		return captured
	}

	handler := MetricsMiddleware(namer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/v1/fixtures", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "/v1/fixtures", captured)
}
