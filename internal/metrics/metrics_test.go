package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anitrack/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveResolution(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ObserveResolution("ok")
	m.ObserveResolution("ok")
	m.ObserveResolution("expired")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionResolutions.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionResolutions.WithLabelValues("expired")))
}

func TestHandler(t *testing.T) {
	reg, m := metrics.NewRegistry()
	m.ObserveRequest("/api/auth/me", http.MethodGet, http.StatusOK, 15*time.Millisecond)
	m.ObserveResolution("no_cookie")

	rr := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `anitrack_http_request_duration_seconds_count{method="GET",route="/api/auth/me",status="200"} 1`)
	assert.Contains(t, body, `anitrack_session_resolutions_total{outcome="no_cookie"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
