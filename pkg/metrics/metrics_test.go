package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRequest(http.MethodGet, "/health", 200, time.Millisecond)
		m.BookingTransition("accept", "Accepted")
		m.NotificationFailed()
		m.EventFailed()
	})
}

func TestCounters(t *testing.T) {
	m := New("test")

	m.BookingTransition("accept", "Accepted")
	m.BookingTransition("accept", "Accepted")
	m.NotificationFailed()

	body := scrape(t, m)
	assert.Contains(t, body, `test_booking_transitions_total{event="accept",status="Accepted"} 2`)
	assert.Contains(t, body, "test_notification_failures_total 1")
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New("test")
	m.ObserveRequest(http.MethodGet, "/health", 200, time.Millisecond)

	assert.Contains(t, scrape(t, m), `test_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}
