package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/user", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/user", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/user", "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestOTPCounters(t *testing.T) {
	m := New()

	m.OTPIssued("registration", "sent")
	m.OTPIssued("registration", "sent")
	m.OTPRedeemed("password-reset", "expired")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.otpIssued.WithLabelValues("registration", "sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.otpRedeemed.WithLabelValues("password-reset", "expired")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.OTPIssued("registration", "sent")
	m.OTPRedeemed("registration", "ok")

	called := false
	h := m.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestHandler(t *testing.T) {
	m := New()
	m.OTPIssued("registration", "sent")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cinefellas_otp_issued_total{purpose="registration",result="sent"} 1`)
}
