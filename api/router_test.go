package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorStatus(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedField  string
		retryable      bool
	}{
		{name: "Validation", err: domain.NewValidationError("time", "a time must be selected"), expectedStatus: http.StatusBadRequest, expectedField: "time"},
		{name: "Transient", err: domain.NewTransientError("load session", errors.New("timeout")), expectedStatus: http.StatusServiceUnavailable, retryable: true},
		{name: "Fatal", err: domain.NewFatalError("submit payment", "card declined"), expectedStatus: http.StatusPaymentRequired},
		{name: "Session not found", err: domain.ErrSessionNotFound, expectedStatus: http.StatusNotFound},
		{name: "Cannot go back", err: domain.ErrCannotGoBack, expectedStatus: http.StatusConflict},
		{name: "Payment in progress", err: domain.ErrPaymentInProgress, expectedStatus: http.StatusConflict},
		{name: "Unknown", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := errorStatus(tc.err)
			assert.Equal(t, tc.expectedStatus, status)
			assert.Equal(t, tc.expectedField, body.Field)
			assert.Equal(t, tc.retryable, body.Retryable)
		})
	}
}

func TestWriteError_HidesInfrastructureCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/fail", func(c *gin.Context) {
		writeError(c, domain.NewTransientError("load session", errors.New("dial tcp 10.1.2.3:6379: connection refused")))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/fail", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"load session: temporarily unavailable","retryable":true}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "10.1.2.3")

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	assert.Contains(t, entries[0].ContextMap()["error"], "connection refused")
}

func TestRouter_RoutesAndHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	catalogService := &MockCatalogUseCase{}
	bookingService := &MockBookingUseCase{}

	router := NewRouter(RouterConfig{
		Catalog:  catalogService,
		Bookings: bookingService,
		Gatherer: prometheus.NewRegistry(),
		Checks: map[string]HealthCheck{
			"redis": func(context.Context) error { return nil },
		},
	})

	catalogService.On("ListAgents", mock.Anything).Return([]domain.Agent{sarah}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/agents", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/options", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"ok"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_UnhealthyDependency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(RouterConfig{
		Checks: map[string]HealthCheck{
			"kafka": func(context.Context) error { return errors.New("no brokers") },
		},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "no brokers")
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(1, 2, nil)

	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(60, 1, nil)
	now := time.Unix(1700000000, 0)
	limiter.now = func() time.Time { return now }
	limiter.lastSweep = now

	limiter.limiter("10.0.0.1")
	limiter.limiter("10.0.0.2")
	assert.Len(t, limiter.limiters, 2)

	now = now.Add(5 * time.Minute)
	limiter.limiter("10.0.0.2")
	assert.Len(t, limiter.limiters, 2)

	// 10.0.0.1 has been idle for the full window, 10.0.0.2 only for half.
	now = now.Add(limiterIdleTTL - 5*time.Minute)
	limiter.limiter("10.0.0.3")
	assert.Len(t, limiter.limiters, 2)
	assert.NotContains(t, limiter.limiters, "10.0.0.1")
	assert.Contains(t, limiter.limiters, "10.0.0.2")
	assert.Contains(t, limiter.limiters, "10.0.0.3")
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery(zap.NewNop()))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(RouterConfig{
		Catalog:     &MockCatalogUseCase{},
		Bookings:    &MockBookingUseCase{},
		CORSOrigins: []string{"*"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/api/v1/flows", nil)
	req.Header.Set("Origin", "http://localhost:19006")
	req.Header.Set("Access-Control-Request-Method", "POST")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
