package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breatheroute/airindex/internal/api/middleware"
	"github.com/breatheroute/airindex/internal/api/models"
)

func TestRecovery_WritesProblem(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	handler := middleware.RequestID(
		middleware.Recovery(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("breakpoint table missing")
		})),
	)

	req := httptest.NewRequest(http.MethodPost, "/v1/aqi/calculate", http.NoBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var problem models.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, models.ProblemTypeInternal, problem.Type)
	assert.Equal(t, "/v1/aqi/calculate", problem.Instance)
	assert.NotEmpty(t, problem.TraceID)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "panic recovered", entry["message"])
	assert.Equal(t, "breakpoint table missing", entry["panic"])
}

func TestRecovery_PrefersRequestLogger(t *testing.T) {
	var fallback, request bytes.Buffer

	handler := middleware.RequestID(
		middleware.Logger(zerolog.New(&request))(
			middleware.Recovery(zerolog.New(&fallback))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				panic("nil standard")
			})),
		),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/aqi/convert", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, fallback.String())
	assert.Contains(t, request.String(), `"panic":"nil standard"`)
	assert.Contains(t, request.String(), `"request_id"`)
}

func TestRecovery_RepanicsOnAbortHandler(t *testing.T) {
	handler := middleware.Recovery(zerolog.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	})
}
