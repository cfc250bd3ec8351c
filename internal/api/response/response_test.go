package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breatheroute/airindex/internal/api/middleware"
	"github.com/breatheroute/airindex/internal/api/models"
	"github.com/breatheroute/airindex/internal/api/response"
)

// serve runs fn behind the RequestID middleware and returns the recorded response.
func serve(t *testing.T, method, path string, fn http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	middleware.RequestID(fn).ServeHTTP(rec, httptest.NewRequest(method, path, http.NoBody))
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) models.Problem {
	t.Helper()
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	var p models.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestJSON(t *testing.T) {
	rec := serve(t, http.MethodGet, "/v1/ops/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]int{"aqi": 42})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.JSONEq(t, `{"aqi":42}`, rec.Body.String())
}

func TestJSON_NilDataAndNoRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	response.JSON(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody), http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Request-Id"))
	assert.Empty(t, rec.Body.String())
}

func TestProblemResponses(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		write      http.HandlerFunc
		wantStatus int
		wantType   string
		wantDetail string
	}{
		{
			name:   "bad request",
			method: http.MethodPost,
			write: func(w http.ResponseWriter, r *http.Request) {
				response.BadRequest(w, r, "request failed validation", []models.FieldError{
					{Field: "standard", Message: `unknown standard "who"`, Code: models.CodeUnknownStandard},
				})
			},
			wantStatus: http.StatusBadRequest,
			wantType:   models.ProblemTypeValidation,
			wantDetail: "request failed validation",
		},
		{
			name:   "not found",
			method: http.MethodGet,
			write: func(w http.ResponseWriter, r *http.Request) {
				response.NotFound(w, r, "no route for /v1/aqi/forecast")
			},
			wantStatus: http.StatusNotFound,
			wantType:   models.ProblemTypeNotFound,
			wantDetail: "no route for /v1/aqi/forecast",
		},
		{
			name:       "method not allowed names the method",
			method:     http.MethodDelete,
			write:      response.MethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantType:   models.ProblemTypeMethodNotAllowed,
			wantDetail: "DELETE is not supported on this resource",
		},
		{
			name:   "internal error",
			method: http.MethodPost,
			write: func(w http.ResponseWriter, r *http.Request) {
				response.InternalError(w, r, "failed to calculate index")
			},
			wantStatus: http.StatusInternalServerError,
			wantType:   models.ProblemTypeInternal,
			wantDetail: "failed to calculate index",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.method, "/v1/aqi/calculate", tt.write)

			assert.Equal(t, tt.wantStatus, rec.Code)
			p := decodeProblem(t, rec)
			assert.Equal(t, tt.wantType, p.Type)
			assert.Equal(t, tt.wantStatus, p.Status)
			assert.Equal(t, tt.wantDetail, p.Detail)
			assert.Equal(t, "/v1/aqi/calculate", p.Instance)
			assert.NotEmpty(t, p.TraceID)
			assert.Equal(t, p.TraceID, rec.Header().Get("X-Request-Id"))
		})
	}
}

func TestBadRequest_FieldErrors(t *testing.T) {
	rec := serve(t, http.MethodPost, "/v1/aqi/interpret", func(w http.ResponseWriter, r *http.Request) {
		response.BadRequest(w, r, "request failed validation", []models.FieldError{
			{Field: "aqi", Message: "must not be negative", Code: models.CodeOutOfRange},
		})
	})

	p := decodeProblem(t, rec)
	require.Len(t, p.Errors, 1)
	assert.Equal(t, "aqi", p.Errors[0].Field)
	assert.Equal(t, models.CodeOutOfRange, p.Errors[0].Code)
}
