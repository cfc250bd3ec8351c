package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/breatheroute/airindex/internal/api/middleware"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		clientID []string
		wantKept bool
	}{
		{name: "generated when absent"},
		{name: "client id kept", clientID: []string{"station-sync_7f3a"}, wantKept: true},
		{name: "too long replaced", clientID: []string{strings.Repeat("a", 65)}},
		{name: "space replaced", clientID: []string{"req with space"}},
		{name: "newline replaced", clientID: []string{"req\ninjected"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = middleware.GetRequestID(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/v1/aqi/calculate", http.NoBody)
			if tt.clientID != nil {
				req.Header["X-Request-Id"] = tt.clientID
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			got := rec.Header().Get("X-Request-Id")
			assert.Equal(t, seen, got)
			if tt.wantKept {
				assert.Equal(t, tt.clientID[0], got)
				return
			}
			assert.True(t, strings.HasPrefix(got, "req_"), got)
			assert.Len(t, got, len("req_")+22)
		})
	}
}

func TestNewRequestID_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		id := middleware.NewRequestID()
		assert.NotContains(t, seen, id)
		seen[id] = struct{}{}
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	assert.Empty(t, middleware.GetRequestID(httptest.NewRequest(http.MethodGet, "/", http.NoBody).Context()))
}
