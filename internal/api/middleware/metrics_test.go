package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/breatheroute/airindex/internal/api/middleware"
)

func newTestMetrics(t *testing.T) (*middleware.Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	metrics, err := middleware.NewMetricsWithMeter(provider.Meter("test"))
	require.NoError(t, err)
	return metrics, reader
}

// requestTotals returns the request counter's data points keyed by status code.
func requestTotals(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.DataPoint[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.DataPoint[int64]{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http.server.request.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				status, _ := dp.Attributes.Value("http.response.status_code")
				out[status.AsString()] = dp
			}
		}
	}
	return out
}

func TestNewMetrics(t *testing.T) {
	metrics, err := middleware.NewMetrics()
	require.NoError(t, err)
	assert.NotNil(t, metrics)
}

func TestMetrics_Middleware_StatusCodes(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCode  string
		wantError bool
	}{
		{name: "success", status: http.StatusOK, wantCode: "200"},
		{name: "bad request", status: http.StatusBadRequest, wantCode: "400", wantError: true},
		{name: "server error", status: http.StatusInternalServerError, wantCode: "500", wantError: true},
		{name: "implicit 200", wantCode: "200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics, reader := newTestMetrics(t)

			handler := metrics.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				_, _ = w.Write([]byte("body"))
			}))

			req := httptest.NewRequest(http.MethodPost, "/v1/aqi/calculate", http.NoBody)
			handler.ServeHTTP(httptest.NewRecorder(), req)

			totals := requestTotals(t, reader)
			require.Contains(t, totals, tt.wantCode)
			dp := totals[tt.wantCode]
			assert.Equal(t, int64(1), dp.Value)

			_, hasError := dp.Attributes.Value("error")
			assert.Equal(t, tt.wantError, hasError)
		})
	}
}

func TestMetrics_Middleware_LabelsByRoutePattern(t *testing.T) {
	metrics, reader := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/v1/metadata/{kind}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/v1/metadata/enums", "/v1/metadata/breakpoints"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	dp := requestTotals(t, reader)["200"]
	assert.Equal(t, int64(2), dp.Value)
	route, ok := dp.Attributes.Value(attribute.Key("http.route"))
	require.True(t, ok)
	assert.Equal(t, "/v1/metadata/{kind}", route.AsString())
}
