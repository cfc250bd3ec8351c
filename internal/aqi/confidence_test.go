package aqi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/breatheroute/airindex/internal/aqi"
)

func f64(v float64) *float64 { return &v }

func intp(v int) *int { return &v }

func TestAssess(t *testing.T) {
	tests := []struct {
		name      string
		distance  *float64
		freshness *int
		expected  aqi.Confidence
	}{
		{"near and fresh", f64(2), intp(30), aqi.ConfidenceHigh},
		{"far and stale", f64(20), intp(200), aqi.ConfidenceLow},
		{"on the high boundary", f64(5), intp(59), aqi.ConfidenceHigh},
		{"hour old", f64(5), intp(60), aqi.ConfidenceMedium},
		{"moderate distance fresh", f64(10), intp(30), aqi.ConfidenceMedium},
		{"near but aging", f64(3), intp(90), aqi.ConfidenceMedium},
		{"medium boundaries", f64(15), intp(119), aqi.ConfidenceMedium},
		{"near but stale", f64(3), intp(120), aqi.ConfidenceLow},
		{"just beyond medium distance", f64(15.1), intp(10), aqi.ConfidenceLow},
		{"unknown distance fresh", nil, intp(30), aqi.ConfidenceMedium},
		{"unknown distance aging", nil, intp(90), aqi.ConfidenceLow},
		{"near unknown freshness", f64(3), nil, aqi.ConfidenceMedium},
		{"moderate distance unknown freshness", f64(10), nil, aqi.ConfidenceLow},
		{"nothing known", nil, nil, aqi.ConfidenceLow},
		{"negative distance is unknown", f64(-1), intp(30), aqi.ConfidenceMedium},
		{"negative freshness is unknown", f64(2), intp(-5), aqi.ConfidenceMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, aqi.Assess(tt.distance, tt.freshness).Level)
		})
	}
}

func TestAssess_UnknownNeverHigh(t *testing.T) {
	for _, d := range []float64{0, 1, 5, 10} {
		assert.NotEqual(t, aqi.ConfidenceHigh, aqi.Assess(f64(d), nil).Level)
	}
	for _, m := range []int{0, 1, 30, 59} {
		assert.NotEqual(t, aqi.ConfidenceHigh, aqi.Assess(nil, intp(m)).Level)
	}
}

func TestAssess_EchoesInputs(t *testing.T) {
	got := aqi.Assess(f64(4.2), intp(12))
	assert.Equal(t, 4.2, *got.DistanceKm)
	assert.Equal(t, 12, *got.FreshnessMinutes)

	got = aqi.Assess(f64(-3), nil)
	assert.Nil(t, got.DistanceKm)
	assert.Nil(t, got.FreshnessMinutes)
}
