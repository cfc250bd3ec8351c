package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breatheroute/airindex/internal/api/models"
)

func TestTimestamp_RoundTrip(t *testing.T) {
	ts := models.Timestamp(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-03-14T09:30:00Z"`, string(data))

	var got models.Timestamp
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, ts.Time().Equal(got.Time()))
}

func TestTimestamp_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not a string", `1710408600`},
		{"not RFC3339", `"14/03/2026 09:30"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts models.Timestamp
			assert.Error(t, json.Unmarshal([]byte(tt.input), &ts))
		})
	}
}

func TestStation_NullMeasuredAt(t *testing.T) {
	var st models.Station
	require.NoError(t, json.Unmarshal([]byte(`{"point":{"lat":28.6,"lon":77.2},"measuredAt":null}`), &st))
	assert.Nil(t, st.MeasuredAt)
	assert.Equal(t, 28.6, st.Point.Lat)
}

func TestHealthStatus_WireValues(t *testing.T) {
	tests := []struct {
		status models.HealthStatus
		want   string
	}{
		{models.HealthStatusOK, `{"status":"OK","time":"2026-03-14T09:30:00Z"}`},
		{models.HealthStatusFail, `{"status":"FAIL","time":"2026-03-14T09:30:00Z"}`},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			data, err := json.Marshal(models.Health{
				Status: tt.status,
				Time:   models.Timestamp(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)),
			})
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}
