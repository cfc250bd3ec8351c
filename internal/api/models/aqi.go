package models

import "github.com/breatheroute/airindex/internal/aqi"

// Reading is one pollutant measurement. A null concentration means the
// station did not report the pollutant.
type Reading struct {
	Pollutant     aqi.Pollutant `json:"pollutant"`
	Concentration *float64      `json:"concentration"`
}

// Station describes the monitoring station a reading came from.
type Station struct {
	ID         string     `json:"id,omitempty"`
	Name       string     `json:"name,omitempty"`
	Point      Point      `json:"point"`
	MeasuredAt *Timestamp `json:"measuredAt,omitempty"`

	// Pollutants lists what the station measures. Empty means unknown.
	Pollutants []aqi.Pollutant `json:"pollutants,omitempty"`
}

// CalculateRequest is the body of POST /v1/aqi/calculate.
type CalculateRequest struct {
	Standard         aqi.StandardName `json:"standard,omitempty"`
	Readings         []Reading        `json:"readings"`
	DistanceKm       *float64         `json:"distanceKm,omitempty"`
	FreshnessMinutes *int             `json:"freshnessMinutes,omitempty"`

	// Location and Station let the server derive distance and freshness.
	// Without Station, the nearest in-range entry of Stations is used.
	Location *Point    `json:"location,omitempty"`
	Station  *Station  `json:"station,omitempty"`
	Stations []Station `json:"stations,omitempty"`
}

// InterpretRequest is the body of POST /v1/aqi/interpret.
type InterpretRequest struct {
	Standard         aqi.StandardName `json:"standard,omitempty"`
	AQI              *int             `json:"aqi"`
	DistanceKm       *float64         `json:"distanceKm,omitempty"`
	FreshnessMinutes *int             `json:"freshnessMinutes,omitempty"`
}

// ConvertRequest is the body of POST /v1/aqi/convert.
type ConvertRequest struct {
	From       aqi.StandardName      `json:"from"`
	To         aqi.StandardName      `json:"to"`
	SubIndices map[aqi.Pollutant]int `json:"subIndices"`
}

// SubIndex is a single pollutant's index.
type SubIndex struct {
	Pollutant   aqi.Pollutant `json:"pollutant"`
	DisplayName string        `json:"displayName"`
	Value       int           `json:"value"`
}

// IndexResult is an overall index with its interpretation.
type IndexResult struct {
	Standard          aqi.StandardName `json:"standard"`
	AQI               *int             `json:"aqi"`
	DominantPollutant *aqi.Pollutant   `json:"dominantPollutant"`
	Category          aqi.Category     `json:"category"`
	Color             string           `json:"color"`
	Message           string           `json:"message"`
	SubIndices        []SubIndex       `json:"subIndices"`
}

// ConfidenceAssessment echoes the inputs used to rate a reading.
type ConfidenceAssessment struct {
	Level            Confidence `json:"level"`
	DistanceKm       *float64   `json:"distanceKm"`
	FreshnessMinutes *int       `json:"freshnessMinutes"`
}

// Report is the response of the calculate and interpret endpoints.
type Report struct {
	IndexResult
	CigarettesPerDay float64              `json:"cigarettesPerDay"`
	Confidence       ConfidenceAssessment `json:"confidence"`
}

// ConvertResponse is the response of POST /v1/aqi/convert.
type ConvertResponse struct {
	From           aqi.StandardName          `json:"from"`
	To             aqi.StandardName          `json:"to"`
	Concentrations map[aqi.Pollutant]float64 `json:"concentrations"`
	Result         IndexResult               `json:"result"`
}
