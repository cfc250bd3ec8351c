package models

import "github.com/breatheroute/airindex/internal/aqi"

// PollutantBreakpoints is one pollutant's breakpoint table.
type PollutantBreakpoints struct {
	Pollutant   aqi.Pollutant           `json:"pollutant"`
	DisplayName string                  `json:"displayName"`
	Segments    []aqi.BreakpointSegment `json:"segments"`
}

// CategoryBand is one severity band of a standard. The index bounds are
// inclusive and omitted for the Unknown band.
type CategoryBand struct {
	Category  aqi.Category `json:"category"`
	Color     string       `json:"color"`
	Message   string       `json:"message"`
	IndexLow  *int         `json:"indexLow,omitempty"`
	IndexHigh *int         `json:"indexHigh,omitempty"`
}

// Breakpoints describes a standard's full classification scheme.
type Breakpoints struct {
	Standard   aqi.StandardName       `json:"standard"`
	Pollutants []PollutantBreakpoints `json:"pollutants"`
	Categories []CategoryBand         `json:"categories"`
	Unknown    CategoryBand           `json:"unknown"`
}

// Enums represents the enum values used by the API.
type Enums struct {
	Standards  []aqi.StandardName `json:"standards"`
	Pollutants []aqi.Pollutant    `json:"pollutants"`
	Categories []aqi.Category     `json:"categories"`
	Confidence []Confidence       `json:"confidence"`
}
