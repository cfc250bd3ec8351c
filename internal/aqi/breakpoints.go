package aqi

import "fmt"

// StandardName identifies an index standard.
type StandardName string

const (
	StandardEPA  StandardName = "epa"
	StandardNAQI StandardName = "naqi"
)

// BreakpointSegment maps a concentration range linearly onto an index range.
// Within a pollutant, each segment starts where the previous one ends.
type BreakpointSegment struct {
	Pollutant Pollutant `json:"pollutant"`
	ConcLow   float64   `json:"concentrationLow"`
	ConcHigh  float64   `json:"concentrationHigh"`
	IndexLow  int       `json:"indexLow"`
	IndexHigh int       `json:"indexHigh"`
}

// band is one severity band of a standard. Bounds are inclusive.
type band struct {
	indexLow  int
	indexHigh int
	severity  Severity
}

// Standard is an immutable set of breakpoint tables and severity bands.
type Standard struct {
	name     StandardName
	tables   map[Pollutant][]BreakpointSegment
	priority []Pollutant
	bands    []band
}

// Name returns the standard identifier.
func (s *Standard) Name() StandardName {
	return s.name
}

// Pollutants returns the supported pollutants in reporting priority order.
func (s *Standard) Pollutants() []Pollutant {
	out := make([]Pollutant, len(s.priority))
	copy(out, s.priority)
	return out
}

// Breakpoints returns a copy of the segments for a pollutant.
func (s *Standard) Breakpoints(p Pollutant) ([]BreakpointSegment, error) {
	segs, ok := s.tables[p]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPollutant, p)
	}
	out := make([]BreakpointSegment, len(segs))
	copy(out, segs)
	return out, nil
}

// Severities returns the category bands in ascending order.
func (s *Standard) Severities() []Severity {
	out := make([]Severity, 0, len(s.bands))
	for _, b := range s.bands {
		out = append(out, b.severity)
	}
	return out
}

// IndexRange returns the inclusive index bounds of a category's band.
func (s *Standard) IndexRange(c Category) (low, high int, ok bool) {
	for _, b := range s.bands {
		if b.severity.Category == c {
			return b.indexLow, b.indexHigh, true
		}
	}
	return 0, 0, false
}

// segments builds a contiguous table from ascending upper bounds. Band i spans
// (highs[i-1], highs[i]] in concentration and indexBands[i] in index.
func segments(p Pollutant, highs []float64, indexBands [][2]int) []BreakpointSegment {
	if len(highs) != len(indexBands) {
		panic("aqi: breakpoint table for " + string(p) + " is malformed")
	}
	out := make([]BreakpointSegment, len(highs))
	low := 0.0
	for i, high := range highs {
		out[i] = BreakpointSegment{
			Pollutant: p,
			ConcLow:   low,
			ConcHigh:  high,
			IndexLow:  indexBands[i][0],
			IndexHigh: indexBands[i][1],
		}
		low = high
	}
	return out
}

var epaIndexBands = [][2]int{{0, 50}, {51, 100}, {101, 150}, {151, 200}, {201, 300}, {301, 500}}

var naqiIndexBands = [][2]int{{0, 50}, {51, 100}, {101, 200}, {201, 300}, {301, 400}, {401, 500}}

// EPA tables: PM in µg/m³, O3 and CO in ppm, NO2 and SO2 in ppb. O3 uses
// 8-hour values up to 0.200 ppm and 1-hour values for the hazardous band.
var epa = &Standard{
	name: StandardEPA,
	tables: map[Pollutant][]BreakpointSegment{
		PollutantPM25: segments(PollutantPM25, []float64{12.0, 35.4, 55.4, 150.4, 250.4, 500.4}, epaIndexBands),
		PollutantPM10: segments(PollutantPM10, []float64{54, 154, 254, 354, 424, 604}, epaIndexBands),
		PollutantO3:   segments(PollutantO3, []float64{0.054, 0.070, 0.085, 0.105, 0.200, 0.604}, epaIndexBands),
		PollutantCO:   segments(PollutantCO, []float64{4.4, 9.4, 12.4, 15.4, 30.4, 50.4}, epaIndexBands),
		PollutantNO2:  segments(PollutantNO2, []float64{53, 100, 360, 649, 1249, 2049}, epaIndexBands),
		PollutantSO2:  segments(PollutantSO2, []float64{35, 75, 185, 304, 604, 1004}, epaIndexBands),
	},
	priority: []Pollutant{PollutantPM25, PollutantPM10, PollutantO3, PollutantCO, PollutantNO2, PollutantSO2},
	bands: []band{
		{0, 50, Severity{CategoryGood, "#10B981",
			"Air quality is satisfactory, and air pollution poses little or no risk."}},
		{51, 100, Severity{CategoryModerate, "#F59E0B",
			"Air quality is acceptable. However, there may be a risk for some people, particularly those who are unusually sensitive to air pollution."}},
		{101, 150, Severity{CategoryUnhealthySensitive, "#F97316",
			"Members of sensitive groups may experience health effects. The general public is less likely to be affected."}},
		{151, 200, Severity{CategoryUnhealthy, "#EF4444",
			"Some members of the general public may experience health effects; members of sensitive groups may experience more serious health effects."}},
		{201, 300, Severity{CategoryVeryUnhealthy, "#8B5CF6",
			"Health alert: The risk of health effects is increased for everyone."}},
		{301, 500, Severity{CategoryHazardous, "#991B1B",
			"Health warning of emergency conditions: everyone is more likely to be affected."}},
	},
}

// NAQI tables (India, CPCB): µg/m³ except CO in mg/m³.
var naqi = &Standard{
	name: StandardNAQI,
	tables: map[Pollutant][]BreakpointSegment{
		PollutantPM25: segments(PollutantPM25, []float64{30, 60, 90, 120, 250, 500}, naqiIndexBands),
		PollutantPM10: segments(PollutantPM10, []float64{50, 100, 250, 350, 430, 600}, naqiIndexBands),
		PollutantO3:   segments(PollutantO3, []float64{50, 100, 168, 208, 748, 1000}, naqiIndexBands),
		PollutantCO:   segments(PollutantCO, []float64{1.0, 2.0, 10.0, 17.0, 34.0, 50.0}, naqiIndexBands),
		PollutantNO2:  segments(PollutantNO2, []float64{40, 80, 180, 280, 400, 600}, naqiIndexBands),
		PollutantSO2:  segments(PollutantSO2, []float64{40, 80, 380, 800, 1600, 2400}, naqiIndexBands),
		PollutantNH3:  segments(PollutantNH3, []float64{200, 400, 800, 1200, 1800, 2400}, naqiIndexBands),
	},
	priority: []Pollutant{PollutantPM25, PollutantPM10, PollutantO3, PollutantCO, PollutantNO2, PollutantSO2, PollutantNH3},
	bands: []band{
		{0, 50, Severity{CategoryGood, "#009966", "Minimal impact on health."}},
		{51, 100, Severity{CategorySatisfactory, "#FFDE33", "Minor breathing discomfort to sensitive people."}},
		{101, 200, Severity{CategoryModerate, "#FF9933",
			"Breathing discomfort to people with lungs, asthma and heart diseases."}},
		{201, 300, Severity{CategoryPoor, "#FF0000", "Breathing discomfort to most people on prolonged exposure."}},
		{301, 400, Severity{CategoryVeryPoor, "#990066",
			"Respiratory illness on prolonged exposure. Effect may be felt even in healthy people."}},
		{401, 500, Severity{CategorySevere, "#7E0023",
			"Affects healthy people and seriously affects those with existing diseases. Avoid outdoor activities."}},
	},
}

// EPA returns the US EPA standard.
func EPA() *Standard { return epa }

// NAQI returns the Indian National Air Quality Index standard.
func NAQI() *Standard { return naqi }

// StandardByName resolves a standard identifier. An empty name selects EPA.
func StandardByName(name StandardName) (*Standard, error) {
	switch name {
	case StandardEPA, "":
		return epa, nil
	case StandardNAQI:
		return naqi, nil
	default:
		return nil, fmt.Errorf("%w: unknown standard %q", ErrInvalidInput, name)
	}
}

// Standards returns every supported standard.
func Standards() []*Standard {
	return []*Standard{epa, naqi}
}
