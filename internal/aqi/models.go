// Package aqi computes Air Quality Index values from pollutant concentrations
// and interprets them as severity categories, exposure estimates and
// confidence levels.
//
// Everything in this package is a pure function over read-only breakpoint
// tables, so it is safe to call from any number of goroutines.
package aqi

import "errors"

// Calculation errors.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoValidInput     = errors.New("no valid pollutant readings")
	ErrUnknownPollutant = errors.New("unknown pollutant")
)

// Pollutant identifies a measured pollutant.
type Pollutant string

const (
	PollutantPM25 Pollutant = "pm25"
	PollutantPM10 Pollutant = "pm10"
	PollutantO3   Pollutant = "o3"
	PollutantCO   Pollutant = "co"
	PollutantNO2  Pollutant = "no2"
	PollutantSO2  Pollutant = "so2"
	PollutantNH3  Pollutant = "nh3"
)

var displayNames = map[Pollutant]string{
	PollutantPM25: "PM2.5",
	PollutantPM10: "PM10",
	PollutantO3:   "O₃",
	PollutantCO:   "CO",
	PollutantNO2:  "NO₂",
	PollutantSO2:  "SO₂",
	PollutantNH3:  "NH₃",
}

// DisplayName returns the human-readable name of the pollutant, e.g. "PM2.5".
// Unknown identifiers are returned unchanged.
func (p Pollutant) DisplayName() string {
	if name, ok := displayNames[p]; ok {
		return name
	}
	return string(p)
}

// PollutantReading is a single concentration supplied by a caller.
// A nil Concentration means the pollutant was not measured.
type PollutantReading struct {
	Pollutant     Pollutant `json:"pollutant"`
	Concentration *float64  `json:"concentration"`
}

// Reading builds a PollutantReading with a present concentration.
func Reading(p Pollutant, concentration float64) PollutantReading {
	return PollutantReading{Pollutant: p, Concentration: &concentration}
}

// SubIndex is the index computed for one pollutant in isolation.
type SubIndex struct {
	Pollutant Pollutant `json:"pollutant"`
	Value     int       `json:"value"`
}

// AggregateResult is the overall index across all supplied pollutants.
type AggregateResult struct {
	Standard StandardName `json:"standard"`

	// OverallIndex is nil only when no valid readings were supplied.
	OverallIndex *int `json:"aqi"`

	// DominantPollutant is the pollutant whose sub-index set OverallIndex.
	DominantPollutant *Pollutant `json:"dominantPollutant"`

	Severity

	SubIndices map[Pollutant]int `json:"subIndices"`
}

// Cigarettes returns the cigarette-equivalent exposure for the overall index,
// or 0 when there is no index.
func (r AggregateResult) Cigarettes() float64 {
	if r.OverallIndex == nil {
		return 0
	}
	return CigaretteEquivalent(*r.OverallIndex)
}

// SubIndexList returns the sub-indices ordered by the standard's reporting priority.
func (r AggregateResult) SubIndexList() []SubIndex {
	std, err := StandardByName(r.Standard)
	if err != nil {
		std = EPA()
	}
	list := make([]SubIndex, 0, len(r.SubIndices))
	for _, p := range std.priority {
		if v, ok := r.SubIndices[p]; ok {
			list = append(list, SubIndex{Pollutant: p, Value: v})
		}
	}
	return list
}
