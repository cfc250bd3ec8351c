package aqi

import "math"

// PM25PerCigarette is the sustained PM2.5 concentration (µg/m³) whose daily
// exposure is roughly equivalent to smoking one cigarette (Berkeley Earth).
const PM25PerCigarette = 22.0

// CigaretteEquivalent estimates daily cigarettes from an EPA index by
// recovering the PM2.5 concentration that would produce it. The result is
// rounded to one decimal. Indices at or below zero mean no measurable
// exposure and return 0; indices above 500 are treated as 500.
func CigaretteEquivalent(index int) float64 {
	if index <= 0 {
		return 0
	}
	c, err := epa.Concentration(PollutantPM25, index)
	if err != nil {
		return 0
	}
	return math.Round(c/PM25PerCigarette*10) / 10
}
