package aqi

// Confidence is a coarse trust label for a reading.
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// Confidence thresholds.
const (
	HighConfidenceMaxDistanceKm   = 5.0
	MediumConfidenceMaxDistanceKm = 15.0
	HighConfidenceMaxAgeMinutes   = 60
	MediumConfidenceMaxAgeMinutes = 120
)

// ConfidenceAssessment is the result of Assess.
type ConfidenceAssessment struct {
	Level            Confidence `json:"level"`
	DistanceKm       *float64   `json:"distanceKm"`
	FreshnessMinutes *int       `json:"freshnessMinutes"`
}

// Assess rates how far a reading can be trusted from the distance to its
// station and the age of the measurement. A nil or negative factor is unknown.
//
// HIGH needs both factors known: within 5 km and younger than 60 minutes.
// MEDIUM needs each factor to pass on its own (within 15 km, younger than
// 120 minutes) or, when unknown, the other factor to meet the HIGH bar.
// Everything else is LOW. The three levels are the only granularity offered.
func Assess(distanceKm *float64, freshnessMinutes *int) ConfidenceAssessment {
	if distanceKm != nil && *distanceKm < 0 {
		distanceKm = nil
	}
	if freshnessMinutes != nil && *freshnessMinutes < 0 {
		freshnessMinutes = nil
	}

	result := ConfidenceAssessment{
		Level:            ConfidenceLow,
		DistanceKm:       distanceKm,
		FreshnessMinutes: freshnessMinutes,
	}

	nearby := distanceKm != nil && *distanceKm <= HighConfidenceMaxDistanceKm
	recent := freshnessMinutes != nil && *freshnessMinutes < HighConfidenceMaxAgeMinutes
	if nearby && recent {
		result.Level = ConfidenceHigh
		return result
	}

	distanceOK := recent
	if distanceKm != nil {
		distanceOK = *distanceKm <= MediumConfidenceMaxDistanceKm
	}
	freshnessOK := nearby
	if freshnessMinutes != nil {
		freshnessOK = *freshnessMinutes < MediumConfidenceMaxAgeMinutes
	}
	if distanceOK && freshnessOK {
		result.Level = ConfidenceMedium
	}
	return result
}
