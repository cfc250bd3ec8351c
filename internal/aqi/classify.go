package aqi

// Category is a severity label.
type Category string

const (
	CategoryGood               Category = "Good"
	CategoryModerate           Category = "Moderate"
	CategoryUnhealthySensitive Category = "Unhealthy for Sensitive Groups"
	CategoryUnhealthy          Category = "Unhealthy"
	CategoryVeryUnhealthy      Category = "Very Unhealthy"
	CategoryHazardous          Category = "Hazardous"

	// NAQI-only labels.
	CategorySatisfactory Category = "Satisfactory"
	CategoryPoor         Category = "Poor"
	CategoryVeryPoor     Category = "Very Poor"
	CategorySevere       Category = "Severe"

	CategoryUnknown Category = "Unknown"
)

// Severity is the display interpretation of an index.
type Severity struct {
	Category Category `json:"category"`
	Color    string   `json:"color"`
	Message  string   `json:"message"`
}

// unknownSeverity is returned when there is no index to classify.
var unknownSeverity = Severity{
	Category: CategoryUnknown,
	Color:    "#9CA3AF",
	Message:  "No air quality data available for this location.",
}

// UnknownSeverity returns the severity used when no index is available.
func UnknownSeverity() Severity {
	return unknownSeverity
}

// Classify maps an EPA index onto its severity band.
func Classify(index int) Severity {
	return epa.Classify(index)
}

// SeverityFor classifies an optional EPA index; nil yields the Unknown severity.
func SeverityFor(index *int) Severity {
	return epa.SeverityFor(index)
}

// Classify maps an index onto the standard's severity bands. Bands are
// inclusive on both ends; anything above the top band is reported in it.
// Negative indices are not valid and classify as Unknown.
func (s *Standard) Classify(index int) Severity {
	if index < 0 {
		return unknownSeverity
	}
	for _, b := range s.bands {
		if index <= b.indexHigh {
			return b.severity
		}
	}
	return s.bands[len(s.bands)-1].severity
}

// SeverityFor classifies an optional index; nil yields the Unknown severity.
func (s *Standard) SeverityFor(index *int) Severity {
	if index == nil {
		return unknownSeverity
	}
	return s.Classify(*index)
}

// IsKnown reports whether c is one of the categories this package produces.
func (c Category) IsKnown() bool {
	switch c {
	case CategoryGood, CategoryModerate, CategoryUnhealthySensitive, CategoryUnhealthy,
		CategoryVeryUnhealthy, CategoryHazardous, CategorySatisfactory, CategoryPoor,
		CategoryVeryPoor, CategorySevere, CategoryUnknown:
		return true
	default:
		return false
	}
}
