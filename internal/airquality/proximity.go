package airquality

import (
	"math"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/breatheroute/airindex/internal/aqi"
)

// LocatorConfig holds configuration for station lookups.
type LocatorConfig struct {
	// MaxDistanceKm is the maximum distance at which a station is still
	// considered representative. Default: 50.
	MaxDistanceKm float64

	// Clock is the time source for measurement age. Default: real clock.
	Clock clockwork.Clock
}

// DefaultLocatorConfig returns the default configuration.
func DefaultLocatorConfig() LocatorConfig {
	return LocatorConfig{
		MaxDistanceKm: 50,
		Clock:         clockwork.NewRealClock(),
	}
}

// Locator finds nearby stations and measures reading freshness.
type Locator struct {
	maxDistanceKm float64
	clock         clockwork.Clock
}

// NewLocator creates a Locator, filling unset fields from DefaultLocatorConfig.
func NewLocator(cfg LocatorConfig) *Locator {
	if cfg.MaxDistanceKm <= 0 {
		cfg.MaxDistanceKm = DefaultLocatorConfig().MaxDistanceKm
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &Locator{maxDistanceKm: cfg.MaxDistanceKm, clock: cfg.Clock}
}

// Nearest returns the stations within range of p, closest first. When
// pollutant is non-empty, stations known not to measure it are skipped;
// stations with no pollutant list are kept.
func (l *Locator) Nearest(p Point, stations []*Station, pollutant aqi.Pollutant) ([]StationMatch, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	matches := make([]StationMatch, 0, len(stations))
	for _, s := range stations {
		if s == nil || s.Validate() != nil {
			continue
		}
		if pollutant != "" && len(s.Pollutants) > 0 && !s.Measures(pollutant) {
			continue
		}
		d := DistanceKm(p, s.Point)
		if d <= l.maxDistanceKm {
			matches = append(matches, StationMatch{Station: s, DistanceKm: d})
		}
	}

	if len(matches) == 0 {
		return nil, ErrNoStationsInRange
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].DistanceKm < matches[b].DistanceKm
	})
	return matches, nil
}

// FreshnessMinutes returns the whole minutes elapsed since measuredAt, or nil
// when the time is unknown or lies in the future.
func (l *Locator) FreshnessMinutes(measuredAt time.Time) *int {
	if measuredAt.IsZero() {
		return nil
	}
	age := l.clock.Since(measuredAt)
	if age < 0 {
		return nil
	}
	minutes := int(age / time.Minute)
	return &minutes
}

// Assess rates a station reading for a location. A nil station yields the
// assessment for an unknown source.
func (l *Locator) Assess(p Point, s *Station) aqi.ConfidenceAssessment {
	if s == nil {
		return aqi.Assess(nil, nil)
	}

	var distance *float64
	if p.Validate() == nil && s.Validate() == nil {
		d := DistanceKm(p, s.Point)
		distance = &d
	}
	return aqi.Assess(distance, l.FreshnessMinutes(s.MeasuredAt))
}

// DistanceKm returns the great-circle distance between two points in
// kilometres using the haversine formula.
func DistanceKm(a, b Point) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := a.Lat * math.Pi / 180
	lat2Rad := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}
