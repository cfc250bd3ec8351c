// Package airquality relates a location to the monitoring station that
// produced its reading: how far away the station is and how old the
// measurement is. Both feed the confidence assessment in package aqi.
package airquality

import (
	"errors"
	"time"

	"github.com/breatheroute/airindex/internal/aqi"
)

// Station errors.
var (
	ErrNoStationsInRange  = errors.New("no stations within range")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate checks that the point lies on the globe.
func (p Point) Validate() error {
	if p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

// Station is a monitoring station that supplied a reading.
type Station struct {
	ID   string
	Name string
	Point

	// Pollutants lists what the station measures. Empty means unknown.
	Pollutants []aqi.Pollutant

	// MeasuredAt is when the station's latest reading was taken.
	// The zero value means the time is unknown.
	MeasuredAt time.Time
}

// Measures reports whether the station lists the pollutant.
func (s *Station) Measures(p aqi.Pollutant) bool {
	for _, sp := range s.Pollutants {
		if sp == p {
			return true
		}
	}
	return false
}

// StationMatch pairs a station with its distance from a query point.
type StationMatch struct {
	Station    *Station
	DistanceKm float64
}
