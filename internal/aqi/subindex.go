package aqi

import (
	"fmt"
	"math"
)

// Convert computes the EPA sub-index for one pollutant concentration.
func Convert(p Pollutant, concentration float64) (int, error) {
	return epa.Convert(p, concentration)
}

// Convert computes the sub-index for one pollutant concentration using
// linear interpolation within the matching breakpoint segment.
//
// Concentrations beyond the top segment are clamped to its upper index;
// the result never exceeds 500.
func (s *Standard) Convert(p Pollutant, concentration float64) (int, error) {
	segs, ok := s.tables[p]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPollutant, p)
	}
	if concentration < 0 || math.IsNaN(concentration) {
		return 0, fmt.Errorf("%w: %s concentration %v must be non-negative", ErrInvalidInput, p, concentration)
	}

	for _, seg := range segs {
		if concentration >= seg.ConcLow && concentration <= seg.ConcHigh {
			return seg.index(concentration), nil
		}
	}
	return segs[len(segs)-1].IndexHigh, nil
}

// index applies the interpolation formula for a concentration inside the segment.
func (seg BreakpointSegment) index(c float64) int {
	slope := float64(seg.IndexHigh-seg.IndexLow) / (seg.ConcHigh - seg.ConcLow)
	return int(math.Round(slope*(c-seg.ConcLow) + float64(seg.IndexLow)))
}

// concentration is the algebraic inverse of index.
func (seg BreakpointSegment) concentration(i int) float64 {
	slope := (seg.ConcHigh - seg.ConcLow) / float64(seg.IndexHigh-seg.IndexLow)
	return slope*float64(i-seg.IndexLow) + seg.ConcLow
}
