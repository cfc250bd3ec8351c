package aqi

import (
	"errors"
	"fmt"
	"math"
)

// Concentration recovers the concentration that produces the given
// sub-index. Indices above the top segment are treated as its upper bound.
func (s *Standard) Concentration(p Pollutant, index int) (float64, error) {
	segs, ok := s.tables[p]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPollutant, p)
	}
	if index < 0 {
		return 0, fmt.Errorf("%w: %s index %d must be non-negative", ErrInvalidInput, p, index)
	}

	top := segs[len(segs)-1]
	if index > top.IndexHigh {
		index = top.IndexHigh
	}
	for _, seg := range segs {
		if index <= seg.IndexHigh {
			return seg.concentration(max(index, seg.IndexLow)), nil
		}
	}
	return top.ConcHigh, nil
}

// Conversion is the outcome of re-expressing sub-indices in another standard.
type Conversion struct {
	Result AggregateResult `json:"result"`

	// Concentrations holds the values recovered from the source standard,
	// rounded to two decimals.
	Concentrations map[Pollutant]float64 `json:"concentrations"`
}

// ConvertIndices recovers concentrations from sub-indices expressed in one
// standard and aggregates them in another. Pollutants that either standard
// does not cover are skipped. If nothing can be converted the result carries
// the Unknown severity and ErrNoValidInput is returned.
func ConvertIndices(from, to *Standard, subIndices map[Pollutant]int) (Conversion, error) {
	conv := Conversion{Concentrations: make(map[Pollutant]float64, len(subIndices))}
	readings := make([]PollutantReading, 0, len(subIndices))

	for p, index := range subIndices {
		if _, ok := to.tables[p]; !ok {
			continue
		}
		c, err := from.Concentration(p, index)
		if errors.Is(err, ErrUnknownPollutant) {
			continue
		}
		if err != nil {
			conv.Result = to.emptyResult()
			return conv, err
		}
		c = math.Round(c*100) / 100
		conv.Concentrations[p] = c
		readings = append(readings, Reading(p, c))
	}

	result, err := to.Aggregate(readings)
	conv.Result = result
	return conv, err
}
