package aqi

// Aggregate combines readings into an overall EPA index.
func Aggregate(readings []PollutantReading) (AggregateResult, error) {
	return epa.Aggregate(readings)
}

// Aggregate converts every present reading to a sub-index and reports the
// maximum as the overall index.
//
// Absent readings are skipped. A negative concentration fails with
// ErrInvalidInput and an unsupported pollutant with ErrUnknownPollutant.
// When nothing is left to aggregate the returned result carries a nil index
// and the Unknown severity alongside ErrNoValidInput.
//
// Ties are resolved by the standard's reporting priority, so PM2.5 is cited
// ahead of PM10, O3, CO, NO2 and SO2. Repeated readings for one pollutant keep
// the highest sub-index. The result does not depend on reading order.
func (s *Standard) Aggregate(readings []PollutantReading) (AggregateResult, error) {
	subIndices := make(map[Pollutant]int, len(readings))

	for _, r := range readings {
		if r.Concentration == nil {
			continue
		}
		value, err := s.Convert(r.Pollutant, *r.Concentration)
		if err != nil {
			return s.emptyResult(), err
		}
		if prev, ok := subIndices[r.Pollutant]; !ok || value > prev {
			subIndices[r.Pollutant] = value
		}
	}

	if len(subIndices) == 0 {
		return s.emptyResult(), ErrNoValidInput
	}

	var (
		dominant Pollutant
		overall  = -1
	)
	for _, p := range s.priority {
		if v, ok := subIndices[p]; ok && v > overall {
			overall = v
			dominant = p
		}
	}

	return AggregateResult{
		Standard:          s.name,
		OverallIndex:      &overall,
		DominantPollutant: &dominant,
		Severity:          s.Classify(overall),
		SubIndices:        subIndices,
	}, nil
}

func (s *Standard) emptyResult() AggregateResult {
	return AggregateResult{
		Standard:   s.name,
		Severity:   unknownSeverity,
		SubIndices: map[Pollutant]int{},
	}
}
