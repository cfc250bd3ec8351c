// Package assessment turns pollutant readings or pre-computed station indices
// into a complete report: overall index and severity, cigarette-equivalent
// exposure and a confidence level.
package assessment

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/breatheroute/airindex/internal/airquality"
	"github.com/breatheroute/airindex/internal/aqi"
	"github.com/breatheroute/airindex/internal/observability"
	"github.com/breatheroute/airindex/internal/telemetry"
)

const tracerName = "github.com/breatheroute/airindex/internal/assessment"

// CalculateInput is a request to compute an index from raw concentrations.
type CalculateInput struct {
	// Standard selects the breakpoint tables. Empty uses the service default.
	Standard aqi.StandardName

	Readings []aqi.PollutantReading

	// DistanceKm and FreshnessMinutes describe the source station directly.
	// When nil they are derived from Location and the source station.
	DistanceKm       *float64
	FreshnessMinutes *int

	Location *airquality.Point

	// Station is the known source of the readings. When nil, the closest
	// in-range entry of Stations measuring the dominant pollutant is used.
	Station  *airquality.Station
	Stations []*airquality.Station
}

// InterpretInput is a request to interpret an index computed upstream.
type InterpretInput struct {
	Standard aqi.StandardName

	// Index is the pre-computed overall index; nil means the station had no value.
	Index *int

	DistanceKm       *float64
	FreshnessMinutes *int
}

// Report is the full interpretation of a reading.
type Report struct {
	Result aqi.AggregateResult

	// CigarettesPerDay is derived from the EPA index, whatever standard was requested.
	CigarettesPerDay float64

	Confidence aqi.ConfidenceAssessment
}

// ServiceConfig holds configuration for the assessment service.
type ServiceConfig struct {
	// Logger for service operations.
	Logger zerolog.Logger

	// Metrics records calculation outcomes. Optional.
	Metrics *observability.Metrics

	// Locator derives distance and freshness from station data.
	// Default: airquality.NewLocator(airquality.DefaultLocatorConfig()).
	Locator *airquality.Locator

	// DefaultStandard is used when a request names none. Default: EPA.
	DefaultStandard aqi.StandardName
}

// Service produces assessment reports. It holds no mutable state and is safe
// for concurrent use.
type Service struct {
	logger          zerolog.Logger
	metrics         *observability.Metrics
	locator         *airquality.Locator
	defaultStandard aqi.StandardName
	tracer          trace.Tracer
}

// NewService creates a new assessment service.
func NewService(cfg ServiceConfig) *Service {
	locator := cfg.Locator
	if locator == nil {
		locator = airquality.NewLocator(airquality.DefaultLocatorConfig())
	}

	defaultStandard := cfg.DefaultStandard
	if defaultStandard == "" {
		defaultStandard = aqi.StandardEPA
	}

	return &Service{
		logger:          cfg.Logger,
		metrics:         cfg.Metrics,
		locator:         locator,
		defaultStandard: defaultStandard,
		tracer:          telemetry.Tracer(tracerName),
	}
}

// Calculate aggregates the readings and interprets the result.
//
// When no reading is usable the returned report carries the Unknown severity
// and zero exposure, and the error is aqi.ErrNoValidInput. Invalid readings
// return aqi.ErrInvalidInput or aqi.ErrUnknownPollutant with a nil report.
func (s *Service) Calculate(ctx context.Context, in CalculateInput) (*Report, error) {
	_, span := s.tracer.Start(ctx, "assessment.Calculate")
	defer span.End()

	std, err := s.standard(in.Standard)
	if err != nil {
		s.reject(span, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("aqi.standard", string(std.Name())),
		attribute.Int("aqi.readings", len(in.Readings)),
	)

	result, err := std.Aggregate(in.Readings)
	if err != nil && !errors.Is(err, aqi.ErrNoValidInput) {
		s.reject(span, err)
		return nil, err
	}

	report := &Report{
		Result:           result,
		CigarettesPerDay: cigarettes(std, result),
		Confidence:       s.confidence(in, result.DominantPollutant),
	}
	s.record(span, report)

	if err != nil {
		s.reject(span, err)
		return report, err
	}

	s.logger.Debug().
		Str("standard", string(std.Name())).
		Int("aqi", *result.OverallIndex).
		Str("dominant", string(*result.DominantPollutant)).
		Str("category", string(result.Category)).
		Str("confidence", string(report.Confidence.Level)).
		Msg("index calculated")

	return report, nil
}

// Interpret classifies an index computed elsewhere. A nil index yields the
// Unknown severity rather than an error.
func (s *Service) Interpret(ctx context.Context, in InterpretInput) (*Report, error) {
	_, span := s.tracer.Start(ctx, "assessment.Interpret")
	defer span.End()

	std, err := s.standard(in.Standard)
	if err != nil {
		s.reject(span, err)
		return nil, err
	}
	if in.Index != nil && *in.Index < 0 {
		err := errors.Join(aqi.ErrInvalidInput, errors.New("index must be non-negative"))
		s.reject(span, err)
		return nil, err
	}

	result := aqi.AggregateResult{
		Standard:     std.Name(),
		OverallIndex: in.Index,
		Severity:     std.SeverityFor(in.Index),
		SubIndices:   map[aqi.Pollutant]int{},
	}

	report := &Report{
		Result:           result,
		CigarettesPerDay: cigarettes(std, result),
		Confidence:       aqi.Assess(in.DistanceKm, in.FreshnessMinutes),
	}

	if s.metrics != nil {
		s.metrics.Interpretations.WithLabelValues(string(result.Category)).Inc()
		s.metrics.Confidence.WithLabelValues(string(report.Confidence.Level)).Inc()
	}
	span.SetAttributes(attribute.String("aqi.category", string(result.Category)))

	return report, nil
}

// Convert re-expresses sub-indices from one standard in another.
func (s *Service) Convert(ctx context.Context, from, to aqi.StandardName, subIndices map[aqi.Pollutant]int) (aqi.Conversion, error) {
	_, span := s.tracer.Start(ctx, "assessment.Convert")
	defer span.End()

	src, err := s.standard(from)
	if err != nil {
		s.reject(span, err)
		return aqi.Conversion{}, err
	}
	dst, err := s.standard(to)
	if err != nil {
		s.reject(span, err)
		return aqi.Conversion{}, err
	}
	span.SetAttributes(
		attribute.String("aqi.from", string(src.Name())),
		attribute.String("aqi.to", string(dst.Name())),
	)

	conv, err := aqi.ConvertIndices(src, dst, subIndices)
	if err != nil {
		s.reject(span, err)
	}
	return conv, err
}

// DefaultStandard returns the standard used when a request names none.
func (s *Service) DefaultStandard() aqi.StandardName {
	return s.defaultStandard
}

func (s *Service) standard(name aqi.StandardName) (*aqi.Standard, error) {
	if name == "" {
		name = s.defaultStandard
	}
	return aqi.StandardByName(name)
}

// confidence prefers explicit distance and freshness and falls back to the
// source station for whichever is missing.
func (s *Service) confidence(in CalculateInput, dominant *aqi.Pollutant) aqi.ConfidenceAssessment {
	distance, freshness := in.DistanceKm, in.FreshnessMinutes

	station := in.Station
	if station == nil {
		station = s.nearestStation(in, dominant)
	}
	if station != nil {
		if distance == nil && in.Location != nil {
			distance = s.locator.Assess(*in.Location, station).DistanceKm
		}
		if freshness == nil {
			freshness = s.locator.FreshnessMinutes(station.MeasuredAt)
		}
	}
	return aqi.Assess(distance, freshness)
}

// nearestStation picks the closest candidate station within range of the
// location, or nil when there is none.
func (s *Service) nearestStation(in CalculateInput, dominant *aqi.Pollutant) *airquality.Station {
	if in.Location == nil || len(in.Stations) == 0 {
		return nil
	}

	var pollutant aqi.Pollutant
	if dominant != nil {
		pollutant = *dominant
	}
	matches, err := s.locator.Nearest(*in.Location, in.Stations, pollutant)
	if err != nil {
		s.logger.Debug().Err(err).
			Int("candidates", len(in.Stations)).
			Str("pollutant", string(pollutant)).
			Msg("no source station selected")
		return nil
	}

	s.logger.Debug().
		Str("station_id", matches[0].Station.ID).
		Float64("distance_km", matches[0].DistanceKm).
		Msg("source station selected")
	return matches[0].Station
}

func (s *Service) record(span trace.Span, report *Report) {
	result := report.Result
	span.SetAttributes(
		attribute.String("aqi.category", string(result.Category)),
		attribute.String("aqi.confidence", string(report.Confidence.Level)),
	)
	if result.OverallIndex != nil {
		span.SetAttributes(attribute.Int("aqi.value", *result.OverallIndex))
	}

	if s.metrics == nil {
		return
	}
	s.metrics.Calculations.WithLabelValues(string(result.Standard), string(result.Category)).Inc()
	s.metrics.Confidence.WithLabelValues(string(report.Confidence.Level)).Inc()
	if result.OverallIndex != nil {
		s.metrics.OverallIndex.WithLabelValues(string(result.Standard)).Observe(float64(*result.OverallIndex))
	}
}

func (s *Service) reject(span trace.Span, err error) {
	reason := rejectionReason(err)
	span.SetAttributes(attribute.String("aqi.rejection", reason))
	if !errors.Is(err, aqi.ErrNoValidInput) {
		span.SetStatus(codes.Error, err.Error())
	}

	s.logger.Warn().Err(err).Str("reason", reason).Msg("calculation rejected")
	if s.metrics != nil {
		s.metrics.Rejections.WithLabelValues(reason).Inc()
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, aqi.ErrNoValidInput):
		return "no_valid_input"
	case errors.Is(err, aqi.ErrUnknownPollutant):
		return "unknown_pollutant"
	default:
		return "invalid_input"
	}
}

// cigarettes estimates exposure from the EPA index. Results from other
// standards are first converted back to EPA sub-indices.
func cigarettes(std *aqi.Standard, result aqi.AggregateResult) float64 {
	if result.OverallIndex == nil {
		return 0
	}
	if std.Name() == aqi.StandardEPA {
		return result.Cigarettes()
	}
	if len(result.SubIndices) == 0 {
		// Only an overall index is known; recover it through PM2.5.
		result.SubIndices = map[aqi.Pollutant]int{aqi.PollutantPM25: *result.OverallIndex}
	}
	conv, err := aqi.ConvertIndices(std, aqi.EPA(), result.SubIndices)
	if err != nil {
		return 0
	}
	return conv.Result.Cigarettes()
}
