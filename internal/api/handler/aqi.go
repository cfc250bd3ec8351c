// Package handler provides HTTP handlers for the air quality index API.
package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/breatheroute/airindex/internal/airquality"
	"github.com/breatheroute/airindex/internal/api/models"
	"github.com/breatheroute/airindex/internal/api/response"
	"github.com/breatheroute/airindex/internal/aqi"
	"github.com/breatheroute/airindex/internal/assessment"
)

// AQIHandler handles index calculation endpoints.
type AQIHandler struct {
	service *assessment.Service
}

// NewAQIHandler creates a new AQIHandler.
func NewAQIHandler(service *assessment.Service) *AQIHandler {
	return &AQIHandler{service: service}
}

// Calculate handles POST /v1/aqi/calculate - compute an index from concentrations.
func (h *AQIHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var input models.CalculateRequest
	if err := decodeJSON(w, r, &input); err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	std, fieldErrs := h.resolveStandard("standard", input.Standard)
	if std != nil {
		fieldErrs = append(fieldErrs, validateReadings(std, input.Readings)...)
	}
	fieldErrs = append(fieldErrs, validateStationContext(input.DistanceKm, input.FreshnessMinutes)...)
	if input.Location != nil {
		fieldErrs = append(fieldErrs, validatePoint("location", *input.Location)...)
	}
	if input.Station != nil {
		fieldErrs = append(fieldErrs, validatePoint("station.point", input.Station.Point)...)
	}
	if len(input.Stations) > 0 && input.Location == nil {
		fieldErrs = append(fieldErrs, models.FieldError{
			Field: "location", Message: "required when stations are given", Code: models.CodeRequired,
		})
	}
	for i, st := range input.Stations {
		fieldErrs = append(fieldErrs, validatePoint(fmt.Sprintf("stations[%d].point", i), st.Point)...)
	}
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "request failed validation", fieldErrs)
		return
	}

	report, err := h.service.Calculate(r.Context(), calculateInput(std.Name(), input))
	switch {
	case err == nil, errors.Is(err, aqi.ErrNoValidInput):
		response.JSON(w, r, http.StatusOK, toReport(report))
	case errors.Is(err, aqi.ErrInvalidInput), errors.Is(err, aqi.ErrUnknownPollutant):
		response.BadRequest(w, r, err.Error(), nil)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("calculate failed")
		response.InternalError(w, r, "failed to calculate index")
	}
}

// Interpret handles POST /v1/aqi/interpret - classify a pre-computed index.
func (h *AQIHandler) Interpret(w http.ResponseWriter, r *http.Request) {
	var input models.InterpretRequest
	if err := decodeJSON(w, r, &input); err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	std, fieldErrs := h.resolveStandard("standard", input.Standard)
	if input.AQI != nil && *input.AQI < 0 {
		fieldErrs = append(fieldErrs, models.FieldError{
			Field: "aqi", Message: "must not be negative", Code: models.CodeOutOfRange,
		})
	}
	fieldErrs = append(fieldErrs, validateStationContext(input.DistanceKm, input.FreshnessMinutes)...)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "request failed validation", fieldErrs)
		return
	}

	report, err := h.service.Interpret(r.Context(), assessment.InterpretInput{
		Standard:         std.Name(),
		Index:            input.AQI,
		DistanceKm:       input.DistanceKm,
		FreshnessMinutes: input.FreshnessMinutes,
	})
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	response.JSON(w, r, http.StatusOK, toReport(report))
}

// Convert handles POST /v1/aqi/convert - re-express sub-indices in another standard.
func (h *AQIHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var input models.ConvertRequest
	if err := decodeJSON(w, r, &input); err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	var fieldErrs []models.FieldError
	from, errs := requireStandard("from", input.From)
	fieldErrs = append(fieldErrs, errs...)
	to, errs := requireStandard("to", input.To)
	fieldErrs = append(fieldErrs, errs...)
	for p, v := range input.SubIndices {
		if v < 0 {
			fieldErrs = append(fieldErrs, models.FieldError{
				Field:   fmt.Sprintf("subIndices.%s", p),
				Message: "must not be negative",
				Code:    models.CodeOutOfRange,
			})
		}
	}
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "request failed validation", fieldErrs)
		return
	}

	conv, err := h.service.Convert(r.Context(), from.Name(), to.Name(), input.SubIndices)
	if err != nil && !errors.Is(err, aqi.ErrNoValidInput) {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	response.JSON(w, r, http.StatusOK, models.ConvertResponse{
		From:           from.Name(),
		To:             to.Name(),
		Concentrations: conv.Concentrations,
		Result:         toIndexResult(conv.Result),
	})
}

// resolveStandard looks up a standard, falling back to the service default
// when name is empty.
func (h *AQIHandler) resolveStandard(field string, name aqi.StandardName) (*aqi.Standard, []models.FieldError) {
	if name == "" {
		name = h.service.DefaultStandard()
	}
	return requireStandard(field, name)
}

func requireStandard(field string, name aqi.StandardName) (*aqi.Standard, []models.FieldError) {
	if name == "" {
		return nil, []models.FieldError{{Field: field, Message: "required", Code: models.CodeRequired}}
	}
	std, err := aqi.StandardByName(name)
	if err != nil {
		return nil, []models.FieldError{{
			Field:   field,
			Message: fmt.Sprintf("unknown standard %q", name),
			Code:    models.CodeUnknownStandard,
		}}
	}
	return std, nil
}

func validateReadings(std *aqi.Standard, readings []models.Reading) []models.FieldError {
	var errs []models.FieldError
	for i, rd := range readings {
		switch {
		case rd.Pollutant == "":
			errs = append(errs, models.FieldError{
				Field: fmt.Sprintf("readings[%d].pollutant", i), Message: "required", Code: models.CodeRequired,
			})
			continue
		case !supports(std, rd.Pollutant):
			errs = append(errs, models.FieldError{
				Field:   fmt.Sprintf("readings[%d].pollutant", i),
				Message: fmt.Sprintf("%q is not covered by the %s standard", rd.Pollutant, std.Name()),
				Code:    models.CodeUnknownPollutant,
			})
		}
		if rd.Concentration != nil && *rd.Concentration < 0 {
			errs = append(errs, models.FieldError{
				Field:   fmt.Sprintf("readings[%d].concentration", i),
				Message: "must not be negative",
				Code:    models.CodeOutOfRange,
			})
		}
	}
	return errs
}

func validateStationContext(distanceKm *float64, freshnessMinutes *int) []models.FieldError {
	var errs []models.FieldError
	if distanceKm != nil && *distanceKm < 0 {
		errs = append(errs, models.FieldError{Field: "distanceKm", Message: "must not be negative", Code: models.CodeOutOfRange})
	}
	if freshnessMinutes != nil && *freshnessMinutes < 0 {
		errs = append(errs, models.FieldError{Field: "freshnessMinutes", Message: "must not be negative", Code: models.CodeOutOfRange})
	}
	return errs
}

func validatePoint(field string, p models.Point) []models.FieldError {
	if err := (airquality.Point{Lat: p.Lat, Lon: p.Lon}).Validate(); err != nil {
		return []models.FieldError{{Field: field, Message: "latitude or longitude out of range", Code: models.CodeOutOfRange}}
	}
	return nil
}

func supports(std *aqi.Standard, p aqi.Pollutant) bool {
	_, err := std.Breakpoints(p)
	return err == nil
}

func calculateInput(std aqi.StandardName, req models.CalculateRequest) assessment.CalculateInput {
	in := assessment.CalculateInput{
		Standard:         std,
		Readings:         make([]aqi.PollutantReading, 0, len(req.Readings)),
		DistanceKm:       req.DistanceKm,
		FreshnessMinutes: req.FreshnessMinutes,
	}
	for _, rd := range req.Readings {
		in.Readings = append(in.Readings, aqi.PollutantReading{Pollutant: rd.Pollutant, Concentration: rd.Concentration})
	}
	if req.Location != nil {
		in.Location = &airquality.Point{Lat: req.Location.Lat, Lon: req.Location.Lon}
	}
	if req.Station != nil {
		in.Station = toStation(*req.Station)
	}
	for _, st := range req.Stations {
		in.Stations = append(in.Stations, toStation(st))
	}
	return in
}

func toStation(st models.Station) *airquality.Station {
	out := &airquality.Station{
		ID:         st.ID,
		Name:       st.Name,
		Point:      airquality.Point{Lat: st.Point.Lat, Lon: st.Point.Lon},
		Pollutants: st.Pollutants,
	}
	if st.MeasuredAt != nil {
		out.MeasuredAt = st.MeasuredAt.Time()
	}
	return out
}

func toIndexResult(res aqi.AggregateResult) models.IndexResult {
	subs := res.SubIndexList()
	out := models.IndexResult{
		Standard:          res.Standard,
		AQI:               res.OverallIndex,
		DominantPollutant: res.DominantPollutant,
		Category:          res.Category,
		Color:             res.Color,
		Message:           res.Message,
		SubIndices:        make([]models.SubIndex, 0, len(subs)),
	}
	for _, s := range subs {
		out.SubIndices = append(out.SubIndices, models.SubIndex{
			Pollutant:   s.Pollutant,
			DisplayName: s.Pollutant.DisplayName(),
			Value:       s.Value,
		})
	}
	return out
}

func toReport(report *assessment.Report) models.Report {
	return models.Report{
		IndexResult:      toIndexResult(report.Result),
		CigarettesPerDay: report.CigarettesPerDay,
		Confidence: models.ConfidenceAssessment{
			Level:            report.Confidence.Level,
			DistanceKm:       report.Confidence.DistanceKm,
			FreshnessMinutes: report.Confidence.FreshnessMinutes,
		},
	}
}
