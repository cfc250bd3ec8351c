package handler

import (
	"net/http"

	"github.com/breatheroute/airindex/internal/api/models"
	"github.com/breatheroute/airindex/internal/api/response"
	"github.com/breatheroute/airindex/internal/aqi"
)

// MetadataHandler serves the static classification tables.
type MetadataHandler struct {
	defaultStandard aqi.StandardName
}

// NewMetadataHandler creates a new MetadataHandler. An empty default selects EPA.
func NewMetadataHandler(defaultStandard aqi.StandardName) *MetadataHandler {
	if defaultStandard == "" {
		defaultStandard = aqi.StandardEPA
	}
	return &MetadataHandler{defaultStandard: defaultStandard}
}

// GetBreakpoints handles GET /v1/metadata/breakpoints - breakpoint tables and
// severity bands of one standard, selected with ?standard=.
func (h *MetadataHandler) GetBreakpoints(w http.ResponseWriter, r *http.Request) {
	name := aqi.StandardName(r.URL.Query().Get("standard"))
	if name == "" {
		name = h.defaultStandard
	}
	std, fieldErrs := requireStandard("standard", name)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "unknown standard", fieldErrs)
		return
	}

	out := models.Breakpoints{Standard: std.Name()}
	for _, p := range std.Pollutants() {
		segs, err := std.Breakpoints(p)
		if err != nil {
			response.InternalError(w, r, "breakpoint table unavailable")
			return
		}
		out.Pollutants = append(out.Pollutants, models.PollutantBreakpoints{
			Pollutant:   p,
			DisplayName: p.DisplayName(),
			Segments:    segs,
		})
	}
	for _, sev := range std.Severities() {
		band := models.CategoryBand{Category: sev.Category, Color: sev.Color, Message: sev.Message}
		if low, high, ok := std.IndexRange(sev.Category); ok {
			band.IndexLow, band.IndexHigh = &low, &high
		}
		out.Categories = append(out.Categories, band)
	}
	unknown := aqi.UnknownSeverity()
	out.Unknown = models.CategoryBand{Category: unknown.Category, Color: unknown.Color, Message: unknown.Message}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, out)
}

// GetEnums handles GET /v1/metadata/enums - get enum values used by the API.
func (h *MetadataHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	enums := models.Enums{
		Confidence: []models.Confidence{
			aqi.ConfidenceLow,
			aqi.ConfidenceMedium,
			aqi.ConfidenceHigh,
		},
	}

	seenPollutant := map[aqi.Pollutant]bool{}
	seenCategory := map[aqi.Category]bool{}
	for _, std := range aqi.Standards() {
		enums.Standards = append(enums.Standards, std.Name())
		for _, p := range std.Pollutants() {
			if !seenPollutant[p] {
				seenPollutant[p] = true
				enums.Pollutants = append(enums.Pollutants, p)
			}
		}
		for _, sev := range std.Severities() {
			if !seenCategory[sev.Category] {
				seenCategory[sev.Category] = true
				enums.Categories = append(enums.Categories, sev.Category)
			}
		}
	}
	enums.Categories = append(enums.Categories, aqi.CategoryUnknown)

	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, enums)
}
