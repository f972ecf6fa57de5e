// Package handler contains the HTTP JSON API handlers.
//
// This file implements the stateless analysis endpoints:
//
//   - POST /api/analyze           -> AnalyzeText
//   - POST /api/readings/analyze  -> AnalyzeReadings
//   - GET  /api/standards/{std}   -> GetStandard
//   - GET  /api/brands            -> ListBrands
//   - POST /api/potability        -> PredictPotability
package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/riverlabs/aquacheck/internal/analyzer"
	"github.com/riverlabs/aquacheck/internal/domain"
	"github.com/riverlabs/aquacheck/internal/metrics"
	"github.com/riverlabs/aquacheck/internal/potability"
	"github.com/riverlabs/aquacheck/internal/service"
	"github.com/riverlabs/aquacheck/internal/standards"
)

// AnalysisHandler handles the synchronous analysis endpoints.
type AnalysisHandler struct {
	scanService service.ScanService
	scorer      potability.Scorer
	logger      *slog.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
// scorer may be nil when no potability model is configured.
func NewAnalysisHandler(scanService service.ScanService, scorer potability.Scorer, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		scanService: scanService,
		scorer:      scorer,
		logger:      logger,
	}
}

// RegisterRoutes registers analysis routes on the provided mux.
func (h *AnalysisHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/analyze", h.AnalyzeText)
	mux.HandleFunc("POST /api/readings/analyze", h.AnalyzeReadings)
	mux.HandleFunc("GET /api/standards/{std}", h.GetStandard)
	mux.HandleFunc("GET /api/brands", h.ListBrands)
	mux.HandleFunc("POST /api/potability", h.PredictPotability)
}

// =============================================================================
// Text Analysis
// =============================================================================

type analyzeTextRequest struct {
	Text     string `json:"text"`
	Standard string `json:"standard"`
}

// AnalyzeText runs the full label pipeline over pasted text without
// persisting anything.
func (h *AnalysisHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req analyzeTextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	analysis, err := h.scanService.AnalyzeText(r.Context(), req.Text, domain.StandardID(req.Standard))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, analysis)
}

// =============================================================================
// Manual Readings
// =============================================================================

type analyzeReadingsRequest struct {
	Readings map[domain.ParameterKey]float64 `json:"readings"`
	Standard string                          `json:"standard"`
	Brand    string                          `json:"brand,omitempty"`
}

type analyzeReadingsResponse struct {
	Result *domain.AnalysisResult `json:"result"`
	Brand  *domain.BrandVerdict   `json:"brand,omitempty"`
}

// AnalyzeReadings classifies manually entered readings against a standard.
// When a brand name is supplied it is resolved against the registry with an
// exact match, unlike the substring scan used for label text.
func (h *AnalysisHandler) AnalyzeReadings(w http.ResponseWriter, r *http.Request) {
	var req analyzeReadingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	result, err := h.scanService.AnalyzeReadings(r.Context(), req.Readings, domain.StandardID(req.Standard))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	resp := analyzeReadingsResponse{Result: result}
	if req.Brand != "" {
		resp.Brand = manualBrandVerdict(req.Brand)
	}

	respondJSON(w, http.StatusOK, resp)
}

func manualBrandVerdict(name string) *domain.BrandVerdict {
	if entry, ok := analyzer.MatchBrandName(name); ok {
		return &domain.BrandVerdict{
			Status:  domain.BrandRecognized,
			Matched: &entry,
			Message: fmt.Sprintf("Brand '%s' is a recognized packaged water brand.", entry.CanonicalName),
		}
	}
	return &domain.BrandVerdict{
		Status:       domain.BrandUnrecognized,
		EvidenceLine: name,
		Message:      "Brand not recognized. The product may be counterfeit or unregistered.",
	}
}

// =============================================================================
// Standards
// =============================================================================

type standardRangeResponse struct {
	Low      float64 `json:"low"`
	High     float64 `json:"high"`
	Status   string  `json:"status"`
	Severity string  `json:"severity"`
}

type standardRuleResponse struct {
	Parameter string                  `json:"parameter"`
	Name      string                  `json:"name"`
	Min       float64                 `json:"min,omitempty"`
	Max       float64                 `json:"max,omitempty"`
	Unit      string                  `json:"unit"`
	Impact    string                  `json:"impact,omitempty"`
	Ranges    []standardRangeResponse `json:"ranges,omitempty"`
}

type standardResponse struct {
	Standard string                 `json:"standard"`
	Rules    []standardRuleResponse `json:"rules"`
}

// GetStandard returns the rule table for one standard.
func (h *AnalysisHandler) GetStandard(w http.ResponseWriter, r *http.Request) {
	std := domain.StandardID(r.PathValue("std"))
	if !std.IsValid() {
		ErrorResponse(w, r, h.logger, domain.NotFound("standards.get", "standard", std.String()))
		return
	}

	resp := standardResponse{Standard: std.String()}
	for _, param := range standards.Parameters(std) {
		rule, ok := standards.Rule(std, param)
		if !ok {
			continue
		}
		rr := standardRuleResponse{
			Parameter: param.String(),
			Name:      param.DisplayName(),
			Min:       rule.Min,
			Max:       rule.Max,
			Unit:      rule.Unit,
			Impact:    rule.Impact,
		}
		for _, rg := range rule.Ranges {
			rr.Ranges = append(rr.Ranges, standardRangeResponse{
				Low:      rg.Low,
				High:     rg.High,
				Status:   rg.Status.String(),
				Severity: rg.Severity.String(),
			})
		}
		resp.Rules = append(resp.Rules, rr)
	}

	respondJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Brands
// =============================================================================

type brandListResponse struct {
	Brands []domain.BrandEntry `json:"brands"`
}

// ListBrands returns the recognized brand registry in match priority order.
func (h *AnalysisHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, brandListResponse{Brands: analyzer.BrandRegistry()})
}

// =============================================================================
// Potability
// =============================================================================

type potabilityResponse struct {
	Prediction potability.Prediction `json:"prediction"`
}

// PredictPotability proxies the nine-feature sample to the external scorer.
func (h *AnalysisHandler) PredictPotability(w http.ResponseWriter, r *http.Request) {
	if h.scorer == nil {
		err := domain.Unavailable(nil, "potability.predict", "Potability prediction is not configured")
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var features potability.Features
	if err := decodeJSON(w, r, &features); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	prediction, err := h.scorer.Predict(r.Context(), features)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	metrics.PotabilityPredictions.WithLabelValues(string(prediction)).Inc()
	respondJSON(w, http.StatusOK, potabilityResponse{Prediction: prediction})
}
