// Package handler contains the HTTP JSON API handlers.
//
// This file implements health profile endpoints:
//
//   - PUT /api/health-info -> Upsert
//   - GET /api/health-info -> Get
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/riverlabs/aquacheck/internal/domain"
	"github.com/riverlabs/aquacheck/internal/service"
)

// HealthInfoHandler handles health profile endpoints.
type HealthInfoHandler struct {
	healthInfoService service.HealthInfoService
	logger            *slog.Logger
}

// NewHealthInfoHandler creates a new HealthInfoHandler.
func NewHealthInfoHandler(healthInfoService service.HealthInfoService, logger *slog.Logger) *HealthInfoHandler {
	return &HealthInfoHandler{
		healthInfoService: healthInfoService,
		logger:            logger,
	}
}

// RegisterRoutes registers health profile routes on the provided mux.
func (h *HealthInfoHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("PUT /api/health-info", h.Upsert)
	mux.HandleFunc("GET /api/health-info", h.Get)
}

type upsertHealthInfoRequest struct {
	Gender   string  `json:"gender"`
	Age      int     `json:"age"`
	HeightCM float64 `json:"height_cm"`
	WeightKG float64 `json:"weight_kg"`
	Phone    string  `json:"phone,omitempty"`
}

type healthInfoResponse struct {
	Gender          string    `json:"gender"`
	Age             int       `json:"age"`
	HeightCM        float64   `json:"height_cm"`
	WeightKG        float64   `json:"weight_kg"`
	Phone           string    `json:"phone,omitempty"`
	DailyIntakeGoal int       `json:"daily_intake_goal_ml"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toHealthInfoResponse(info *domain.HealthInfo) healthInfoResponse {
	return healthInfoResponse{
		Gender:          string(info.Gender),
		Age:             info.Age,
		HeightCM:        info.HeightCM,
		WeightKG:        info.WeightKG,
		Phone:           info.Phone,
		DailyIntakeGoal: info.DailyIntakeGoalML(),
		UpdatedAt:       info.UpdatedAt,
	}
}

// Upsert creates or replaces the caller's health profile.
func (h *HealthInfoHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var req upsertHealthInfoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	info, err := h.healthInfoService.Upsert(r.Context(), domain.UpsertHealthInfoParams{
		UserID:   userID,
		Gender:   domain.Gender(req.Gender),
		Age:      req.Age,
		HeightCM: req.HeightCM,
		WeightKG: req.WeightKG,
		Phone:    req.Phone,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toHealthInfoResponse(info))
}

// Get fetches the caller's health profile with the derived intake goal.
func (h *HealthInfoHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	info, err := h.healthInfoService.GetByUser(r.Context(), userID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toHealthInfoResponse(info))
}
