// Package handler contains the HTTP JSON API handlers.
//
// This file implements water-intake tracking endpoints:
//
//   - POST   /api/waterlogs      -> Add
//   - GET    /api/waterlogs      -> Summary (?window=today|weekly|monthly)
//   - DELETE /api/waterlogs/{id} -> Delete
package handler

import (
	"log/slog"
	"net/http"

	"github.com/riverlabs/aquacheck/internal/domain"
	"github.com/riverlabs/aquacheck/internal/service"
)

// WaterLogHandler handles water-intake endpoints.
type WaterLogHandler struct {
	waterLogService service.WaterLogService
	logger          *slog.Logger
}

// NewWaterLogHandler creates a new WaterLogHandler.
func NewWaterLogHandler(waterLogService service.WaterLogService, logger *slog.Logger) *WaterLogHandler {
	return &WaterLogHandler{
		waterLogService: waterLogService,
		logger:          logger,
	}
}

// RegisterRoutes registers water log routes on the provided mux.
func (h *WaterLogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/waterlogs", h.Add)
	mux.HandleFunc("GET /api/waterlogs", h.Summary)
	mux.HandleFunc("DELETE /api/waterlogs/{id}", h.Delete)
}

type addWaterLogRequest struct {
	AmountML int `json:"amount_ml"`
}

// Add records a drink for the caller.
func (h *WaterLogHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var req addWaterLogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	log, err := h.waterLogService.Add(r.Context(), domain.AddWaterLogParams{
		UserID:   userID,
		AmountML: req.AmountML,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         log.ID,
		"amount_ml":  log.AmountML,
		"created_at": log.CreatedAt,
	})
}

// Summary returns the caller's intake entries and total over a window.
// The window query parameter defaults to today.
func (h *WaterLogHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	window := domain.LogWindow(r.URL.Query().Get("window"))
	if window == "" {
		window = domain.LogWindowToday
	}

	summary, err := h.waterLogService.Summary(r.Context(), userID, window)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// Delete removes one of the caller's entries.
func (h *WaterLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if err := h.waterLogService.Delete(r.Context(), id, userID); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
