// Package handler contains the HTTP JSON API handlers.
//
// This file implements the label scan endpoints:
//
//   - POST /api/scans             -> Create
//   - GET  /api/scans             -> List
//   - GET  /api/scans/{id}        -> Get
//   - POST /api/scans/{id}/image  -> UploadImage
//   - GET  /api/scans/{id}/image  -> GetImage
//   - GET  /api/scans/{id}/report -> GetReport
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/riverlabs/aquacheck/internal/domain"
	"github.com/riverlabs/aquacheck/internal/metrics"
	"github.com/riverlabs/aquacheck/internal/report"
	"github.com/riverlabs/aquacheck/internal/service"
)

// ScanHandler handles label scan endpoints.
type ScanHandler struct {
	scanService service.ScanService
	reports     *report.HTMLGenerator
	logger      *slog.Logger
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scanService service.ScanService, reports *report.HTMLGenerator, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		reports:     reports,
		logger:      logger,
	}
}

// RegisterRoutes registers scan routes on the provided mux.
func (h *ScanHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/scans", h.Create)
	mux.HandleFunc("GET /api/scans", h.List)
	mux.HandleFunc("GET /api/scans/{id}", h.Get)
	mux.HandleFunc("POST /api/scans/{id}/image", h.UploadImage)
	mux.HandleFunc("GET /api/scans/{id}/image", h.GetImage)
	mux.HandleFunc("GET /api/scans/{id}/report", h.GetReport)
}

// =============================================================================
// Response Types
// =============================================================================

type scanResponse struct {
	ID         uuid.UUID                       `json:"id"`
	UserID     uuid.UUID                       `json:"user_id"`
	Status     string                          `json:"status"`
	Standard   string                          `json:"standard"`
	RawText    string                          `json:"raw_text,omitempty"`
	Confidence *float64                        `json:"confidence,omitempty"`
	Readings   map[domain.ParameterKey]float64 `json:"readings,omitempty"`
	Brand      *domain.BrandVerdict            `json:"brand,omitempty"`
	Result     *domain.AnalysisResult          `json:"result,omitempty"`
	CreatedAt  time.Time                       `json:"created_at"`
	UpdatedAt  time.Time                       `json:"updated_at"`
}

type scanImageResponse struct {
	ID               uuid.UUID `json:"id"`
	ScanID           uuid.UUID `json:"scan_id"`
	OriginalFilename string    `json:"original_filename"`
	ContentType      string    `json:"content_type"`
	SizeBytes        int64     `json:"size_bytes"`
	Width            int       `json:"width"`
	Height           int       `json:"height"`
	CreatedAt        time.Time `json:"created_at"`
}

type scanListResponse struct {
	Scans  []scanResponse `json:"scans"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

func toScanResponse(scan *domain.LabelScan) scanResponse {
	return scanResponse{
		ID:         scan.ID,
		UserID:     scan.UserID,
		Status:     scan.Status.String(),
		Standard:   scan.Standard.String(),
		RawText:    scan.RawText,
		Confidence: scan.Confidence,
		Readings:   scan.Readings,
		Brand:      scan.Brand,
		Result:     scan.Result,
		CreatedAt:  scan.CreatedAt,
		UpdatedAt:  scan.UpdatedAt,
	}
}

func toScanImageResponse(img *domain.ScanImage) scanImageResponse {
	return scanImageResponse{
		ID:               img.ID,
		ScanID:           img.ScanID,
		OriginalFilename: img.OriginalFilename,
		ContentType:      img.ContentType,
		SizeBytes:        img.SizeBytes,
		Width:            img.Width,
		Height:           img.Height,
		CreatedAt:        img.CreatedAt,
	}
}

// =============================================================================
// Handlers
// =============================================================================

type createScanRequest struct {
	Standard string `json:"standard"`
	RawText  string `json:"raw_text,omitempty"`
}

// Create creates a new scan. Text-based scans are analyzed synchronously
// and come back completed; image-based scans come back as drafts awaiting
// an upload.
func (h *ScanHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var req createScanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	scan, err := h.scanService.Create(r.Context(), domain.CreateScanParams{
		UserID:   userID,
		Standard: domain.StandardID(req.Standard),
		RawText:  req.RawText,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, toScanResponse(scan))
}

// List retrieves a page of the caller's scans, newest first.
func (h *ScanHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	scans, err := h.scanService.List(r.Context(), userID, limit, offset)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	resp := scanListResponse{
		Scans:  make([]scanResponse, 0, len(scans)),
		Limit:  limit,
		Offset: offset,
	}
	for i := range scans {
		resp.Scans = append(resp.Scans, toScanResponse(&scans[i]))
	}

	respondJSON(w, http.StatusOK, resp)
}

// Get retrieves a single scan.
func (h *ScanHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	scanID, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	scan, err := h.scanService.GetByID(r.Context(), scanID, userID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toScanResponse(scan))
}

// UploadImage accepts a multipart label photo upload and enqueues analysis.
// The form field name is "image".
func (h *ScanHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	scanID, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	// The parse limit leaves headroom over the image cap so the size check
	// in the service produces the more specific error.
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxImageSizeBytes+maxBodyBytes)
	if err := r.ParseMultipartForm(domain.MaxImageSizeBytes); err != nil {
		ErrorResponse(w, r, h.logger, domain.Errorf(domain.ETOOLARGE, "scan.upload_image", "uploaded file exceeds the %d byte limit", domain.MaxImageSizeBytes))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("scan.upload_image", "multipart field \"image\" is required"))
		return
	}
	defer file.Close()

	img, err := h.scanService.AttachImage(r.Context(), domain.AttachImageParams{
		ScanID:           scanID,
		UserID:           userID,
		OriginalFilename: header.Filename,
		ContentType:      header.Header.Get("Content-Type"),
	}, file)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusAccepted, toScanImageResponse(img))
}

// GetImage redirects to a URL serving the scan's most recent label photo.
func (h *ScanHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	scanID, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	url, err := h.scanService.ImageURL(r.Context(), scanID, userID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

// GetReport renders the HTML analysis report for a completed scan.
func (h *ScanHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	scanID, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	scan, err := h.scanService.GetByID(r.Context(), scanID, userID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if !scan.HasResult() {
		err := domain.Errorf(domain.ECONFLICT, "scan.report", "scan %s has no analysis result yet (status: %s)", scan.ID, scan.Status)
		ErrorResponse(w, r, h.logger, err)
		return
	}

	// A label photo is optional; text-based scans have none.
	imageURL, err := h.scanService.ImageURL(r.Context(), scanID, userID)
	if err != nil && domain.ErrorCode(err) != domain.ENOTFOUND {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := h.reports.Generate(r.Context(), &report.ReportData{
		Scan:        scan,
		GeneratedAt: time.Now(),
		ImageURL:    imageURL,
	}, w); err != nil {
		h.logger.Error("failed to render report", "error", err, "scan_id", scanID)
		return
	}

	metrics.ReportsGenerated.WithLabelValues("html").Inc()
}
