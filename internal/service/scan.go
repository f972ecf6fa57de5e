// Package service contains the business logic layer.
//
// This file implements the scan service for managing label scans: creation,
// image upload, retrieval and the synchronous text analysis paths.
package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/riverlabs/aquacheck/internal/analyzer"
	"github.com/riverlabs/aquacheck/internal/domain"
	"github.com/riverlabs/aquacheck/internal/metrics"
	"github.com/riverlabs/aquacheck/internal/repository"
	"github.com/riverlabs/aquacheck/internal/storage"
	"github.com/riverlabs/aquacheck/internal/worker"
)

// =============================================================================
// Interface Definition
// =============================================================================

// ScanService defines the interface for label scan operations.
type ScanService interface {
	// Create creates a new scan. When params.RawText is set the scan is
	// analyzed synchronously and returned completed; otherwise it is a draft
	// awaiting an image upload.
	// Returns domain.EINVALID for validation errors, domain.ENODATA when raw
	// text yields no readings.
	Create(ctx context.Context, params domain.CreateScanParams) (*domain.LabelScan, error)

	// GetByID retrieves a scan by ID and user ID (for authorization).
	// Returns domain.ENOTFOUND if the scan does not exist or belongs to
	// another user.
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.LabelScan, error)

	// List retrieves a page of the user's scans, newest first.
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.LabelScan, error)

	// AttachImage stores an uploaded label photo with a generated thumbnail
	// and enqueues background analysis of the scan.
	// Returns domain.EINVALID for unsupported content types,
	// domain.ETOOLARGE for oversized uploads.
	AttachImage(ctx context.Context, params domain.AttachImageParams, data io.Reader) (*domain.ScanImage, error)

	// ImageURL returns a URL serving the scan's most recent label photo.
	ImageURL(ctx context.Context, scanID, userID uuid.UUID) (string, error)

	// AnalyzeText runs the full analysis pipeline over pasted label text
	// without persisting anything.
	// Returns domain.ENODATA when no readings could be extracted.
	AnalyzeText(ctx context.Context, rawText string, std domain.StandardID) (*analyzer.LabelAnalysis, error)

	// AnalyzeReadings classifies manually entered readings against a
	// standard. Returns domain.EINVALID for bad readings.
	AnalyzeReadings(ctx context.Context, readings map[domain.ParameterKey]float64, std domain.StandardID) (*domain.AnalysisResult, error)
}

// =============================================================================
// Implementation
// =============================================================================

// scanService implements the ScanService interface.
type scanService struct {
	queries    *repository.Queries
	storage    storage.Storage
	thumbnails ThumbnailProcessor
	logger     *slog.Logger
}

// NewScanService creates a new ScanService.
func NewScanService(
	queries *repository.Queries,
	store storage.Storage,
	thumbnails ThumbnailProcessor,
	logger *slog.Logger,
) ScanService {
	return &scanService{
		queries:    queries,
		storage:    store,
		thumbnails: thumbnails,
		logger:     logger,
	}
}

// =============================================================================
// Create
// =============================================================================

// Create creates a new scan, analyzing it immediately when raw text is given.
func (s *scanService) Create(ctx context.Context, params domain.CreateScanParams) (*domain.LabelScan, error) {
	const op = "scan.create"

	if !params.Standard.IsValid() {
		return nil, domain.Invalid(op, fmt.Sprintf("unknown standard %q", params.Standard))
	}
	if params.UserID == uuid.Nil {
		return nil, domain.Invalid(op, "user id is required")
	}

	// Text-based scans are analyzed before anything is persisted, so label
	// text that yields nothing leaves no orphan row in the user's list.
	var analysis *analyzer.LabelAnalysis
	if params.RawText != "" {
		a, err := s.AnalyzeText(ctx, params.RawText, params.Standard)
		if err != nil {
			return nil, err
		}
		analysis = a
	}

	row, err := s.queries.CreateScan(ctx, repository.CreateScanParams{
		UserID:   params.UserID,
		Standard: params.Standard.String(),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create scan")
	}

	metrics.ScansCreated.Inc()
	s.logger.Info("scan created",
		"scan_id", row.ID,
		"user_id", params.UserID,
		"standard", params.Standard,
	)

	if analysis == nil {
		return s.rowToScan(row)
	}

	updated, err := s.storeAnalysis(ctx, row.ID, params.RawText, nil, analysis)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to store analysis")
	}
	return s.rowToScan(updated)
}

// =============================================================================
// Retrieval
// =============================================================================

// GetByID retrieves a scan owned by the user.
func (s *scanService) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.LabelScan, error) {
	const op = "scan.get"

	row, err := s.queries.GetScan(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "scan", id.String())
		}
		return nil, domain.Internal(err, op, "failed to fetch scan")
	}
	if row.UserID != userID {
		// Hide other users' scans entirely.
		return nil, domain.NotFound(op, "scan", id.String())
	}

	return s.rowToScan(row)
}

// List retrieves a page of the user's scans.
func (s *scanService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.LabelScan, error) {
	const op = "scan.list"

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.queries.ListScansByUser(ctx, repository.ListScansByUserParams{
		UserID: userID,
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list scans")
	}

	scans := make([]domain.LabelScan, 0, len(rows))
	for _, row := range rows {
		scan, err := s.rowToScan(row)
		if err != nil {
			return nil, err
		}
		scans = append(scans, *scan)
	}
	return scans, nil
}

// =============================================================================
// Image Upload
// =============================================================================

// AttachImage stores a label photo and queues the scan for analysis.
func (s *scanService) AttachImage(ctx context.Context, params domain.AttachImageParams, data io.Reader) (*domain.ScanImage, error) {
	const op = "scan.attach_image"

	scan, err := s.GetByID(ctx, params.ScanID, params.UserID)
	if err != nil {
		return nil, err
	}
	if !scan.Status.CanTransitionTo(domain.ScanStatusAnalyzing) {
		return nil, domain.Invalid(op, fmt.Sprintf("scan in status %q cannot accept images", scan.Status))
	}
	if !storage.IsAllowedImageType(params.ContentType) {
		return nil, domain.Invalid(op, fmt.Sprintf("unsupported image type %q", params.ContentType))
	}

	// Buffer the upload so the thumbnail and the stored original read the
	// same bytes. One extra byte exposes oversize.
	imageData, err := io.ReadAll(io.LimitReader(data, domain.MaxImageSizeBytes+1))
	if err != nil {
		return nil, domain.Internal(err, op, "failed to read upload")
	}
	if len(imageData) > domain.MaxImageSizeBytes {
		return nil, domain.Errorf(domain.ETOOLARGE, op, "image exceeds the %d MB limit", domain.MaxImageSizeBytes>>20)
	}
	if len(imageData) == 0 {
		return nil, domain.Invalid(op, "image is empty")
	}

	thumbData, width, height, err := s.thumbnails.GenerateThumbnail(
		bytes.NewReader(imageData), domain.ThumbnailMaxWidth, domain.ThumbnailMaxHeight)
	if err != nil {
		return nil, domain.Invalid(op, "image could not be decoded")
	}

	storageKey := storage.ImageKey(params.ScanID, params.OriginalFilename)
	if err := s.storage.Put(ctx, storageKey, bytes.NewReader(imageData), storage.PutOptions{
		ContentType: params.ContentType,
		MaxSize:     domain.MaxImageSizeBytes,
	}); err != nil {
		if storage.IsTooLarge(err) {
			return nil, domain.Errorf(domain.ETOOLARGE, op, "image exceeds the %d MB limit", domain.MaxImageSizeBytes>>20)
		}
		return nil, domain.Internal(err, op, "failed to store image")
	}

	thumbnailKey := storage.ThumbnailKey(params.ScanID, "thumb.jpg")
	if err := s.storage.Put(ctx, thumbnailKey, bytes.NewReader(thumbData), storage.PutOptions{
		ContentType: "image/jpeg",
	}); err != nil {
		// The original is stored; a missing thumbnail is not fatal.
		s.logger.Error("failed to store thumbnail", "scan_id", params.ScanID, "error", err)
		thumbnailKey = ""
	}

	row, err := s.queries.CreateScanImage(ctx, repository.CreateScanImageParams{
		ScanID:           params.ScanID,
		StorageKey:       storageKey,
		ThumbnailKey:     sql.NullString{String: thumbnailKey, Valid: thumbnailKey != ""},
		OriginalFilename: params.OriginalFilename,
		ContentType:      params.ContentType,
		SizeBytes:        int64(len(imageData)),
		Width:            sql.NullInt32{Int32: int32(width), Valid: true},
		Height:           sql.NullInt32{Int32: int32(height), Valid: true},
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to record image")
	}

	if _, err := worker.EnqueueAnalyzeScan(ctx, s.queries, params.ScanID, params.UserID); err != nil {
		return nil, domain.Internal(err, op, "failed to queue analysis")
	}

	s.logger.Info("image attached",
		"scan_id", params.ScanID,
		"image_id", row.ID,
		"size_bytes", len(imageData),
	)

	img := rowToScanImage(row)
	return &img, nil
}

// ImageURL returns a short-lived URL for the scan's latest photo.
func (s *scanService) ImageURL(ctx context.Context, scanID, userID uuid.UUID) (string, error) {
	const op = "scan.image_url"

	if _, err := s.GetByID(ctx, scanID, userID); err != nil {
		return "", err
	}

	img, err := s.queries.GetScanImageByScan(ctx, scanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.NotFound(op, "image for scan", scanID.String())
		}
		return "", domain.Internal(err, op, "failed to fetch image")
	}

	url, err := s.storage.URL(ctx, img.StorageKey, 15*time.Minute)
	if err != nil {
		return "", domain.Internal(err, op, "failed to generate image URL")
	}
	return url, nil
}

// =============================================================================
// Synchronous Analysis
// =============================================================================

// AnalyzeText runs the pipeline over pasted label text.
func (s *scanService) AnalyzeText(ctx context.Context, rawText string, std domain.StandardID) (*analyzer.LabelAnalysis, error) {
	const op = "scan.analyze_text"

	if !std.IsValid() {
		return nil, domain.Invalid(op, fmt.Sprintf("unknown standard %q", std))
	}
	if rawText == "" {
		return nil, domain.Invalid(op, "text is required")
	}

	analysis := analyzer.AnalyzeLabel(rawText, std)
	if len(analysis.Readings) == 0 {
		return nil, domain.NoData(op)
	}

	metrics.RecordScanAnalyzed(analysis.Result)
	return &analysis, nil
}

// AnalyzeReadings classifies manually entered readings.
func (s *scanService) AnalyzeReadings(ctx context.Context, readings map[domain.ParameterKey]float64, std domain.StandardID) (*domain.AnalysisResult, error) {
	const op = "scan.analyze_readings"

	if !std.IsValid() {
		return nil, domain.Invalid(op, fmt.Sprintf("unknown standard %q", std))
	}
	if err := analyzer.ValidateReadings(readings); err != nil {
		return nil, err
	}

	result := analyzer.Classify(readings, std)
	metrics.ManualAnalyses.WithLabelValues(std.String()).Inc()
	return &result, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

// storeAnalysis persists a completed analysis on the scan row.
func (s *scanService) storeAnalysis(
	ctx context.Context,
	scanID uuid.UUID,
	rawText string,
	confidence *float64,
	analysis *analyzer.LabelAnalysis,
) (repository.LabelScan, error) {
	readingsJSON, err := json.Marshal(analysis.Readings)
	if err != nil {
		return repository.LabelScan{}, fmt.Errorf("marshal readings: %w", err)
	}
	brandJSON, err := json.Marshal(analysis.Brand)
	if err != nil {
		return repository.LabelScan{}, fmt.Errorf("marshal brand verdict: %w", err)
	}
	resultJSON, err := json.Marshal(analysis.Result)
	if err != nil {
		return repository.LabelScan{}, fmt.Errorf("marshal result: %w", err)
	}

	var conf sql.NullFloat64
	if confidence != nil {
		conf = sql.NullFloat64{Float64: *confidence, Valid: true}
	}

	return s.queries.UpdateScanAnalysis(ctx, repository.UpdateScanAnalysisParams{
		ID:         scanID,
		RawText:    sql.NullString{String: rawText, Valid: true},
		Confidence: conf,
		Readings:   pqtype.NullRawMessage{RawMessage: readingsJSON, Valid: true},
		Brand:      pqtype.NullRawMessage{RawMessage: brandJSON, Valid: true},
		Result:     pqtype.NullRawMessage{RawMessage: resultJSON, Valid: true},
	})
}

// rowToScan converts a repository row to the domain type, decoding the JSONB
// analysis columns.
func (s *scanService) rowToScan(row repository.LabelScan) (*domain.LabelScan, error) {
	const op = "scan.decode"

	scan := &domain.LabelScan{
		ID:        row.ID,
		UserID:    row.UserID,
		Status:    domain.ScanStatus(row.Status),
		Standard:  domain.StandardID(row.Standard),
		RawText:   row.RawText.String,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Confidence.Valid {
		conf := row.Confidence.Float64
		scan.Confidence = &conf
	}

	if row.Readings.Valid {
		if err := json.Unmarshal(row.Readings.RawMessage, &scan.Readings); err != nil {
			return nil, domain.Internal(err, op, "corrupt readings data")
		}
	}
	if row.Brand.Valid {
		scan.Brand = &domain.BrandVerdict{}
		if err := json.Unmarshal(row.Brand.RawMessage, scan.Brand); err != nil {
			return nil, domain.Internal(err, op, "corrupt brand data")
		}
	}
	if row.Result.Valid {
		scan.Result = &domain.AnalysisResult{}
		if err := json.Unmarshal(row.Result.RawMessage, scan.Result); err != nil {
			return nil, domain.Internal(err, op, "corrupt result data")
		}
	}

	return scan, nil
}

// rowToScanImage converts a repository image row to the domain type.
func rowToScanImage(row repository.ScanImage) domain.ScanImage {
	return domain.ScanImage{
		ID:               row.ID,
		ScanID:           row.ScanID,
		StorageKey:       row.StorageKey,
		ThumbnailKey:     row.ThumbnailKey.String,
		OriginalFilename: row.OriginalFilename,
		ContentType:      row.ContentType,
		SizeBytes:        row.SizeBytes,
		Width:            int(row.Width.Int32),
		Height:           int(row.Height.Int32),
		CreatedAt:        row.CreatedAt,
	}
}
