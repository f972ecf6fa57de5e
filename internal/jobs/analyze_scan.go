// Package jobs contains background job handlers.
package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/sqlc-dev/pqtype"

	"github.com/riverlabs/aquacheck/internal/analyzer"
	"github.com/riverlabs/aquacheck/internal/domain"
	"github.com/riverlabs/aquacheck/internal/metrics"
	"github.com/riverlabs/aquacheck/internal/recognition"
	"github.com/riverlabs/aquacheck/internal/repository"
	"github.com/riverlabs/aquacheck/internal/storage"
	"github.com/riverlabs/aquacheck/internal/worker"
)

// AnalyzeScanHandler processes jobs that analyze a label scan's photo.
// It downloads the image, recognizes the printed text and runs the full
// analysis pipeline, then stores the outcome on the scan.
type AnalyzeScanHandler struct {
	queries    *repository.Queries
	recognizer recognition.Provider
	storage    storage.Storage
	logger     *slog.Logger
}

// NewAnalyzeScanHandler creates a new handler for scan analysis jobs.
func NewAnalyzeScanHandler(
	queries *repository.Queries,
	recognizer recognition.Provider,
	storage storage.Storage,
	logger *slog.Logger,
) *AnalyzeScanHandler {
	return &AnalyzeScanHandler{
		queries:    queries,
		recognizer: recognizer,
		storage:    storage,
		logger:     logger,
	}
}

// Type returns the job type identifier.
func (h *AnalyzeScanHandler) Type() string {
	return worker.JobTypeAnalyzeScan
}

// Handle executes the scan analysis job.
func (h *AnalyzeScanHandler) Handle(ctx context.Context, payload []byte) error {
	var p worker.AnalyzeScanPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return worker.NewPermanentError(fmt.Errorf("invalid payload: %w", err))
	}

	h.logger.Info("Analyzing scan", "scan_id", p.ScanID, "user_id", p.UserID)

	// 1. Fetch and validate the scan
	scan, err := h.queries.GetScan(ctx, p.ScanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return worker.NewPermanentError(fmt.Errorf("scan not found: %w", err))
		}
		// Database error - retryable
		return fmt.Errorf("fetch scan: %w", err)
	}

	if scan.UserID != p.UserID {
		return worker.NewPermanentError(fmt.Errorf("scan does not belong to user"))
	}

	status := domain.ScanStatus(scan.Status)
	if !status.CanTransitionTo(domain.ScanStatusAnalyzing) && status != domain.ScanStatusAnalyzing {
		return worker.NewPermanentError(fmt.Errorf("invalid scan status: %s", status))
	}

	// 2. Mark the scan analyzing
	if status != domain.ScanStatusAnalyzing {
		err = h.queries.UpdateScanStatus(ctx, repository.UpdateScanStatusParams{
			ID:     p.ScanID,
			Status: domain.ScanStatusAnalyzing.String(),
		})
		if err != nil {
			return fmt.Errorf("update scan status to analyzing: %w", err)
		}
	}

	// 3. Run the analysis. Retryable failures leave the scan analyzing so
	// the next attempt picks it up; once the job is abandoned the worker
	// calls HandleFailure, which fails the scan.
	if err := h.analyzeScan(ctx, scan); err != nil {
		return err
	}

	h.logger.Info("Scan analysis completed", "scan_id", p.ScanID)
	return nil
}

// analyzeScan downloads the scan's photo, recognizes its text and persists
// the analysis outcome.
func (h *AnalyzeScanHandler) analyzeScan(ctx context.Context, scan repository.LabelScan) error {
	logger := h.logger.With("scan_id", scan.ID)

	img, err := h.queries.GetScanImageByScan(ctx, scan.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return worker.NewPermanentError(fmt.Errorf("scan has no image"))
		}
		return fmt.Errorf("fetch scan image: %w", err)
	}

	reader, objInfo, err := h.storage.Get(ctx, img.StorageKey)
	if err != nil {
		if storage.IsNotFound(err) {
			return worker.NewPermanentError(fmt.Errorf("image missing from storage: %w", err))
		}
		return fmt.Errorf("download image from storage: %w", err)
	}
	defer reader.Close()

	imageData, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("read image data: %w", err)
	}

	logger.Info("Downloaded image from storage",
		"size_bytes", len(imageData),
		"content_type", objInfo.ContentType,
	)

	result, err := h.recognizer.RecognizeText(ctx, recognition.RecognizeParams{
		ImageData:   imageData,
		ContentType: objInfo.ContentType,
		ScanID:      scan.ID,
		UserID:      scan.UserID,
	})
	metrics.RecordRecognition(err == nil)
	if err != nil {
		if recognition.IsRetryable(err) {
			return fmt.Errorf("text recognition (retryable): %w", err)
		}
		if errors.Is(err, recognition.ERecognitionInvalidImage) {
			return worker.NewPermanentError(fmt.Errorf("text recognition (permanent): %w", err))
		}
		return fmt.Errorf("text recognition: %w", err)
	}

	analysis := analyzer.AnalyzeLabel(result.Text, domain.StandardID(scan.Standard))

	logger.Info("Label analysis completed",
		"readings", len(analysis.Readings),
		"evaluated", analysis.Result.Evaluated(),
		"brand_status", analysis.Brand.Status,
		"confidence", result.Confidence,
	)

	readingsJSON, err := json.Marshal(analysis.Readings)
	if err != nil {
		return worker.NewPermanentError(fmt.Errorf("marshal readings: %w", err))
	}
	brandJSON, err := json.Marshal(analysis.Brand)
	if err != nil {
		return worker.NewPermanentError(fmt.Errorf("marshal brand verdict: %w", err))
	}
	resultJSON, err := json.Marshal(analysis.Result)
	if err != nil {
		return worker.NewPermanentError(fmt.Errorf("marshal analysis result: %w", err))
	}

	_, err = h.queries.UpdateScanAnalysis(ctx, repository.UpdateScanAnalysisParams{
		ID:         scan.ID,
		RawText:    sql.NullString{String: result.Text, Valid: true},
		Confidence: sql.NullFloat64{Float64: result.Confidence, Valid: result.Confidence > 0},
		Readings:   pqtype.NullRawMessage{RawMessage: readingsJSON, Valid: true},
		Brand:      pqtype.NullRawMessage{RawMessage: brandJSON, Valid: true},
		Result:     pqtype.NullRawMessage{RawMessage: resultJSON, Valid: true},
	})
	if err != nil {
		return fmt.Errorf("store analysis: %w", err)
	}

	metrics.RecordScanAnalyzed(analysis.Result)
	return nil
}

// HandleFailure runs when the job is abandoned: a permanent error, or a
// retryable one on the final attempt. It moves the scan out of analyzing so
// the user sees the failure and can re-upload a clearer image.
func (h *AnalyzeScanHandler) HandleFailure(ctx context.Context, payload []byte, jobErr error) error {
	var p worker.AnalyzeScanPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	scan, err := h.queries.GetScan(ctx, p.ScanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("fetch scan: %w", err)
	}
	if domain.ScanStatus(scan.Status) != domain.ScanStatusAnalyzing {
		return nil
	}

	h.logger.Warn("Marking scan failed after abandoned analysis",
		"scan_id", p.ScanID,
		"error", jobErr,
	)
	return h.queries.UpdateScanStatus(ctx, repository.UpdateScanStatusParams{
		ID:     p.ScanID,
		Status: domain.ScanStatusFailed.String(),
	})
}
