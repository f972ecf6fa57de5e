// Package domain contains core business types and interfaces.
//
// This file defines the LabelScan domain type: one user-initiated analysis of
// a bottled-water label, from image upload through recognition to the stored
// analysis result.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Scan Status
// =============================================================================

// ScanStatus represents the lifecycle state of a label scan.
type ScanStatus string

const (
	// ScanStatusDraft indicates a scan that has been created but not yet
	// submitted for analysis. Images may still be uploaded.
	ScanStatusDraft ScanStatus = "draft"

	// ScanStatusAnalyzing indicates the background job is running recognition
	// and classification for this scan.
	ScanStatusAnalyzing ScanStatus = "analyzing"

	// ScanStatusCompleted indicates analysis finished and a result is stored.
	ScanStatusCompleted ScanStatus = "completed"

	// ScanStatusFailed indicates recognition failed and no result exists.
	// The scan can be retried with a clearer image.
	ScanStatusFailed ScanStatus = "failed"
)

// String returns the string representation of the status.
func (s ScanStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a recognized value.
func (s ScanStatus) IsValid() bool {
	switch s {
	case ScanStatusDraft, ScanStatusAnalyzing, ScanStatusCompleted, ScanStatusFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether a status change is allowed.
func (s ScanStatus) CanTransitionTo(next ScanStatus) bool {
	switch s {
	case ScanStatusDraft:
		return next == ScanStatusAnalyzing
	case ScanStatusAnalyzing:
		return next == ScanStatusCompleted || next == ScanStatusFailed
	case ScanStatusFailed:
		// A failed scan may be re-analyzed with a new image.
		return next == ScanStatusAnalyzing
	case ScanStatusCompleted:
		return false
	}
	return false
}

// =============================================================================
// Label Scan
// =============================================================================

// LabelScan represents one analysis run over a bottled-water label.
//
// A scan is either image-based (an uploaded photo goes through the
// recognition collaborator) or text-based (the user pasted label text, and
// RawText is set directly).
type LabelScan struct {
	ID       uuid.UUID  // Unique identifier
	UserID   uuid.UUID  // Owner (opaque, supplied by the caller)
	Status   ScanStatus // Lifecycle state
	Standard StandardID // Standard selected for classification

	// Recognition output. Confidence is opaque metadata from the recognizer,
	// normalized to [0, 1]; surfaced to the caller and never used in
	// classification.
	RawText    string
	Confidence *float64

	// Analysis output, present once Status is completed.
	Readings map[ParameterKey]float64
	Brand    *BrandVerdict
	Result   *AnalysisResult

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasResult reports whether analysis output is available.
func (s *LabelScan) HasResult() bool {
	return s.Result != nil
}

// =============================================================================
// Scan Image
// =============================================================================

// ScanImage represents an uploaded label photo attached to a scan.
type ScanImage struct {
	ID               uuid.UUID
	ScanID           uuid.UUID
	StorageKey       string // Object key of the original upload
	ThumbnailKey     string // Object key of the generated thumbnail
	OriginalFilename string
	ContentType      string
	SizeBytes        int64
	Width            int
	Height           int
	CreatedAt        time.Time
}

// =============================================================================
// Service Parameters
// =============================================================================

// CreateScanParams contains validated parameters for creating a scan.
type CreateScanParams struct {
	UserID   uuid.UUID
	Standard StandardID
	RawText  string // Optional: set for text-based scans
}

// AttachImageParams contains validated parameters for uploading a label image.
type AttachImageParams struct {
	ScanID           uuid.UUID
	UserID           uuid.UUID
	OriginalFilename string
	ContentType      string
}

// Image upload constraints.
const (
	// MaxImageSizeBytes caps uploaded label photos at 10 MiB.
	MaxImageSizeBytes = 10 << 20

	// ThumbnailMaxWidth and ThumbnailMaxHeight bound generated thumbnails.
	ThumbnailMaxWidth  = 400
	ThumbnailMaxHeight = 400

	// ThumbnailJPEGQuality is the JPEG quality for generated thumbnails.
	ThumbnailJPEGQuality = 85
)
