package recognition

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Provider defines the interface for label text recognition backends.
type Provider interface {
	// RecognizeText extracts printed text from a label photo.
	RecognizeText(ctx context.Context, params RecognizeParams) (*Result, error)
}

// RecognizeParams contains parameters for a recognition request.
type RecognizeParams struct {
	ImageData   []byte    // Raw image bytes
	ContentType string    // MIME type (e.g., "image/jpeg")
	Languages   []string  // Tesseract language codes; empty means eng+hin
	ScanID      uuid.UUID // Scan ID for tracking
	UserID      uuid.UUID // User ID for tracking
}

// Result contains the recognized text and the engine's mean confidence.
type Result struct {
	// Text is the raw recognized text, line breaks preserved. Downstream
	// analysis normalizes it; providers must not clean it up themselves.
	Text string

	// Confidence is the engine's mean word confidence in [0, 1]. Zero when
	// the backend reports none.
	Confidence float64
}

// Error codes for recognition operations
var (
	// ERecognitionInvalidImage indicates the image format or content is unreadable
	ERecognitionInvalidImage = errors.New("invalid image format or content")

	// ERecognitionTimeout indicates the request timed out
	ERecognitionTimeout = errors.New("recognition timed out")

	// ERecognitionUnavailable indicates the engine is temporarily unavailable
	ERecognitionUnavailable = errors.New("recognition engine unavailable")
)

// IsRetryable returns true if the error is a transient error that can be retried
func IsRetryable(err error) bool {
	return errors.Is(err, ERecognitionTimeout) ||
		errors.Is(err, ERecognitionUnavailable)
}

// WrapError wraps an error with context about the recognition operation
func WrapError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("recognition %s: %w", operation, err)
}
