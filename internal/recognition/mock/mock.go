// Package mock provides a canned recognition provider for testing and local
// development without a Tesseract installation.
package mock

import (
	"context"
	"log/slog"

	"github.com/riverlabs/aquacheck/internal/recognition"
)

// Provider is a mock recognition provider.
type Provider struct {
	logger *slog.Logger

	// Configurable responses for testing
	RecognizeTextResponse *recognition.Result
	RecognizeTextError    error

	// Call tracking for testing
	RecognizeTextCalls int
}

// New creates a new mock recognition provider.
func New(logger *slog.Logger) *Provider {
	return &Provider{
		logger: logger,
	}
}

// RecognizeText returns a canned mineral-water label transcription.
func (p *Provider) RecognizeText(ctx context.Context, params recognition.RecognizeParams) (*recognition.Result, error) {
	p.RecognizeTextCalls++

	if p.RecognizeTextError != nil {
		return nil, p.RecognizeTextError
	}
	if p.RecognizeTextResponse != nil {
		return p.RecognizeTextResponse, nil
	}

	p.logger.Debug("mock recognition", "scan_id", params.ScanID, "bytes", len(params.ImageData))

	return &recognition.Result{
		Text: "Bisleri Mineral Water\n" +
			"TYPICAL ANALYSIS (mg/L)\n" +
			"Calcium: 22.5\n" +
			"Magnesium: 8.2\n" +
			"Sodium: 14.0\n" +
			"Potassium: 2.8\n" +
			"Bicarbonate: 110\n" +
			"Chloride: 18.5\n" +
			"Sulphate: 12.3\n" +
			"Nitrate: 4.1\n" +
			"Fluoride: 0.4\n" +
			"TDS: 210\n" +
			"pH: 7.2",
		Confidence: 0.93,
	}, nil
}
