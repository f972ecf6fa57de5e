//go:build !cgo

package tesseract

import (
	"context"
	"log/slog"

	"github.com/riverlabs/aquacheck/internal/recognition"
)

// Provider is the stub used when the binary is built without CGO. Every call
// reports the engine unavailable; deployments without Tesseract should run
// the mock provider instead.
type Provider struct {
	logger *slog.Logger
}

// Option configures the provider.
type Option func(*Provider)

// WithTessdataPath is accepted for interface parity and ignored.
func WithTessdataPath(path string) Option {
	return func(p *Provider) {}
}

// New creates the stub provider.
func New(logger *slog.Logger, opts ...Option) *Provider {
	p := &Provider{logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RecognizeText always fails: there is no engine in a non-CGO build.
func (p *Provider) RecognizeText(ctx context.Context, params recognition.RecognizeParams) (*recognition.Result, error) {
	p.logger.Warn("tesseract provider requested but binary was built without cgo")
	return nil, recognition.WrapError("recognize_text", recognition.ERecognitionUnavailable)
}
