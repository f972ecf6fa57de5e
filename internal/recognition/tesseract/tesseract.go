//go:build cgo

// Package tesseract provides label text recognition backed by the Tesseract
// engine via gosseract. Requires CGO and a system Tesseract installation with
// the eng and hin language packs; builds without CGO get a stub provider that
// always reports the engine unavailable.
package tesseract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/otiai10/gosseract/v2"

	"github.com/riverlabs/aquacheck/internal/recognition"
)

// defaultLanguages covers Latin label text plus Devanagari brand names.
var defaultLanguages = []string{"eng", "hin"}

// Provider recognizes label text with a system Tesseract installation.
type Provider struct {
	logger       *slog.Logger
	tessdataPath string
}

// Option configures the provider.
type Option func(*Provider)

// WithTessdataPath overrides the engine's training data directory.
func WithTessdataPath(path string) Option {
	return func(p *Provider) { p.tessdataPath = path }
}

// New creates a Tesseract-backed recognition provider.
func New(logger *slog.Logger, opts ...Option) *Provider {
	p := &Provider{logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type outcome struct {
	result *recognition.Result
	err    error
}

// RecognizeText runs Tesseract over the image bytes.
//
// gosseract has no native cancellation, so the engine runs in a goroutine and
// a cancelled context abandons the result. The goroutine still finishes in
// the background; client teardown happens there.
func (p *Provider) RecognizeText(ctx context.Context, params recognition.RecognizeParams) (*recognition.Result, error) {
	if len(params.ImageData) == 0 {
		return nil, recognition.WrapError("recognize_text", recognition.ERecognitionInvalidImage)
	}

	langs := params.Languages
	if len(langs) == 0 {
		langs = defaultLanguages
	}

	done := make(chan outcome, 1)
	start := time.Now()
	go func() {
		done <- p.recognize(params.ImageData, langs)
	}()

	select {
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, recognition.WrapError("recognize_text", recognition.ERecognitionTimeout)
		}
		return nil, ctx.Err()
	case out := <-done:
		if out.err != nil {
			return nil, out.err
		}
		p.logger.Debug("tesseract recognition complete",
			"scan_id", params.ScanID,
			"duration_ms", time.Since(start).Milliseconds(),
			"confidence", out.result.Confidence,
		)
		return out.result, nil
	}
}

func (p *Provider) recognize(imageData []byte, langs []string) outcome {
	client := gosseract.NewClient()
	defer client.Close()

	if p.tessdataPath != "" {
		if err := client.SetTessdataPrefix(p.tessdataPath); err != nil {
			return outcome{err: recognition.WrapError("set_tessdata", recognition.ERecognitionUnavailable)}
		}
	}
	if err := client.SetLanguage(langs...); err != nil {
		return outcome{err: recognition.WrapError("set_language", recognition.ERecognitionUnavailable)}
	}
	if err := client.SetImageFromBytes(imageData); err != nil {
		return outcome{err: recognition.WrapError("set_image", recognition.ERecognitionInvalidImage)}
	}

	text, err := client.Text()
	if err != nil {
		return outcome{err: recognition.WrapError("extract_text", recognition.ERecognitionUnavailable)}
	}

	return outcome{result: &recognition.Result{
		Text:       text,
		Confidence: meanConfidence(client),
	}}
}

// meanConfidence averages Tesseract's per-word confidence, normalized to
// [0, 1]. Bounding box retrieval can fail on some engine builds; in that case
// the confidence is simply unknown.
func meanConfidence(client *gosseract.Client) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	var n int
	for _, box := range boxes {
		if strings.TrimSpace(box.Word) == "" {
			continue
		}
		sum += float64(box.Confidence) / 100.0
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
