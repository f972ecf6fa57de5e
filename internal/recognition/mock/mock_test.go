package mock

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverlabs/aquacheck/internal/recognition"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestProvider_RecognizeText_Default(t *testing.T) {
	p := New(testLogger())

	result, err := p.RecognizeText(context.Background(), recognition.RecognizeParams{
		ScanID:    uuid.New(),
		ImageData: []byte("fake image bytes"),
	})
	require.NoError(t, err)

	assert.Contains(t, result.Text, "Bisleri")
	assert.Contains(t, result.Text, "Calcium: 22.5")
	assert.Contains(t, result.Text, "pH: 7.2")
	assert.Greater(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0, "confidence is normalized to [0, 1]")
	assert.Equal(t, 1, p.RecognizeTextCalls)
}

func TestProvider_RecognizeText_Overrides(t *testing.T) {
	p := New(testLogger())
	p.RecognizeTextResponse = &recognition.Result{Text: "custom label", Confidence: 0.5}

	result, err := p.RecognizeText(context.Background(), recognition.RecognizeParams{})
	require.NoError(t, err)
	assert.Equal(t, "custom label", result.Text)

	p.RecognizeTextError = errors.New("lens cap on")
	_, err = p.RecognizeText(context.Background(), recognition.RecognizeParams{})
	assert.Error(t, err)

	assert.Equal(t, 2, p.RecognizeTextCalls)
}
