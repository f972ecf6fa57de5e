package report

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverlabs/aquacheck/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func completedScan() *domain.LabelScan {
	overall := domain.OverallNeedsAttention
	return &domain.LabelScan{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Status:   domain.ScanStatusCompleted,
		Standard: domain.StandardWHO,
		Readings: map[domain.ParameterKey]float64{
			domain.ParamCalcium:   22.5,
			domain.ParamMagnesium: 6.5,
		},
		Brand: &domain.BrandVerdict{
			Status:  domain.BrandRecognized,
			Matched: &domain.BrandEntry{CanonicalName: "Bisleri"},
			Message: "Brand 'Bisleri' is recognized as genuine.",
		},
		Result: &domain.AnalysisResult{
			Standard: domain.StandardWHO,
			PerParameter: map[domain.ParameterKey]domain.ParameterVerdict{
				domain.ParamCalcium: {
					Value:    22.5,
					Unit:     "mg/L",
					Status:   domain.StatusOptimal,
					Severity: domain.SeverityNone,
					Message:  "Calcium is within the optimal range.",
				},
				domain.ParamMagnesium: {
					Value:    6.5,
					Unit:     "mg/L",
					Status:   domain.StatusLow,
					Severity: domain.SeverityWarning,
					Message:  "Magnesium is below the recommended minimum.",
					Impact:   "Low magnesium intake is linked to cardiovascular risk.",
				},
			},
			Overall: &overall,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestHTMLGenerator_Generate(t *testing.T) {
	gen, err := NewHTMLGenerator(testLogger())
	require.NoError(t, err)

	scan := completedScan()
	var buf bytes.Buffer

	n, err := gen.Generate(context.Background(), &ReportData{
		Scan:        scan,
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}, &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	html := buf.String()
	assert.Contains(t, html, scan.ID.String())
	assert.Contains(t, html, "NeedsAttention")
	assert.Contains(t, html, "Some parameters are outside optimal ranges")
	assert.Contains(t, html, "Bisleri")
	assert.Contains(t, html, "Calcium")
	assert.Contains(t, html, "Magnesium")
	assert.Contains(t, html, "severity-warning")
	assert.Contains(t, html, "cardiovascular risk")
	assert.NotContains(t, html, "img class=\"label\"")
}

func TestHTMLGenerator_Generate_WithImage(t *testing.T) {
	gen, err := NewHTMLGenerator(testLogger())
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = gen.Generate(context.Background(), &ReportData{
		Scan:        completedScan(),
		GeneratedAt: time.Now(),
		ImageURL:    "https://files.example.com/scans/abc/label.jpg",
	}, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `src="https://files.example.com/scans/abc/label.jpg"`)
}

func TestHTMLGenerator_Generate_NoResult(t *testing.T) {
	gen, err := NewHTMLGenerator(testLogger())
	require.NoError(t, err)

	scan := completedScan()
	scan.Result = nil

	var buf bytes.Buffer
	_, err = gen.Generate(context.Background(), &ReportData{Scan: scan, GeneratedAt: time.Now()}, &buf)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestHTMLGenerator_Generate_NoOverall(t *testing.T) {
	gen, err := NewHTMLGenerator(testLogger())
	require.NoError(t, err)

	scan := completedScan()
	scan.Result.Overall = nil
	scan.Result.PerParameter = map[domain.ParameterKey]domain.ParameterVerdict{}

	var buf bytes.Buffer
	_, err = gen.Generate(context.Background(), &ReportData{Scan: scan, GeneratedAt: time.Now()}, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "No parameters could be evaluated")
}

func TestHTMLGenerator_Generate_EscapesLabelText(t *testing.T) {
	gen, err := NewHTMLGenerator(testLogger())
	require.NoError(t, err)

	scan := completedScan()
	scan.Brand.Message = `<script>alert("x")</script>`

	var buf bytes.Buffer
	_, err = gen.Generate(context.Background(), &ReportData{Scan: scan, GeneratedAt: time.Now()}, &buf)
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "<script>")
}
