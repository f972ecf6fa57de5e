package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverlabs/aquacheck/internal/analyzer"
	"github.com/riverlabs/aquacheck/internal/domain"
	"github.com/riverlabs/aquacheck/internal/potability"
)

// stubScanService implements service.ScanService with overridable functions.
type stubScanService struct {
	analyzeTextFn     func(rawText string, std domain.StandardID) (*analyzer.LabelAnalysis, error)
	analyzeReadingsFn func(readings map[domain.ParameterKey]float64, std domain.StandardID) (*domain.AnalysisResult, error)
}

func (s *stubScanService) Create(ctx context.Context, params domain.CreateScanParams) (*domain.LabelScan, error) {
	return nil, domain.Internal(nil, "stub", "not implemented")
}

func (s *stubScanService) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.LabelScan, error) {
	return nil, domain.Internal(nil, "stub", "not implemented")
}

func (s *stubScanService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.LabelScan, error) {
	return nil, domain.Internal(nil, "stub", "not implemented")
}

func (s *stubScanService) AttachImage(ctx context.Context, params domain.AttachImageParams, data io.Reader) (*domain.ScanImage, error) {
	return nil, domain.Internal(nil, "stub", "not implemented")
}

func (s *stubScanService) ImageURL(ctx context.Context, scanID, userID uuid.UUID) (string, error) {
	return "", domain.Internal(nil, "stub", "not implemented")
}

func (s *stubScanService) AnalyzeText(ctx context.Context, rawText string, std domain.StandardID) (*analyzer.LabelAnalysis, error) {
	return s.analyzeTextFn(rawText, std)
}

func (s *stubScanService) AnalyzeReadings(ctx context.Context, readings map[domain.ParameterKey]float64, std domain.StandardID) (*domain.AnalysisResult, error) {
	return s.analyzeReadingsFn(readings, std)
}

// stubScorer implements potability.Scorer.
type stubScorer struct {
	prediction potability.Prediction
	err        error
}

func (s *stubScorer) Predict(ctx context.Context, features potability.Features) (potability.Prediction, error) {
	return s.prediction, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestAnalysisHandler_AnalyzeText(t *testing.T) {
	scanService := &stubScanService{
		analyzeTextFn: func(rawText string, std domain.StandardID) (*analyzer.LabelAnalysis, error) {
			analysis := analyzer.AnalyzeLabel(rawText, std)
			return &analysis, nil
		},
	}
	h := NewAnalysisHandler(scanService, nil, testLogger())

	body := `{"text": "Bisleri\nCalcium: 22.5 mg\npH: 7.2", "standard": "who"}`
	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.AnalyzeText(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var analysis analyzer.LabelAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, 22.5, analysis.Readings[domain.ParamCalcium])
	assert.Equal(t, domain.BrandRecognized, analysis.Brand.Status)
}

func TestAnalysisHandler_AnalyzeText_NoData(t *testing.T) {
	scanService := &stubScanService{
		analyzeTextFn: func(rawText string, std domain.StandardID) (*analyzer.LabelAnalysis, error) {
			return nil, domain.NoData("scan.analyze_text")
		},
	}
	h := NewAnalysisHandler(scanService, nil, testLogger())

	body := `{"text": "no minerals here", "standard": "who"}`
	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.AnalyzeText(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp JSONError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.ENODATA, resp.Error.Code)
}

func TestAnalysisHandler_AnalyzeText_MalformedBody(t *testing.T) {
	h := NewAnalysisHandler(&stubScanService{}, nil, testLogger())

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"text": `},
		{"unknown field", `{"text": "x", "standard": "who", "bogus": 1}`},
		{"two documents", `{"text": "x"}{"text": "y"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.AnalyzeText(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAnalysisHandler_AnalyzeReadings_WithBrand(t *testing.T) {
	optimal := domain.OverallOptimal
	scanService := &stubScanService{
		analyzeReadingsFn: func(readings map[domain.ParameterKey]float64, std domain.StandardID) (*domain.AnalysisResult, error) {
			assert.Equal(t, domain.StandardWHO, std)
			return &domain.AnalysisResult{Standard: std, Overall: &optimal}, nil
		},
	}
	h := NewAnalysisHandler(scanService, nil, testLogger())

	body := `{"readings": {"calcium": 50}, "standard": "who", "brand": "bisleri"}`
	req := httptest.NewRequest("POST", "/api/readings/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.AnalyzeReadings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result *domain.AnalysisResult `json:"result"`
		Brand  *domain.BrandVerdict   `json:"brand"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	require.NotNil(t, resp.Brand)
	assert.Equal(t, domain.BrandRecognized, resp.Brand.Status)
	assert.Equal(t, "Bisleri", resp.Brand.Matched.CanonicalName)
}

func TestAnalysisHandler_AnalyzeReadings_UnknownBrand(t *testing.T) {
	scanService := &stubScanService{
		analyzeReadingsFn: func(readings map[domain.ParameterKey]float64, std domain.StandardID) (*domain.AnalysisResult, error) {
			return &domain.AnalysisResult{Standard: std}, nil
		},
	}
	h := NewAnalysisHandler(scanService, nil, testLogger())

	body := `{"readings": {"ph": 7}, "standard": "who", "brand": "AquaPure"}`
	req := httptest.NewRequest("POST", "/api/readings/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.AnalyzeReadings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Brand *domain.BrandVerdict `json:"brand"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Brand)
	assert.Equal(t, domain.BrandUnrecognized, resp.Brand.Status)
	assert.Equal(t, "AquaPure", resp.Brand.EvidenceLine)
}

func TestAnalysisHandler_ListBrands(t *testing.T) {
	h := NewAnalysisHandler(&stubScanService{}, nil, testLogger())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	req := httptest.NewRequest("GET", "/api/brands", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Brands []domain.BrandEntry `json:"brands"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Brands)
	assert.Equal(t, "Bisleri", resp.Brands[0].CanonicalName)
}

func TestAnalysisHandler_GetStandard(t *testing.T) {
	h := NewAnalysisHandler(&stubScanService{}, nil, testLogger())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	req := httptest.NewRequest("GET", "/api/standards/who", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Standard string `json:"standard"`
		Rules    []struct {
			Parameter string `json:"parameter"`
			Ranges    []struct {
				Status string `json:"status"`
			} `json:"ranges"`
		} `json:"rules"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "who", resp.Standard)
	assert.NotEmpty(t, resp.Rules)

	var sawPH bool
	for _, rule := range resp.Rules {
		if rule.Parameter == "ph" {
			sawPH = true
			assert.Len(t, rule.Ranges, 3)
		}
	}
	assert.True(t, sawPH, "pH partition must be present")
}

func TestAnalysisHandler_GetStandard_Unknown(t *testing.T) {
	h := NewAnalysisHandler(&stubScanService{}, nil, testLogger())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	req := httptest.NewRequest("GET", "/api/standards/eu", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalysisHandler_PredictPotability(t *testing.T) {
	h := NewAnalysisHandler(&stubScanService{}, &stubScorer{prediction: potability.PredictionSafe}, testLogger())

	body := `{"ph": 7.1, "Hardness": 180, "Solids": 20000, "Chloramines": 7, "Sulfate": 330, "Conductivity": 420, "Organic_carbon": 14, "Trihalomethanes": 66, "Turbidity": 4}`
	req := httptest.NewRequest("POST", "/api/potability", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.PredictPotability(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Prediction string `json:"prediction"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Safe", resp.Prediction)
}

func TestAnalysisHandler_PredictPotability_NotConfigured(t *testing.T) {
	h := NewAnalysisHandler(&stubScanService{}, nil, testLogger())

	req := httptest.NewRequest("POST", "/api/potability", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.PredictPotability(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
