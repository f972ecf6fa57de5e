package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverlabs/aquacheck/internal/domain"
)

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{domain.EINVALID, http.StatusBadRequest},
		{domain.ENOTFOUND, http.StatusNotFound},
		{domain.ECONFLICT, http.StatusConflict},
		{domain.ETOOLARGE, http.StatusRequestEntityTooLarge},
		{domain.ENODATA, http.StatusUnprocessableEntity},
		{domain.EUNAVAILABLE, http.StatusServiceUnavailable},
		{domain.EINTERNAL, http.StatusInternalServerError},
		{"something_else", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCodeToHTTPStatus(tt.code))
		})
	}
}

func TestErrorResponse_WritesJSONBody(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	req := httptest.NewRequest("POST", "/api/scans", nil)
	rec := httptest.NewRecorder()

	ErrorResponse(rec, req, logger, domain.Invalid("scan.create", "standard must be who or fssai"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp JSONError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.EINVALID, resp.Error.Code)
	assert.Equal(t, "standard must be who or fssai", resp.Error.Message)
}

func TestErrorResponse_DoesNotExposeInternalDetails(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	req := httptest.NewRequest("GET", "/api/scans", nil)
	rec := httptest.NewRecorder()

	cause := errors.New("pq: connection refused on 10.0.0.5")
	ErrorResponse(rec, req, logger, domain.Internal(cause, "scan.list", "failed to list scans"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := rec.Body.String()
	assert.NotContains(t, body, "connection refused")
	assert.NotContains(t, body, "10.0.0.5")
	assert.NotContains(t, body, "scan.list")
}

func TestErrorResponse_PlainErrorIsInternal(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	req := httptest.NewRequest("GET", "/api/scans", nil)
	rec := httptest.NewRecorder()

	ErrorResponse(rec, req, logger, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp JSONError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.EINTERNAL, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "boom")
}
