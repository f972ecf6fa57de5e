package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverlabs/aquacheck/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// Create must reject bad input before writing anything. The service is built
// with a nil query layer here, so any database access panics the test.
func TestScanService_Create_RejectsBeforeInsert(t *testing.T) {
	svc := NewScanService(nil, nil, nil, testLogger())

	tests := []struct {
		name     string
		params   domain.CreateScanParams
		wantCode string
	}{
		{
			name: "text with no readings",
			params: domain.CreateScanParams{
				UserID:   uuid.New(),
				Standard: domain.StandardWHO,
				RawText:  "spring water from the hills",
			},
			wantCode: domain.ENODATA,
		},
		{
			name: "unknown standard",
			params: domain.CreateScanParams{
				UserID:   uuid.New(),
				Standard: domain.StandardID("eu"),
				RawText:  "Calcium: 22.5 mg",
			},
			wantCode: domain.EINVALID,
		},
		{
			name: "missing user id",
			params: domain.CreateScanParams{
				Standard: domain.StandardFSSAI,
			},
			wantCode: domain.EINVALID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scan, err := svc.Create(context.Background(), tt.params)

			require.Error(t, err)
			assert.Nil(t, scan)
			assert.Equal(t, tt.wantCode, domain.ErrorCode(err))
		})
	}
}
