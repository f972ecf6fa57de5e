package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from ScanStatus
		to   ScanStatus
		want bool
	}{
		// Valid transitions
		{"draft to analyzing", ScanStatusDraft, ScanStatusAnalyzing, true},
		{"analyzing to completed", ScanStatusAnalyzing, ScanStatusCompleted, true},
		{"analyzing to failed", ScanStatusAnalyzing, ScanStatusFailed, true},
		{"failed back to analyzing", ScanStatusFailed, ScanStatusAnalyzing, true},

		// Invalid transitions
		{"draft to completed", ScanStatusDraft, ScanStatusCompleted, false},
		{"draft to failed", ScanStatusDraft, ScanStatusFailed, false},
		{"completed is terminal", ScanStatusCompleted, ScanStatusAnalyzing, false},
		{"completed to failed", ScanStatusCompleted, ScanStatusFailed, false},
		{"failed to completed", ScanStatusFailed, ScanStatusCompleted, false},
		{"analyzing to draft", ScanStatusAnalyzing, ScanStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestScanStatus_IsValid(t *testing.T) {
	for _, s := range []ScanStatus{ScanStatusDraft, ScanStatusAnalyzing, ScanStatusCompleted, ScanStatusFailed} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, ScanStatus("review").IsValid())
	assert.False(t, ScanStatus("").IsValid())
}

func TestLabelScan_HasResult(t *testing.T) {
	scan := &LabelScan{}
	assert.False(t, scan.HasResult())

	scan.Result = &AnalysisResult{Standard: StandardWHO}
	assert.True(t, scan.HasResult())
}
