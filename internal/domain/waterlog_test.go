package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogWindow_IsValid(t *testing.T) {
	assert.True(t, LogWindowToday.IsValid())
	assert.True(t, LogWindowWeekly.IsValid())
	assert.True(t, LogWindowMonthly.IsValid())
	assert.False(t, LogWindow("yearly").IsValid())
	assert.False(t, LogWindow("").IsValid())
}

func TestLogWindow_Bounds(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)
	startOfDay := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		window LogWindow
		from   time.Time
	}{
		{"today starts at midnight", LogWindowToday, startOfDay},
		{"weekly covers 7 days", LogWindowWeekly, startOfDay.AddDate(0, 0, -6)},
		{"monthly covers 30 days", LogWindowMonthly, startOfDay.AddDate(0, 0, -29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := tt.window.Bounds(now)

			assert.Equal(t, tt.from, from)
			assert.True(t, to.After(now), "window end must include the current moment")
			assert.True(t, to.Before(startOfDay.AddDate(0, 0, 1)), "window end stays within the current day")
		})
	}
}
