// Package domain contains core business types and interfaces.
//
// This file defines water-intake log types for daily hydration tracking.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// WaterLog records one drink event for a user.
type WaterLog struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	AmountML  int       `json:"amount_ml"` // Amount drunk, in millilitres
	CreatedAt time.Time `json:"created_at"`
}

// AddWaterLogParams contains validated parameters for recording a drink.
type AddWaterLogParams struct {
	UserID   uuid.UUID
	AmountML int
}

// WaterLogSummary aggregates logs over a reporting window.
type WaterLogSummary struct {
	Logs    []WaterLog `json:"logs"`
	TotalML int        `json:"total_ml"`
	From    time.Time  `json:"from"`
	To      time.Time  `json:"to"`
}

// Reporting windows for water-log summaries.
type LogWindow string

const (
	LogWindowToday   LogWindow = "today"
	LogWindowWeekly  LogWindow = "weekly"  // last 7 days including today
	LogWindowMonthly LogWindow = "monthly" // last 30 days including today
)

// IsValid returns true if the window is a recognized value.
func (w LogWindow) IsValid() bool {
	switch w {
	case LogWindowToday, LogWindowWeekly, LogWindowMonthly:
		return true
	}
	return false
}

// Bounds returns the [from, to] interval for the window, anchored at now.
func (w LogWindow) Bounds(now time.Time) (time.Time, time.Time) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24*time.Hour - time.Nanosecond)
	switch w {
	case LogWindowWeekly:
		return startOfDay.AddDate(0, 0, -6), endOfDay
	case LogWindowMonthly:
		return startOfDay.AddDate(0, 0, -29), endOfDay
	default:
		return startOfDay, endOfDay
	}
}
