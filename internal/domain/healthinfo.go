// Package domain contains core business types and interfaces.
//
// This file defines the per-user health profile used to derive a daily
// hydration goal.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Gender values accepted by the health profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid returns true if the gender is a recognized value.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// HealthInfo holds a user's health profile. One profile per user.
type HealthInfo struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Gender    Gender
	Age       int
	HeightCM  float64
	WeightKG  float64
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DailyIntakeGoalML returns the recommended daily water intake in
// millilitres, derived from body weight (35 ml per kg, floored at 1.5 L).
func (h *HealthInfo) DailyIntakeGoalML() int {
	goal := int(h.WeightKG * 35)
	if goal < 1500 {
		return 1500
	}
	return goal
}

// UpsertHealthInfoParams contains validated parameters for creating or
// updating a health profile.
type UpsertHealthInfoParams struct {
	UserID   uuid.UUID
	Gender   Gender
	Age      int
	HeightCM float64
	WeightKG float64
	Phone    string
}
