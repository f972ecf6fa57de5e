// Package service contains the business logic layer.
//
// This file implements the per-user health profile used for hydration goals.
package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/riverlabs/aquacheck/internal/domain"
	"github.com/riverlabs/aquacheck/internal/repository"
)

// =============================================================================
// Interface Definition
// =============================================================================

// HealthInfoService defines the interface for health profile operations.
type HealthInfoService interface {
	// Upsert creates or replaces the user's health profile.
	// Returns domain.EINVALID for validation errors.
	Upsert(ctx context.Context, params domain.UpsertHealthInfoParams) (*domain.HealthInfo, error)

	// GetByUser fetches the user's health profile.
	// Returns domain.ENOTFOUND if none exists.
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.HealthInfo, error)
}

// =============================================================================
// Implementation
// =============================================================================

type healthInfoService struct {
	queries *repository.Queries
	logger  *slog.Logger
}

// NewHealthInfoService creates a new HealthInfoService.
func NewHealthInfoService(queries *repository.Queries, logger *slog.Logger) HealthInfoService {
	return &healthInfoService{
		queries: queries,
		logger:  logger,
	}
}

// Upsert creates or replaces the user's health profile.
func (s *healthInfoService) Upsert(ctx context.Context, params domain.UpsertHealthInfoParams) (*domain.HealthInfo, error) {
	const op = "healthinfo.upsert"

	if !params.Gender.IsValid() {
		return nil, domain.Invalid(op, "gender must be male, female or other")
	}
	if params.Age < 1 || params.Age > 120 {
		return nil, domain.Invalid(op, "age must be between 1 and 120")
	}
	if params.HeightCM < 30 || params.HeightCM > 272 {
		return nil, domain.Invalid(op, "height must be between 30 and 272 cm")
	}
	if params.WeightKG < 2 || params.WeightKG > 635 {
		return nil, domain.Invalid(op, "weight must be between 2 and 635 kg")
	}

	row, err := s.queries.UpsertHealthInfo(ctx, repository.UpsertHealthInfoParams{
		UserID:   params.UserID,
		Gender:   string(params.Gender),
		Age:      int32(params.Age),
		HeightCm: params.HeightCM,
		WeightKg: params.WeightKG,
		Phone:    sql.NullString{String: params.Phone, Valid: params.Phone != ""},
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to save health profile")
	}

	s.logger.Info("health profile saved", "user_id", params.UserID)

	info := rowToHealthInfo(row)
	return &info, nil
}

// GetByUser fetches the user's health profile.
func (s *healthInfoService) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.HealthInfo, error) {
	const op = "healthinfo.get"

	row, err := s.queries.GetHealthInfoByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "health profile for user", userID.String())
		}
		return nil, domain.Internal(err, op, "failed to fetch health profile")
	}

	info := rowToHealthInfo(row)
	return &info, nil
}

func rowToHealthInfo(row repository.HealthInfo) domain.HealthInfo {
	return domain.HealthInfo{
		ID:        row.ID,
		UserID:    row.UserID,
		Gender:    domain.Gender(row.Gender),
		Age:       int(row.Age),
		HeightCM:  row.HeightCm,
		WeightKG:  row.WeightKg,
		Phone:     row.Phone.String,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
