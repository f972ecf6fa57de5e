// Package service contains the business logic layer.
//
// This file implements daily water-intake tracking.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/riverlabs/aquacheck/internal/domain"
	"github.com/riverlabs/aquacheck/internal/repository"
)

// =============================================================================
// Interface Definition
// =============================================================================

// WaterLogService defines the interface for water-intake operations.
type WaterLogService interface {
	// Add records a drink. Returns domain.EINVALID for non-positive or
	// implausibly large amounts.
	Add(ctx context.Context, params domain.AddWaterLogParams) (*domain.WaterLog, error)

	// Summary returns the user's intake entries and total over a window.
	Summary(ctx context.Context, userID uuid.UUID, window domain.LogWindow) (*domain.WaterLogSummary, error)

	// Delete removes one of the user's entries.
	// Returns domain.ENOTFOUND if the entry doesn't exist or belongs to
	// another user.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// =============================================================================
// Implementation
// =============================================================================

// maxSingleDrinkML rejects obvious input mistakes (5 L in one log entry).
const maxSingleDrinkML = 5000

type waterLogService struct {
	queries *repository.Queries
	logger  *slog.Logger
}

// NewWaterLogService creates a new WaterLogService.
func NewWaterLogService(queries *repository.Queries, logger *slog.Logger) WaterLogService {
	return &waterLogService{
		queries: queries,
		logger:  logger,
	}
}

// Add records a drink.
func (s *waterLogService) Add(ctx context.Context, params domain.AddWaterLogParams) (*domain.WaterLog, error) {
	const op = "waterlog.add"

	if params.AmountML <= 0 {
		return nil, domain.Invalid(op, "amount must be positive")
	}
	if params.AmountML > maxSingleDrinkML {
		return nil, domain.Invalid(op, "amount is implausibly large for a single entry")
	}

	row, err := s.queries.AddWaterLog(ctx, repository.AddWaterLogParams{
		UserID:   params.UserID,
		AmountML: int32(params.AmountML),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to record water log")
	}

	s.logger.Info("water log added", "user_id", params.UserID, "amount_ml", params.AmountML)

	log := rowToWaterLog(row)
	return &log, nil
}

// Summary returns intake entries and the total for the window.
func (s *waterLogService) Summary(ctx context.Context, userID uuid.UUID, window domain.LogWindow) (*domain.WaterLogSummary, error) {
	const op = "waterlog.summary"

	if !window.IsValid() {
		return nil, domain.Invalid(op, "window must be today, weekly or monthly")
	}

	from, to := window.Bounds(time.Now())
	rows, err := s.queries.ListWaterLogs(ctx, repository.ListWaterLogsParams{
		UserID: userID,
		From:   from,
		To:     to,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list water logs")
	}

	summary := &domain.WaterLogSummary{
		Logs: make([]domain.WaterLog, 0, len(rows)),
		From: from,
		To:   to,
	}
	for _, row := range rows {
		log := rowToWaterLog(row)
		summary.Logs = append(summary.Logs, log)
		summary.TotalML += log.AmountML
	}
	return summary, nil
}

// Delete removes one of the user's entries.
func (s *waterLogService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	const op = "waterlog.delete"

	affected, err := s.queries.DeleteWaterLog(ctx, repository.DeleteWaterLogParams{
		ID:     id,
		UserID: userID,
	})
	if err != nil {
		return domain.Internal(err, op, "failed to delete water log")
	}
	if affected == 0 {
		return domain.NotFound(op, "water log", id.String())
	}
	return nil
}

func rowToWaterLog(row repository.WaterLog) domain.WaterLog {
	return domain.WaterLog{
		ID:        row.ID,
		UserID:    row.UserID,
		AmountML:  int(row.AmountML),
		CreatedAt: row.CreatedAt,
	}
}
