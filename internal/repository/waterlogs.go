package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const addWaterLog = `
INSERT INTO water_logs (user_id, amount_ml)
VALUES ($1, $2)
RETURNING id, user_id, amount_ml, created_at
`

// AddWaterLogParams contains parameters for recording a drink.
type AddWaterLogParams struct {
	UserID   uuid.UUID
	AmountML int32
}

// AddWaterLog records a water intake entry.
func (q *Queries) AddWaterLog(ctx context.Context, arg AddWaterLogParams) (WaterLog, error) {
	var w WaterLog
	err := q.db.QueryRowContext(ctx, addWaterLog, arg.UserID, arg.AmountML).
		Scan(&w.ID, &w.UserID, &w.AmountML, &w.CreatedAt)
	return w, err
}

const listWaterLogs = `
SELECT id, user_id, amount_ml, created_at
FROM water_logs
WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
ORDER BY created_at DESC
`

// ListWaterLogsParams bounds a water log query to one user and time window.
type ListWaterLogsParams struct {
	UserID uuid.UUID
	From   time.Time
	To     time.Time
}

// ListWaterLogs returns a user's intake entries inside the window, newest
// first.
func (q *Queries) ListWaterLogs(ctx context.Context, arg ListWaterLogsParams) ([]WaterLog, error) {
	rows, err := q.db.QueryContext(ctx, listWaterLogs, arg.UserID, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []WaterLog
	for rows.Next() {
		var w WaterLog
		if err := rows.Scan(&w.ID, &w.UserID, &w.AmountML, &w.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, w)
	}
	return logs, rows.Err()
}

const deleteWaterLog = `
DELETE FROM water_logs
WHERE id = $1 AND user_id = $2
`

// DeleteWaterLogParams identifies one of a user's entries.
type DeleteWaterLogParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// DeleteWaterLog removes an intake entry, returning the number of rows
// affected so callers can distinguish a miss.
func (q *Queries) DeleteWaterLog(ctx context.Context, arg DeleteWaterLogParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteWaterLog, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
