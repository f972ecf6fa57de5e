package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const upsertHealthInfo = `
INSERT INTO health_info (user_id, gender, age, height_cm, weight_kg, phone)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE
SET gender = EXCLUDED.gender,
    age = EXCLUDED.age,
    height_cm = EXCLUDED.height_cm,
    weight_kg = EXCLUDED.weight_kg,
    phone = EXCLUDED.phone,
    updated_at = now()
RETURNING id, user_id, gender, age, height_cm, weight_kg, phone, created_at, updated_at
`

// UpsertHealthInfoParams contains parameters for writing a health profile.
type UpsertHealthInfoParams struct {
	UserID   uuid.UUID
	Gender   string
	Age      int32
	HeightCm float64
	WeightKg float64
	Phone    sql.NullString
}

// UpsertHealthInfo creates or replaces the user's health profile.
func (q *Queries) UpsertHealthInfo(ctx context.Context, arg UpsertHealthInfoParams) (HealthInfo, error) {
	row := q.db.QueryRowContext(ctx, upsertHealthInfo,
		arg.UserID, arg.Gender, arg.Age, arg.HeightCm, arg.WeightKg, arg.Phone)
	return scanHealthInfo(row)
}

const getHealthInfoByUser = `
SELECT id, user_id, gender, age, height_cm, weight_kg, phone, created_at, updated_at
FROM health_info
WHERE user_id = $1
`

// GetHealthInfoByUser fetches the user's health profile.
func (q *Queries) GetHealthInfoByUser(ctx context.Context, userID uuid.UUID) (HealthInfo, error) {
	row := q.db.QueryRowContext(ctx, getHealthInfoByUser, userID)
	return scanHealthInfo(row)
}

func scanHealthInfo(row interface{ Scan(...interface{}) error }) (HealthInfo, error) {
	var h HealthInfo
	err := row.Scan(
		&h.ID, &h.UserID, &h.Gender, &h.Age, &h.HeightCm, &h.WeightKg,
		&h.Phone, &h.CreatedAt, &h.UpdatedAt,
	)
	return h, err
}
