package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// Job is a row in the jobs table.
type Job struct {
	ID           uuid.UUID
	JobType      string
	Payload      []byte
	Status       string
	Priority     int32
	Attempts     int32
	MaxAttempts  int32
	ScheduledAt  time.Time
	StartedAt    sql.NullTime
	CompletedAt  sql.NullTime
	ErrorMessage sql.NullString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LabelScan is a row in the label_scans table. Readings, brand verdict and
// the analysis result are stored as JSONB; decoding into domain types happens
// in the service layer.
type LabelScan struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Status     string
	Standard   string
	RawText    sql.NullString
	Confidence sql.NullFloat64
	Readings   pqtype.NullRawMessage
	Brand      pqtype.NullRawMessage
	Result     pqtype.NullRawMessage
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ScanImage is a row in the scan_images table.
type ScanImage struct {
	ID               uuid.UUID
	ScanID           uuid.UUID
	StorageKey       string
	ThumbnailKey     sql.NullString
	OriginalFilename string
	ContentType      string
	SizeBytes        int64
	Width            sql.NullInt32
	Height           sql.NullInt32
	CreatedAt        time.Time
}

// WaterLog is a row in the water_logs table.
type WaterLog struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	AmountML  int32
	CreatedAt time.Time
}

// HealthInfo is a row in the health_info table.
type HealthInfo struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Gender    string
	Age       int32
	HeightCm  float64
	WeightKg  float64
	Phone     sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}
