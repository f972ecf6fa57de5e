package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const scanColumns = `id, user_id, status, standard, raw_text, confidence,
       readings, brand, result, created_at, updated_at`

const createScan = `
INSERT INTO label_scans (user_id, standard)
VALUES ($1, $2)
RETURNING ` + scanColumns

// CreateScanParams contains parameters for creating a label scan.
type CreateScanParams struct {
	UserID   uuid.UUID
	Standard string
}

// CreateScan inserts a new draft scan.
func (q *Queries) CreateScan(ctx context.Context, arg CreateScanParams) (LabelScan, error) {
	row := q.db.QueryRowContext(ctx, createScan, arg.UserID, arg.Standard)
	return scanLabelScan(row)
}

const getScan = `
SELECT ` + scanColumns + `
FROM label_scans
WHERE id = $1
`

// GetScan fetches a scan by ID.
func (q *Queries) GetScan(ctx context.Context, id uuid.UUID) (LabelScan, error) {
	row := q.db.QueryRowContext(ctx, getScan, id)
	return scanLabelScan(row)
}

const listScansByUser = `
SELECT ` + scanColumns + `
FROM label_scans
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

// ListScansByUserParams contains parameters for listing a user's scans.
type ListScansByUserParams struct {
	UserID uuid.UUID
	Limit  int32
	Offset int32
}

// ListScansByUser returns a page of the user's scans, newest first.
func (q *Queries) ListScansByUser(ctx context.Context, arg ListScansByUserParams) ([]LabelScan, error) {
	rows, err := q.db.QueryContext(ctx, listScansByUser, arg.UserID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []LabelScan
	for rows.Next() {
		s, err := scanLabelScan(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}
	return scans, rows.Err()
}

const updateScanStatus = `
UPDATE label_scans
SET status = $2, updated_at = now()
WHERE id = $1
`

// UpdateScanStatusParams contains parameters for a status transition.
type UpdateScanStatusParams struct {
	ID     uuid.UUID
	Status string
}

// UpdateScanStatus sets the scan's lifecycle status.
func (q *Queries) UpdateScanStatus(ctx context.Context, arg UpdateScanStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateScanStatus, arg.ID, arg.Status)
	return err
}

const updateScanAnalysis = `
UPDATE label_scans
SET status = 'completed',
    raw_text = $2,
    confidence = $3,
    readings = $4,
    brand = $5,
    result = $6,
    updated_at = now()
WHERE id = $1
RETURNING ` + scanColumns

// UpdateScanAnalysisParams contains the full analysis outcome for a scan.
type UpdateScanAnalysisParams struct {
	ID         uuid.UUID
	RawText    sql.NullString
	Confidence sql.NullFloat64
	Readings   pqtype.NullRawMessage
	Brand      pqtype.NullRawMessage
	Result     pqtype.NullRawMessage
}

// UpdateScanAnalysis stores the analysis outcome and completes the scan.
func (q *Queries) UpdateScanAnalysis(ctx context.Context, arg UpdateScanAnalysisParams) (LabelScan, error) {
	row := q.db.QueryRowContext(ctx, updateScanAnalysis,
		arg.ID, arg.RawText, arg.Confidence, arg.Readings, arg.Brand, arg.Result)
	return scanLabelScan(row)
}

const createScanImage = `
INSERT INTO scan_images (scan_id, storage_key, thumbnail_key, original_filename,
                         content_type, size_bytes, width, height)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, scan_id, storage_key, thumbnail_key, original_filename,
          content_type, size_bytes, width, height, created_at
`

// CreateScanImageParams contains parameters for attaching an image to a scan.
type CreateScanImageParams struct {
	ScanID           uuid.UUID
	StorageKey       string
	ThumbnailKey     sql.NullString
	OriginalFilename string
	ContentType      string
	SizeBytes        int64
	Width            sql.NullInt32
	Height           sql.NullInt32
}

// CreateScanImage records an uploaded label photo.
func (q *Queries) CreateScanImage(ctx context.Context, arg CreateScanImageParams) (ScanImage, error) {
	row := q.db.QueryRowContext(ctx, createScanImage,
		arg.ScanID, arg.StorageKey, arg.ThumbnailKey, arg.OriginalFilename,
		arg.ContentType, arg.SizeBytes, arg.Width, arg.Height)
	return scanScanImage(row)
}

const getScanImageByScan = `
SELECT id, scan_id, storage_key, thumbnail_key, original_filename,
       content_type, size_bytes, width, height, created_at
FROM scan_images
WHERE scan_id = $1
ORDER BY created_at DESC
LIMIT 1
`

// GetScanImageByScan fetches the most recent image attached to a scan.
func (q *Queries) GetScanImageByScan(ctx context.Context, scanID uuid.UUID) (ScanImage, error) {
	row := q.db.QueryRowContext(ctx, getScanImageByScan, scanID)
	return scanScanImage(row)
}

func scanLabelScan(row interface{ Scan(...interface{}) error }) (LabelScan, error) {
	var s LabelScan
	err := row.Scan(
		&s.ID, &s.UserID, &s.Status, &s.Standard, &s.RawText, &s.Confidence,
		&s.Readings, &s.Brand, &s.Result, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func scanScanImage(row interface{ Scan(...interface{}) error }) (ScanImage, error) {
	var img ScanImage
	err := row.Scan(
		&img.ID, &img.ScanID, &img.StorageKey, &img.ThumbnailKey,
		&img.OriginalFilename, &img.ContentType, &img.SizeBytes,
		&img.Width, &img.Height, &img.CreatedAt,
	)
	return img, err
}
