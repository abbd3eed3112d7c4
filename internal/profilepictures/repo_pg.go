package profilepictures

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const pictureColumns = `
id, user_id, file_path, file_name, file_size, crop_x, crop_y, crop_width,
crop_height, zoom_level, rotation, is_active, created_at, updated_at`

// Create inserts a new profile picture row.
func (r *PGRepo) Create(ctx context.Context, pic ProfilePicture) error {
	const query = `
INSERT INTO user_profile_pictures (
    id,
    user_id,
    file_path,
    file_name,
    file_size,
    crop_x,
    crop_y,
    crop_width,
    crop_height,
    zoom_level,
    rotation,
    is_active,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		pic.ID,
		pic.UserID,
		pic.FilePath,
		pic.FileName,
		pic.FileSize,
		pic.Crop.X,
		pic.Crop.Y,
		pic.Crop.Width,
		pic.Crop.Height,
		pic.ZoomLevel,
		pic.Rotation,
		pic.IsActive,
	)
	return err
}

// GetActive returns the newest active picture for a user.
func (r *PGRepo) GetActive(ctx context.Context, userID string) (ProfilePicture, error) {
	const query = `
SELECT ` + pictureColumns + `
FROM user_profile_pictures
WHERE user_id = $1 AND is_active
ORDER BY created_at DESC
LIMIT 1`
	pic, err := scanPicture(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProfilePicture{}, ErrNotFound
		}
		return ProfilePicture{}, err
	}
	return pic, nil
}

// ListActiveExcept returns active rows for a user other than keepID.
func (r *PGRepo) ListActiveExcept(ctx context.Context, userID, keepID string) ([]ProfilePicture, error) {
	const query = `
SELECT ` + pictureColumns + `
FROM user_profile_pictures
WHERE user_id = $1 AND is_active AND id <> $2
ORDER BY created_at DESC`
	return r.queryPictures(ctx, query, userID, keepID)
}

// ListInactive returns rows already marked inactive for a user.
func (r *PGRepo) ListInactive(ctx context.Context, userID string) ([]ProfilePicture, error) {
	const query = `
SELECT ` + pictureColumns + `
FROM user_profile_pictures
WHERE user_id = $1 AND NOT is_active
ORDER BY created_at DESC`
	return r.queryPictures(ctx, query, userID)
}

// Deactivate flips the given rows to inactive.
func (r *PGRepo) Deactivate(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
UPDATE user_profile_pictures
SET is_active = FALSE, updated_at = now()
WHERE id IN (%s)`, placeholders(len(ids)))
	_, err := r.DB.ExecContext(ctx, query, toArgs(ids)...)
	return err
}

// DeleteRows removes the given rows.
func (r *PGRepo) DeleteRows(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
DELETE FROM user_profile_pictures
WHERE id IN (%s)`, placeholders(len(ids)))
	_, err := r.DB.ExecContext(ctx, query, toArgs(ids)...)
	return err
}

func (r *PGRepo) queryPictures(ctx context.Context, query string, args ...any) ([]ProfilePicture, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProfilePicture
	for rows.Next() {
		pic, err := scanPicture(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pic)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPicture(row rowScanner) (ProfilePicture, error) {
	var pic ProfilePicture
	var updatedAt sql.NullTime
	err := row.Scan(
		&pic.ID,
		&pic.UserID,
		&pic.FilePath,
		&pic.FileName,
		&pic.FileSize,
		&pic.Crop.X,
		&pic.Crop.Y,
		&pic.Crop.Width,
		&pic.Crop.Height,
		&pic.ZoomLevel,
		&pic.Rotation,
		&pic.IsActive,
		&pic.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return ProfilePicture{}, err
	}
	if updatedAt.Valid {
		pic.UpdatedAt = updatedAt.Time
	} else {
		pic.UpdatedAt = time.Now().UTC()
	}
	return pic, nil
}

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}

func toArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

var _ Repo = (*PGRepo)(nil)
