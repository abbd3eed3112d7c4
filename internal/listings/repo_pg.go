package listings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres. Tag and image lists are stored
// as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const listingColumns = `
id, landlord_id, title, description, address, bedrooms, bathrooms,
monthly_rent, tags, status, verification, images, thumbnail, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, listing Listing) error {
	const query = `
INSERT INTO properties (
    id,
    landlord_id,
    title,
    description,
    address,
    bedrooms,
    bathrooms,
    monthly_rent,
    tags,
    status,
    verification,
    images,
    thumbnail,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())`

	tags, err := json.Marshal(emptyIfNil(listing.Tags))
	if err != nil {
		return err
	}
	images, err := json.Marshal(emptyIfNil(listing.Images))
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		listing.ID,
		listing.LandlordID,
		listing.Title,
		listing.Description,
		listing.Address,
		listing.Bedrooms,
		listing.Bathrooms,
		listing.MonthlyRent,
		tags,
		listing.Status,
		listing.Verification,
		images,
		listing.Thumbnail,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Listing, error) {
	const query = `
SELECT ` + listingColumns + `
FROM properties
WHERE id = $1
LIMIT 1`
	listing, err := scanListing(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Listing{}, ErrNotFound
		}
		return Listing{}, err
	}
	return listing, nil
}

func (r *PGRepo) List(ctx context.Context, filter Filter) ([]Listing, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `
SELECT ` + listingColumns + `
FROM properties
WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.LandlordID != "" {
		args = append(args, filter.LandlordID)
		query += fmt.Sprintf(" AND landlord_id = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, listing)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, listing Listing) error {
	const query = `
UPDATE properties
SET title = $1,
    description = $2,
    address = $3,
    bedrooms = $4,
    bathrooms = $5,
    monthly_rent = $6,
    tags = $7,
    status = $8,
    verification = $9,
    images = $10,
    thumbnail = $11,
    updated_at = now()
WHERE id = $12 AND landlord_id = $13`

	tags, err := json.Marshal(emptyIfNil(listing.Tags))
	if err != nil {
		return err
	}
	images, err := json.Marshal(emptyIfNil(listing.Images))
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		listing.Title,
		listing.Description,
		listing.Address,
		listing.Bedrooms,
		listing.Bathrooms,
		listing.MonthlyRent,
		tags,
		listing.Status,
		listing.Verification,
		images,
		listing.Thumbnail,
		listing.ID,
		listing.LandlordID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, landlordID, id string) error {
	const query = `
DELETE FROM properties
WHERE id = $1 AND landlord_id = $2`
	res, err := r.DB.ExecContext(ctx, query, id, landlordID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (Listing, error) {
	var listing Listing
	var tags, images []byte
	var updatedAt sql.NullTime
	err := row.Scan(
		&listing.ID,
		&listing.LandlordID,
		&listing.Title,
		&listing.Description,
		&listing.Address,
		&listing.Bedrooms,
		&listing.Bathrooms,
		&listing.MonthlyRent,
		&tags,
		&listing.Status,
		&listing.Verification,
		&images,
		&listing.Thumbnail,
		&listing.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return Listing{}, err
	}
	if err := json.Unmarshal(tags, &listing.Tags); err != nil {
		return Listing{}, fmt.Errorf("decode tags: %w", err)
	}
	if err := json.Unmarshal(images, &listing.Images); err != nil {
		return Listing{}, fmt.Errorf("decode images: %w", err)
	}
	if updatedAt.Valid {
		listing.UpdatedAt = updatedAt.Time
	} else {
		listing.UpdatedAt = time.Now().UTC()
	}
	return listing, nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

var _ Repo = (*PGRepo)(nil)
