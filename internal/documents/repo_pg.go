package documents

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements DocumentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `
id, user_id, file_name, file_path, file_size, file_type, document_category,
verification_status, verified_by, verified_at, upload_date, created_at, updated_at`

// Create inserts a new document row.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO user_documents (
    id,
    user_id,
    file_name,
    file_path,
    file_size,
    file_type,
    document_category,
    verification_status,
    verified_by,
    verified_at,
    upload_date,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`

	var verifiedBy sql.NullString
	if doc.VerifiedBy != "" {
		verifiedBy = sql.NullString{String: doc.VerifiedBy, Valid: true}
	}
	var verifiedAt sql.NullTime
	if doc.VerifiedAt != nil {
		verifiedAt = sql.NullTime{Time: *doc.VerifiedAt, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.FilePath,
		doc.FileSize,
		doc.FileType,
		doc.Category,
		doc.VerificationStatus,
		verifiedBy,
		verifiedAt,
		doc.UploadDate,
	)
	return err
}

// GetByID fetches a document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM user_documents
WHERE user_id = $1 AND id = $2
LIMIT 1`
	return scanDocument(r.DB.QueryRowContext(ctx, query, userID, documentID))
}

// ListByUser lists a user's documents newest-first, excluding profile pictures.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + documentColumns + `
FROM user_documents
WHERE user_id = $1 AND document_category <> $2
ORDER BY created_at DESC
LIMIT $3 OFFSET $4`

	rows, err := r.DB.QueryContext(ctx, query, userID, CategoryProfilePicture, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocumentRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Delete removes a document row owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userID, documentID string) error {
	const query = `
DELETE FROM user_documents
WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, documentID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateVerification records the outcome of a verification pass.
func (r *PGRepo) UpdateVerification(ctx context.Context, documentID, status, verifiedBy string) error {
	const query = `
UPDATE user_documents
SET verification_status = $1, verified_by = $2, verified_at = now(), updated_at = now()
WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, status, verifiedBy, documentID)
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

func scanDocument(row *sql.Row) (Document, error) {
	doc, err := scanDocumentRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

func scanDocumentRow(row rowScanner) (Document, error) {
	var doc Document
	var verifiedBy sql.NullString
	var verifiedAt sql.NullTime
	var updatedAt sql.NullTime
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.FilePath,
		&doc.FileSize,
		&doc.FileType,
		&doc.Category,
		&doc.VerificationStatus,
		&verifiedBy,
		&verifiedAt,
		&doc.UploadDate,
		&doc.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return Document{}, err
	}
	if verifiedBy.Valid {
		doc.VerifiedBy = verifiedBy.String
	}
	if verifiedAt.Valid {
		doc.VerifiedAt = &verifiedAt.Time
	}
	if updatedAt.Valid {
		doc.UpdatedAt = updatedAt.Time
	} else {
		doc.UpdatedAt = time.Now().UTC()
	}
	return doc, nil
}

var _ DocumentsRepo = (*PGRepo)(nil)
