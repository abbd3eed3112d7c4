package contracts

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts or replaces the contract values for a user.
func (r *PGRepo) Upsert(ctx context.Context, contract Contract) error {
	const query = `
INSERT INTO contracts (id, user_id, tenant_name, rent_amount, start_date, address, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
    tenant_name = EXCLUDED.tenant_name,
    rent_amount = EXCLUDED.rent_amount,
    start_date = EXCLUDED.start_date,
    address = EXCLUDED.address,
    updated_at = now()`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		contract.ID,
		contract.UserID,
		contract.TenantName,
		contract.RentAmount,
		contract.StartDate,
		contract.Address,
	)
	return err
}

// GetByUser fetches the contract row for a user.
func (r *PGRepo) GetByUser(ctx context.Context, userID string) (Contract, error) {
	const query = `
SELECT id, user_id, tenant_name, rent_amount, start_date, address, created_at, updated_at
FROM contracts
WHERE user_id = $1
LIMIT 1`

	var c Contract
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&c.ID,
		&c.UserID,
		&c.TenantName,
		&c.RentAmount,
		&c.StartDate,
		&c.Address,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Contract{}, ErrNotFound
	}
	if err != nil {
		return Contract{}, err
	}
	return c, nil
}

var _ Repo = (*PGRepo)(nil)
