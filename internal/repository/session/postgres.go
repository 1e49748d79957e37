package session

import (
	"context"
	"errors"
	"time"

	"blandselv-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Get(ctx context.Context, consentID string) (*domain.Session, error) {
	const q = `
SELECT consent_id, basket_items, customer_details, allow_cookies, created_at
FROM sessions
WHERE consent_id = $1
`
	var s domain.Session
	if err := r.pool.QueryRow(ctx, q, consentID).Scan(
		&s.ConsentID,
		&s.BasketItems,
		&s.CustomerDetails,
		&s.AllowCookies,
		&s.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) Create(ctx context.Context, s domain.Session) (*domain.Session, error) {
	const q = `
INSERT INTO sessions (consent_id, basket_items, customer_details, allow_cookies)
VALUES ($1, $2, $3, $4)
RETURNING consent_id, basket_items, customer_details, allow_cookies, created_at
`
	items := s.BasketItems
	if items == nil {
		items = []domain.BasketItem{}
	}
	var out domain.Session
	if err := r.pool.QueryRow(ctx, q, s.ConsentID, items, s.CustomerDetails, s.AllowCookies).Scan(
		&out.ConsentID,
		&out.BasketItems,
		&out.CustomerDetails,
		&out.AllowCookies,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) UpdateBasket(ctx context.Context, consentID string, items []domain.BasketItem) error {
	if items == nil {
		items = []domain.BasketItem{}
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE sessions SET basket_items = $2 WHERE consent_id = $1
`, consentID, items)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) UpdateCustomerDetails(ctx context.Context, consentID string, details domain.CustomerDetails) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE sessions SET customer_details = $2 WHERE consent_id = $1
`, consentID, details)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetAllowCookies(ctx context.Context, consentID string, allow bool) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE sessions SET allow_cookies = $2 WHERE consent_id = $1
`, consentID, allow)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, consentID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE consent_id = $1`, consentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteBefore removes sessions created strictly before cutoff and returns
// how many were deleted. Sessions created exactly at the cutoff are kept.
func (r *postgresRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
