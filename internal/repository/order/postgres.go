package order

import (
	"context"
	"errors"

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

const orderColumns = `order_id, session_id, status, basket_items, customer_details, total_price_ore, currency, payment_id, payment_link, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	const q = `
INSERT INTO orders (order_id, session_id, status, basket_items, customer_details, total_price_ore, currency)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + orderColumns
	status := o.Status
	if status == "" {
		status = domain.OrderStatusNew
	}
	items := o.BasketItems
	if items == nil {
		items = []domain.BasketItem{}
	}
	row := r.pool.QueryRow(ctx, q, o.OrderID, o.SessionID, status, items, o.CustomerDetails, o.TotalPriceOre, o.Currency)
	return scanOrder(row)
}

func (r *postgresRepo) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, orderID)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) SetPayment(ctx context.Context, orderID string, paymentID int64, link string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET payment_id = $2, payment_link = $3, updated_at = now()
WHERE order_id = $1
`, orderID, paymentID, link)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) AdvanceStatus(ctx context.Context, orderID, to string, from ...string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $2, updated_at = now()
WHERE order_id = $1 AND status = ANY($3)
`, orderID, to, from)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(
		&o.OrderID,
		&o.SessionID,
		&o.Status,
		&o.BasketItems,
		&o.CustomerDetails,
		&o.TotalPriceOre,
		&o.Currency,
		&o.PaymentID,
		&o.PaymentLink,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}
