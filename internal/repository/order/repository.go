package order

import (
	"context"

	"blandselv-backend/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	SetPayment(ctx context.Context, orderID string, paymentID int64, link string) error
	// AdvanceStatus moves the order to the given status only when its
	// current status is one of from; it reports whether a row changed.
	AdvanceStatus(ctx context.Context, orderID, to string, from ...string) (bool, error)
}
