package session

import (
	"context"
	"time"

	"blandselv-backend/internal/domain"
)

type Repository interface {
	Get(ctx context.Context, consentID string) (*domain.Session, error)
	Create(ctx context.Context, s domain.Session) (*domain.Session, error)
	UpdateBasket(ctx context.Context, consentID string, items []domain.BasketItem) error
	UpdateCustomerDetails(ctx context.Context, consentID string, details domain.CustomerDetails) error
	SetAllowCookies(ctx context.Context, consentID string, allow bool) error
	Delete(ctx context.Context, consentID string) error
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
