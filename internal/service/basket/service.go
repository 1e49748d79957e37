package basket

import (
	"context"
	"errors"
	"fmt"

	"blandselv-backend/internal/domain"
	"github.com/google/uuid"
)

type Service struct {
	sessions sessionRepo
	catalog  catalogRepo
}

type sessionRepo interface {
	Get(ctx context.Context, consentID string) (*domain.Session, error)
	Create(ctx context.Context, s domain.Session) (*domain.Session, error)
	UpdateBasket(ctx context.Context, consentID string, items []domain.BasketItem) error
	UpdateCustomerDetails(ctx context.Context, consentID string, details domain.CustomerDetails) error
	SetAllowCookies(ctx context.Context, consentID string, allow bool) error
	Delete(ctx context.Context, consentID string) error
}

type catalogRepo interface {
	GetDrink(ctx context.Context, slug string) (*domain.Drink, error)
}

func New(sessions sessionRepo, catalog catalogRepo) *Service {
	return &Service{sessions: sessions, catalog: catalog}
}

// GetOrCreate returns the session for consentID, creating it lazily. An
// empty consentID starts a fresh session with a newly issued id.
func (s *Service) GetOrCreate(ctx context.Context, consentID string) (*domain.Session, error) {
	if consentID != "" {
		sess, err := s.sessions.Get(ctx, consentID)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	} else {
		consentID = uuid.NewString()
	}
	return s.sessions.Create(ctx, domain.Session{ConsentID: consentID})
}

// UpdateBasket stores the basket after recomputing every line's totals.
// Client-supplied totalPrice and totalRecyclingFee are never trusted.
func (s *Service) UpdateBasket(ctx context.Context, consentID string, items []domain.BasketItem) (*domain.Session, error) {
	for i := range items {
		if items[i].Quantity <= 0 {
			return nil, fmt.Errorf("item %s: %w", items[i].Slug, domain.ErrInvalidQuantity)
		}
		items[i].TotalPriceOre = items[i].PricePerPackageOre * int64(items[i].Quantity)
		if len(items[i].SelectedDrinks) > 0 {
			fee, err := s.recyclingFee(ctx, items[i].SelectedDrinks)
			if err != nil {
				return nil, err
			}
			items[i].TotalRecyclingFeeOre = fee * int64(items[i].Quantity)
		}
	}
	if err := s.sessions.UpdateBasket(ctx, consentID, items); err != nil {
		return nil, err
	}
	return s.sessions.Get(ctx, consentID)
}

func (s *Service) recyclingFee(ctx context.Context, selected map[string]int) (int64, error) {
	var fee int64
	for slug, count := range selected {
		if count <= 0 {
			continue
		}
		drink, err := s.catalog.GetDrink(ctx, slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return 0, fmt.Errorf("%w %s", domain.ErrUnknownDrink, slug)
			}
			return 0, err
		}
		fee += drink.RecyclingFeeOre * int64(count)
	}
	return fee, nil
}

// SaveCustomerDetails stores validated checkout details on the session.
func (s *Service) SaveCustomerDetails(ctx context.Context, consentID string, details domain.CustomerDetails) error {
	return s.sessions.UpdateCustomerDetails(ctx, consentID, details)
}

// SetAllowCookies records the cookie-consent answer.
func (s *Service) SetAllowCookies(ctx context.Context, consentID string, allow bool) error {
	return s.sessions.SetAllowCookies(ctx, consentID, allow)
}

// RevokeConsent deletes the session and everything in it.
func (s *Service) RevokeConsent(ctx context.Context, consentID string) error {
	return s.sessions.Delete(ctx, consentID)
}
