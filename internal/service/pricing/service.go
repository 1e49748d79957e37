package pricing

import (
	"context"
	"errors"
	"fmt"

	"blandselv-backend/internal/domain"
	"github.com/shopspring/decimal"
)

type Service struct {
	catalog catalogRepo
}

type catalogRepo interface {
	GetPackage(ctx context.Context, slug string) (*domain.MixPackage, error)
	GetDrink(ctx context.Context, slug string) (*domain.Drink, error)
}

func New(catalog catalogRepo) *Service {
	return &Service{catalog: catalog}
}

// PackagePrice computes the price in øre for a filled mix package.
// The catalog read is a point-in-time snapshot; concurrent price changes
// are not guarded against.
func (s *Service) PackagePrice(ctx context.Context, slug string, selectedSize int, selectedProducts map[string]int) (int64, error) {
	pkg, err := s.catalog.GetPackage(ctx, slug)
	if err != nil {
		return 0, err
	}

	tier, ok := pkg.Tier(selectedSize)
	if !ok {
		return 0, domain.ErrUnknownSize
	}

	var subtotalOre int64
	for drinkSlug, count := range selectedProducts {
		if count <= 0 {
			return 0, fmt.Errorf("drink %s: %w", drinkSlug, domain.ErrInvalidQuantity)
		}
		drink, err := s.catalog.GetDrink(ctx, drinkSlug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// A missing drink is a bad selection, not a missing package.
				return 0, fmt.Errorf("%w %s", domain.ErrUnknownDrink, drinkSlug)
			}
			return 0, err
		}
		subtotalOre += drink.SalePriceOre * int64(count)
	}

	if tier.PriceJump != 0 {
		subtotalOre += tier.PriceJump * int64(selectedSize)
	}

	total := decimal.NewFromInt(subtotalOre)
	if tier.Discount > 0 {
		total = total.Mul(decimal.NewFromFloat(tier.Discount))
	}

	minPrice := decimal.NewFromInt(tier.MinPriceOre)
	if total.LessThan(minPrice) {
		total = minPrice
	}

	return total.Round(0).IntPart(), nil
}
