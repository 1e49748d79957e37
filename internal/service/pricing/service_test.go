package pricing

import (
	"context"
	"errors"
	"testing"

	"blandselv-backend/internal/domain"
)

type stubCatalog struct {
	pkg    *domain.MixPackage
	pkgErr error
	drinks map[string]*domain.Drink
}

func (s *stubCatalog) GetPackage(_ context.Context, _ string) (*domain.MixPackage, error) {
	return s.pkg, s.pkgErr
}

func (s *stubCatalog) GetDrink(_ context.Context, slug string) (*domain.Drink, error) {
	d, ok := s.drinks[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func testPackage() *domain.MixPackage {
	return &domain.MixPackage{
		Slug: "bland-selv-sodavand",
		Tiers: []domain.SizeTier{
			{Size: 12, MinPriceOre: 5000},
			{Size: 24, MinPriceOre: 5000, Discount: 0.9},
			{Size: 48, MinPriceOre: 5000, PriceJump: 100},
		},
	}
}

func TestPackagePriceNotFound(t *testing.T) {
	svc := New(&stubCatalog{pkgErr: domain.ErrNotFound})
	_, err := svc.PackagePrice(context.Background(), "missing", 12, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPackagePriceUnknownSize(t *testing.T) {
	svc := New(&stubCatalog{pkg: testPackage()})
	_, err := svc.PackagePrice(context.Background(), "bland-selv-sodavand", 13, nil)
	if !errors.Is(err, domain.ErrUnknownSize) {
		t.Fatalf("expected ErrUnknownSize, got %v", err)
	}
}

func TestPackagePriceSumsSelectedDrinks(t *testing.T) {
	catalog := &stubCatalog{
		pkg: testPackage(),
		drinks: map[string]*domain.Drink{
			"faxe-kondi": {Slug: "faxe-kondi", SalePriceOre: 800},
			"cocio":      {Slug: "cocio", SalePriceOre: 1100},
		},
	}
	svc := New(catalog)
	price, err := svc.PackagePrice(context.Background(), "bland-selv-sodavand", 12, map[string]int{
		"faxe-kondi": 6,
		"cocio":      6,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 6*800 + 6*1100 = 11400, no jump or discount on the 12 tier
	if price != 11400 {
		t.Fatalf("expected 11400, got %d", price)
	}
}

func TestPackagePriceAppliesDiscount(t *testing.T) {
	catalog := &stubCatalog{
		pkg: testPackage(),
		drinks: map[string]*domain.Drink{
			"faxe-kondi": {Slug: "faxe-kondi", SalePriceOre: 1000},
		},
	}
	svc := New(catalog)
	price, err := svc.PackagePrice(context.Background(), "bland-selv-sodavand", 24, map[string]int{
		"faxe-kondi": 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// subtotal 10000, discount 0.9, min price 5000 -> 9000
	if price != 9000 {
		t.Fatalf("expected 9000, got %d", price)
	}
}

func TestPackagePriceAppliesPriceJump(t *testing.T) {
	catalog := &stubCatalog{
		pkg: testPackage(),
		drinks: map[string]*domain.Drink{
			"faxe-kondi": {Slug: "faxe-kondi", SalePriceOre: 800},
		},
	}
	svc := New(catalog)
	price, err := svc.PackagePrice(context.Background(), "bland-selv-sodavand", 48, map[string]int{
		"faxe-kondi": 48,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 48*800 + 100*48 = 43200
	if price != 43200 {
		t.Fatalf("expected 43200, got %d", price)
	}
}

func TestPackagePriceFloorsAtMinPrice(t *testing.T) {
	catalog := &stubCatalog{
		pkg: testPackage(),
		drinks: map[string]*domain.Drink{
			"faxe-kondi": {Slug: "faxe-kondi", SalePriceOre: 100},
		},
	}
	svc := New(catalog)
	price, err := svc.PackagePrice(context.Background(), "bland-selv-sodavand", 12, map[string]int{
		"faxe-kondi": 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 5000 {
		t.Fatalf("expected min price 5000, got %d", price)
	}
}

func TestPackagePriceRoundsDiscountedTotal(t *testing.T) {
	catalog := &stubCatalog{
		pkg: &domain.MixPackage{
			Slug:  "p",
			Tiers: []domain.SizeTier{{Size: 24, MinPriceOre: 100, Discount: 0.95}},
		},
		drinks: map[string]*domain.Drink{
			"faxe-kondi": {Slug: "faxe-kondi", SalePriceOre: 333},
		},
	}
	svc := New(catalog)
	price, err := svc.PackagePrice(context.Background(), "p", 24, map[string]int{
		"faxe-kondi": 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 999 * 0.95 = 949.05 -> 949
	if price != 949 {
		t.Fatalf("expected 949, got %d", price)
	}
}

func TestPackagePriceRejectsNonPositiveCount(t *testing.T) {
	svc := New(&stubCatalog{pkg: testPackage()})
	_, err := svc.PackagePrice(context.Background(), "bland-selv-sodavand", 12, map[string]int{
		"faxe-kondi": 0,
	})
	if !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestPackagePriceUnknownDrinkIsNotANotFound(t *testing.T) {
	svc := New(&stubCatalog{pkg: testPackage(), drinks: map[string]*domain.Drink{}})
	_, err := svc.PackagePrice(context.Background(), "bland-selv-sodavand", 12, map[string]int{
		"no-such-drink": 1,
	})
	if !errors.Is(err, domain.ErrUnknownDrink) {
		t.Fatalf("expected ErrUnknownDrink, got %v", err)
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown drink must not surface as package not found")
	}
}
