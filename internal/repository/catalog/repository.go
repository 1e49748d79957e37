package catalog

import (
	"context"

	"blandselv-backend/internal/domain"
)

type Repository interface {
	GetDrink(ctx context.Context, slug string) (*domain.Drink, error)
	ListDrinks(ctx context.Context) ([]domain.Drink, error)
	UpsertDrink(ctx context.Context, d domain.Drink) (*domain.Drink, error)
	GetPackage(ctx context.Context, slug string) (*domain.MixPackage, error)
	ListPackages(ctx context.Context) ([]domain.MixPackage, error)
	UpsertPackage(ctx context.Context, p domain.MixPackage) (*domain.MixPackage, error)
}
