package seed

import (
	"context"
	"fmt"

	"blandselv-backend/internal/domain"
	catalogrepo "blandselv-backend/internal/repository/catalog"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Apply inserts basic catalog data for manual testing. It is idempotent via
// the repository upserts.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	repo := catalogrepo.NewPostgres(pool)

	drinks := []domain.Drink{
		{
			Slug:             "faxe-kondi",
			Name:             "Faxe Kondi",
			SizeCl:           33,
			SalePriceOre:     800,
			PurchasePriceOre: 420,
			Stock:            480,
			RecyclingFeeOre:  100,
			Nutrition:        domain.NutritionFacts{EnergyKJ: 180, SugarGrams: 10.4},
		},
		{
			Slug:             "faxe-kondi-free",
			Name:             "Faxe Kondi Free",
			SizeCl:           33,
			SalePriceOre:     800,
			PurchasePriceOre: 420,
			Stock:            260,
			RecyclingFeeOre:  100,
			Nutrition:        domain.NutritionFacts{EnergyKJ: 6, SugarGrams: 0},
		},
		{
			Slug:             "cocio-klassisk",
			Name:             "Cocio Klassisk",
			SizeCl:           27,
			SalePriceOre:     1100,
			PurchasePriceOre: 610,
			Stock:            140,
			RecyclingFeeOre:  100,
			Nutrition:        domain.NutritionFacts{EnergyKJ: 310, SugarGrams: 11.5},
		},
		{
			Slug:             "san-pellegrino-limonata",
			Name:             "San Pellegrino Limonata",
			SizeCl:           33,
			SalePriceOre:     1000,
			PurchasePriceOre: 540,
			Stock:            90,
			RecyclingFeeOre:  100,
			Nutrition:        domain.NutritionFacts{EnergyKJ: 190, SugarGrams: 10.9},
		},
	}

	for _, d := range drinks {
		if _, err := repo.UpsertDrink(ctx, d); err != nil {
			return fmt.Errorf("upsert drink %s: %w", d.Slug, err)
		}
	}

	packages := []domain.MixPackage{
		{
			Slug:        "bland-selv-sodavand",
			Title:       "Bland selv sodavand",
			Description: "Sammensæt din egen kasse sodavand.",
			Tiers: []domain.SizeTier{
				{Size: 12, MinPriceOre: 9900},
				{Size: 24, MinPriceOre: 17900, Discount: 0.95},
				{Size: 48, MinPriceOre: 32900, Discount: 0.9},
			},
			EligibleDrinks: []string{"faxe-kondi", "faxe-kondi-free", "cocio-klassisk", "san-pellegrino-limonata"},
		},
		{
			Slug:        "luksus-mix",
			Title:       "Luksus mix",
			Description: "Premium-læskedrikke med per-flaske tillæg.",
			Tiers: []domain.SizeTier{
				{Size: 12, MinPriceOre: 14900, PriceJump: 150},
				{Size: 24, MinPriceOre: 26900, PriceJump: 150, Discount: 0.95},
			},
			EligibleDrinks: []string{"cocio-klassisk", "san-pellegrino-limonata"},
		},
	}

	for _, p := range packages {
		if _, err := repo.UpsertPackage(ctx, p); err != nil {
			return fmt.Errorf("upsert package %s: %w", p.Slug, err)
		}
	}

	return nil
}
