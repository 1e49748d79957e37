package domain

import "time"

// Drink is a catalog entry. All monetary amounts are in øre.
// PurchasePriceOre and Stock are private fields and must never leave the
// shop through a public endpoint; use Public for any storefront response.
type Drink struct {
	Slug             string         `json:"slug"`
	Name             string         `json:"name"`
	SizeCl           int            `json:"size"`
	SalePriceOre     int64          `json:"salePrice"`
	PurchasePriceOre int64          `json:"purchasePrice"`
	Stock            int            `json:"stock"`
	RecyclingFeeOre  int64          `json:"recyclingFee"`
	Nutrition        NutritionFacts `json:"nutrition"`
	CreatedAt        time.Time      `json:"createdAt"`
}

type NutritionFacts struct {
	EnergyKJ      float64 `json:"energyKJ,omitempty"`
	SugarGrams    float64 `json:"sugarGrams,omitempty"`
	CaffeineMg    float64 `json:"caffeineMg,omitempty"`
	AlcoholPct    float64 `json:"alcoholPct,omitempty"`
	IngredientsDa string  `json:"ingredients,omitempty"`
}

// PublicDrink is the single storefront projection of a Drink.
type PublicDrink struct {
	Slug            string         `json:"slug"`
	Name            string         `json:"name"`
	SizeCl          int            `json:"size"`
	SalePriceOre    int64          `json:"salePrice"`
	RecyclingFeeOre int64          `json:"recyclingFee"`
	InStock         bool           `json:"inStock"`
	Nutrition       NutritionFacts `json:"nutrition"`
}

// Public strips the private purchase-price and stock-count fields. Every
// read endpoint goes through this projection so redaction stays uniform.
func (d Drink) Public() PublicDrink {
	return PublicDrink{
		Slug:            d.Slug,
		Name:            d.Name,
		SizeCl:          d.SizeCl,
		SalePriceOre:    d.SalePriceOre,
		RecyclingFeeOre: d.RecyclingFeeOre,
		InStock:         d.Stock > 0,
		Nutrition:       d.Nutrition,
	}
}

// MixPackage is a mix-and-match package the customer fills with drinks.
type MixPackage struct {
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Tiers          []SizeTier `json:"sizes"`
	EligibleDrinks []string   `json:"eligibleDrinks,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// SizeTier prices one package size. Discount is a multiplier (0.9 = 10% off);
// zero means no discount. PriceJumpOre is a per-unit markup added before the
// discount is applied.
type SizeTier struct {
	Size        int     `json:"size"`
	MinPriceOre int64   `json:"minPrice"`
	PriceJump   int64   `json:"priceJump,omitempty"`
	Discount    float64 `json:"discount,omitempty"`
}

// Tier returns the tier matching size, if any.
func (p MixPackage) Tier(size int) (SizeTier, bool) {
	for _, t := range p.Tiers {
		if t.Size == size {
			return t, true
		}
	}
	return SizeTier{}, false
}
