package catalog

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

const drinkColumns = `slug, name, size_cl, sale_price_ore, purchase_price_ore, stock, recycling_fee_ore, nutrition, created_at`

func (r *postgresRepo) GetDrink(ctx context.Context, slug string) (*domain.Drink, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+drinkColumns+` FROM drinks WHERE slug = $1`, slug)
	d, err := scanDrink(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *postgresRepo) ListDrinks(ctx context.Context) ([]domain.Drink, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+drinkColumns+` FROM drinks ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Drink
	for rows.Next() {
		d, err := scanDrink(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *postgresRepo) UpsertDrink(ctx context.Context, d domain.Drink) (*domain.Drink, error) {
	const q = `
INSERT INTO drinks (slug, name, size_cl, sale_price_ore, purchase_price_ore, stock, recycling_fee_ore, nutrition)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    size_cl = EXCLUDED.size_cl,
    sale_price_ore = EXCLUDED.sale_price_ore,
    purchase_price_ore = EXCLUDED.purchase_price_ore,
    stock = EXCLUDED.stock,
    recycling_fee_ore = EXCLUDED.recycling_fee_ore,
    nutrition = EXCLUDED.nutrition
RETURNING ` + drinkColumns
	row := r.pool.QueryRow(ctx, q,
		d.Slug, d.Name, d.SizeCl, d.SalePriceOre, d.PurchasePriceOre, d.Stock, d.RecyclingFeeOre, d.Nutrition)
	return scanDrink(row)
}

func scanDrink(row pgx.Row) (*domain.Drink, error) {
	var d domain.Drink
	if err := row.Scan(
		&d.Slug,
		&d.Name,
		&d.SizeCl,
		&d.SalePriceOre,
		&d.PurchasePriceOre,
		&d.Stock,
		&d.RecyclingFeeOre,
		&d.Nutrition,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

const packageColumns = `slug, title, description, tiers, eligible_drinks, created_at`

func (r *postgresRepo) GetPackage(ctx context.Context, slug string) (*domain.MixPackage, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+packageColumns+` FROM packages WHERE slug = $1`, slug)
	p, err := scanPackage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ListPackages(ctx context.Context) ([]domain.MixPackage, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+packageColumns+` FROM packages ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MixPackage
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *postgresRepo) UpsertPackage(ctx context.Context, p domain.MixPackage) (*domain.MixPackage, error) {
	const q = `
INSERT INTO packages (slug, title, description, tiers, eligible_drinks)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (slug) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    tiers = EXCLUDED.tiers,
    eligible_drinks = EXCLUDED.eligible_drinks
RETURNING ` + packageColumns
	tiers := p.Tiers
	if tiers == nil {
		tiers = []domain.SizeTier{}
	}
	row := r.pool.QueryRow(ctx, q, p.Slug, p.Title, p.Description, tiers, p.EligibleDrinks)
	return scanPackage(row)
}

func scanPackage(row pgx.Row) (*domain.MixPackage, error) {
	var p domain.MixPackage
	if err := row.Scan(
		&p.Slug,
		&p.Title,
		&p.Description,
		&p.Tiers,
		&p.EligibleDrinks,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
