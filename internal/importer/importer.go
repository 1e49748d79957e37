package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"blandselv-backend/internal/domain"
)

type DrinkWriter interface {
	UpsertDrink(ctx context.Context, d domain.Drink) (*domain.Drink, error)
}

// CSVImporter reads supplier price-list exports and upserts drinks.
// Expected headers: slug, name, size_cl, sale_price_ore,
// purchase_price_ore, stock, recycling_fee_ore.
type CSVImporter struct {
	reader  *csv.Reader
	catalog DrinkWriter
}

func NewCSVImporter(r io.Reader, catalog DrinkWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:  csvr,
		catalog: catalog,
	}
}

// Run parses CSV rows and upserts drinks. It returns the count imported.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["slug"]; !ok {
		return 0, errors.New("missing slug column")
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		drink := parseRow(record, index)
		if drink.Slug == "" {
			continue
		}
		if _, err := i.catalog.UpsertDrink(ctx, drink); err != nil {
			return imported, fmt.Errorf("upsert drink %s: %w", drink.Slug, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) domain.Drink {
	return domain.Drink{
		Slug:             field(record, index, "slug"),
		Name:             field(record, index, "name"),
		SizeCl:           int(intField(record, index, "size_cl")),
		SalePriceOre:     intField(record, index, "sale_price_ore"),
		PurchasePriceOre: intField(record, index, "purchase_price_ore"),
		Stock:            int(intField(record, index, "stock")),
		RecyclingFeeOre:  intField(record, index, "recycling_fee_ore"),
	}
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func intField(record []string, index map[string]int, name string) int64 {
	raw := field(record, index, name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
