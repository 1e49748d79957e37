package invoice

import (
	"bytes"
	"fmt"

	"blandselv-backend/internal/domain"
	"github.com/go-pdf/fpdf"
)

// Render produces the order invoice as an in-memory PDF.
func Render(o domain.Order) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr("Bland Selv"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr("Ordrebekræftelse"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Ordrenummer: %s", o.OrderID)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Dato: %s", o.CreatedAt.Format("02-01-2006"))), "", 1, "L", false, 0, "")
	if o.CustomerDetails.Name != "" {
		pdf.CellFormat(0, 5, tr(o.CustomerDetails.Name), "", 1, "L", false, 0, "")
	}
	if o.CustomerDetails.Email != "" {
		pdf.CellFormat(0, 5, tr(o.CustomerDetails.Email), "", 1, "L", false, 0, "")
	}
	if o.CustomerDetails.Address != "" {
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s, %s %s", o.CustomerDetails.Address, o.CustomerDetails.PostalCode, o.CustomerDetails.City)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 7, tr("Vare"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, tr("Antal"), "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, tr("Stykpris"), "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, tr("I alt"), "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	var pantOre int64
	for _, item := range o.BasketItems {
		name := item.Slug
		if item.PackageSize > 0 {
			name = fmt.Sprintf("%s (%d stk.)", item.Slug, item.PackageSize)
		}
		pdf.CellFormat(90, 6, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, tr(formatKr(item.PricePerPackageOre)), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, tr(formatKr(item.TotalPriceOre)), "", 1, "R", false, 0, "")
		pantOre += item.TotalRecyclingFeeOre
	}

	pdf.Ln(2)
	if pantOre > 0 {
		pdf.CellFormat(145, 6, tr("Heraf pant"), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, tr(formatKr(pantOre)), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(145, 8, tr("Total"), "T", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, tr(formatKr(o.TotalPriceOre)), "T", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, tr("Tak for din bestilling hos Bland Selv."), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatKr(ore int64) string {
	sign := ""
	if ore < 0 {
		sign = "-"
		ore = -ore
	}
	return fmt.Sprintf("%s%d,%02d kr.", sign, ore/100, ore%100)
}
