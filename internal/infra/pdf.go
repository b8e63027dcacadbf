package infra

// pdf.go — inventory report generation using go-pdf/fpdf.
// Produces an A4 table of every active product: name, SKU, category,
// quantity, stock status and line value (quantity × price), with a totals row.

import (
	"bytes"
	"fmt"
	"time"

	"github.com/juanmiguelzamora/StockWise/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// BuildInventoryReport renders the report into an in-memory PDF and returns
// the raw bytes, ready to stream as application/pdf.
func BuildInventoryReport(products []model.Product, lowThreshold int) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, "StockWise — Inventory Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, time.Now().Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Table header ─────────────────────────────────────────────────────────
	colName := contentW * 0.32
	colSKU := contentW * 0.16
	colCat := contentW * 0.16
	colQty := contentW * 0.10
	colStatus := contentW * 0.14
	colValue := contentW * 0.12

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colName, 6, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colSKU, 6, "SKU", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colCat, 6, "Category", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colQty, 6, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colStatus, 6, "Status", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colValue, 6, "Value", "B", 1, "R", false, 0, "")

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	totalStock := 0
	totalValue := decimal.Zero
	for _, p := range products {
		name := p.Name
		if len(name) > 38 {
			name = name[:37] + "…"
		}
		lineValue := p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
		totalStock += p.Quantity
		totalValue = totalValue.Add(lineValue)

		pdf.CellFormat(colName, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(colSKU, 5, p.SKU, "", 0, "L", false, 0, "")
		pdf.CellFormat(colCat, 5, p.Category, "", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 5, fmt.Sprintf("%d", p.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(colStatus, 5, p.StockStatus(lowThreshold), "", 0, "C", false, 0, "")
		pdf.CellFormat(colValue, 5, "$"+lineValue.StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colName+colSKU+colCat, 6, fmt.Sprintf("%d products", len(products)), "", 0, "L", false, 0, "")
	pdf.CellFormat(colQty, 6, fmt.Sprintf("%d", totalStock), "", 0, "R", false, 0, "")
	pdf.CellFormat(colStatus, 6, "", "", 0, "C", false, 0, "")
	pdf.CellFormat(colValue, 6, "$"+totalValue.StringFixed(2), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render report: %w", err)
	}
	return buf.Bytes(), nil
}
